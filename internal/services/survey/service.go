package survey

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/blackbox-go/internal/dependencies/random"
	"github.com/mcoot/blackbox-go/internal/model"
	"github.com/mcoot/blackbox-go/internal/services/board"
)

// Options configures a survey run
type Options struct {
	Dimension int
	Boards    int
	Workers   int    // Values below 1 run a single worker
	Seed      uint64 // Board i is generated from Seed+i
}

// Failure records a board that did not pass the invariant check
type Failure struct {
	Seed  uint64
	Error string
}

// Report aggregates ray outcomes over every edge cell of every surveyed board
type Report struct {
	Dimension  int
	Boards     int
	Hits       int
	Reflects   int
	Passes     int
	Violations int
	Failures   []Failure // Ordered by seed
}

// EdgeCells returns the number of edge cells the report covers
func (r *Report) EdgeCells() int {
	return r.Hits + r.Reflects + r.Passes
}

// Service generates batches of boards in parallel and checks each one
type Service struct {
	logger *slog.Logger
}

// New creates a new SurveyService
func New(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// Run generates opts.Boards boards and checks their invariants. Each board is
// built on one goroutine with its own seeded source, so the report does not
// depend on the worker count.
func (s *Service) Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Dimension < 1 {
		return nil, model.ErrInvalidDimension
	}
	if opts.Boards < 0 {
		return nil, fmt.Errorf("%w: board count %d", model.ErrInvalidArgument, opts.Boards)
	}
	workers := max(opts.Workers, 1)

	report := &Report{Dimension: opts.Dimension}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < opts.Boards; i++ {
		if gctx.Err() != nil {
			break
		}
		seed := opts.Seed + uint64(i)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tally, err := s.surveyBoard(opts.Dimension, seed)

			mu.Lock()
			defer mu.Unlock()
			report.Boards++
			if err != nil {
				report.Violations++
				report.Failures = append(report.Failures, Failure{Seed: seed, Error: err.Error()})
				return nil
			}
			report.Hits += tally.Hits
			report.Reflects += tally.Reflects
			report.Passes += tally.Passes
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].Seed < report.Failures[j].Seed
	})

	s.logger.Info("survey complete",
		slog.Int("dimension", report.Dimension),
		slog.Int("boards", report.Boards),
		slog.Int("workers", workers),
		slog.Int("violations", report.Violations),
	)

	return report, nil
}

func (s *Service) surveyBoard(dimension int, seed uint64) (Report, error) {
	b, err := board.New(random.NewSeeded(seed), s.logger).Generate(dimension)
	if err != nil {
		return Report{}, err
	}
	if err := board.CheckInvariants(b); err != nil {
		s.logger.Warn("board failed invariant check",
			slog.Uint64("seed", seed),
			slog.String("error", err.Error()),
		)
		return Report{}, err
	}

	var tally Report
	for _, pos := range b.EdgePositions() {
		switch b.Get(pos).RayResult {
		case model.RayHit:
			tally.Hits++
		case model.RayReflect:
			tally.Reflects++
		case model.RayPass:
			tally.Passes++
		}
	}
	return tally, nil
}
