package board

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/blackbox-go/internal/dependencies/random"
	"github.com/mcoot/blackbox-go/internal/model"
	"github.com/mcoot/blackbox-go/internal/services/raytrace"
)

// Service generates boards and applies player moves to them
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new BoardService
func New(random random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: random,
		logger: logger,
	}
}

// Generate builds a board of the given dimension, hides its markers and
// memoizes every ray path
func (s *Service) Generate(dimension int) (*model.Board, error) {
	board, err := model.NewBoard(dimension)
	if err != nil {
		return nil, err
	}

	s.PlaceMarkers(board)

	if err := ComputePaths(board); err != nil {
		s.logger.Error("failed to compute ray paths",
			slog.Int("dimension", dimension),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Debug("board generated",
		slog.Int("dimension", dimension),
		slog.Int("markers", board.MarkerCount()),
	)

	return board, nil
}

// PlaceMarkers hides floor(dimension/2) markers on distinct interior cells
// by rejection sampling
func (s *Service) PlaceMarkers(board *model.Board) {
	target := model.MarkerTarget(board.Dimension)
	placed := board.MarkerCount()

	for placed < target {
		row := s.random.Intn(board.Dimension) + 1
		col := s.random.Intn(board.Dimension) + 1
		cell := board.Ref(model.Position{Row: row, Col: col})
		if !cell.HasBall {
			cell.HasBall = true
			placed++
		}
	}
}

// ComputePaths traces a ray from every edge cell that has no memoized result
// yet, in row-major order, and records the outcome on both ends of the path
func ComputePaths(board *model.Board) error {
	for _, entry := range board.EdgePositions() {
		if board.Get(entry).HasPath() {
			continue
		}

		out, err := raytrace.TraceEdge(board, entry)
		if err != nil {
			return err
		}
		if !board.IsEdge(out.Exit) {
			return fmt.Errorf("%w: ray from %v left through non-edge cell %v", model.ErrInvariantViolated, entry, out.Exit)
		}

		record(board, entry, out.Exit, out.Result)
		record(board, out.Exit, entry, out.Result)
	}
	return nil
}

func record(board *model.Board, at, pair model.Position, result model.RayResult) {
	cell := board.Ref(at)
	cell.RayResult = result
	cell.RayExit = &pair
}

// ResetPaths clears every memoized ray result, leaving markers in place
func ResetPaths(board *model.Board) {
	for _, pos := range board.EdgePositions() {
		cell := board.Ref(pos)
		cell.RayResult = model.RayUnset
		cell.RayExit = nil
	}
}

// FireRay reveals the memoized result for a ray fired from an edge cell and
// marks the cells it touched. A pass marks its exit cell as fired too.
func (s *Service) FireRay(board *model.Board, pos model.Position) (model.RayShot, error) {
	if !board.IsValidPosition(pos) {
		return model.RayShot{}, model.ErrInvalidPosition
	}
	cell := board.Ref(pos)
	if !cell.IsEdge() {
		return model.RayShot{}, model.ErrNotEdgeCell
	}
	if cell.HasRay {
		return model.RayShot{}, model.ErrRayAlreadyFired
	}
	if !cell.HasPath() {
		return model.RayShot{}, model.ErrPathsNotComputed
	}

	shot := model.RayShot{
		Result: cell.RayResult,
		Entry:  pos,
		Exit:   *cell.RayExit,
	}

	cell.HasRay = true
	if shot.Result == model.RayPass {
		board.Ref(shot.Exit).HasRay = true
	}

	s.logger.Debug("ray fired",
		slog.Int("row", pos.Row),
		slog.Int("col", pos.Col),
		slog.String("result", string(shot.Result)),
	)

	return shot, nil
}

// ToggleGuess flips the guess marker on an interior cell and returns its new state
func (s *Service) ToggleGuess(board *model.Board, pos model.Position) (bool, error) {
	if !board.IsValidPosition(pos) {
		return false, model.ErrInvalidPosition
	}
	cell := board.Ref(pos)
	if !cell.IsInterior() {
		return false, model.ErrNotInteriorCell
	}
	cell.HasGuess = !cell.HasGuess
	return cell.HasGuess, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Generate(dimension int) (*model.Board, error)
	PlaceMarkers(board *model.Board)
	FireRay(board *model.Board, pos model.Position) (model.RayShot, error)
	ToggleGuess(board *model.Board, pos model.Position) (bool, error)
}

var _ ServiceInterface = (*Service)(nil)
