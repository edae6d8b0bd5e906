package cli

import (
	"fmt"

	"github.com/mcoot/blackbox-go/internal/model"
	"github.com/mcoot/blackbox-go/internal/services/survey"
)

// Board cell symbols
const (
	symCorner     = "+"
	symEdge       = "#"
	symHit        = "H"
	symReflect    = "R"
	symEmpty      = "."
	symGuess      = "o"
	symMarker     = "*" // Revealed marker without a guess
	symFound      = "@" // Revealed marker with a guess
	symWrongGuess = "x" // Revealed guess without a marker
)

// Pass pairs are labelled in row-major order of their first end
const passLabels = "123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Position response type
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func newPosition(p model.Position) Position {
	return Position{Row: p.Row, Col: p.Col}
}

func newPositions(ps []model.Position) []Position {
	if len(ps) == 0 {
		return nil
	}
	out := make([]Position, len(ps))
	for i, p := range ps {
		out[i] = newPosition(p)
	}
	return out
}

// BoardView response type
type BoardView struct {
	Cells [][]string `json:"cells"`
}

// newBoardView renders a board. With allEdges every memoized ray outcome is
// shown, otherwise only fired ones. With reveal the markers are shown.
func newBoardView(b *model.Board, allEdges, reveal bool) BoardView {
	cells := make([][]string, b.Side)
	for row := range cells {
		cells[row] = make([]string, b.Side)
	}

	next := 0
	for row := 0; row < b.Side; row++ {
		for col := 0; col < b.Side; col++ {
			pos := model.Position{Row: row, Col: col}
			cell := b.Get(pos)
			switch cell.Kind {
			case model.CellCorner:
				cells[row][col] = symCorner
			case model.CellInterior:
				cells[row][col] = interiorSymbol(cell, reveal)
			case model.CellEdge:
				if cells[row][col] != "" {
					continue // Labelled as the far end of a pass
				}
				if !cell.HasPath() || !(allEdges || cell.HasRay) {
					cells[row][col] = symEdge
					continue
				}
				switch cell.RayResult {
				case model.RayHit:
					cells[row][col] = symHit
				case model.RayReflect:
					cells[row][col] = symReflect
				case model.RayPass:
					label := passLabel(next)
					next++
					cells[row][col] = label
					exit := *cell.RayExit
					cells[exit.Row][exit.Col] = label
				}
			}
		}
	}

	return BoardView{Cells: cells}
}

func interiorSymbol(cell model.Cell, reveal bool) string {
	switch {
	case reveal && cell.HasBall && cell.HasGuess:
		return symFound
	case reveal && cell.HasBall:
		return symMarker
	case reveal && cell.HasGuess:
		return symWrongGuess
	case cell.HasGuess:
		return symGuess
	default:
		return symEmpty
	}
}

func passLabel(i int) string {
	if i < len(passLabels) {
		return passLabels[i : i+1]
	}
	return "P"
}

// ShotView response type
type ShotView struct {
	Result        string   `json:"result"`
	Entry         Position `json:"entry"`
	Exit          Position `json:"exit"`
	RaysRemaining int      `json:"rays_remaining,omitempty"`
}

func newShotView(s model.RayShot) ShotView {
	return ShotView{
		Result: string(s.Result),
		Entry:  newPosition(s.Entry),
		Exit:   newPosition(s.Exit),
	}
}

func (s ShotView) describe() string {
	if s.Result == string(model.RayPass) {
		return fmt.Sprintf("from %s: pass, exits at %s", s.Entry, s.Exit)
	}
	return fmt.Sprintf("from %s: %s", s.Entry, s.Result)
}

// GuessView response type
type GuessView struct {
	Position         Position `json:"position"`
	Placed           bool     `json:"placed"`
	GuessesRemaining int      `json:"guesses_remaining"`
}

// VerdictView response type
type VerdictView struct {
	Markers   int  `json:"markers"`
	Guesses   int  `json:"guesses"`
	Missed    int  `json:"missed"`
	Misplaced int  `json:"misplaced"`
	Solved    bool `json:"solved"`
}

func newVerdictView(v model.Verdict) VerdictView {
	return VerdictView{
		Markers:   v.Markers,
		Guesses:   v.Guesses,
		Missed:    v.Missed,
		Misplaced: v.Misplaced,
		Solved:    v.Solved,
	}
}

// GameView response type
type GameView struct {
	ID            string       `json:"id"`
	State         string       `json:"state"`
	Dimension     int          `json:"dimension"`
	Difficulty    string       `json:"difficulty,omitempty"`
	RaysRemaining int          `json:"rays_remaining"`
	RaysCast      int          `json:"rays_cast"`
	GuessLimit    int          `json:"guess_limit"`
	GuessesPlaced int          `json:"guesses_placed"`
	Shots         []ShotView   `json:"shots"`
	Guesses       []Position   `json:"guesses,omitempty"`
	Markers       []Position   `json:"markers,omitempty"` // Only once revealed
	Board         BoardView    `json:"board"`
	Verdict       *VerdictView `json:"verdict,omitempty"`
}

func newGameView(g *model.Game) GameView {
	revealed := g.State == model.GameStateRevealed

	view := GameView{
		ID:            string(g.ID),
		State:         string(g.State),
		Dimension:     g.Dimension,
		Difficulty:    string(model.DifficultyFor(g.Dimension)),
		RaysRemaining: g.RaysRemaining,
		RaysCast:      g.RaysCast,
		GuessLimit:    g.GuessLimit,
		GuessesPlaced: g.GuessesPlaced(),
		Shots:         make([]ShotView, len(g.Shots)),
		Guesses:       newPositions(g.Board.Guesses()),
		Board:         newBoardView(g.Board, false, revealed),
	}
	for i, s := range g.Shots {
		view.Shots[i] = newShotView(s)
	}
	if revealed {
		view.Markers = newPositions(g.Board.Markers())
	}
	if g.Verdict != nil {
		v := newVerdictView(*g.Verdict)
		view.Verdict = &v
	}
	return view
}

// GeneratedBoard response type
type GeneratedBoard struct {
	Dimension int        `json:"dimension"`
	Seed      uint64     `json:"seed"`
	Board     BoardView  `json:"board"`
	Results   []ShotView `json:"results"`
	Markers   []Position `json:"markers,omitempty"`
}

func newGeneratedBoard(b *model.Board, seed uint64, reveal bool) GeneratedBoard {
	view := GeneratedBoard{
		Dimension: b.Dimension,
		Seed:      seed,
		Board:     newBoardView(b, true, reveal),
	}
	for _, pos := range b.EdgePositions() {
		cell := b.Get(pos)
		view.Results = append(view.Results, ShotView{
			Result: string(cell.RayResult),
			Entry:  newPosition(pos),
			Exit:   newPosition(*cell.RayExit),
		})
	}
	if reveal {
		view.Markers = newPositions(b.Markers())
	}
	return view
}

// SurveyView response type
type SurveyView struct {
	Dimension  int           `json:"dimension"`
	Boards     int           `json:"boards"`
	Hits       int           `json:"hits"`
	Reflects   int           `json:"reflects"`
	Passes     int           `json:"passes"`
	Violations int           `json:"violations"`
	Failures   []FailureView `json:"failures,omitempty"`
}

// FailureView response type
type FailureView struct {
	Seed  uint64 `json:"seed"`
	Error string `json:"error"`
}

func newSurveyView(r *survey.Report) SurveyView {
	view := SurveyView{
		Dimension:  r.Dimension,
		Boards:     r.Boards,
		Hits:       r.Hits,
		Reflects:   r.Reflects,
		Passes:     r.Passes,
		Violations: r.Violations,
	}
	for _, f := range r.Failures {
		view.Failures = append(view.Failures, FailureView{Seed: f.Seed, Error: f.Error})
	}
	return view
}

// StatsView response type
type StatsView struct {
	GamesPlayed int `json:"games_played"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
}

func newStatsView(s *model.Stats) StatsView {
	return StatsView{
		GamesPlayed: s.GamesPlayed,
		Wins:        s.Wins,
		Losses:      s.Losses,
	}
}
