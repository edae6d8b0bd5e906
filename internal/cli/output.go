package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// IsJSON reports whether output is machine readable
func (o *Output) IsJSON() bool {
	return o.format == OutputJSON
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.IsJSON() {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.IsJSON() {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.IsJSON() {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameView:
		o.printGame(v)
	case ShotView:
		o.printShot(v)
	case GuessView:
		o.printGuess(v)
	case VerdictView:
		o.printVerdict(v)
	case GeneratedBoard:
		o.printGenerated(v)
	case SurveyView:
		o.printSurvey(v)
	case StatsView:
		o.printStats(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printGame(g GameView) {
	fmt.Fprintf(o.out, "Game: %s\n", g.ID)
	fmt.Fprintf(o.out, "State: %s\n", g.State)
	if g.Difficulty != "" {
		fmt.Fprintf(o.out, "Dimension: %d (%s)\n", g.Dimension, g.Difficulty)
	} else {
		fmt.Fprintf(o.out, "Dimension: %d\n", g.Dimension)
	}
	fmt.Fprintf(o.out, "Rays: %d remaining, %d cast\n", g.RaysRemaining, g.RaysCast)
	fmt.Fprintf(o.out, "Guesses: %d of %d placed\n", g.GuessesPlaced, g.GuessLimit)

	fmt.Fprintln(o.out)
	o.printBoard(g.Board)

	if len(g.Shots) > 0 {
		fmt.Fprintln(o.out, "\nShots:")
		for i, shot := range g.Shots {
			fmt.Fprintf(o.out, "  %d. %s\n", i+1, shot.describe())
		}
	}

	if g.Verdict != nil {
		fmt.Fprintln(o.out)
		o.printVerdict(*g.Verdict)
	}
}

func (o *Output) printBoard(b BoardView) {
	if len(b.Cells) == 0 {
		return
	}

	size := len(b.Cells)

	// Print column headers
	fmt.Fprint(o.out, "   ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(o.out, "%3d", col)
	}
	fmt.Fprintln(o.out)

	// Print rows
	for row := 0; row < size; row++ {
		fmt.Fprintf(o.out, "%3d", row)
		for col := 0; col < size; col++ {
			fmt.Fprintf(o.out, "%3s", b.Cells[row][col])
		}
		fmt.Fprintln(o.out)
	}
}

func (o *Output) printShot(s ShotView) {
	fmt.Fprintf(o.out, "Ray %s\n", s.describe())
	fmt.Fprintf(o.out, "Rays remaining: %d\n", s.RaysRemaining)
}

func (o *Output) printGuess(g GuessView) {
	if g.Placed {
		fmt.Fprintf(o.out, "Guess placed at %s\n", g.Position)
	} else {
		fmt.Fprintf(o.out, "Guess removed from %s\n", g.Position)
	}
	fmt.Fprintf(o.out, "Guesses remaining: %d\n", g.GuessesRemaining)
}

func (o *Output) printVerdict(v VerdictView) {
	if v.Solved {
		fmt.Fprintf(o.out, "Solved! All %d markers found.\n", v.Markers)
	} else {
		fmt.Fprintf(o.out, "Not solved: missed %d of %d markers.\n", v.Missed, v.Markers)
	}
	if v.Misplaced > 0 {
		fmt.Fprintf(o.out, "Misplaced guesses: %d\n", v.Misplaced)
	}
}

func (o *Output) printGenerated(g GeneratedBoard) {
	fmt.Fprintf(o.out, "Dimension: %d\n", g.Dimension)
	fmt.Fprintf(o.out, "Seed: %d\n", g.Seed)
	fmt.Fprintln(o.out)
	o.printBoard(g.Board)

	if len(g.Markers) > 0 {
		markers := make([]string, len(g.Markers))
		for i, m := range g.Markers {
			markers[i] = m.String()
		}
		fmt.Fprintf(o.out, "\nMarkers: %s\n", strings.Join(markers, " "))
	}
}

func (o *Output) printSurvey(s SurveyView) {
	fmt.Fprintf(o.out, "Boards: %d (dimension %d)\n", s.Boards, s.Dimension)
	fmt.Fprintf(o.out, "Hits: %d\n", s.Hits)
	fmt.Fprintf(o.out, "Reflects: %d\n", s.Reflects)
	fmt.Fprintf(o.out, "Passes: %d\n", s.Passes)
	fmt.Fprintf(o.out, "Violations: %d\n", s.Violations)
	for _, f := range s.Failures {
		fmt.Fprintf(o.out, "  seed %d: %s\n", f.Seed, f.Error)
	}
}

func (o *Output) printStats(s StatsView) {
	fmt.Fprintf(o.out, "Games played: %d\n", s.GamesPlayed)
	fmt.Fprintf(o.out, "Wins: %d\n", s.Wins)
	fmt.Fprintf(o.out, "Losses: %d\n", s.Losses)
}
