package board

import (
	"fmt"

	"github.com/mcoot/blackbox-go/internal/model"
)

// CheckInvariants verifies a generated board: marker count, fully memoized
// edge cells, hit and reflect exits equal to their entry, and symmetric pass
// pairs. It returns the first violation found, wrapping ErrInvariantViolated.
func CheckInvariants(board *model.Board) error {
	if got, want := board.MarkerCount(), model.MarkerTarget(board.Dimension); got != want {
		return violation("board has %d markers, want %d", got, want)
	}

	for row := 0; row < board.Side; row++ {
		for col := 0; col < board.Side; col++ {
			pos := model.Position{Row: row, Col: col}
			if err := checkCell(board, pos); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkCell(board *model.Board, pos model.Position) error {
	cell := board.Get(pos)

	if !cell.IsEdge() {
		if cell.RayResult != model.RayUnset || cell.RayExit != nil {
			return violation("non-edge cell %v carries a ray result", pos)
		}
		if cell.Kind != model.CellInterior && (cell.HasBall || cell.HasGuess) {
			return violation("%s cell %v carries a marker", cell.Kind, pos)
		}
		return nil
	}

	if (cell.RayResult == model.RayUnset) != (cell.RayExit == nil) {
		return violation("edge cell %v has only one of result and exit set", pos)
	}
	if !cell.HasPath() {
		return violation("edge cell %v has no memoized path", pos)
	}

	exit := *cell.RayExit
	switch cell.RayResult {
	case model.RayHit, model.RayReflect:
		if exit != pos {
			return violation("%s at %v exits at %v, want its entry", cell.RayResult, pos, exit)
		}
	case model.RayPass:
		pair := board.Get(exit)
		if !pair.IsEdge() {
			return violation("pass from %v exits through non-edge cell %v", pos, exit)
		}
		if !pair.HasPath() || *pair.RayExit != pos || pair.RayResult != cell.RayResult {
			return violation("pass from %v to %v is not mirrored by its exit", pos, exit)
		}
	default:
		return violation("edge cell %v has unknown result %q", pos, cell.RayResult)
	}
	return nil
}

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", model.ErrInvariantViolated, fmt.Sprintf(format, args...))
}
