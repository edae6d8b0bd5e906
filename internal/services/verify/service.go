package verify

import (
	"github.com/mcoot/blackbox-go/internal/model"
)

// Service compares a player's guesses with the hidden markers
type Service struct{}

// New creates a new VerifyService
func New() *Service {
	return &Service{}
}

// Verify counts the hidden markers the player failed to cover with a guess.
// The board is solved iff none were missed.
func (s *Service) Verify(board *model.Board) model.Verdict {
	verdict := model.Verdict{}

	for _, pos := range board.InteriorPositions() {
		cell := board.Get(pos)
		if cell.HasBall {
			verdict.Markers++
			if !cell.HasGuess {
				verdict.Missed++
			}
		}
		if cell.HasGuess {
			verdict.Guesses++
			if !cell.HasBall {
				verdict.Misplaced++
			}
		}
	}

	verdict.Solved = verdict.Missed == 0
	return verdict
}

// Reveal returns the positions of every hidden marker
func (s *Service) Reveal(board *model.Board) []model.Position {
	return board.Markers()
}
