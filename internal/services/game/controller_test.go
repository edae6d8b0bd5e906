package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blackbox-go/internal/dependencies/mocks"
	"github.com/mcoot/blackbox-go/internal/model"
	"github.com/mcoot/blackbox-go/internal/services/board"
	"github.com/mcoot/blackbox-go/internal/services/verify"
	"github.com/mcoot/blackbox-go/internal/storage/memory"
	"github.com/mcoot/blackbox-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	logger := testutil.NopLogger()
	s.controller = NewController(
		s.storage,
		board.New(s.random, logger),
		verify.New(),
		s.clock,
		s.random,
		logger,
	)
	s.ctx = context.Background()
}

func pos(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}

// Helper to start a dimension 4 game with markers at (2,1) and (4,3).
// On that board (0,1) is a hit, (0,2) and (1,5) pair up as a pass and
// (5,2) reflects.
func (s *ControllerSuite) newGame() *model.Game {
	s.random.QueueID("game-1")
	s.random.QueueMarkers([2]int{2, 1}, [2]int{4, 3})
	game, err := s.controller.NewGame(s.ctx, 4)
	s.Require().NoError(err)
	return game
}

// NewGame tests

func (s *ControllerSuite) TestNewGameSucceeds() {
	game := s.newGame()

	s.Equal(model.GameID("game-1"), game.ID)
	s.Equal(4, game.Dimension)
	s.Equal(model.GameStatePlaying, game.State)
	s.Equal(4, game.RaysRemaining)
	s.Equal(0, game.RaysCast)
	s.Equal(2, game.GuessLimit)
	s.Equal(2, game.GuessesRemaining())
	s.Nil(game.Verdict)
	s.Equal(s.clock.CurrentTime, game.CreatedAt)
	s.Equal([]model.Position{pos(2, 1), pos(4, 3)}, game.Board.Markers())
}

func (s *ControllerSuite) TestNewGameIsPersisted() {
	game := s.newGame()

	retrieved, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game, retrieved)
}

func (s *ControllerSuite) TestNewGameCountsGamesPlayed() {
	s.newGame()
	s.random.QueueID("game-2")
	_, err := s.controller.NewGame(s.ctx, 6)
	s.Require().NoError(err)

	stats, err := s.controller.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, stats.GamesPlayed)
	s.Equal(0, stats.Wins)
	s.Equal(0, stats.Losses)
}

func (s *ControllerSuite) TestNewGameRejectsInvalidDimension() {
	_, err := s.controller.NewGame(s.ctx, 0)
	s.ErrorIs(err, model.ErrInvalidDimension)

	stats, err := s.controller.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, stats.GamesPlayed)
}

func (s *ControllerSuite) TestNewGameForDifficulty() {
	cases := map[model.Difficulty]int{
		model.DifficultyEasy:   6,
		model.DifficultyNormal: 8,
		model.DifficultyHard:   10,
		"HARD":                 10,
		"":                     8,
	}
	for difficulty, dimension := range cases {
		game, err := s.controller.NewGameForDifficulty(s.ctx, difficulty)
		s.Require().NoError(err, "difficulty %q", difficulty)
		s.Equal(dimension, game.Dimension)
		s.Equal(dimension, game.RaysRemaining)
		s.Equal(dimension/2, game.GuessLimit)
	}

	_, err := s.controller.NewGameForDifficulty(s.ctx, "nightmare")
	s.ErrorIs(err, model.ErrInvalidDifficulty)
}

func (s *ControllerSuite) TestGetGameNotFound() {
	_, err := s.controller.GetGame(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// FireRay tests

func (s *ControllerSuite) TestFireRayReportsResults() {
	game := s.newGame()

	shot, err := s.controller.FireRay(s.ctx, game.ID, pos(0, 1))
	s.Require().NoError(err)
	s.Equal(model.RayShot{Result: model.RayHit, Entry: pos(0, 1), Exit: pos(0, 1)}, shot)

	shot, err = s.controller.FireRay(s.ctx, game.ID, pos(0, 2))
	s.Require().NoError(err)
	s.Equal(model.RayShot{Result: model.RayPass, Entry: pos(0, 2), Exit: pos(1, 5)}, shot)

	shot, err = s.controller.FireRay(s.ctx, game.ID, pos(5, 2))
	s.Require().NoError(err)
	s.Equal(model.RayReflect, shot.Result)
}

func (s *ControllerSuite) TestFireRaySpendsBudget() {
	game := s.newGame()

	_, err := s.controller.FireRay(s.ctx, game.ID, pos(0, 2))
	s.Require().NoError(err)

	updated, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(3, updated.RaysRemaining)
	s.Equal(1, updated.RaysCast)
	s.Len(updated.Shots, 1)
	s.True(updated.Board.Get(pos(0, 2)).HasRay)
	s.True(updated.Board.Get(pos(1, 5)).HasRay)
	s.True(updated.Started())
}

func (s *ControllerSuite) TestFireRayFromPassExitFails() {
	game := s.newGame()

	_, err := s.controller.FireRay(s.ctx, game.ID, pos(0, 2))
	s.Require().NoError(err)

	_, err = s.controller.FireRay(s.ctx, game.ID, pos(1, 5))
	s.ErrorIs(err, model.ErrRayAlreadyFired)

	// A rejected ray costs nothing
	updated, _ := s.controller.GetGame(s.ctx, game.ID)
	s.Equal(3, updated.RaysRemaining)
}

func (s *ControllerSuite) TestFireRayRejectsInvalidCells() {
	game := s.newGame()

	_, err := s.controller.FireRay(s.ctx, game.ID, pos(0, 0))
	s.ErrorIs(err, model.ErrNotEdgeCell)

	_, err = s.controller.FireRay(s.ctx, game.ID, pos(2, 2))
	s.ErrorIs(err, model.ErrNotEdgeCell)

	_, err = s.controller.FireRay(s.ctx, game.ID, pos(9, 9))
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *ControllerSuite) TestFireRayFailsWhenOutOfRays() {
	game := s.newGame()

	for _, p := range []model.Position{pos(0, 1), pos(0, 2), pos(0, 3), pos(0, 4)} {
		_, err := s.controller.FireRay(s.ctx, game.ID, p)
		s.Require().NoError(err)
	}

	_, err := s.controller.FireRay(s.ctx, game.ID, pos(5, 2))
	s.ErrorIs(err, model.ErrNoRaysRemaining)
}

func (s *ControllerSuite) TestFireRayFailsAfterReveal() {
	game := s.newGame()
	_, err := s.controller.CheckAnswers(s.ctx, game.ID)
	s.Require().NoError(err)

	_, err = s.controller.FireRay(s.ctx, game.ID, pos(0, 1))
	s.ErrorIs(err, model.ErrGameComplete)
}

func (s *ControllerSuite) TestFireRayFailsForUnknownGame() {
	_, err := s.controller.FireRay(s.ctx, "missing", pos(0, 1))
	s.ErrorIs(err, model.ErrGameNotFound)
}

// ToggleGuess tests

func (s *ControllerSuite) TestToggleGuessPlacesAndRemoves() {
	game := s.newGame()

	placed, err := s.controller.ToggleGuess(s.ctx, game.ID, pos(2, 1))
	s.Require().NoError(err)
	s.True(placed)

	updated, _ := s.controller.GetGame(s.ctx, game.ID)
	s.Equal(1, updated.GuessesPlaced())

	placed, err = s.controller.ToggleGuess(s.ctx, game.ID, pos(2, 1))
	s.Require().NoError(err)
	s.False(placed)

	updated, _ = s.controller.GetGame(s.ctx, game.ID)
	s.Equal(0, updated.GuessesPlaced())
}

func (s *ControllerSuite) TestToggleGuessLimitedToMarkerCount() {
	game := s.newGame()

	_, err := s.controller.ToggleGuess(s.ctx, game.ID, pos(1, 1))
	s.Require().NoError(err)
	_, err = s.controller.ToggleGuess(s.ctx, game.ID, pos(1, 2))
	s.Require().NoError(err)

	_, err = s.controller.ToggleGuess(s.ctx, game.ID, pos(1, 3))
	s.ErrorIs(err, model.ErrNoGuessesRemaining)

	// Removing still works at the limit
	placed, err := s.controller.ToggleGuess(s.ctx, game.ID, pos(1, 1))
	s.Require().NoError(err)
	s.False(placed)
}

func (s *ControllerSuite) TestToggleGuessRejectsEdgeCells() {
	game := s.newGame()

	_, err := s.controller.ToggleGuess(s.ctx, game.ID, pos(0, 2))
	s.ErrorIs(err, model.ErrNotInteriorCell)
}

// CheckAnswers tests

func (s *ControllerSuite) TestCheckAnswersSolved() {
	game := s.newGame()
	_, _ = s.controller.ToggleGuess(s.ctx, game.ID, pos(2, 1))
	_, _ = s.controller.ToggleGuess(s.ctx, game.ID, pos(4, 3))

	verdict, err := s.controller.CheckAnswers(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(&model.Verdict{Markers: 2, Guesses: 2, Solved: true}, verdict)

	updated, _ := s.controller.GetGame(s.ctx, game.ID)
	s.Equal(model.GameStateRevealed, updated.State)
	s.Equal(verdict, updated.Verdict)

	stats, _ := s.controller.GetStats(s.ctx)
	s.Equal(1, stats.Wins)
	s.Equal(0, stats.Losses)
}

func (s *ControllerSuite) TestCheckAnswersMissed() {
	game := s.newGame()
	_, _ = s.controller.ToggleGuess(s.ctx, game.ID, pos(2, 1))
	_, _ = s.controller.ToggleGuess(s.ctx, game.ID, pos(3, 3))

	verdict, err := s.controller.CheckAnswers(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(&model.Verdict{Markers: 2, Guesses: 2, Missed: 1, Misplaced: 1}, verdict)

	stats, _ := s.controller.GetStats(s.ctx)
	s.Equal(0, stats.Wins)
	s.Equal(1, stats.Losses)
}

func (s *ControllerSuite) TestCheckAnswersTwiceReturnsStoredVerdict() {
	game := s.newGame()

	first, err := s.controller.CheckAnswers(s.ctx, game.ID)
	s.Require().NoError(err)
	second, err := s.controller.CheckAnswers(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(first, second)

	// Counted once
	stats, _ := s.controller.GetStats(s.ctx)
	s.Equal(1, stats.Losses)
}

func (s *ControllerSuite) TestCheckAnswersFailsWhenAbandoned() {
	game := s.newGame()
	s.Require().NoError(s.controller.AbandonGame(s.ctx, game.ID))

	_, err := s.controller.CheckAnswers(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameAbandoned)
}

// Restart tests

func (s *ControllerSuite) TestRestartReplacesGame() {
	game := s.newGame()
	_, _ = s.controller.FireRay(s.ctx, game.ID, pos(0, 1))

	s.random.QueueID("game-2")
	restarted, err := s.controller.Restart(s.ctx, game.ID)
	s.Require().NoError(err)

	s.Equal(model.GameID("game-2"), restarted.ID)
	s.Equal(4, restarted.Dimension)
	s.Equal(4, restarted.RaysRemaining)
	s.Empty(restarted.Shots)
	s.Empty(restarted.Board.Guesses())

	_, err = s.controller.GetGame(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)

	stats, _ := s.controller.GetStats(s.ctx)
	s.Equal(2, stats.GamesPlayed)
}

func (s *ControllerSuite) TestRestartUnknownGame() {
	_, err := s.controller.Restart(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// AbandonGame tests

func (s *ControllerSuite) TestAbandonGame() {
	game := s.newGame()

	s.Require().NoError(s.controller.AbandonGame(s.ctx, game.ID))

	updated, _ := s.controller.GetGame(s.ctx, game.ID)
	s.Equal(model.GameStateAbandoned, updated.State)
	s.True(updated.IsFinished())

	_, err := s.controller.FireRay(s.ctx, game.ID, pos(0, 1))
	s.ErrorIs(err, model.ErrGameAbandoned)
	_, err = s.controller.ToggleGuess(s.ctx, game.ID, pos(1, 1))
	s.ErrorIs(err, model.ErrGameAbandoned)
}

func (s *ControllerSuite) TestAbandonRevealedGameIsNoop() {
	game := s.newGame()
	_, err := s.controller.CheckAnswers(s.ctx, game.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.controller.AbandonGame(s.ctx, game.ID))

	updated, _ := s.controller.GetGame(s.ctx, game.ID)
	s.Equal(model.GameStateRevealed, updated.State)
}
