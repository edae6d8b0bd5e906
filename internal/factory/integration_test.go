package factory

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/blackbox-go/internal/model"
	"github.com/mcoot/blackbox-go/internal/services/survey"
	redisstorage "github.com/mcoot/blackbox-go/internal/storage/redis"
	"github.com/mcoot/blackbox-go/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func pos(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}

// Test: Complete game flow from creation to a solved reveal
func (s *IntegrationSuite) TestCompleteGameFlow() {
	// (2,1) and (4,3) on a dimension 4 board
	s.app.QueueGame("GAME01", [2]int{2, 1}, [2]int{4, 3})

	// Step 1: Start the game
	game, err := s.app.GameController.NewGame(s.ctx, 4)
	s.Require().NoError(err)
	s.Equal(model.GameID("GAME01"), game.ID)

	// Step 2: Probe with a few rays
	shot, err := s.app.GameController.FireRay(s.ctx, game.ID, pos(0, 1))
	s.Require().NoError(err)
	s.Equal(model.RayHit, shot.Result)

	shot, err = s.app.GameController.FireRay(s.ctx, game.ID, pos(0, 2))
	s.Require().NoError(err)
	s.Equal(model.RayPass, shot.Result)
	s.Equal(pos(1, 5), shot.Exit)

	shot, err = s.app.GameController.FireRay(s.ctx, game.ID, pos(0, 4))
	s.Require().NoError(err)
	s.Equal(model.RayPass, shot.Result)
	s.Equal(pos(3, 5), shot.Exit)

	// Step 3: Place guesses on the markers
	for _, p := range []model.Position{pos(2, 1), pos(4, 3)} {
		placed, err := s.app.GameController.ToggleGuess(s.ctx, game.ID, p)
		s.Require().NoError(err)
		s.True(placed)
	}

	// Step 4: Check answers
	verdict, err := s.app.GameController.CheckAnswers(s.ctx, game.ID)
	s.Require().NoError(err)
	s.True(verdict.Solved)

	final, err := s.app.GameController.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStateRevealed, final.State)
	s.Equal(1, final.RaysRemaining)
	s.Len(final.Shots, 3)
	s.Equal([]model.Position{pos(2, 1), pos(4, 3)}, s.app.VerifyService.Reveal(final.Board))

	stats, err := s.app.GameController.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(&model.Stats{GamesPlayed: 1, Wins: 1}, stats)
}

// Test: Restarting after a loss starts a fresh board of the same size
func (s *IntegrationSuite) TestRestartAfterLoss() {
	s.app.QueueGame("GAME01", [2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3})

	game, err := s.app.GameController.NewGame(s.ctx, 6)
	s.Require().NoError(err)

	verdict, err := s.app.GameController.CheckAnswers(s.ctx, game.ID)
	s.Require().NoError(err)
	s.False(verdict.Solved)
	s.Equal(3, verdict.Missed)

	s.app.QueueGame("GAME02")
	next, err := s.app.GameController.Restart(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(6, next.Dimension)
	s.Equal(model.GameStatePlaying, next.State)

	stats, err := s.app.GameController.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(&model.Stats{GamesPlayed: 2, Losses: 1}, stats)
}

// Test: The survey runs against the wired services
func (s *IntegrationSuite) TestSurvey() {
	report, err := s.app.SurveyService.Run(s.ctx, survey.Options{Dimension: 6, Boards: 20, Workers: 4, Seed: 3})
	s.Require().NoError(err)
	s.Equal(20, report.Boards)
	s.Equal(0, report.Violations)
}

func TestNewRejectsUnknownStorage(t *testing.T) {
	_, err := New(Config{StorageType: "sqlite"})
	assert.Error(t, err)

	_, err = New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)
}

func TestNewWithRedisStorage(t *testing.T) {
	mini := miniredis.RunT(t)

	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{
		Logger:      testutil.NopLogger(),
		StorageType: StorageTypeRedis,
		RedisConfig: &redisCfg,
	})
	require.NoError(t, err)
	defer func() { assert.NoError(t, app.Close()) }()

	ctx := context.Background()
	game, err := app.GameController.NewGame(ctx, 4)
	require.NoError(t, err)
	assert.NotEmpty(t, game.ID)

	// A second app on the same server sees the session
	other, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &redisCfg})
	require.NoError(t, err)
	defer func() { assert.NoError(t, other.Close()) }()

	loaded, err := other.GameController.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, game.Board.Markers(), loaded.Board.Markers())

	stats, err := other.GameController.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.GamesPlayed)
}
