package game

import (
	"context"
	"log/slog"

	"github.com/mcoot/blackbox-go/internal/dependencies/clock"
	"github.com/mcoot/blackbox-go/internal/dependencies/random"
	"github.com/mcoot/blackbox-go/internal/model"
	"github.com/mcoot/blackbox-go/internal/services/board"
	"github.com/mcoot/blackbox-go/internal/services/verify"
	"github.com/mcoot/blackbox-go/internal/storage"
)

// Controller manages the session state machine: ray and guess budgets,
// answer checking and restarts
type Controller struct {
	storage       storage.Storage
	boardService  *board.Service
	verifyService *verify.Service
	clock         clock.Clock
	random        random.Random
	logger        *slog.Logger
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	verifyService *verify.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:       storage,
		boardService:  boardService,
		verifyService: verifyService,
		clock:         clock,
		random:        random,
		logger:        logger,
	}
}

// NewGame starts a session on a freshly generated board of the given dimension
func (c *Controller) NewGame(ctx context.Context, dimension int) (*model.Game, error) {
	b, err := c.boardService.Generate(dimension)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:            model.GameID(c.random.ID()),
		Dimension:     dimension,
		State:         model.GameStatePlaying,
		Board:         b,
		RaysRemaining: dimension,
		GuessLimit:    model.MarkerTarget(dimension),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := c.storage.IncrementStats(ctx, model.Stats{GamesPlayed: 1}); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("dimension", dimension),
		slog.Int("markers", game.GuessLimit),
	)

	return game, nil
}

// NewGameForDifficulty starts a session using the dimension of a named difficulty
func (c *Controller) NewGameForDifficulty(ctx context.Context, difficulty model.Difficulty) (*model.Game, error) {
	dimension, err := model.DimensionFor(difficulty)
	if err != nil {
		return nil, err
	}
	return c.NewGame(ctx, dimension)
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// getPlayable loads a game and checks it still accepts moves
func (c *Controller) getPlayable(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	switch game.State {
	case model.GameStateRevealed:
		return nil, model.ErrGameComplete
	case model.GameStateAbandoned:
		return nil, model.ErrGameAbandoned
	}
	return game, nil
}

// FireRay fires a ray from an edge cell and spends one ray from the budget
func (c *Controller) FireRay(ctx context.Context, gameID model.GameID, pos model.Position) (model.RayShot, error) {
	game, err := c.getPlayable(ctx, gameID)
	if err != nil {
		return model.RayShot{}, err
	}

	if game.RaysRemaining <= 0 {
		return model.RayShot{}, model.ErrNoRaysRemaining
	}

	shot, err := c.boardService.FireRay(game.Board, pos)
	if err != nil {
		return model.RayShot{}, err
	}

	game.RaysRemaining--
	game.RaysCast++
	game.Shots = append(game.Shots, shot)
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return model.RayShot{}, err
	}

	c.logger.Info("ray fired",
		slog.String("game_id", string(gameID)),
		slog.Int("row", pos.Row),
		slog.Int("col", pos.Col),
		slog.String("result", string(shot.Result)),
		slog.Int("rays_remaining", game.RaysRemaining),
	)

	return shot, nil
}

// ToggleGuess places or removes a guess marker. Placing is limited to one
// guess per hidden marker; removing is always allowed.
func (c *Controller) ToggleGuess(ctx context.Context, gameID model.GameID, pos model.Position) (bool, error) {
	game, err := c.getPlayable(ctx, gameID)
	if err != nil {
		return false, err
	}

	cell := game.Board.Get(pos)
	if cell.IsInterior() && !cell.HasGuess && game.GuessesRemaining() <= 0 {
		return false, model.ErrNoGuessesRemaining
	}

	placed, err := c.boardService.ToggleGuess(game.Board, pos)
	if err != nil {
		return false, err
	}

	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		return false, err
	}

	c.logger.Info("guess toggled",
		slog.String("game_id", string(gameID)),
		slog.Int("row", pos.Row),
		slog.Int("col", pos.Col),
		slog.Bool("placed", placed),
	)

	return placed, nil
}

// CheckAnswers reveals the board, records the result and returns the verdict.
// Checking a revealed game again returns the stored verdict.
func (c *Controller) CheckAnswers(ctx context.Context, gameID model.GameID) (*model.Verdict, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	switch game.State {
	case model.GameStateRevealed:
		return game.Verdict, nil
	case model.GameStateAbandoned:
		return nil, model.ErrGameAbandoned
	}

	verdict := c.verifyService.Verify(game.Board)
	game.Verdict = &verdict
	game.State = model.GameStateRevealed
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	delta := model.Stats{Losses: 1}
	if verdict.Solved {
		delta = model.Stats{Wins: 1}
	}
	if err := c.storage.IncrementStats(ctx, delta); err != nil {
		return nil, err
	}

	c.logger.Info("answers checked",
		slog.String("game_id", string(gameID)),
		slog.Bool("solved", verdict.Solved),
		slog.Int("missed", verdict.Missed),
	)

	return &verdict, nil
}

// Restart replaces a game with a fresh one of the same dimension
func (c *Controller) Restart(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	old, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	game, err := c.NewGame(ctx, old.Dimension)
	if err != nil {
		return nil, err
	}

	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return nil, err
	}

	c.logger.Info("game restarted",
		slog.String("old_game_id", string(gameID)),
		slog.String("game_id", string(game.ID)),
	)

	return game, nil
}

// AbandonGame ends a game without checking answers
func (c *Controller) AbandonGame(ctx context.Context, gameID model.GameID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.IsFinished() {
		return nil // Already finished
	}

	game.State = model.GameStateAbandoned
	game.UpdatedAt = c.clock.Now()

	c.logger.Info("game abandoned",
		slog.String("game_id", string(gameID)),
	)

	return c.storage.SaveGame(ctx, game)
}

// GetStats returns the games played, won and lost
func (c *Controller) GetStats(ctx context.Context) (*model.Stats, error) {
	return c.storage.GetStats(ctx)
}

// Interface for dependency injection
type ControllerInterface interface {
	NewGame(ctx context.Context, dimension int) (*model.Game, error)
	NewGameForDifficulty(ctx context.Context, difficulty model.Difficulty) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	FireRay(ctx context.Context, gameID model.GameID, pos model.Position) (model.RayShot, error)
	ToggleGuess(ctx context.Context, gameID model.GameID, pos model.Position) (bool, error)
	CheckAnswers(ctx context.Context, gameID model.GameID) (*model.Verdict, error)
	Restart(ctx context.Context, gameID model.GameID) (*model.Game, error)
	AbandonGame(ctx context.Context, gameID model.GameID) error
	GetStats(ctx context.Context) (*model.Stats, error)
}

var _ ControllerInterface = (*Controller)(nil)
