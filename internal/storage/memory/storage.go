package memory

import (
	"context"
	"sync"

	"github.com/mcoot/blackbox-go/internal/model"
	"github.com/mcoot/blackbox-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Games are copied on the way in and out so callers never share a board.
type Storage struct {
	mu sync.RWMutex

	games map[model.GameID]*model.Game
	stats model.Stats
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games: make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = cloneGame(game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return cloneGame(game), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

// Stats operations

func (s *Storage) IncrementStats(ctx context.Context, delta model.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.GamesPlayed += delta.GamesPlayed
	s.stats.Wins += delta.Wins
	s.stats.Losses += delta.Losses
	return nil
}

func (s *Storage) GetStats(ctx context.Context) (*model.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := s.stats
	return &stats, nil
}

func cloneGame(game *model.Game) *model.Game {
	clone := *game
	if game.Board != nil {
		clone.Board = game.Board.Clone()
	}
	clone.Shots = append([]model.RayShot(nil), game.Shots...)
	if game.Verdict != nil {
		verdict := *game.Verdict
		clone.Verdict = &verdict
	}
	return &clone
}
