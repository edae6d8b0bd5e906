package storage

import (
	"context"

	"github.com/mcoot/blackbox-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Stats operations
	IncrementStats(ctx context.Context, delta model.Stats) error
	GetStats(ctx context.Context) (*model.Stats, error)
}
