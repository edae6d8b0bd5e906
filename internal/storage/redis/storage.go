package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/blackbox-go/internal/model"
	"github.com/mcoot/blackbox-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL).Err()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	return s.client.Del(ctx, gameKey(id)).Err()
}

// Stats operations

func (s *Storage) IncrementStats(ctx context.Context, delta model.Stats) error {
	if delta == (model.Stats{}) {
		return nil
	}
	key := statsKey()

	// Use pipeline so all counters move together
	pipe := s.client.TxPipeline()
	if delta.GamesPlayed != 0 {
		pipe.HIncrBy(ctx, key, statsFieldGamesPlayed, int64(delta.GamesPlayed))
	}
	if delta.Wins != 0 {
		pipe.HIncrBy(ctx, key, statsFieldWins, int64(delta.Wins))
	}
	if delta.Losses != 0 {
		pipe.HIncrBy(ctx, key, statsFieldLosses, int64(delta.Losses))
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetStats(ctx context.Context) (*model.Stats, error) {
	fields, err := s.client.HGetAll(ctx, statsKey()).Result()
	if err != nil {
		return nil, err
	}

	stats := &model.Stats{}
	for field, target := range map[string]*int{
		statsFieldGamesPlayed: &stats.GamesPlayed,
		statsFieldWins:        &stats.Wins,
		statsFieldLosses:      &stats.Losses,
	} {
		raw, ok := fields[field]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		*target = n
	}
	return stats, nil
}
