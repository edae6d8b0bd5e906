package redis

import (
	"fmt"

	"github.com/mcoot/blackbox-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "blackbox"

// Hash fields of the stats key
const (
	statsFieldGamesPlayed = "games_played"
	statsFieldWins        = "wins"
	statsFieldLosses      = "losses"
)

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// statsKey returns the Redis key for the stats hash
func statsKey() string {
	return fmt.Sprintf("%s:stats", keyPrefix)
}
