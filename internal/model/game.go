package model

import (
	"strings"
	"time"
)

// GameID uniquely identifies a game session
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStatePlaying   GameState = "playing"   // Rays and guesses accepted
	GameStateRevealed  GameState = "revealed"  // Answers checked, markers visible
	GameStateAbandoned GameState = "abandoned" // Game was cancelled
)

// Difficulty selects the board dimension for a new game
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Board dimensions per difficulty
const (
	EasyDimension   = 6
	NormalDimension = 8
	HardDimension   = 10
)

// DimensionFor returns the board dimension for a difficulty
func DimensionFor(d Difficulty) (int, error) {
	switch Difficulty(strings.ToLower(string(d))) {
	case DifficultyEasy:
		return EasyDimension, nil
	case DifficultyNormal, "":
		return NormalDimension, nil
	case DifficultyHard:
		return HardDimension, nil
	default:
		return 0, ErrInvalidDifficulty
	}
}

// DifficultyFor returns the named difficulty matching a dimension, or empty if custom
func DifficultyFor(dimension int) Difficulty {
	switch dimension {
	case EasyDimension:
		return DifficultyEasy
	case NormalDimension:
		return DifficultyNormal
	case HardDimension:
		return DifficultyHard
	default:
		return ""
	}
}

// Verdict is the outcome of checking a player's guesses against the hidden markers
type Verdict struct {
	Markers   int  // Hidden markers on the board
	Guesses   int  // Guess markers placed
	Missed    int  // Hidden markers without a guess
	Misplaced int  // Guesses on cells without a marker
	Solved    bool // True iff Missed is zero
}

// Game is a single Black Box session
type Game struct {
	ID        GameID
	Dimension int
	State     GameState
	Board     *Board

	// Ray budget
	RaysRemaining int
	RaysCast      int
	Shots         []RayShot // In firing order

	// Guess budget
	GuessLimit int

	Verdict *Verdict // Set once answers are checked

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GuessesPlaced returns the number of guess markers currently on the board
func (g *Game) GuessesPlaced() int {
	if g.Board == nil {
		return 0
	}
	return len(g.Board.Guesses())
}

// GuessesRemaining returns how many more guess markers may be placed
func (g *Game) GuessesRemaining() int {
	return g.GuessLimit - g.GuessesPlaced()
}

// IsFinished returns true once the game no longer accepts moves
func (g *Game) IsFinished() bool {
	return g.State == GameStateRevealed || g.State == GameStateAbandoned
}

// Started returns true once the player has fired a ray or placed a guess
func (g *Game) Started() bool {
	return g.RaysCast > 0 || g.GuessesPlaced() > 0
}

// Stats holds process-wide game counters
type Stats struct {
	GamesPlayed int
	Wins        int
	Losses      int
}
