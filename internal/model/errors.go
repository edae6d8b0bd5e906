package model

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root of every caller contract violation.
// Specific errors below wrap it, so errors.Is(err, ErrInvalidArgument) holds for all of them.
var ErrInvalidArgument = errors.New("invalid argument")

// Common errors used across the application
var (
	// Board errors
	ErrInvalidDimension = fmt.Errorf("%w: dimension must be at least 1", ErrInvalidArgument)
	ErrInvalidPosition  = fmt.Errorf("%w: position is outside the board", ErrInvalidArgument)
	ErrInvalidHeading   = fmt.Errorf("%w: heading must step by +1 or -1 along a known axis", ErrInvalidArgument)
	ErrNotEdgeCell      = fmt.Errorf("%w: cell is not an edge cell", ErrInvalidArgument)
	ErrNotInteriorCell  = fmt.Errorf("%w: cell is not an interior cell", ErrInvalidArgument)
	ErrRayAlreadyFired  = fmt.Errorf("%w: a ray has already been fired through this cell", ErrInvalidArgument)
	ErrPathsNotComputed = errors.New("ray paths have not been computed")

	// Invariant errors
	ErrInvariantViolated = errors.New("board invariant violated")

	// Game errors
	ErrGameNotFound       = errors.New("game not found")
	ErrGameComplete       = errors.New("game is already complete")
	ErrGameAbandoned      = errors.New("game has been abandoned")
	ErrNoRaysRemaining    = errors.New("no rays remaining")
	ErrNoGuessesRemaining = errors.New("no guesses remaining")
	ErrInvalidDifficulty  = fmt.Errorf("%w: unknown difficulty", ErrInvalidArgument)
)
