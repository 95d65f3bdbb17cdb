package models

import "errors"

// Snapshot invariant violations
var (
	ErrTooManyPlayers      = errors.New("registered players exceed max players")
	ErrPlayerCountMismatch = errors.New("remaining and eliminated players do not add up to total")
	ErrUnknownBlindLevel   = errors.New("current level is not in the blind schedule")
	ErrLevelWindowInverted = errors.New("level end time must be after level start time")
)

// Structure validation errors
var (
	ErrEmptyBlindStructure  = errors.New("blind structure cannot be empty")
	ErrInvalidBlindAmounts  = errors.New("blind amounts must be positive")
	ErrBigBlindTooSmall     = errors.New("big blind must be greater than small blind")
	ErrInvalidLevelDuration = errors.New("level duration must be positive")
	ErrNegativeAnte         = errors.New("ante cannot be negative")
	ErrBlindsNotIncreasing  = errors.New("blinds must increase with each level")

	ErrEmptyPrizeStructure     = errors.New("prize structure cannot be empty")
	ErrInvalidPrizePositions   = errors.New("prize positions must be sequential starting from 1")
	ErrInvalidPrizePercentage  = errors.New("prize percentage must be between 0 and 100")
	ErrPrizePercentageMismatch = errors.New("prize percentages must not exceed 100")
)
