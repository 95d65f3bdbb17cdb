package simulator

import "errors"

// Tournament creation errors
var (
	ErrInvalidTournamentName    = errors.New("tournament name is required and must be at most 100 characters")
	ErrInvalidBuyIn             = errors.New("buy-in must be non-negative")
	ErrInvalidStartingChips     = errors.New("starting chips must be at least 100")
	ErrInvalidMaxPlayers        = errors.New("max players must be between 2 and 1000")
	ErrInvalidMinPlayers        = errors.New("min players must be at least 2")
	ErrMinPlayersGreaterThanMax = errors.New("min players cannot exceed max players")
	ErrInvalidPlayersPerTable   = errors.New("players per table must be between 2 and 10")
	ErrInvalidBreakSchedule     = errors.New("break cadence and duration must be non-negative")
	ErrStructureNotFound        = errors.New("tournament structure preset not found")
	ErrPrizeStructureNotFound   = errors.New("prize structure preset not found")
	ErrInvalidStructure         = errors.New("invalid tournament structure")
	ErrInvalidPrizeStructure    = errors.New("invalid prize structure")
)

// Registration errors
var (
	ErrTournamentNotFound       = errors.New("tournament not found")
	ErrTournamentNotRegistering = errors.New("tournament is not accepting registrations")
	ErrTournamentFull           = errors.New("tournament is full")
	ErrPlayerNameTooLong        = errors.New("player name must be at most 50 characters")
	ErrEmptyPlayerName          = errors.New("player name is required")
	ErrAlreadyRegistered        = errors.New("a player with this name is already registered")
	ErrCannotUnregister         = errors.New("cannot unregister after tournament has started")
	ErrNotRegistered            = errors.New("not registered for this tournament")
	ErrInvalidBotCount          = errors.New("bot count must be positive")
)

// Play errors
var (
	ErrNotEnoughPlayers         = errors.New("not enough players to start tournament")
	ErrTournamentAlreadyStarted = errors.New("tournament has already started")
	ErrTournamentNotInPlay      = errors.New("tournament is not in play")
	ErrPlayerNotFound           = errors.New("player not found in this tournament")
	ErrPlayerAlreadyEliminated  = errors.New("player already eliminated")
	ErrInvalidTransition        = errors.New("invalid tournament status transition")
)
