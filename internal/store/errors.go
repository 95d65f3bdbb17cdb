package store

import "errors"

var (
	ErrStoreClosed       = errors.New("store is closed")
	ErrEmptyTournamentID = errors.New("tournament id is required")
	ErrEmptyPlayerName   = errors.New("player name is required")
	// ErrReloadAfterRegister marks a registration that succeeded but whose
	// follow-up reload did not; MyPlayer is already set.
	ErrReloadAfterRegister = errors.New("registered, but reloading the tournament failed")
)

// Messages shown to the user when a command fails and the tournament service
// did not supply one of its own.
const (
	msgLoadTournamentsFailed = "Failed to load tournaments"
	msgLoadTournamentFailed  = "Failed to load tournament"
	msgRegisterFailed        = "Failed to register for tournament"
	msgUnregisterFailed      = "Failed to unregister from tournament"
)

// userMessager is implemented by errors that carry a message fit for display.
type userMessager interface {
	UserMessage() string
}

// userMessage classifies a command failure into the single message the
// screen renders.
func userMessage(err error, fallback string) string {
	var um userMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
