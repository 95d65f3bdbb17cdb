package store

import (
	"context"

	"poker-platform/tournament-sync/internal/models"
)

// TournamentAPI is the remote tournament service the store reads from and
// sends registration commands to.
type TournamentAPI interface {
	ListTournaments(ctx context.Context) ([]models.TournamentListItem, error)
	GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error)
	Register(ctx context.Context, tournamentID, playerName string) (*models.TournamentPlayer, error)
	Unregister(ctx context.Context, tournamentID, playerID string) error
}

// RegisterParams identifies who registers for which tournament
type RegisterParams struct {
	TournamentID string
	PlayerName   string
}
