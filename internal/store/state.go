package store

import "poker-platform/tournament-sync/internal/models"

type ConnectionStatus string

const (
	ConnectionDisconnected ConnectionStatus = "disconnected"
	ConnectionConnecting   ConnectionStatus = "connecting"
	ConnectionConnected    ConnectionStatus = "connected"
)

// State is one immutable snapshot of the store. Every change produces a new
// State; the values it points to are never modified afterwards and must be
// treated as read-only by subscribers.
type State struct {
	Tournaments      []models.TournamentListItem `json:"tournaments"`
	ActiveTournament *models.Tournament          `json:"activeTournament,omitempty"`
	MyTable          *models.TournamentTable     `json:"myTable,omitempty"`
	MyPlayer         *models.TournamentPlayer    `json:"myPlayer,omitempty"`
	ConnectionStatus ConnectionStatus            `json:"connectionStatus"`
	Loading          bool                        `json:"loading"`
	Registering      bool                        `json:"registering"`
	Error            string                      `json:"error,omitempty"`
}

func initialState() State {
	return State{
		Tournaments:      []models.TournamentListItem{},
		ConnectionStatus: ConnectionDisconnected,
	}
}
