package models

import "time"

type TournamentPlayer struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	IsBot             bool      `json:"isBot"`
	Chips             int       `json:"chips"`
	TableID           string    `json:"tableId,omitempty"`
	SeatNumber        int       `json:"seatNumber,omitempty"`
	IsEliminated      bool      `json:"isEliminated"`
	FinishPosition    *int      `json:"finishPosition,omitempty"`
	PrizeMoney        int       `json:"prizeMoney"`
	EliminatedAtLevel *int      `json:"eliminatedAtLevel,omitempty"`
	RegisteredAt      time.Time `json:"registeredAt"`
}

// IsInTheMoney reports whether the player finished in a paid position.
func (p TournamentPlayer) IsInTheMoney() bool {
	return p.PrizeMoney > 0
}

func (p TournamentPlayer) Clone() TournamentPlayer {
	if p.FinishPosition != nil {
		v := *p.FinishPosition
		p.FinishPosition = &v
	}
	if p.EliminatedAtLevel != nil {
		v := *p.EliminatedAtLevel
		p.EliminatedAtLevel = &v
	}
	return p
}
