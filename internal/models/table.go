package models

type TournamentTable struct {
	ID             string             `json:"id"`
	TableNumber    int                `json:"tableNumber"`
	MaxSeats       int                `json:"maxSeats"`
	Players        []TournamentPlayer `json:"players"`
	DealerPosition int                `json:"dealerPosition"`
	HandNumber     int                `json:"handNumber"`
}

func (t TournamentTable) HasPlayer(playerID string) bool {
	for _, p := range t.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// OpenSeats returns how many seats are still free at the table.
func (t TournamentTable) OpenSeats() int {
	if t.MaxSeats <= len(t.Players) {
		return 0
	}
	return t.MaxSeats - len(t.Players)
}

func (t TournamentTable) Clone() TournamentTable {
	t.Players = clonePlayers(t.Players)
	return t
}
