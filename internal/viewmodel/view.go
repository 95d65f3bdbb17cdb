// Package viewmodel merges the store's state, its derived views and the
// countdown into the single object a tournament screen renders.
package viewmodel

import (
	"poker-platform/tournament-sync/internal/countdown"
	"poker-platform/tournament-sync/internal/models"
	"poker-platform/tournament-sync/internal/store"
)

// View is everything a tournament screen shows, taken from one store
// snapshot.
type View struct {
	Tournament       *models.Tournament       `json:"tournament,omitempty"`
	MyTable          *models.TournamentTable  `json:"myTable,omitempty"`
	MyPlayer         *models.TournamentPlayer `json:"myPlayer,omitempty"`
	CurrentBlinds    *models.BlindLevel       `json:"currentBlinds,omitempty"`
	NextBlinds       *models.BlindLevel       `json:"nextBlinds,omitempty"`
	TimeToNextLevel  string                   `json:"timeToNextLevel"`
	Countdown        countdown.Reading        `json:"countdown"`
	RemainingPlayers int                      `json:"remainingPlayers"`
	TotalPlayers     int                      `json:"totalPlayers"`
	AverageStack     int                      `json:"averageStack"`
	MyRank           int                      `json:"myRank"`
	IsOnBreak        bool                     `json:"isOnBreak"`
	IsFinalTable     bool                     `json:"isFinalTable"`
	IsEliminated     bool                     `json:"isEliminated"`
	InTheMoney       bool                     `json:"inTheMoney"`
	OnTheBubble      bool                     `json:"onTheBubble"`
	Connection       store.ConnectionStatus   `json:"connection"`
	Loading          bool                     `json:"loading"`
	Error            string                   `json:"error,omitempty"`
}

type Input struct {
	State   store.State
	Derived store.Derived
	Reading countdown.Reading
}

// Compose merges in into a View. It has no side effects.
func Compose(in Input) View {
	st, d := in.State, in.Derived
	v := View{
		Tournament:       st.ActiveTournament,
		MyTable:          st.MyTable,
		MyPlayer:         st.MyPlayer,
		CurrentBlinds:    d.CurrentBlinds,
		NextBlinds:       d.NextBlinds,
		TimeToNextLevel:  in.Reading.Formatted,
		Countdown:        in.Reading,
		RemainingPlayers: d.RemainingPlayers,
		TotalPlayers:     d.TotalPlayers,
		AverageStack:     d.AverageStack,
		MyRank:           d.MyRank,
		IsOnBreak:        d.IsOnBreak,
		IsFinalTable:     d.IsFinalTable,
		IsEliminated:     d.IsEliminated,
		Connection:       st.ConnectionStatus,
		Loading:          st.Loading,
		Error:            st.Error,
	}
	if v.TimeToNextLevel == "" {
		v.TimeToNextLevel = models.FormatTimeRemaining(0)
	}
	if st.MyPlayer != nil {
		v.InTheMoney = st.MyPlayer.IsInTheMoney()
	}
	if t := st.ActiveTournament; t != nil && t.Status.IsInPlay() {
		v.OnTheBubble = models.IsOnTheBubble(d.RemainingPlayers, t.Config.PrizeStructure.PaidPositions())
	}
	return v
}

// Build composes the current view of s. Every field comes from the same
// snapshot.
func Build(s *store.Store, reading countdown.Reading) View {
	st := s.Snapshot()
	return Compose(Input{
		State:   st,
		Derived: s.Derive(st),
		Reading: reading,
	})
}
