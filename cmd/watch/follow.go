package main

import (
	"poker-platform/tournament-sync/internal/countdown"
	"poker-platform/tournament-sync/internal/models"
	"poker-platform/tournament-sync/internal/store"

	"github.com/rs/zerolog/log"
)

// follow keeps timer on the active tournament's level deadline and logs
// status, level and connection changes. It returns a func that undoes both
// subscriptions.
func follow(st *store.Store, timer *countdown.Timer) func() {
	var (
		status models.TournamentStatus
		level  int
		conn   store.ConnectionStatus
	)

	unsubStore := st.Subscribe(func(s store.State) {
		timer.SetFromTournament(s.ActiveTournament)

		if s.ConnectionStatus != conn {
			log.Info().
				Str("from", string(conn)).
				Str("to", string(s.ConnectionStatus)).
				Msg("connection status changed")
			conn = s.ConnectionStatus
		}

		t := s.ActiveTournament
		if t == nil {
			return
		}
		if t.Status != status {
			log.Info().
				Str("tournament_id", t.ID).
				Str("status", string(t.Status)).
				Int("remaining", t.RemainingPlayers).
				Msg("tournament status changed")
			status = t.Status
		}
		if t.CurrentLevel != level {
			ev := log.Info().Str("tournament_id", t.ID).Int("level", t.CurrentLevel)
			if t.CurrentBlinds != nil {
				ev = ev.Int("small_blind", t.CurrentBlinds.SmallBlind).
					Int("big_blind", t.CurrentBlinds.BigBlind).
					Int("ante", t.CurrentBlinds.Ante)
			}
			ev.Msg("blind level changed")
			level = t.CurrentLevel
		}
	})

	var critical bool
	unsubTimer := timer.Subscribe(func(r countdown.Reading) {
		if r.Critical && !critical {
			log.Warn().Str("remaining", r.Formatted).Msg("blind level ending")
		}
		critical = r.Critical
	})

	return func() {
		unsubStore()
		unsubTimer()
	}
}
