package store

import (
	"poker-platform/tournament-sync/internal/models"

	"github.com/rs/zerolog/log"
)

// applySnapshotLocked installs t as the active tournament and re-resolves
// the viewer's player and table against it. Must run inside update.
func (s *Store) applySnapshotLocked(st *State, t *models.Tournament) {
	if err := t.Validate(); err != nil {
		log.Warn().Err(err).Str("tournament_id", t.ID).Msg("tournament snapshot violates invariants")
	}
	st.ActiveTournament = t
	st.MyPlayer, st.MyTable = s.resolveIdentityLocked(t)
}

// resolveIdentityLocked finds the viewer in a snapshot. A known player id is
// always looked up by id. Without one, and unless inference is disabled, the
// first human player in registration order is assumed to be the viewer.
func (s *Store) resolveIdentityLocked(t *models.Tournament) (*models.TournamentPlayer, *models.TournamentTable) {
	var me *models.TournamentPlayer
	switch {
	case s.playerID != "":
		me = t.FindPlayer(s.playerID)
	case s.inferIdentity:
		me = firstHumanPlayer(t)
	}
	if me == nil {
		return nil, nil
	}
	return me, t.FindTableForPlayer(me.ID)
}

func firstHumanPlayer(t *models.Tournament) *models.TournamentPlayer {
	for _, p := range t.RegisteredPlayers {
		if !p.IsBot {
			return t.FindPlayer(p.ID)
		}
	}
	return nil
}
