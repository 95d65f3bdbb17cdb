package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// LoadTournaments fetches the tournament summary list.
func (s *Store) LoadTournaments(ctx context.Context) error {
	s.update(func(st *State) {
		st.Loading = true
		st.Error = ""
	})

	tournaments, err := s.api.ListTournaments(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load tournaments")
		s.update(func(st *State) {
			st.Loading = false
			st.Error = userMessage(err, msgLoadTournamentsFailed)
		})
		return fmt.Errorf("load tournaments: %w", err)
	}

	s.update(func(st *State) {
		st.Tournaments = tournaments
		st.Loading = false
	})
	log.Debug().Int("count", len(tournaments)).Msg("loaded tournaments")
	return nil
}

// LoadTournament fetches the full snapshot of one tournament, makes it the
// active tournament and resolves the viewer's player and table in it.
func (s *Store) LoadTournament(ctx context.Context, tournamentID string) error {
	if tournamentID == "" {
		return ErrEmptyTournamentID
	}

	s.update(func(st *State) {
		st.Loading = true
		st.Error = ""
	})

	t, err := s.api.GetTournament(ctx, tournamentID)
	if err != nil {
		log.Error().Err(err).Str("tournament_id", tournamentID).Msg("failed to load tournament")
		s.update(func(st *State) {
			st.Loading = false
			st.Error = userMessage(err, msgLoadTournamentFailed)
		})
		return fmt.Errorf("load tournament %s: %w", tournamentID, err)
	}

	snapshot := t.Clone()
	s.update(func(st *State) {
		s.applySnapshotLocked(st, snapshot)
		st.Loading = false
	})
	return nil
}

// RegisterForTournament registers the viewer and then reloads the tournament
// so the store holds a snapshot that includes the new registration. The
// player returned by registration becomes the viewer's identity even when
// the reload fails; the next successful fetch reconciles it.
func (s *Store) RegisterForTournament(ctx context.Context, params RegisterParams) error {
	if params.TournamentID == "" {
		return ErrEmptyTournamentID
	}
	if params.PlayerName == "" {
		return ErrEmptyPlayerName
	}

	s.update(func(st *State) {
		st.Registering = true
		st.Error = ""
	})

	player, err := s.api.Register(ctx, params.TournamentID, params.PlayerName)
	if err != nil {
		log.Error().Err(err).
			Str("tournament_id", params.TournamentID).
			Str("player_name", params.PlayerName).
			Msg("registration failed")
		s.update(func(st *State) {
			st.Registering = false
			st.Error = userMessage(err, msgRegisterFailed)
		})
		return fmt.Errorf("register for tournament %s: %w", params.TournamentID, err)
	}

	me := player.Clone()
	s.update(func(st *State) {
		st.MyPlayer = &me
		st.Registering = false
		s.playerID = me.ID
	})
	log.Info().
		Str("tournament_id", params.TournamentID).
		Str("player_id", me.ID).
		Msg("registered for tournament")

	if err := s.LoadTournament(ctx, params.TournamentID); err != nil {
		return fmt.Errorf("%w: %w", ErrReloadAfterRegister, err)
	}
	return nil
}

// UnregisterFromTournament withdraws the viewer's registration. Without a
// known player there is nothing to withdraw and it returns nil.
func (s *Store) UnregisterFromTournament(ctx context.Context, tournamentID string) error {
	if tournamentID == "" {
		return ErrEmptyTournamentID
	}

	me := s.Snapshot().MyPlayer
	if me == nil {
		return nil
	}

	s.update(func(st *State) {
		st.Registering = true
		st.Error = ""
	})

	if err := s.api.Unregister(ctx, tournamentID, me.ID); err != nil {
		log.Error().Err(err).
			Str("tournament_id", tournamentID).
			Str("player_id", me.ID).
			Msg("unregistration failed")
		s.update(func(st *State) {
			st.Registering = false
			st.Error = userMessage(err, msgUnregisterFailed)
		})
		return fmt.Errorf("unregister from tournament %s: %w", tournamentID, err)
	}

	s.update(func(st *State) {
		st.MyPlayer = nil
		st.MyTable = nil
		st.Registering = false
		if s.playerID == me.ID {
			s.playerID = ""
		}
	})
	log.Info().
		Str("tournament_id", tournamentID).
		Str("player_id", me.ID).
		Msg("unregistered from tournament")

	return s.LoadTournament(ctx, tournamentID)
}
