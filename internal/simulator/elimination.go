package simulator

import (
	"errors"
	"sort"

	"poker-platform/tournament-sync/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EliminatePlayer busts a player out. The player finishes in the position
// equal to the number of players left, collects that position's prize and
// gives their chips to eliminatorID, or to the table's chip leader when no
// eliminator is named. Tables are consolidated afterwards and the last
// player standing wins.
func (s *Service) EliminatePlayer(tournamentID, playerID, eliminatorID string) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		rec, err := loadTournament(tx, tournamentID)
		if err != nil {
			return err
		}
		return s.eliminateLocked(tx, rec, playerID, eliminatorID)
	})
	if err != nil {
		return nil, err
	}
	return s.snapshot(s.db, tournamentID)
}

func (s *Service) eliminateLocked(tx *gorm.DB, rec *tournamentRecord, playerID, eliminatorID string) error {
	if !rec.Status.IsInPlay() {
		return ErrTournamentNotInPlay
	}

	var active []playerRecord
	if err := tx.Where("tournament_id = ? AND eliminated = ?", rec.ID, false).
		Order("seq ASC").
		Find(&active).Error; err != nil {
		return err
	}

	busted := -1
	for i := range active {
		if active[i].ID == playerID {
			busted = i
			break
		}
	}
	if busted < 0 {
		var known int64
		if err := tx.Model(&playerRecord{}).Where("tournament_id = ? AND id = ?", rec.ID, playerID).Count(&known).Error; err != nil {
			return err
		}
		if known > 0 {
			return ErrPlayerAlreadyEliminated
		}
		return ErrPlayerNotFound
	}
	player := active[busted]

	prizes, err := rec.prizeStructure()
	if err != nil {
		return err
	}
	position := len(active)
	prize := models.CalculatePrizeAmounts(rec.PrizePool, prizes)[position]

	if receiver := chipReceiver(active, player, eliminatorID); receiver != nil && player.Chips > 0 {
		total := receiver.Chips + player.Chips
		if err := tx.Model(&playerRecord{}).Where("id = ?", receiver.ID).Update("chips", total).Error; err != nil {
			return err
		}
		receiver.Chips = total
	} else if eliminatorID != "" && receiver == nil {
		return ErrPlayerNotFound
	}

	now := s.now()
	level := rec.CurrentLevel
	if err := tx.Model(&playerRecord{}).Where("id = ?", player.ID).Updates(map[string]any{
		"eliminated":          true,
		"chips":               0,
		"finish_position":     position,
		"prize_money":         prize,
		"eliminated_at_level": level,
		"eliminated_at":       now,
		"table_id":            "",
		"seat_number":         0,
	}).Error; err != nil {
		return err
	}

	log.Info().
		Str("tournament_id", rec.ID).
		Str("player_id", player.ID).
		Int("position", position).
		Int("prize", prize).
		Msg("player eliminated")

	if position-1 <= 1 {
		return s.finishLocked(tx, rec)
	}

	if err := consolidateTables(tx, rec); err != nil {
		return err
	}
	if rec.Status == models.StatusRunning {
		final, err := finalTableReached(tx, rec)
		if err != nil {
			return err
		}
		if final {
			return setStatus(tx, rec, models.StatusFinalTable)
		}
	}
	return nil
}

// chipReceiver picks who collects a busted player's chips: the named
// eliminator, else the chip leader at the busted player's table, else the
// chip leader overall. It returns nil when eliminatorID is set but unknown.
func chipReceiver(active []playerRecord, busted playerRecord, eliminatorID string) *playerRecord {
	if eliminatorID != "" {
		for i := range active {
			if active[i].ID == eliminatorID && active[i].ID != busted.ID {
				return &active[i]
			}
		}
		return nil
	}

	var tableLeader, leader *playerRecord
	for i := range active {
		p := &active[i]
		if p.ID == busted.ID {
			continue
		}
		if leader == nil || p.Chips > leader.Chips {
			leader = p
		}
		if busted.TableID != "" && p.TableID == busted.TableID && (tableLeader == nil || p.Chips > tableLeader.Chips) {
			tableLeader = p
		}
	}
	if tableLeader != nil {
		return tableLeader
	}
	return leader
}

// finishLocked crowns the last player standing and closes the tournament.
func (s *Service) finishLocked(tx *gorm.DB, rec *tournamentRecord) error {
	if rec.Status != models.StatusFinalTable {
		if err := setStatus(tx, rec, models.StatusFinalTable); err != nil {
			return err
		}
	}

	var winner playerRecord
	err := tx.Where("tournament_id = ? AND eliminated = ?", rec.ID, false).First(&winner).Error
	switch {
	case err == nil:
		prizes, err := rec.prizeStructure()
		if err != nil {
			return err
		}
		if err := tx.Model(&playerRecord{}).Where("id = ?", winner.ID).Updates(map[string]any{
			"finish_position": 1,
			"prize_money":     models.CalculatePrizeAmounts(rec.PrizePool, prizes)[1],
		}).Error; err != nil {
			return err
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	now := s.now()
	if err := tx.Model(rec).Updates(map[string]any{
		"finished_at":      now,
		"level_started_at": nil,
		"level_ends_at":    nil,
	}).Error; err != nil {
		return err
	}
	rec.FinishedAt = &now
	rec.LevelStartedAt = nil
	rec.LevelEndsAt = nil

	if err := setStatus(tx, rec, models.StatusFinished); err != nil {
		return err
	}
	log.Info().Str("tournament_id", rec.ID).Str("winner_id", winner.ID).Msg("tournament finished")
	return nil
}

// PlayHands deals one simulated hand at every open table of every
// tournament in play. Two random players go to showdown and the better hand
// wins a random share of the other's stack, or all of it; a player left with
// no chips is eliminated by the winner. Split pots move no chips.
func (s *Service) PlayHands() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var running []tournamentRecord
	if err := s.db.Where("status IN ?",
		[]models.TournamentStatus{models.StatusRunning, models.StatusFinalTable}).
		Find(&running).Error; err != nil {
		return err
	}

	for _, rec := range running {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			r := rec
			return s.playHandsLocked(tx, &r)
		})
		if err != nil {
			log.Error().Err(err).Str("tournament_id", rec.ID).Msg("hand simulation failed")
			return err
		}
	}
	return nil
}

func (s *Service) playHandsLocked(tx *gorm.DB, rec *tournamentRecord) error {
	loads, err := openTables(tx, rec.ID)
	if err != nil {
		return err
	}

	type bust struct{ loser, winner string }
	var busts []bust

	for _, l := range loads {
		if len(l.players) < 2 {
			continue
		}
		seats := make([]int, len(l.players))
		for i, p := range l.players {
			seats[i] = p.SeatNumber
		}
		sort.Ints(seats)

		dealer := seats[0]
		for _, seat := range seats {
			if seat > l.table.DealerPosition {
				dealer = seat
				break
			}
		}
		if err := tx.Model(&tableRecord{}).Where("id = ?", l.table.ID).Updates(map[string]any{
			"hand_number":     l.table.HandNumber + 1,
			"dealer_position": dealer,
		}).Error; err != nil {
			return err
		}

		ai := s.rng.Intn(len(l.players))
		bi := s.rng.Intn(len(l.players) - 1)
		if bi >= ai {
			bi++
		}
		result, scoreA, scoreB := showdown(s.rng)
		if result == 0 {
			continue
		}
		winner, loser := l.players[ai], l.players[bi]
		winning := scoreA
		if result < 0 {
			winner, loser = loser, winner
			winning = scoreB
		}

		pot := loser.Chips
		if s.rng.Intn(4) != 0 {
			pot = 1 + s.rng.Intn(max(loser.Chips/2, 1))
		}
		if pot > loser.Chips {
			pot = loser.Chips
		}
		if err := tx.Model(&playerRecord{}).Where("id = ?", winner.ID).Update("chips", winner.Chips+pot).Error; err != nil {
			return err
		}
		if err := tx.Model(&playerRecord{}).Where("id = ?", loser.ID).Update("chips", loser.Chips-pot).Error; err != nil {
			return err
		}
		log.Debug().
			Str("tournament_id", rec.ID).
			Int("table", l.table.TableNumber).
			Int("hand", l.table.HandNumber+1).
			Str("winner_id", winner.ID).
			Str("hand_rank", winning.Rank().String()).
			Int("pot", pot).
			Msg("hand played")
		if loser.Chips-pot == 0 {
			busts = append(busts, bust{loser: loser.ID, winner: winner.ID})
		}
	}

	for _, b := range busts {
		if rec.Status == models.StatusFinished {
			break
		}
		if err := s.eliminateLocked(tx, rec, b.loser, b.winner); err != nil {
			return err
		}
	}
	return nil
}
