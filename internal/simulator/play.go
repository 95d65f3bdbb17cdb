package simulator

import (
	"errors"
	"time"

	"poker-platform/tournament-sync/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// maxCatchUp bounds how many level changes one clock pass applies to a
// tournament that fell far behind.
const maxCatchUp = 1000

// StartTournament closes registration, seats the field and starts the first
// blind level.
func (s *Service) StartTournament(tournamentID string) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		rec, err := loadTournament(tx, tournamentID)
		if err != nil {
			return err
		}
		return s.startLocked(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return s.snapshot(s.db, tournamentID)
}

func (s *Service) startLocked(tx *gorm.DB, rec *tournamentRecord) error {
	if rec.Status != models.StatusRegistering {
		return ErrTournamentAlreadyStarted
	}

	var players []playerRecord
	if err := tx.Where("tournament_id = ?", rec.ID).Order("seq ASC").Find(&players).Error; err != nil {
		return err
	}
	if len(players) < rec.MinPlayers {
		return ErrNotEnoughPlayers
	}

	levels, err := rec.blindLevels()
	if err != nil {
		return err
	}
	if len(levels) == 0 {
		return models.ErrEmptyBlindStructure
	}

	if err := setStatus(tx, rec, models.StatusStarting); err != nil {
		return err
	}
	if err := s.seatPlayers(tx, rec, players); err != nil {
		return err
	}

	now := s.now()
	first := levels[0]
	ends := now.Add(first.DurationTime())
	if err := tx.Model(rec).Updates(map[string]any{
		"current_level":    first.Level,
		"level_started_at": now,
		"level_ends_at":    ends,
		"started_at":       now,
	}).Error; err != nil {
		return err
	}
	rec.CurrentLevel = first.Level
	rec.LevelStartedAt = &now
	rec.LevelEndsAt = &ends
	rec.StartedAt = &now

	if err := setStatus(tx, rec, models.StatusRunning); err != nil {
		return err
	}

	log.Info().
		Str("tournament_id", rec.ID).
		Int("players", len(players)).
		Int("level", first.Level).
		Msg("tournament started")
	return nil
}

// shouldAutoStart reports whether a registering tournament starts on its
// own: when an auto-start tournament fills, or when its scheduled start time
// passes with enough players.
func shouldAutoStart(rec tournamentRecord, registered int, now time.Time) bool {
	if rec.AutoStart && registered >= rec.MaxPlayers {
		return true
	}
	return rec.StartTime != nil && !rec.StartTime.After(now) && registered >= rec.MinPlayers
}

// Tick starts due tournaments and moves every blind clock that has run out.
// The scheduler calls it every second.
func (s *Service) Tick() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var errs []error

	var registering []tournamentRecord
	if err := s.db.Where("status = ?", models.StatusRegistering).Find(&registering).Error; err != nil {
		return err
	}
	for _, rec := range registering {
		var count int64
		if err := s.db.Model(&playerRecord{}).Where("tournament_id = ?", rec.ID).Count(&count).Error; err != nil {
			errs = append(errs, err)
			continue
		}
		if !shouldAutoStart(rec, int(count), now) {
			continue
		}
		err := s.db.Transaction(func(tx *gorm.DB) error {
			r := rec
			return s.startLocked(tx, &r)
		})
		if err != nil {
			log.Error().Err(err).Str("tournament_id", rec.ID).Msg("auto start failed")
			errs = append(errs, err)
		}
	}

	var inPlay []tournamentRecord
	if err := s.db.Where("status IN ?",
		[]models.TournamentStatus{models.StatusRunning, models.StatusPaused, models.StatusFinalTable}).
		Find(&inPlay).Error; err != nil {
		return errors.Join(append(errs, err)...)
	}
	for _, rec := range inPlay {
		if rec.LevelEndsAt == nil || rec.LevelEndsAt.After(now) {
			continue
		}
		err := s.db.Transaction(func(tx *gorm.DB) error {
			r := rec
			return s.advanceClockLocked(tx, &r, now)
		})
		if err != nil {
			log.Error().Err(err).Str("tournament_id", rec.ID).Msg("blind clock failed")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// advanceClockLocked applies every level change due by now. Each new period
// starts when the previous one ended, so a late pass does not drift the
// schedule.
func (s *Service) advanceClockLocked(tx *gorm.DB, rec *tournamentRecord, now time.Time) error {
	levels, err := rec.blindLevels()
	if err != nil {
		return err
	}

	for i := 0; i < maxCatchUp && rec.LevelEndsAt != nil && !rec.LevelEndsAt.After(now); i++ {
		ended := *rec.LevelEndsAt
		next := models.GetNextBlindLevel(rec.CurrentLevel, levels)

		switch {
		case rec.Status == models.StatusPaused:
			level := models.FindBlindLevel(rec.CurrentLevel, levels)
			if next != nil {
				level = next
			}
			if level == nil {
				return models.ErrUnknownBlindLevel
			}
			if err := s.startPeriod(tx, rec, level.Level, ended, level.DurationTime()); err != nil {
				return err
			}
			resume := models.StatusRunning
			final, err := finalTableReached(tx, rec)
			if err != nil {
				return err
			}
			if final {
				resume = models.StatusFinalTable
			}
			if err := setStatus(tx, rec, resume); err != nil {
				return err
			}

		case next != nil && breakDue(rec):
			if err := s.startPeriod(tx, rec, rec.CurrentLevel, ended, time.Duration(rec.BreakDurationSeconds)*time.Second); err != nil {
				return err
			}
			if err := setStatus(tx, rec, models.StatusPaused); err != nil {
				return err
			}

		case next != nil:
			if err := s.startPeriod(tx, rec, next.Level, ended, next.DurationTime()); err != nil {
				return err
			}
			log.Info().
				Str("tournament_id", rec.ID).
				Int("level", next.Level).
				Int("small_blind", next.SmallBlind).
				Int("big_blind", next.BigBlind).
				Int("ante", next.Ante).
				Msg("blinds increased")

		default:
			// schedule exhausted: the last level repeats
			level := models.FindBlindLevel(rec.CurrentLevel, levels)
			if level == nil {
				return models.ErrUnknownBlindLevel
			}
			if err := s.startPeriod(tx, rec, level.Level, ended, level.DurationTime()); err != nil {
				return err
			}
		}
	}
	return nil
}

func breakDue(rec *tournamentRecord) bool {
	return rec.BreakEveryLevels > 0 &&
		rec.BreakDurationSeconds > 0 &&
		rec.CurrentLevel > 0 &&
		rec.CurrentLevel%rec.BreakEveryLevels == 0
}

func (s *Service) startPeriod(tx *gorm.DB, rec *tournamentRecord, level int, start time.Time, length time.Duration) error {
	ends := start.Add(length)
	if err := tx.Model(rec).Updates(map[string]any{
		"current_level":    level,
		"level_started_at": start,
		"level_ends_at":    ends,
	}).Error; err != nil {
		return err
	}
	rec.CurrentLevel = level
	rec.LevelStartedAt = &start
	rec.LevelEndsAt = &ends
	return nil
}

// finalTableReached reports whether play is down to one table after at
// least one bust-out.
func finalTableReached(tx *gorm.DB, rec *tournamentRecord) (bool, error) {
	var tables, busted int64
	if err := tx.Model(&tableRecord{}).Where("tournament_id = ? AND closed = ?", rec.ID, false).Count(&tables).Error; err != nil {
		return false, err
	}
	if err := tx.Model(&playerRecord{}).Where("tournament_id = ? AND eliminated = ?", rec.ID, true).Count(&busted).Error; err != nil {
		return false, err
	}
	return tables == 1 && busted > 0, nil
}
