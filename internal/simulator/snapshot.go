package simulator

import (
	"poker-platform/tournament-sync/internal/models"

	"gorm.io/gorm"
)

// Snapshot returns the full published view of one tournament.
func (s *Service) Snapshot(tournamentID string) (*models.Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(s.db, tournamentID)
}

func (s *Service) snapshot(tx *gorm.DB, tournamentID string) (*models.Tournament, error) {
	rec, err := loadTournament(tx, tournamentID)
	if err != nil {
		return nil, err
	}
	levels, err := rec.blindLevels()
	if err != nil {
		return nil, err
	}
	prizes, err := rec.prizeStructure()
	if err != nil {
		return nil, err
	}

	var players []playerRecord
	if err := tx.Where("tournament_id = ?", rec.ID).Order("seq ASC").Find(&players).Error; err != nil {
		return nil, err
	}
	registered := make([]models.TournamentPlayer, len(players))
	for i, p := range players {
		registered[i] = p.toModel()
	}

	loads, err := openTables(tx, rec.ID)
	if err != nil {
		return nil, err
	}
	tables := make([]models.TournamentTable, 0, len(loads))
	for _, l := range loads {
		seated := make([]models.TournamentPlayer, len(l.players))
		for i, p := range l.players {
			seated[i] = p.toModel()
		}
		tables = append(tables, models.TournamentTable{
			ID:             l.table.ID,
			TableNumber:    l.table.TableNumber,
			MaxSeats:       l.table.MaxSeats,
			Players:        seated,
			DealerPosition: l.table.DealerPosition,
			HandNumber:     l.table.HandNumber,
		})
	}

	stats := models.ComputeStackStats(registered)
	t := &models.Tournament{
		ID:     rec.ID,
		Name:   rec.Name,
		Status: rec.Status,
		Config: models.TournamentConfig{
			BuyIn:                rec.BuyIn,
			StartingChips:        rec.StartingChips,
			MinPlayers:           rec.MinPlayers,
			MaxPlayers:           rec.MaxPlayers,
			PlayersPerTable:      rec.PlayersPerTable,
			BlindLevels:          levels,
			PrizeStructure:       prizes,
			BreakEveryLevels:     rec.BreakEveryLevels,
			BreakDurationSeconds: rec.BreakDurationSeconds,
		},
		CurrentLevel:      rec.CurrentLevel,
		CurrentBlinds:     models.FindBlindLevel(rec.CurrentLevel, levels),
		LevelStartTime:    rec.LevelStartedAt,
		LevelEndTime:      rec.LevelEndsAt,
		RegisteredPlayers: registered,
		Tables:            tables,
		TotalPlayers:      stats.TotalPlayers,
		RemainingPlayers:  stats.RemainingPlayers,
		EliminatedCount:   stats.EliminatedCount,
		TotalChips:        stats.TotalChips,
		AverageStack:      stats.AverageStack,
		LargestStack:      stats.LargestStack,
		SmallestStack:     stats.SmallestStack,
		PrizePool:         rec.PrizePool,
		CreatedAt:         rec.CreatedAt,
		StartedAt:         rec.StartedAt,
		FinishedAt:        rec.FinishedAt,
	}
	return t, nil
}

// ListTournaments returns a summary of every tournament, newest first.
func (s *Service) ListTournaments() ([]models.TournamentListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var recs []tournamentRecord
	if err := s.db.Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		TournamentID string
		Count        int
	}
	var rows []countRow
	if err := s.db.Model(&playerRecord{}).
		Select("tournament_id, COUNT(*) AS count").
		Group("tournament_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.TournamentID] = r.Count
	}

	items := make([]models.TournamentListItem, 0, len(recs))
	for _, rec := range recs {
		start := rec.StartTime
		if rec.StartedAt != nil {
			start = rec.StartedAt
		}
		items = append(items, models.TournamentListItem{
			ID:              rec.ID,
			Name:            rec.Name,
			Status:          rec.Status,
			BuyIn:           rec.BuyIn,
			StartingChips:   rec.StartingChips,
			RegisteredCount: counts[rec.ID],
			MaxPlayers:      rec.MaxPlayers,
			CurrentLevel:    rec.CurrentLevel,
			PrizePool:       rec.PrizePool,
			StartTime:       start,
		})
	}
	return items, nil
}
