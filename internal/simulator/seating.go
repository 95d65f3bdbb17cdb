package simulator

import (
	"sort"

	"poker-platform/tournament-sync/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// seatPlayers shuffles the field and spreads it over the fewest tables,
// as evenly as possible. Seats are numbered from 1.
func (s *Service) seatPlayers(tx *gorm.DB, rec *tournamentRecord, players []playerRecord) error {
	shuffled := make([]playerRecord, len(players))
	copy(shuffled, players)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	distribution := models.DistributePlayersToTables(len(shuffled), rec.PlayersPerTable)
	next := 0
	for i, count := range distribution {
		table := &tableRecord{
			ID:             uuid.New().String(),
			TournamentID:   rec.ID,
			TableNumber:    i + 1,
			MaxSeats:       rec.PlayersPerTable,
			DealerPosition: 1,
		}
		if err := tx.Create(table).Error; err != nil {
			return err
		}

		for seat := 1; seat <= count; seat++ {
			p := shuffled[next]
			next++
			if err := tx.Model(&playerRecord{}).Where("id = ?", p.ID).Updates(map[string]any{
				"table_id":    table.ID,
				"seat_number": seat,
			}).Error; err != nil {
				return err
			}
		}
	}

	log.Info().
		Str("tournament_id", rec.ID).
		Int("tables", len(distribution)).
		Int("players", len(shuffled)).
		Msg("players seated")
	return nil
}

type tableLoad struct {
	table   tableRecord
	players []playerRecord
}

func openTables(tx *gorm.DB, tournamentID string) ([]tableLoad, error) {
	var tables []tableRecord
	if err := tx.Where("tournament_id = ? AND closed = ?", tournamentID, false).
		Order("table_number ASC").
		Find(&tables).Error; err != nil {
		return nil, err
	}

	loads := make([]tableLoad, 0, len(tables))
	for _, t := range tables {
		var players []playerRecord
		if err := tx.Where("table_id = ? AND eliminated = ?", t.ID, false).
			Order("seat_number ASC").
			Find(&players).Error; err != nil {
			return nil, err
		}
		loads = append(loads, tableLoad{table: t, players: players})
	}
	return loads, nil
}

// consolidateTables breaks the emptiest tables once the players left fit on
// fewer tables, moving each player to the emptiest remaining table.
func consolidateTables(tx *gorm.DB, rec *tournamentRecord) error {
	loads, err := openTables(tx, rec.ID)
	if err != nil {
		return err
	}
	if len(loads) <= 1 {
		return nil
	}

	remaining := 0
	for _, l := range loads {
		remaining += len(l.players)
	}
	needed := models.CalculateTablesNeeded(remaining, rec.PlayersPerTable)
	if needed == 0 {
		needed = 1
	}
	if needed >= len(loads) {
		return nil
	}

	sort.SliceStable(loads, func(i, j int) bool {
		return len(loads[i].players) < len(loads[j].players)
	})
	toClose := len(loads) - needed
	closing, keeping := loads[:toClose], loads[toClose:]

	for _, l := range closing {
		for _, p := range l.players {
			target := emptiest(keeping)
			seat := firstFreeSeat(keeping[target])
			if err := tx.Model(&playerRecord{}).Where("id = ?", p.ID).Updates(map[string]any{
				"table_id":    keeping[target].table.ID,
				"seat_number": seat,
			}).Error; err != nil {
				return err
			}
			p.TableID = keeping[target].table.ID
			p.SeatNumber = seat
			keeping[target].players = append(keeping[target].players, p)
			log.Debug().
				Str("tournament_id", rec.ID).
				Str("player_id", p.ID).
				Int("table", keeping[target].table.TableNumber).
				Int("seat", seat).
				Msg("player moved")
		}
		if err := tx.Model(&tableRecord{}).Where("id = ?", l.table.ID).Update("closed", true).Error; err != nil {
			return err
		}
	}

	log.Info().
		Str("tournament_id", rec.ID).
		Int("from", len(loads)).
		Int("to", len(keeping)).
		Msg("tables consolidated")
	return nil
}

func emptiest(loads []tableLoad) int {
	idx := 0
	for i := 1; i < len(loads); i++ {
		if len(loads[i].players) < len(loads[idx].players) {
			idx = i
		}
	}
	return idx
}

func firstFreeSeat(l tableLoad) int {
	taken := make(map[int]bool, len(l.players))
	for _, p := range l.players {
		taken[p.SeatNumber] = true
	}
	seat := 1
	for taken[seat] {
		seat++
	}
	return seat
}
