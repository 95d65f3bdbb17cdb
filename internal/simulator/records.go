package simulator

import (
	"time"

	"poker-platform/tournament-sync/internal/models"
)

// tournamentRecord is one tournament row. The blind and prize structures are
// stored as JSON text.
type tournamentRecord struct {
	ID                   string                  `gorm:"column:id;type:varchar(36);primaryKey"`
	Name                 string                  `gorm:"column:name;type:varchar(100);not null"`
	Status               models.TournamentStatus `gorm:"column:status;type:varchar(20);not null;index:idx_status"`
	BuyIn                int                     `gorm:"column:buy_in;not null"`
	StartingChips        int                     `gorm:"column:starting_chips;not null"`
	MinPlayers           int                     `gorm:"column:min_players;not null;default:2"`
	MaxPlayers           int                     `gorm:"column:max_players;not null"`
	PlayersPerTable      int                     `gorm:"column:players_per_table;not null;default:9"`
	Structure            string                  `gorm:"column:structure;type:text"`
	PrizeStructure       string                  `gorm:"column:prize_structure;type:text"`
	BreakEveryLevels     int                     `gorm:"column:break_every_levels;default:0"`
	BreakDurationSeconds int                     `gorm:"column:break_duration_seconds;default:0"`
	AutoStart            bool                    `gorm:"column:auto_start;default:false"`
	StartTime            *time.Time              `gorm:"column:start_time"`
	CurrentLevel         int                     `gorm:"column:current_level;default:0"`
	LevelStartedAt       *time.Time              `gorm:"column:level_started_at"`
	LevelEndsAt          *time.Time              `gorm:"column:level_ends_at;index:idx_level_ends_at"`
	PrizePool            int                     `gorm:"column:prize_pool;default:0"`
	CreatedAt            time.Time               `gorm:"column:created_at"`
	StartedAt            *time.Time              `gorm:"column:started_at"`
	FinishedAt           *time.Time              `gorm:"column:finished_at"`
}

func (tournamentRecord) TableName() string {
	return "tournaments"
}

type playerRecord struct {
	ID                string     `gorm:"column:id;type:varchar(36);primaryKey"`
	TournamentID      string     `gorm:"column:tournament_id;type:varchar(36);not null;index:idx_tournament_player"`
	Name              string     `gorm:"column:name;type:varchar(50);not null"`
	IsBot             bool       `gorm:"column:is_bot;default:false"`
	Chips             int        `gorm:"column:chips;not null"`
	TableID           string     `gorm:"column:table_id;type:varchar(36)"`
	SeatNumber        int        `gorm:"column:seat_number;default:0"`
	Eliminated        bool       `gorm:"column:eliminated;default:false"`
	FinishPosition    *int       `gorm:"column:finish_position"`
	PrizeMoney        int        `gorm:"column:prize_money;default:0"`
	EliminatedAtLevel *int       `gorm:"column:eliminated_at_level"`
	RegisteredAt      time.Time  `gorm:"column:registered_at"`
	EliminatedAt      *time.Time `gorm:"column:eliminated_at"`
	// Seq keeps registration order stable when timestamps collide.
	Seq int `gorm:"column:seq;not null"`
}

func (playerRecord) TableName() string {
	return "tournament_players"
}

type tableRecord struct {
	ID             string `gorm:"column:id;type:varchar(36);primaryKey"`
	TournamentID   string `gorm:"column:tournament_id;type:varchar(36);not null;index:idx_tournament_table"`
	TableNumber    int    `gorm:"column:table_number;not null"`
	MaxSeats       int    `gorm:"column:max_seats;not null"`
	DealerPosition int    `gorm:"column:dealer_position;default:0"`
	HandNumber     int    `gorm:"column:hand_number;default:0"`
	Closed         bool   `gorm:"column:closed;default:false"`
}

func (tableRecord) TableName() string {
	return "tournament_tables"
}

func (p playerRecord) toModel() models.TournamentPlayer {
	return models.TournamentPlayer{
		ID:                p.ID,
		Name:              p.Name,
		IsBot:             p.IsBot,
		Chips:             p.Chips,
		TableID:           p.TableID,
		SeatNumber:        p.SeatNumber,
		IsEliminated:      p.Eliminated,
		FinishPosition:    p.FinishPosition,
		PrizeMoney:        p.PrizeMoney,
		EliminatedAtLevel: p.EliminatedAtLevel,
		RegisteredAt:      p.RegisteredAt,
	}
}
