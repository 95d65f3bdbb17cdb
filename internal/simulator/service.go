// Package simulator is a development stand-in for the tournament service:
// it stores tournaments in a database, runs their blind clock and seats,
// busts and pays players, and serves snapshots in the shape clients poll.
package simulator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"poker-platform/tournament-sync/internal/models"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	DefaultPlayersPerTable = 9
	DefaultStructure       = "standard"
	DefaultPrizeStructure  = "top_3"

	maxNameLength = 50
)

// CreateRequest describes a new tournament. Presets are looked up by name in
// models.StructurePresets and models.PrizeStructurePresets.
type CreateRequest struct {
	Name                 string     `json:"name" yaml:"name"`
	BuyIn                int        `json:"buyIn" yaml:"buy_in"`
	StartingChips        int        `json:"startingChips" yaml:"starting_chips"`
	MinPlayers           int        `json:"minPlayers" yaml:"min_players"`
	MaxPlayers           int        `json:"maxPlayers" yaml:"max_players"`
	PlayersPerTable      int        `json:"playersPerTable" yaml:"players_per_table"`
	StructurePreset      string     `json:"structurePreset" yaml:"structure_preset"`
	PrizeStructurePreset string     `json:"prizeStructurePreset" yaml:"prize_structure_preset"`
	BreakEveryLevels     int        `json:"breakEveryLevels" yaml:"break_every_levels"`
	BreakDurationSeconds int        `json:"breakDurationSeconds" yaml:"break_duration_seconds"`
	AutoStart            bool       `json:"autoStart" yaml:"auto_start"`
	StartTime            *time.Time `json:"startTime,omitempty" yaml:"start_time"`
}

// Service owns every tournament in the simulator. Mutations are serialized;
// each runs in its own database transaction.
type Service struct {
	db    *gorm.DB
	clock clockwork.Clock

	mu  sync.Mutex
	rng *rand.Rand
	seq int
}

type Option func(*Service)

func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) { s.clock = clock }
}

// WithSeed makes seating and bust-outs reproducible.
func WithSeed(seed int64) Option {
	return func(s *Service) { s.rng = rand.New(rand.NewSource(seed)) }
}

func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:    db,
		clock: clockwork.NewRealClock(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) now() time.Time {
	return s.clock.Now().UTC()
}

// CreateTournament validates req and stores a new REGISTERING tournament.
func (s *Service) CreateTournament(req CreateRequest) (*models.Tournament, error) {
	req = withDefaults(req)
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	structure, ok := models.GetStructurePreset(req.StructurePreset)
	if !ok {
		return nil, ErrStructureNotFound
	}
	if err := models.ValidateStructure(structure); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	prizes, ok := models.GetPrizeStructurePreset(req.PrizeStructurePreset)
	if !ok {
		return nil, ErrPrizeStructureNotFound
	}
	if err := models.ValidatePrizeStructure(prizes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrizeStructure, err)
	}

	structureJSON, err := json.Marshal(structure.BlindLevels)
	if err != nil {
		return nil, err
	}
	prizesJSON, err := json.Marshal(prizes)
	if err != nil {
		return nil, err
	}

	rec := &tournamentRecord{
		ID:                   uuid.New().String(),
		Name:                 req.Name,
		Status:               models.StatusRegistering,
		BuyIn:                req.BuyIn,
		StartingChips:        req.StartingChips,
		MinPlayers:           req.MinPlayers,
		MaxPlayers:           req.MaxPlayers,
		PlayersPerTable:      req.PlayersPerTable,
		Structure:            string(structureJSON),
		PrizeStructure:       string(prizesJSON),
		BreakEveryLevels:     req.BreakEveryLevels,
		BreakDurationSeconds: req.BreakDurationSeconds,
		AutoStart:            req.AutoStart,
		StartTime:            req.StartTime,
		CreatedAt:            s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.Create(rec).Error; err != nil {
		return nil, err
	}

	log.Info().
		Str("tournament_id", rec.ID).
		Str("name", rec.Name).
		Str("structure", req.StructurePreset).
		Msg("tournament created")
	return s.snapshot(s.db, rec.ID)
}

func withDefaults(req CreateRequest) CreateRequest {
	if req.StartingChips == 0 {
		req.StartingChips = 1500
	}
	if req.MinPlayers == 0 {
		req.MinPlayers = 2
	}
	if req.MaxPlayers == 0 {
		req.MaxPlayers = 9
	}
	if req.PlayersPerTable == 0 {
		req.PlayersPerTable = DefaultPlayersPerTable
	}
	if req.StructurePreset == "" {
		req.StructurePreset = DefaultStructure
	}
	if req.PrizeStructurePreset == "" {
		req.PrizeStructurePreset = DefaultPrizeStructure
	}
	return req
}

func validateCreateRequest(req CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" || utf8.RuneCountInString(req.Name) > 100 {
		return ErrInvalidTournamentName
	}
	if req.BuyIn < 0 {
		return ErrInvalidBuyIn
	}
	if req.StartingChips < 100 {
		return ErrInvalidStartingChips
	}
	if req.MaxPlayers < 2 || req.MaxPlayers > 1000 {
		return ErrInvalidMaxPlayers
	}
	if req.MinPlayers < 2 {
		return ErrInvalidMinPlayers
	}
	if req.MinPlayers > req.MaxPlayers {
		return ErrMinPlayersGreaterThanMax
	}
	if req.PlayersPerTable < 2 || req.PlayersPerTable > 10 {
		return ErrInvalidPlayersPerTable
	}
	if req.BreakEveryLevels < 0 || req.BreakDurationSeconds < 0 {
		return ErrInvalidBreakSchedule
	}
	return nil
}

// RegisterPlayer adds a player with the starting stack and adds the buy-in
// to the prize pool. Names are unique within a tournament, ignoring case.
func (s *Service) RegisterPlayer(tournamentID, name string) (*models.TournamentPlayer, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\x00", ""))
	if name == "" {
		return nil, ErrEmptyPlayerName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, ErrPlayerNameTooLong
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var player playerRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		rec, err := loadTournament(tx, tournamentID)
		if err != nil {
			return err
		}
		p, err := s.registerLocked(tx, rec, name, false)
		if err != nil {
			return err
		}
		player = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("tournament_id", tournamentID).
		Str("player_id", player.ID).
		Str("player_name", player.Name).
		Msg("player registered")
	p := player.toModel()
	return &p, nil
}

func (s *Service) registerLocked(tx *gorm.DB, rec *tournamentRecord, name string, bot bool) (*playerRecord, error) {
	if rec.Status != models.StatusRegistering {
		return nil, ErrTournamentNotRegistering
	}

	var count int64
	if err := tx.Model(&playerRecord{}).Where("tournament_id = ?", rec.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	if int(count) >= rec.MaxPlayers {
		return nil, ErrTournamentFull
	}

	var taken int64
	if err := tx.Model(&playerRecord{}).
		Where("tournament_id = ? AND LOWER(name) = ?", rec.ID, strings.ToLower(name)).
		Count(&taken).Error; err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrAlreadyRegistered
	}

	s.seq++
	player := &playerRecord{
		ID:           uuid.New().String(),
		TournamentID: rec.ID,
		Name:         name,
		IsBot:        bot,
		Chips:        rec.StartingChips,
		RegisteredAt: s.now(),
		Seq:          s.seq,
	}
	if err := tx.Create(player).Error; err != nil {
		return nil, err
	}

	pool := rec.PrizePool + rec.BuyIn
	if err := tx.Model(rec).Update("prize_pool", pool).Error; err != nil {
		return nil, err
	}
	rec.PrizePool = pool
	return player, nil
}

// UnregisterPlayer withdraws a registration and refunds the buy-in from the
// prize pool. Only possible while the tournament is registering.
func (s *Service) UnregisterPlayer(tournamentID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		rec, err := loadTournament(tx, tournamentID)
		if err != nil {
			return err
		}
		if rec.Status != models.StatusRegistering {
			return ErrCannotUnregister
		}

		result := tx.Where("tournament_id = ? AND id = ?", tournamentID, playerID).Delete(&playerRecord{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotRegistered
		}

		return tx.Model(rec).Update("prize_pool", rec.PrizePool-rec.BuyIn).Error
	})
	if err != nil {
		return err
	}

	log.Info().Str("tournament_id", tournamentID).Str("player_id", playerID).Msg("player unregistered")
	return nil
}

// AddBots registers up to count bots, stopping early when the tournament
// fills. It returns the bots added.
func (s *Service) AddBots(tournamentID string, count int) ([]models.TournamentPlayer, error) {
	if count <= 0 {
		return nil, ErrInvalidBotCount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var added []models.TournamentPlayer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		rec, err := loadTournament(tx, tournamentID)
		if err != nil {
			return err
		}
		if rec.Status != models.StatusRegistering {
			return ErrTournamentNotRegistering
		}

		var existing int64
		if err := tx.Model(&playerRecord{}).Where("tournament_id = ? AND is_bot = ?", rec.ID, true).Count(&existing).Error; err != nil {
			return err
		}

		n := int(existing)
		for len(added) < count {
			n++
			p, err := s.registerLocked(tx, rec, fmt.Sprintf("Bot %d", n), true)
			switch {
			case errors.Is(err, ErrTournamentFull):
				return nil
			case errors.Is(err, ErrAlreadyRegistered):
				continue
			case err != nil:
				return err
			}
			added = append(added, p.toModel())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("tournament_id", tournamentID).Int("count", len(added)).Msg("bots registered")
	return added, nil
}

func loadTournament(tx *gorm.DB, tournamentID string) (*tournamentRecord, error) {
	var rec tournamentRecord
	if err := tx.Where("id = ?", tournamentID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (rec *tournamentRecord) blindLevels() ([]models.BlindLevel, error) {
	var levels []models.BlindLevel
	if err := json.Unmarshal([]byte(rec.Structure), &levels); err != nil {
		return nil, fmt.Errorf("failed to parse tournament structure: %w", err)
	}
	return levels, nil
}

func (rec *tournamentRecord) prizeStructure() (models.PrizeStructure, error) {
	var prizes models.PrizeStructure
	if err := json.Unmarshal([]byte(rec.PrizeStructure), &prizes); err != nil {
		return prizes, fmt.Errorf("failed to parse prize structure: %w", err)
	}
	return prizes, nil
}

// setStatus moves rec to the next status, refusing moves the lifecycle does
// not allow.
func setStatus(tx *gorm.DB, rec *tournamentRecord, to models.TournamentStatus) error {
	from := rec.Status
	if !models.CanTransition(from, to) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}
	if err := tx.Model(rec).Update("status", to).Error; err != nil {
		return err
	}
	log.Info().
		Str("tournament_id", rec.ID).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("tournament status changed")
	rec.Status = to
	return nil
}
