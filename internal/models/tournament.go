package models

import (
	"errors"
	"fmt"
	"time"
)

type TournamentStatus string

const (
	StatusRegistering TournamentStatus = "REGISTERING"
	StatusStarting    TournamentStatus = "STARTING"
	StatusRunning     TournamentStatus = "RUNNING"
	StatusPaused      TournamentStatus = "PAUSED"
	StatusFinalTable  TournamentStatus = "FINAL_TABLE"
	StatusFinished    TournamentStatus = "FINISHED"
)

// statusTransitions lists the statuses reachable from each status.
// PAUSED is a break and returns to play, possibly straight to the final table.
var statusTransitions = map[TournamentStatus][]TournamentStatus{
	StatusRegistering: {StatusStarting},
	StatusStarting:    {StatusRunning},
	StatusRunning:     {StatusPaused, StatusFinalTable},
	StatusPaused:      {StatusRunning, StatusFinalTable},
	StatusFinalTable:  {StatusPaused, StatusFinished},
	StatusFinished:    nil,
}

// CanTransition reports whether a tournament may move from one status to another.
func CanTransition(from, to TournamentStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsInPlay reports whether hands are being dealt or a break is in progress.
func (s TournamentStatus) IsInPlay() bool {
	switch s {
	case StatusRunning, StatusPaused, StatusFinalTable:
		return true
	}
	return false
}

// TournamentConfig is the fixed configuration a tournament was created with
type TournamentConfig struct {
	BuyIn                int            `json:"buyIn"`
	StartingChips        int            `json:"startingChips"`
	MinPlayers           int            `json:"minPlayers"`
	MaxPlayers           int            `json:"maxPlayers"`
	PlayersPerTable      int            `json:"playersPerTable"`
	BlindLevels          []BlindLevel   `json:"blindLevels"`
	PrizeStructure       PrizeStructure `json:"prizeStructure"`
	BreakEveryLevels     int            `json:"breakEveryLevels,omitempty"`
	BreakDurationSeconds int            `json:"breakDurationSeconds,omitempty"`
}

// Tournament is a complete snapshot of one tournament as published by the
// tournament service. It is always replaced as a whole.
type Tournament struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Status            TournamentStatus   `json:"status"`
	Config            TournamentConfig   `json:"config"`
	CurrentLevel      int                `json:"currentLevel"`
	CurrentBlinds     *BlindLevel        `json:"currentBlinds,omitempty"`
	LevelStartTime    *time.Time         `json:"levelStartTime,omitempty"`
	LevelEndTime      *time.Time         `json:"levelEndTime,omitempty"`
	RegisteredPlayers []TournamentPlayer `json:"registeredPlayers"`
	Tables            []TournamentTable  `json:"tables"`
	TotalPlayers      int                `json:"totalPlayers"`
	RemainingPlayers  int                `json:"remainingPlayers"`
	EliminatedCount   int                `json:"eliminatedCount"`
	TotalChips        int                `json:"totalChips"`
	AverageStack      int                `json:"averageStack"`
	LargestStack      int                `json:"largestStack"`
	SmallestStack     int                `json:"smallestStack"`
	PrizePool         int                `json:"prizePool"`
	CreatedAt         time.Time          `json:"createdAt"`
	StartedAt         *time.Time         `json:"startedAt,omitempty"`
	FinishedAt        *time.Time         `json:"finishedAt,omitempty"`
}

// TournamentListItem is the summary returned when browsing tournaments
type TournamentListItem struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Status          TournamentStatus `json:"status"`
	BuyIn           int              `json:"buyIn"`
	StartingChips   int              `json:"startingChips"`
	RegisteredCount int              `json:"registeredCount"`
	MaxPlayers      int              `json:"maxPlayers"`
	CurrentLevel    int              `json:"currentLevel"`
	PrizePool       int              `json:"prizePool"`
	StartTime       *time.Time       `json:"startTime,omitempty"`
}

// Summary flattens a snapshot into its list representation.
func (t *Tournament) Summary() TournamentListItem {
	return TournamentListItem{
		ID:              t.ID,
		Name:            t.Name,
		Status:          t.Status,
		BuyIn:           t.Config.BuyIn,
		StartingChips:   t.Config.StartingChips,
		RegisteredCount: len(t.RegisteredPlayers),
		MaxPlayers:      t.Config.MaxPlayers,
		CurrentLevel:    t.CurrentLevel,
		PrizePool:       t.PrizePool,
		StartTime:       t.StartedAt,
	}
}

// FindPlayer returns the registered player with the given id.
func (t *Tournament) FindPlayer(playerID string) *TournamentPlayer {
	if t == nil || playerID == "" {
		return nil
	}
	for i := range t.RegisteredPlayers {
		if t.RegisteredPlayers[i].ID == playerID {
			p := t.RegisteredPlayers[i].Clone()
			return &p
		}
	}
	return nil
}

// FindTableForPlayer returns the table seating the given player. Seat lists
// win over the player's own tableId, which may lag behind a table move.
func (t *Tournament) FindTableForPlayer(playerID string) *TournamentTable {
	if t == nil || playerID == "" {
		return nil
	}
	for i := range t.Tables {
		if t.Tables[i].HasPlayer(playerID) {
			table := t.Tables[i].Clone()
			return &table
		}
	}
	if p := t.FindPlayer(playerID); p != nil && p.TableID != "" {
		for i := range t.Tables {
			if t.Tables[i].ID == p.TableID {
				table := t.Tables[i].Clone()
				return &table
			}
		}
	}
	return nil
}

// ActivePlayers returns the players still in the tournament, in registration order.
func (t *Tournament) ActivePlayers() []TournamentPlayer {
	active := make([]TournamentPlayer, 0, len(t.RegisteredPlayers))
	for _, p := range t.RegisteredPlayers {
		if !p.IsEliminated {
			active = append(active, p)
		}
	}
	return active
}

// Validate checks the snapshot invariants and reports every violation found.
func (t *Tournament) Validate() error {
	var errs []error

	if t.Config.MaxPlayers > 0 && len(t.RegisteredPlayers) > t.Config.MaxPlayers {
		errs = append(errs, fmt.Errorf("%w: %d registered, max %d",
			ErrTooManyPlayers, len(t.RegisteredPlayers), t.Config.MaxPlayers))
	}
	if t.RemainingPlayers+t.EliminatedCount != t.TotalPlayers {
		errs = append(errs, fmt.Errorf("%w: %d remaining + %d eliminated != %d total",
			ErrPlayerCountMismatch, t.RemainingPlayers, t.EliminatedCount, t.TotalPlayers))
	}
	if t.Status != StatusRegistering && t.Status != StatusStarting {
		if FindBlindLevel(t.CurrentLevel, t.Config.BlindLevels) == nil {
			errs = append(errs, fmt.Errorf("%w: level %d", ErrUnknownBlindLevel, t.CurrentLevel))
		}
	}
	if t.LevelStartTime != nil && t.LevelEndTime != nil && !t.LevelEndTime.After(*t.LevelStartTime) {
		errs = append(errs, ErrLevelWindowInverted)
	}

	return errors.Join(errs...)
}

// Clone returns a deep copy so a snapshot handed to a reader can never be
// changed through another reference.
func (t *Tournament) Clone() *Tournament {
	if t == nil {
		return nil
	}
	c := *t
	c.Config.BlindLevels = append([]BlindLevel(nil), t.Config.BlindLevels...)
	c.Config.PrizeStructure.Positions = append([]PrizePosition(nil), t.Config.PrizeStructure.Positions...)
	if t.CurrentBlinds != nil {
		b := *t.CurrentBlinds
		c.CurrentBlinds = &b
	}
	c.LevelStartTime = cloneTime(t.LevelStartTime)
	c.LevelEndTime = cloneTime(t.LevelEndTime)
	c.StartedAt = cloneTime(t.StartedAt)
	c.FinishedAt = cloneTime(t.FinishedAt)
	c.RegisteredPlayers = clonePlayers(t.RegisteredPlayers)
	if t.Tables != nil {
		c.Tables = make([]TournamentTable, len(t.Tables))
		for i, table := range t.Tables {
			table.Players = clonePlayers(table.Players)
			c.Tables[i] = table
		}
	}
	return &c
}

func clonePlayers(players []TournamentPlayer) []TournamentPlayer {
	if players == nil {
		return nil
	}
	out := make([]TournamentPlayer, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
