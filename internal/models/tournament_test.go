package models

import (
	"errors"
	"testing"
	"time"
)

func validTournament() Tournament {
	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Minute)
	return Tournament{
		ID:     "t-1",
		Name:   "Sunday Major",
		Status: StatusRunning,
		Config: TournamentConfig{
			MaxPlayers:  3,
			BlindLevels: DefaultBlindLevels,
		},
		CurrentLevel:   1,
		LevelStartTime: &start,
		LevelEndTime:   &end,
		RegisteredPlayers: []TournamentPlayer{
			{ID: "p1", Chips: 1500},
			{ID: "p2", Chips: 0, IsEliminated: true},
			{ID: "p3", Chips: 3000},
		},
		Tables: []TournamentTable{
			{ID: "table-1", Players: []TournamentPlayer{{ID: "p1"}, {ID: "p3"}}},
		},
		TotalPlayers:     3,
		RemainingPlayers: 2,
		EliminatedCount:  1,
	}
}

func TestTournamentValidate(t *testing.T) {
	tourney := validTournament()
	if err := tourney.Validate(); err != nil {
		t.Fatalf("expected valid tournament, got %v", err)
	}

	tourney.RegisteredPlayers = append(tourney.RegisteredPlayers, TournamentPlayer{ID: "p4"})
	tourney.EliminatedCount = 0
	tourney.CurrentLevel = 42
	inverted := tourney.LevelStartTime.Add(-time.Minute)
	tourney.LevelEndTime = &inverted

	err := tourney.Validate()
	for _, want := range []error{ErrTooManyPlayers, ErrPlayerCountMismatch, ErrUnknownBlindLevel, ErrLevelWindowInverted} {
		if !errors.Is(err, want) {
			t.Errorf("expected %v in %v", want, err)
		}
	}
}

func TestTournamentValidate_RegisteringSkipsLevelCheck(t *testing.T) {
	tourney := validTournament()
	tourney.Status = StatusRegistering
	tourney.CurrentLevel = 0
	if err := tourney.Validate(); err != nil {
		t.Errorf("expected no error while registering, got %v", err)
	}
}

func TestFindTableForPlayer(t *testing.T) {
	tourney := validTournament()

	table := tourney.FindTableForPlayer("p3")
	if table == nil || table.ID != "table-1" {
		t.Fatalf("expected table-1, got %+v", table)
	}
	if got := tourney.FindTableForPlayer("p2"); got != nil {
		t.Errorf("expected no table for eliminated player, got %+v", got)
	}

	tourney.Tables = append(tourney.Tables, TournamentTable{ID: "table-2"})
	tourney.RegisteredPlayers[1].TableID = "table-2"
	if got := tourney.FindTableForPlayer("p2"); got == nil || got.ID != "table-2" {
		t.Errorf("expected tableId fallback to table-2, got %+v", got)
	}
}

func TestFindPlayer_ReturnsCopy(t *testing.T) {
	tourney := validTournament()
	p := tourney.FindPlayer("p1")
	p.Chips = 1
	if tourney.RegisteredPlayers[0].Chips != 1500 {
		t.Error("FindPlayer must not alias the snapshot")
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to TournamentStatus
		want     bool
	}{
		{StatusRegistering, StatusStarting, true},
		{StatusStarting, StatusRunning, true},
		{StatusRunning, StatusPaused, true},
		{StatusPaused, StatusRunning, true},
		{StatusPaused, StatusFinalTable, true},
		{StatusRunning, StatusFinalTable, true},
		{StatusFinalTable, StatusFinished, true},
		{StatusRegistering, StatusRunning, false},
		{StatusRunning, StatusFinished, false},
		{StatusFinished, StatusRegistering, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestComputeStackStats(t *testing.T) {
	stats := ComputeStackStats(validTournament().RegisteredPlayers)

	if stats.TotalPlayers != 3 || stats.RemainingPlayers != 2 || stats.EliminatedCount != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.AverageStack != 2250 || stats.LargestStack != 3000 || stats.SmallestStack != 1500 {
		t.Errorf("unexpected stacks: %+v", stats)
	}
}
