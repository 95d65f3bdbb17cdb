package main

import (
	"context"
	"testing"
	"time"

	"poker-platform/tournament-sync/internal/countdown"
	"poker-platform/tournament-sync/internal/models"
	"poker-platform/tournament-sync/internal/store"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshotAPI struct {
	tournament *models.Tournament
}

func (a *snapshotAPI) ListTournaments(ctx context.Context) ([]models.TournamentListItem, error) {
	return []models.TournamentListItem{a.tournament.Summary()}, nil
}

func (a *snapshotAPI) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	return a.tournament.Clone(), nil
}

func (a *snapshotAPI) Register(ctx context.Context, id, name string) (*models.TournamentPlayer, error) {
	return &models.TournamentPlayer{ID: "p-" + name, Name: name}, nil
}

func (a *snapshotAPI) Unregister(ctx context.Context, id, playerID string) error {
	return nil
}

func runningAt(now time.Time, level int, remaining time.Duration) *models.Tournament {
	blinds := models.FindBlindLevel(level, models.DemoStructure.BlindLevels)
	start := now.Add(remaining - blinds.DurationTime())
	end := now.Add(remaining)
	return &models.Tournament{
		ID:             "t-1",
		Status:         models.StatusRunning,
		Config:         models.TournamentConfig{BlindLevels: models.DemoStructure.BlindLevels},
		CurrentLevel:   level,
		CurrentBlinds:  blinds,
		LevelStartTime: &start,
		LevelEndTime:   &end,
	}
}

func TestFollow_TracksLevelDeadline(t *testing.T) {
	clock := clockwork.NewFakeClock()
	api := &snapshotAPI{tournament: runningAt(clock.Now(), 1, 45*time.Second)}
	st := store.New(api, store.WithClock(clock))
	t.Cleanup(st.Close)
	timer := countdown.New(countdown.WithClock(clock))
	t.Cleanup(timer.Stop)

	unfollow := follow(st, timer)

	require.NoError(t, st.LoadTournament(context.Background(), "t-1"))
	reading := timer.Reading()
	assert.True(t, timer.Running())
	assert.True(t, reading.Deadline.Equal(*api.tournament.LevelEndTime))
	assert.Equal(t, 45*time.Second, reading.Remaining)
	assert.InDelta(t, 0.75, reading.Progress, 1e-9)

	api.tournament = runningAt(clock.Now(), 2, 60*time.Second)
	require.NoError(t, st.LoadTournament(context.Background(), "t-1"))
	reading = timer.Reading()
	assert.True(t, reading.Deadline.Equal(*api.tournament.LevelEndTime))
	assert.Equal(t, "01:00", reading.Formatted)

	st.Reset()
	assert.False(t, timer.Running())
	assert.Equal(t, time.Duration(0), timer.Reading().Remaining)

	unfollow()
	require.NoError(t, st.LoadTournament(context.Background(), "t-1"))
	assert.False(t, timer.Running(), "an unfollowed store no longer drives the timer")
}

func TestRun_RequiresTournament(t *testing.T) {
	err := run(Config{ServiceURL: "http://localhost:1"})
	assert.EqualError(t, err, "TOURNAMENT_ID is required")
}

// registeringAPI serves a registering tournament and records registrations.
type registeringAPI struct {
	snapshotAPI
	names []string
}

func (a *registeringAPI) Register(ctx context.Context, id, name string) (*models.TournamentPlayer, error) {
	a.names = append(a.names, name)
	p := models.TournamentPlayer{ID: "p-" + name, Name: name, Chips: 1500}
	a.tournament.RegisteredPlayers = append(a.tournament.RegisteredPlayers, p)
	return &p, nil
}

func TestRegisterAtStartup(t *testing.T) {
	registering := func() *models.Tournament {
		return &models.Tournament{
			ID:     "t-1",
			Status: models.StatusRegistering,
			RegisteredPlayers: []models.TournamentPlayer{
				{ID: "p-bob", Name: "bob", Chips: 1500},
			},
		}
	}

	t.Run("registers although another human is seated", func(t *testing.T) {
		api := &registeringAPI{snapshotAPI: snapshotAPI{tournament: registering()}}
		cfg := Config{TournamentID: "t-1", PlayerName: "alice"}
		st := store.New(api, storeOptions(cfg)...)
		t.Cleanup(st.Close)

		require.NoError(t, st.LoadTournament(context.Background(), "t-1"))
		assert.Nil(t, st.Snapshot().MyPlayer)

		registerAtStartup(context.Background(), st, cfg)
		assert.Equal(t, []string{"alice"}, api.names)
		require.NotNil(t, st.Snapshot().MyPlayer)
		assert.Equal(t, "p-alice", st.Snapshot().MyPlayer.ID)
	})

	t.Run("skips when the player id is known", func(t *testing.T) {
		api := &registeringAPI{snapshotAPI: snapshotAPI{tournament: registering()}}
		cfg := Config{TournamentID: "t-1", PlayerID: "p-bob", PlayerName: "bob"}
		st := store.New(api, storeOptions(cfg)...)
		t.Cleanup(st.Close)

		registerAtStartup(context.Background(), st, cfg)
		assert.Empty(t, api.names)
	})
}
