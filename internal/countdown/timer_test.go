package countdown

import (
	"sync"
	"testing"
	"time"

	"poker-platform/tournament-sync/internal/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReading(t *testing.T) {
	now := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		remaining time.Duration
		duration  time.Duration
		formatted string
		warning   bool
		critical  bool
		progress  float64
	}{
		{"full level", 10 * time.Minute, 10 * time.Minute, "10:00", false, false, 1},
		{"half way", 5 * time.Minute, 10 * time.Minute, "05:00", false, false, 0.5},
		{"warning edge", 60 * time.Second, 10 * time.Minute, "01:00", true, false, 0.1},
		{"critical edge", 15 * time.Second, 60 * time.Second, "00:15", true, true, 0.25},
		{"expired", -3 * time.Second, 60 * time.Second, "00:00", false, false, 0},
		{"longer than nominal", 2 * time.Minute, time.Minute, "02:00", false, false, 1},
		{"no nominal duration", 30 * time.Second, 0, "00:30", true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReading(now.Add(tt.remaining), tt.duration, now)
			assert.Equal(t, tt.formatted, r.Formatted)
			assert.Equal(t, tt.warning, r.Warning)
			assert.Equal(t, tt.critical, r.Critical)
			assert.InDelta(t, tt.progress, r.Progress, 1e-9)
		})
	}
}

func TestReading_StrokeOffset(t *testing.T) {
	assert.InDelta(t, 0.0, Reading{Progress: 1}.StrokeOffset(100), 1e-9)
	assert.InDelta(t, 75.0, Reading{Progress: 0.25}.StrokeOffset(100), 1e-9)
	assert.InDelta(t, 100.0, Reading{}.StrokeOffset(100), 1e-9)
}

func TestReading_Expired(t *testing.T) {
	now := time.Now()
	assert.False(t, NewReading(time.Time{}, 0, now).Expired())
	assert.True(t, NewReading(now.Add(-time.Second), time.Minute, now).Expired())
	assert.False(t, NewReading(now.Add(time.Second), time.Minute, now).Expired())
}

func TestTimer_CountsDownAndStopsAtZero(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := New(WithClock(clock))
	defer timer.Stop()

	timer.Set(clock.Now().Add(time.Second), 10*time.Second)
	require.True(t, timer.Running())
	assert.Equal(t, time.Second, timer.Reading().Remaining)
	assert.True(t, timer.Reading().Critical)

	clock.Advance(500 * time.Millisecond)
	require.Eventually(t, func() bool {
		return timer.Reading().Remaining == 500*time.Millisecond
	}, time.Second, 5*time.Millisecond)

	clock.Advance(500 * time.Millisecond)
	require.Eventually(t, func() bool { return !timer.Running() }, time.Second, 5*time.Millisecond)

	r := timer.Reading()
	assert.Equal(t, time.Duration(0), r.Remaining)
	assert.Equal(t, "00:00", r.Formatted)
	assert.False(t, r.Warning)
	assert.False(t, r.Critical)
}

func TestTimer_RestartsOnNewDeadline(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := New(WithClock(clock))
	defer timer.Stop()

	timer.Set(clock.Now().Add(time.Second), time.Minute)
	timer.Set(clock.Now().Add(2*time.Minute), 2*time.Minute)

	r := timer.Reading()
	assert.Equal(t, "02:00", r.Formatted)
	assert.InDelta(t, 1.0, r.Progress, 1e-9)

	clock.Advance(time.Second)
	require.Eventually(t, func() bool {
		return timer.Reading().Remaining == 2*time.Minute-time.Second
	}, time.Second, 5*time.Millisecond)
	assert.True(t, timer.Running())
}

func TestTimer_SameDeadlineKeepsSchedule(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := New(WithClock(clock))
	defer timer.Stop()

	var mu sync.Mutex
	var readings []Reading
	timer.Subscribe(func(r Reading) {
		mu.Lock()
		defer mu.Unlock()
		readings = append(readings, r)
	})

	deadline := clock.Now().Add(time.Minute)
	timer.Set(deadline, time.Minute)
	timer.Set(deadline, time.Minute)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, readings, 1)
}

func TestTimer_PastDeadlineDoesNotTick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := New(WithClock(clock))
	defer timer.Stop()

	timer.Set(clock.Now().Add(-time.Minute), time.Minute)
	assert.False(t, timer.Running())
	assert.Equal(t, "00:00", timer.Reading().Formatted)
}

func TestTimer_StopIsIdempotent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := New(WithClock(clock))

	timer.Set(clock.Now().Add(time.Minute), time.Minute)
	timer.Stop()
	timer.Stop()
	assert.False(t, timer.Running())

	timer.Set(clock.Now().Add(2*time.Minute), time.Minute)
	assert.False(t, timer.Running())
}

func TestTimer_SetFromTournament(t *testing.T) {
	clock := clockwork.NewFakeClock()
	timer := New(WithClock(clock))
	defer timer.Stop()

	start := clock.Now().Add(-2 * time.Minute)
	end := clock.Now().Add(8 * time.Minute)
	tournament := &models.Tournament{
		Status:         models.StatusRunning,
		CurrentLevel:   1,
		Config:         models.TournamentConfig{BlindLevels: models.DefaultBlindLevels, BreakDurationSeconds: 300},
		LevelStartTime: &start,
		LevelEndTime:   &end,
	}

	timer.SetFromTournament(tournament)
	r := timer.Reading()
	assert.Equal(t, "08:00", r.Formatted)
	assert.InDelta(t, 0.8, r.Progress, 1e-9)

	breakEnd := clock.Now().Add(150 * time.Second)
	tournament.Status = models.StatusPaused
	tournament.LevelEndTime = &breakEnd
	timer.SetFromTournament(tournament)
	assert.InDelta(t, 0.5, timer.Reading().Progress, 1e-9)

	timer.SetFromTournament(nil)
	assert.False(t, timer.Running())
	assert.Equal(t, time.Duration(0), timer.Reading().Remaining)
}
