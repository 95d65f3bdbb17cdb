package countdown

import (
	"sync"
	"time"

	"poker-platform/tournament-sync/internal/models"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const DefaultTickInterval = 100 * time.Millisecond

// Timer counts down to a deadline handed out by the tournament service. It
// ticks locally between polls and restarts whenever the deadline changes.
//
// Subscribers are called from the ticking goroutine and from Set. They must
// not call Set, Clear or Stop.
type Timer struct {
	clock    clockwork.Clock
	interval time.Duration

	notifyMu sync.Mutex

	mu          sync.Mutex
	deadline    time.Time
	duration    time.Duration
	reading     Reading
	run         *tickRun
	stopped     bool
	subscribers map[int]func(Reading)
	nextSubID   int
}

// tickRun is one ticking schedule against one deadline.
type tickRun struct {
	ticker clockwork.Ticker
	quit   chan struct{}
	done   chan struct{}
}

type Option func(*Timer)

func WithClock(clock clockwork.Clock) Option {
	return func(t *Timer) { t.clock = clock }
}

func WithTickInterval(interval time.Duration) Option {
	return func(t *Timer) {
		if interval > 0 {
			t.interval = interval
		}
	}
}

func New(opts ...Option) *Timer {
	t := &Timer{
		clock:       clockwork.NewRealClock(),
		interval:    DefaultTickInterval,
		subscribers: make(map[int]func(Reading)),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.reading = NewReading(time.Time{}, 0, t.clock.Now())
	return t
}

// Set points the timer at deadline. duration is the nominal length of the
// period ending at deadline and scales Progress. Setting the same deadline
// and duration again leaves the running schedule alone.
func (t *Timer) Set(deadline time.Time, duration time.Duration) {
	t.notifyMu.Lock()
	defer t.notifyMu.Unlock()

	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.deadline.Equal(deadline) && t.duration == duration {
		t.mu.Unlock()
		return
	}
	old := t.run
	t.run = nil
	t.deadline = deadline
	t.duration = duration
	t.reading = NewReading(deadline, duration, t.clock.Now())
	reading := t.reading
	if reading.Remaining > 0 {
		t.run = t.startLocked()
	}
	subs := t.subscribersLocked()
	t.mu.Unlock()

	old.cancel()
	log.Debug().
		Time("deadline", deadline).
		Dur("remaining", reading.Remaining).
		Msg("countdown deadline changed")
	notify(subs, reading)
}

// Clear stops ticking and resets the reading to zero.
func (t *Timer) Clear() {
	t.Set(time.Time{}, 0)
}

// SetFromTournament follows the level (or break) clock of a tournament
// snapshot. A nil snapshot or one without a level deadline clears the timer.
func (t *Timer) SetFromTournament(tournament *models.Tournament) {
	if tournament == nil || tournament.LevelEndTime == nil {
		t.Clear()
		return
	}
	t.Set(*tournament.LevelEndTime, nominalDuration(tournament))
}

func nominalDuration(tournament *models.Tournament) time.Duration {
	if tournament.Status == models.StatusPaused && tournament.Config.BreakDurationSeconds > 0 {
		return time.Duration(tournament.Config.BreakDurationSeconds) * time.Second
	}
	if tournament.CurrentBlinds != nil {
		return tournament.CurrentBlinds.DurationTime()
	}
	if level := models.FindBlindLevel(tournament.CurrentLevel, tournament.Config.BlindLevels); level != nil {
		return level.DurationTime()
	}
	if tournament.LevelStartTime != nil {
		return tournament.LevelEndTime.Sub(*tournament.LevelStartTime)
	}
	return 0
}

// Reading returns the latest reading.
func (t *Timer) Reading() Reading {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reading
}

// Running reports whether a tick schedule is active.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.run != nil
}

// Subscribe registers fn to receive every reading. The returned function
// removes the subscription.
func (t *Timer) Subscribe(fn func(Reading)) func() {
	t.mu.Lock()
	id := t.nextSubID
	t.nextSubID++
	t.subscribers[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subscribers, id)
			t.mu.Unlock()
		})
	}
}

// Stop releases the tick schedule. The timer cannot be restarted. Stop is
// idempotent.
func (t *Timer) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	run := t.run
	t.run = nil
	t.subscribers = make(map[int]func(Reading))
	t.mu.Unlock()

	run.cancel()
	if run != nil {
		<-run.done
	}
}

func (t *Timer) startLocked() *tickRun {
	r := &tickRun{
		ticker: t.clock.NewTicker(t.interval),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go t.loop(r)
	return r
}

func (t *Timer) loop(r *tickRun) {
	defer close(r.done)
	defer r.ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case <-r.ticker.Chan():
			if !t.tick(r) {
				return
			}
		}
	}
}

// tick publishes a fresh reading for run r and reports whether r should keep
// ticking.
func (t *Timer) tick(r *tickRun) bool {
	t.notifyMu.Lock()
	defer t.notifyMu.Unlock()

	t.mu.Lock()
	if t.run != r {
		t.mu.Unlock()
		return false
	}
	t.reading = NewReading(t.deadline, t.duration, t.clock.Now())
	reading := t.reading
	if reading.Remaining == 0 {
		t.run = nil
	}
	subs := t.subscribersLocked()
	t.mu.Unlock()

	notify(subs, reading)
	return reading.Remaining > 0
}

func (t *Timer) subscribersLocked() []func(Reading) {
	subs := make([]func(Reading), 0, len(t.subscribers))
	for id := 0; id < t.nextSubID; id++ {
		if sub, ok := t.subscribers[id]; ok {
			subs = append(subs, sub)
		}
	}
	return subs
}

func notify(subs []func(Reading), r Reading) {
	for _, sub := range subs {
		sub(r)
	}
}

func (r *tickRun) cancel() {
	if r == nil {
		return
	}
	close(r.quit)
}
