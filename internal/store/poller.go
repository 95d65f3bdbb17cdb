package store

import (
	"context"
	"sync"
	"time"

	"poker-platform/tournament-sync/internal/models"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Poller keeps the store's active tournament in step with the tournament
// service by refetching it on a fixed cadence. Failed fetches are skipped
// and the previous snapshot stays in place; the next tick retries.
type Poller struct {
	store        *Store
	tournamentID string
	interval     time.Duration
	clock        clockwork.Clock

	// mu guards stopped and is held while a fetched snapshot is applied,
	// so once Stop returns nothing from this poller reaches the store.
	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func newPoller(store *Store, tournamentID string) *Poller {
	return &Poller{
		store:        store,
		tournamentID: tournamentID,
		interval:     store.pollInterval,
		clock:        store.clock,
		done:         make(chan struct{}),
	}
}

func (p *Poller) start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	log.Debug().
		Str("tournament_id", p.tournamentID).
		Dur("interval", p.interval).
		Msg("tournament polling started")

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("tournament_id", p.tournamentID).Msg("tournament polling stopped")
			return
		case <-ticker.Chan():
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	t, err := p.store.api.GetTournament(ctx, p.tournamentID)
	if err != nil {
		log.Debug().Err(err).Str("tournament_id", p.tournamentID).Msg("poll failed, keeping previous snapshot")
		return
	}
	p.apply(t)
}

func (p *Poller) apply(t *models.Tournament) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}

	snapshot := t.Clone()
	p.store.update(func(st *State) {
		p.store.applySnapshotLocked(st, snapshot)
		st.ConnectionStatus = ConnectionConnected
	})
}

// Stop cancels the loop and any fetch in flight. It is safe to call more
// than once and from any goroutine except a store subscriber.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	if p.cancel != nil {
		p.cancel()
	}
}

// Done is closed when the polling goroutine has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

func (p *Poller) TournamentID() string {
	return p.tournamentID
}

// StartPolling begins refreshing tournamentID immediately and then every
// poll interval, replacing any poller already running for this store.
func (s *Store) StartPolling(ctx context.Context, tournamentID string) (*Poller, error) {
	if tournamentID == "" {
		return nil, ErrEmptyTournamentID
	}

	// Close marks the store closed while holding pollMu.
	s.pollMu.Lock()
	defer s.pollMu.Unlock()
	if s.isClosed() {
		return nil, ErrStoreClosed
	}

	if s.poller != nil {
		s.poller.Stop()
	}

	s.update(func(st *State) {
		if st.ConnectionStatus == ConnectionDisconnected {
			st.ConnectionStatus = ConnectionConnecting
		}
	})

	p := newPoller(s, tournamentID)
	p.start(ctx)
	s.poller = p
	return p, nil
}

// StopPolling stops the active poller, if any.
func (s *Store) StopPolling() {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()

	if s.poller != nil {
		s.poller.Stop()
		s.poller = nil
	}
}
