package store

import (
	"sync"
	"time"

	"poker-platform/tournament-sync/internal/models"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DefaultPollInterval is how often an active tournament is refreshed.
const DefaultPollInterval = 5 * time.Second

// Store holds the client-side view of the tournament service for one
// tournament screen. Create one per screen and Close it when the screen goes
// away; nothing in it is shared between instances.
//
// All mutations go through the store's own commands. Subscribers are called
// synchronously, in order, after each change and must not call store
// commands from inside the callback.
type Store struct {
	api           TournamentAPI
	clock         clockwork.Clock
	pollInterval  time.Duration
	inferIdentity bool

	// notifyMu serializes change+notify so subscribers observe states in
	// the order they were applied.
	notifyMu sync.Mutex

	mu          sync.Mutex
	state       State
	playerID    string
	closed      bool
	subscribers map[int]func(State)
	nextSubID   int

	pollMu sync.Mutex
	poller *Poller

	selectors *selectors
}

type Option func(*Store)

// WithClock sets the clock driving the polling cadence.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

func WithPollInterval(interval time.Duration) Option {
	return func(s *Store) {
		if interval > 0 {
			s.pollInterval = interval
		}
	}
}

// WithPlayerID sets the viewer's player id up front so identity is resolved
// by id instead of inferred from the player list.
func WithPlayerID(playerID string) Option {
	return func(s *Store) { s.playerID = playerID }
}

// WithoutIdentityInference disables treating the first non-bot player as the
// viewer when no player id is known.
func WithoutIdentityInference() Option {
	return func(s *Store) { s.inferIdentity = false }
}

func New(api TournamentAPI, opts ...Option) *Store {
	s := &Store{
		api:           api,
		clock:         clockwork.NewRealClock(),
		pollInterval:  DefaultPollInterval,
		inferIdentity: true,
		state:         initialState(),
		subscribers:   make(map[int]func(State)),
		selectors:     newSelectors(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PlayerID returns the identity the store reconciles against, if any.
func (s *Store) PlayerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerID
}

// Subscribe registers fn to receive every new state. The returned function
// removes the subscription and is safe to call more than once.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// update applies fn to a copy of the current state, installs the result and
// notifies subscribers. It is a no-op once the store is closed.
func (s *Store) update(fn func(st *State)) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	next := s.state
	fn(&next)
	s.state = next
	subs := make([]func(State), 0, len(s.subscribers))
	for id := 0; id < s.nextSubID; id++ {
		if sub, ok := s.subscribers[id]; ok {
			subs = append(subs, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(next)
	}
	return true
}

// SetTournaments replaces the tournament list.
func (s *Store) SetTournaments(tournaments []models.TournamentListItem) {
	list := append([]models.TournamentListItem(nil), tournaments...)
	s.update(func(st *State) {
		st.Tournaments = list
	})
}

// SetActiveTournament replaces the active tournament wholesale. Identity is
// not re-resolved; use LoadTournament for that.
func (s *Store) SetActiveTournament(t *models.Tournament) {
	snapshot := t.Clone()
	s.update(func(st *State) {
		st.ActiveTournament = snapshot
	})
}

// SetMyPlayer records who the viewer is. A nil player forgets the identity.
func (s *Store) SetMyPlayer(p *models.TournamentPlayer) {
	var player *models.TournamentPlayer
	if p != nil {
		c := p.Clone()
		player = &c
	}
	s.update(func(st *State) {
		st.MyPlayer = player
		if player != nil {
			s.playerID = player.ID
		} else {
			s.playerID = ""
		}
	})
}

func (s *Store) SetMyTable(t *models.TournamentTable) {
	var table *models.TournamentTable
	if t != nil {
		c := t.Clone()
		table = &c
	}
	s.update(func(st *State) {
		st.MyTable = table
	})
}

func (s *Store) SetError(msg string) {
	s.update(func(st *State) {
		st.Error = msg
	})
}

func (s *Store) ClearError() {
	s.SetError("")
}

func (s *Store) SetConnectionStatus(status ConnectionStatus) {
	s.update(func(st *State) {
		st.ConnectionStatus = status
	})
}

// Reset returns the store to its initial empty state and forgets the
// viewer's identity. Polling is left running; use StopPolling or Close.
func (s *Store) Reset() {
	s.update(func(st *State) {
		*st = initialState()
		s.playerID = ""
	})
}

// Close stops polling and freezes the store: results of commands or polls
// still in flight are discarded.
func (s *Store) Close() {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()
	if s.poller != nil {
		s.poller.Stop()
		s.poller = nil
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.mu.Lock()
	s.closed = true
	s.subscribers = make(map[int]func(State))
	s.mu.Unlock()

	log.Debug().Msg("tournament store closed")
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
