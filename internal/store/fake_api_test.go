package store

import (
	"context"
	"errors"
	"sync"

	"poker-platform/tournament-sync/internal/models"
)

var errUnavailable = errors.New("service unavailable")

// serviceError carries a display message the way remote.APIError does
type serviceError struct{ msg string }

func (e *serviceError) Error() string       { return "service error: " + e.msg }
func (e *serviceError) UserMessage() string { return e.msg }

type getResult struct {
	tournament *models.Tournament
	err        error
}

// fakeAPI is a scripted TournamentAPI. GetTournament returns the queued
// results in order and keeps repeating the last one.
type fakeAPI struct {
	mu sync.Mutex

	list    []models.TournamentListItem
	listErr error

	results  []getResult
	getCalls int
	// gate, when set, holds GetTournament until it is closed, ignoring
	// context cancellation to model a response that arrives late.
	gate       chan struct{}
	getStarted chan struct{}

	registered    *models.TournamentPlayer
	registerErr   error
	afterRegister func(f *fakeAPI)

	unregisterErr error
	unregistered  []string
}

func (f *fakeAPI) queue(results ...getResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, results...)
}

func (f *fakeAPI) setResults(results ...getResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = results
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls
}

func (f *fakeAPI) ListTournaments(ctx context.Context) ([]models.TournamentListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.TournamentListItem(nil), f.list...), nil
}

func (f *fakeAPI) GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	f.mu.Lock()
	f.getCalls++
	var res getResult
	switch len(f.results) {
	case 0:
		res = getResult{err: errUnavailable}
	case 1:
		res = f.results[0]
	default:
		res = f.results[0]
		f.results = f.results[1:]
	}
	gate, started := f.gate, f.getStarted
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if res.err != nil {
		return nil, res.err
	}
	return res.tournament.Clone(), nil
}

func (f *fakeAPI) Register(ctx context.Context, tournamentID, playerName string) (*models.TournamentPlayer, error) {
	f.mu.Lock()
	if f.registerErr != nil {
		defer f.mu.Unlock()
		return nil, f.registerErr
	}
	p := f.registered.Clone()
	hook := f.afterRegister
	f.mu.Unlock()

	if hook != nil {
		hook(f)
	}
	return &p, nil
}

func (f *fakeAPI) Unregister(ctx context.Context, tournamentID, playerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unregisterErr != nil {
		return f.unregisterErr
	}
	f.unregistered = append(f.unregistered, playerID)
	return nil
}
