// Package memory is the in-process store used in development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/football-league/internal/domain/store"
)

// Store holds the live dataset. Transactions are serialized by writeMu and
// work on a private clone, so readers never observe a half-applied command
// and a failed command leaves nothing behind.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	data    *dataset
}

func NewStore(seed Seed) *Store {
	data := newDataset()
	data.load(seed)
	return &Store{data: data}
}

// Repositories returns repositories reading the committed dataset. Writes made
// through them commit immediately.
func (s *Store) Repositories() store.Repositories {
	return repositoriesFor(liveSource{store: s})
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos store.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	working := s.data.clone()
	s.mu.RUnlock()

	if err := fn(ctx, repositoriesFor(&txSource{data: working})); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = working
	s.mu.Unlock()
	return nil
}

// source gives repositories access to one dataset.
type source interface {
	read(fn func(d *dataset))
	write(fn func(d *dataset) error) error
}

type liveSource struct {
	store *Store
}

func (l liveSource) read(fn func(d *dataset)) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()
	fn(l.store.data)
}

func (l liveSource) write(fn func(d *dataset) error) error {
	l.store.writeMu.Lock()
	defer l.store.writeMu.Unlock()
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return fn(l.store.data)
}

type txSource struct {
	mu   sync.RWMutex
	data *dataset
}

func (t *txSource) read(fn func(d *dataset)) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn(t.data)
}

func (t *txSource) write(fn func(d *dataset) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.data)
}

func repositoriesFor(src source) store.Repositories {
	return store.Repositories{
		Competitions: &CompetitionRepository{src: src},
		Teams:        &TeamRepository{src: src},
		Players:      &PlayerRepository{src: src},
		Coaches:      &CoachRepository{src: src},
		Matches:      &MatchRepository{src: src},
		Lineups:      &LineupRepository{src: src},
		Events:       &EventRepository{src: src},
		Standings:    &StandingRepository{src: src},
	}
}
