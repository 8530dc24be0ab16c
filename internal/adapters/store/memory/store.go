// Package memory keeps games in process memory with idle expiry.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/khempel0430/solitaire/internal/domain"
)

type entry struct {
	game       domain.Game
	lastActive time.Time
}

// Store is a ports.GameStore backed by a map. Games neither read nor written
// for longer than the TTL are treated as gone and removed by EvictIdle.
type Store struct {
	mu    sync.RWMutex
	games map[string]entry
	ttl   time.Duration
	now   func() time.Time

	logger *slog.Logger
}

func New(ttl time.Duration) *Store {
	return &Store{
		games:  make(map[string]entry),
		ttl:    ttl,
		now:    time.Now,
		logger: slog.Default().With("component", "memory_store"),
	}
}

// WithClock replaces the time source. Intended for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Create(_ context.Context, g domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.games[g.ID]; ok && !s.expired(e) {
		return fmt.Errorf("game %s already exists", g.ID)
	}
	s.games[g.ID] = entry{game: detach(g), lastActive: s.now()}
	return nil
}

// Get returns a copy of the game and restarts its idle timer.
func (s *Store) Get(_ context.Context, id string) (domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.games[id]
	if !ok || s.expired(e) {
		return domain.Game{}, domain.ErrGameNotFound
	}
	e.lastActive = s.now()
	s.games[id] = e
	return detach(e.game), nil
}

func (s *Store) Update(_ context.Context, g domain.Game, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.games[g.ID]
	if !ok || s.expired(e) {
		return domain.ErrGameNotFound
	}
	if e.game.Version != expectedVersion {
		return fmt.Errorf("%w: stored %d, expected %d", domain.ErrVersionConflict, e.game.Version, expectedVersion)
	}
	s.games[g.ID] = entry{game: detach(g), lastActive: s.now()}
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.games[id]
	if !ok || s.expired(e) {
		return domain.ErrGameNotFound
	}
	delete(s.games, id)
	return nil
}

// Len returns the number of games held, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// EvictIdle removes expired games and returns how many were dropped.
func (s *Store) EvictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.games {
		if s.expired(e) {
			delete(s.games, id)
			n++
		}
	}
	return n
}

// Run evicts idle games every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.EvictIdle(); n > 0 {
				s.logger.Info("evicted idle games", "count", n)
			}
		case <-ctx.Done():
			s.logger.Info("evict loop stopped")
			return
		}
	}
}

func (s *Store) expired(e entry) bool {
	return s.now().Sub(e.lastActive) > s.ttl
}

// detach copies the piles so callers never share slices with the map.
func detach(g domain.Game) domain.Game {
	g.State = g.State.Clone()
	return g
}
