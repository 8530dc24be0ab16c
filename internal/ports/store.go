package ports

import (
	"context"

	"github.com/khempel0430/solitaire/internal/domain"
)

// GameStore holds in-progress games.
type GameStore interface {
	// Create stores a new game. The id must not exist yet.
	Create(ctx context.Context, g domain.Game) error
	// Get returns domain.ErrGameNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (domain.Game, error)
	// Update replaces a game if the stored version still equals expectedVersion,
	// otherwise it returns domain.ErrVersionConflict.
	Update(ctx context.Context, g domain.Game, expectedVersion int64) error
	Delete(ctx context.Context, id string) error
}

// Pinger is implemented by adapters backed by a remote service.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}
