package ports

import (
	"context"

	"github.com/khempel0430/solitaire/internal/domain"
)

// EventPublisher announces game events to interested listeners.
type EventPublisher interface {
	Publish(ctx context.Context, evt domain.Event) error
}

// ResultRecorder keeps the outcome of finished games.
type ResultRecorder interface {
	Record(ctx context.Context, res domain.Result) error
}

// Image is an opaque handle to card artwork.
type Image struct {
	Name string
	Src  string
}

// CardArt resolves faces to artwork. The engine never depends on it; a face
// without art is reported as domain.ErrArtNotFound.
type CardArt interface {
	Resolve(ctx context.Context, face domain.Face) (Image, error)
}
