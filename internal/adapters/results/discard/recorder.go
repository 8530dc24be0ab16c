// Package discard is the result recorder used when no database is configured.
package discard

import (
	"context"
	"log/slog"

	"github.com/khempel0430/solitaire/internal/domain"
)

type Recorder struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{logger: logger.With("component", "results")}
}

// Record logs res at debug level and keeps nothing.
func (r *Recorder) Record(ctx context.Context, res domain.Result) error {
	r.logger.DebugContext(ctx, "result not persisted", "game_id", res.GameID, "outcome", res.Outcome)
	return nil
}
