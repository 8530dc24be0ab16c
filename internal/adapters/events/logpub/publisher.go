// Package logpub writes game events to the structured log. It is the
// publisher used when no message bus is configured.
package logpub

import (
	"context"
	"log/slog"

	"github.com/khempel0430/solitaire/internal/domain"
)

type Publisher struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{logger: logger.With("component", "events")}
}

func (p *Publisher) Publish(ctx context.Context, evt domain.Event) error {
	attrs := []slog.Attr{
		slog.String("kind", string(evt.Kind)),
		slog.String("game_id", evt.GameID),
		slog.String("variant", evt.Variant),
		slog.String("status", string(evt.Status)),
		slog.Int64("version", evt.Version),
	}
	if evt.Move != nil {
		attrs = append(attrs, slog.String("move", evt.Move.String()))
	}
	p.logger.LogAttrs(ctx, slog.LevelInfo, "game event", attrs...)
	return nil
}
