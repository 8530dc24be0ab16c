// Package nats publishes game events to NATS subjects.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/khempel0430/solitaire/internal/config"
	"github.com/khempel0430/solitaire/internal/domain"
)

// Conn is the part of *nats.Conn the publisher uses.
type Conn interface {
	PublishMsg(m *nats.Msg) error
	FlushWithContext(ctx context.Context) error
}

// BuildEventSubject returns {prefix}.games.{gameID}.{kind}, so listeners can
// follow one game with {prefix}.games.{id}.> or one kind with {prefix}.games.*.{kind}.
func BuildEventSubject(prefix, gameID string, kind domain.EventKind) string {
	return fmt.Sprintf("%s.games.%s.%s", prefix, gameID, kind)
}

type Publisher struct {
	nc     Conn
	prefix string
	logger *slog.Logger
}

func NewPublisher(nc Conn, prefix string) *Publisher {
	return &Publisher{
		nc:     nc,
		prefix: prefix,
		logger: slog.Default().With("component", "nats_publisher"),
	}
}

// Connect dials NATS with reconnect handling.
func Connect(cfg config.NATSConfig) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("solitaired"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("disconnected from nats", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("reconnected to nats", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			slog.Info("nats connection closed")
		}),
		nats.Timeout(10 * time.Second),
	}
	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", cfg.URL, err)
	}
	return nc, nil
}

func (p *Publisher) Publish(_ context.Context, evt domain.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := nats.NewMsg(BuildEventSubject(p.prefix, evt.GameID, evt.Kind))
	msg.Data = data
	msg.Header.Set("Content-Type", "application/json")
	// JetStream streams drop duplicates by this id.
	msg.Header.Set(nats.MsgIdHdr, fmt.Sprintf("%s-%d-%s", evt.GameID, evt.Version, evt.Kind))

	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Subject, err)
	}
	p.logger.Debug("published event", "subject", msg.Subject)
	return nil
}

func (p *Publisher) Name() string { return "nats" }

// Ping round-trips to the server.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.nc.FlushWithContext(ctx)
}
