// Package postgres records finished games in a Postgres table.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khempel0430/solitaire/internal/config"
	"github.com/khempel0430/solitaire/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS game_results (
		game_id     TEXT PRIMARY KEY,
		variant     TEXT NOT NULL,
		outcome     TEXT NOT NULL,
		moves       INTEGER NOT NULL,
		redeals     INTEGER NOT NULL,
		started_at  TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	)
`

// DB is the part of *pgxpool.Pool the recorder uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

type Recorder struct {
	db     DB
	logger *slog.Logger
}

func NewRecorder(db DB) *Recorder {
	return &Recorder{
		db:     db,
		logger: slog.Default().With("component", "results"),
	}
}

// Connect opens a pool from config.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MaxConnIdleTime = 10 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("open database pool: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the results table if it is missing.
func (r *Recorder) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create game_results: %w", err)
	}
	return nil
}

// Record stores res. A game is recorded at most once; repeats are ignored.
func (r *Recorder) Record(ctx context.Context, res domain.Result) error {
	query := `
		INSERT INTO game_results (game_id, variant, outcome, moves, redeals, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (game_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query,
		res.GameID,
		res.Variant,
		string(res.Outcome),
		res.Moves,
		res.Redeals,
		res.StartedAt,
		res.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert result %s: %w", res.GameID, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Debug("result already recorded", "game_id", res.GameID)
	}
	return nil
}

func (r *Recorder) Name() string { return "postgres" }

func (r *Recorder) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
