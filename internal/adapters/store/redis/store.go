// Package redis keeps games in Redis as JSON documents with a sliding TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khempel0430/solitaire/internal/config"
	"github.com/khempel0430/solitaire/internal/domain"
)

// GameKeyPrefix namespaces game documents.
const GameKeyPrefix = "solitaire:game:"

// BuildGameKey returns the key of one game: solitaire:game:{id}.
func BuildGameKey(id string) string {
	return GameKeyPrefix + id
}

// Store is a ports.GameStore over a go-redis client. Updates use WATCH so a
// concurrent writer turns into domain.ErrVersionConflict.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewClient opens a client from config. It does not dial.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
		logger: slog.Default().With("component", "redis_store"),
	}
}

func (s *Store) Create(ctx context.Context, g domain.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", g.ID, err)
	}
	ok, err := s.client.SetNX(ctx, BuildGameKey(g.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("create game %s: %w", g.ID, err)
	}
	if !ok {
		return fmt.Errorf("game %s already exists", g.ID)
	}
	return nil
}

// Get loads the game and pushes its expiry out by a full TTL.
func (s *Store) Get(ctx context.Context, id string) (domain.Game, error) {
	return decode(s.client.GetEx(ctx, BuildGameKey(id), s.ttl), id)
}

func (s *Store) Update(ctx context.Context, g domain.Game, expectedVersion int64) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", g.ID, err)
	}
	key := BuildGameKey(g.ID)

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := decode(tx.Get(ctx, key), g.ID)
		if err != nil {
			return err
		}
		if cur.Version != expectedVersion {
			return fmt.Errorf("%w: stored %d, expected %d", domain.ErrVersionConflict, cur.Version, expectedVersion)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		s.logger.Debug("concurrent update", "game_id", g.ID)
		return fmt.Errorf("%w: game %s changed during update", domain.ErrVersionConflict, g.ID)
	}
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, BuildGameKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func (s *Store) Name() string { return "redis" }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func decode(cmd *redis.StringCmd, id string) (domain.Game, error) {
	data, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Game{}, domain.ErrGameNotFound
	}
	if err != nil {
		return domain.Game{}, fmt.Errorf("get game %s: %w", id, err)
	}
	var g domain.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return domain.Game{}, fmt.Errorf("%w: decode game %s: %v", domain.ErrCorruptState, id, err)
	}
	return g, nil
}
