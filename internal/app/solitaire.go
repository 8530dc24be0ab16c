package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/khempel0430/solitaire/internal/domain"
	"github.com/khempel0430/solitaire/internal/ports"
)

// RNGFactory returns a fresh random source for one deal.
type RNGFactory func() (domain.RNG, error)

// MoveRequest is the application-level input for a move (no HTTP types).
type MoveRequest struct {
	GameID string
	From   domain.PileID
	To     domain.PileID
	// Version, when non-zero, must match the stored game version.
	Version int64
}

// MoveResponse reports the game after the attempt. Accepted is false for an
// illegal move, in which case Game is unchanged.
type MoveResponse struct {
	Game     domain.Game
	Accepted bool
}

// SolitaireService runs games: dealing, moves, redeals and bookkeeping.
type SolitaireService struct {
	store   ports.GameStore
	events  ports.EventPublisher
	results ports.ResultRecorder
	rngs    RNGFactory
	logger  *slog.Logger
	now     func() time.Time
}

func NewSolitaireService(store ports.GameStore, events ports.EventPublisher, results ports.ResultRecorder, rngs RNGFactory, logger *slog.Logger) *SolitaireService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SolitaireService{
		store:   store,
		events:  events,
		results: results,
		rngs:    rngs,
		logger:  logger.With("component", "solitaire"),
		now:     time.Now,
	}
}

// Variants lists the games that can be started.
func (s *SolitaireService) Variants() []domain.Variant {
	return domain.Variants()
}

func (s *SolitaireService) RulesFor(variantID string) (domain.RulesText, error) {
	v, err := domain.LookupVariant(resolveVariant(variantID))
	if err != nil {
		return domain.RulesText{}, err
	}
	return v.Text, nil
}

func (s *SolitaireService) NewGame(ctx context.Context, variantID string) (domain.Game, error) {
	v, err := domain.LookupVariant(resolveVariant(variantID))
	if err != nil {
		return domain.Game{}, err
	}

	rng, err := s.rngs()
	if err != nil {
		return domain.Game{}, fmt.Errorf("seed shuffle: %w", err)
	}
	state, err := v.NewGame(rng)
	if err != nil {
		return domain.Game{}, fmt.Errorf("new game: %w", err)
	}
	id := uuid.NewString()
	if err := s.checkState(id, &state); err != nil {
		return domain.Game{}, err
	}

	now := s.now()
	g := domain.Game{
		ID:        id,
		Variant:   v.ID,
		State:     state,
		Status:    domain.Evaluate(v.Rules, &state),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, g); err != nil {
		return domain.Game{}, fmt.Errorf("create game: %w", err)
	}

	s.logger.Info("game created", "game_id", g.ID, "variant", g.Variant)
	s.publish(ctx, g, domain.EventGameCreated, nil)
	if g.Status.Terminal() {
		s.finish(ctx, g)
	}
	return g, nil
}

func (s *SolitaireService) GetGame(ctx context.Context, id string) (domain.Game, error) {
	g, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Game{}, fmt.Errorf("get game: %w", err)
	}
	return g, nil
}

// Move tries a single-card move. Illegal moves are not errors.
func (s *SolitaireService) Move(ctx context.Context, req MoveRequest) (MoveResponse, error) {
	g, v, err := s.load(ctx, req.GameID, req.Version)
	if err != nil {
		return MoveResponse{}, err
	}

	next := g.State.Clone()
	if !domain.AttemptMove(v.Rules, &next, req.From, req.To) {
		s.logger.Debug("move rejected", "game_id", g.ID, "from", req.From.String(), "to", req.To.String())
		return MoveResponse{Game: g, Accepted: false}, nil
	}

	move := domain.Move{From: req.From, To: req.To}
	g, finished, err := s.commit(ctx, g, v, next, func(g *domain.Game) { g.Moves++ })
	if err != nil {
		return MoveResponse{}, err
	}

	s.publish(ctx, g, domain.EventMoveApplied, &move)
	if finished {
		s.finish(ctx, g)
	}
	return MoveResponse{Game: g, Accepted: true}, nil
}

// Redeal reshapes the tableau. It is always allowed.
func (s *SolitaireService) Redeal(ctx context.Context, id string, version int64) (domain.Game, error) {
	g, v, err := s.load(ctx, id, version)
	if err != nil {
		return domain.Game{}, err
	}

	next := domain.Redeal(g.State)
	g, finished, err := s.commit(ctx, g, v, next, func(g *domain.Game) { g.Redeals++ })
	if err != nil {
		return domain.Game{}, err
	}

	s.publish(ctx, g, domain.EventTableauRedeal, nil)
	if finished {
		s.finish(ctx, g)
	}
	return g, nil
}

// Hints lists the moves currently accepted by the game's rules.
func (s *SolitaireService) Hints(ctx context.Context, id string) ([]domain.Move, error) {
	g, v, err := s.load(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	return domain.LegalMoves(v.Rules, &g.State), nil
}

// Abandon drops a game. Unfinished games are recorded as abandoned.
func (s *SolitaireService) Abandon(ctx context.Context, id string) error {
	g, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get game: %w", err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}

	s.logger.Info("game abandoned", "game_id", id, "moves", g.Moves)
	if !g.Status.Terminal() {
		s.publish(ctx, g, domain.EventGameAbandoned, nil)
		s.record(ctx, g, domain.OutcomeAbandoned)
	}
	return nil
}

func (s *SolitaireService) load(ctx context.Context, id string, version int64) (domain.Game, domain.Variant, error) {
	g, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Game{}, domain.Variant{}, fmt.Errorf("get game: %w", err)
	}
	if version != 0 && version != g.Version {
		return domain.Game{}, domain.Variant{}, fmt.Errorf("%w: have %d, got %d", domain.ErrVersionConflict, g.Version, version)
	}
	v, err := domain.LookupVariant(g.Variant)
	if err != nil {
		return domain.Game{}, domain.Variant{}, fmt.Errorf("game %s: %w", g.ID, err)
	}
	return g, v, nil
}

// commit validates next and stores it as the game's new state. The bool reports
// whether the game has just reached a terminal status.
func (s *SolitaireService) commit(ctx context.Context, g domain.Game, v domain.Variant, next domain.GameState, bump func(*domain.Game)) (domain.Game, bool, error) {
	if err := s.checkState(g.ID, &next); err != nil {
		return domain.Game{}, false, err
	}

	prevVersion, prevStatus := g.Version, g.Status
	g.State = next
	g.Status = domain.Evaluate(v.Rules, &next)
	g.Version++
	g.UpdatedAt = s.now()
	bump(&g)

	if err := s.store.Update(ctx, g, prevVersion); err != nil {
		return domain.Game{}, false, fmt.Errorf("update game: %w", err)
	}
	return g, g.Status != prevStatus && g.Status.Terminal(), nil
}

func (s *SolitaireService) checkState(id string, state *domain.GameState) error {
	if err := state.Validate(); err != nil {
		s.logger.Error("engine produced an invalid state", "game_id", id, "error", err)
		return err
	}
	return nil
}

func (s *SolitaireService) finish(ctx context.Context, g domain.Game) {
	kind, outcome := domain.EventGameWon, domain.OutcomeWon
	if g.Status == domain.StatusBlocked {
		kind, outcome = domain.EventGameBlocked, domain.OutcomeBlocked
	}
	s.logger.Info("game finished", "game_id", g.ID, "outcome", outcome, "moves", g.Moves, "redeals", g.Redeals)
	s.publish(ctx, g, kind, nil)
	s.record(ctx, g, outcome)
}

func (s *SolitaireService) publish(ctx context.Context, g domain.Game, kind domain.EventKind, move *domain.Move) {
	evt := domain.Event{
		Kind:    kind,
		GameID:  g.ID,
		Variant: g.Variant,
		Move:    move,
		Status:  g.Status,
		Version: g.Version,
		At:      s.now(),
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		s.logger.Warn("publish event failed", "game_id", g.ID, "kind", kind, "error", err)
	}
}

func (s *SolitaireService) record(ctx context.Context, g domain.Game, outcome domain.Outcome) {
	res := domain.Result{
		GameID:     g.ID,
		Variant:    g.Variant,
		Outcome:    outcome,
		Moves:      g.Moves,
		Redeals:    g.Redeals,
		StartedAt:  g.CreatedAt,
		FinishedAt: s.now(),
	}
	if err := s.results.Record(ctx, res); err != nil {
		s.logger.Warn("record result failed", "game_id", g.ID, "outcome", outcome, "error", err)
	}
}

func resolveVariant(raw string) string {
	if raw == "" {
		return domain.VariantCruel
	}
	return raw
}
