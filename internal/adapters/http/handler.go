package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/khempel0430/solitaire/internal/app"
	"github.com/khempel0430/solitaire/internal/domain"
	"github.com/khempel0430/solitaire/internal/ports"
)

const pingTimeout = 2 * time.Second

type Handler struct {
	svc     *app.SolitaireService
	art     ports.CardArt
	pingers []ports.Pinger
	logger  *slog.Logger
}

func NewHandler(svc *app.SolitaireService, art ports.CardArt, logger *slog.Logger, pingers ...ports.Pinger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, art: art, pingers: pingers, logger: logger.With("component", "http")}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	v1 := e.Group("/v1")
	v1.GET("/variants", h.ListVariants)
	v1.GET("/variants/:id/rules", h.GetRules)

	v1.POST("/games", h.CreateGame)
	v1.GET("/games/:id", h.GetGame)
	v1.DELETE("/games/:id", h.AbandonGame)
	v1.POST("/games/:id/moves", h.Move)
	v1.GET("/games/:id/hints", h.Hints)
	v1.POST("/games/:id/redeal", h.Redeal)

	v1.GET("/cards", h.ListCards)
	v1.GET("/cards/:face", h.GetCard)
}

// Healthz pings every remote backend. Any failure answers 503.
func (h *Handler) Healthz(c echo.Context) error {
	if len(h.pingers) == 0 {
		return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(h.pingers))}
	for _, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", "backend", p.Name(), "error", err)
			resp.Status = "degraded"
			resp.Checks[p.Name()] = err.Error()
			continue
		}
		resp.Checks[p.Name()] = "ok"
	}
	if resp.Status != "ok" {
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListVariants(c echo.Context) error {
	variants := h.svc.Variants()
	out := make([]VariantResponse, len(variants))
	for i, v := range variants {
		out[i] = VariantResponse{ID: v.ID, Name: v.Name, Layout: v.Layout}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetRules(c echo.Context) error {
	id := c.Param("id")
	text, err := h.svc.RulesFor(id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, toRulesResponse(id, text))
}

func (h *Handler) CreateGame(c echo.Context) error {
	var req NewGameRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}

	g, err := h.svc.NewGame(c.Request().Context(), req.Variant)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusCreated, toGameResponse(g))
}

func (h *Handler) GetGame(c echo.Context) error {
	g, err := h.svc.GetGame(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, toGameResponse(g))
}

func (h *Handler) AbandonGame(c echo.Context) error {
	if err := h.svc.Abandon(c.Request().Context(), c.Param("id")); err != nil {
		return h.mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Move(c echo.Context) error {
	var body MoveRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}
	from, err := domain.ParsePileID(body.From)
	if err != nil {
		return h.mapError(c, err)
	}
	to, err := domain.ParsePileID(body.To)
	if err != nil {
		return h.mapError(c, err)
	}

	resp, err := h.svc.Move(c.Request().Context(), app.MoveRequest{
		GameID:  c.Param("id"),
		From:    from,
		To:      to,
		Version: body.Version,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, toMoveResponse(resp))
}

func (h *Handler) Hints(c echo.Context) error {
	moves, err := h.svc.Hints(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, toHints(moves))
}

func (h *Handler) Redeal(c echo.Context) error {
	var body RedealRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}

	g, err := h.svc.Redeal(c.Request().Context(), c.Param("id"), body.Version)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, toGameResponse(g))
}

// ListCards returns every face of the deck with its artwork, if any.
func (h *Handler) ListCards(c echo.Context) error {
	faces := make([]domain.Face, 0, domain.DeckSize+2)
	for _, card := range domain.BuildDeck() {
		faces = append(faces, domain.RegularFace(card))
	}
	faces = append(faces, domain.BackFace(), domain.EmptyFace())

	out := make([]CardImageResponse, 0, len(faces))
	for _, f := range faces {
		item := CardImageResponse{Face: f.Token(), Name: f.Name()}
		img, err := h.art.Resolve(c.Request().Context(), f)
		switch {
		case err == nil:
			item.Src = img.Src
		case !errors.Is(err, domain.ErrArtNotFound):
			return h.mapError(c, err)
		}
		out = append(out, item)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetCard(c echo.Context) error {
	face, err := domain.ParseFace(c.Param("face"))
	if err != nil {
		return h.mapError(c, err)
	}
	img, err := h.art.Resolve(c.Request().Context(), face)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, CardImageResponse{Face: face.Token(), Name: face.Name(), Src: img.Src})
}

func (h *Handler) mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrGameNotFound), errors.Is(err, domain.ErrUnknownVariant), errors.Is(err, domain.ErrArtNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidPile), errors.Is(err, domain.ErrInvalidCard):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrVersionConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCorruptState):
		h.logger.Error("corrupt game state", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "corrupt game state"})
	case errors.Is(err, domain.ErrNoEntropy):
		h.logger.Error("no entropy for shuffle", "request_id", requestID, "error", err)
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "shuffle unavailable"})
	default:
		h.logger.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
