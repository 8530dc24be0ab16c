package http

import (
	"time"

	"github.com/khempel0430/solitaire/internal/app"
	"github.com/khempel0430/solitaire/internal/domain"
)

type NewGameRequest struct {
	Variant string `json:"variant"`
}

// MoveRequest is the body of POST /v1/games/:id/moves. Version 0 skips the
// concurrency check.
type MoveRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Version int64  `json:"version"`
}

type RedealRequest struct {
	Version int64 `json:"version"`
}

type CardResponse struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
	Name string `json:"name"`
}

// GameResponse is the JSON shape of a game.
type GameResponse struct {
	ID          string                    `json:"id"`
	Variant     string                    `json:"variant"`
	Status      domain.Status             `json:"status"`
	Version     int64                     `json:"version"`
	Moves       int                       `json:"moves"`
	Redeals     int                       `json:"redeals"`
	Layout      domain.Layout             `json:"layout"`
	Foundations map[string][]CardResponse `json:"foundations"`
	Tableau     [][]CardResponse          `json:"tableau"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

type MoveResponse struct {
	Accepted bool         `json:"accepted"`
	Game     GameResponse `json:"game"`
}

type MoveDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type HintsResponse struct {
	Moves []MoveDTO `json:"moves"`
}

type VariantResponse struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Layout domain.Layout `json:"layout"`
}

type RulesResponse struct {
	Variant       string `json:"variant"`
	Decks         string `json:"decks"`
	InitialLayout string `json:"initial_layout"`
	Objective     string `json:"objective"`
	Play          string `json:"play"`
	RulesLink     string `json:"rules_link"`
	RulesLinkName string `json:"rules_link_name"`
}

type CardImageResponse struct {
	Face string `json:"face"`
	Name string `json:"name"`
	Src  string `json:"src,omitempty"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toCards(p domain.Pile) []CardResponse {
	out := make([]CardResponse, len(p))
	for i, c := range p {
		out[i] = CardResponse{Suit: c.Suit.String(), Rank: c.Rank.String(), Name: c.Name()}
	}
	return out
}

func toGameResponse(g domain.Game) GameResponse {
	foundations := make(map[string][]CardResponse, domain.SuitCount)
	for _, s := range domain.Suits() {
		foundations[s.String()] = toCards(g.State.Foundations[s])
	}
	tableau := make([][]CardResponse, len(g.State.Tableau))
	for i, p := range g.State.Tableau {
		tableau[i] = toCards(p)
	}
	return GameResponse{
		ID:          g.ID,
		Variant:     g.Variant,
		Status:      g.Status,
		Version:     g.Version,
		Moves:       g.Moves,
		Redeals:     g.Redeals,
		Layout:      g.State.Layout,
		Foundations: foundations,
		Tableau:     tableau,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func toMoveResponse(r app.MoveResponse) MoveResponse {
	return MoveResponse{Accepted: r.Accepted, Game: toGameResponse(r.Game)}
}

func toHints(moves []domain.Move) HintsResponse {
	out := make([]MoveDTO, len(moves))
	for i, m := range moves {
		out[i] = MoveDTO{From: m.From.String(), To: m.To.String()}
	}
	return HintsResponse{Moves: out}
}

func toRulesResponse(variant string, t domain.RulesText) RulesResponse {
	return RulesResponse{
		Variant:       variant,
		Decks:         t.DecksSentence(),
		InitialLayout: t.InitialLayout,
		Objective:     t.Objective,
		Play:          t.Play,
		RulesLink:     t.RulesLink,
		RulesLinkName: t.RulesLinkName,
	}
}
