package domain

import "time"

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Game is one in-progress game as held by the service.
type Game struct {
	ID        string    `json:"id"`
	Variant   string    `json:"variant"`
	State     GameState `json:"state"`
	Status    Status    `json:"status"`
	Moves     int       `json:"moves"`
	Redeals   int       `json:"redeals"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventKind identifies a published game event.
type EventKind string

const (
	EventGameCreated   EventKind = "game_created"
	EventMoveApplied   EventKind = "move_applied"
	EventTableauRedeal EventKind = "tableau_redealt"
	EventGameWon       EventKind = "game_won"
	EventGameBlocked   EventKind = "game_blocked"
	EventGameAbandoned EventKind = "game_abandoned"
)

// Event describes something that happened to a game.
type Event struct {
	Kind    EventKind `json:"kind"`
	GameID  string    `json:"game_id"`
	Variant string    `json:"variant"`
	Move    *Move     `json:"move,omitempty"`
	Status  Status    `json:"status"`
	Version int64     `json:"version"`
	At      time.Time `json:"at"`
}

// Outcome is how a finished game ended.
type Outcome string

const (
	OutcomeWon       Outcome = "won"
	OutcomeBlocked   Outcome = "blocked"
	OutcomeAbandoned Outcome = "abandoned"
)

// Result is the summary recorded once a game finishes.
type Result struct {
	GameID     string    `json:"game_id"`
	Variant    string    `json:"variant"`
	Outcome    Outcome   `json:"outcome"`
	Moves      int       `json:"moves"`
	Redeals    int       `json:"redeals"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
