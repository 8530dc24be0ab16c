package domain

import (
	"fmt"
	"slices"
)

// Layout is the tableau shape used for the deal and every redeal.
type Layout struct {
	Piles    int `json:"piles"`
	PileSize int `json:"pile_size"`
}

// dealtCards is the number of cards dealt to the tableau: the deck minus the seeded aces.
const dealtCards = DeckSize - SuitCount

// Validate checks that the layout holds exactly the non-ace cards.
func (l Layout) Validate() error {
	if l.Piles <= 0 || l.PileSize <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidLayout, l.Piles, l.PileSize)
	}
	if l.Piles*l.PileSize != dealtCards {
		return fmt.Errorf("%w: %dx%d does not hold %d cards", ErrInvalidLayout, l.Piles, l.PileSize, dealtCards)
	}
	return nil
}

// GameState is the arrangement of all 52 cards into foundations and tableau piles.
type GameState struct {
	Foundations [SuitCount]Pile `json:"foundations"`
	Tableau     []Pile          `json:"tableau"`
	Layout      Layout          `json:"layout"`
}

// Deal builds a fresh state: aces seed their foundations and the other 48 cards are
// shuffled with rng and block-dealt into the layout's piles.
func Deal(layout Layout, rng RNG) (GameState, error) {
	if err := layout.Validate(); err != nil {
		return GameState{}, err
	}
	aces, rest := splitAces(BuildDeck())
	shuffled := Shuffle(rest, rng)

	var g GameState
	for _, s := range Suits() {
		g.Foundations[s] = Pile{aces[s]}
	}
	g.Tableau = dealBlocks(shuffled, layout.Piles, layout.PileSize)
	g.Layout = layout
	return g, nil
}

// Pile returns the pile named by id.
func (g *GameState) Pile(id PileID) (Pile, bool) {
	switch id.Kind {
	case KindFoundation:
		if !id.Suit.Valid() {
			return nil, false
		}
		return g.Foundations[id.Suit], true
	case KindTableau:
		if id.Index < 0 || id.Index >= len(g.Tableau) {
			return nil, false
		}
		return g.Tableau[id.Index], true
	default:
		return nil, false
	}
}

// Piles lists every pile id in the state: foundations in suit order, then tableau left to right.
func (g *GameState) Piles() []PileID {
	ids := make([]PileID, 0, SuitCount+len(g.Tableau))
	for _, s := range Suits() {
		ids = append(ids, FoundationPile(s))
	}
	for i := range g.Tableau {
		ids = append(ids, TableauPile(i))
	}
	return ids
}

// Clone returns a deep copy that shares no backing arrays with g.
func (g GameState) Clone() GameState {
	out := GameState{Layout: g.Layout}
	for i, p := range g.Foundations {
		out.Foundations[i] = slices.Clone(p)
	}
	out.Tableau = make([]Pile, len(g.Tableau))
	for i, p := range g.Tableau {
		out.Tableau[i] = slices.Clone(p)
	}
	return out
}

// Equal reports whether both states hold the same cards in the same piles and order.
func (g GameState) Equal(o GameState) bool {
	if g.Layout != o.Layout || len(g.Tableau) != len(o.Tableau) {
		return false
	}
	for i := range g.Foundations {
		if !slices.Equal(g.Foundations[i], o.Foundations[i]) {
			return false
		}
	}
	for i := range g.Tableau {
		if !slices.Equal(g.Tableau[i], o.Tableau[i]) {
			return false
		}
	}
	return true
}

// CardCount returns the total number of cards across all piles.
func (g *GameState) CardCount() int {
	n := 0
	for _, p := range g.Foundations {
		n += len(p)
	}
	for _, p := range g.Tableau {
		n += len(p)
	}
	return n
}

// Validate checks the structural invariants: one full deck with no duplicates, foundations
// built up in suit from the ace, and the tableau pile count fixed by the layout.
// A failure here is a bug, never a user error.
func (g *GameState) Validate() error {
	var seen [DeckSize]bool
	check := func(where string, c Card) error {
		if !c.Suit.Valid() || !c.Rank.Valid() {
			return fmt.Errorf("%w: %s holds malformed card %d/%d", ErrCorruptState, where, c.Suit, c.Rank)
		}
		if seen[c.ordinal()] {
			return fmt.Errorf("%w: %s duplicated in %s", ErrCorruptState, c, where)
		}
		seen[c.ordinal()] = true
		return nil
	}

	for _, s := range Suits() {
		for i, c := range g.Foundations[s] {
			if err := check(s.String(), c); err != nil {
				return err
			}
			if c.Suit != s || c.Rank != Rank(i) {
				return fmt.Errorf("%w: %s out of sequence on %s foundation", ErrCorruptState, c, s)
			}
		}
	}
	if len(g.Tableau) != g.Layout.Piles {
		return fmt.Errorf("%w: %d tableau piles, layout wants %d", ErrCorruptState, len(g.Tableau), g.Layout.Piles)
	}
	for i, p := range g.Tableau {
		for _, c := range p {
			if err := check(TableauPile(i).String(), c); err != nil {
				return err
			}
		}
	}
	if n := g.CardCount(); n != DeckSize {
		return fmt.Errorf("%w: %d cards in play, want %d", ErrCorruptState, n, DeckSize)
	}
	return nil
}
