package domain

import (
	"fmt"
	"sort"
)

// RulesText is the static description shown to players. It has no effect on play.
type RulesText struct {
	Decks         int    `json:"decks"`
	InitialLayout string `json:"initial_layout"`
	Objective     string `json:"objective"`
	Play          string `json:"play"`
	RulesLink     string `json:"rules_link"`
	RulesLinkName string `json:"rules_link_name"`
}

// DecksSentence describes how many decks the game uses.
func (t RulesText) DecksSentence() string {
	decks := t.Decks
	if decks <= 0 {
		decks = 1
	}
	if decks == 1 {
		return "One standard deck of 52 playing cards."
	}
	return fmt.Sprintf("%d standard decks of 52 playing cards each.", decks)
}

// Variant bundles everything that differs between solitaire games built on this engine.
type Variant struct {
	ID     string
	Name   string
	Layout Layout
	Rules  Ruleset
	Text   RulesText
}

// NewGame deals a fresh game for v.
func (v Variant) NewGame(rng RNG) (GameState, error) {
	g, err := Deal(v.Layout, rng)
	if err != nil {
		return GameState{}, fmt.Errorf("deal %s: %w", v.ID, err)
	}
	return g, nil
}

// VariantCruel is the identifier of Cruel solitaire.
const VariantCruel = "cruel"

// Cruel returns the Cruel solitaire variant.
func Cruel() Variant {
	return Variant{
		ID:     VariantCruel,
		Name:   "Cruel",
		Layout: Layout{Piles: 12, PileSize: 4},
		Rules:  CruelRules{},
		Text: RulesText{
			Decks:         1,
			InitialLayout: "The four aces start on the foundations. The remaining 48 cards are shuffled and dealt face up into twelve piles of four.",
			Objective:     "Build all four foundations up in suit from ace to king.",
			Play:          "Only the top card of a tableau pile can move, one card at a time. A card may go onto its foundation if it is the next rank up, or onto another tableau pile of the same suit if it is one rank lower. Any card may be placed on an empty tableau pile. Foundation cards never move back. When you are stuck, redeal: the tableau is gathered in order, without shuffling, and dealt again into piles of four.",
			RulesLink:     "https://en.wikipedia.org/wiki/Cruel_(solitaire)",
			RulesLinkName: "Wikipedia",
		},
	}
}

var variants = map[string]func() Variant{
	VariantCruel: Cruel,
}

// LookupVariant returns the registered variant with the given id.
func LookupVariant(id string) (Variant, error) {
	build, ok := variants[id]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, id)
	}
	return build(), nil
}

// Variants returns all registered variants ordered by id.
func Variants() []Variant {
	ids := make([]string, 0, len(variants))
	for id := range variants {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Variant, 0, len(ids))
	for _, id := range ids {
		out = append(out, variants[id]())
	}
	return out
}
