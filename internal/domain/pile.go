package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Pile is an ordered stack of cards. The last element is the top and the only playable card.
type Pile []Card

// Top returns the top card of p.
func (p Pile) Top() (Card, bool) {
	if len(p) == 0 {
		return Card{}, false
	}
	return p[len(p)-1], true
}

// PileKind tells foundations and tableau piles apart.
type PileKind uint8

const (
	KindFoundation PileKind = iota + 1
	KindTableau
)

// PileID names a pile within a game. The zero value names no pile.
type PileID struct {
	Kind  PileKind
	Suit  Suit // foundations only
	Index int  // tableau only, 0-based
}

const tableauPrefix = "tableau-"

// FoundationPile names the foundation of suit s.
func FoundationPile(s Suit) PileID { return PileID{Kind: KindFoundation, Suit: s} }

// TableauPile names the i-th tableau pile, counting from 0.
func TableauPile(i int) PileID { return PileID{Kind: KindTableau, Index: i} }

func (id PileID) IsFoundation() bool { return id.Kind == KindFoundation }
func (id PileID) IsTableau() bool    { return id.Kind == KindTableau }

// String returns "hearts" for foundations and "tableau-3" for tableau piles.
func (id PileID) String() string {
	switch id.Kind {
	case KindFoundation:
		return id.Suit.String()
	case KindTableau:
		return tableauPrefix + strconv.Itoa(id.Index)
	default:
		return "none"
	}
}

func (id PileID) MarshalText() ([]byte, error) {
	if id.Kind != KindFoundation && id.Kind != KindTableau {
		return nil, fmt.Errorf("%w: empty pile id", ErrInvalidPile)
	}
	return []byte(id.String()), nil
}

func (id *PileID) UnmarshalText(b []byte) error {
	parsed, err := ParsePileID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParsePileID parses the String form of a pile id.
func ParsePileID(raw string) (PileID, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if rest, ok := strings.CutPrefix(v, tableauPrefix); ok {
		// Only the canonical decimal form names a pile: no sign, no leading zeros.
		i, err := strconv.Atoi(rest)
		if err != nil || i < 0 || strconv.Itoa(i) != rest {
			return PileID{}, fmt.Errorf("%w: %q", ErrInvalidPile, raw)
		}
		return TableauPile(i), nil
	}
	s, err := ParseSuit(v)
	if err != nil {
		return PileID{}, fmt.Errorf("%w: %q", ErrInvalidPile, raw)
	}
	return FoundationPile(s), nil
}

// Move is a single-card move from the top of one pile to another.
type Move struct {
	From PileID `json:"from"`
	To   PileID `json:"to"`
}

func (m Move) String() string { return m.From.String() + "->" + m.To.String() }
