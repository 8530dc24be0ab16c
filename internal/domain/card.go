package domain

import (
	"fmt"
	"strings"
)

// Suit is one of the four card suits.
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// SuitCount is the number of suits in a standard deck.
const SuitCount = 4

var suitNames = [SuitCount]string{"hearts", "diamonds", "clubs", "spades"}

// Suits returns the four suits in catalog order.
func Suits() []Suit {
	return []Suit{Hearts, Diamonds, Clubs, Spades}
}

func (s Suit) Valid() bool { return s < SuitCount }

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("suit(%d)", uint8(s))
	}
	return suitNames[s]
}

// Title returns the capitalized suit name, e.g. "Hearts".
func (s Suit) Title() string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

func (s Suit) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: suit %d", ErrInvalidCard, uint8(s))
	}
	return []byte(suitNames[s]), nil
}

func (s *Suit) UnmarshalText(b []byte) error {
	parsed, err := ParseSuit(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSuit accepts a suit name in any case.
func ParseSuit(raw string) (Suit, error) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for i, name := range suitNames {
		if name == lower {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: suit %q", ErrInvalidCard, raw)
}

// Rank is a card rank. The zero value is Ace and the order is Ace < 2 < ... < King.
type Rank uint8

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// RankCount is the number of ranks per suit.
const RankCount = 13

var (
	rankSymbols = [RankCount]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	rankWords   = [RankCount]string{"Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}
)

// Ranks returns all ranks in ascending order.
func Ranks() []Rank {
	out := make([]Rank, RankCount)
	for i := range RankCount {
		out[i] = Rank(i)
	}
	return out
}

func (r Rank) Valid() bool { return r < RankCount }

// Index returns the position of r in the ascending rank order, in [0,12].
func (r Rank) Index() int { return int(r) }

// Successor returns the next higher rank. ok is false for King.
func (r Rank) Successor() (next Rank, ok bool) {
	if r >= King {
		return 0, false
	}
	return r + 1, true
}

// Predecessor returns the next lower rank. ok is false for Ace.
func (r Rank) Predecessor() (prev Rank, ok bool) {
	if r == Ace || !r.Valid() {
		return 0, false
	}
	return r - 1, true
}

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("rank(%d)", uint8(r))
	}
	return rankSymbols[r]
}

// Word returns the spelled-out rank, e.g. "Queen".
func (r Rank) Word() string {
	if !r.Valid() {
		return r.String()
	}
	return rankWords[r]
}

func (r Rank) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: rank %d", ErrInvalidCard, uint8(r))
	}
	return []byte(rankSymbols[r]), nil
}

func (r *Rank) UnmarshalText(b []byte) error {
	parsed, err := ParseRank(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRank accepts a rank symbol ("A", "10", "k") or word ("Queen").
func ParseRank(raw string) (Rank, error) {
	v := strings.TrimSpace(raw)
	for i := range RankCount {
		if strings.EqualFold(v, rankSymbols[i]) || strings.EqualFold(v, rankWords[i]) {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("%w: rank %q", ErrInvalidCard, raw)
}

// RankIndex is the total-order comparator used by sequence checks.
func RankIndex(r Rank) int { return r.Index() }

// Card is an immutable (suit, rank) value. Two cards are the same card iff they are equal.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Name returns the human-readable card name, e.g. "Queen of Spades".
func (c Card) Name() string {
	return c.Rank.Word() + " of " + c.Suit.Title()
}

// String returns a compact form such as "Q♠".
func (c Card) String() string {
	return c.Rank.String() + suitSymbol(c.Suit)
}

func suitSymbol(s Suit) string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// ordinal maps a card to a unique index in [0,52).
func (c Card) ordinal() int {
	return int(c.Suit)*RankCount + int(c.Rank)
}
