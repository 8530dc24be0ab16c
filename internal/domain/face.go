package domain

import (
	"fmt"
	"strings"
)

// FaceKind discriminates what a Face shows.
type FaceKind uint8

const (
	FaceRegular FaceKind = iota
	FaceBack
	FaceEmpty
)

// Face is something that can be drawn in a card slot: a real card or a placeholder.
// The kind is fixed at construction.
type Face struct {
	kind FaceKind
	card Card
}

// RegularFace returns the face of a playing card.
func RegularFace(c Card) Face { return Face{kind: FaceRegular, card: c} }

// BackFace returns the card-back placeholder.
func BackFace() Face { return Face{kind: FaceBack} }

// EmptyFace returns the empty-slot placeholder.
func EmptyFace() Face { return Face{kind: FaceEmpty} }

func (f Face) Kind() FaceKind { return f.kind }

// Card returns the playing card behind a regular face.
func (f Face) Card() (Card, bool) {
	if f.kind != FaceRegular {
		return Card{}, false
	}
	return f.card, true
}

// Token is the stable text identity of the face: "hearts-A", "back" or "empty".
func (f Face) Token() string {
	switch f.kind {
	case FaceBack:
		return "back"
	case FaceEmpty:
		return "empty"
	default:
		return f.card.Suit.String() + "-" + f.card.Rank.String()
	}
}

// Name is the display name, e.g. "Ace of Hearts" or "Card back".
func (f Face) Name() string {
	switch f.kind {
	case FaceBack:
		return "Card back"
	case FaceEmpty:
		return "Empty card"
	default:
		return f.card.Name()
	}
}

// ParseFace parses a face token.
func ParseFace(token string) (Face, error) {
	switch strings.ToLower(token) {
	case "back":
		return BackFace(), nil
	case "empty":
		return EmptyFace(), nil
	}
	suit, rank, ok := strings.Cut(token, "-")
	if !ok {
		return Face{}, fmt.Errorf("%w: face %q", ErrInvalidCard, token)
	}
	s, err := ParseSuit(suit)
	if err != nil {
		return Face{}, err
	}
	r, err := ParseRank(rank)
	if err != nil {
		return Face{}, err
	}
	return RegularFace(Card{Suit: s, Rank: r}), nil
}
