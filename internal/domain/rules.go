package domain

// Ruleset decides whether a single-card move is legal for one game variant.
// Implementations must be pure: no state kept between calls.
type Ruleset interface {
	CanMove(g *GameState, src, dst PileID) bool
}

// CruelRules is the move policy of Cruel solitaire.
//
// Checks run in order and the first failure rejects:
//  1. src is a non-empty tableau pile (foundations are never sources)
//  2. src and dst differ
//  3. the moving card shares its suit with dst's top card, unless dst is an empty tableau pile
//  4. onto a foundation the card must be the successor of the top rank;
//     onto a tableau pile it must be the predecessor, or the pile must be empty
type CruelRules struct{}

func (CruelRules) CanMove(g *GameState, src, dst PileID) bool {
	if !src.IsTableau() {
		return false
	}
	from, ok := g.Pile(src)
	if !ok {
		return false
	}
	card, ok := from.Top()
	if !ok {
		return false
	}
	if src == dst {
		return false
	}
	to, ok := g.Pile(dst)
	if !ok {
		return false
	}
	top, hasTop := to.Top()

	switch dst.Kind {
	case KindFoundation:
		if card.Suit != dst.Suit {
			return false
		}
		if !hasTop {
			return card.Rank == Ace
		}
		next, ok := top.Rank.Successor()
		return ok && card.Rank == next
	case KindTableau:
		if !hasTop {
			return true
		}
		if card.Suit != top.Suit {
			return false
		}
		prev, ok := top.Rank.Predecessor()
		return ok && card.Rank == prev
	}
	return false
}

// AttemptMove moves the top card of src onto dst when rules allow it and reports
// whether it did. A rejected move leaves g exactly as it was.
func AttemptMove(rules Ruleset, g *GameState, src, dst PileID) bool {
	if !rules.CanMove(g, src, dst) {
		return false
	}
	from := g.Tableau[src.Index]
	card := from[len(from)-1]
	// Reslice with a capped capacity so the destination append never writes into src.
	g.Tableau[src.Index] = from[:len(from)-1 : len(from)-1]

	switch dst.Kind {
	case KindFoundation:
		g.Foundations[dst.Suit] = append(g.Foundations[dst.Suit], card)
	case KindTableau:
		g.Tableau[dst.Index] = append(g.Tableau[dst.Index], card)
	}
	return true
}

// LegalMoves lists every move rules accept on g, sources left to right.
func LegalMoves(rules Ruleset, g *GameState) []Move {
	var moves []Move
	piles := g.Piles()
	for i := range g.Tableau {
		src := TableauPile(i)
		for _, dst := range piles {
			if rules.CanMove(g, src, dst) {
				moves = append(moves, Move{From: src, To: dst})
			}
		}
	}
	return moves
}

// IsWon reports whether every card has reached its foundation.
func IsWon(g *GameState) bool {
	for _, p := range g.Foundations {
		if len(p) != RankCount {
			return false
		}
	}
	return true
}

// IsBlocked reports whether the game is unfinished and no move exists either
// now or after a redeal.
func IsBlocked(rules Ruleset, g *GameState) bool {
	if IsWon(g) || len(LegalMoves(rules, g)) > 0 {
		return false
	}
	redealt := Redeal(*g)
	return len(LegalMoves(rules, &redealt)) == 0
}

// Status is the derived progress of a game.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusBlocked Status = "blocked"
)

// Terminal reports whether no further progress is possible.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusBlocked }

// Evaluate derives the status of g under rules.
func Evaluate(rules Ruleset, g *GameState) Status {
	switch {
	case IsWon(g):
		return StatusWon
	case IsBlocked(rules, g):
		return StatusBlocked
	default:
		return StatusPlaying
	}
}
