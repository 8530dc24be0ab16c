package domain

// DeckSize is the number of cards in a single standard deck.
const DeckSize = SuitCount * RankCount

// BuildDeck returns the 52 cards ordered by suit, then ascending rank.
func BuildDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits() {
		for _, r := range Ranks() {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle returns a uniformly random permutation of cards drawn from rng.
// The input slice is left untouched.
func Shuffle(cards []Card, rng RNG) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)

	// Fisher-Yates.
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// splitAces separates the four aces, indexed by suit, from the rest of the deck.
func splitAces(deck []Card) (aces [SuitCount]Card, rest []Card) {
	rest = make([]Card, 0, len(deck)-SuitCount)
	for _, c := range deck {
		if c.Rank == Ace {
			aces[c.Suit] = c
			continue
		}
		rest = append(rest, c)
	}
	return aces, rest
}

// dealBlocks cuts cards into consecutive blocks of size: pile i gets cards[i*size:(i+1)*size].
// Piles past the end of cards are empty; cards beyond piles*size go to the last pile.
func dealBlocks(cards []Card, piles, size int) []Pile {
	out := make([]Pile, piles)
	for i := range piles {
		start := min(i*size, len(cards))
		end := min(start+size, len(cards))
		if i == piles-1 {
			end = len(cards)
		}
		pile := make(Pile, end-start)
		copy(pile, cards[start:end])
		out[i] = pile
	}
	return out
}
