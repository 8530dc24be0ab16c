package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khempel0430/solitaire/internal/domain"
)

func c(s domain.Suit, r domain.Rank) domain.Card { return domain.Card{Suit: s, Rank: r} }

var cruelLayout = domain.Layout{Piles: 12, PileSize: 4}

func TestDeal_Invariants(t *testing.T) {
	g, err := domain.Deal(cruelLayout, &deterministicRNG{values: []int{13, 2, 40, 7, 21}})
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	for _, s := range domain.Suits() {
		assert.Equal(t, domain.Pile{c(s, domain.Ace)}, g.Foundations[s], "foundation %s", s)
	}
	require.Len(t, g.Tableau, 12)
	for i, p := range g.Tableau {
		assert.Len(t, p, 4, "pile %d", i)
		for _, card := range p {
			assert.NotEqual(t, domain.Ace, card.Rank, "ace dealt to pile %d", i)
		}
	}

	seen := make(map[domain.Card]bool)
	for _, p := range g.Foundations {
		for _, card := range p {
			seen[card] = true
		}
	}
	for _, p := range g.Tableau {
		for _, card := range p {
			seen[card] = true
		}
	}
	assert.Len(t, seen, 52)
}

func TestDeal_BlockDealNotRoundRobin(t *testing.T) {
	g, err := domain.Deal(cruelLayout, identityRNG{})
	require.NoError(t, err)

	// Unshuffled non-ace order is 2..K of hearts, then diamonds, clubs, spades.
	assert.Equal(t, domain.Pile{
		c(domain.Hearts, domain.Two), c(domain.Hearts, domain.Three),
		c(domain.Hearts, domain.Four), c(domain.Hearts, domain.Five),
	}, g.Tableau[0])
	assert.Equal(t, domain.Pile{
		c(domain.Hearts, domain.Ten), c(domain.Hearts, domain.Jack),
		c(domain.Hearts, domain.Queen), c(domain.Hearts, domain.King),
	}, g.Tableau[2])
	assert.Equal(t, domain.Pile{
		c(domain.Diamonds, domain.Two), c(domain.Diamonds, domain.Three),
		c(domain.Diamonds, domain.Four), c(domain.Diamonds, domain.Five),
	}, g.Tableau[3])
	assert.Equal(t, domain.Pile{
		c(domain.Spades, domain.Ten), c(domain.Spades, domain.Jack),
		c(domain.Spades, domain.Queen), c(domain.Spades, domain.King),
	}, g.Tableau[11])
}

func TestDeal_InvalidLayout(t *testing.T) {
	for _, l := range []domain.Layout{{}, {Piles: 12, PileSize: 3}, {Piles: -4, PileSize: -12}} {
		_, err := domain.Deal(l, identityRNG{})
		assert.ErrorIs(t, err, domain.ErrInvalidLayout, "layout %+v", l)
	}
	_, err := domain.Deal(domain.Layout{Piles: 8, PileSize: 6}, identityRNG{})
	assert.NoError(t, err)
}

func TestValidate_DetectsCorruption(t *testing.T) {
	fresh := func() domain.GameState {
		g, err := domain.Deal(cruelLayout, identityRNG{})
		require.NoError(t, err)
		return g
	}

	t.Run("duplicate", func(t *testing.T) {
		g := fresh()
		g.Tableau[0][0] = g.Tableau[1][0]
		assert.ErrorIs(t, g.Validate(), domain.ErrCorruptState)
	})
	t.Run("lost card", func(t *testing.T) {
		g := fresh()
		g.Tableau[5] = g.Tableau[5][:3]
		assert.ErrorIs(t, g.Validate(), domain.ErrCorruptState)
	})
	t.Run("foundation out of sequence", func(t *testing.T) {
		g := fresh()
		g.Foundations[domain.Hearts] = append(g.Foundations[domain.Hearts], g.Tableau[0][1])
		g.Tableau[0] = append(g.Tableau[0][:1], g.Tableau[0][2:]...)
		assert.ErrorIs(t, g.Validate(), domain.ErrCorruptState)
	})
	t.Run("pile count", func(t *testing.T) {
		g := fresh()
		g.Tableau = append(g.Tableau, domain.Pile{})
		assert.ErrorIs(t, g.Validate(), domain.ErrCorruptState)
	})
}

func TestClone_Independent(t *testing.T) {
	g, err := domain.Deal(cruelLayout, identityRNG{})
	require.NoError(t, err)

	cp := g.Clone()
	require.True(t, g.Equal(cp))

	cp.Tableau[0][0] = c(domain.Spades, domain.King)
	cp.Foundations[domain.Clubs] = append(cp.Foundations[domain.Clubs], c(domain.Clubs, domain.Two))
	assert.Equal(t, c(domain.Hearts, domain.Two), g.Tableau[0][0])
	assert.Len(t, g.Foundations[domain.Clubs], 1)
	assert.False(t, g.Equal(cp))
}

func TestGameState_PileLookup(t *testing.T) {
	g, err := domain.Deal(cruelLayout, identityRNG{})
	require.NoError(t, err)

	_, ok := g.Pile(domain.TableauPile(12))
	assert.False(t, ok)
	_, ok = g.Pile(domain.TableauPile(-1))
	assert.False(t, ok)
	_, ok = g.Pile(domain.PileID{})
	assert.False(t, ok)

	p, ok := g.Pile(domain.FoundationPile(domain.Spades))
	require.True(t, ok)
	assert.Equal(t, domain.Pile{c(domain.Spades, domain.Ace)}, p)

	assert.Len(t, g.Piles(), 16)
}
