package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khempel0430/solitaire/internal/domain"
)

func flatten(piles []domain.Pile) []domain.Card {
	var out []domain.Card
	for _, p := range piles {
		out = append(out, p...)
	}
	return out
}

func TestRedeal_Reshapes(t *testing.T) {
	a, b, cc, d, e := c(domain.Clubs, domain.Two), c(domain.Clubs, domain.Three),
		c(domain.Clubs, domain.Four), c(domain.Clubs, domain.Five), c(domain.Clubs, domain.Six)
	g := domain.GameState{
		Tableau: []domain.Pile{{a}, {b, cc, d}, {e}},
		Layout:  domain.Layout{Piles: 3, PileSize: 2},
	}

	out := domain.Redeal(g)
	assert.Equal(t, []domain.Pile{{a, b}, {cc, d}, {e}}, out.Tableau)
}

func TestRedeal_TrailingPilesEmpty(t *testing.T) {
	g := domain.GameState{
		Tableau: []domain.Pile{{}, {c(domain.Hearts, domain.Nine)}, {}, {c(domain.Hearts, domain.Ten)}},
		Layout:  domain.Layout{Piles: 4, PileSize: 4},
	}

	out := domain.Redeal(g)
	require.Len(t, out.Tableau, 4)
	assert.Equal(t, domain.Pile{c(domain.Hearts, domain.Nine), c(domain.Hearts, domain.Ten)}, out.Tableau[0])
	for i := 1; i < 4; i++ {
		assert.Empty(t, out.Tableau[i], "pile %d", i)
	}
}

func TestRedeal_Conservation(t *testing.T) {
	g, err := domain.Deal(cruelLayout, &deterministicRNG{values: []int{3, 8, 21, 1, 30}})
	require.NoError(t, err)

	// Play a few moves so piles have uneven sizes.
	for range 10 {
		moves := domain.LegalMoves(rules, &g)
		if len(moves) == 0 {
			break
		}
		require.True(t, domain.AttemptMove(rules, &g, moves[0].From, moves[0].To))
	}

	out := domain.Redeal(g)
	require.NoError(t, out.Validate())
	assert.Equal(t, g.CardCount(), out.CardCount())
	assert.Equal(t, g.Foundations, out.Foundations)
	assert.Equal(t, flatten(g.Tableau), flatten(out.Tableau))
	require.Len(t, out.Tableau, 12)

	remaining := len(flatten(out.Tableau))
	for i, p := range out.Tableau {
		want := min(4, max(0, remaining-4*i))
		assert.Len(t, p, want, "pile %d", i)
	}
}

func TestRedeal_Idempotent(t *testing.T) {
	g, err := domain.Deal(cruelLayout, &deterministicRNG{values: []int{12, 4, 0, 37}})
	require.NoError(t, err)
	g.Tableau[2] = append(g.Tableau[2], g.Tableau[3]...)
	g.Tableau[3] = domain.Pile{}

	once := domain.Redeal(g)
	twice := domain.Redeal(once)
	assert.True(t, once.Equal(twice))
}

func TestRedeal_DoesNotShareMemory(t *testing.T) {
	g, err := domain.Deal(cruelLayout, identityRNG{})
	require.NoError(t, err)
	before := g.Clone()

	out := domain.Redeal(g)
	out.Tableau[0][0] = c(domain.Spades, domain.King)
	out.Foundations[domain.Hearts] = append(out.Foundations[domain.Hearts], c(domain.Hearts, domain.Two))

	assert.True(t, before.Equal(g))
}
