package cardart_test

import (
	"context"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khempel0430/solitaire/internal/adapters/cardart"
	"github.com/khempel0430/solitaire/internal/domain"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		face domain.Face
		want string
	}{
		{domain.RegularFace(domain.Card{Suit: domain.Hearts, Rank: domain.Ace}), "card_hearts_A"},
		{domain.RegularFace(domain.Card{Suit: domain.Clubs, Rank: domain.Two}), "card_clubs_02"},
		{domain.RegularFace(domain.Card{Suit: domain.Spades, Rank: domain.Ten}), "card_spades_10"},
		{domain.RegularFace(domain.Card{Suit: domain.Diamonds, Rank: domain.Queen}), "card_diamonds_Q"},
		{domain.BackFace(), "card_back"},
		{domain.EmptyFace(), "card_empty"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cardart.FileName(tt.face))
	}
}

func TestCatalog_EmbeddedCoversDeck(t *testing.T) {
	c := cardart.NewCatalog("/static/cards")
	ctx := context.Background()

	for _, card := range domain.BuildDeck() {
		img, err := c.Resolve(ctx, domain.RegularFace(card))
		require.NoError(t, err, card.Name())
		assert.Equal(t, "/static/cards/"+img.Name+".png", img.Src)
	}
	back, err := c.Resolve(ctx, domain.BackFace())
	require.NoError(t, err)
	assert.Equal(t, "card_back", back.Name)
	_, err = c.Resolve(ctx, domain.EmptyFace())
	require.NoError(t, err)

	n, err := c.Len()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 54)
}

func TestCatalog_MissingArt(t *testing.T) {
	fsys := fstest.MapFS{"cards.csv": {Data: []byte("card_back\n\ncard_hearts_A\n")}}
	c := cardart.NewCatalogFS(fsys, "cards.csv", "/img")

	_, err := c.Resolve(context.Background(), domain.EmptyFace())
	assert.ErrorIs(t, err, domain.ErrArtNotFound)

	img, err := c.Resolve(context.Background(), domain.RegularFace(domain.Card{Suit: domain.Hearts, Rank: domain.Ace}))
	require.NoError(t, err)
	assert.Equal(t, "/img/card_hearts_A.png", img.Src)
}

func TestCatalog_LoadErrorIsSticky(t *testing.T) {
	c := cardart.NewCatalogFS(fstest.MapFS{}, "cards.csv", "/img")

	_, err := c.Resolve(context.Background(), domain.BackFace())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrArtNotFound)

	_, err = c.Len()
	assert.Error(t, err)
}

func TestCatalog_ConcurrentFirstUse(t *testing.T) {
	c := cardart.NewCatalog("/static/cards")
	var wg sync.WaitGroup
	errs := make([]error, 32)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.Resolve(context.Background(), domain.BackFace())
		}()
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}
