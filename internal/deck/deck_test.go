package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerbot/internal/randutil"
)

func TestNewDeckOrder(t *testing.T) {
	d := NewDeck()
	cards := d.Cards()
	require.Len(t, cards, Size)

	// Suit-major: hearts 2..A, then diamonds, clubs, spades.
	assert.Equal(t, NewCard(Hearts, Two), cards[0])
	assert.Equal(t, NewCard(Hearts, Ace), cards[12])
	assert.Equal(t, NewCard(Diamonds, Two), cards[13])
	assert.Equal(t, NewCard(Clubs, Two), cards[26])
	assert.Equal(t, NewCard(Spades, Ace), cards[51])

	seen := make(map[Card]bool)
	for _, c := range cards {
		require.True(t, c.Valid())
		require.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
}

func TestDrawPopsFromEnd(t *testing.T) {
	d := NewDeck()

	card, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, NewCard(Spades, Ace), card)

	card, err = d.Draw()
	require.NoError(t, err)
	assert.Equal(t, NewCard(Spades, King), card)
	assert.Equal(t, Size-2, d.CardsRemaining())
}

func TestDrawEmptyDeck(t *testing.T) {
	d := NewDeck()
	for i := 0; i < Size; i++ {
		_, err := d.Draw()
		require.NoError(t, err)
	}
	assert.True(t, d.IsEmpty())

	_, err := d.Draw()
	require.ErrorIs(t, err, ErrEmptyDeck)
}

func TestDrawNLeavesDeckOnFailure(t *testing.T) {
	d := NewDeck()
	_, err := d.DrawN(50)
	require.NoError(t, err)

	_, err = d.DrawN(3)
	require.ErrorIs(t, err, ErrEmptyDeck)
	assert.Equal(t, 2, d.CardsRemaining())
}

func TestShuffleIsPermutation(t *testing.T) {
	d := NewShuffled(randutil.New(42))
	require.Equal(t, Size, d.CardsRemaining())

	seen := make(map[Card]bool)
	for !d.IsEmpty() {
		c, err := d.Draw()
		require.NoError(t, err)
		require.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, Size)
}

func TestShuffleDeterministic(t *testing.T) {
	a := NewShuffled(randutil.New(7)).Cards()
	b := NewShuffled(randutil.New(7)).Cards()
	c := NewShuffled(randutil.New(8)).Cards()

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestShuffleIsRoughlyUniform(t *testing.T) {
	// Count where the ace of spades lands across many shuffles.
	rng := randutil.New(1)
	const trials = 52 * 400
	counts := make([]int, Size)
	for i := 0; i < trials; i++ {
		d := NewDeck()
		d.Shuffle(rng)
		for pos, c := range d.Cards() {
			if c == NewCard(Spades, Ace) {
				counts[pos]++
				break
			}
		}
	}
	for pos, n := range counts {
		assert.InDelta(t, 400, n, 160, "position %d", pos)
	}
}
