package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/pokerbot/internal/deck"
	"github.com/lox/pokerbot/internal/game"
	"github.com/lox/pokerbot/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyEvaluatesVisibleBoard(t *testing.T) {
	t.Parallel()
	p := NewPolicy(randutil.New(1), log.New(io.Discard))

	d := p.Decide(game.PolicyView{
		Difficulty: Hard,
		Street:     game.Flop,
		Hole:       deck.MustParseCards("AsAh"),
		Board:      deck.MustParseCards("AdAc2s"),
	})
	assert.Contains(t, d.Reasoning, "holding Four of a Kind, a strong hand")
}

func TestPolicyPlaysTable(t *testing.T) {
	t.Parallel()
	tbl, err := game.NewTable("policy", game.WithDifficulty(Hard), game.WithPolicy(NewPolicy(randutil.New(9), nil)))
	require.NoError(t, err)

	rng := randutil.New(10)
	for hand := 0; hand < 50; hand++ {
		if _, err := tbl.StartHand(rng); err != nil {
			break
		}
		for tbl.HandRunning() {
			events, err := tbl.ApplyAction(game.HumanSeat, game.Call, 0)
			require.NoError(t, err)
			require.NotEmpty(t, events)
			if tbl.HandRunning() {
				_, err = tbl.AdvanceStreet()
				require.NoError(t, err)
			}
		}
		require.Equal(t, 2000, tbl.TotalChips())
	}
}

func TestScriptedOpponents(t *testing.T) {
	t.Parallel()
	facingBet := game.PolicyView{Street: game.Flop, ToCall: 20, Pot: 60, Chips: 500}
	unopened := game.PolicyView{Street: game.Flop, ToCall: 0, Pot: 40, Chips: 500}

	fold := NewFoldBot()
	assert.Equal(t, game.Fold, fold.Decide(facingBet).Action)
	assert.Equal(t, game.Call, fold.Decide(unopened).Action)

	call := NewCallBot()
	assert.Equal(t, game.Call, call.Decide(facingBet).Action)
	riverOverbet := game.PolicyView{Street: game.River, ToCall: 100, Pot: 140}
	assert.Equal(t, game.Fold, call.Decide(riverOverbet).Action)

	rng := randutil.New(3)
	for _, p := range []game.Policy{NewRandBot(rng), NewManiacBot(rng)} {
		for range 200 {
			d := p.Decide(facingBet)
			require.True(t, d.Action.Valid())
			if d.Action == game.Raise {
				assert.Positive(t, d.RaiseSize)
			}
		}
	}
}

func TestNewOpponent(t *testing.T) {
	t.Parallel()
	for _, name := range OpponentNames {
		p, err := NewOpponent(name, randutil.New(1))
		require.NoError(t, err, name)
		assert.NotNil(t, p, name)
	}
	_, err := NewOpponent("shark", randutil.New(1))
	assert.Error(t, err)
}
