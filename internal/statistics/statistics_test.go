package statistics

import (
	"encoding/json"
	"testing"

	"github.com/lox/pokerbot/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Empty(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.ErrorContains(t, stats.Validate(), "invalid hands count")
}

func TestStatistics_SingleValue(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	stats.Add(HandResult{
		NetBB:          2.5,
		Seed:           12345,
		Position:       BigBlind,
		WentToShowdown: true,
		FinalPotSize:   20,
		BigBlind:       2,
		StreetReached:  game.Showdown,
	})

	assert.Equal(t, 1, stats.Hands)
	assert.Equal(t, 2.5, stats.Mean())
	assert.Zero(t, stats.Variance(), "single value has no variance")
	assert.Equal(t, 2.5, stats.Median())
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Zero(t, stats.NonShowdownWins)
	assert.Equal(t, 1, stats.StreetCounts[game.Showdown])
	assert.True(t, stats.IsLedgerBalanced())
	require.NoError(t, stats.Validate())
}

func TestStatistics_MultipleValues(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}

	results := []HandResult{
		{NetBB: 1.0, Position: SmallBlind, StreetReached: game.Flop},
		{NetBB: -2.0, Position: BigBlind, WentToShowdown: true, StreetReached: game.Showdown},
		{NetBB: 3.0, Position: SmallBlind, WentToShowdown: true, StreetReached: game.Showdown},
		{NetBB: 0.0, Position: SmallBlind, StreetReached: game.Preflop},
		{NetBB: -1.0, Position: BigBlind, StreetReached: game.Preflop},
	}
	for _, result := range results {
		stats.Add(result)
	}

	assert.Equal(t, 5, stats.Hands)
	assert.InDelta(t, 0.2, stats.Mean(), 1e-9)
	assert.Zero(t, stats.Median(), "sorted values are -2, -1, 0, 1, 3")

	assert.Equal(t, 1, stats.ShowdownWins, "only the +3 hand won at showdown")
	assert.Equal(t, 1, stats.NonShowdownWins, "only the +1 hand won without showdown")
	assert.InDelta(t, 1.0, stats.ShowdownBB, 1e-9)
	assert.InDelta(t, 0.0, stats.NonShowdownBB, 1e-9)

	assert.Equal(t, 3, stats.PositionResults[SmallBlind].Hands)
	assert.Equal(t, 2, stats.PositionResults[BigBlind].Hands)
	assert.Equal(t, [game.Showdown + 1]int{2, 1, 0, 0, 2}, stats.StreetCounts)

	assert.True(t, stats.IsLedgerBalanced())
	require.NoError(t, stats.Validate())
}

func TestStatistics_Percentiles(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HandResult{NetBB: float64(i)})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{0.875, 4.5},
		{1.0, 5.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, stats.Percentile(tt.percentile), 1e-9, "percentile %.3f", tt.percentile)
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		stats.Add(HandResult{NetBB: v})
	}

	low, high := stats.ConfidenceInterval95()
	assert.InDelta(t, stats.Mean(), (low+high)/2, 1e-9, "interval is symmetric around the mean")
	assert.Positive(t, high-low)
}

func TestStatistics_Variance(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	for _, v := range []float64{1, 3, 5} {
		stats.Add(HandResult{NetBB: v})
	}

	assert.InDelta(t, 4.0, stats.Variance(), 1e-9)
	assert.InDelta(t, 2.0, stats.StdDev(), 1e-9)
}

func TestStatistics_PositionAnalysis(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 2.0, Position: SmallBlind})
	stats.Add(HandResult{NetBB: 3.0, Position: SmallBlind})
	stats.Add(HandResult{NetBB: -1.0, Position: BigBlind})
	stats.Add(HandResult{NetBB: 1.0, Position: BigBlind})

	assert.InDelta(t, 2.5, stats.PositionMean(SmallBlind), 1e-9)
	assert.InDelta(t, 0.0, stats.PositionMean(BigBlind), 1e-9)
	assert.Zero(t, stats.PositionMean(Position(7)))
	assert.Equal(t, "small blind", SmallBlind.String())
}

func TestStatistics_PotSizeTracking(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 1.0, FinalPotSize: 20, BigBlind: 2})    // 10bb
	stats.Add(HandResult{NetBB: 5.0, FinalPotSize: 1000, BigBlind: 10}) // 100bb
	stats.Add(HandResult{NetBB: -1.0, FinalPotSize: 4, BigBlind: 2})    // 2bb

	assert.Equal(t, 1000, stats.MaxPotChips)
	assert.InDelta(t, 100.0, stats.MaxPotBB, 1e-9)
	assert.Equal(t, 1, stats.BigPots)
	assert.InDelta(t, 5.0, stats.BigPotsBB, 1e-9)
}

func TestStatistics_Merge(t *testing.T) {
	t.Parallel()
	results := []HandResult{
		{NetBB: 1.5, Position: SmallBlind, StreetReached: game.Turn, FinalPotSize: 30, BigBlind: 2},
		{NetBB: -4, Position: BigBlind, WentToShowdown: true, StreetReached: game.Showdown, FinalPotSize: 200, BigBlind: 2},
		{NetBB: 0.5, Position: SmallBlind, StreetReached: game.Preflop, FinalPotSize: 3, BigBlind: 2},
		{NetBB: 2, Position: BigBlind, WentToShowdown: true, StreetReached: game.Showdown, FinalPotSize: 8, BigBlind: 2},
	}

	whole := &Statistics{}
	for _, r := range results {
		whole.Add(r)
	}

	a, b := &Statistics{}, &Statistics{}
	for i, r := range results {
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}
	merged := &Statistics{}
	merged.Merge(a)
	merged.Merge(b)

	require.NoError(t, merged.Validate())
	assert.Equal(t, whole.Hands, merged.Hands)
	assert.InDelta(t, whole.SumBB, merged.SumBB, 1e-9)
	assert.InDelta(t, whole.Variance(), merged.Variance(), 1e-9)
	assert.Equal(t, whole.Median(), merged.Median())
	assert.Equal(t, whole.PositionResults, merged.PositionResults)
	assert.Equal(t, whole.StreetCounts, merged.StreetCounts)
	assert.Equal(t, whole.MaxPotChips, merged.MaxPotChips)
	assert.Equal(t, whole.BigPots, merged.BigPots)
}

func TestStatistics_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Statistics {
		s := &Statistics{}
		s.Add(HandResult{NetBB: 1, Position: SmallBlind})
		s.Add(HandResult{NetBB: 1, Position: BigBlind, WentToShowdown: true, StreetReached: game.Showdown})
		return s
	}

	tests := []struct {
		name    string
		corrupt func(*Statistics)
		errMsg  string
	}{
		{"ledger", func(s *Statistics) { s.NonShowdownBB += 0.1 }, "ledger mismatch"},
		{"values", func(s *Statistics) { s.Values = s.Values[:1] }, "values array length"},
		{"wins", func(s *Statistics) { s.ShowdownWins = 3 }, "exceeds total hands"},
		{"positions", func(s *Statistics) { s.PositionResults[BigBlind].Hands = 0 }, "position hands total"},
		{"streets", func(s *Statistics) { s.StreetCounts[game.Flop] = 4 }, "street hands total"},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.corrupt(s)
			assert.ErrorContains(t, s.Validate(), tt.errMsg)
		})
	}
}

func TestStatistics_Summarize(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 3, Position: SmallBlind, WentToShowdown: true, StreetReached: game.Showdown})
	stats.Add(HandResult{NetBB: -1, Position: BigBlind, StreetReached: game.Flop})

	sum := stats.Summarize("call", "hard")
	assert.Equal(t, "call", sum.Opponent)
	assert.Equal(t, 2, sum.Hands)
	assert.InDelta(t, 1.0, sum.MeanBB, 1e-9)
	assert.Equal(t, 1, sum.Streets["showdown"])
	assert.Equal(t, 1, sum.Streets["flop"])
	assert.InDelta(t, 3.0, sum.SmallBlindBB, 1e-9)

	data, err := json.Marshal(sum)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mean_bb":1`)
}
