// Package statistics aggregates the results of simulated hands.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/pokerbot/internal/game"
)

// Position is the bot's blind for a hand
type Position int

const (
	SmallBlind Position = iota
	BigBlind
)

func (p Position) String() string {
	if p == SmallBlind {
		return "small blind"
	}
	return "big blind"
}

// BigPotBB is the size, in big blinds, from which a pot counts as big
const BigPotBB = 50

// HandResult represents the outcome of a single hand for the bot
type HandResult struct {
	NetBB          float64     // Net big blinds won/lost by the bot
	Seed           int64       // Seed the hand was dealt from (for replay)
	Position       Position    // Bot's blind
	WentToShowdown bool        // Did the hand reach showdown?
	FinalPotSize   int         // Final pot size in chips
	BigBlind       int         // Big blind in chips, to express the pot in bb
	StreetReached  game.Street // Street the hand ended on
}

// PositionStats tracks statistics for one blind position
type PositionStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Statistics tracks simulation statistics
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	// Track ALL results, not just wins
	ShowdownWins    int     // Hands won at showdown
	NonShowdownWins int     // Hands won without showdown (fold equity)
	ShowdownBB      float64 // BB from showdown (wins AND losses)
	NonShowdownBB   float64 // BB from fold equity (wins AND losses)
	AllBB           float64 // Total BB for sanity check

	PositionResults [2]PositionStats

	// Hands that ended on each street, indexed by game.Street
	StreetCounts [game.Showdown + 1]int

	// Pot size analytics
	MaxPotChips int     // Largest pot observed (in chips)
	MaxPotBB    float64 // Largest pot observed (in bb)
	BigPots     int     // Pots >= BigPotBB
	BigPotsBB   float64 // BB from big pots
}

// Mean returns the arithmetic mean of all results in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return max((s.SumBB2-float64(s.Hands)*mean*mean)/float64(s.Hands-1), 0)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if netBB > 0 {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}

	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	if pos := result.Position; pos == SmallBlind || pos == BigBlind {
		s.PositionResults[pos].Hands++
		s.PositionResults[pos].SumBB += netBB
		s.PositionResults[pos].SumBB2 += netBB * netBB
	}

	if st := result.StreetReached; st >= game.Preflop && st <= game.Showdown {
		s.StreetCounts[st]++
	}

	potChips := result.FinalPotSize
	var potBB float64
	if result.BigBlind > 0 {
		potBB = float64(potChips) / float64(result.BigBlind)
	}
	if potChips > s.MaxPotChips {
		s.MaxPotChips = potChips
		s.MaxPotBB = potBB
	}
	if potBB >= BigPotBB {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Merge folds the results collected in other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	s.AllBB += other.AllBB
	for i := range s.PositionResults {
		s.PositionResults[i].Hands += other.PositionResults[i].Hands
		s.PositionResults[i].SumBB += other.PositionResults[i].SumBB
		s.PositionResults[i].SumBB2 += other.PositionResults[i].SumBB2
	}
	for i := range s.StreetCounts {
		s.StreetCounts[i] += other.StreetCounts[i]
	}
	if other.MaxPotChips > s.MaxPotChips {
		s.MaxPotChips = other.MaxPotChips
		s.MaxPotBB = other.MaxPotBB
	}
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// PositionMean returns the mean result for a blind position
func (s *Statistics) PositionMean(pos Position) float64 {
	if pos != SmallBlind && pos != BigBlind {
		return 0
	}
	ps := s.PositionResults[pos]
	if ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}

	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}

	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}

	totalWins := s.ShowdownWins + s.NonShowdownWins
	if totalWins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", totalWins, s.Hands)
	}

	totalPositionHands := s.PositionResults[SmallBlind].Hands + s.PositionResults[BigBlind].Hands
	if totalPositionHands != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)",
			totalPositionHands, s.Hands)
	}

	totalStreetHands := 0
	for _, n := range s.StreetCounts {
		totalStreetHands += n
	}
	if totalStreetHands != s.Hands {
		return fmt.Errorf("street hands total (%d) does not match total hands (%d)",
			totalStreetHands, s.Hands)
	}

	return nil
}

// Summary is the serialisable digest of a simulation run
type Summary struct {
	Opponent        string             `json:"opponent"`
	Difficulty      string             `json:"difficulty"`
	Hands           int                `json:"hands"`
	MeanBB          float64            `json:"mean_bb"`
	MedianBB        float64            `json:"median_bb"`
	StdDevBB        float64            `json:"std_dev_bb"`
	StdErrorBB      float64            `json:"std_error_bb"`
	CI95            [2]float64         `json:"ci95"`
	Percentiles     map[string]float64 `json:"percentiles"`
	ShowdownWins    int                `json:"showdown_wins"`
	NonShowdownWins int                `json:"non_showdown_wins"`
	ShowdownBB      float64            `json:"showdown_bb"`
	NonShowdownBB   float64            `json:"non_showdown_bb"`
	SmallBlindBB    float64            `json:"small_blind_bb"`
	BigBlindBB      float64            `json:"big_blind_bb"`
	Streets         map[string]int     `json:"streets"`
	MaxPotChips     int                `json:"max_pot_chips"`
	BigPots         int                `json:"big_pots"`
}

// Summarize condenses the statistics for a report
func (s *Statistics) Summarize(opponent, difficulty string) Summary {
	low, high := s.ConfidenceInterval95()
	sum := Summary{
		Opponent:   opponent,
		Difficulty: difficulty,
		Hands:      s.Hands,
		MeanBB:     s.Mean(),
		MedianBB:   s.Median(),
		StdDevBB:   s.StdDev(),
		StdErrorBB: s.StdError(),
		CI95:       [2]float64{low, high},
		Percentiles: map[string]float64{
			"p5":  s.Percentile(0.05),
			"p25": s.Percentile(0.25),
			"p75": s.Percentile(0.75),
			"p95": s.Percentile(0.95),
		},
		ShowdownWins:    s.ShowdownWins,
		NonShowdownWins: s.NonShowdownWins,
		ShowdownBB:      s.ShowdownBB,
		NonShowdownBB:   s.NonShowdownBB,
		SmallBlindBB:    s.PositionMean(SmallBlind),
		BigBlindBB:      s.PositionMean(BigBlind),
		Streets:         make(map[string]int, len(s.StreetCounts)),
		MaxPotChips:     s.MaxPotChips,
		BigPots:         s.BigPots,
	}
	for st, n := range s.StreetCounts {
		sum.Streets[game.Street(st).String()] = n
	}
	return sum
}
