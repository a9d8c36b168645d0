// Package simulator measures the bot policy by playing it against scripted
// opponents. Every deal is played twice with the blinds swapped so that card
// luck cancels out, and deals run in parallel on independent tables.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/pokerbot/internal/bot"
	"github.com/lox/pokerbot/internal/fileutil"
	"github.com/lox/pokerbot/internal/game"
	"github.com/lox/pokerbot/internal/randutil"
	"github.com/lox/pokerbot/internal/statistics"
	"golang.org/x/sync/errgroup"
)

const (
	smallBlind = 1
	bigBlind   = 2
	// 100bb stacks
	startingChips = 200

	// maxActionsPerStreet bounds re-raising wars between the opponent and the bot
	maxActionsPerStreet = 4
)

// Mixed rotates through the scripted opponents hand by hand
const Mixed = "mixed"

// Config holds configuration for running simulations
type Config struct {
	Hands      int
	Opponent   string
	Difficulty game.Difficulty
	Seed       int64
	Workers    int
	Logger     *log.Logger
}

// Simulator runs poker hand simulations
type Simulator struct {
	config Config
	mix    []string
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Hands <= 0 {
		return nil, fmt.Errorf("hands must be positive, got %d", config.Hands)
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	config.Logger = config.Logger.WithPrefix("sim")

	s := &Simulator{config: config}
	if strings.EqualFold(config.Opponent, Mixed) {
		s.mix = mixedOpponents()
	} else if _, err := bot.NewOpponent(config.Opponent, randutil.New(0)); err != nil {
		return nil, err
	}
	return s, nil
}

// OpponentInfo describes the opponent for reports
func (s *Simulator) OpponentInfo() string {
	if s.mix != nil {
		return fmt.Sprintf("%s(%s)", Mixed, strings.Join(s.mix, ","))
	}
	return s.config.Opponent
}

// Run plays every deal and returns the aggregated statistics. Results do not
// depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	results := make([][2]statistics.HandResult, s.config.Hands)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Hands; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := s.config.Seed + int64(i)
			opponent := s.opponentFor(i)

			for j, pos := range []statistics.Position{statistics.SmallBlind, statistics.BigBlind} {
				res, err := s.playHand(opponent, seed, pos)
				if err != nil {
					return fmt.Errorf("hand %d (seed %d, %s): %w", i+1, seed, pos, err)
				}
				results[i][j] = res
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, pair := range results {
		stats.Add(pair[0])
		stats.Add(pair[1])
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("Simulation complete",
		"hands", stats.Hands,
		"opponent", s.OpponentInfo(),
		"mean_bb", fmt.Sprintf("%.4f", stats.Mean()))
	return stats, nil
}

func (s *Simulator) opponentFor(hand int) string {
	if s.mix != nil {
		return s.mix[hand%len(s.mix)]
	}
	return s.config.Opponent
}

// playHand plays one deal from seed with the bot in pos. The deck, the bot
// and the opponent draw from separate streams so both halves of a duplicate
// pair see the same cards.
func (s *Simulator) playHand(opponentName string, seed int64, pos statistics.Position) (statistics.HandResult, error) {
	opponent, err := bot.NewOpponent(opponentName, randutil.New(seed^0x5eed))
	if err != nil {
		return statistics.HandResult{}, err
	}
	policy := bot.NewPolicy(randutil.New(seed^0xb07), nil)

	sbSeat := game.BotSeat
	if pos == statistics.BigBlind {
		sbSeat = game.HumanSeat
	}
	t, err := game.NewTable(fmt.Sprintf("sim-%d-%d", seed, pos),
		game.WithBlinds(smallBlind, bigBlind),
		game.WithStartingChips(startingChips),
		game.WithDifficulty(s.config.Difficulty),
		game.WithSmallBlindSeat(sbSeat),
		game.WithNames("Opponent", "Bot"),
		game.WithPolicy(policy),
	)
	if err != nil {
		return statistics.HandResult{}, err
	}

	if _, err := t.StartHand(randutil.New(seed)); err != nil {
		return statistics.HandResult{}, err
	}

	for t.HandRunning() {
		if err := s.playStreet(t, opponent); err != nil {
			return statistics.HandResult{}, err
		}
		if !t.HandRunning() {
			break
		}
		if _, err := t.AdvanceStreet(); err != nil {
			return statistics.HandResult{}, err
		}
	}

	r := t.LastResult
	net := t.Seats[game.BotSeat].Chips - startingChips
	return statistics.HandResult{
		NetBB:          float64(net) / float64(bigBlind),
		Seed:           seed,
		Position:       pos,
		WentToShowdown: r.Reason == "showdown",
		FinalPotSize:   r.Pot,
		BigBlind:       bigBlind,
		StreetReached:  t.Street,
	}, nil
}

// playStreet lets the opponent act, and act again while the bot's answer
// leaves it facing a bet
func (s *Simulator) playStreet(t *game.Table, opponent game.Policy) error {
	for i := 0; i < maxActionsPerStreet; i++ {
		d := opponent.Decide(t.ViewFor(game.HumanSeat))
		if _, err := t.ApplyAction(game.HumanSeat, d.Action, d.RaiseSize); err != nil {
			return err
		}
		if !t.HandRunning() || t.ViewFor(game.HumanSeat).ToCall == 0 {
			return nil
		}
	}
	return nil
}

// mixedOpponents returns a fixed mix of opponent types for consistent testing
func mixedOpponents() []string {
	return []string{"call", "random", "maniac", "medium", "call", "hard"}
}

// WriteReport writes the run's summary as JSON. The file is replaced
// atomically so watchers never read a partial report.
func WriteReport(path string, sum statistics.Summary) error {
	return fileutil.WriteJSON(path, sum)
}

// PrintSummary prints a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, opponent string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS vs %s ===\n", opponent)
	fmt.Fprintf(w, "Hands played: %d\n", stats.Hands)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f bb/hand\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f bb/hand\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f bb\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f bb\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== PROFIT SOURCE ANALYSIS ===\n")
	if totalWins := stats.ShowdownWins + stats.NonShowdownWins; totalWins > 0 {
		fmt.Fprintf(w, "Winning hands: %d showdown (%.1f%%), %d fold equity (%.1f%%)\n",
			stats.ShowdownWins, float64(stats.ShowdownWins)/float64(totalWins)*100,
			stats.NonShowdownWins, float64(stats.NonShowdownWins)/float64(totalWins)*100)
	}
	if stats.Hands > 0 {
		fmt.Fprintf(w, "Non-showdown: %.2f bb/hand avg (all hands)\n", stats.NonShowdownBB/float64(stats.Hands))
		fmt.Fprintf(w, "Showdown: %.2f bb/hand avg (all hands)\n", stats.ShowdownBB/float64(stats.Hands))
	}

	fmt.Fprintf(w, "\n=== POT SIZE ANALYSIS ===\n")
	fmt.Fprintf(w, "Max pot observed: %d chips (%.1f bb)\n", stats.MaxPotChips, stats.MaxPotBB)
	fmt.Fprintf(w, "Big pots (>=%dbb): %d hands, %.2f bb total\n", statistics.BigPotBB, stats.BigPots, stats.BigPotsBB)

	fmt.Fprintf(w, "\n=== STREET ANALYSIS ===\n")
	for st, n := range stats.StreetCounts {
		fmt.Fprintf(w, "Ended on %s: %d hands\n", game.Street(st), n)
	}

	fmt.Fprintf(w, "\n=== POSITION ANALYSIS ===\n")
	for _, pos := range []statistics.Position{statistics.SmallBlind, statistics.BigBlind} {
		if ps := stats.PositionResults[pos]; ps.Hands > 0 {
			fmt.Fprintf(w, "%s: %d hands, %.3f bb/hand\n", pos, ps.Hands, stats.PositionMean(pos))
		}
	}
}
