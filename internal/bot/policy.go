package bot

import (
	"io"
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/pokerbot/internal/deck"
	"github.com/lox/pokerbot/internal/evaluator"
	"github.com/lox/pokerbot/internal/game"
)

// Policy drives the bot seat of a table. It is safe to share between tables.
type Policy struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *log.Logger
}

var _ game.Policy = (*Policy)(nil)

// NewPolicy creates a policy drawing from rng. A nil logger discards output.
func NewPolicy(rng *rand.Rand, logger *log.Logger) *Policy {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Policy{
		rng:    rng,
		logger: logger.WithPrefix("bot"),
	}
}

// Decide implements game.Policy
func (p *Policy) Decide(view game.PolicyView) game.Decision {
	in := Input{
		Difficulty: view.Difficulty,
		Street:     view.Street,
		Hole:       view.Hole,
	}

	if view.Street > game.Preflop && len(view.Board) > 0 {
		cards := make([]deck.Card, 0, len(view.Hole)+len(view.Board))
		cards = append(cards, view.Hole...)
		cards = append(cards, view.Board...)
		rank, err := evaluator.Evaluate(cards)
		if err != nil {
			p.logger.Warn("Could not evaluate bot hand", "error", err)
		} else {
			in.Category = rank.Category
		}
	}

	p.mu.Lock()
	d := Decide(in, p.rng)
	p.mu.Unlock()

	p.logger.Debug("Bot decision made",
		"street", view.Street,
		"difficulty", view.Difficulty,
		"category", in.Category,
		"decision", d.Action,
		"raise", d.RaiseSize,
		"reasoning", d.Reasoning)

	return d
}
