package bot

import (
	"math/rand/v2"

	"github.com/lox/pokerbot/internal/game"
	"github.com/lox/pokerbot/internal/randutil"
)

// RandBot is a simple bot that makes uniform random actions
type RandBot struct {
	rng *rand.Rand
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand) *RandBot {
	return &RandBot{rng: rng}
}

func (r *RandBot) Decide(view game.PolicyView) game.Decision {
	action := randutil.Uniform(r.rng, game.Actions[:]...)
	d := game.Decision{Action: action, Reasoning: "rand-bot random action"}
	if action == game.Raise {
		d.RaiseSize = randutil.IntRange(r.rng, 1, max(view.Chips, 1))
	}
	return d
}
