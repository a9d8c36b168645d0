package bot

import (
	"math/rand/v2"

	"github.com/lox/pokerbot/internal/game"
)

// ManiacBot is an extremely aggressive bot that shoves frequently
type ManiacBot struct {
	rng *rand.Rand
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand) *ManiacBot {
	return &ManiacBot{rng: rng}
}

func (m *ManiacBot) Decide(view game.PolicyView) game.Decision {
	shove := game.Decision{Action: game.Raise, RaiseSize: view.Chips, Reasoning: "maniac shove"}

	if view.ToCall == 0 {
		// Maniacs prefer to bet
		if m.rng.Float64() < 0.85 {
			if m.rng.Float64() < 0.3 {
				return shove
			}
			return game.Decision{Action: game.Raise, RaiseSize: max(view.Pot*3/4, 1), Reasoning: "maniac big raise"}
		}
		return game.Decision{Action: game.Call, Reasoning: "maniac checking"}
	}

	switch r := m.rng.Float64(); {
	case r < 0.4:
		shove.Reasoning = "maniac shove over bet"
		return shove
	case r < 0.8:
		return game.Decision{Action: game.Call, Reasoning: "maniac call"}
	default:
		return game.Decision{Action: game.Fold, Reasoning: "maniac fold"}
	}
}
