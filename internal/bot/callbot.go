package bot

import (
	"github.com/lox/pokerbot/internal/game"
)

// CallBot checks or calls every street, except that it folds the river when
// facing a bet larger than the pot it is calling into.
type CallBot struct{}

// NewCallBot creates a new CallBot instance
func NewCallBot() *CallBot {
	return &CallBot{}
}

func (c *CallBot) Decide(view game.PolicyView) game.Decision {
	if view.Street == game.River && view.ToCall > 0 && view.ToCall*5 > (view.Pot-view.ToCall)*4 {
		return game.Decision{Action: game.Fold, Reasoning: "folding river to large bet"}
	}
	if view.ToCall == 0 {
		return game.Decision{Action: game.Call, Reasoning: "call-bot checking"}
	}
	return game.Decision{Action: game.Call, Reasoning: "call-bot calling"}
}
