package bot

import (
	"github.com/lox/pokerbot/internal/game"
)

// FoldBot is a simple bot that always folds (or checks when possible)
type FoldBot struct{}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot() *FoldBot {
	return &FoldBot{}
}

func (f *FoldBot) Decide(view game.PolicyView) game.Decision {
	if view.ToCall == 0 {
		return game.Decision{Action: game.Call, Reasoning: "fold-bot checking"}
	}
	return game.Decision{Action: game.Fold, Reasoning: "fold-bot folding"}
}
