package bot

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lox/pokerbot/internal/game"
)

// OpponentNames lists the scripted strategies NewOpponent understands
var OpponentNames = []string{"call", "fold", "maniac", "random", "easy", "medium", "hard"}

// NewOpponent builds a scripted strategy by name. The difficulty names give a
// Policy that always plays at that difficulty, regardless of the table setting.
func NewOpponent(name string, rng *rand.Rand) (game.Policy, error) {
	switch strings.ToLower(name) {
	case "call":
		return NewCallBot(), nil
	case "fold":
		return NewFoldBot(), nil
	case "maniac":
		return NewManiacBot(rng), nil
	case "random":
		return NewRandBot(rng), nil
	}

	d, err := ParseDifficulty(name)
	if err != nil {
		return nil, fmt.Errorf("unknown opponent %q (want one of %s)", name, strings.Join(OpponentNames, ", "))
	}
	p := NewPolicy(rng, nil)
	return game.PolicyFunc(func(view game.PolicyView) game.Decision {
		view.Difficulty = d
		return p.Decide(view)
	}), nil
}
