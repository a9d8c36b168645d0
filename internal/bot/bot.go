// Package bot decides the bot seat's actions.
//
// Decide is a pure weighted-random policy over fold, call and raise. The
// weights depend on the bot difficulty and on which strength band the bot's
// hand falls into once community cards are showing. Before the flop a few
// hole-card shortcuts replace the weighted choice.
package bot

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lox/pokerbot/internal/deck"
	"github.com/lox/pokerbot/internal/evaluator"
	"github.com/lox/pokerbot/internal/game"
	"github.com/lox/pokerbot/internal/randutil"
)

// Difficulty is the bot difficulty stored on a table
type Difficulty = game.Difficulty

const (
	Easy   = game.Easy
	Medium = game.Medium
	Hard   = game.Hard
)

// ParseDifficulty converts "easy", "medium" or "hard" into a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	return game.ParseDifficulty(s)
}

// Band groups hand categories into the three strength bands the policy uses
type Band int

const (
	Weak Band = iota
	Moderate
	Strong
)

func (b Band) String() string {
	switch b {
	case Weak:
		return "weak"
	case Moderate:
		return "medium"
	case Strong:
		return "strong"
	default:
		return "unknown"
	}
}

// BandFor maps a hand category onto a strength band: pair or worse is weak,
// two pair and trips are medium, straights and better are strong.
func BandFor(c evaluator.Category) Band {
	switch {
	case c <= evaluator.OnePair:
		return Weak
	case c <= evaluator.ThreeOfAKind:
		return Moderate
	default:
		return Strong
	}
}

// weights holds fold/call/raise percentages indexed by band then difficulty
var weights = [3][3][3]int{
	Weak: {
		Easy:   {60, 40, 0},
		Medium: {30, 60, 10},
		Hard:   {10, 50, 40},
	},
	Moderate: {
		Easy:   {20, 70, 10},
		Medium: {10, 60, 30},
		Hard:   {0, 40, 60},
	},
	Strong: {
		Easy:   {0, 80, 20},
		Medium: {0, 40, 60},
		Hard:   {0, 20, 80},
	},
}

// raiseRange is the inclusive raise size range per difficulty
var raiseRange = [3][2]int{
	Easy:   {5, 15},
	Medium: {10, 30},
	Hard:   {20, 50},
}

// rerollChance is how often the weighted choice is replaced by a uniform one
const rerollChance = 0.10

// Input is everything the policy looks at
type Input struct {
	Difficulty Difficulty
	Street     game.Street
	// Category is the bot's current hand category. It is ignored pre-flop.
	Category evaluator.Category
	Hole     []deck.Card
}

// Decide picks an action and raise size for the bot.
func Decide(in Input, rng *rand.Rand) game.Decision {
	thinking := &ThinkingContext{}
	difficulty := in.Difficulty
	if difficulty < Easy || difficulty > Hard {
		difficulty = Medium
	}

	action, ok := preflopShortcut(in, difficulty, rng, thinking)
	if !ok {
		band := Weak
		if in.Street > game.Preflop {
			band = BandFor(in.Category)
			thinking.AddThought(fmt.Sprintf("holding %s, a %s hand", in.Category, band))
		} else {
			thinking.AddThought("nothing special pre-flop")
		}

		w := weights[band][difficulty]
		action, _ = randutil.Pick(rng,
			randutil.W(game.Fold, w[0]),
			randutil.W(game.Call, w[1]),
			randutil.W(game.Raise, w[2]),
		)

		if rng.Float64() < rerollChance {
			action = randutil.Uniform(rng, game.Actions[:]...)
			thinking.AddThought("mixing it up")
		}
	}

	d := game.Decision{Action: action}
	if action == game.Raise {
		r := raiseRange[difficulty]
		d.RaiseSize = randutil.IntRange(rng, r[0], r[1])
	}
	thinking.AddThought(fmt.Sprintf("%s at %s", action, difficulty))
	d.Reasoning = thinking.GetThoughts()
	return d
}

// preflopShortcut applies the hole-card rules that replace the weighted
// choice before any community card is visible.
func preflopShortcut(in Input, difficulty Difficulty, rng *rand.Rand, thinking *ThinkingContext) (game.Action, bool) {
	if in.Street != game.Preflop || len(in.Hole) != 2 {
		return 0, false
	}
	a, b := in.Hole[0], in.Hole[1]

	if a.Rank == b.Rank && a.Rank >= deck.Ten {
		thinking.AddThought(fmt.Sprintf("pocket %ss", a.Rank))
		if difficulty == Easy {
			return randutil.Uniform(rng, game.Call, game.Raise), true
		}
		return game.Raise, true
	}

	if a.Rank >= deck.Queen || b.Rank >= deck.Queen {
		thinking.AddThought(fmt.Sprintf("high card %s%s", a.Rank, b.Rank))
		if difficulty == Hard {
			return randutil.Uniform(rng, game.Call, game.Raise), true
		}
		return game.Call, true
	}

	return 0, false
}

// ThinkingContext accumulates the bot's reasoning while it decides
type ThinkingContext struct {
	thoughts []string
}

// AddThought adds a thought to the thinking process
func (tc *ThinkingContext) AddThought(thought string) {
	tc.thoughts = append(tc.thoughts, thought)
}

// GetThoughts returns the complete stream of thoughts
func (tc *ThinkingContext) GetThoughts() string {
	if len(tc.thoughts) == 0 {
		return "No clear reasoning available"
	}
	return strings.Join(tc.thoughts, ". ")
}
