package game

import (
	"fmt"
	"strings"

	"github.com/lox/pokerbot/internal/deck"
)

// Difficulty selects how aggressively the bot plays
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty converts "easy", "medium" or "hard" into a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if d < Easy || d > Hard {
		return nil, fmt.Errorf("unknown difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PolicyView is what a policy-driven seat is allowed to see
type PolicyView struct {
	Difficulty Difficulty
	Street     Street
	Hole       []deck.Card
	Board      []deck.Card // face-up community cards only
	ToCall     int
	Pot        int
	Chips      int
}

// Decision is a policy's chosen action. RaiseSize is only meaningful for Raise.
type Decision struct {
	Action    Action
	RaiseSize int
	Reasoning string
}

// Policy chooses actions for the bot seat
type Policy interface {
	Decide(view PolicyView) Decision
}

// PolicyFunc adapts a function to the Policy interface
type PolicyFunc func(view PolicyView) Decision

func (f PolicyFunc) Decide(view PolicyView) Decision {
	return f(view)
}
