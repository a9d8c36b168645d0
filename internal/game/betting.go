package game

import (
	"fmt"
	"strings"
)

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

var streetNames = [...]string{"pre-flop", "flop", "turn", "river", "showdown"}

func (s Street) String() string {
	if s < Preflop || s > Showdown {
		return "unknown"
	}
	return streetNames[s]
}

// VisibleCards returns how many community cards are face up on the street
func (s Street) VisibleCards() int {
	switch s {
	case Flop:
		return 3
	case Turn:
		return 4
	case River, Showdown:
		return 5
	default:
		return 0
	}
}

func (s Street) MarshalText() ([]byte, error) {
	if s < Preflop || s > Showdown {
		return nil, fmt.Errorf("unknown street %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Street) UnmarshalText(text []byte) error {
	for i, name := range streetNames {
		if string(text) == name {
			*s = Street(i)
			return nil
		}
	}
	return fmt.Errorf("unknown street %q", text)
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Call
	Raise
)

// Actions lists every action in a fixed order
var Actions = [...]Action{Fold, Call, Raise}

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// Valid reports whether a is one of the known actions
func (a Action) Valid() bool {
	return a >= Fold && a <= Raise
}

// ParseAction converts an action token into an Action. "check" is accepted
// as an alias for call since a call with nothing owed pays nothing.
func ParseAction(token string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "fold":
		return Fold, nil
	case "call", "check":
		return Call, nil
	case "raise", "bet":
		return Raise, nil
	}
	return 0, fmt.Errorf("%w: unknown action %q", ErrInvalidAction, token)
}

func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
