package game

import (
	"fmt"

	"github.com/lox/pokerbot/internal/deck"
)

// Role identifies who drives a seat
type Role int

const (
	Human Role = iota
	Bot
)

func (r Role) String() string {
	switch r {
	case Human:
		return "player"
	case Bot:
		return "bot"
	default:
		return "unknown"
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if r != Human && r != Bot {
		return nil, fmt.Errorf("unknown role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	switch string(text) {
	case "player", "human":
		*r = Human
	case "bot":
		*r = Bot
	default:
		return fmt.Errorf("unknown role %q", text)
	}
	return nil
}

// Seat is one of the two positions at a table
type Seat struct {
	Name      string      `json:"name"`
	Role      Role        `json:"role"`
	Chips     int         `json:"chips"`
	Bet       int         `json:"bet"`       // Current bet in this street
	Committed int         `json:"committed"` // Total put in the pot this hand
	Hole      []deck.Card `json:"hole,omitempty"`
}

// AllIn reports whether the seat has committed its whole stack to a live hand
func (s *Seat) AllIn() bool {
	return s.Chips == 0 && s.Committed > 0
}

// pay moves up to amount chips from the stack into the seat's bet and
// returns how many chips actually moved.
func (s *Seat) pay(amount int) int {
	amount = min(max(amount, 0), s.Chips)
	s.Chips -= amount
	s.Bet += amount
	s.Committed += amount
	return amount
}
