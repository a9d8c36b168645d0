package game

import (
	"fmt"
	"strings"

	"github.com/lox/pokerbot/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypeHandEnd      EventType = "hand_end"
	EventTypeStreetChange EventType = "street_change"
	EventTypePlayerAction EventType = "player_action"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event describes one thing that happened at the table. Operations return
// the events they produced in order.
type Event struct {
	Type      EventType   `json:"type"`
	Seat      int         `json:"seat"`
	Role      Role        `json:"role"`
	Action    Action      `json:"action"`
	Amount    int         `json:"amount,omitempty"` // chips moved into the pot
	Bet       int         `json:"bet,omitempty"`    // seat's bet after the action
	AllIn     bool        `json:"all_in,omitempty"`
	Street    Street      `json:"street"`
	Cards     []deck.Card `json:"cards,omitempty"`
	Pot       int         `json:"pot"`
	Result    *HandResult `json:"result,omitempty"`
	Reasoning string      `json:"reasoning,omitempty"`
	Message   string      `json:"message"`
}

func (t *Table) actionEvent(seat int, action Action, paid int, reasoning string) Event {
	s := &t.Seats[seat]
	e := Event{
		Type:      EventTypePlayerAction,
		Seat:      seat,
		Role:      s.Role,
		Action:    action,
		Amount:    paid,
		Bet:       s.Bet,
		AllIn:     s.Chips == 0 && action != Fold,
		Street:    t.Street,
		Pot:       t.Pot,
		Reasoning: reasoning,
	}

	switch {
	case action == Fold:
		e.Message = fmt.Sprintf("%s folds", s.Name)
	case action == Call && paid == 0:
		e.Message = fmt.Sprintf("%s checks", s.Name)
	case action == Call:
		e.Message = fmt.Sprintf("%s calls %d", s.Name, paid)
	default:
		e.Message = fmt.Sprintf("%s raises to %d", s.Name, s.Bet)
	}
	if e.AllIn {
		e.Message += " and is all-in"
	}
	return e
}

func (t *Table) streetEvent(dealt []deck.Card) Event {
	msg := fmt.Sprintf("Dealing the %s", t.Street)
	if t.Street == Showdown {
		msg = "Showdown"
	}
	if len(dealt) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, formatCards(dealt))
	}
	return Event{
		Type:    EventTypeStreetChange,
		Seat:    -1,
		Street:  t.Street,
		Cards:   cloneCards(dealt),
		Pot:     t.Pot,
		Message: msg,
	}
}

func (t *Table) handStartEvent() Event {
	sb := t.SmallBlindSeat
	bb := other(sb)
	return Event{
		Type:   EventTypeHandStart,
		Seat:   sb,
		Street: Preflop,
		Pot:    t.Pot,
		Message: fmt.Sprintf("Hand #%d: %s posts small blind %d, %s posts big blind %d",
			t.HandNumber, t.Seats[sb].Name, t.Seats[sb].Bet, t.Seats[bb].Name, t.Seats[bb].Bet),
	}
}

func (t *Table) handEndEvent(r *HandResult) Event {
	e := Event{
		Type:   EventTypeHandEnd,
		Seat:   -1,
		Street: t.Street,
		Result: r,
	}

	seat, ok := r.Winner.Seat()
	switch {
	case !ok:
		e.Message = fmt.Sprintf("Split pot of %d", r.Pot)
	case r.Reason == "fold":
		e.Seat = seat
		e.Message = fmt.Sprintf("%s wins %d chips (%s folded)", t.Seats[seat].Name, r.Pot, t.Seats[other(seat)].Name)
	default:
		e.Seat = seat
		e.Message = fmt.Sprintf("%s wins %d chips with %s", t.Seats[seat].Name, r.Pot, r.Hands[seat])
	}
	return e
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
