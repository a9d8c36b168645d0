package game

import (
	"fmt"

	"github.com/lox/pokerbot/internal/deck"
	"github.com/lox/pokerbot/internal/evaluator"
)

// Winner is the outcome of comparing two hands. WinnerFirst and WinnerSecond
// line up with the human and bot seat indexes.
type Winner int

const (
	WinnerFirst Winner = iota
	WinnerSecond
	WinnerTie
)

func (w Winner) String() string {
	switch w {
	case WinnerFirst:
		return "player"
	case WinnerSecond:
		return "bot"
	case WinnerTie:
		return "tie"
	default:
		return "unknown"
	}
}

// Seat returns the winning seat index, or false for a tie
func (w Winner) Seat() (int, bool) {
	switch w {
	case WinnerFirst:
		return HumanSeat, true
	case WinnerSecond:
		return BotSeat, true
	default:
		return -1, false
	}
}

func winnerForSeat(seat int) Winner {
	if seat == HumanSeat {
		return WinnerFirst
	}
	return WinnerSecond
}

func (w Winner) MarshalText() ([]byte, error) {
	if w < WinnerFirst || w > WinnerTie {
		return nil, fmt.Errorf("unknown winner %d", int(w))
	}
	return []byte(w.String()), nil
}

func (w *Winner) UnmarshalText(text []byte) error {
	switch string(text) {
	case "player":
		*w = WinnerFirst
	case "bot":
		*w = WinnerSecond
	case "tie":
		*w = WinnerTie
	default:
		return fmt.Errorf("unknown winner %q", text)
	}
	return nil
}

// Showdown is the result of comparing two hole-card pairs on a board
type Showdown struct {
	Winner Winner
	Hands  [2]evaluator.HandRank
}

// Resolve evaluates both hands against the community cards and reports the
// winner. It does not touch any table state.
func Resolve(first, second, community []deck.Card) (Showdown, error) {
	var sd Showdown
	for i, hole := range [2][]deck.Card{first, second} {
		cards := make([]deck.Card, 0, len(hole)+len(community))
		cards = append(cards, hole...)
		cards = append(cards, community...)

		rank, err := evaluator.Evaluate(cards)
		if err != nil {
			return Showdown{}, fmt.Errorf("evaluate hand %d: %w", i+1, err)
		}
		sd.Hands[i] = rank
	}

	switch cmp := evaluator.Compare(sd.Hands[0], sd.Hands[1]); {
	case cmp > 0:
		sd.Winner = WinnerFirst
	case cmp < 0:
		sd.Winner = WinnerSecond
	default:
		sd.Winner = WinnerTie
	}
	return sd, nil
}

// splitPot divides a tied pot. The odd chip goes to the small blind seat.
func splitPot(pot, smallBlindSeat int) [2]int {
	var won [2]int
	half := pot / 2
	won[0], won[1] = half, half
	won[smallBlindSeat] += pot % 2
	return won
}

// settle pays out the pot, clears the hand's bets and records the result.
func (t *Table) settle(r *HandResult) {
	r.Pot = t.Pot
	for i := range t.Seats {
		t.Seats[i].Chips += r.Won[i]
		t.Seats[i].Bet = 0
		t.Seats[i].Committed = 0
	}
	t.Pot = 0
	t.CurrentBet = 0
	t.HandOver = true
	t.LastResult = r
}
