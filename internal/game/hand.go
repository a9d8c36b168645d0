package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/lox/pokerbot/internal/deck"
	"github.com/lox/pokerbot/internal/evaluator"
)

// StartHand shuffles a fresh deck, deals hole and community cards, and posts
// the blinds. It fails with ErrInvalidState while a hand is still running or
// when either seat has no chips left.
func (t *Table) StartHand(rng *rand.Rand) ([]Event, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: rng is required to deal", ErrInvalidState)
	}
	if t.HandRunning() {
		return nil, fmt.Errorf("%w: hand %d is still in progress", ErrInvalidState, t.HandNumber)
	}
	for i := range t.Seats {
		if t.Seats[i].Chips <= 0 {
			return nil, fmt.Errorf("%w: %s has no chips", ErrInvalidState, t.Seats[i].Name)
		}
	}

	next := t.Snapshot()
	d := deck.NewShuffled(rng)
	for i := range next.Seats {
		hole, err := d.DrawN(2)
		if err != nil {
			return nil, fmt.Errorf("deal hole cards: %w", err)
		}
		next.Seats[i].Hole = hole
		next.Seats[i].Bet = 0
		next.Seats[i].Committed = 0
	}
	community, err := d.DrawN(CommunitySize)
	if err != nil {
		return nil, fmt.Errorf("deal community cards: %w", err)
	}

	next.Community = community
	next.VisibleCount = 0
	next.Street = Preflop
	next.Pot = 0
	next.HandNumber++
	next.HandOver = false
	next.LastResult = nil
	next.postBlinds()

	*t = *next
	return []Event{t.handStartEvent()}, nil
}

func (t *Table) postBlinds() {
	sb := &t.Seats[t.SmallBlindSeat]
	bb := &t.Seats[other(t.SmallBlindSeat)]

	// Short stacks post what they have and are all-in
	t.Pot += sb.pay(t.SmallBlind)
	t.Pot += bb.pay(t.BigBlind)
	t.CurrentBet = t.BigBlind
}

// ApplyAction applies a human action and, if the hand is still live, the
// bot's single counter-action from the table's policy. Raise sizes of zero
// or less fall back to MinRaise. Bets larger than a stack are capped as
// all-in rather than rejected.
func (t *Table) ApplyAction(seat int, action Action, raiseAmount int) ([]Event, error) {
	if !t.HandRunning() {
		return nil, fmt.Errorf("%w: no hand in progress", ErrInvalidState)
	}
	if seat != HumanSeat && seat != BotSeat {
		return nil, fmt.Errorf("%w: unknown seat %d", ErrInvalidAction, seat)
	}
	if t.Seats[seat].Role != Human {
		return nil, fmt.Errorf("%w: seat %d is driven by the bot policy", ErrInvalidAction, seat)
	}
	if !action.Valid() {
		return nil, fmt.Errorf("%w: unknown action %d", ErrInvalidAction, int(action))
	}

	next := t.Snapshot()
	events := next.apply(seat, action, raiseAmount, "")

	responder := other(seat)
	if !next.HandOver && next.policy != nil && next.Seats[responder].Role == Bot {
		decision := next.policy.Decide(next.ViewFor(responder))
		if !decision.Action.Valid() {
			return nil, fmt.Errorf("%w: policy chose action %d", ErrInvalidAction, int(decision.Action))
		}
		events = append(events, next.apply(responder, decision.Action, decision.RaiseSize, decision.Reasoning)...)
	}

	*t = *next
	return events, nil
}

// apply performs a single validated action for seat.
func (t *Table) apply(seat int, action Action, raiseAmount int, reasoning string) []Event {
	s := &t.Seats[seat]

	switch action {
	case Fold:
		ev := t.actionEvent(seat, Fold, 0, reasoning)
		winner := other(seat)
		r := &HandResult{Winner: winnerForSeat(winner), Reason: "fold"}
		r.Won[winner] = t.Pot
		t.settle(r)
		return []Event{ev, t.handEndEvent(r)}

	case Call:
		paid := s.pay(t.CurrentBet - s.Bet)
		t.Pot += paid
		return []Event{t.actionEvent(seat, Call, paid, reasoning)}

	default:
		if raiseAmount <= 0 {
			raiseAmount = t.MinRaise
		}
		target := min(t.CurrentBet+raiseAmount, s.Chips+s.Bet)
		paid := s.pay(target - s.Bet)
		t.Pot += paid
		// An all-in for less than the current bet never lowers it
		t.CurrentBet = max(t.CurrentBet, s.Bet)
		return []Event{t.actionEvent(seat, Raise, paid, reasoning)}
	}
}

// AdvanceStreet moves the hand to the next street, revealing community cards.
// Leaving the river resolves the showdown and pays out the pot.
func (t *Table) AdvanceStreet() ([]Event, error) {
	if !t.HandRunning() {
		return nil, fmt.Errorf("%w: no hand in progress", ErrInvalidState)
	}

	next := t.Snapshot()
	for i := range next.Seats {
		next.Seats[i].Bet = 0
	}
	next.CurrentBet = 0

	switch next.Street {
	case Preflop, Flop, Turn:
		shown := next.VisibleCount
		next.Street++
		next.VisibleCount = next.Street.VisibleCards()
		events := []Event{next.streetEvent(next.Community[shown:next.VisibleCount])}
		*t = *next
		return events, nil

	case River:
		sd, err := Resolve(next.Seats[HumanSeat].Hole, next.Seats[BotSeat].Hole, next.Community)
		if err != nil {
			return nil, fmt.Errorf("resolve showdown: %w", err)
		}
		next.Street = Showdown
		events := []Event{next.streetEvent(nil)}

		r := &HandResult{
			Winner: sd.Winner,
			Reason: "showdown",
			Hands:  []evaluator.HandRank{sd.Hands[HumanSeat], sd.Hands[BotSeat]},
		}
		if seat, ok := sd.Winner.Seat(); ok {
			r.Won[seat] = next.Pot
		} else {
			r.Won = splitPot(next.Pot, next.SmallBlindSeat)
		}
		next.settle(r)
		events = append(events, next.handEndEvent(r))

		*t = *next
		return events, nil
	}

	return nil, fmt.Errorf("%w: cannot advance from %s", ErrInvalidState, next.Street)
}

// ViewFor returns what seat may see when deciding: its own hole cards and
// the revealed board, never the opponent's cards.
func (t *Table) ViewFor(seat int) PolicyView {
	s := &t.Seats[seat]
	return PolicyView{
		Difficulty: t.Difficulty,
		Street:     t.Street,
		Hole:       cloneCards(s.Hole),
		Board:      t.Board(),
		ToCall:     max(t.CurrentBet-s.Bet, 0),
		Pot:        t.Pot,
		Chips:      s.Chips,
	}
}
