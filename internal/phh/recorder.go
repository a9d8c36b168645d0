package phh

import (
	"fmt"
	"time"

	"github.com/lox/pokerbot/internal/game"
)

// Variant is the PHH code for no-limit Texas hold'em
const Variant = "NT"

// Recorder builds the history of one hand from the events the engine
// returns. Players are numbered from the small blind, so p1 posts the small
// blind whichever seat it is.
type Recorder struct {
	hand  *HandHistory
	order [2]int // table seat of p1 and p2
}

// NewRecorder starts a history for the hand just dealt on t
func NewRecorder(t *game.Table, now time.Time) *Recorder {
	sb := t.SmallBlindSeat
	r := &Recorder{order: [2]int{sb, 1 - sb}}

	h := &HandHistory{
		Variant:           Variant,
		Table:             t.ID,
		Antes:             []int{0, 0},
		BlindsOrStraddles: []int{t.SmallBlind, t.BigBlind},
		MinBet:            t.BigBlind,
		HandID:            fmt.Sprintf("%s-%d", t.ID, t.HandNumber),
		Metadata: map[string]any{
			"difficulty":  t.Difficulty.String(),
			"hand_number": t.HandNumber,
		},
	}
	for p, seat := range r.order {
		s := &t.Seats[seat]
		h.StartingStacks = append(h.StartingStacks, s.Chips+s.Committed)
		h.Players = append(h.Players, s.Name)
		h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", p+1, Cards(s.Hole)))
	}
	h.SetTimestamp(now)

	r.hand = h
	return r
}

func (r *Recorder) player(seat int) int {
	if seat == r.order[0] {
		return 0
	}
	return 1
}

// Record appends the actions and board cards found in events
func (r *Recorder) Record(events []game.Event) {
	for _, e := range events {
		switch e.Type {
		case game.EventTypePlayerAction:
			r.hand.Actions = append(r.hand.Actions, FormatAction(r.player(e.Seat), e.Action, e.Bet))
		case game.EventTypeStreetChange:
			if len(e.Cards) > 0 {
				r.hand.Actions = append(r.hand.Actions, "d db "+Cards(e.Cards))
			}
		}
	}
}

// Finish completes the history once t has settled the hand
func (r *Recorder) Finish(t *game.Table) (*HandHistory, error) {
	if t.HandRunning() || t.LastResult == nil {
		return nil, fmt.Errorf("phh: hand %d has not finished", t.HandNumber)
	}

	res := t.LastResult
	h := r.hand
	h.FinishingStacks = h.FinishingStacks[:0]
	h.Winnings = h.Winnings[:0]
	for p, seat := range r.order {
		if res.Reason == "showdown" {
			h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", p+1, Cards(t.Seats[seat].Hole)))
		}
		h.FinishingStacks = append(h.FinishingStacks, t.Seats[seat].Chips)
		h.Winnings = append(h.Winnings, res.Won[seat])
	}
	return h, nil
}
