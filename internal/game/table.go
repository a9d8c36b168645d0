package game

import (
	"fmt"

	"github.com/lox/pokerbot/internal/deck"
	"github.com/lox/pokerbot/internal/evaluator"
)

// Seat indexes. The human always sits in seat 0 and the bot in seat 1.
const (
	HumanSeat = 0
	BotSeat   = 1
)

// CommunitySize is the number of community cards dealt each hand
const CommunitySize = 5

// HandResult records how the last hand was settled
type HandResult struct {
	Winner Winner `json:"winner"`
	Reason string `json:"reason"` // "fold" or "showdown"
	Pot    int    `json:"pot"`
	Won    [2]int `json:"won"` // chips awarded to each seat
	// Hands holds each seat's evaluated hand when the hand reached showdown
	Hands []evaluator.HandRank `json:"hands,omitempty"`
}

// Table is the complete state of a heads-up game. It is a plain value that
// round-trips through encoding/json, so stores can snapshot it.
type Table struct {
	ID             string      `json:"id"`
	Seats          [2]Seat     `json:"seats"`
	Pot            int         `json:"pot"`
	CurrentBet     int         `json:"current_bet"`
	Street         Street      `json:"street"`
	Community      []deck.Card `json:"community,omitempty"`
	VisibleCount   int         `json:"visible_count"`
	Difficulty     Difficulty  `json:"difficulty"`
	SmallBlind     int         `json:"small_blind"`
	BigBlind       int         `json:"big_blind"`
	MinRaise       int         `json:"min_raise"`
	SmallBlindSeat int         `json:"small_blind_seat"`
	HandNumber     int         `json:"hand_number"`
	HandOver       bool        `json:"hand_over"`
	LastResult     *HandResult `json:"last_result,omitempty"`

	policy Policy
}

// NewTable creates a table with no hand in progress.
func NewTable(id string, opts ...TableOption) (*Table, error) {
	cfg := defaultTableConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.smallBlind < 0 || cfg.bigBlind <= 0 || cfg.smallBlind > cfg.bigBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", cfg.smallBlind, cfg.bigBlind)
	}
	if cfg.minRaise < 0 {
		return nil, fmt.Errorf("min raise must not be negative, got %d", cfg.minRaise)
	}
	if cfg.minRaise == 0 {
		cfg.minRaise = cfg.bigBlind
	}
	if cfg.smallBlindSeat != HumanSeat && cfg.smallBlindSeat != BotSeat {
		return nil, fmt.Errorf("small blind seat must be %d or %d, got %d", HumanSeat, BotSeat, cfg.smallBlindSeat)
	}
	if cfg.difficulty < Easy || cfg.difficulty > Hard {
		return nil, fmt.Errorf("unknown difficulty %d", int(cfg.difficulty))
	}

	chips := []int{cfg.startingChips, cfg.startingChips}
	if cfg.chipCounts != nil {
		chips = cfg.chipCounts
	}
	for i, c := range chips {
		if c <= 0 {
			return nil, fmt.Errorf("seat %d needs a positive stack, got %d", i, c)
		}
	}

	return &Table{
		ID: id,
		Seats: [2]Seat{
			{Name: cfg.names[HumanSeat], Role: Human, Chips: chips[HumanSeat]},
			{Name: cfg.names[BotSeat], Role: Bot, Chips: chips[BotSeat]},
		},
		Difficulty:     cfg.difficulty,
		SmallBlind:     cfg.smallBlind,
		BigBlind:       cfg.bigBlind,
		MinRaise:       cfg.minRaise,
		SmallBlindSeat: cfg.smallBlindSeat,
		policy:         cfg.policy,
	}, nil
}

// SetPolicy attaches the policy that answers human actions. Tables restored
// from a store have no policy until one is set.
func (t *Table) SetPolicy(p Policy) {
	t.policy = p
}

// SetDifficulty changes the bot difficulty; it applies from the bot's next decision.
func (t *Table) SetDifficulty(d Difficulty) error {
	if d < Easy || d > Hard {
		return fmt.Errorf("unknown difficulty %d", int(d))
	}
	t.Difficulty = d
	return nil
}

// HumanSeat returns the index of the human-driven seat
func (t *Table) HumanSeat() int {
	return t.seatFor(Human)
}

// BotSeat returns the index of the policy-driven seat
func (t *Table) BotSeat() int {
	return t.seatFor(Bot)
}

func (t *Table) seatFor(role Role) int {
	for i := range t.Seats {
		if t.Seats[i].Role == role {
			return i
		}
	}
	return -1
}

// HandRunning reports whether a hand has been dealt and not yet settled
func (t *Table) HandRunning() bool {
	return t.HandNumber > 0 && !t.HandOver
}

// Board returns the face-up community cards
func (t *Table) Board() []deck.Card {
	n := min(t.VisibleCount, len(t.Community))
	return append([]deck.Card(nil), t.Community[:n]...)
}

// TotalChips returns every chip on the table, stacks plus pot
func (t *Table) TotalChips() int {
	return t.Seats[0].Chips + t.Seats[1].Chips + t.Pot
}

// Snapshot returns a deep copy of the table, including its policy.
func (t *Table) Snapshot() *Table {
	c := *t
	c.Community = cloneCards(t.Community)
	for i := range c.Seats {
		c.Seats[i].Hole = cloneCards(t.Seats[i].Hole)
	}
	if t.LastResult != nil {
		r := *t.LastResult
		if r.Hands != nil {
			r.Hands = make([]evaluator.HandRank, len(t.LastResult.Hands))
			for i, h := range t.LastResult.Hands {
				r.Hands[i] = evaluator.HandRank{
					Category: h.Category,
					TieBreak: append([]int(nil), h.TieBreak...),
				}
			}
		}
		c.LastResult = &r
	}
	return &c
}

func cloneCards(cards []deck.Card) []deck.Card {
	if cards == nil {
		return nil
	}
	return append([]deck.Card(nil), cards...)
}

func other(seat int) int {
	return 1 - seat
}
