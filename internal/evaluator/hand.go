package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/pokerbot/internal/deck"
)

// Category is the class of a poker hand, ordered from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the human-readable name of a category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the evaluated strength of a hand: its category plus the
// rank values that break ties within it, most significant first.
type HandRank struct {
	Category Category `json:"category"`
	TieBreak []int    `json:"tie_break"`
}

// String returns the category name, e.g. "Full House"
func (h HandRank) String() string {
	return h.Category.String()
}

// Detail describes the hand with its deciding ranks, e.g. "Full House (K over 7)".
func (h HandRank) Detail() string {
	if len(h.TieBreak) == 0 {
		return h.Category.String()
	}
	switch h.Category {
	case FullHouse:
		return fmt.Sprintf("%s (%s over %s)", h.Category, rankName(h.TieBreak[0]), rankName(h.TieBreak[1]))
	case Straight, StraightFlush, Flush, HighCard:
		return fmt.Sprintf("%s (%s high)", h.Category, rankName(h.TieBreak[0]))
	case RoyalFlush:
		return h.Category.String()
	}

	names := make([]string, len(h.TieBreak))
	for i, v := range h.TieBreak {
		names[i] = rankName(v)
	}
	return fmt.Sprintf("%s (%s)", h.Category, strings.Join(names, " "))
}

// Compare compares two hands and returns:
// -1 if a is weaker than b
//
//	0 if a equals b
//	1 if a is stronger than b
func Compare(a, b HandRank) int {
	if a.Category != b.Category {
		if a.Category < b.Category {
			return -1
		}
		return 1
	}

	for i := 0; i < len(a.TieBreak) && i < len(b.TieBreak); i++ {
		if a.TieBreak[i] < b.TieBreak[i] {
			return -1
		}
		if a.TieBreak[i] > b.TieBreak[i] {
			return 1
		}
	}
	return 0
}

// Beats returns true if h is stronger than other
func (h HandRank) Beats(other HandRank) bool {
	return Compare(h, other) > 0
}

func rankName(v int) string {
	if v == 1 {
		return deck.Ace.String()
	}
	return deck.Rank(v).String()
}
