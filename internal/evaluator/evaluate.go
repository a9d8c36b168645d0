package evaluator

import (
	"errors"
	"fmt"

	"github.com/lox/pokerbot/internal/deck"
)

var (
	// ErrCardCount is returned when fewer than 5 or more than 7 cards are evaluated.
	ErrCardCount = errors.New("hand evaluation needs 5 to 7 cards")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("duplicate card in hand")
)

// rankMask has bit r set for each rank r (2..14) present; bit 1 mirrors the ace.
type rankMask uint16

func (m rankMask) has(r int) bool { return m&(1<<r) != 0 }

// Evaluate ranks the best five-card hand available in 5 to 7 cards.
func Evaluate(cards []deck.Card) (HandRank, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandRank{}, fmt.Errorf("%w: got %d", ErrCardCount, len(cards))
	}

	var (
		rankCounts [15]int
		suitCounts [4]int
		suitMasks  [4]rankMask
		all        rankMask
		seen       = make(map[deck.Card]bool, len(cards))
	)
	for _, c := range cards {
		if !c.Valid() {
			return HandRank{}, fmt.Errorf("invalid card %v", c)
		}
		if seen[c] {
			return HandRank{}, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = true
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
		suitMasks[c.Suit] |= 1 << c.Rank
		all |= 1 << c.Rank
	}

	flushSuit := -1
	for s, n := range suitCounts {
		if n >= 5 {
			flushSuit = s
			break
		}
	}

	if flushSuit >= 0 {
		if high := straightHigh(suitMasks[flushSuit]); high > 0 {
			if high == int(deck.Ace) {
				return HandRank{Category: RoyalFlush, TieBreak: straightRanks(high)}, nil
			}
			return HandRank{Category: StraightFlush, TieBreak: straightRanks(high)}, nil
		}
	}

	if quad := highestWithCount(rankCounts, 4, 0); quad > 0 {
		return HandRank{Category: FourOfAKind, TieBreak: append([]int{quad}, kickers(all, 1, quad)...)}, nil
	}

	if trip := highestWithCount(rankCounts, 3, 0); trip > 0 {
		if pair := highestWithCount(rankCounts, 2, trip); pair > 0 {
			return HandRank{Category: FullHouse, TieBreak: []int{trip, pair}}, nil
		}
	}

	if flushSuit >= 0 {
		return HandRank{Category: Flush, TieBreak: kickers(suitMasks[flushSuit], 5)}, nil
	}

	if high := straightHigh(all); high > 0 {
		return HandRank{Category: Straight, TieBreak: straightRanks(high)}, nil
	}

	if trip := highestWithCount(rankCounts, 3, 0); trip > 0 {
		return HandRank{Category: ThreeOfAKind, TieBreak: append([]int{trip}, kickers(all, 2, trip)...)}, nil
	}

	if high := highestWithCount(rankCounts, 2, 0); high > 0 {
		if low := highestWithCount(rankCounts, 2, high); low > 0 {
			return HandRank{Category: TwoPair, TieBreak: append([]int{high, low}, kickers(all, 1, high, low)...)}, nil
		}
		return HandRank{Category: OnePair, TieBreak: append([]int{high}, kickers(all, 3, high)...)}, nil
	}

	return HandRank{Category: HighCard, TieBreak: kickers(all, 5)}, nil
}

// MustEvaluate evaluates cards and panics on error (for tests)
func MustEvaluate(cards []deck.Card) HandRank {
	rank, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return rank
}

// straightHigh returns the high card of the best straight in mask, 5 for the
// wheel (A-2-3-4-5), or 0 when there is none.
func straightHigh(mask rankMask) int {
	if mask.has(int(deck.Ace)) {
		mask |= 1 << 1
	}
	for high := int(deck.Ace); high >= int(deck.Five); high-- {
		run := rankMask(0x1f) << (high - 4)
		if mask&run == run {
			return high
		}
	}
	return 0
}

// straightRanks lists the five ranks of a straight, with the wheel's ace as 1.
func straightRanks(high int) []int {
	ranks := make([]int, 5)
	for i := range ranks {
		ranks[i] = high - i
	}
	return ranks
}

// highestWithCount returns the highest rank appearing at least n times,
// skipping except, or 0 when none does.
func highestWithCount(counts [15]int, n int, except int) int {
	for r := int(deck.Ace); r >= int(deck.Two); r-- {
		if r != except && counts[r] >= n {
			return r
		}
	}
	return 0
}

// kickers returns up to n distinct ranks from mask, highest first, skipping exclude.
func kickers(mask rankMask, n int, exclude ...int) []int {
	out := make([]int, 0, n)
	for r := int(deck.Ace); r >= int(deck.Two) && len(out) < n; r-- {
		if !mask.has(r) || contains(exclude, r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func contains(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
