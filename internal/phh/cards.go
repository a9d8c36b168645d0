package phh

import (
	"strings"

	"github.com/lox/pokerbot/internal/deck"
)

// Card returns PHH notation for a card, e.g. "Th" or "As"
func Card(c deck.Card) string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank.String() + c.Suit.Name()[:1]
}

// Cards joins cards in PHH notation without separators, e.g. "AhKh"
func Cards(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(Card(c))
	}
	return b.String()
}
