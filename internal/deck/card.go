package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in deck generation order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the symbol for a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Name returns the lower-case suit name used by the wire format
func (s Suit) Name() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	default:
		return ""
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

func (s Suit) valid() bool {
	return s >= Hearts && s <= Spades
}

// Rank represents a card rank. Aces are high (14).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the short notation for a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + int(r)))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Name returns the rank as spelled in the wire format ("2".."10", "jack", ..., "ace")
func (r Rank) Name() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "jack"
	case r == Queen:
		return "queen"
	case r == King:
		return "king"
	case r == Ace:
		return "ace"
	default:
		return ""
	}
}

func (r Rank) valid() bool {
	return r >= Two && r <= Ace
}

// Card is an immutable playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the short representation of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Code returns the transport encoding of a card, e.g. "ace_of_spades" or "10_of_hearts".
func (c Card) Code() string {
	return c.Rank.Name() + "_of_" + c.Suit.Name()
}

// Valid reports whether the card has a known rank and suit
func (c Card) Valid() bool {
	return c.Rank.valid() && c.Suit.valid()
}

// IsFaceCard returns true if the card is a face card (J, Q, K)
func (c Card) IsFaceCard() bool {
	return c.Rank >= Jack && c.Rank <= King
}

// MarshalText implements encoding.TextMarshaler using the transport encoding.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid card %d/%d", c.Rank, c.Suit)
	}
	return []byte(c.Code()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard decodes the "<value>_of_<suit>" transport encoding.
func ParseCard(code string) (Card, error) {
	value, suitName, ok := strings.Cut(strings.ToLower(strings.TrimSpace(code)), "_of_")
	if !ok {
		return Card{}, fmt.Errorf("invalid card %q: expected <value>_of_<suit>", code)
	}

	var card Card
	switch suitName {
	case "hearts":
		card.Suit = Hearts
	case "diamonds":
		card.Suit = Diamonds
	case "clubs":
		card.Suit = Clubs
	case "spades":
		card.Suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid card %q: unknown suit %q", code, suitName)
	}

	for r := Two; r <= Ace; r++ {
		if r.Name() == value {
			card.Rank = r
			return card, nil
		}
	}
	return Card{}, fmt.Errorf("invalid card %q: unknown value %q", code, value)
}

// Codes encodes a slice of cards for transport
func Codes(cards []Card) []string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.Code()
	}
	return codes
}
