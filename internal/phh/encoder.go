package phh

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lox/pokerbot/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeSection writes the hand as table [index] of a multi-hand PHHS file.
// Sections from successive calls can be appended to the same file.
func EncodeSection(w io.Writer, index int, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(map[string]*HandHistory{strconv.Itoa(index): hand}); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// FormatAction converts an engine action to a PHH action string for player
// index p (0-based). totalBet is the player's street bet after a raise.
func FormatAction(p int, action game.Action, totalBet int) string {
	player := fmt.Sprintf("p%d", p+1)
	switch action {
	case game.Fold:
		return player + " f"
	case game.Call:
		return player + " cc"
	default:
		return fmt.Sprintf("%s cbr %d", player, totalBet)
	}
}
