// Package display renders a heads-up table for a terminal and runs the
// line-oriented prompt used by the play command.
package display

import (
	"fmt"
	"strings"

	"github.com/lox/pokerbot/internal/deck"
	"github.com/lox/pokerbot/internal/game"
)

// FormatCard renders a card with red or black styling by suit
func FormatCard(c deck.Card) string {
	if c.Suit.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

// FormatCards renders cards separated by spaces
func FormatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = FormatCard(c)
	}
	return strings.Join(parts, " ")
}

func hiddenCards(n int) string {
	return InfoStyle.Render(strings.TrimSpace(strings.Repeat("?? ", n)))
}

// RenderTable draws the table from the human's side. The bot's hole cards
// stay hidden unless the last hand went to showdown.
func RenderTable(t *game.Table) string {
	var b strings.Builder

	header := fmt.Sprintf("Hand #%d · %s · pot %d · %s bot", t.HandNumber, t.Street, t.Pot, t.Difficulty)
	b.WriteString(HandInfoStyle.Render(header))
	b.WriteString("\n")

	board := t.Board()
	if len(board) == 0 {
		b.WriteString("Board: " + InfoStyle.Render("(none)"))
	} else {
		b.WriteString("Board: " + FormatCards(board))
	}
	b.WriteString("\n")

	bot := &t.Seats[game.BotSeat]
	botCards := hiddenCards(len(bot.Hole))
	if revealBot(t) {
		botCards = FormatCards(bot.Hole)
	}
	b.WriteString(seatLine(t, game.BotSeat, botCards))
	b.WriteString("\n")

	human := &t.Seats[game.HumanSeat]
	b.WriteString(seatLine(t, game.HumanSeat, FormatCards(human.Hole)))

	if t.HandRunning() {
		if toCall := t.ViewFor(game.HumanSeat).ToCall; toCall > 0 {
			b.WriteString("\n")
			b.WriteString(ActionsStyle.Render(fmt.Sprintf("To call: %d", toCall)))
		}
	}
	return b.String()
}

func seatLine(t *game.Table, seat int, cards string) string {
	s := &t.Seats[seat]
	marker := "  "
	if seat == t.SmallBlindSeat {
		marker = "SB"
	}
	info := fmt.Sprintf("%s %-8s %6d chips  bet %-5d", marker, s.Name, s.Chips, s.Bet)
	return PlayerInfoStyle.Render(info) + " " + cards
}

func revealBot(t *game.Table) bool {
	return !t.HandRunning() && t.LastResult != nil && t.LastResult.Reason == "showdown"
}

// RenderEvent styles a single engine event for the log
func RenderEvent(e game.Event) string {
	switch e.Type {
	case game.EventTypeHandStart:
		return HeaderStyle.Render(e.Message)
	case game.EventTypeStreetChange:
		return HandInfoStyle.Render("── " + e.Message)
	case game.EventTypeHandEnd:
		if e.Result == nil {
			return e.Message
		}
		seat, ok := e.Result.Winner.Seat()
		switch {
		case !ok:
			return WarningStyle.Render(e.Message)
		case seat == game.HumanSeat:
			return SuccessStyle.Render(e.Message)
		default:
			return ErrorStyle.Render(e.Message)
		}
	default:
		line := e.Message
		if e.Reasoning != "" && e.Role == game.Bot {
			line += " " + InfoStyle.Render("("+e.Reasoning+")")
		}
		return line
	}
}

// RenderShowdown describes both hands once a hand has been decided at showdown
func RenderShowdown(t *game.Table) string {
	r := t.LastResult
	if r == nil || r.Reason != "showdown" || len(r.Hands) != 2 {
		return ""
	}
	lines := make([]string, 0, 2)
	for _, seat := range []int{game.HumanSeat, game.BotSeat} {
		s := &t.Seats[seat]
		lines = append(lines, fmt.Sprintf("%s shows %s (%s)", s.Name, FormatCards(s.Hole), r.Hands[seat]))
	}
	return strings.Join(lines, "\n")
}
