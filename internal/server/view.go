package server

import (
	"strings"
	"time"

	"github.com/lox/pokerbot/internal/deck"
	"github.com/lox/pokerbot/internal/game"
)

// SeatView is one seat as the human player is allowed to see it
type SeatView struct {
	Name      string   `json:"name"`
	Chips     int      `json:"chips"`
	Bet       int      `json:"bet"`
	Committed int      `json:"committed"`
	Hole      []string `json:"hole,omitempty"`
	AllIn     bool     `json:"all_in"`
}

// ShowdownView reports the last hand's result
type ShowdownView struct {
	Winner                string `json:"winner"`
	Reason                string `json:"reason"`
	Pot                   int    `json:"pot"`
	PlayerWon             int    `json:"player_won"`
	BotWon                int    `json:"bot_won"`
	PlayerHandDescription string `json:"player_hand_description,omitempty"`
	BotHandDescription    string `json:"bot_hand_description,omitempty"`
}

// TableView is what clients receive after every command
type TableView struct {
	ID          string        `json:"id"`
	HandNumber  int           `json:"hand_number"`
	HandRunning bool          `json:"hand_running"`
	Street      string        `json:"street"`
	Pot         int           `json:"pot"`
	CurrentBet  int           `json:"current_bet"`
	ToCall      int           `json:"to_call"`
	SmallBlind  int           `json:"small_blind"`
	BigBlind    int           `json:"big_blind"`
	Difficulty  string        `json:"difficulty"`
	Community   []string      `json:"community"`
	Player      SeatView      `json:"player"`
	Bot         SeatView      `json:"bot"`
	Result      *ShowdownView `json:"result,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// EventView is a game event rendered for clients
type EventView struct {
	Type    string   `json:"type"`
	Actor   string   `json:"actor,omitempty"`
	Action  string   `json:"action,omitempty"`
	Amount  int      `json:"amount,omitempty"`
	Cards   []string `json:"cards,omitempty"`
	Message string   `json:"message"`
}

// CommandResult is the response to a state-changing command
type CommandResult struct {
	Table   *TableView  `json:"table"`
	Events  []EventView `json:"events"`
	Message string      `json:"message"`
}

// NewTableView renders t from the human seat's point of view. The bot's hole
// cards are only revealed once a hand has been settled at showdown.
func NewTableView(t *game.Table, now time.Time) *TableView {
	human, bot := t.HumanSeat(), t.BotSeat()
	v := &TableView{
		ID:          t.ID,
		HandNumber:  t.HandNumber,
		HandRunning: t.HandRunning(),
		Street:      t.Street.String(),
		Pot:         t.Pot,
		CurrentBet:  t.CurrentBet,
		SmallBlind:  t.SmallBlind,
		BigBlind:    t.BigBlind,
		Difficulty:  t.Difficulty.String(),
		Community:   deck.Codes(t.Board()),
		Player:      seatView(&t.Seats[human], true),
		UpdatedAt:   now,
	}
	if t.HandRunning() {
		v.ToCall = max(t.CurrentBet-t.Seats[human].Bet, 0)
	}

	r := t.LastResult
	v.Bot = seatView(&t.Seats[bot], r != nil && r.Reason == "showdown")
	if r != nil {
		sv := &ShowdownView{
			Winner:    r.Winner.String(),
			Reason:    r.Reason,
			Pot:       r.Pot,
			PlayerWon: r.Won[human],
			BotWon:    r.Won[bot],
		}
		if len(r.Hands) == 2 {
			sv.PlayerHandDescription = r.Hands[human].String()
			sv.BotHandDescription = r.Hands[bot].String()
		}
		v.Result = sv
	}
	return v
}

func seatView(s *game.Seat, showHole bool) SeatView {
	v := SeatView{
		Name:      s.Name,
		Chips:     s.Chips,
		Bet:       s.Bet,
		Committed: s.Committed,
		AllIn:     s.AllIn(),
	}
	if showHole && len(s.Hole) > 0 {
		v.Hole = deck.Codes(s.Hole)
	}
	return v
}

func eventViews(events []game.Event) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		v := EventView{Type: e.Type.String(), Message: e.Message}
		if e.Type == game.EventTypePlayerAction {
			v.Actor = e.Role.String()
			v.Action = e.Action.String()
			v.Amount = e.Amount
		}
		if len(e.Cards) > 0 {
			v.Cards = deck.Codes(e.Cards)
		}
		views = append(views, v)
	}
	return views
}

func summarize(events []EventView) string {
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = e.Message
	}
	return strings.Join(parts, ". ")
}
