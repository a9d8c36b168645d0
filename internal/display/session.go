package display

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerbot/internal/game"
	"github.com/lox/pokerbot/internal/phh"
)

// Session plays hands between a terminal user and the table's bot policy
type Session struct {
	table  *game.Table
	rng    *rand.Rand
	in     *bufio.Scanner
	out    io.Writer
	logger *log.Logger
	clock  quartz.Clock

	history  io.Writer
	recorder *phh.Recorder
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithHistory appends every finished hand to w as a PHH section
func WithHistory(w io.Writer) SessionOption {
	return func(s *Session) { s.history = w }
}

// WithClock sets the clock used to timestamp hand histories
func WithClock(clock quartz.Clock) SessionOption {
	return func(s *Session) { s.clock = clock }
}

// NewSession creates a session reading commands from in and writing the
// table to out. The table must already carry its bot policy.
func NewSession(table *game.Table, rng *rand.Rand, in io.Reader, out io.Writer, logger *log.Logger, opts ...SessionOption) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		table:  table,
		rng:    rng,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.WithPrefix("play"),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Table returns the table being played
func (s *Session) Table() *game.Table {
	return s.table
}

// Run deals the first hand and reads commands until the user quits, the
// input ends, a stack is bust or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.println(HeaderStyle.Render("♠ ♥ Heads-up Hold'em ♦ ♣"))
	s.println(InfoStyle.Render("Type 'help' for commands"))

	if err := s.deal(); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(s.out, ActionsStyle.Render("> "))
		if !s.in.Scan() {
			s.println("")
			return s.in.Err()
		}

		cmd, err := ParseCommand(s.in.Text())
		if err != nil {
			s.println(ErrorStyle.Render(err.Error()))
			continue
		}

		quit, err := s.execute(cmd)
		if err != nil {
			if errors.Is(err, game.ErrInvalidState) || errors.Is(err, game.ErrInvalidAction) {
				s.println(ErrorStyle.Render(err.Error()))
				continue
			}
			return err
		}
		if quit {
			s.printStandings()
			return nil
		}
	}
}

func (s *Session) execute(cmd Command) (bool, error) {
	switch cmd.Kind {
	case CmdQuit:
		return true, nil
	case CmdHelp:
		s.println(HelpText())
	case CmdStatus:
		s.println(RenderTable(s.table))
	case CmdDifficulty:
		if err := s.table.SetDifficulty(cmd.Difficulty); err != nil {
			return false, err
		}
		s.println(SuccessStyle.Render(fmt.Sprintf("Bot difficulty set to %s", cmd.Difficulty)))
	case CmdContinue, CmdDeal:
		if s.table.HandRunning() {
			if cmd.Kind == CmdDeal {
				return false, fmt.Errorf("%w: finish hand %d first", game.ErrInvalidState, s.table.HandNumber)
			}
			s.println(RenderTable(s.table))
			return false, nil
		}
		if s.busted() {
			return true, nil
		}
		return false, s.deal()
	case CmdAction:
		return s.act(cmd)
	}
	return false, nil
}

func (s *Session) deal() error {
	events, err := s.table.StartHand(s.rng)
	if err != nil {
		return err
	}
	s.logger.Debug("hand dealt", "hand", s.table.HandNumber)
	if s.history != nil {
		s.recorder = phh.NewRecorder(s.table, s.clock.Now())
	}
	s.handle(events)
	s.println(RenderTable(s.table))
	return nil
}

func (s *Session) act(cmd Command) (bool, error) {
	amount := cmd.Amount
	if cmd.AllIn {
		amount = s.table.Seats[game.HumanSeat].Chips
		if amount == 0 {
			return false, fmt.Errorf("%w: no chips left to push", game.ErrInvalidAction)
		}
	}

	events, err := s.table.ApplyAction(game.HumanSeat, cmd.Action, amount)
	if err != nil {
		return false, err
	}
	s.logger.Debug("action applied", "action", cmd.Action, "amount", amount)
	s.handle(events)

	// Deal out the next streets while nobody owes anything. With a stack
	// all-in there is no more betting, so run the board out.
	for s.table.HandRunning() && s.bettingClosed() {
		events, err := s.table.AdvanceStreet()
		if err != nil {
			return false, err
		}
		s.handle(events)
		if !s.allIn() {
			break
		}
	}

	if !s.table.HandRunning() {
		s.writeHistory()
		if sd := RenderShowdown(s.table); sd != "" {
			s.println(sd)
		}
		s.println(RenderTable(s.table))
		if s.busted() {
			return true, nil
		}
		s.println(InfoStyle.Render("Press Enter to deal the next hand"))
		return false, nil
	}

	s.println(RenderTable(s.table))
	return false, nil
}

// bettingClosed reports whether no seat with chips behind still owes a bet
func (s *Session) bettingClosed() bool {
	for i := range s.table.Seats {
		seat := &s.table.Seats[i]
		if seat.Bet < s.table.CurrentBet && seat.Chips > 0 {
			return false
		}
	}
	return true
}

func (s *Session) allIn() bool {
	return s.table.Seats[0].Chips == 0 || s.table.Seats[1].Chips == 0
}

func (s *Session) busted() bool {
	for i := range s.table.Seats {
		if s.table.Seats[i].Chips == 0 {
			return true
		}
	}
	return false
}

// handle prints events and feeds them to the hand history
func (s *Session) handle(events []game.Event) {
	for _, e := range events {
		s.println(RenderEvent(e))
	}
	if s.recorder != nil {
		s.recorder.Record(events)
	}
}

func (s *Session) writeHistory() {
	if s.recorder == nil {
		return
	}
	hand, err := s.recorder.Finish(s.table)
	s.recorder = nil
	if err == nil {
		err = phh.EncodeSection(s.history, s.table.HandNumber, hand)
	}
	if err != nil {
		s.logger.Warn("Failed to write hand history", "hand", s.table.HandNumber, "error", err)
	}
}

func (s *Session) printStandings() {
	human := &s.table.Seats[game.HumanSeat]
	bot := &s.table.Seats[game.BotSeat]
	switch {
	case bot.Chips == 0 && !s.table.HandRunning():
		s.println(SuccessStyle.Render(fmt.Sprintf("%s busted the bot after %d hands", human.Name, s.table.HandNumber)))
	case human.Chips == 0 && !s.table.HandRunning():
		s.println(ErrorStyle.Render(fmt.Sprintf("%s is out of chips after %d hands", human.Name, s.table.HandNumber)))
	default:
		s.println(fmt.Sprintf("Leaving after %d hands: %s %d, %s %d",
			s.table.HandNumber, human.Name, human.Chips, bot.Name, bot.Chips))
	}
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}
