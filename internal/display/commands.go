package display

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/pokerbot/internal/game"
)

// ErrUnknownCommand is returned for input the prompt does not understand
var ErrUnknownCommand = errors.New("unknown command")

// CommandKind identifies what a prompt line asks for
type CommandKind int

const (
	// CmdContinue is an empty line: deal when no hand is running
	CmdContinue CommandKind = iota
	CmdAction
	CmdDeal
	CmdDifficulty
	CmdStatus
	CmdHelp
	CmdQuit
)

// Command is a parsed prompt line
type Command struct {
	Kind       CommandKind
	Action     game.Action
	Amount     int // raise size; 0 uses the table minimum
	AllIn      bool
	Difficulty game.Difficulty
}

// ParseCommand parses one line typed at the prompt
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{Kind: CmdContinue}, nil
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "quit", "q", "exit":
		return Command{Kind: CmdQuit}, nil
	case "help", "?":
		return Command{Kind: CmdHelp}, nil
	case "status", "s", "table":
		return Command{Kind: CmdStatus}, nil
	case "deal", "d", "next", "n":
		return Command{Kind: CmdDeal}, nil
	case "fold", "f":
		return Command{Kind: CmdAction, Action: game.Fold}, nil
	case "call", "c", "check", "ch", "k":
		return Command{Kind: CmdAction, Action: game.Call}, nil
	case "allin", "all", "a":
		return Command{Kind: CmdAction, Action: game.Raise, AllIn: true}, nil
	case "raise", "r", "bet", "b":
		cmd := Command{Kind: CmdAction, Action: game.Raise}
		if len(args) > 0 {
			amount, err := strconv.Atoi(args[0])
			if err != nil || amount <= 0 {
				return Command{}, fmt.Errorf("invalid raise amount %q", args[0])
			}
			cmd.Amount = amount
		}
		return cmd, nil
	case "difficulty", "diff":
		if len(args) == 0 {
			return Command{}, fmt.Errorf("usage: difficulty easy|medium|hard")
		}
		d, err := game.ParseDifficulty(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdDifficulty, Difficulty: d}, nil
	}
	return Command{}, fmt.Errorf("%w: %s. Type 'help' for available commands", ErrUnknownCommand, name)
}

// HelpText lists the prompt commands
func HelpText() string {
	lines := []string{
		"Commands:",
		"  call, check (c, k)     match the current bet, or check when nothing is owed",
		"  raise [n] (r)          raise by n chips, the table minimum when n is omitted",
		"  allin (a)              push the whole stack",
		"  fold (f)               give up the hand",
		"  deal (d) or Enter      deal the next hand once this one is over",
		"  difficulty <level>     switch the bot to easy, medium or hard",
		"  status (s)             show the table",
		"  quit (q)               leave the table",
	}
	return strings.Join(lines, "\n")
}
