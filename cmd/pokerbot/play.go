package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/pokerbot/internal/bot"
	"github.com/lox/pokerbot/internal/display"
	"github.com/lox/pokerbot/internal/game"
	"github.com/lox/pokerbot/internal/randutil"
	"github.com/muesli/termenv"
)

// PlayCmd plays against the bot on stdin and stdout
type PlayCmd struct {
	Name       string `default:"Player" help:"Your name at the table"`
	Difficulty string `short:"d" default:"medium" enum:"easy,medium,hard" help:"Bot difficulty (easy, medium, hard)"`
	SmallBlind int    `default:"5" help:"Small blind amount"`
	BigBlind   int    `default:"10" help:"Big blind amount"`
	StartChips int    `default:"1000" help:"Starting chip count for both seats"`
	BotFirst   bool   `help:"Put the bot in the small blind"`
	Seed       *int64 `help:"Deterministic RNG seed (optional)"`
	History    string `type:"path" help:"Append finished hands to this PHH file"`
	LogFile    string `type:"path" help:"Write debug logs to this file"`
	NoColor    bool   `help:"Disable colour output"`
}

func (c *PlayCmd) Run() error {
	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
	if c.NoColor {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)

	logger := log.New(io.Discard)
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create debug log: %w", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          "MAIN",
		})
	}

	rng, seed := seededRand(c.Seed)
	logger.Info("Starting interactive game", "seed", seed, "difficulty", c.Difficulty)

	table, err := c.newTable(bot.NewPolicy(randutil.New(seed+1), logger))
	if err != nil {
		return err
	}

	var opts []display.SessionOption
	if c.History != "" {
		f, err := os.OpenFile(c.History, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open hand history: %w", err)
		}
		defer f.Close()
		opts = append(opts, display.WithHistory(f))
	}

	ctx := setupSignalHandler(logger)
	return display.NewSession(table, rng, os.Stdin, os.Stdout, logger, opts...).Run(ctx)
}

func (c *PlayCmd) newTable(policy game.Policy) (*game.Table, error) {
	difficulty, err := game.ParseDifficulty(c.Difficulty)
	if err != nil {
		return nil, err
	}
	sbSeat := game.HumanSeat
	if c.BotFirst {
		sbSeat = game.BotSeat
	}
	return game.NewTable("local",
		game.WithNames(c.Name, "Bot"),
		game.WithBlinds(c.SmallBlind, c.BigBlind),
		game.WithStartingChips(c.StartChips),
		game.WithDifficulty(difficulty),
		game.WithSmallBlindSeat(sbSeat),
		game.WithPolicy(policy),
	)
}
