package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/pokerbot/internal/game"
	"github.com/lox/pokerbot/internal/simulator"
)

// SimulateCmd plays the bot against a scripted opponent and reports its win rate
type SimulateCmd struct {
	Hands      int    `default:"10000" help:"Number of deals to simulate (each is played from both blinds)"`
	Opponent   string `default:"call" help:"Opponent: call, fold, maniac, random, easy, medium, hard or mixed"`
	Difficulty string `default:"medium" enum:"easy,medium,hard" help:"Bot difficulty (easy, medium, hard)"`
	Seed       int64  `default:"0" help:"RNG seed (0 for time-based)"`
	Workers    int    `default:"0" help:"Parallel workers (0 for GOMAXPROCS)"`
	Report     string `type:"path" help:"Write a JSON summary to this file"`
	Verbose    bool   `help:"Verbose logging"`
}

func (c *SimulateCmd) Run() error {
	level := "warn"
	if c.Verbose {
		level = "debug"
	}
	logger, err := setupLogger(os.Stderr, level)
	if err != nil {
		return err
	}

	var seed *int64
	if c.Seed != 0 {
		seed = &c.Seed
	}
	_, s := seededRand(seed)
	return c.run(setupSignalHandler(logger), s, logger, os.Stdout)
}

func (c *SimulateCmd) run(ctx context.Context, seed int64, logger *log.Logger, out io.Writer) error {
	difficulty, err := game.ParseDifficulty(c.Difficulty)
	if err != nil {
		return err
	}

	sim, err := simulator.New(simulator.Config{
		Hands:      c.Hands,
		Opponent:   c.Opponent,
		Difficulty: difficulty,
		Seed:       seed,
		Workers:    c.Workers,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Simulating %d deals vs %s (difficulty %s, seed %d)\n", c.Hands, sim.OpponentInfo(), difficulty, seed)

	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	simulator.PrintSummary(out, stats, sim.OpponentInfo())

	if c.Report != "" {
		if err := simulator.WriteReport(c.Report, stats.Summarize(sim.OpponentInfo(), difficulty.String())); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", "path", c.Report)
	}
	return nil
}
