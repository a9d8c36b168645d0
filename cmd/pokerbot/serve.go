package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lox/pokerbot/internal/bot"
	"github.com/lox/pokerbot/internal/randutil"
	"github.com/lox/pokerbot/internal/server"
	"github.com/lox/pokerbot/internal/store"
)

// ServeCmd runs the game server. Flags override the config file.
type ServeCmd struct {
	Config      string `short:"c" type:"path" default:"pokerbot.hcl" help:"Path to HCL config file (missing file uses defaults)"`
	Address     string `help:"Listen address"`
	Port        int    `short:"p" help:"Listen port"`
	LogLevel    string `help:"Log level (debug, info, warn, error)"`
	Debug       bool   `help:"Enable debug logging"`
	Store       string `help:"Table store driver (memory, sqlite)"`
	StorePath   string `help:"Database path for the sqlite store"`
	IdleTimeout string `help:"Delete tables untouched for this long, e.g. 30m"`
	Seed        *int64 `help:"Deterministic RNG seed (optional)"`
}

func (c *ServeCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger, err := setupLogger(os.Stderr, cfg.Server.LogLevel)
	if err != nil {
		return err
	}

	rng, seed := seededRand(c.Seed)
	logger.Info("Using seed", "seed", seed)

	ctx := setupSignalHandler(logger)

	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	games := server.NewGameService(st, bot.NewPolicy(randutil.New(seed+1), logger), cfg.Table, rng,
		server.WithLogger(logger))

	idle, _ := cfg.IdleTimeout()
	if idle > 0 {
		games.ExpireIdle(ctx, sweepInterval(idle), idle)
	}

	s := server.NewServer(cfg.Addr(), games, logger)

	logger.Info("Starting pokerbot server",
		"address", cfg.Addr(),
		"store", cfg.Store.Driver,
		"small_blind", cfg.Table.SmallBlind,
		"big_blind", cfg.Table.BigBlind,
		"starting_chips", cfg.Table.StartingChips,
		"difficulty", cfg.Table.Difficulty,
		"idle_timeout", idle)

	serverErr := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

// loadConfig reads the config file and applies flag overrides
func (c *ServeCmd) loadConfig() (*server.Config, error) {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return nil, err
	}

	if c.Address != "" {
		cfg.Server.Address = c.Address
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	if c.Debug {
		cfg.Server.LogLevel = "debug"
	}
	if c.Store != "" {
		cfg.Store.Driver = c.Store
	}
	if c.StorePath != "" {
		cfg.Store.Path = c.StorePath
	}
	if c.IdleTimeout != "" {
		cfg.Server.IdleTimeout = c.IdleTimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// sweepInterval checks a few times per idle period, at most once a minute
func sweepInterval(idle time.Duration) time.Duration {
	return max(min(idle/4, time.Minute), time.Second)
}
