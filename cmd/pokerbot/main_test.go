package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/pokerbot/internal/bot"
	"github.com/lox/pokerbot/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("pokerbot"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestCLIParse(t *testing.T) {
	cli, ctx := parse(t)
	assert.Equal(t, "play", ctx.Command(), "play is the default command")
	assert.Equal(t, "medium", cli.Play.Difficulty)
	assert.Equal(t, 1000, cli.Play.StartChips)

	cli, ctx = parse(t, "simulate", "--hands", "25", "--opponent", "mixed", "--seed", "9")
	assert.Equal(t, "simulate", ctx.Command())
	assert.Equal(t, 25, cli.Simulate.Hands)
	assert.Equal(t, "mixed", cli.Simulate.Opponent)
	assert.Equal(t, int64(9), cli.Simulate.Seed)

	cli, ctx = parse(t, "serve", "--port", "9001", "--seed", "3")
	assert.Equal(t, "serve", ctx.Command())
	assert.Equal(t, 9001, cli.Serve.Port)
	require.NotNil(t, cli.Serve.Seed)
	assert.Equal(t, int64(3), *cli.Serve.Seed)
}

func TestCLIRejectsUnknownDifficulty(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse([]string{"play", "--difficulty", "insane"})
	assert.Error(t, err)
}

func TestServeLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokerbot.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
server {
  port      = 9090
  log_level = "warn"
}

table {
  difficulty = "hard"
}
`), 0o644))

	c := ServeCmd{Config: path, Address: "0.0.0.0", Debug: true, Store: "sqlite", StorePath: "tables.db"}
	cfg, err := c.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "hard", cfg.Table.Difficulty)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "tables.db", cfg.Store.Path)

	c = ServeCmd{Config: path, Store: "redis"}
	_, err = c.loadConfig()
	assert.ErrorContains(t, err, "invalid configuration")

	c = ServeCmd{Config: filepath.Join(t.TempDir(), "missing.hcl")}
	cfg, err = c.loadConfig()
	require.NoError(t, err, "a missing file uses the defaults")
	assert.Equal(t, "localhost:8080", cfg.Addr())
}

func TestSweepInterval(t *testing.T) {
	assert.Equal(t, time.Minute, sweepInterval(time.Hour))
	assert.Equal(t, 30*time.Second, sweepInterval(2*time.Minute))
	assert.Equal(t, time.Second, sweepInterval(time.Second))
}

func TestPlayNewTable(t *testing.T) {
	c := PlayCmd{Name: "Ann", Difficulty: "hard", SmallBlind: 1, BigBlind: 2, StartChips: 100, BotFirst: true}
	table, err := c.newTable(bot.NewCallBot())
	require.NoError(t, err)

	assert.Equal(t, "Ann", table.Seats[game.HumanSeat].Name)
	assert.Equal(t, game.Hard, table.Difficulty)
	assert.Equal(t, game.BotSeat, table.SmallBlindSeat)
	assert.Equal(t, 200, table.TotalChips())

	c.BigBlind = 0
	_, err = c.newTable(bot.NewCallBot())
	assert.ErrorContains(t, err, "invalid blinds")
}

func TestSimulateRun(t *testing.T) {
	report := filepath.Join(t.TempDir(), "out", "fold.json")
	c := SimulateCmd{Hands: 5, Opponent: "fold", Difficulty: "easy", Workers: 2, Report: report}

	var out bytes.Buffer
	require.NoError(t, c.run(context.Background(), 42, log.New(io.Discard), &out))

	assert.Contains(t, out.String(), "Simulating 5 deals vs fold (difficulty easy, seed 42)")
	assert.Contains(t, out.String(), "=== FINAL RESULTS vs fold ===")
	assert.FileExists(t, report)

	c.Opponent = "shark"
	assert.ErrorContains(t, c.run(context.Background(), 1, log.New(io.Discard), &out), "unknown opponent")
}

func TestSetupLogger(t *testing.T) {
	logger, err := setupLogger(io.Discard, "warn")
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	_, err = setupLogger(io.Discard, "loud")
	assert.ErrorContains(t, err, "invalid log level")
}
