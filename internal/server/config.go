package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/pokerbot/internal/game"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Table  TableSettings  `hcl:"table,block"`
	Store  StoreSettings  `hcl:"store,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	// IdleTimeout is how long an untouched table lives, e.g. "30m". Empty disables expiry.
	IdleTimeout string `hcl:"idle_timeout,optional"`
}

// TableSettings are the defaults for newly created tables
type TableSettings struct {
	SmallBlind     int    `hcl:"small_blind,optional"`
	BigBlind       int    `hcl:"big_blind,optional"`
	StartingChips  int    `hcl:"starting_chips,optional"`
	MinRaise       int    `hcl:"min_raise,optional"`
	Difficulty     string `hcl:"difficulty,optional"`
	SmallBlindSeat string `hcl:"small_blind_seat,optional"`
}

// StoreSettings selects where tables are kept
type StoreSettings struct {
	Driver string `hcl:"driver,optional"`
	Path   string `hcl:"path,optional"`
}

// fileConfig mirrors Config with optional blocks for decoding
type fileConfig struct {
	Server *ServerSettings `hcl:"server,block"`
	Table  *TableSettings  `hcl:"table,block"`
	Store  *StoreSettings  `hcl:"store,block"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Table: TableSettings{
			SmallBlind:     5,
			BigBlind:       10,
			StartingChips:  1000,
			Difficulty:     "medium",
			SmallBlindSeat: "player",
		},
		Store: StoreSettings{
			Driver: "memory",
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()
	if filename == "" {
		return config, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return config, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.merge(&raw)
	return config, nil
}

// merge overlays the values set in a decoded file onto c
func (c *Config) merge(raw *fileConfig) {
	if s := raw.Server; s != nil {
		setString(&c.Server.Address, s.Address)
		setInt(&c.Server.Port, s.Port)
		setString(&c.Server.LogLevel, s.LogLevel)
		setString(&c.Server.IdleTimeout, s.IdleTimeout)
	}
	if t := raw.Table; t != nil {
		setInt(&c.Table.SmallBlind, t.SmallBlind)
		setInt(&c.Table.BigBlind, t.BigBlind)
		setInt(&c.Table.StartingChips, t.StartingChips)
		setInt(&c.Table.MinRaise, t.MinRaise)
		setString(&c.Table.Difficulty, t.Difficulty)
		setString(&c.Table.SmallBlindSeat, t.SmallBlindSeat)
	}
	if s := raw.Store; s != nil {
		setString(&c.Store.Driver, s.Driver)
		setString(&c.Store.Path, s.Path)
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := c.IdleTimeout(); err != nil {
		return err
	}

	t := c.Table
	if t.SmallBlind <= 0 {
		return fmt.Errorf("table: small blind must be positive")
	}
	if t.BigBlind < t.SmallBlind {
		return fmt.Errorf("table: big blind must not be less than small blind")
	}
	if t.StartingChips <= 0 {
		return fmt.Errorf("table: starting chips must be positive")
	}
	if t.MinRaise < 0 {
		return fmt.Errorf("table: min raise must not be negative")
	}
	if _, err := game.ParseDifficulty(t.Difficulty); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if _, err := parseSeat(t.SmallBlindSeat); err != nil {
		return fmt.Errorf("table: %w", err)
	}

	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store: sqlite driver needs a path")
		}
	default:
		return fmt.Errorf("store: unknown driver %q", c.Store.Driver)
	}

	return nil
}

// Addr returns the full server address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IdleTimeout parses the idle_timeout setting. Zero means tables never expire.
func (c *Config) IdleTimeout() (time.Duration, error) {
	if c.Server.IdleTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Server.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid idle_timeout %q: %w", c.Server.IdleTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("idle_timeout must not be negative")
	}
	return d, nil
}

// TableOptions converts the table defaults into engine options
func (t TableSettings) TableOptions() ([]game.TableOption, error) {
	difficulty, err := game.ParseDifficulty(t.Difficulty)
	if err != nil {
		return nil, err
	}
	seat, err := parseSeat(t.SmallBlindSeat)
	if err != nil {
		return nil, err
	}
	return []game.TableOption{
		game.WithBlinds(t.SmallBlind, t.BigBlind),
		game.WithStartingChips(t.StartingChips),
		game.WithMinRaise(t.MinRaise),
		game.WithDifficulty(difficulty),
		game.WithSmallBlindSeat(seat),
	}, nil
}

func parseSeat(s string) (int, error) {
	switch s {
	case "", "player", "human":
		return game.HumanSeat, nil
	case "bot":
		return game.BotSeat, nil
	}
	return 0, fmt.Errorf("small_blind_seat must be \"player\" or \"bot\", got %q", s)
}
