package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerbot/internal/game"
	"github.com/lox/pokerbot/internal/gameid"
	"github.com/lox/pokerbot/internal/store"
)

// ActionRequest is the {table_id, actor, action, raise_amount} command
type ActionRequest struct {
	Actor       string `json:"actor,omitempty"`
	Action      string `json:"action"`
	RaiseAmount int    `json:"raise_amount,omitempty"`
}

// CreateRequest optionally overrides table defaults on creation
type CreateRequest struct {
	PlayerName string `json:"player_name,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// SettingsRequest changes a table's settings
type SettingsRequest struct {
	Difficulty string `json:"difficulty"`
}

// GameService runs commands against stored tables. Every command holds the
// table's lock from load to save, so commands on one table never interleave.
type GameService struct {
	store    store.Store
	policy   game.Policy
	defaults TableSettings
	clock    quartz.Clock
	logger   *log.Logger
	ids      *gameid.Generator

	rngMu sync.Mutex
	rng   *rand.Rand

	activityMu sync.Mutex
	activity   map[string]time.Time

	hub *hub
}

// ServiceOption configures a GameService
type ServiceOption func(*GameService)

// WithClock replaces the real clock, typically with quartz.NewMock in tests
func WithClock(clock quartz.Clock) ServiceOption {
	return func(s *GameService) { s.clock = clock }
}

// WithLogger sets the service logger
func WithLogger(logger *log.Logger) ServiceOption {
	return func(s *GameService) { s.logger = logger }
}

// WithIDGenerator sets the table id generator
func WithIDGenerator(g *gameid.Generator) ServiceOption {
	return func(s *GameService) { s.ids = g }
}

// NewGameService creates a service. rng shuffles every deck dealt by the
// service and policy answers for the bot seat.
func NewGameService(st store.Store, policy game.Policy, defaults TableSettings, rng *rand.Rand, opts ...ServiceOption) *GameService {
	s := &GameService{
		store:    st,
		policy:   policy,
		defaults: defaults,
		rng:      rng,
		clock:    quartz.NewReal(),
		logger:   log.New(io.Discard),
		ids:      gameid.NewGenerator(nil),
		activity: make(map[string]time.Time),
		hub:      newHub(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithPrefix("game")
	return s
}

// CreateTable creates a table with the configured defaults
func (s *GameService) CreateTable(ctx context.Context, req CreateRequest) (*TableView, error) {
	opts, err := s.defaults.TableOptions()
	if err != nil {
		return nil, err
	}
	if req.Difficulty != "" {
		d, err := game.ParseDifficulty(req.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		opts = append(opts, game.WithDifficulty(d))
	}
	if req.PlayerName != "" {
		opts = append(opts, game.WithNames(req.PlayerName, "Bot"))
	}

	id, err := s.ids.Generate()
	if err != nil {
		return nil, err
	}
	t, err := game.NewTable(id, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}
	s.touch(id)

	s.logger.Info("Table created", "table", id, "difficulty", t.Difficulty, "blinds", fmt.Sprintf("%d/%d", t.SmallBlind, t.BigBlind))
	return NewTableView(t, s.clock.Now()), nil
}

// View returns the current view of a table
func (s *GameService) View(ctx context.Context, id string) (*TableView, error) {
	t, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewTableView(t, s.clock.Now()), nil
}

// Act applies the human's action followed by the bot's response
func (s *GameService) Act(ctx context.Context, id string, req ActionRequest) (*CommandResult, error) {
	action, err := game.ParseAction(req.Action)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "action", func(t *game.Table) ([]game.Event, error) {
		seat, err := seatForActor(t, req.Actor)
		if err != nil {
			return nil, err
		}
		return t.ApplyAction(seat, action, req.RaiseAmount)
	})
}

// Deal starts a new hand
func (s *GameService) Deal(ctx context.Context, id string) (*CommandResult, error) {
	return s.mutate(ctx, id, "deal", s.startHand)
}

// Advance moves the running hand to the next street
func (s *GameService) Advance(ctx context.Context, id string) (*CommandResult, error) {
	return s.mutate(ctx, id, "advance", func(t *game.Table) ([]game.Event, error) {
		return t.AdvanceStreet()
	})
}

// Step deals a new hand when none is running and otherwise advances the street
func (s *GameService) Step(ctx context.Context, id string) (*CommandResult, error) {
	return s.mutate(ctx, id, "step", func(t *game.Table) ([]game.Event, error) {
		if t.HandRunning() {
			return t.AdvanceStreet()
		}
		return s.startHand(t)
	})
}

// UpdateSettings changes the bot difficulty of a table
func (s *GameService) UpdateSettings(ctx context.Context, id string, req SettingsRequest) (*TableView, error) {
	d, err := game.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	res, err := s.mutate(ctx, id, "settings", func(t *game.Table) ([]game.Event, error) {
		return nil, t.SetDifficulty(d)
	})
	if err != nil {
		return nil, err
	}
	return res.Table, nil
}

// DeleteTable removes a table
func (s *GameService) DeleteTable(ctx context.Context, id string) error {
	unlock := s.store.Lock(id)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.forget(id)
	s.hub.close(id)
	s.logger.Info("Table deleted", "table", id)
	return nil
}

// Subscribe registers for views of a table published after each command
func (s *GameService) Subscribe(id string) (<-chan *CommandResult, func()) {
	return s.hub.subscribe(id)
}

func (s *GameService) startHand(t *game.Table) ([]game.Event, error) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return t.StartHand(s.rng)
}

// mutate runs op against a freshly loaded table under the table lock and
// saves the result. Nothing is saved when op fails.
func (s *GameService) mutate(ctx context.Context, id, command string, op func(*game.Table) ([]game.Event, error)) (*CommandResult, error) {
	unlock := s.store.Lock(id)
	defer unlock()

	t, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	t.SetPolicy(s.policy)

	events, err := op(t)
	if err != nil {
		s.logger.Debug("Command rejected", "table", id, "command", command, "error", err)
		return nil, err
	}
	if err := s.store.Save(ctx, t); err != nil {
		return nil, err
	}
	s.touch(id)

	views := eventViews(events)
	res := &CommandResult{
		Table:   NewTableView(t, s.clock.Now()),
		Events:  views,
		Message: summarize(views),
	}
	for _, e := range events {
		s.logger.Info(e.Message, "table", id, "hand", t.HandNumber, "event", e.Type)
	}
	s.hub.publish(id, res)
	return res, nil
}

func seatForActor(t *game.Table, actor string) (int, error) {
	switch actor {
	case "", "player", "human":
		return t.HumanSeat(), nil
	case "bot":
		return t.BotSeat(), nil
	}
	return 0, fmt.Errorf("%w: unknown actor %q", game.ErrInvalidAction, actor)
}

// ErrBadRequest marks malformed command input
var ErrBadRequest = errors.New("bad request")

func (s *GameService) touch(id string) {
	s.activityMu.Lock()
	s.activity[id] = s.clock.Now()
	s.activityMu.Unlock()
}

func (s *GameService) forget(id string) {
	s.activityMu.Lock()
	delete(s.activity, id)
	s.activityMu.Unlock()
}

// ExpireIdle starts a background sweep that deletes tables untouched for
// longer than maxIdle. It checks every interval until ctx is done.
func (s *GameService) ExpireIdle(ctx context.Context, interval, maxIdle time.Duration) quartz.Waiter {
	return s.clock.TickerFunc(ctx, interval, func() error {
		s.sweep(ctx, maxIdle)
		return nil
	}, "janitor")
}

func (s *GameService) sweep(ctx context.Context, maxIdle time.Duration) {
	ids, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to list tables", "error", err)
		return
	}

	now := s.clock.Now()
	for _, id := range ids {
		s.activityMu.Lock()
		last, ok := s.activity[id]
		if !ok {
			// Tables restored from disk start their idle clock now
			s.activity[id] = now
		}
		s.activityMu.Unlock()

		if !ok || now.Sub(last) < maxIdle {
			continue
		}
		if err := s.DeleteTable(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("Failed to expire table", "table", id, "error", err)
			continue
		}
		s.logger.Info("Expired idle table", "table", id, "idle", now.Sub(last))
	}
}
