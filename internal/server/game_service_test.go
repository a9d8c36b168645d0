package server

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerbot/internal/bot"
	"github.com/lox/pokerbot/internal/game"
	"github.com/lox/pokerbot/internal/gameid"
	"github.com/lox/pokerbot/internal/randutil"
	"github.com/lox/pokerbot/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, policy game.Policy, opts ...ServiceOption) (*GameService, store.Store) {
	t.Helper()
	st := store.NewMemory()
	t.Cleanup(func() { _ = st.Close() })

	opts = append([]ServiceOption{WithLogger(log.New(io.Discard))}, opts...)
	return NewGameService(st, policy, DefaultConfig().Table, randutil.New(42), opts...), st
}

func TestGameServiceCreateTable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, st := newTestService(t, bot.NewCallBot())

	view, err := svc.CreateTable(ctx, CreateRequest{PlayerName: "Alice", Difficulty: "hard"})
	require.NoError(t, err)
	require.NoError(t, gameid.Validate(view.ID))

	assert.Equal(t, "hard", view.Difficulty)
	assert.Equal(t, "Alice", view.Player.Name)
	assert.Equal(t, 1000, view.Player.Chips)
	assert.Equal(t, 1000, view.Bot.Chips)
	assert.False(t, view.HandRunning)
	assert.Zero(t, view.HandNumber)

	ids, err := st.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{view.ID}, ids)

	_, err = svc.CreateTable(ctx, CreateRequest{Difficulty: "impossible"})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestGameServicePlaysAHand(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, bot.NewCallBot())

	view, err := svc.CreateTable(ctx, CreateRequest{})
	require.NoError(t, err)
	id := view.ID

	_, err = svc.Act(ctx, id, ActionRequest{Action: "call"})
	require.ErrorIs(t, err, game.ErrInvalidState, "no hand dealt yet")

	res, err := svc.Deal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Table.HandNumber)
	assert.Equal(t, 15, res.Table.Pot)
	assert.Equal(t, 5, res.Table.ToCall)
	assert.Len(t, res.Table.Player.Hole, 2)
	assert.Empty(t, res.Table.Bot.Hole, "bot cards stay hidden during the hand")
	assert.Empty(t, res.Table.Community)
	require.NotEmpty(t, res.Events)
	assert.Equal(t, "hand_start", res.Events[0].Type)

	_, err = svc.Deal(ctx, id)
	require.ErrorIs(t, err, game.ErrInvalidState, "hand already running")

	res, err = svc.Act(ctx, id, ActionRequest{Action: "call"})
	require.NoError(t, err)
	assert.Equal(t, 20, res.Table.Pot)
	require.Len(t, res.Events, 2, "human action and one bot response")
	assert.Equal(t, "player", res.Events[0].Actor)
	assert.Equal(t, "bot", res.Events[1].Actor)
	assert.Contains(t, res.Message, "Player calls 5")

	for _, visible := range []int{3, 4, 5} {
		res, err = svc.Step(ctx, id)
		require.NoError(t, err)
		assert.Len(t, res.Table.Community, visible)
	}

	res, err = svc.Step(ctx, id)
	require.NoError(t, err)
	assert.False(t, res.Table.HandRunning)
	require.NotNil(t, res.Table.Result)
	assert.Equal(t, "showdown", res.Table.Result.Reason)
	assert.Len(t, res.Table.Bot.Hole, 2, "bot cards are revealed at showdown")
	assert.NotEmpty(t, res.Table.Result.PlayerHandDescription)
	assert.Equal(t, 2000, res.Table.Player.Chips+res.Table.Bot.Chips)

	res, err = svc.Step(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Table.HandNumber)
	assert.Nil(t, res.Table.Result)
	assert.Empty(t, res.Table.Bot.Hole)
}

func TestGameServiceRejectsBadCommands(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, st := newTestService(t, bot.NewCallBot())

	view, err := svc.CreateTable(ctx, CreateRequest{})
	require.NoError(t, err)
	_, err = svc.Deal(ctx, view.ID)
	require.NoError(t, err)
	before, err := st.Load(ctx, view.ID)
	require.NoError(t, err)

	_, err = svc.Act(ctx, view.ID, ActionRequest{Action: "shove"})
	assert.ErrorIs(t, err, game.ErrInvalidAction)

	_, err = svc.Act(ctx, view.ID, ActionRequest{Actor: "bot", Action: "call"})
	assert.ErrorIs(t, err, game.ErrInvalidAction)

	_, err = svc.Act(ctx, view.ID, ActionRequest{Actor: "dealer", Action: "call"})
	assert.ErrorIs(t, err, game.ErrInvalidAction)

	_, err = svc.Act(ctx, "missing", ActionRequest{Action: "call"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	after, err := st.Load(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "rejected commands are not saved")
}

func TestGameServiceFoldEndsHand(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, bot.NewCallBot())

	view, err := svc.CreateTable(ctx, CreateRequest{})
	require.NoError(t, err)
	_, err = svc.Deal(ctx, view.ID)
	require.NoError(t, err)

	res, err := svc.Act(ctx, view.ID, ActionRequest{Action: "fold"})
	require.NoError(t, err)
	require.NotNil(t, res.Table.Result)
	assert.Equal(t, "bot", res.Table.Result.Winner)
	assert.Equal(t, "fold", res.Table.Result.Reason)
	assert.Equal(t, 995, res.Table.Player.Chips)
	assert.Equal(t, 1005, res.Table.Bot.Chips)
	assert.Empty(t, res.Table.Bot.Hole, "folded hands are not shown")

	_, err = svc.Advance(ctx, view.ID)
	assert.ErrorIs(t, err, game.ErrInvalidState)
}

func TestGameServiceUpdateSettings(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, bot.NewCallBot())

	view, err := svc.CreateTable(ctx, CreateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "medium", view.Difficulty)

	view, err = svc.UpdateSettings(ctx, view.ID, SettingsRequest{Difficulty: "easy"})
	require.NoError(t, err)
	assert.Equal(t, "easy", view.Difficulty)

	_, err = svc.UpdateSettings(ctx, view.ID, SettingsRequest{Difficulty: "brutal"})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestGameServicePublishesResults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t, bot.NewCallBot())

	view, err := svc.CreateTable(ctx, CreateRequest{})
	require.NoError(t, err)

	results, unsubscribe := svc.Subscribe(view.ID)
	defer unsubscribe()

	res, err := svc.Deal(ctx, view.ID)
	require.NoError(t, err)

	select {
	case got := <-results:
		assert.Same(t, res, got)
	case <-time.After(time.Second):
		t.Fatal("no result published")
	}

	require.NoError(t, svc.DeleteTable(ctx, view.ID))
	_, ok := <-results
	assert.False(t, ok, "deleting a table ends its subscriptions")
	assert.Zero(t, svc.hub.count(view.ID))
}

func TestGameServiceExpiresIdleTables(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mClock := quartz.NewMock(t)
	svc, st := newTestService(t, bot.NewCallBot(), WithClock(mClock))

	idle, err := svc.CreateTable(ctx, CreateRequest{})
	require.NoError(t, err)

	svc.ExpireIdle(ctx, time.Minute, 5*time.Minute)

	for i := 0; i < 3; i++ {
		mClock.Advance(time.Minute).MustWait(ctx)
	}

	busy, err := svc.CreateTable(ctx, CreateRequest{})
	require.NoError(t, err)

	mClock.Advance(time.Minute).MustWait(ctx)
	_, err = st.Load(ctx, idle.ID)
	assert.NoError(t, err, "idle for less than the limit is kept")

	mClock.Advance(time.Minute).MustWait(ctx)

	_, err = st.Load(ctx, idle.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Load(ctx, busy.ID)
	assert.NoError(t, err)
}
