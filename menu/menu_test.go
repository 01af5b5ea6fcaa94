package menu

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/Jaggernaut555/chaoticbot/logging"
	"github.com/Jaggernaut555/chaoticbot/menu/menutest"
	"github.com/Jaggernaut555/chaoticbot/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startMenu(t *testing.T, chat *menutest.Chat, registry *Registry, buttons ...Button) *Menu {
	t.Helper()
	m := New("test menu", "chan", "guild", "author", buttons...)
	m.BotID = "bot"
	require.NoError(t, m.Start(chat, registry, NewReporter(chat, "logs", "chaoticbot"), "hi", nil))
	return m
}

func TestMenuRouting(t *testing.T) {
	chat := menutest.NewChat()
	registry := NewRegistry()
	presses := 0
	m := startMenu(t, chat, registry, Button{Emoji: "➕", Action: func(context.Context, state.Reaction) error {
		presses++
		return nil
	}})
	m.Actor = func() string { return "p1" }

	assert.Equal(t, []string{"➕"}, chat.Reactions[m.MessageID()])
	assert.Equal(t, 1, registry.Len())

	ctx := context.Background()
	assert.False(t, registry.HandleReaction(ctx, state.Reaction{MessageID: "elsewhere", UserID: "p1", Emoji: "➕"}))
	assert.False(t, registry.HandleReaction(ctx, state.Reaction{MessageID: m.MessageID(), UserID: "p2", Emoji: "➕"}))
	assert.False(t, registry.HandleReaction(ctx, state.Reaction{MessageID: m.MessageID(), UserID: "p1", Emoji: "❌"}))
	assert.False(t, registry.HandleReaction(ctx, state.Reaction{MessageID: m.MessageID(), UserID: "bot", Emoji: "➕"}))
	assert.True(t, registry.HandleReaction(ctx, state.Reaction{MessageID: m.MessageID(), UserID: "p1", Emoji: "➕"}))
	assert.Equal(t, 1, presses)

	m.Stop()
	m.Stop()
	assert.False(t, m.Running())
	assert.Equal(t, 0, registry.Len())
	require.NoError(t, m.Wait(ctx))
	assert.False(t, m.Handle(ctx, state.Reaction{MessageID: m.MessageID(), UserID: "p1", Emoji: "➕"}))
	assert.False(t, m.Do(func() {}))
}

func TestMenuSerialisesPresses(t *testing.T) {
	chat := menutest.NewChat()
	counter := 0
	m := startMenu(t, chat, nil, Button{Emoji: "➕", Action: func(context.Context, state.Reaction) error {
		c := counter
		counter = c + 1
		return nil
	}})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Handle(context.Background(), state.Reaction{MessageID: m.MessageID(), UserID: "anyone", Emoji: "➕"})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}

func TestMenuReportsErrorsAndKeepsRunning(t *testing.T) {
	chat := menutest.NewChat()
	m := startMenu(t, chat,
		nil,
		Button{Emoji: "1️⃣", Action: func(context.Context, state.Reaction) error { return errors.New("bad input") }},
		Button{Emoji: "2️⃣", Action: func(context.Context, state.Reaction) error { panic("worse input") }},
	)
	ctx := context.Background()

	assert.True(t, m.Handle(ctx, state.Reaction{MessageID: m.MessageID(), UserID: "p1", Emoji: "1️⃣"}))
	assert.True(t, m.Running())

	sent := chat.Messages()
	require.Len(t, sent, 2)
	report := sent[1]
	assert.Equal(t, "logs", report.ChannelID)
	require.NotNil(t, report.Embed)
	assert.Equal(t, "p1 caused an error in test menu", report.Embed.Title)
	assert.Contains(t, report.Embed.Description, "bad input")
	assert.Contains(t, report.Embed.Description, "guild")

	chat.FailEmbeds = true
	assert.True(t, m.Handle(ctx, state.Reaction{MessageID: m.MessageID(), UserID: "p1", Emoji: "2️⃣"}))
	assert.True(t, m.Running())
	sent = chat.Messages()
	require.Len(t, sent, 3)
	assert.Equal(t, "Please check the logs for test menu", sent[2].Content)
}

func TestNilReporterOnlyLogs(t *testing.T) {
	var r *Reporter
	r.Report(New("x", "c", "", "a"), "a", errors.New("e"), nil)
}

func TestMenuLogsPresses(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf, slog.LevelDebug)
	t.Cleanup(func() { logging.Setup(slog.LevelInfo) })

	chat := menutest.NewChat()
	registry := NewRegistry()
	m := startMenu(t, chat, registry, Button{Emoji: "➕", Action: func(context.Context, state.Reaction) error { return nil }})

	// taking a reaction back still counts as a press
	require.True(t, registry.HandleReaction(context.Background(), state.Reaction{MessageID: m.MessageID(), UserID: "p1", Emoji: "➕", Added: false}))
	assert.Contains(t, buf.String(), "button pressed")
	assert.Contains(t, buf.String(), "added=false")

	require.True(t, registry.HandleReaction(context.Background(), state.Reaction{MessageID: m.MessageID(), UserID: "p1", Emoji: "➕", Added: true}))
	assert.Contains(t, buf.String(), "added=true")
}
