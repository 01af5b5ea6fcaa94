// Package menu runs messages whose reactions act as buttons.
//
// A Menu owns a table of emoji to actions. Reactions are matched against the
// live message, the current actor and the table, then applied one at a time
// under the menu's lock so a turn can never be applied twice.
package menu

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/Jaggernaut555/chaoticbot/logging"
	"github.com/Jaggernaut555/chaoticbot/state"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// Action is what pressing a button does
type Action func(ctx context.Context, r state.Reaction) error

// Button maps an emoji onto an action
type Button struct {
	Emoji  string
	Action Action
}

// Chat is everything a menu needs from the chat platform
type Chat interface {
	SendReply(channelID string, reply string) (*discordgo.Message, error)
	SendEmbed(channelID, content string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
	EditEmbed(channelID, messageID, content string, embed *discordgo.MessageEmbed) error
	Delete(channelID, messageID string) error
	React(channelID, messageID, emoji string) error
	ClearReactions(channelID, messageID string) error
}

// Menu is one live reaction-driven message
type Menu struct {
	ID        uuid.UUID
	Name      string
	ChannelID string
	GuildID   string
	AuthorID  string
	BotID     string

	// Actor returns who may press buttons right now. Nil lets anyone but the bot.
	Actor func() string

	buttons  []Button
	message  *discordgo.Message
	mu       sync.Mutex
	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
	registry *Registry
	reporter *Reporter
}

// New builds a menu that is not yet shown anywhere
func New(name, channelID, guildID, authorID string, buttons ...Button) *Menu {
	return &Menu{
		ID:        uuid.New(),
		Name:      name,
		ChannelID: channelID,
		GuildID:   guildID,
		AuthorID:  authorID,
		buttons:   buttons,
		done:      make(chan struct{}),
	}
}

// Start sends the menu message, adds every button as a reaction and begins routing reactions to it
func (m *Menu) Start(chat Chat, registry *Registry, reporter *Reporter, content string, embed *discordgo.MessageEmbed) error {
	msg, err := chat.SendEmbed(m.ChannelID, content, embed)
	if err != nil {
		return fmt.Errorf("error sending %s: %w", m.Name, err)
	}

	m.mu.Lock()
	m.message = msg
	m.registry = registry
	m.reporter = reporter
	m.running.Store(true)
	m.mu.Unlock()

	if registry != nil {
		registry.Add(m)
	}

	for _, b := range m.buttons {
		if err := chat.React(msg.ChannelID, msg.ID, b.Emoji); err != nil {
			logging.Logger("menu").Warn("could not add button", "menu", m.Name, "emoji", b.Emoji, "err", err)
		}
	}
	return nil
}

// MessageID of the live message, empty before Start
func (m *Menu) MessageID() string {
	if m.message == nil {
		return ""
	}
	return m.message.ID
}

// Running until Stop
func (m *Menu) Running() bool {
	return m.running.Load()
}

// Done is closed once the menu stops
func (m *Menu) Done() <-chan struct{} {
	return m.done
}

// Wait blocks until the menu stops or ctx ends
func (m *Menu) Wait(ctx context.Context) error {
	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop ends the menu. Safe to call from inside an action and more than once
func (m *Menu) Stop() {
	m.stopOnce.Do(func() {
		m.running.Store(false)
		if m.registry != nil {
			m.registry.Remove(m.ID)
		}
		close(m.done)
	})
}

// Do runs fn under the menu's lock, skipping it if the menu already stopped
func (m *Menu) Do(fn func()) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Running() {
		return false
	}
	fn()
	return true
}

func (m *Menu) button(emoji string) (Button, bool) {
	for _, b := range m.buttons {
		if b.Emoji == emoji {
			return b, true
		}
	}
	return Button{}, false
}

// Handle applies a reaction if it targets this menu, comes from the current actor and is a button.
// It reports whether the reaction was applied.
func (m *Menu) Handle(ctx context.Context, r state.Reaction) bool {
	if r.MessageID != m.MessageID() || (m.BotID != "" && r.UserID == m.BotID) {
		return false
	}
	b, ok := m.button(r.Emoji)
	if !ok {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.Running() {
		return false
	}
	if m.Actor != nil && m.Actor() != r.UserID {
		return false
	}

	logging.Logger("menu").Debug("button pressed",
		"menu", m.Name,
		"user", r.UserID,
		"emoji", r.Emoji,
		"added", r.Added,
	)
	m.apply(ctx, b, r)
	return true
}

// apply runs a button, turning errors and panics into a report. The menu keeps running.
func (m *Menu) apply(ctx context.Context, b Button, r state.Reaction) {
	defer func() {
		if p := recover(); p != nil {
			m.reporter.Report(m, r.UserID, fmt.Errorf("panic: %v", p), debug.Stack())
		}
	}()

	if err := b.Action(ctx, r); err != nil {
		m.reporter.Report(m, r.UserID, err, debug.Stack())
	}
}
