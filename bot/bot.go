// Package bot connects the games to Discord.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Jaggernaut555/chaoticbot/config"
	"github.com/Jaggernaut555/chaoticbot/db"
	"github.com/Jaggernaut555/chaoticbot/games"
	"github.com/Jaggernaut555/chaoticbot/history"
	"github.com/Jaggernaut555/chaoticbot/ledger"
	"github.com/Jaggernaut555/chaoticbot/logging"
	"github.com/Jaggernaut555/chaoticbot/menu"
	"github.com/Jaggernaut555/chaoticbot/state"
	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"
)

// Version of the bot
const Version = "v1.0.0"

const botName = "Chaotic Bot"

const intents = discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMessageReactions |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsDirectMessageReactions |
	discordgo.IntentsMessageContent

// Bot routes chat events to commands, prompts and live menus
type Bot struct {
	prefix   string
	waiter   *state.Waiter
	games    *games.Service
	ledger   ledger.Ledger
	chat     menu.Chat
	commands CmdFuncsType
	limiter  *userLimiter
}

func newBot(cfg *config.Config, chat menu.Chat, waiter *state.Waiter, svc *games.Service, l ledger.Ledger) *Bot {
	b := &Bot{
		prefix:  cfg.Prefix,
		waiter:  waiter,
		games:   svc,
		ledger:  l,
		chat:    chat,
		limiter: newUserLimiter(cfg.CommandRate, cfg.CommandBurst),
	}
	b.commands = b.initCmds()
	return b
}

// LaunchBot connects storage and Discord, then serves until ctx ends
func LaunchBot(ctx context.Context, cfg *config.Config) error {
	logging.Log("TIME TO GET CHAOTIC...")

	store, err := db.Setup(cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Purge {
		if err := store.Purge(); err != nil {
			return err
		}
	}

	recorders := history.Multi{store}
	if cfg.Redis.Address != "" {
		r, err := history.ConnectRedis(ctx, cfg.Redis.Address, cfg.Redis.List)
		if err != nil {
			return err
		}
		defer r.Close()
		recorders = append(recorders, r)
	}

	discordgo.Logger = logging.DiscordgoLogger()
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("error creating Discord session: %w", err)
	}
	session.Identify.Intents = intents

	if err := session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	me, err := session.User("@me")
	if err != nil {
		session.Close()
		return fmt.Errorf("error fetching bot user: %w", err)
	}

	chat := state.NewChat(session)
	svc := games.NewService(chat, chat.Waiter, store, recorders)
	svc.BotID = me.ID
	svc.LobbySeconds = cfg.LobbySeconds
	svc.Reporter = menu.NewReporter(chat, cfg.LogChannelID, botName)

	b := newBot(cfg, chat, chat.Waiter, svc, store)

	g, ctx := errgroup.WithContext(ctx)
	session.AddHandler(b.messageCreate(ctx))
	session.AddHandler(b.reactionAdd(ctx))
	session.AddHandler(b.reactionRemove(ctx))

	logging.Log("Bot is now running. Press CTRL-C to exit.")

	g.Go(func() error {
		return svc.Lobbies.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		return session.Close()
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (b *Bot) messageCreate(ctx context.Context) func(*discordgo.Session, *discordgo.MessageCreate) {
	return func(_ *discordgo.Session, message *discordgo.MessageCreate) {
		if message.Author == nil || message.Author.Bot {
			return
		}
		b.waiter.DispatchMessage(state.Message{
			ID:        message.ID,
			ChannelID: message.ChannelID,
			AuthorID:  message.Author.ID,
			Content:   message.Content,
		})

		if strings.HasPrefix(message.Content, b.prefix) {
			b.HandleCommand(ctx, message.Message, strings.TrimPrefix(message.Content, b.prefix))
		}
	}
}

// Both adding and removing a reaction count as pressing the button
func (b *Bot) reactionAdd(ctx context.Context) func(*discordgo.Session, *discordgo.MessageReactionAdd) {
	return func(_ *discordgo.Session, reaction *discordgo.MessageReactionAdd) {
		b.handleReaction(ctx, reaction.MessageReaction, true)
	}
}

func (b *Bot) reactionRemove(ctx context.Context) func(*discordgo.Session, *discordgo.MessageReactionRemove) {
	return func(_ *discordgo.Session, reaction *discordgo.MessageReactionRemove) {
		b.handleReaction(ctx, reaction.MessageReaction, false)
	}
}

func (b *Bot) handleReaction(ctx context.Context, reaction *discordgo.MessageReaction, added bool) {
	r := state.Reaction{
		ChannelID: reaction.ChannelID,
		GuildID:   reaction.GuildID,
		MessageID: reaction.MessageID,
		UserID:    reaction.UserID,
		Emoji:     reaction.Emoji.Name,
		Added:     added,
	}
	b.waiter.DispatchReaction(r)
	b.games.Menus.HandleReaction(ctx, r)
}
