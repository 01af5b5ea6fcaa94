package games

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Jaggernaut555/chaoticbot/logging"
	"github.com/Jaggernaut555/chaoticbot/menu"
	"github.com/Jaggernaut555/chaoticbot/state"
	"github.com/bwmarrin/discordgo"
)

// Game buttons
const (
	HitEmoji   = "➕"
	StandEmoji = "❌"
	StopEmoji  = "⏹️"
)

// ColumnEmojis - Connect 4 column buttons, left to right
var ColumnEmojis = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣"}

func mention(id string) string {
	return "<@" + id + ">"
}

type connect4Session struct {
	*menu.Menu
	game *Connect4
	chat menu.Chat
}

func newConnect4Session(game *Connect4, channelID, guildID, authorID string) *connect4Session {
	s := &connect4Session{game: game}
	buttons := make([]menu.Button, 0, len(ColumnEmojis)+1)
	for i, emoji := range ColumnEmojis {
		column := i
		buttons = append(buttons, menu.Button{Emoji: emoji, Action: func(_ context.Context, r state.Reaction) error {
			return s.drop(r.UserID, column)
		}})
	}
	buttons = append(buttons, menu.Button{Emoji: StopEmoji, Action: s.stop})
	s.Menu = menu.New("connect 4", channelID, guildID, authorID, buttons...)
	s.Actor = game.Current
	return s
}

func (s *connect4Session) start(chat menu.Chat, registry *menu.Registry, reporter *menu.Reporter) error {
	s.chat = chat
	return s.Start(chat, registry, reporter, mention(s.game.Current()), s.embed())
}

func (s *connect4Session) embed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Type: discordgo.EmbedTypeRich, Description: s.game.Render()}
}

func (s *connect4Session) drop(playerID string, column int) error {
	err := s.game.Drop(playerID, column)
	if errors.Is(err, ErrInvalidMove) {
		return nil
	}
	if err != nil {
		return err
	}
	content := mention(s.game.Current())
	if !s.game.Running() {
		content = ""
		defer s.end()
	}
	return s.chat.EditEmbed(s.ChannelID, s.MessageID(), content, s.embed())
}

func (s *connect4Session) stop(context.Context, state.Reaction) error {
	s.game.Stop()
	s.end()
	return nil
}

func (s *connect4Session) end() {
	s.Stop()
	if err := s.chat.ClearReactions(s.ChannelID, s.MessageID()); err != nil {
		logging.Logger("games").Warn("could not clear reactions", "menu", s.Name, "err", err)
	}
}

type blackjackSession struct {
	*menu.Menu
	game *Blackjack
	chat menu.Chat
}

func newBlackjackSession(game *Blackjack, channelID, guildID, authorID string) *blackjackSession {
	s := &blackjackSession{game: game}
	s.Menu = menu.New("blackjack", channelID, guildID, authorID,
		menu.Button{Emoji: HitEmoji, Action: s.hit},
		menu.Button{Emoji: StandEmoji, Action: s.stand},
	)
	s.Actor = game.Current
	return s
}

func (s *blackjackSession) start(chat menu.Chat, registry *menu.Registry, reporter *menu.Reporter) error {
	s.chat = chat
	return s.Start(chat, registry, reporter, mention(s.game.Current()), s.embed())
}

func (s *blackjackSession) hit(ctx context.Context, r state.Reaction) error {
	return s.update(s.game.Hit(ctx, r.UserID))
}

func (s *blackjackSession) stand(_ context.Context, r state.Reaction) error {
	return s.update(s.game.Stand(r.UserID))
}

func (s *blackjackSession) update(err error) error {
	if errors.Is(err, ErrInvalidMove) {
		return nil
	}
	if err != nil {
		return err
	}
	if s.game.Phase() != Settled {
		return s.chat.EditEmbed(s.ChannelID, s.MessageID(), mention(s.game.Current()), s.embed())
	}

	defer func() {
		s.Stop()
		if err := s.chat.ClearReactions(s.ChannelID, s.MessageID()); err != nil {
			logging.Logger("games").Warn("could not clear reactions", "menu", s.Name, "err", err)
		}
	}()
	return s.chat.EditEmbed(s.ChannelID, s.MessageID(), "", s.result())
}

func (s *blackjackSession) embed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Type:   discordgo.EmbedTypeRich,
		Title:  fmt.Sprintf("The bet is fixed at %d GP", s.game.Stake),
		Fields: []*discordgo.MessageEmbedField{{Name: "Dealer :", Value: s.game.Dealer.String()}},
	}
	for i, seat := range s.game.Seats {
		rows := make([]string, len(seat.Rows))
		for j, row := range seat.Rows {
			rows[j] = row.String()
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Player %d (%d GP)", i+1, seat.Available()),
			Value: mention(seat.PlayerID) + "\n" + strings.Join(rows, "\n"),
		})
	}
	return embed
}

func (s *blackjackSession) result() *discordgo.MessageEmbed {
	var dealer string
	switch score := s.game.DealerScore(); score {
	case 0:
		dealer = "Busted"
	case naturalScore:
		dealer = "Blackjack"
	default:
		dealer = fmt.Sprintf("%d points", score)
	}

	embed := &discordgo.MessageEmbed{
		Type:   discordgo.EmbedTypeRich,
		Fields: []*discordgo.MessageEmbedField{{Name: "Dealer", Value: dealer + " : " + s.game.Dealer.String()}},
	}
	for i, seat := range s.game.Seats {
		var lines []string
		if seat.Natural() {
			lines = append(lines, "Blackjack : "+seat.Rows[0].String())
		} else {
			for _, row := range seat.Rows {
				if row.Valid() {
					lines = append(lines, fmt.Sprintf("%d points : %s", row.Value(), row))
				} else {
					lines = append(lines, "Busted : "+row.String())
				}
			}
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Player %d : %d GP", i+1, seat.Available()),
			Value: mention(seat.PlayerID) + "\n" + strings.Join(lines, "\n"),
		})
	}
	return embed
}
