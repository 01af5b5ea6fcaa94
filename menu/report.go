package menu

import (
	"fmt"
	"time"

	"github.com/Jaggernaut555/chaoticbot/logging"
	"github.com/bwmarrin/discordgo"
)

const (
	reportColour  = 0xFF0000
	maxStackChars = 3500
)

// Reporter sends errors raised inside a menu to the operator log channel
type Reporter struct {
	chat      Chat
	channelID string
	botName   string
}

func NewReporter(chat Chat, channelID, botName string) *Reporter {
	return &Reporter{chat: chat, channelID: channelID, botName: botName}
}

// Report logs the error and, when a log channel is set, posts it there.
// A nil Reporter only logs.
func (r *Reporter) Report(m *Menu, actorID string, err error, stack []byte) {
	logging.Logger("menu").Error("error in menu",
		"menu", m.Name,
		"actor", actorID,
		"guild", m.GuildID,
		"channel", m.ChannelID,
		"err", err,
		"stack", string(stack),
	)

	if r == nil || r.chat == nil || r.channelID == "" {
		return
	}

	if _, sendErr := r.chat.SendEmbed(r.channelID, "", r.embed(m, actorID, err, stack)); sendErr != nil {
		logging.Err("could not send error report:", sendErr.Error())
		if _, sendErr = r.chat.SendReply(r.channelID, "Please check the logs for "+m.Name); sendErr != nil {
			logging.Err("could not send error notice:", sendErr.Error())
		}
	}
}

func (r *Reporter) embed(m *Menu, actorID string, err error, stack []byte) *discordgo.MessageEmbed {
	description := fmt.Sprintf("%T : %v", err, err)
	if m.GuildID != "" {
		description += fmt.Sprintf("\nin guild (%s)\n   in channel (%s)", m.GuildID, m.ChannelID)
	} else {
		description += fmt.Sprintf("\nin a Private Channel (%s)", m.ChannelID)
	}

	trace := string(stack)
	if len(trace) > maxStackChars {
		trace = trace[:maxStackChars]
	}
	description += fmt.Sprintf("```\n%s```", trace)

	return &discordgo.MessageEmbed{
		Color:       reportColour,
		Author:      &discordgo.MessageEmbedAuthor{Name: actorID},
		Title:       fmt.Sprintf("%s caused an error in %s", actorID, m.Name),
		Description: description,
		Footer:      &discordgo.MessageEmbedFooter{Text: r.botName + " Logging"},
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}
