package state

import (
	"github.com/bwmarrin/discordgo"
)

// Session is the part of *discordgo.Session the bot talks through
type Session interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	MessageReactionsRemoveAll(channelID, messageID string, options ...discordgo.RequestOption) error
}

var _ Session = (*discordgo.Session)(nil)

// Chat sends and edits messages on behalf of games
type Chat struct {
	session Session
	*Waiter
}

func NewChat(session Session) *Chat {
	return &Chat{session: session, Waiter: NewWaiter()}
}

//SendReply Send a reply to a channel
func (c *Chat) SendReply(channelID string, reply string) (*discordgo.Message, error) {
	return c.session.ChannelMessageSend(channelID, reply)
}

//SendEmbed Send an embed with optional content above it
func (c *Chat) SendEmbed(channelID, content string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
}

//EditEmbed Replace the content and embed of a message. Empty content clears it
func (c *Chat) EditEmbed(channelID, messageID, content string, embed *discordgo.MessageEmbed) error {
	edit := discordgo.NewMessageEdit(channelID, messageID).SetContent(content)
	if embed != nil {
		edit.SetEmbed(embed)
	}
	_, err := c.session.ChannelMessageEditComplex(edit)
	return err
}

//Delete Delete a message
func (c *Chat) Delete(channelID, messageID string) error {
	return c.session.ChannelMessageDelete(channelID, messageID)
}

//React Add a reaction to a message
func (c *Chat) React(channelID, messageID, emoji string) error {
	return c.session.MessageReactionAdd(channelID, messageID, emoji)
}

//ClearReactions Remove every reaction from a message
func (c *Chat) ClearReactions(channelID, messageID string) error {
	return c.session.MessageReactionsRemoveAll(channelID, messageID)
}
