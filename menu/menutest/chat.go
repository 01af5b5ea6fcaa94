// Package menutest provides a recording chat for menu, lobby and game tests.
package menutest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Sent is one message the bot posted
type Sent struct {
	ID        string
	ChannelID string
	Content   string
	Embed     *discordgo.MessageEmbed
}

// Chat records every call and never talks to Discord
type Chat struct {
	mu        sync.Mutex
	nextID    int
	Sent      []Sent
	Edits     []Sent
	Deleted   []string
	Reactions map[string][]string
	Cleared   []string

	// FailEmbeds makes SendEmbed fail, for exercising fallbacks
	FailEmbeds bool
}

func NewChat() *Chat {
	return &Chat{Reactions: make(map[string][]string)}
}

func (c *Chat) SendReply(channelID string, reply string) (*discordgo.Message, error) {
	return c.send(channelID, reply, nil)
}

func (c *Chat) SendEmbed(channelID, content string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	c.mu.Lock()
	fail := c.FailEmbeds
	c.mu.Unlock()
	if fail {
		return nil, errors.New("embed rejected")
	}
	return c.send(channelID, content, embed)
}

func (c *Chat) send(channelID, content string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := fmt.Sprintf("msg%d", c.nextID)
	c.Sent = append(c.Sent, Sent{ID: id, ChannelID: channelID, Content: content, Embed: embed})
	return &discordgo.Message{ID: id, ChannelID: channelID, Content: content}, nil
}

func (c *Chat) EditEmbed(channelID, messageID, content string, embed *discordgo.MessageEmbed) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Edits = append(c.Edits, Sent{ID: messageID, ChannelID: channelID, Content: content, Embed: embed})
	return nil
}

func (c *Chat) Delete(channelID, messageID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Deleted = append(c.Deleted, messageID)
	return nil
}

func (c *Chat) React(channelID, messageID, emoji string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Reactions[messageID] = append(c.Reactions[messageID], emoji)
	return nil
}

func (c *Chat) ClearReactions(channelID, messageID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Cleared = append(c.Cleared, messageID)
	return nil
}

// Messages returns a copy of everything sent so far
func (c *Chat) Messages() []Sent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Sent(nil), c.Sent...)
}

// LastEdit returns the most recent edit, if any
func (c *Chat) LastEdit() (Sent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Edits) == 0 {
		return Sent{}, false
	}
	return c.Edits[len(c.Edits)-1], true
}

// ReactionsOn returns the buttons added to a message so far
func (c *Chat) ReactionsOn(messageID string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.Reactions[messageID]...)
}
