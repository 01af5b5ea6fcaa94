package games

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Jaggernaut555/chaoticbot/cards"
	"github.com/Jaggernaut555/chaoticbot/logging"
	"github.com/Jaggernaut555/chaoticbot/menu"
	"github.com/Jaggernaut555/chaoticbot/state"
)

// PromptTimeout - How long a player has to answer a split or row question
const PromptTimeout = 30 * time.Second

const defaultNoticeLifetime = 3 * time.Second

// Waiter delivers the next chat message matching a predicate
type Waiter interface {
	AwaitMessage(ctx context.Context, match func(state.Message) bool, timeout time.Duration) (state.Message, error)
}

var splitAnswers = map[string]bool{"y": true, "yes": true, "n": false, "no": false}

// chatPrompter asks blackjack questions in the game's channel and reads the answer from the player's next message
type chatPrompter struct {
	chat      menu.Chat
	waiter    Waiter
	channelID string
	timeout   time.Duration
}

func (p *chatPrompter) ConfirmSplit(ctx context.Context, playerID string, card cards.Card) bool {
	question := fmt.Sprintf("%s You have a %s. Do you want to split ? (y/n)", mention(playerID), card.Name())
	answer, ok := p.ask(ctx, playerID, question, func(content string) bool {
		_, known := splitAnswers[strings.ToLower(content)]
		return known
	})
	if !ok {
		return false
	}
	return splitAnswers[strings.ToLower(answer)]
}

func (p *chatPrompter) ChooseRow(ctx context.Context, playerID string, playable []int) int {
	question := fmt.Sprintf("%s You have %d rows available. In which one do you want to play ?", mention(playerID), len(playable))
	answer, ok := p.ask(ctx, playerID, question, func(content string) bool {
		n, err := strconv.Atoi(content)
		if err != nil {
			return false
		}
		for _, row := range playable {
			if row == n-1 {
				return true
			}
		}
		return false
	})
	if !ok {
		p.notice(fmt.Sprintf("Defaulting to row %d", playable[0]+1))
		return playable[0]
	}
	n, _ := strconv.Atoi(answer)
	return n - 1
}

// ask posts a question and waits for the player's answer, cleaning up both messages
func (p *chatPrompter) ask(ctx context.Context, playerID, question string, valid func(string) bool) (string, bool) {
	prompt, err := p.chat.SendReply(p.channelID, question)
	if err != nil {
		logging.Logger("games").Warn("could not ask player", "player", playerID, "err", err)
		return "", false
	}
	defer p.delete(prompt.ID)

	msg, err := p.waiter.AwaitMessage(ctx, func(m state.Message) bool {
		return m.ChannelID == p.channelID && m.AuthorID == playerID && valid(strings.TrimSpace(m.Content))
	}, p.timeout)
	if err != nil {
		return "", false
	}
	p.delete(msg.ID)
	return strings.TrimSpace(msg.Content), true
}

func (p *chatPrompter) delete(messageID string) {
	if err := p.chat.Delete(p.channelID, messageID); err != nil {
		logging.Logger("games").Debug("could not delete prompt", "message", messageID, "err", err)
	}
}

func (p *chatPrompter) notice(text string) {
	msg, err := p.chat.SendReply(p.channelID, text)
	if err != nil {
		return
	}
	time.AfterFunc(defaultNoticeLifetime, func() { p.delete(msg.ID) })
}
