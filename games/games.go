// Package games holds the bot's minigames and the commands that run them.
package games

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Jaggernaut555/chaoticbot/cards"
	"github.com/Jaggernaut555/chaoticbot/history"
	"github.com/Jaggernaut555/chaoticbot/ledger"
	"github.com/Jaggernaut555/chaoticbot/lobby"
	"github.com/Jaggernaut555/chaoticbot/logging"
	"github.com/Jaggernaut555/chaoticbot/menu"
	"github.com/google/uuid"
)

// Game names as recorded in history
const (
	BlackjackName   = "blackjack"
	Connect4Name    = "connect4"
	MinesweeperName = "minesweeper"
)

// DefaultStake for a blackjack table
const DefaultStake = 5

const shoeDecks = 6

// Service runs games in chat channels
type Service struct {
	Chat     menu.Chat
	Waiter   Waiter
	Ledger   ledger.Ledger
	Menus    *menu.Registry
	Lobbies  *lobby.Manager
	Reporter *menu.Reporter
	Recorder history.Recorder
	BotID    string

	// LobbySeconds overrides the lobby countdown when positive
	LobbySeconds  int
	PromptTimeout time.Duration
	NewShoe       func() *cards.Shoe
	NewRand       func() *rand.Rand
}

func NewService(chat menu.Chat, waiter Waiter, l ledger.Ledger, recorder history.Recorder) *Service {
	return &Service{
		Chat:          chat,
		Waiter:        waiter,
		Ledger:        l,
		Menus:         menu.NewRegistry(),
		Lobbies:       lobby.NewManager(),
		Recorder:      recorder,
		PromptTimeout: PromptTimeout,
		NewShoe: func() *cards.Shoe {
			return cards.NewShoe(shoeDecks, rand.New(rand.NewSource(time.Now().UnixNano())))
		},
		NewRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

func (s *Service) reply(channelID, text string) error {
	if _, err := s.Chat.SendReply(channelID, text); err != nil {
		return fmt.Errorf("error replying in %s: %w", channelID, err)
	}
	return nil
}

// Blackjack gathers players in a lobby, plays a round and settles everyone's money
func (s *Service) Blackjack(ctx context.Context, channelID, guildID, authorID string, stake int) error {
	lob, err := lobby.Open(ctx, s.Ledger, BlackjackName, channelID, guildID, authorID, stake)
	switch {
	case errors.Is(err, lobby.ErrInvalidStake):
		return s.reply(channelID, "You can't bet negative money")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return s.reply(channelID, "Sorry, but you don't have enough money to come to this table")
	case err != nil:
		return fmt.Errorf("error opening blackjack lobby: %w", err)
	}

	lob.BotID = s.BotID
	if s.LobbySeconds > 0 {
		lob.SetCountdown(s.LobbySeconds)
	}
	if err := lob.Show(s.Chat, s.Menus, s.Reporter); err != nil {
		return err
	}
	s.Lobbies.Add(lob)
	if err := lob.Wait(ctx); err != nil {
		lob.Cancel()
		return err
	}

	players, money := lob.Roster()
	if len(players) == 0 {
		return s.reply(channelID, "Nobody wants to play")
	}

	game := NewBlackjack(players, money, stake, s.NewShoe(), &chatPrompter{
		chat:      s.Chat,
		waiter:    s.Waiter,
		channelID: channelID,
		timeout:   s.PromptTimeout,
	})
	game.Deal()

	session := newBlackjackSession(game, channelID, guildID, authorID)
	session.BotID = s.BotID
	if err := session.start(s.Chat, s.Menus, s.Reporter); err != nil {
		return err
	}
	if err := session.Wait(ctx); err != nil {
		session.Stop()
		return err
	}

	results := game.Results()
	settleErr := Settle(ctx, s.Ledger, results)
	s.record(ctx, history.Record{
		SessionID: session.ID,
		Game:      BlackjackName,
		ChannelID: channelID,
		StarterID: authorID,
		Stake:     stake,
		Players:   results,
	})
	return settleErr
}

// Connect4 plays a game between the author and the opponent
func (s *Service) Connect4(ctx context.Context, channelID, guildID, authorID, opponentID string, opponentIsBot bool) error {
	if opponentID == authorID {
		return s.reply(channelID, "You can't play with only yourself !")
	}
	if opponentIsBot {
		return s.reply(channelID, "This member is a bot. Play with a human !")
	}

	game := NewConnect4(authorID, opponentID)
	session := newConnect4Session(game, channelID, guildID, authorID)
	session.BotID = s.BotID
	if err := session.start(s.Chat, s.Menus, s.Reporter); err != nil {
		return err
	}
	if err := session.Wait(ctx); err != nil {
		session.Stop()
		return err
	}

	s.record(ctx, history.Record{
		SessionID: session.ID,
		Game:      Connect4Name,
		ChannelID: channelID,
		StarterID: authorID,
		WinnerID:  game.Winner(),
		Players:   []history.PlayerResult{{PlayerID: authorID}, {PlayerID: opponentID}},
	})

	if winner := game.Winner(); winner != "" {
		return s.reply(channelID, mention(winner)+" won !")
	}
	return s.reply(channelID, "Game cancelled")
}

// Minesweeper posts a spoiler-masked board
func (s *Service) Minesweeper(channelID, difficulty string) error {
	field, err := Generate(difficulty, s.NewRand())
	if errors.Is(err, ErrUnknownDifficulty) {
		return s.reply(channelID, err.Error())
	}
	if err != nil {
		return err
	}
	for _, page := range field.Pages() {
		if err := s.reply(channelID, page); err != nil {
			return err
		}
	}
	return nil
}

// Settle applies every player's result to the ledger once.
// A failure for one player is logged and the rest are still applied.
func Settle(ctx context.Context, l ledger.Ledger, results []history.PlayerResult) error {
	var errs []error
	for _, r := range results {
		if err := l.Apply(ctx, r.PlayerID, r.Delta); err != nil {
			logging.Logger("games").Error("could not settle player", "player", r.PlayerID, "delta", r.Delta, "err", err)
			errs = append(errs, fmt.Errorf("error settling %s: %w", r.PlayerID, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Service) record(ctx context.Context, rec history.Record) {
	if s.Recorder == nil {
		return
	}
	if rec.SessionID == uuid.Nil {
		rec.SessionID = uuid.New()
	}
	rec.Time = time.Now().UTC()
	if err := s.Recorder.RecordGame(ctx, rec); err != nil {
		logging.Logger("games").Error("could not record game", "game", rec.Game, "session", rec.SessionID, "err", err)
	}
}
