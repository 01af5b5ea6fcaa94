package lobby

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/Jaggernaut555/chaoticbot/ledger"
	"github.com/Jaggernaut555/chaoticbot/logging"
	"github.com/Jaggernaut555/chaoticbot/menu"
	"github.com/Jaggernaut555/chaoticbot/state"
	"github.com/bwmarrin/discordgo"
)

// Lobby timing, in seconds
const (
	TickSeconds    = 5
	DefaultSeconds = 120
)

// Lobby buttons
const (
	JoinEmoji  = "✅"
	StartEmoji = "⏭️"
)

// Status of a lobby
type Status int32

const (
	Collecting Status = iota
	Starting
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Starting:
		return "starting"
	default:
		return "cancelled"
	}
}

// ErrInvalidStake is returned for negative stakes
var ErrInvalidStake = errors.New("you can't bet negative money")

// Lobby gathers players willing to sit down at a wagered table
type Lobby struct {
	*menu.Menu
	Game  string
	Stake int

	ledger    ledger.Ledger
	chat      menu.Chat
	players   []string
	money     map[string]int
	remaining int
	status    atomic.Int32
}

// Open checks the initiator can cover the stake and seats them in a new lobby
func Open(ctx context.Context, l ledger.Ledger, game, channelID, guildID, initiator string, stake int) (*Lobby, error) {
	if stake < 0 {
		return nil, ErrInvalidStake
	}
	spendable, err := ledger.CanAfford(ctx, l, initiator, stake)
	if err != nil {
		return nil, err
	}

	lob := &Lobby{
		Game:      game,
		Stake:     stake,
		ledger:    l,
		players:   []string{initiator},
		money:     map[string]int{initiator: spendable},
		remaining: DefaultSeconds,
	}
	lob.Menu = menu.New(game+" players", channelID, guildID, initiator,
		menu.Button{Emoji: JoinEmoji, Action: lob.onJoin},
		menu.Button{Emoji: StartEmoji, Action: lob.onStart},
	)
	return lob, nil
}

// SetCountdown overrides the countdown. Call it before the lobby sees any traffic
func (l *Lobby) SetCountdown(seconds int) {
	l.remaining = seconds
}

// Show posts the lobby message and starts listening to its buttons
func (l *Lobby) Show(chat menu.Chat, registry *menu.Registry, reporter *menu.Reporter) error {
	l.chat = chat
	return l.Start(chat, registry, reporter, "", l.embed())
}

// Status of the lobby
func (l *Lobby) Status() Status {
	return Status(l.status.Load())
}

// Remaining seconds on the countdown
func (l *Lobby) Remaining() int {
	var r int
	if !l.Do(func() { r = l.remaining }) {
		return 0
	}
	return r
}

// Toggle adds a player who can afford the stake, or removes one already seated
func (l *Lobby) Toggle(ctx context.Context, playerID string) (joined bool, err error) {
	l.Do(func() { joined, err = l.toggle(ctx, playerID) })
	return
}

// ForceStart finalises the roster on the spot
func (l *Lobby) ForceStart() {
	l.Do(l.forceStart)
}

// Tick advances the countdown by one tick
func (l *Lobby) Tick() {
	l.Do(l.tick)
}

// Cancel closes the lobby without producing a roster
func (l *Lobby) Cancel() {
	l.Do(func() { l.finish(Cancelled) })
}

// Roster is the seated players in join order with the spendable money each had when joining.
// A cancelled or still collecting lobby has no roster.
func (l *Lobby) Roster() ([]string, map[string]int) {
	if l.Status() != Starting {
		return nil, nil
	}
	players := append([]string(nil), l.players...)
	money := make(map[string]int, len(l.money))
	for k, v := range l.money {
		money[k] = v
	}
	return players, money
}

func (l *Lobby) onJoin(ctx context.Context, r state.Reaction) error {
	_, err := l.toggle(ctx, r.UserID)
	if errors.Is(err, ledger.ErrInsufficientFunds) {
		reply := fmt.Sprintf("Sorry <@%s>, but you don't have enough money to come to this table", r.UserID)
		if l.chat != nil {
			if _, err := l.chat.SendReply(l.ChannelID, reply); err != nil {
				return err
			}
		}
		return nil
	}
	return err
}

func (l *Lobby) onStart(_ context.Context, r state.Reaction) error {
	logging.Log(fmt.Sprintf("%v started the %v lobby early", r.UserID, l.Game))
	l.forceStart()
	return nil
}

func (l *Lobby) toggle(ctx context.Context, playerID string) (bool, error) {
	for i, v := range l.players {
		if v == playerID {
			l.players = append(l.players[:i], l.players[i+1:]...)
			delete(l.money, playerID)
			logging.Log(fmt.Sprintf("%v left the %v lobby", playerID, l.Game))
			l.refresh()
			return false, nil
		}
	}

	spendable, err := ledger.CanAfford(ctx, l.ledger, playerID, l.Stake)
	if err != nil {
		return false, err
	}
	l.players = append(l.players, playerID)
	l.money[playerID] = spendable
	logging.Log(fmt.Sprintf("%v joined the %v lobby", playerID, l.Game))
	l.refresh()
	return true, nil
}

func (l *Lobby) forceStart() {
	l.remaining = TickSeconds
	l.tick()
}

func (l *Lobby) tick() {
	if l.Status() != Collecting {
		return
	}
	l.remaining -= TickSeconds
	if l.remaining <= 0 {
		l.remaining = 0
		l.finish(Starting)
		return
	}
	l.refresh()
}

func (l *Lobby) finish(status Status) {
	l.status.Store(int32(status))
	l.Stop()
	if l.chat != nil && l.MessageID() != "" {
		if err := l.chat.Delete(l.ChannelID, l.MessageID()); err != nil {
			logging.Logger("lobby").Warn("could not delete lobby message", "err", err)
		}
	}
}

func (l *Lobby) refresh() {
	if l.chat == nil || l.MessageID() == "" {
		return
	}
	if err := l.chat.EditEmbed(l.ChannelID, l.MessageID(), "", l.embed()); err != nil {
		logging.Logger("lobby").Warn("could not update lobby message", "err", err)
	}
}

func (l *Lobby) embed() *discordgo.MessageEmbed {
	mentions := make([]string, len(l.players))
	for i, v := range l.players {
		mentions[i] = "<@" + v + ">"
	}
	return &discordgo.MessageEmbed{
		Type:  discordgo.EmbedTypeRich,
		Title: fmt.Sprintf("Come play %s ! Initial bet is %d GP (%d seconds left)", l.Game, l.Stake, l.remaining),
		Description: fmt.Sprintf("Check the command's help for the rules. React with %s to join, %s to begin the game"+
			"\n\nCurrent players :\n - %s", JoinEmoji, StartEmoji, strings.Join(mentions, "\n - ")),
	}
}
