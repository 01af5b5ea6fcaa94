package bot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Jaggernaut555/chaoticbot/cards"
	"github.com/Jaggernaut555/chaoticbot/games"
	"github.com/Jaggernaut555/chaoticbot/logging"
	"github.com/bwmarrin/discordgo"
)

// CmdFuncType Command function type
type CmdFuncType func(context.Context, *discordgo.Message, []string) error

// CmdFuncHelpType The type stored in the CmdFuncs map to map a function and helper text to a command
type CmdFuncHelpType struct {
	function CmdFuncType
	help     string
}

// CmdFuncsType The type of the CmdFuncs map
type CmdFuncsType map[string]CmdFuncHelpType

var aliases = map[string]string{
	"c4":    "connect4",
	"mines": "minesweeper",
}

func (b *Bot) initCmds() CmdFuncsType {
	return CmdFuncsType{
		"help":        {b.cmdHelp, "Prints this list"},
		"version":     {b.cmdVersion, "Outputs the current bot version"},
		"card":        {b.cmdCard, "IS A CARD"},
		"balance":     {b.cmdBalance, "How much money you have on hand and in the bank"},
		"blackjack":   {b.cmdBlackjack, "Open a blackjack table. `blackjack [stake]`, stake defaults to 5 GP"},
		"connect4":    {b.cmdConnect4, "Play connect 4 with a friend. `connect4 @friend`"},
		"minesweeper": {b.cmdMinesweeper, "Get a minesweeper board. `minesweeper [easy|medium|hard]`"},
	}
}

// HandleCommand runs a prefixed command, throttled per user
func (b *Bot) HandleCommand(ctx context.Context, message *discordgo.Message, cmd string) {
	args := strings.Fields(cmd)
	if len(args) == 0 {
		return
	}
	name := strings.ToLower(args[0])
	if alias, ok := aliases[name]; ok {
		name = alias
	}

	CmdFuncHelpPair, ok := b.commands[name]
	if !ok {
		b.reply(message.ChannelID, fmt.Sprintf("I do not have command `%s`", args[0]))
		return
	}
	if !b.limiter.Allow(message.Author.ID) {
		logging.Logger("bot").Debug("command throttled", "user", message.Author.ID, "command", name)
		return
	}

	if err := CmdFuncHelpPair.function(ctx, message, args); err != nil && !errors.Is(err, context.Canceled) {
		logging.Logger("bot").Error("command failed", "command", name, "user", message.Author.ID, "channel", message.ChannelID, "err", err)
	}
}

func (b *Bot) reply(channelID, text string) {
	if _, err := b.chat.SendReply(channelID, text); err != nil {
		logging.Err("could not reply:", err.Error())
	}
}

func (b *Bot) cmdHelp(_ context.Context, message *discordgo.Message, _ []string) error {
	b.reply(message.ChannelID, b.helpText())
	return nil
}

// helpText lists every command with its short names, sorted by command
func (b *Bot) helpText() string {
	short := make(map[string][]string)
	for alias, name := range aliases {
		short[name] = append(short[name], alias)
	}

	names := make([]string, 0, len(b.commands))
	for name := range b.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Usage: `%s<command> [arguments]`\n```\n", b.prefix)
	for _, name := range names {
		sb.WriteString(name)
		if a := short[name]; len(a) > 0 {
			sort.Strings(a)
			fmt.Fprintf(&sb, " (%s)", strings.Join(a, ", "))
		}
		fmt.Fprintf(&sb, " - %s\n", b.commands[name].help)
	}
	sb.WriteString("```\n")
	return sb.String()
}

func (b *Bot) cmdVersion(_ context.Context, message *discordgo.Message, _ []string) error {
	b.reply(message.ChannelID, fmt.Sprintf("Version: %v", Version))
	return nil
}

func (b *Bot) cmdCard(_ context.Context, message *discordgo.Message, _ []string) error {
	b.reply(message.ChannelID, cards.GenerateCard().Name())
	return nil
}

func (b *Bot) cmdBalance(ctx context.Context, message *discordgo.Message, _ []string) error {
	acct, err := b.ledger.Balance(ctx, message.Author.ID)
	if err != nil {
		return err
	}
	b.reply(message.ChannelID, fmt.Sprintf("<@%s> you have %d GP on hand and %d GP in the bank", message.Author.ID, acct.OnHand, acct.Banked))
	return nil
}

func (b *Bot) cmdBlackjack(ctx context.Context, message *discordgo.Message, args []string) error {
	stake := games.DefaultStake
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			b.reply(message.ChannelID, "The stake must be a whole number of GP")
			return nil
		}
		stake = n
	}
	return b.games.Blackjack(ctx, message.ChannelID, message.GuildID, message.Author.ID, stake)
}

func (b *Bot) cmdConnect4(ctx context.Context, message *discordgo.Message, _ []string) error {
	if len(message.Mentions) == 0 {
		b.reply(message.ChannelID, "Mention who you want to play with")
		return nil
	}
	opponent := message.Mentions[0]
	return b.games.Connect4(ctx, message.ChannelID, message.GuildID, message.Author.ID, opponent.ID, opponent.Bot)
}

func (b *Bot) cmdMinesweeper(_ context.Context, message *discordgo.Message, args []string) error {
	difficulty := "easy"
	if len(args) > 1 {
		difficulty = args[1]
	}
	return b.games.Minesweeper(message.ChannelID, difficulty)
}
