package games

import (
	"context"
	"math"
	"slices"

	"github.com/Jaggernaut555/chaoticbot/cards"
	"github.com/Jaggernaut555/chaoticbot/history"
)

// Phase of a blackjack table
type Phase int

const (
	Dealing Phase = iota
	PlayerTurns
	DealerTurn
	Settled
)

func (p Phase) String() string {
	switch p {
	case Dealing:
		return "dealing"
	case PlayerTurns:
		return "player turns"
	case DealerTurn:
		return "dealer turn"
	default:
		return "settled"
	}
}

const (
	maxRows       = 3
	dealerStandOn = 17
	naturalScore  = 22
	naturalPayout = 2.5
)

// Prompter asks a player the questions a hit can raise.
// Implementations return the default answer when the player doesn't reply.
type Prompter interface {
	// ConfirmSplit defaults to false
	ConfirmSplit(ctx context.Context, playerID string, card cards.Card) bool
	// ChooseRow returns an index of playable, defaulting to its first entry
	ChooseRow(ctx context.Context, playerID string, playable []int) int
}

type noPrompts struct{}

func (noPrompts) ConfirmSplit(context.Context, string, cards.Card) bool { return false }
func (noPrompts) ChooseRow(_ context.Context, _ string, playable []int) int {
	return playable[0]
}

// Seat - One player at the table with up to three rows of cards
type Seat struct {
	PlayerID string
	Rows     []cards.Hand
	// Money is what the player could spend when sitting down
	Money int
	// Balance is the net result of this game so far
	Balance int
}

// Available - Money the player still has to put on the table
func (s *Seat) Available() int {
	return s.Money + s.Balance
}

// Valid - At least one row is still under 22
func (s *Seat) Valid() bool {
	return len(s.Playable()) > 0
}

// Playable - Indexes of the rows that haven't busted
func (s *Seat) Playable() []int {
	var rows []int
	for i, row := range s.Rows {
		if row.Valid() {
			rows = append(rows, i)
		}
	}
	return rows
}

// Natural - A single row holding a blackjack
func (s *Seat) Natural() bool {
	return len(s.Rows) == 1 && s.Rows[0].IsBlackjack()
}

func (s *Seat) canSplit(card cards.Card, stake int) bool {
	if len(s.Rows) >= maxRows || s.Available() < stake {
		return false
	}
	for _, row := range s.Rows {
		if row.Contains(card) {
			return true
		}
	}
	return false
}

// Blackjack - Players take turns against the dealer, each paying the same stake
type Blackjack struct {
	Stake  int
	Dealer cards.Hand
	Seats  []*Seat

	shoe     *cards.Shoe
	prompter Prompter
	turn     int
	phase    Phase
}

// NewBlackjack seats the players in order. money holds each player's spendable money.
// Every seat starts down one stake.
func NewBlackjack(players []string, money map[string]int, stake int, shoe *cards.Shoe, prompter Prompter) *Blackjack {
	if prompter == nil {
		prompter = noPrompts{}
	}
	b := &Blackjack{Stake: stake, shoe: shoe, prompter: prompter}
	for _, id := range players {
		b.Seats = append(b.Seats, &Seat{
			PlayerID: id,
			Rows:     []cards.Hand{{}},
			Money:    money[id],
			Balance:  -stake,
		})
	}
	return b
}

// Deal gives the dealer one card then every player two
func (b *Blackjack) Deal() {
	if b.phase != Dealing {
		return
	}
	b.Dealer = append(b.Dealer, b.shoe.Draw())
	for _, seat := range b.Seats {
		seat.Rows[0] = append(seat.Rows[0], b.shoe.Draw(), b.shoe.Draw())
	}
	b.phase = PlayerTurns
	if len(b.Seats) == 0 {
		b.finish()
	}
}

func (b *Blackjack) Phase() Phase {
	return b.phase
}

// Current - Player whose turn it is, empty outside of player turns
func (b *Blackjack) Current() string {
	if b.phase != PlayerTurns {
		return ""
	}
	return b.Seats[b.turn].PlayerID
}

func (b *Blackjack) seat(playerID string) (*Seat, error) {
	if b.phase != PlayerTurns || playerID != b.Current() {
		return nil, ErrInvalidMove
	}
	return b.Seats[b.turn], nil
}

// Hit draws a card for the current player. It may ask to split or which row to play.
func (b *Blackjack) Hit(ctx context.Context, playerID string) error {
	seat, err := b.seat(playerID)
	if err != nil {
		return err
	}

	card := b.shoe.Draw()
	if seat.canSplit(card, b.Stake) && b.prompter.ConfirmSplit(ctx, playerID, card) {
		seat.Rows = append(seat.Rows, cards.Hand{card})
		seat.Balance -= b.Stake
		return nil
	}

	playable := seat.Playable()
	if len(playable) == 0 {
		b.advance()
		return nil
	}
	row := playable[0]
	if len(playable) > 1 {
		if chosen := b.prompter.ChooseRow(ctx, playerID, playable); slices.Contains(playable, chosen) {
			row = chosen
		}
	}
	seat.Rows[row] = append(seat.Rows[row], card)

	if !seat.Valid() {
		b.advance()
	}
	return nil
}

// Stand ends the current player's turn
func (b *Blackjack) Stand(playerID string) error {
	if _, err := b.seat(playerID); err != nil {
		return err
	}
	b.advance()
	return nil
}

func (b *Blackjack) advance() {
	b.turn++
	if b.turn >= len(b.Seats) {
		b.finish()
	}
}

func (b *Blackjack) finish() {
	b.phase = DealerTurn
	for b.Dealer.Value() < dealerStandOn {
		b.Dealer = append(b.Dealer, b.shoe.Draw())
	}
	b.settle()
}

// DealerScore - 0 when busted, 22 for a natural, otherwise the hand value
func (b *Blackjack) DealerScore() int {
	switch {
	case !b.Dealer.Valid():
		return 0
	case b.Dealer.IsBlackjack():
		return naturalScore
	default:
		return b.Dealer.Value()
	}
}

func (b *Blackjack) settle() {
	score := b.DealerScore()
	for _, seat := range b.Seats {
		if seat.Natural() {
			if score == naturalScore {
				seat.Balance += b.Stake
			} else {
				seat.Balance += int(math.Round(naturalPayout * float64(b.Stake)))
			}
			continue
		}
		for _, row := range seat.Rows {
			if !row.Valid() {
				continue
			}
			switch value := row.Value(); {
			case value == score:
				seat.Balance += b.Stake
			case value > score:
				seat.Balance += 2 * b.Stake
			}
		}
	}
	b.phase = Settled
}

// Results - Net money change of every player in seat order, only meaningful once settled
func (b *Blackjack) Results() []history.PlayerResult {
	results := make([]history.PlayerResult, len(b.Seats))
	for i, seat := range b.Seats {
		results[i] = history.PlayerResult{PlayerID: seat.PlayerID, Delta: seat.Balance}
	}
	return results
}
