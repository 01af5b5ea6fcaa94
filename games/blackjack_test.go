package games

import (
	"context"
	"testing"

	"github.com/Jaggernaut555/chaoticbot/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spades = 0

func c(rank int) cards.Card {
	return cards.New(rank, spades)
}

type scriptedPrompter struct {
	split      bool
	row        int
	splitAsked []cards.Card
	rowsAsked  [][]int
}

func (p *scriptedPrompter) ConfirmSplit(_ context.Context, _ string, card cards.Card) bool {
	p.splitAsked = append(p.splitAsked, card)
	return p.split
}

func (p *scriptedPrompter) ChooseRow(_ context.Context, _ string, playable []int) int {
	p.rowsAsked = append(p.rowsAsked, playable)
	return p.row
}

func table(stake int, prompter Prompter, draws ...cards.Card) *Blackjack {
	b := NewBlackjack([]string{"p1"}, map[string]int{"p1": 100}, stake, cards.NewShoeFrom(draws...), prompter)
	b.Deal()
	return b
}

func TestDealOrder(t *testing.T) {
	b := NewBlackjack([]string{"p1", "p2"}, map[string]int{"p1": 10, "p2": 20}, 5,
		cards.NewShoeFrom(c(2), c(3), c(4), c(5), c(6)), nil)
	assert.Equal(t, Dealing, b.Phase())
	b.Deal()

	assert.Equal(t, cards.Hand{c(2)}, b.Dealer)
	assert.Equal(t, cards.Hand{c(3), c(4)}, b.Seats[0].Rows[0])
	assert.Equal(t, cards.Hand{c(5), c(6)}, b.Seats[1].Rows[0])
	assert.Equal(t, -5, b.Seats[0].Balance)
	assert.Equal(t, 15, b.Seats[1].Available())
	assert.Equal(t, PlayerTurns, b.Phase())
	assert.Equal(t, "p1", b.Current())
}

func TestTurnOrder(t *testing.T) {
	b := NewBlackjack([]string{"p1", "p2"}, nil, 5,
		cards.NewShoeFrom(c(10), c(10), c(8), c(10), c(7), c(10)), nil)
	b.Deal()
	ctx := context.Background()

	assert.ErrorIs(t, b.Hit(ctx, "p2"), ErrInvalidMove)
	assert.ErrorIs(t, b.Stand("p2"), ErrInvalidMove)
	require.NoError(t, b.Stand("p1"))
	assert.Equal(t, "p2", b.Current())
	require.NoError(t, b.Stand("p2"))
	assert.Equal(t, Settled, b.Phase())
	assert.Empty(t, b.Current())
	assert.ErrorIs(t, b.Hit(ctx, "p1"), ErrInvalidMove)
}

func TestDealerDrawsTo17(t *testing.T) {
	b := table(5, nil, c(6), c(10), c(8), c(5), c(2), c(4), c(10))
	require.NoError(t, b.Stand("p1"))

	assert.Equal(t, cards.Hand{c(6), c(5), c(2), c(4)}, b.Dealer)
	assert.Equal(t, 17, b.DealerScore())
	// 18 beats 17
	assert.Equal(t, 5, b.Seats[0].Balance)
}

func TestBustedRowLoses(t *testing.T) {
	b := table(5, nil, c(6), c(10), c(6), c(13), c(12), c(10))
	require.NoError(t, b.Hit(context.Background(), "p1"))

	// busting moves play on without a stand
	assert.Equal(t, Settled, b.Phase())
	assert.True(t, b.Dealer.Value() > 21)
	assert.Equal(t, 0, b.DealerScore())
	assert.Equal(t, -5, b.Seats[0].Balance)
}

func TestDealerBustPaysDouble(t *testing.T) {
	b := table(5, nil, c(10), c(10), c(8), c(6), c(13))
	require.NoError(t, b.Stand("p1"))
	assert.Equal(t, 0, b.DealerScore())
	assert.Equal(t, 5, b.Seats[0].Balance)
}

func TestEqualTotalsPush(t *testing.T) {
	b := table(5, nil, c(10), c(10), c(8), c(8))
	require.NoError(t, b.Stand("p1"))
	assert.Equal(t, 18, b.DealerScore())
	assert.Equal(t, 0, b.Seats[0].Balance)
}

func TestDealerNaturalBeats21(t *testing.T) {
	b := table(5, nil, c(1), c(10), c(5), c(6), c(13))
	require.NoError(t, b.Hit(context.Background(), "p1"))
	require.NoError(t, b.Stand("p1"))
	assert.Equal(t, 21, b.Seats[0].Rows[0].Value())
	assert.Equal(t, naturalScore, b.DealerScore())
	assert.Equal(t, -5, b.Seats[0].Balance)
}

func TestNaturalPayouts(t *testing.T) {
	b := table(5, nil, c(10), c(1), c(13), c(12))
	require.True(t, b.Seats[0].Natural())
	require.NoError(t, b.Stand("p1"))
	assert.Equal(t, 8, b.Seats[0].Balance)

	b = table(1, nil, c(10), c(1), c(13), c(12))
	require.NoError(t, b.Stand("p1"))
	// 2.5 rounds away from zero
	assert.Equal(t, 2, b.Seats[0].Balance)

	b = table(5, nil, c(1), c(1), c(13), c(12))
	require.NoError(t, b.Stand("p1"))
	assert.Equal(t, 0, b.Seats[0].Balance)
}

func TestSplit(t *testing.T) {
	p := &scriptedPrompter{split: true, row: 1}
	b := table(5, p, c(5), c(8), c(3), c(8), c(2), c(10), c(2))
	ctx := context.Background()

	require.NoError(t, b.Hit(ctx, "p1"))
	seat := b.Seats[0]
	require.Len(t, seat.Rows, 2)
	assert.Equal(t, cards.Hand{c(8)}, seat.Rows[1])
	assert.Equal(t, -10, seat.Balance)
	assert.Equal(t, []cards.Card{c(8)}, p.splitAsked)

	p.split = false
	require.NoError(t, b.Hit(ctx, "p1"))
	assert.Equal(t, [][]int{{0, 1}}, p.rowsAsked)
	assert.Equal(t, cards.Hand{c(8), c(2)}, seat.Rows[1])

	require.NoError(t, b.Stand("p1"))
	assert.Equal(t, 17, b.DealerScore())
	// 11 and 10 both lose to 17, each row paid its own stake
	assert.Equal(t, -10, seat.Balance)
}

func TestSplitNeedsMoney(t *testing.T) {
	p := &scriptedPrompter{split: true}
	b := NewBlackjack([]string{"p1"}, map[string]int{"p1": 5}, 5,
		cards.NewShoeFrom(c(5), c(8), c(3), c(8)), p)
	b.Deal()
	require.NoError(t, b.Hit(context.Background(), "p1"))
	assert.Empty(t, p.splitAsked)
	assert.Len(t, b.Seats[0].Rows, 1)
}

func TestSplitLimit(t *testing.T) {
	p := &scriptedPrompter{split: true}
	b := table(1, p, c(2), c(2), c(3), c(2), c(2), c(2))
	ctx := context.Background()
	require.NoError(t, b.Hit(ctx, "p1"))
	require.NoError(t, b.Hit(ctx, "p1"))
	require.Len(t, b.Seats[0].Rows, maxRows)

	require.NoError(t, b.Hit(ctx, "p1"))
	assert.Len(t, p.splitAsked, 2)
	assert.Len(t, b.Seats[0].Rows, maxRows)
	assert.Len(t, p.rowsAsked, 1)
}

func TestResults(t *testing.T) {
	b := NewBlackjack([]string{"p1", "p2"}, nil, 5,
		cards.NewShoeFrom(c(10), c(10), c(9), c(10), c(7), c(8)), nil)
	b.Deal()
	require.NoError(t, b.Stand("p1"))
	require.NoError(t, b.Stand("p2"))

	results := b.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "p1", results[0].PlayerID)
	assert.Equal(t, 5, results[0].Delta)
	assert.Equal(t, "p2", results[1].PlayerID)
	assert.Equal(t, -5, results[1].Delta)
}
