package games

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, g *Connect4, columns ...int) {
	t.Helper()
	for _, c := range columns {
		require.NoError(t, g.Drop(g.Current(), c))
	}
}

func TestConnect4Vertical(t *testing.T) {
	g := NewConnect4("a", "b")
	play(t, g, 0, 1, 0, 1, 0, 1)
	assert.True(t, g.Running())
	play(t, g, 0)
	assert.False(t, g.Running())
	assert.Equal(t, "a", g.Winner())
}

func TestConnect4Horizontal(t *testing.T) {
	g := NewConnect4("a", "b")
	play(t, g, 0, 0, 1, 1, 2, 2, 3)
	assert.Equal(t, "a", g.Winner())
}

func TestConnect4Diagonals(t *testing.T) {
	g := NewConnect4("a", "b")
	// a climbs from column 0 to column 3
	play(t, g, 0, 1, 1, 2, 2, 3, 2, 3, 3, 6, 3)
	assert.Equal(t, "a", g.Winner())

	g = NewConnect4("a", "b")
	// a falls from column 0 to column 3
	play(t, g, 3, 2, 2, 1, 1, 0, 1, 0, 0, 6, 0)
	assert.Equal(t, "a", g.Winner())
}

func TestConnect4SecondPlayerWins(t *testing.T) {
	g := NewConnect4("a", "b")
	play(t, g, 6, 0, 6, 1, 5, 2, 4, 3)
	assert.Equal(t, "b", g.Winner())
	assert.ErrorIs(t, g.Drop("a", 5), ErrInvalidMove)
}

func TestConnect4InvalidMoves(t *testing.T) {
	g := NewConnect4("a", "b")
	assert.ErrorIs(t, g.Drop("b", 0), ErrInvalidMove)
	assert.ErrorIs(t, g.Drop("a", -1), ErrInvalidMove)
	assert.ErrorIs(t, g.Drop("a", Connect4Columns), ErrInvalidMove)

	// fill column 0 alternating, nobody lines up four vertically
	play(t, g, 0, 0, 0, 0, 0, 0)
	before := g.Render()
	current := g.Current()
	assert.ErrorIs(t, g.Drop(current, 0), ErrInvalidMove)
	assert.Equal(t, before, g.Render())
	assert.Equal(t, current, g.Current())
}

func TestConnect4Stop(t *testing.T) {
	g := NewConnect4("a", "b")
	play(t, g, 3)
	g.Stop()
	assert.False(t, g.Running())
	assert.Empty(t, g.Winner())
	assert.ErrorIs(t, g.Drop("b", 3), ErrInvalidMove)
}

func TestConnect4Render(t *testing.T) {
	g := NewConnect4("a", "b")
	play(t, g, 0, 6)
	lines := strings.Split(g.Render(), "\n")
	require.Len(t, lines, Connect4Rows)
	assert.Equal(t, "🟢⬛⬛⬛⬛⬛🔴", lines[Connect4Rows-1])
	assert.Equal(t, 1, g.Cell(0, 0))
	assert.Equal(t, 2, g.Cell(6, 0))
}
