package games

import (
	"strings"
)

// Board size
const (
	Connect4Columns = 7
	Connect4Rows    = 6
)

var connect4Marks = []string{"⬛", "🟢", "🔴"}

// Connect4 - Two players drop marks into a 7x6 grid until someone lines up four
type Connect4 struct {
	// board[column][row], row 0 is the bottom. 0 is empty, 1 and 2 are the players
	board   [Connect4Columns][Connect4Rows]int
	players [2]string
	turn    int
	running bool
	winner  string
}

func NewConnect4(first, second string) *Connect4 {
	return &Connect4{players: [2]string{first, second}, running: true}
}

// Current - Whose turn it is
func (g *Connect4) Current() string {
	return g.players[g.turn]
}

func (g *Connect4) Running() bool {
	return g.running
}

// Winner - Empty when the game was stopped or is still going
func (g *Connect4) Winner() string {
	return g.winner
}

// Cell - Owner of a cell: 0 empty, 1 first player, 2 second player
func (g *Connect4) Cell(column, row int) int {
	return g.board[column][row]
}

// Drop - Put the player's mark in the lowest free cell of the column
func (g *Connect4) Drop(playerID string, column int) error {
	if !g.running || playerID != g.Current() || column < 0 || column >= Connect4Columns {
		return ErrInvalidMove
	}

	row := -1
	for r := 0; r < Connect4Rows; r++ {
		if g.board[column][r] == 0 {
			row = r
			break
		}
	}
	if row < 0 {
		return ErrInvalidMove
	}

	mark := g.turn + 1
	g.board[column][row] = mark
	g.turn = (g.turn + 1) % len(g.players)

	if g.hasFour(mark) {
		g.winner = playerID
		g.running = false
	}
	return nil
}

// Stop - End the game without a winner
func (g *Connect4) Stop() {
	g.running = false
}

// horizontal, vertical and both diagonals
var directions = [][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

func (g *Connect4) hasFour(mark int) bool {
	for c := 0; c < Connect4Columns; c++ {
		for r := 0; r < Connect4Rows; r++ {
			for _, d := range directions {
				if g.line(c, r, d, mark) {
					return true
				}
			}
		}
	}
	return false
}

func (g *Connect4) line(column, row int, d [2]int, mark int) bool {
	for i := 0; i < 4; i++ {
		c, r := column+d[0]*i, row+d[1]*i
		if c < 0 || c >= Connect4Columns || r < 0 || r >= Connect4Rows || g.board[c][r] != mark {
			return false
		}
	}
	return true
}

// Render - The board top row first
func (g *Connect4) Render() string {
	lines := make([]string, 0, Connect4Rows)
	for r := Connect4Rows - 1; r >= 0; r-- {
		var line strings.Builder
		for c := 0; c < Connect4Columns; c++ {
			line.WriteString(connect4Marks[g.board[c][r]])
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
