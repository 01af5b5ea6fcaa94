package games

import (
	"fmt"
	"math/rand"
	"strings"
)

// Cell values besides neighbour counts
const (
	Mine     = -1
	Revealed = -2
)

// Difficulty - Board size and mine count
type Difficulty struct {
	Mines   int
	Rows    int
	Columns int
}

// Difficulties by name
var Difficulties = map[string]Difficulty{
	"easy":   {Mines: 10, Rows: 8, Columns: 8},
	"medium": {Mines: 40, Rows: 16, Columns: 16},
	"hard":   {Mines: 99, Rows: 32, Columns: 16},
}

// cells per message, Discord stops rendering emoji past that
const maxCellsPerPage = 99

var (
	mineEmoji     = "||💣||"
	revealedEmoji = "0️⃣"
)

func countEmoji(n int) string {
	return fmt.Sprintf("||%d️⃣||", n)
}

// Minefield - A minesweeper board with one zero cell revealed
type Minefield struct {
	Difficulty
	// Grid[row][column] holds Mine, Revealed or the count of neighbouring mines
	Grid      [][]int
	RevealRow int
	RevealCol int
}

// Generate builds a board for the named difficulty. Mines never touch the revealed cell.
func Generate(difficulty string, rng *rand.Rand) (*Minefield, error) {
	d, ok := Difficulties[strings.ToLower(strings.TrimSpace(difficulty))]
	if !ok {
		return nil, ErrUnknownDifficulty
	}

	m := &Minefield{Difficulty: d, Grid: make([][]int, d.Rows)}
	for i := range m.Grid {
		m.Grid[i] = make([]int, d.Columns)
	}
	m.RevealRow, m.RevealCol = rng.Intn(d.Rows), rng.Intn(d.Columns)

	var candidates [][2]int
	for i := 0; i < d.Rows; i++ {
		for j := 0; j < d.Columns; j++ {
			if abs(i-m.RevealRow) > 1 || abs(j-m.RevealCol) > 1 {
				candidates = append(candidates, [2]int{i, j})
			}
		}
	}
	rng.Shuffle(len(candidates), func(a, b int) {
		candidates[a], candidates[b] = candidates[b], candidates[a]
	})

	for _, c := range candidates[:d.Mines] {
		m.Grid[c[0]][c[1]] = Mine
		for _, n := range m.neighbours(c[0], c[1]) {
			if m.Grid[n[0]][n[1]] != Mine {
				m.Grid[n[0]][n[1]]++
			}
		}
	}
	m.Grid[m.RevealRow][m.RevealCol] = Revealed
	return m, nil
}

func (m *Minefield) neighbours(row, col int) [][2]int {
	var cells [][2]int
	for i := row - 1; i <= row+1; i++ {
		for j := col - 1; j <= col+1; j++ {
			if (i == row && j == col) || i < 0 || j < 0 || i >= m.Rows || j >= m.Columns {
				continue
			}
			cells = append(cells, [2]int{i, j})
		}
	}
	return cells
}

// CountMines - Number of mines on the board
func (m *Minefield) CountMines() int {
	n := 0
	for _, row := range m.Grid {
		for _, v := range row {
			if v == Mine {
				n++
			}
		}
	}
	return n
}

// Pages renders the board as messages, every cell hidden behind a spoiler except the revealed one
func (m *Minefield) Pages() []string {
	rowsPerPage := maxCellsPerPage / m.Columns
	var pages []string
	for start := 0; start < m.Rows; start += rowsPerPage {
		end := min(start+rowsPerPage, m.Rows)
		lines := make([]string, 0, end-start)
		for _, row := range m.Grid[start:end] {
			cells := make([]string, len(row))
			for j, v := range row {
				switch v {
				case Mine:
					cells[j] = mineEmoji
				case Revealed:
					cells[j] = revealedEmoji
				default:
					cells[j] = countEmoji(v)
				}
			}
			lines = append(lines, strings.Join(cells, " "))
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	if len(pages) > 0 {
		pages[0] = fmt.Sprintf("Total number of mines: %d\n\n%s", m.Mines, pages[0])
	}
	return pages
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
