package games

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	for name, d := range Difficulties {
		for seed := int64(0); seed < 20; seed++ {
			m, err := Generate(name, rand.New(rand.NewSource(seed)))
			require.NoError(t, err)

			assert.Len(t, m.Grid, d.Rows)
			assert.Equal(t, d.Mines, m.CountMines(), name)
			assert.Equal(t, Revealed, m.Grid[m.RevealRow][m.RevealCol])

			for i, row := range m.Grid {
				assert.Len(t, row, d.Columns)
				for j, v := range row {
					if v == Mine {
						near := abs(i-m.RevealRow) <= 1 && abs(j-m.RevealCol) <= 1
						assert.False(t, near, "mine next to the revealed cell")
						continue
					}
					if v == Revealed {
						continue
					}
					count := 0
					for _, n := range m.neighbours(i, j) {
						if m.Grid[n[0]][n[1]] == Mine {
							count++
						}
					}
					assert.Equal(t, count, v)
				}
			}
		}
	}
}

func TestGenerateDifficultyName(t *testing.T) {
	m, err := Generate(" Medium ", rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Equal(t, 40, m.Mines)

	_, err = Generate("impossible", rand.New(rand.NewSource(3)))
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestPages(t *testing.T) {
	m, err := Generate("easy", rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	pages := m.Pages()
	require.Len(t, pages, 1)
	assert.True(t, strings.HasPrefix(pages[0], "Total number of mines: 10\n\n"))
	assert.Equal(t, 10, strings.Count(pages[0], "💣"))
	assert.Equal(t, 1, strings.Count(pages[0], revealedEmoji)-strings.Count(pages[0], "||0️⃣||"))

	m, err = Generate("hard", rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	pages = m.Pages()
	// six rows of sixteen fit under the per-message limit
	require.Len(t, pages, 6)
	rows := 0
	for i, page := range pages {
		assert.Equal(t, i == 0, strings.HasPrefix(page, "Total number of mines: 99"))
		for _, line := range strings.Split(page, "\n") {
			if strings.Count(line, " ") == m.Columns-1 {
				rows++
				assert.LessOrEqual(t, len(strings.Fields(line)), maxCellsPerPage)
			}
		}
	}
	assert.Equal(t, m.Rows, rows)
}
