package kakuro

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoard7x7(t *testing.T) {
	g, err := ParseBoard(board7x7)
	require.NoError(t, err)
	assert.Equal(t, 16, g.VariableCount())
	assert.Equal(t, 12, g.RunCount())

	// Cell (1,2) sits in the 2-cell horizontal run of the "5/14" clue at
	// (1,1) and in the 4-cell vertical run of the "16/" clue at (0,2),
	// which spans rows 1 through 4 of column 2.
	v := g.VariableAt(Cell{Row: 1, Col: 2})
	require.NotNil(t, v)
	require.Len(t, v.Runs, 2)
	targets := map[Direction]int{}
	lengths := map[Direction]int{}
	for _, rid := range v.Runs {
		run := g.Runs()[rid]
		targets[run.Dir] = run.Target
		lengths[run.Dir] = run.Len()
	}
	assert.Equal(t, 14, targets[Horizontal])
	assert.Equal(t, 2, lengths[Horizontal])
	assert.Equal(t, 16, targets[Vertical])
	assert.Equal(t, 4, lengths[Vertical])
}

func TestParseBoardMalformed(t *testing.T) {
	cases := []struct {
		name string
		grid [][]string
	}{
		{
			name: "empty board",
			grid: nil,
		},
		{
			name: "ragged rows",
			grid: [][]string{
				{"#", "3/"},
				{"/3", "?", "?"},
			},
		},
		{
			name: "clue without blanks",
			grid: [][]string{
				{"#", "#"},
				{"/4", "#"},
			},
		},
		{
			name: "uncovered blank",
			grid: [][]string{
				{"#", "#"},
				{"#", "?"},
			},
		},
		{
			name: "unrecognized marker",
			grid: [][]string{
				{"#", "wat"},
				{"/4", "?"},
			},
		},
		{
			name: "clue with no sums",
			grid: [][]string{
				{"#", "/"},
				{"/4", "?"},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBoard(tc.grid)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedPuzzle)
		})
	}
}

func TestParseBoardInfeasibleRun(t *testing.T) {
	// A 5-cell span with target 5: the minimum distinct sum for 5 cells
	// is 15, so the board is structurally invalid.
	grid := [][]string{
		{"#", "#", "#", "#", "#", "#"},
		{"/5", "?", "?", "?", "?", "?"},
	}
	_, err := ParseBoard(grid)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPuzzle)
}

func TestParseBoardText(t *testing.T) {
	g, err := ParseBoardText(`
		#   16/ 3/
		/8  ?   ?
		/11 ?   ?
	`)
	require.NoError(t, err)
	assert.Equal(t, 4, g.VariableCount())
	assert.Equal(t, 4, g.RunCount())
}

func TestLoadBoardFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	data := []byte(`name: mini
grid:
  - ["#", "16/", "3/"]
  - ["/8", "?", "?"]
  - ["/11", "?", "?"]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	board, g, err := LoadBoardFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mini", board.Name)
	assert.Equal(t, 4, g.VariableCount())
}

func TestLoadBoardFileErrors(t *testing.T) {
	_, _, err := LoadBoardFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(": not yaml ["), 0o644))
	_, _, err = LoadBoardFile(path)
	require.Error(t, err)
}

func TestWallMarkers(t *testing.T) {
	for _, m := range []string{"", "#", ".", "x", "X"} {
		assert.True(t, isWall(m), "marker %q", m)
	}
	assert.False(t, isWall("?"))
	assert.False(t, isWall("4/"))
}
