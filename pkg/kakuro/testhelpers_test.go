package kakuro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// board6x6 is a classic 6x6 puzzle with a solution.
var board6x6 = [][]string{
	{"#", "7/", "13/", "16/", "#", "#"},
	{"/10", "?", "?", "?", "29/", "#"},
	{"/28", "?", "?", "?", "?", "6/"},
	{"/4", "?", "?", "4/12", "?", "?"},
	{"#", "/11", "?", "?", "?", "?"},
	{"#", "#", "/10", "?", "?", "?"},
}

// board7x7 is a 7x7 puzzle with 16 blank cells and a solution.
var board7x7 = [][]string{
	{"#", "#", "16/", "7/", "#", "#", "#"},
	{"#", "5/14", "?", "?", "27/", "#", "#"},
	{"/14", "?", "?", "?", "?", "11/", "#"},
	{"/4", "?", "?", "3/16", "?", "?", "#"},
	{"#", "/17", "?", "?", "?", "?", "#"},
	{"#", "#", "/4", "?", "?", "#", "#"},
	{"#", "#", "#", "#", "#", "#", "#"},
}

// board8x8 and board9x9 are larger classic puzzles used for end-to-end
// solving tests.
var board8x8 = [][]string{
	{"#", "10/", "7/", "#", "16/", "6/", "#", "#"},
	{"/4", "?", "?", "/4", "?", "?", "27/", "8/"},
	{"/9", "?", "?", "20/29", "?", "?", "?", "?"},
	{"#", "/10", "?", "?", "?", "10/9", "?", "?"},
	{"#", "#", "8/10", "?", "?", "?", "?", "#"},
	{"#", "/5", "?", "?", "9/10", "?", "?", "#"},
	{"#", "/28", "?", "?", "?", "?", "#", "#"},
	{"#", "#", "#", "/3", "?", "?", "#", "#"},
}

var board9x9 = [][]string{
	{"#", "#", "10/", "6/", "#", "#", "11/", "7/", "#"},
	{"#", "/4", "?", "?", "11/", "/6", "?", "?", "3/"},
	{"#", "3/8", "?", "?", "?", "/6", "?", "?", "?"},
	{"/10", "?", "?", "?", "?", "10/7", "?", "?", "?"},
	{"/3", "?", "?", "17/6", "?", "?", "?", "15/", "4/"},
	{"#", "16/", "23/6", "?", "?", "?", "6/3", "?", "?"},
	{"/24", "?", "?", "?", "/10", "?", "?", "?", "?"},
	{"/23", "?", "?", "?", "/6", "?", "?", "?", "#"},
	{"#", "/8", "?", "?", "#", "/12", "?", "?", "#"},
}

// mustGraph parses a board grid or fails the test.
func mustGraph(t *testing.T, grid [][]string) *ConstraintGraph {
	t.Helper()
	g, err := ParseBoard(grid)
	require.NoError(t, err)
	return g
}

// twoCellRun builds a graph holding a single horizontal run of two cells.
func twoCellRun(t *testing.T, target int) *ConstraintGraph {
	t.Helper()
	g, err := BuildGraph([]RunSpec{{
		Dir:    Horizontal,
		Target: target,
		Cells:  []Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
	}})
	require.NoError(t, err)
	return g
}

// unsatGraph builds a well-formed but unsatisfiable graph: the shared cell
// must be in {1,3} for the horizontal run and {7,9} for the vertical one.
func unsatGraph(t *testing.T) *ConstraintGraph {
	t.Helper()
	g, err := BuildGraph([]RunSpec{
		{Dir: Horizontal, Target: 4, Cells: []Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}}},
		{Dir: Vertical, Target: 16, Cells: []Cell{{Row: 0, Col: 0}, {Row: 1, Col: 0}}},
	})
	require.NoError(t, err)
	return g
}

// verifySolution checks every run constraint against a solution.
func verifySolution(t *testing.T, g *ConstraintGraph, sol Solution) {
	t.Helper()
	require.Len(t, sol, g.VariableCount(), "solution must cover every blank cell")
	for _, run := range g.Runs() {
		sum := 0
		seen := Domain(0)
		for _, vid := range run.Vars {
			cell := g.Variables()[vid].Cell
			v, ok := sol[cell]
			require.True(t, ok, "cell %s unassigned", cell)
			require.True(t, v >= 1 && v <= 9, "cell %s has out-of-range value %d", cell, v)
			require.False(t, seen.Has(v), "digit %d repeated in %s run %d", v, run.Dir, run.ID)
			seen |= SingleDigit(v)
			sum += v
		}
		require.Equal(t, run.Target, sum, "%s run %d sums to %d, want %d", run.Dir, run.ID, sum, run.Target)
	}
}
