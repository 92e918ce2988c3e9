package kakuro

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforceArcConsistencyTightRun(t *testing.T) {
	g := twoCellRun(t, 4)
	doms, err := EnforceArcConsistency(g, g.InitialDomains())
	require.NoError(t, err)
	for _, d := range doms {
		assert.Equal(t, DomainOf(1, 3), d, "a 2-cell run summing to 4 admits only 1 and 3")
	}
}

func TestEnforceArcConsistencyFullHouse(t *testing.T) {
	cells := make([]Cell, 9)
	for i := range cells {
		cells[i] = Cell{Row: 0, Col: i}
	}
	g, err := BuildGraph([]RunSpec{{Dir: Horizontal, Target: 45, Cells: cells}})
	require.NoError(t, err)

	doms, err := EnforceArcConsistency(g, g.InitialDomains())
	require.NoError(t, err)
	for _, d := range doms {
		assert.Equal(t, FullDomain, d, "every digit appears somewhere in a 9-cell full run")
	}
}

func TestEnforceArcConsistencyWipeout(t *testing.T) {
	g := unsatGraph(t)
	_, err := EnforceArcConsistency(g, g.InitialDomains())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDomainWipeout)
}

func TestEnforceArcConsistencyIdempotent(t *testing.T) {
	g := mustGraph(t, board7x7)
	once, err := EnforceArcConsistency(g, g.InitialDomains())
	require.NoError(t, err)
	twice, err := EnforceArcConsistency(g, once)
	require.NoError(t, err)
	assert.Equal(t, once, twice, "a fixpoint must not shrink further")
}

// After one pass, every surviving value of every variable must still have
// support in each of its runs. Pruning a shared cell can strip support from
// members of its crossing run, so the worklist has to chase removals across
// run boundaries, not just within the run that triggered them.
func TestEnforceArcConsistencyReachesFixpoint(t *testing.T) {
	for name, grid := range map[string][][]string{
		"6x6": board6x6,
		"7x7": board7x7,
		"8x8": board8x8,
		"9x9": board9x9,
	} {
		t.Run(name, func(t *testing.T) {
			g := mustGraph(t, grid)
			doms, err := EnforceArcConsistency(g, g.InitialDomains())
			require.NoError(t, err)

			for _, v := range g.Variables() {
				for _, rid := range v.Runs {
					run := g.Runs()[rid]
					var others []Domain
					for _, vid := range run.Vars {
						if vid != v.ID {
							others = append(others, doms[vid])
						}
					}
					doms[v.ID].Iterate(func(val int) {
						ok := false
						for _, combo := range Combinations(run.Len(), run.Target) {
							if !combo.Has(val) {
								continue
							}
							if hasSupport(others, combo.Remove(val)) {
								ok = true
								break
							}
						}
						assert.True(t, ok, "value %d of %s unsupported in %s run %d",
							val, v.Cell, run.Dir, run.ID)
					})
				}
			}
		})
	}
}

func TestEnforceArcConsistencyDoesNotMutateInput(t *testing.T) {
	g := twoCellRun(t, 4)
	in := g.InitialDomains()
	_, err := EnforceArcConsistency(g, in)
	require.NoError(t, err)
	for _, d := range in {
		assert.Equal(t, FullDomain, d)
	}
}

func TestEnforceArcConsistencySound(t *testing.T) {
	g := mustGraph(t, board7x7)
	doms, err := EnforceArcConsistency(g, g.InitialDomains())
	require.NoError(t, err)

	res, err := NewSolver(g, DefaultSolverConfig()).Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusSolved, res.Status)
	sol := res.First()
	require.NotNil(t, sol)

	for _, v := range g.Variables() {
		assert.True(t, doms[v.ID].Has(sol[v.Cell]),
			"pruning removed solution value %d of %s", sol[v.Cell], v.Cell)
	}
}

func TestPropagatorUndoViaTrail(t *testing.T) {
	g := mustGraph(t, board7x7)
	doms := g.InitialDomains()
	before := make([]Domain, len(doms))
	copy(before, doms)

	var tr trail
	var stats SolverStats
	p := newPropagator(g, doms, &tr, &stats)
	m := tr.mark()
	p.enqueueAll()
	require.Equal(t, -1, p.run(), "a solvable board must survive preprocessing")
	assert.Greater(t, tr.size(), 0, "tight clues must prune something")

	tr.undoTo(m, doms)
	assert.Equal(t, before, doms, "undo must restore every domain exactly")
}
