package kakuro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectVariableStaticOrder(t *testing.T) {
	g := mustGraph(t, board7x7)
	doms := g.InitialDomains()
	assigned := make([]int, g.VariableCount())

	assert.Equal(t, 0, selectVariable(g, doms, assigned, false))
	assigned[0] = 5
	assert.Equal(t, 1, selectVariable(g, doms, assigned, false))
}

func TestSelectVariableMRV(t *testing.T) {
	g := mustGraph(t, board7x7)
	doms := g.InitialDomains()
	assigned := make([]int, g.VariableCount())

	doms[3] = DomainOf(4, 7)
	doms[6] = DomainOf(1, 2, 5)
	assert.Equal(t, 3, selectVariable(g, doms, assigned, true))

	assigned[3] = 4
	assert.Equal(t, 6, selectVariable(g, doms, assigned, true))
}

func TestSelectVariableTieBreakBySlack(t *testing.T) {
	// Two runs: one of 2 cells, one of 4. All domains equal, so the tie
	// breaks toward a cell in the shorter (denser) run.
	g, err := BuildGraph([]RunSpec{
		{Dir: Horizontal, Target: 10, Cells: []Cell{{0, 0}, {0, 1}, {0, 2}, {0, 3}}},
		{Dir: Horizontal, Target: 4, Cells: []Cell{{1, 0}, {1, 1}}},
	})
	require.NoError(t, err)
	doms := g.InitialDomains()
	assigned := make([]int, g.VariableCount())

	picked := selectVariable(g, doms, assigned, true)
	cell := g.Variables()[picked].Cell
	assert.Equal(t, 1, cell.Row, "tie must break toward the 2-cell run")
}

func TestSelectVariableAllAssigned(t *testing.T) {
	g := twoCellRun(t, 4)
	doms := []Domain{SingleDigit(1), SingleDigit(3)}
	assigned := []int{1, 3}
	assert.Equal(t, -1, selectVariable(g, doms, assigned, true))
	assert.Equal(t, -1, selectVariable(g, doms, assigned, false))
}

func TestOrderValues(t *testing.T) {
	d := DomainOf(2, 5, 8)
	assert.Equal(t, []int{2, 5, 8}, orderValues(d, ValueOrderAsc))
	assert.Equal(t, []int{8, 5, 2}, orderValues(d, ValueOrderDesc))
	assert.Empty(t, orderValues(Domain(0), ValueOrderAsc))
}

func TestValueOrderString(t *testing.T) {
	assert.Equal(t, "ascending", ValueOrderAsc.String())
	assert.Equal(t, "descending", ValueOrderDesc.String())
}
