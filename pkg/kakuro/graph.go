// Package kakuro: the constraint graph.
//
// A ConstraintGraph is the static model of a puzzle: blank cells become
// variables, contiguous spans with a sum clue become runs. Topology is
// immutable once built; only the solver's own domain and assignment state
// mutates during search, so one graph can back any number of concurrent
// solver instances.
package kakuro

import (
	"errors"
	"fmt"
)

// ErrMalformedPuzzle is returned when a puzzle violates a structural
// invariant before any search is attempted: a run length outside 1..9, a
// target sum no distinct-digit combination can reach, or inconsistent run
// geometry.
var ErrMalformedPuzzle = errors.New("malformed puzzle")

// Direction distinguishes horizontal from vertical runs.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Cell identifies a grid position. Immutable once the graph is built.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Run is a maximal contiguous span of blank cells sharing one sum clue.
type Run struct {
	ID     int
	Dir    Direction
	Target int
	Vars   []int // variable IDs in geometric order
}

// Len returns the number of cells in the run.
func (r *Run) Len() int { return len(r.Vars) }

// Variable is a blank cell of the puzzle. It records only identity and
// membership; the solver owns the mutable domain and assignment.
type Variable struct {
	ID   int
	Cell Cell
	Runs []int // run IDs containing this variable, at most two
}

// RunSpec describes one run for programmatic graph construction.
type RunSpec struct {
	Dir    Direction
	Target int
	Cells  []Cell
}

// ConstraintGraph holds the variables and runs of one puzzle.
type ConstraintGraph struct {
	vars   []Variable
	runs   []Run
	byCell map[Cell]int
}

// BuildGraph constructs and validates a constraint graph from run
// descriptions. Cells shared between runs become a single variable.
// Returns an error wrapping ErrMalformedPuzzle if any run is infeasible.
func BuildGraph(specs []RunSpec) (*ConstraintGraph, error) {
	g := &ConstraintGraph{byCell: make(map[Cell]int)}
	for _, spec := range specs {
		if err := checkRunSpec(spec); err != nil {
			return nil, err
		}
		run := Run{ID: len(g.runs), Dir: spec.Dir, Target: spec.Target}
		for _, c := range spec.Cells {
			id, ok := g.byCell[c]
			if !ok {
				id = len(g.vars)
				g.vars = append(g.vars, Variable{ID: id, Cell: c})
				g.byCell[c] = id
			}
			run.Vars = append(run.Vars, id)
		}
		g.runs = append(g.runs, run)
		for _, vid := range run.Vars {
			g.vars[vid].Runs = append(g.vars[vid].Runs, run.ID)
		}
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func checkRunSpec(spec RunSpec) error {
	n := len(spec.Cells)
	if n < 1 || n > 9 {
		return fmt.Errorf("%w: run length %d outside 1..9", ErrMalformedPuzzle, n)
	}
	if spec.Target < MinRunSum(n) || spec.Target > MaxRunSum(n) {
		return fmt.Errorf("%w: target %d infeasible for run of length %d (achievable %d..%d)",
			ErrMalformedPuzzle, spec.Target, n, MinRunSum(n), MaxRunSum(n))
	}
	seen := make(map[Cell]bool, n)
	for i, c := range spec.Cells {
		if seen[c] {
			return fmt.Errorf("%w: duplicate cell %s in run", ErrMalformedPuzzle, c)
		}
		seen[c] = true
		if i == 0 {
			continue
		}
		prev := spec.Cells[i-1]
		if spec.Dir == Horizontal && (c.Row != prev.Row || c.Col != prev.Col+1) {
			return fmt.Errorf("%w: horizontal run not contiguous at %s", ErrMalformedPuzzle, c)
		}
		if spec.Dir == Vertical && (c.Col != prev.Col || c.Row != prev.Row+1) {
			return fmt.Errorf("%w: vertical run not contiguous at %s", ErrMalformedPuzzle, c)
		}
	}
	return nil
}

// validate checks cross-run invariants: a variable belongs to at most one
// run per direction.
func (g *ConstraintGraph) validate() error {
	for i := range g.vars {
		seen := [2]bool{}
		for _, rid := range g.vars[i].Runs {
			d := g.runs[rid].Dir
			if seen[d] {
				return fmt.Errorf("%w: cell %s belongs to two %s runs",
					ErrMalformedPuzzle, g.vars[i].Cell, d)
			}
			seen[d] = true
		}
	}
	return nil
}

// VariableCount returns the number of blank cells.
func (g *ConstraintGraph) VariableCount() int { return len(g.vars) }

// RunCount returns the number of runs.
func (g *ConstraintGraph) RunCount() int { return len(g.runs) }

// Variables returns all variables. The returned slice must not be modified.
func (g *ConstraintGraph) Variables() []Variable { return g.vars }

// Runs returns all runs. The returned slice must not be modified.
func (g *ConstraintGraph) Runs() []Run { return g.runs }

// VariableAt returns the variable occupying the given cell, or nil.
func (g *ConstraintGraph) VariableAt(c Cell) *Variable {
	if id, ok := g.byCell[c]; ok {
		return &g.vars[id]
	}
	return nil
}

// InitialDomains returns a fresh full-domain slice, one entry per variable.
func (g *ConstraintGraph) InitialDomains() []Domain {
	doms := make([]Domain, len(g.vars))
	for i := range doms {
		doms[i] = FullDomain
	}
	return doms
}

// String returns a short summary of the graph.
func (g *ConstraintGraph) String() string {
	return fmt.Sprintf("ConstraintGraph{variables: %d, runs: %d}", len(g.vars), len(g.runs))
}
