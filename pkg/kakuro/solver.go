// Package kakuro: the search controller.
//
// The controller runs a depth-first search over an explicit decision stack.
// Recursion is deliberately avoided: backjumping unwinds several decision
// levels at once, which an implicit call stack cannot express. Every domain
// mutation goes through the trail, so unwinding to any decision point
// restores every domain exactly.
//
// Each lookahead technique is independently toggleable. The controller is
// correct under every subset: with everything off it degenerates to
// chronological backtracking with direct constraint checks, exactly like
// the textbook algorithm.
package kakuro

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrBudgetExhausted is the cause recorded in Result.Reason when the step
// budget runs out before the search reaches a definitive answer.
var ErrBudgetExhausted = errors.New("step budget exhausted")

// Status is the terminal outcome of a solve.
type Status int

const (
	// StatusSolved means at least one complete assignment satisfying every
	// run constraint was found.
	StatusSolved Status = iota
	// StatusUnsatisfiable means the search space was exhausted without a
	// solution: a proof that none exists.
	StatusUnsatisfiable
	// StatusIncomplete means the step budget or the context expired before
	// a definitive answer.
	StatusIncomplete
)

func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusUnsatisfiable:
		return "unsatisfiable"
	default:
		return "incomplete"
	}
}

// Solution maps each blank cell to its digit.
type Solution map[Cell]int

// Result is the outcome of one solve.
type Result struct {
	Status    Status
	Solutions []Solution // populated when Status == StatusSolved
	Partial   Solution   // assignment at the point of interruption (Incomplete)
	Steps     int        // assignments consumed
	Reason    string     // why the search stopped early (Incomplete)
	Stats     SolverStats
}

// First returns the first solution found, or nil.
func (r *Result) First() Solution {
	if len(r.Solutions) == 0 {
		return nil
	}
	return r.Solutions[0]
}

// SolverConfig enumerates the enabled techniques. Every subset is valid;
// the zero value is plain chronological backtracking in static variable
// order.
type SolverConfig struct {
	// PreprocessAC3 runs one arc-consistency pass before search begins.
	PreprocessAC3 bool
	// MaintainAC re-establishes arc consistency after every assignment (MAC).
	MaintainAC bool
	// ForwardChecking prunes the runs touching each assignment.
	ForwardChecking bool
	// Backjumping enables conflict-directed retreat instead of chronological
	// backtracking. Ignored when more than one solution is requested, since
	// jumping over decision levels is only exhaustive for the first solution.
	Backjumping bool
	// FailFirst selects the minimum-remaining-values variable next instead
	// of static order.
	FailFirst bool
	// ValueOrder is the order candidate digits are tried in.
	ValueOrder ValueOrder
	// StepBudget bounds the number of assignments; 0 means unlimited.
	// Exceeding it yields StatusIncomplete.
	StepBudget int
	// MaxSolutions: 0 or 1 stops at the first solution, n > 1 collects up
	// to n, -1 collects all.
	MaxSolutions int
	// Logger receives debug traces of the search. Nil disables logging.
	Logger *slog.Logger
}

// DefaultSolverConfig enables every technique with ascending value order,
// no budget, and first-solution-wins.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		PreprocessAC3:   true,
		ForwardChecking: true,
		Backjumping:     true,
		FailFirst:       true,
		ValueOrder:      ValueOrderAsc,
	}
}

// Solver solves one constraint graph. Instances own all mutable state
// (domains, trail, conflict sets) and are not safe for concurrent use;
// create one instance per goroutine. The graph and combination tables are
// read-only and may be shared freely.
type Solver struct {
	graph *ConstraintGraph
	cfg   SolverConfig
	log   *slog.Logger

	doms     []Domain
	assigned []int
	tr       trail
	cs       *conflictState
	prop     *propagator
	fc       *forwardChecker
	stats    SolverStats
	steps    int

	culprits varSet // scratch for conflict recording
}

// decision is one level of the explicit search stack.
type decision struct {
	varID   int
	values  []int
	next    int // index of the next value to try
	preMark int // trail mark before the current value's effects
}

// NewSolver creates a solver for the graph with the given configuration.
func NewSolver(graph *ConstraintGraph, cfg SolverConfig) *Solver {
	return &Solver{graph: graph, cfg: cfg, log: cfg.Logger}
}

// Solve runs the configured search. The context bounds the search in wall
// time; cancellation yields an Incomplete result together with the context
// error.
func (s *Solver) Solve(ctx context.Context) (Result, error) {
	start := time.Now()
	defer func() { s.stats.SearchTime = time.Since(start) }()

	if err := s.revalidate(); err != nil {
		return Result{}, err
	}

	n := s.graph.VariableCount()
	s.doms = s.graph.InitialDomains()
	s.assigned = make([]int, n)
	s.tr = trail{}
	s.steps = 0
	s.stats = SolverStats{}

	wantMore := s.cfg.MaxSolutions < 0 || s.cfg.MaxSolutions > 1
	backjump := s.cfg.Backjumping && !wantMore
	if backjump {
		s.cs = newConflictState(n)
		s.culprits = newVarSet(n)
	} else {
		s.cs = nil
	}

	s.prop = newPropagator(s.graph, s.doms, &s.tr, &s.stats)
	if s.cs != nil {
		s.prop.enableCauses(s.cs, s.assigned)
	}
	var csForFC *conflictState
	if s.cs != nil {
		csForFC = s.cs
	}
	s.fc = newForwardChecker(s.graph, s.doms, &s.tr, &s.stats, csForFC, s.assigned)

	if s.log != nil {
		s.log.Debug("solve started",
			"variables", n,
			"runs", s.graph.RunCount(),
			"preprocessAC3", s.cfg.PreprocessAC3,
			"maintainAC", s.cfg.MaintainAC,
			"forwardChecking", s.cfg.ForwardChecking,
			"backjumping", backjump,
			"failFirst", s.cfg.FailFirst,
			"valueOrder", s.cfg.ValueOrder.String())
	}

	if s.cfg.PreprocessAC3 {
		s.prop.enqueueAll()
		if wiped := s.prop.run(); wiped >= 0 {
			if s.log != nil {
				s.log.Debug("preprocessing wipeout", "cell", s.graph.Variables()[wiped].Cell.String())
			}
			return s.finish(Result{Status: StatusUnsatisfiable}), nil
		}
	}

	return s.search(ctx, backjump)
}

// search is the main iterative loop.
func (s *Solver) search(ctx context.Context, backjump bool) (Result, error) {
	var solutions []Solution
	want := s.cfg.MaxSolutions
	if want == 0 {
		want = 1
	}

	stack := make([]decision, 0, s.graph.VariableCount())
	if v := selectVariable(s.graph, s.doms, s.assigned, s.cfg.FailFirst); v == -1 {
		// No blank cells at all.
		return s.finish(Result{Status: StatusSolved, Solutions: []Solution{s.snapshot()}}), nil
	} else {
		stack = append(stack, decision{varID: v, values: orderValues(s.doms[v], s.cfg.ValueOrder)})
	}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			res := Result{Status: StatusIncomplete, Partial: s.snapshot(), Reason: err.Error()}
			res.Solutions = solutions
			return s.finish(res), err
		}

		d := &stack[len(stack)-1]

		if d.next >= len(d.values) {
			var done bool
			var res Result
			stack, res, done = s.retreat(stack, backjump, solutions)
			if done {
				return s.finish(res), nil
			}
			continue
		}

		if s.cfg.StepBudget > 0 && s.steps >= s.cfg.StepBudget {
			res := Result{
				Status:    StatusIncomplete,
				Partial:   s.snapshot(),
				Reason:    ErrBudgetExhausted.Error(),
				Solutions: solutions,
			}
			return s.finish(res), nil
		}

		value := d.values[d.next]
		d.next++
		s.steps++
		s.stats.Assignments++
		s.stats.recordDepth(len(stack))

		d.preMark = s.tr.mark()
		s.assign(d.varID, value)

		if !s.lookahead(d.varID, backjump) {
			s.unassign(d.varID, d.preMark)
			continue
		}

		next := selectVariable(s.graph, s.doms, s.assigned, s.cfg.FailFirst)
		if next == -1 {
			solutions = append(solutions, s.snapshot())
			s.stats.SolutionsFound++
			if s.log != nil {
				s.log.Debug("solution found", "count", len(solutions))
			}
			if s.cfg.MaxSolutions >= 0 && len(solutions) >= want {
				return s.finish(Result{Status: StatusSolved, Solutions: solutions}), nil
			}
			s.unassign(d.varID, d.preMark)
			continue
		}

		stack = append(stack, decision{
			varID:  next,
			values: orderValues(s.doms[next], s.cfg.ValueOrder),
		})
	}

	if len(solutions) > 0 {
		return s.finish(Result{Status: StatusSolved, Solutions: solutions}), nil
	}
	return s.finish(Result{Status: StatusUnsatisfiable}), nil
}

// retreat handles an exhausted decision: chronological backtrack or
// conflict-directed backjump. Returns the new stack, and when the search is
// finished, the terminal result.
func (s *Solver) retreat(stack []decision, backjump bool, solutions []Solution) ([]decision, Result, bool) {
	top := stack[len(stack)-1]
	exhaustedVar := top.varID

	if !backjump {
		stack = stack[:len(stack)-1]
		s.stats.Backtracks++
		if len(stack) == 0 {
			return stack, s.terminal(solutions), true
		}
		parent := &stack[len(stack)-1]
		s.unassign(parent.varID, parent.preMark)
		return stack, Result{}, false
	}

	// Conflict-directed: gather everyone implicated in this variable's
	// failures, jump to the most recent of them.
	conflict := s.cs.accumulated(exhaustedVar)
	target := -1
	for i := len(stack) - 2; i >= 0; i-- {
		if conflict.has(stack[i].varID) {
			target = i
			break
		}
	}

	stack = stack[:len(stack)-1]

	if target == -1 {
		// The exhaustion is independent of every ancestor: nothing above can
		// rescue this subtree, so the puzzle is decided now.
		s.cs.forget(exhaustedVar)
		if s.log != nil {
			s.log.Debug("conflict set empty, search decided",
				"cell", s.graph.Variables()[exhaustedVar].Cell.String())
		}
		return stack[:0], s.terminal(solutions), true
	}

	skipped := len(stack) - 1 - target
	if skipped > 0 {
		s.stats.Backjumps++
		s.stats.LevelsSkipped += skipped
	} else {
		s.stats.Backtracks++
	}
	if s.log != nil && skipped > 0 {
		s.log.Debug("backjump",
			"from", s.graph.Variables()[exhaustedVar].Cell.String(),
			"to", s.graph.Variables()[stack[target].varID].Cell.String(),
			"levelsSkipped", skipped)
	}

	// Merge responsibility into the target before anything mutates the
	// shared scratch set.
	conflict.remove(stack[target].varID)
	s.cs.addConflict(stack[target].varID, conflict)

	// Unwind the intermediate decisions (none of them is in the conflict
	// set, or the target would be deeper).
	for len(stack)-1 > target {
		mid := stack[len(stack)-1]
		s.unassign(mid.varID, mid.preMark)
		s.cs.forget(mid.varID)
		stack = stack[:len(stack)-1]
	}

	s.cs.forget(exhaustedVar)
	tgt := &stack[len(stack)-1]
	s.unassign(tgt.varID, tgt.preMark)
	return stack, Result{}, false
}

func (s *Solver) terminal(solutions []Solution) Result {
	if len(solutions) > 0 {
		return Result{Status: StatusSolved, Solutions: solutions}
	}
	return Result{Status: StatusUnsatisfiable}
}

// assign commits value to varID: the domain collapses to a singleton (each
// removed candidate recorded on the trail) and the assignment is published
// for the consistency checks.
func (s *Solver) assign(varID, value int) {
	dom := s.doms[varID]
	dom.Iterate(func(v int) {
		if v != value {
			s.tr.push(varID, v)
		}
	})
	s.doms[varID] = SingleDigit(value)
	s.assigned[varID] = value
	s.stats.recordTrail(s.tr.size())
}

// unassign rolls back the current value of varID and every pruning it
// triggered.
func (s *Solver) unassign(varID, preMark int) {
	s.tr.undoTo(preMark, s.doms)
	s.assigned[varID] = 0
}

// lookahead runs the configured consistency checks for a fresh assignment.
// Returns false if the branch is dead; conflict culprits are recorded when
// backjumping is active.
func (s *Solver) lookahead(varID int, backjump bool) bool {
	if violated := s.checkRuns(varID); violated >= 0 {
		if backjump {
			s.recordRunConflict(varID, violated)
		}
		return false
	}
	if s.cfg.ForwardChecking {
		if wiped := s.fc.check(varID); wiped >= 0 {
			if backjump {
				s.recordWipeoutConflict(varID, wiped)
			}
			return false
		}
	}
	if s.cfg.MaintainAC {
		s.prop.enqueueNeighbors(varID)
		if wiped := s.prop.run(); wiped >= 0 {
			if backjump {
				s.recordWipeoutConflict(varID, wiped)
			}
			return false
		}
	}
	return true
}

// checkRuns verifies the runs through varID directly against the assigned
// values: pairwise distinctness, exact sum on completion, and residual
// reachability otherwise. Returns the violated run ID or -1.
func (s *Solver) checkRuns(varID int) int {
	for _, rid := range s.graph.Variables()[varID].Runs {
		run := &s.graph.Runs()[rid]
		used := Domain(0)
		partial := 0
		remaining := 0
		for _, vid := range run.Vars {
			v := s.assigned[vid]
			if v == 0 {
				remaining++
				continue
			}
			if used.Has(v) {
				return rid
			}
			used |= SingleDigit(v)
			partial += v
		}
		residual := run.Target - partial
		if remaining == 0 {
			if residual != 0 {
				return rid
			}
			continue
		}
		feasible := false
		for _, combo := range Combinations(remaining, residual) {
			if combo&used == 0 {
				feasible = true
				break
			}
		}
		if !feasible {
			return rid
		}
	}
	return -1
}

// recordRunConflict charges the assigned members of the violated run.
func (s *Solver) recordRunConflict(varID, runID int) {
	s.culprits.clear()
	for _, vid := range s.graph.Runs()[runID].Vars {
		if vid != varID && s.assigned[vid] != 0 {
			s.culprits.add(vid)
		}
	}
	s.cs.addConflict(varID, s.culprits)
}

// recordWipeoutConflict charges everyone implicated in emptying the wiped
// variable's domain: its recorded pruning causes plus the assigned members
// of its runs.
func (s *Solver) recordWipeoutConflict(varID, wiped int) {
	s.culprits.clear()
	s.culprits.union(s.cs.causes[wiped])
	for _, rid := range s.graph.Variables()[wiped].Runs {
		for _, vid := range s.graph.Runs()[rid].Vars {
			if vid != varID && s.assigned[vid] != 0 {
				s.culprits.add(vid)
			}
		}
	}
	s.culprits.remove(varID)
	s.cs.addConflict(varID, s.culprits)
}

// snapshot captures the current assignment as a Solution.
func (s *Solver) snapshot() Solution {
	sol := make(Solution, len(s.assigned))
	for i, v := range s.assigned {
		if v != 0 {
			sol[s.graph.Variables()[i].Cell] = v
		}
	}
	return sol
}

// finish stamps the accumulated statistics onto the result.
func (s *Solver) finish(res Result) Result {
	res.Steps = s.steps
	res.Stats = s.stats
	res.Stats.SolutionsFound = len(res.Solutions)
	if s.log != nil {
		s.log.Debug("solve finished",
			"status", res.Status.String(),
			"steps", res.Steps,
			"solutions", len(res.Solutions),
			"backtracks", res.Stats.Backtracks,
			"backjumps", res.Stats.Backjumps)
	}
	return res
}

// revalidate re-checks the structural invariants the graph builder
// enforces, so a solver handed a graph from any source still surfaces
// malformed puzzles before searching.
func (s *Solver) revalidate() error {
	if s.graph == nil {
		return fmt.Errorf("%w: nil constraint graph", ErrMalformedPuzzle)
	}
	for _, run := range s.graph.Runs() {
		n := run.Len()
		if n < 1 || n > 9 {
			return fmt.Errorf("%w: run length %d outside 1..9", ErrMalformedPuzzle, n)
		}
		if run.Target < MinRunSum(n) || run.Target > MaxRunSum(n) {
			return fmt.Errorf("%w: target %d infeasible for run of length %d",
				ErrMalformedPuzzle, run.Target, n)
		}
	}
	return s.graph.validate()
}
