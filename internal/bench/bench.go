// Package bench compares solver technique combinations on one puzzle.
//
// Each combination gets its own solver instance, so runs share only the
// immutable constraint graph and can execute concurrently. Concurrency is
// bounded to keep timing numbers honest on small machines.
package bench

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kakurolabs/kakuro/pkg/kakuro"
)

// Combo names one solver configuration under comparison.
type Combo struct {
	Name string
	Cfg  kakuro.SolverConfig
}

// Result is the outcome of one combination's run.
type Result struct {
	Combo   string
	Outcome kakuro.Result
	Elapsed time.Duration
	Err     error
}

// StandardCombos enumerates every subset of the four lookahead techniques,
// from plain backtracking up to the full stack, each with fail-first
// variable selection.
func StandardCombos() []Combo {
	type technique struct {
		tag   string
		apply func(*kakuro.SolverConfig)
	}
	techniques := []technique{
		{"ac3", func(c *kakuro.SolverConfig) { c.PreprocessAC3 = true }},
		{"mac", func(c *kakuro.SolverConfig) { c.MaintainAC = true }},
		{"fc", func(c *kakuro.SolverConfig) { c.ForwardChecking = true }},
		{"cbj", func(c *kakuro.SolverConfig) { c.Backjumping = true }},
	}

	var combos []Combo
	for mask := 0; mask < 1<<len(techniques); mask++ {
		cfg := kakuro.SolverConfig{FailFirst: true}
		tags := []string{"bt"}
		for i, t := range techniques {
			if mask&(1<<i) != 0 {
				t.apply(&cfg)
				tags = append(tags, t.tag)
			}
		}
		combos = append(combos, Combo{Name: strings.Join(tags, "+"), Cfg: cfg})
	}
	return combos
}

// Runner executes combinations concurrently against a single graph.
type Runner struct {
	// Limit bounds concurrent solves; 0 means one per CPU.
	Limit int
	// StepBudget, when positive, is applied to every combination so a
	// pathological configuration cannot run away.
	StepBudget int
	// Logger receives per-combination progress. Nil disables logging.
	Logger *slog.Logger
}

// Run solves the graph once per combination and returns the results ordered
// fastest first. Solver errors are captured per combination, not returned;
// the error return is reserved for context cancellation.
func (r *Runner) Run(ctx context.Context, g *kakuro.ConstraintGraph, combos []Combo) ([]Result, error) {
	limit := r.Limit
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]Result, len(combos))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, combo := range combos {
		i, combo := i, combo
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg := combo.Cfg
			if r.StepBudget > 0 {
				cfg.StepBudget = r.StepBudget
			}
			cfg.Logger = r.Logger

			start := time.Now()
			outcome, err := kakuro.NewSolver(g, cfg).Solve(ctx)
			results[i] = Result{
				Combo:   combo.Name,
				Outcome: outcome,
				Elapsed: time.Since(start),
				Err:     err,
			}
			if r.Logger != nil {
				r.Logger.Info("combo finished",
					"combo", combo.Name,
					"status", outcome.Status.String(),
					"steps", outcome.Steps,
					"elapsed", results[i].Elapsed)
			}
			if err != nil && ctx.Err() != nil {
				return err
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return results, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Elapsed < results[b].Elapsed
	})
	return results, nil
}
