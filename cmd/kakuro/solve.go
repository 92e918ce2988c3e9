package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kakurolabs/kakuro/pkg/kakuro"
)

func newSolveCmd() *cobra.Command {
	var (
		noAC3    bool
		mac      bool
		noFC     bool
		noCBJ    bool
		static   bool
		desc     bool
		budget   int
		maxSols  int
		timeout  time.Duration
		showStat bool
	)

	cmd := &cobra.Command{
		Use:   "solve <board.yaml>",
		Short: "Solve a Kakuro board file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, graph, err := kakuro.LoadBoardFile(args[0])
			if err != nil {
				return err
			}

			cfg := kakuro.DefaultSolverConfig()
			cfg.PreprocessAC3 = !noAC3
			cfg.MaintainAC = mac
			cfg.ForwardChecking = !noFC
			cfg.Backjumping = !noCBJ
			cfg.FailFirst = !static
			if desc {
				cfg.ValueOrder = kakuro.ValueOrderDesc
			}
			cfg.StepBudget = budget
			cfg.MaxSolutions = maxSols
			if verbose {
				cfg.Logger = newLogger()
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			res, err := kakuro.NewSolver(graph, cfg).Solve(ctx)
			if err != nil && res.Status != kakuro.StatusIncomplete {
				return err
			}

			out := cmd.OutOrStdout()
			if board.Name != "" {
				fmt.Fprintf(out, "board: %s\n", board.Name)
			}
			fmt.Fprintf(out, "status: %s\n", res.Status)

			switch res.Status {
			case kakuro.StatusSolved:
				for i, sol := range res.Solutions {
					if len(res.Solutions) > 1 {
						fmt.Fprintf(out, "solution %d:\n", i+1)
					}
					fmt.Fprint(out, kakuro.RenderBoard(board.Grid, sol))
				}
			case kakuro.StatusIncomplete:
				fmt.Fprintf(out, "reason: %s\n", res.Reason)
				fmt.Fprint(out, kakuro.RenderBoard(board.Grid, res.Partial))
			}

			if showStat {
				st := res.Stats
				fmt.Fprintf(out, "assignments: %d  backtracks: %d  backjumps: %d (skipped %d levels)\n",
					st.Assignments, st.Backtracks, st.Backjumps, st.LevelsSkipped)
				fmt.Fprintf(out, "revisions: %d  pruned: %d  wipeouts: %d  time: %s\n",
					st.ArcRevisions, st.ValuesPruned, st.Wipeouts, st.SearchTime)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noAC3, "no-ac3", false, "skip the arc-consistency preprocessing pass")
	cmd.Flags().BoolVar(&mac, "mac", false, "maintain arc consistency during search")
	cmd.Flags().BoolVar(&noFC, "no-forward-check", false, "disable forward checking")
	cmd.Flags().BoolVar(&noCBJ, "no-backjump", false, "disable conflict-directed backjumping")
	cmd.Flags().BoolVar(&static, "static-order", false, "branch in static variable order instead of fail-first")
	cmd.Flags().BoolVar(&desc, "desc", false, "try candidate digits in descending order")
	cmd.Flags().IntVar(&budget, "budget", 0, "assignment budget, 0 for unlimited")
	cmd.Flags().IntVarP(&maxSols, "solutions", "n", 0, "solutions to find: 0/1 first, -1 all")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "wall-clock limit, 0 for none")
	cmd.Flags().BoolVar(&showStat, "stats", false, "print search statistics")
	return cmd
}
