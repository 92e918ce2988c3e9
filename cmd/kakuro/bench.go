package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kakurolabs/kakuro/internal/bench"
	"github.com/kakurolabs/kakuro/pkg/kakuro"
)

func newBenchCmd() *cobra.Command {
	var (
		limit   int
		budget  int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "bench <board.yaml>",
		Short: "Compare solver technique combinations on a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, graph, err := kakuro.LoadBoardFile(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			runner := &bench.Runner{Limit: limit, StepBudget: budget}
			if verbose {
				runner.Logger = newLogger()
			}
			results, err := runner.Run(ctx, graph, bench.StandardCombos())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if board.Name != "" {
				fmt.Fprintf(out, "board: %s (%d cells, %d runs)\n",
					board.Name, graph.VariableCount(), graph.RunCount())
			}
			w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "COMBO\tSTATUS\tSTEPS\tBACKTRACKS\tBACKJUMPS\tPRUNED\tTIME")
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(w, "%s\terror: %v\t\t\t\t\t\n", r.Combo, r.Err)
					continue
				}
				st := r.Outcome.Stats
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
					r.Combo, r.Outcome.Status, r.Outcome.Steps,
					st.Backtracks, st.Backjumps, st.ValuesPruned, r.Elapsed.Round(time.Microsecond))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "concurrent solves, 0 for one per CPU")
	cmd.Flags().IntVar(&budget, "budget", 0, "assignment budget per combination, 0 for unlimited")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "wall-clock limit for the whole comparison")
	return cmd
}
