// Command kakuro solves Kakuro puzzles from board files and benchmarks
// solver technique combinations against each other.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kakuro",
		Short:         "Kakuro constraint solver",
		Long:          "Solve Kakuro puzzles with configurable constraint propagation and backjumping search.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newSolveCmd())
	root.AddCommand(newBenchCmd())
	return root
}

// newLogger builds the CLI logger; debug traces are opt-in.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
