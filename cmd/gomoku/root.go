package main

import (
	"time"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	size       int
	budget     time.Duration
	difficulty string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "gomoku",
		Short:         "Five-in-a-row engine from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().IntVar(&flags.size, "size", 15, "board size")
	cmd.PersistentFlags().DurationVar(&flags.budget, "budget", 500*time.Millisecond, "per-move think time")
	cmd.PersistentFlags().StringVar(&flags.difficulty, "difficulty", "hard", "easy, medium or hard")

	cmd.AddCommand(newPlayCmd(flags))
	cmd.AddCommand(newEvalCmd(flags))
	cmd.AddCommand(newBenchCmd(flags))
	return cmd
}
