package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kibria30/Mini-Gomoku/pkg/engine"
)

func newEvalCmd(flags *rootFlags) *cobra.Command {
	var search bool
	cmd := &cobra.Command{
		Use:   "eval [board-file]",
		Short: "Score a position from a board diagram (X black, O white, . empty; - reads stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readBoardInput(args)
			if err != nil {
				return err
			}
			board, err := parseBoardText(text)
			if err != nil {
				return err
			}
			return runEval(cmd, flags, board, search)
		},
	}
	cmd.Flags().BoolVar(&search, "search", false, "also run a timed search for both sides")
	return cmd
}

func readBoardInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func runEval(cmd *cobra.Command, flags *rootFlags, board *engine.Board, search bool) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderBoard(board, nil))

	eng := engine.NewEngine(engine.Options{TimeBudget: flags.budget})
	for _, side := range []engine.Color{engine.Black, engine.White} {
		score, err := eng.Evaluate(board, side)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-5s  score=%.0f  win=%d%%\n", side, score, engine.WinProbability(score))
	}
	if !search {
		return nil
	}

	difficulty := engine.ParseDifficulty(flags.difficulty)
	for _, side := range []engine.Color{engine.Black, engine.White} {
		result, err := eng.ChooseMove(cmd.Context(), board, side, flags.budget, difficulty)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-5s  best=(%d,%d)  score=%.0f  depth=%d  nodes=%d\n",
			side, result.Move.X, result.Move.Y, result.Score, result.Depth, result.Nodes)
	}
	return nil
}
