package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kibria30/Mini-Gomoku/pkg/engine"
)

func newBenchCmd(flags *rootFlags) *cobra.Command {
	var iterations int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure search throughput on a fixed midgame position",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, flags, iterations)
		},
	}
	cmd.Flags().IntVar(&iterations, "n", 5, "number of searches")
	return cmd
}

// benchPosition is a lively midgame shape: crossing threats for both sides
// around the center, with enough open space to keep the branching honest.
func benchPosition(size int) (*engine.Board, error) {
	board, err := engine.NewBoard(size)
	if err != nil {
		return nil, err
	}
	c := size / 2
	stones := []engine.Move{
		{X: c, Y: c, Color: engine.Black},
		{X: c + 1, Y: c, Color: engine.White},
		{X: c, Y: c + 1, Color: engine.Black},
		{X: c - 1, Y: c + 1, Color: engine.White},
		{X: c + 1, Y: c + 1, Color: engine.Black},
		{X: c - 1, Y: c - 1, Color: engine.White},
		{X: c + 2, Y: c + 2, Color: engine.Black},
		{X: c - 2, Y: c, Color: engine.White},
	}
	for _, m := range stones {
		if err := board.Apply(m); err != nil {
			return nil, err
		}
	}
	return board, nil
}

func runBench(cmd *cobra.Command, flags *rootFlags, iterations int) error {
	out := cmd.OutOrStdout()
	board, err := benchPosition(flags.size)
	if err != nil {
		return err
	}
	difficulty := engine.ParseDifficulty(flags.difficulty)

	var totalNodes int64
	var totalElapsed time.Duration
	for i := 0; i < iterations; i++ {
		eng := engine.NewEngine(engine.Options{TimeBudget: flags.budget})
		start := time.Now()
		result, err := eng.ChooseMove(cmd.Context(), board, engine.White, flags.budget, difficulty)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		totalNodes += result.Nodes
		totalElapsed += elapsed
		fmt.Fprintf(out, "run %d: move=(%d,%d) depth=%d nodes=%d elapsed=%dms\n",
			i+1, result.Move.X, result.Move.Y, result.Depth, result.Nodes, elapsed.Milliseconds())
	}

	nps := 0.0
	if totalElapsed > 0 {
		nps = float64(totalNodes) / totalElapsed.Seconds()
	}
	fmt.Fprintf(out, "total: nodes=%d elapsed=%dms nps=%.0f\n",
		totalNodes, totalElapsed.Milliseconds(), nps)
	return nil
}
