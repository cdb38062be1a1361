package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kibria30/Mini-Gomoku/pkg/engine"
)

func newPlayCmd(flags *rootFlags) *cobra.Command {
	var humanPlayer int
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play against the engine in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if humanPlayer != 1 && humanPlayer != 2 {
				return fmt.Errorf("--human must be 1 (black) or 2 (white)")
			}
			return runPlay(cmd, flags, humanPlayer)
		},
	}
	cmd.Flags().IntVar(&humanPlayer, "human", 1, "side the human plays: 1 black, 2 white")
	return cmd
}

func runPlay(cmd *cobra.Command, flags *rootFlags, humanPlayer int) error {
	board, err := engine.NewBoard(flags.size)
	if err != nil {
		return err
	}
	human := engine.Black
	if humanPlayer == 2 {
		human = engine.White
	}
	eng := engine.NewEngine(engine.Options{TimeBudget: flags.budget})
	difficulty := engine.ParseDifficulty(flags.difficulty)
	reader := bufio.NewReader(os.Stdin)
	out := cmd.OutOrStdout()

	toMove := engine.Black
	var last engine.Move
	for {
		fmt.Fprintln(out, renderBoard(board, lastOrNil(last)))
		if last.Color.Valid() {
			if status := board.Outcome(last); status.Terminal() {
				printStatus(out, status, human)
				return nil
			}
		}

		var move engine.Move
		if toMove == human {
			move, err = readHumanMove(reader, out, board, toMove)
			if err != nil {
				return err
			}
		} else {
			result, err := eng.ChooseMove(cmd.Context(), board, toMove, flags.budget, difficulty)
			if err != nil {
				return err
			}
			move = result.Move
			fmt.Fprintf(out, "engine plays (%d,%d)  depth=%d nodes=%d win=%d%%\n",
				move.X, move.Y, result.Depth, result.Nodes, engine.WinProbability(result.Score))
		}
		if err := board.Apply(move); err != nil {
			return err
		}
		last = move
		toMove = toMove.Other()
	}
}

func lastOrNil(last engine.Move) *engine.Move {
	if !last.Color.Valid() {
		return nil
	}
	return &last
}

func readHumanMove(reader *bufio.Reader, out io.Writer, board *engine.Board, toMove engine.Color) (engine.Move, error) {
	for {
		fmt.Fprintf(out, "%s to move (x y): ", strings.ToLower(toMove.String()))
		line, err := reader.ReadString('\n')
		if err != nil {
			return engine.Move{}, err
		}
		var x, y int
		if _, err := fmt.Sscanf(strings.TrimSpace(line), "%d %d", &x, &y); err != nil {
			fmt.Fprintln(out, "enter two numbers, e.g. 7 7")
			continue
		}
		if !board.IsEmpty(x, y) {
			fmt.Fprintln(out, "that cell is not playable")
			continue
		}
		return engine.Move{X: x, Y: y, Color: toMove}, nil
	}
}

func printStatus(out io.Writer, status engine.Status, human engine.Color) {
	switch status {
	case engine.StatusDraw:
		fmt.Fprintln(out, "draw")
	case engine.StatusBlackWon, engine.StatusWhiteWon:
		winner := engine.Black
		if status == engine.StatusWhiteWon {
			winner = engine.White
		}
		if winner == human {
			color.New(color.FgGreen, color.Bold).Fprintln(out, "you win")
		} else {
			color.New(color.FgRed, color.Bold).Fprintln(out, "engine wins")
		}
	}
}
