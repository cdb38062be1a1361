package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/kibria30/Mini-Gomoku/pkg/engine"
)

var (
	blackStone = color.New(color.FgRed, color.Bold)
	whiteStone = color.New(color.FgCyan, color.Bold)
	gridDot    = color.New(color.FgHiBlack)
)

// parseBoardText reads the diagram format Board.String produces: one row
// per line, X for black, O for white, . for empty. Blank lines and
// whitespace between cells are ignored.
func parseBoardText(text string) (*engine.Board, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	board, err := engine.NewBoard(len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), len(rows), engine.ErrInvalidBoard)
		}
		for x, ch := range row {
			var c engine.Color
			switch ch {
			case '.':
				continue
			case 'X', 'x':
				c = engine.Black
			case 'O', 'o':
				c = engine.White
			default:
				return nil, fmt.Errorf("row %d col %d: unknown cell %q: %w", y, x, ch, engine.ErrInvalidBoard)
			}
			if err := board.Apply(engine.Move{X: x, Y: y, Color: c}); err != nil {
				return nil, err
			}
		}
	}
	return board, nil
}

// renderBoard prints the position with coordinates and colored stones.
func renderBoard(b *engine.Board, highlight *engine.Move) string {
	var sb strings.Builder
	size := b.Size()
	sb.WriteString("   ")
	for x := 0; x < size; x++ {
		fmt.Fprintf(&sb, "%2d", x)
	}
	sb.WriteByte('\n')
	for y := 0; y < size; y++ {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < size; x++ {
			marked := highlight != nil && highlight.X == x && highlight.Y == y
			switch b.At(x, y) {
			case engine.CellBlack:
				if marked {
					sb.WriteString(blackStone.Sprint("[X"))
				} else {
					sb.WriteString(blackStone.Sprint(" X"))
				}
			case engine.CellWhite:
				if marked {
					sb.WriteString(whiteStone.Sprint("[O"))
				} else {
					sb.WriteString(whiteStone.Sprint(" O"))
				}
			default:
				sb.WriteString(gridDot.Sprint(" ."))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
