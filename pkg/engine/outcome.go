package engine

// WinLength is the run length that wins the game.
const WinLength = 5

// Status is the terminal state of a position.
type Status uint8

const (
	StatusOngoing Status = iota
	StatusBlackWon
	StatusWhiteWon
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "ongoing"
	}
}

func (s Status) Terminal() bool {
	return s != StatusOngoing
}

func winStatus(c Color) Status {
	if c == Black {
		return StatusBlackWon
	}
	return StatusWhiteWon
}

var axes = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// Outcome classifies the position given the move just played. Only the
// four axes through that cell are scanned; a full-board scan on every
// search node would dominate the cost.
func (b *Board) Outcome(lastMove Move) Status {
	if b.InBounds(lastMove.X, lastMove.Y) && b.At(lastMove.X, lastMove.Y) != CellEmpty {
		target := b.At(lastMove.X, lastMove.Y)
		for _, axis := range axes {
			count := 1
			count += b.countRun(lastMove.X, lastMove.Y, axis[0], axis[1], target)
			count += b.countRun(lastMove.X, lastMove.Y, -axis[0], -axis[1], target)
			if count >= WinLength {
				if target == CellBlack {
					return StatusBlackWon
				}
				return StatusWhiteWon
			}
		}
	}
	if b.Full() {
		return StatusDraw
	}
	return StatusOngoing
}

// WinningLine returns the aligned run through lastMove when it completes a
// win, for callers that want to highlight it.
func (b *Board) WinningLine(lastMove Move) ([]Move, bool) {
	if !b.InBounds(lastMove.X, lastMove.Y) || b.At(lastMove.X, lastMove.Y) == CellEmpty {
		return nil, false
	}
	target := b.At(lastMove.X, lastMove.Y)
	for _, axis := range axes {
		line := b.collectRun(lastMove.X, lastMove.Y, axis[0], axis[1], target)
		if len(line) >= WinLength {
			return line, true
		}
	}
	return nil, false
}

func (b *Board) countRun(x, y, dx, dy int, target Cell) int {
	count := 0
	nx := x + dx
	ny := y + dy
	for b.InBounds(nx, ny) && b.At(nx, ny) == target {
		count++
		nx += dx
		ny += dy
	}
	return count
}

func (b *Board) collectRun(x, y, dx, dy int, target Cell) []Move {
	for b.InBounds(x-dx, y-dy) && b.At(x-dx, y-dy) == target {
		x -= dx
		y -= dy
	}
	color := Black
	if target == CellWhite {
		color = White
	}
	line := []Move{}
	for b.InBounds(x, y) && b.At(x, y) == target {
		line = append(line, Move{X: x, Y: y, Color: color})
		x += dx
		y += dy
	}
	return line
}
