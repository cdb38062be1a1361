package engine

import "sort"

// CandidateRadius bounds candidate generation to cells near existing
// stones; distant cells cannot participate in a live line.
const CandidateRadius = 2

// Ordering priority classes, lower is searched first. Good ordering is
// what makes alpha-beta pruning bite; without it the search degrades
// toward full minimax cost.
const (
	prioWin = iota
	prioBlockWin
	prioMakeFour
	prioBlockFour
	prioMakeOpen3
	prioBlockOpen3
	prioQuiet
)

type scoredCandidate struct {
	move     Move
	priority int
	score    int
}

// Candidates returns the legal moves worth searching for toMove: empty
// cells within CandidateRadius of any stone, or the center cell alone on
// an empty board.
func Candidates(b *Board, toMove Color) []Move {
	if b.Stones() == 0 {
		center := b.Size() / 2
		return []Move{{X: center, Y: center, Color: toMove}}
	}
	cells := b.EmptyCellsNear(CandidateRadius)
	moves := make([]Move, len(cells))
	for i, cell := range cells {
		moves[i] = Move{X: cell.X, Y: cell.Y, Color: toMove}
	}
	return moves
}

// OrderMoves sorts candidates by threat priority, then by a cheap local
// estimate, with the transposition table's remembered best move hoisted to
// the front. The sort is fully deterministic: ties fall back to board
// order so repeated searches of one position explore identically.
func OrderMoves(b *Board, candidates []Move, ttMove *Move) []Move {
	scored := make([]scoredCandidate, 0, len(candidates))
	for _, m := range candidates {
		prio, localScore := classifyCandidate(b, m)
		scored = append(scored, scoredCandidate{move: m, priority: prio, score: localScore})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].priority != scored[j].priority {
			return scored[i].priority < scored[j].priority
		}
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].move.Y != scored[j].move.Y {
			return scored[i].move.Y < scored[j].move.Y
		}
		return scored[i].move.X < scored[j].move.X
	})
	out := make([]Move, 0, len(scored))
	for _, sc := range scored {
		out = append(out, sc.move)
	}
	if ttMove != nil {
		for i := range out {
			if out[i].X == ttMove.X && out[i].Y == ttMove.Y {
				hoisted := out[i]
				copy(out[1:i+1], out[:i])
				out[0] = hoisted
				break
			}
		}
	}
	return out
}

func classifyCandidate(b *Board, m Move) (priority int, localScore int) {
	mine := Cell(m.Color)
	theirs := Cell(m.Color.Other())

	priority = prioQuiet
	winNow, makesFour, makesOpen3 := threatFlags(b, m.X, m.Y, mine)
	switch {
	case winNow:
		priority = prioWin
	case makesFour:
		priority = prioMakeFour
	case makesOpen3:
		priority = prioMakeOpen3
	}

	oppWin, oppFour, oppOpen3 := threatFlags(b, m.X, m.Y, theirs)
	switch {
	case oppWin && prioBlockWin < priority:
		priority = prioBlockWin
	case oppFour && prioBlockFour < priority:
		priority = prioBlockFour
	case oppOpen3 && prioBlockOpen3 < priority:
		priority = prioBlockOpen3
	}

	return priority, neighborScore(b, m.X, m.Y, mine, theirs)
}

// threatFlags reports what placing target at (x,y) would create along any
// axis: an immediate five, a four, or an open three.
func threatFlags(b *Board, x, y int, target Cell) (winNow, four, openThree bool) {
	for _, axis := range axes {
		dx := axis[0]
		dy := axis[1]
		left := b.countRun(x, y, -dx, -dy, target)
		right := b.countRun(x, y, dx, dy, target)
		total := left + right + 1
		switch {
		case total >= WinLength:
			winNow = true
		case total == WinLength-1:
			four = true
		case total == WinLength-2:
			leftX := x - (left+1)*dx
			leftY := y - (left+1)*dy
			rightX := x + (right+1)*dx
			rightY := y + (right+1)*dy
			if b.IsEmpty(leftX, leftY) && b.IsEmpty(rightX, rightY) {
				openThree = true
			}
		}
	}
	return winNow, four, openThree
}

// neighborScore is a cheap promise estimate: own stones nearby pull a
// candidate forward, enemy stones slightly less so.
func neighborScore(b *Board, x, y int, mine, theirs Cell) int {
	score := 0
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			ny := y + dy
			if !b.InBounds(nx, ny) {
				continue
			}
			weight := 1
			if chebDist(dx, dy) == 1 {
				weight = 3
			}
			switch b.At(nx, ny) {
			case mine:
				score += 2 * weight
			case theirs:
				score += weight
			}
		}
	}
	return score
}

func chebDist(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dy > dx {
		return dy
	}
	return dx
}
