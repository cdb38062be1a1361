package engine

import "sync"

const (
	// evalWin is the score of a finished five, above every heuristic tier.
	evalWin = 1_000_000_000.0
	// evalOpenFour dominates every non-winning pattern combination: an
	// open four converts to a five no matter what the opponent does.
	evalOpenFour = 900_000.0
)

// threatTotals counts pattern occurrences for one color.
type threatTotals struct {
	Five    int
	Open4   int
	Closed4 int
	Broken4 int
	Open3   int
	Broken3 int
	Closed3 int
	Open2   int
	Broken2 int
}

type patternMatch struct {
	pattern string
	apply   func(*threatTotals)
}

// Token alphabet: M = the scored color, O = opponent stone or border,
// . = empty. Longer patterns first so a five is not consumed as a four.
var evalPatterns = [...]patternMatch{
	{pattern: "MMMMM", apply: func(t *threatTotals) { t.Five++ }},
	{pattern: ".MMMM.", apply: func(t *threatTotals) { t.Open4++ }},
	{pattern: "OMMMM.", apply: func(t *threatTotals) { t.Closed4++ }},
	{pattern: ".MMMMO", apply: func(t *threatTotals) { t.Closed4++ }},
	{pattern: ".MMM.M.", apply: func(t *threatTotals) { t.Broken4++ }},
	{pattern: ".M.MMM.", apply: func(t *threatTotals) { t.Broken4++ }},
	{pattern: ".MMM.", apply: func(t *threatTotals) { t.Open3++ }},
	{pattern: ".MM.M.", apply: func(t *threatTotals) { t.Broken3++ }},
	{pattern: ".M.MM.", apply: func(t *threatTotals) { t.Broken3++ }},
	{pattern: "OMMM.", apply: func(t *threatTotals) { t.Closed3++ }},
	{pattern: ".MMMO", apply: func(t *threatTotals) { t.Closed3++ }},
	{pattern: ".MM.", apply: func(t *threatTotals) { t.Open2++ }},
	{pattern: ".M.M.", apply: func(t *threatTotals) { t.Broken2++ }},
}

// lineCache holds the per-size precomputed index lines (rows, columns,
// both diagonal families with length >= WinLength).
type lineCache struct {
	mu    sync.Mutex
	lines map[int][][]int
}

var cachedLines = &lineCache{lines: make(map[int][][]int)}

func linesForSize(size int) [][]int {
	cachedLines.mu.Lock()
	defer cachedLines.mu.Unlock()
	if lines, ok := cachedLines.lines[size]; ok {
		return lines
	}
	lines := buildLines(size)
	cachedLines.lines[size] = lines
	return lines
}

func buildLines(size int) [][]int {
	lines := [][]int{}
	if size <= 0 {
		return lines
	}
	for y := 0; y < size; y++ {
		line := make([]int, 0, size)
		for x := 0; x < size; x++ {
			line = append(line, y*size+x)
		}
		lines = append(lines, line)
	}
	for x := 0; x < size; x++ {
		line := make([]int, 0, size)
		for y := 0; y < size; y++ {
			line = append(line, y*size+x)
		}
		lines = append(lines, line)
	}
	for x := 0; x < size; x++ {
		if line := collectDiag(size, x, 0, 1, 1); len(line) >= WinLength {
			lines = append(lines, line)
		}
	}
	for y := 1; y < size; y++ {
		if line := collectDiag(size, 0, y, 1, 1); len(line) >= WinLength {
			lines = append(lines, line)
		}
	}
	for x := 0; x < size; x++ {
		if line := collectDiag(size, x, 0, -1, 1); len(line) >= WinLength {
			lines = append(lines, line)
		}
	}
	for y := 1; y < size; y++ {
		if line := collectDiag(size, size-1, y, -1, 1); len(line) >= WinLength {
			lines = append(lines, line)
		}
	}
	return lines
}

func collectDiag(size, startX, startY, dx, dy int) []int {
	line := []int{}
	x := startX
	y := startY
	for x >= 0 && y >= 0 && x < size && y < size {
		line = append(line, y*size+x)
		x += dx
		y += dy
	}
	return line
}

// Evaluate scores the board from perspective's point of view: positive
// favors perspective, magnitude reflects threat strength. The function is
// antisymmetric: Evaluate(b, Black, w) == -Evaluate(b, White, w).
func Evaluate(b *Board, perspective Color, weights Weights) float64 {
	if weights.Zero() {
		weights = DefaultWeights()
	}
	lines := linesForSize(b.Size())
	opp := perspective.Other()
	var tokensStack [64]byte
	tokensBuf := tokensStack[:0]

	var totalsMe threatTotals
	var totalsOpp threatTotals
	for _, line := range lines {
		tokensBuf = buildTokensInto(b, line, perspective, tokensBuf)
		accumulatePatterns(tokensBuf, &totalsMe)
		tokensBuf = buildTokensInto(b, line, opp, tokensBuf)
		accumulatePatterns(tokensBuf, &totalsOpp)
	}

	// Terminal and forced tiers, kept symmetric so antisymmetry holds
	// even in degenerate positions where both sides hold one.
	switch {
	case totalsMe.Five > totalsOpp.Five:
		return evalWin
	case totalsOpp.Five > totalsMe.Five:
		return -evalWin
	case totalsMe.Five > 0:
		return 0
	}
	switch {
	case totalsMe.Open4 > 0 && totalsOpp.Open4 == 0:
		return evalOpenFour
	case totalsOpp.Open4 > 0 && totalsMe.Open4 == 0:
		return -evalOpenFour
	}

	score := weightedSum(totalsMe, weights) - weightedSum(totalsOpp, weights)
	score += forkBonus(totalsMe, weights) - forkBonus(totalsOpp, weights)
	return score
}

func buildTokensInto(b *Board, line []int, color Color, buf []byte) []byte {
	needed := len(line) + 2
	if cap(buf) < needed {
		buf = make([]byte, needed)
	} else {
		buf = buf[:needed]
	}
	mine := Cell(color)
	buf[0] = 'O'
	for i, idx := range line {
		switch cell := b.cells[idx]; {
		case cell == CellEmpty:
			buf[i+1] = '.'
		case cell == mine:
			buf[i+1] = 'M'
		default:
			buf[i+1] = 'O'
		}
	}
	buf[needed-1] = 'O'
	return buf
}

func accumulatePatterns(tokens []byte, totals *threatTotals) {
	for i := 0; i < len(tokens); i++ {
		for _, entry := range evalPatterns {
			if matchAt(tokens, entry.pattern, i) {
				entry.apply(totals)
				i += len(entry.pattern) - 2
				break
			}
		}
	}
}

func matchAt(tokens []byte, pattern string, start int) bool {
	if start+len(pattern) > len(tokens) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		if tokens[start+i] != pattern[i] {
			return false
		}
	}
	return true
}

func weightedSum(t threatTotals, w Weights) float64 {
	return float64(t.Open4)*w.Open4 +
		float64(t.Closed4)*w.Closed4 +
		float64(t.Broken4)*w.Broken4 +
		float64(t.Open3)*w.Open3 +
		float64(t.Broken3)*w.Broken3 +
		float64(t.Closed3)*w.Closed3 +
		float64(t.Open2)*w.Open2 +
		float64(t.Broken2)*w.Broken2
}

func forkBonus(t threatTotals, w Weights) float64 {
	bonus := 0.0
	if t.Open3 >= 2 {
		bonus += w.ForkOpen3
	}
	if t.Closed4+t.Broken4 >= 2 {
		bonus += w.ForkDouble4
	}
	return bonus
}
