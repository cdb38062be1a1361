package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateEmptyBoardIsZero(t *testing.T) {
	b := mustBoard(t, 9)
	require.Zero(t, Evaluate(b, Black, DefaultWeights()))
}

func TestEvaluateIsAntisymmetric(t *testing.T) {
	b := mustBoard(t, 11)
	placeStones(t, b, Black, [2]int{5, 5}, [2]int{6, 5}, [2]int{7, 5}, [2]int{4, 8}, [2]int{3, 2})
	placeStones(t, b, White, [2]int{5, 6}, [2]int{6, 6}, [2]int{2, 2}, [2]int{8, 8})
	w := DefaultWeights()
	require.Equal(t, Evaluate(b, Black, w), -Evaluate(b, White, w))
}

func TestEvaluateFiveIsWinScore(t *testing.T) {
	b := mustBoard(t, 9)
	placeStones(t, b, Black, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{4, 0})
	w := DefaultWeights()
	require.Equal(t, evalWin, Evaluate(b, Black, w))
	require.Equal(t, -evalWin, Evaluate(b, White, w))
}

func TestEvaluateOpenFourDominates(t *testing.T) {
	b := mustBoard(t, 11)
	// Black: .MMMM. on row 5. White: a pile of threes elsewhere.
	placeStones(t, b, Black, [2]int{3, 5}, [2]int{4, 5}, [2]int{5, 5}, [2]int{6, 5})
	placeStones(t, b, White, [2]int{1, 1}, [2]int{2, 1}, [2]int{3, 1}, [2]int{1, 3}, [2]int{2, 3}, [2]int{3, 3})
	w := DefaultWeights()
	require.Equal(t, evalOpenFour, Evaluate(b, Black, w), "open four outranks any non-winning combination")
	require.Equal(t, -evalOpenFour, Evaluate(b, White, w))
}

func TestEvaluateMutualOpenFourFallsThrough(t *testing.T) {
	// Both sides holding an open four cannot short-circuit either way or
	// antisymmetry would break.
	b := mustBoard(t, 11)
	placeStones(t, b, Black, [2]int{3, 2}, [2]int{4, 2}, [2]int{5, 2}, [2]int{6, 2})
	placeStones(t, b, White, [2]int{3, 8}, [2]int{4, 8}, [2]int{5, 8}, [2]int{6, 8})
	w := DefaultWeights()
	require.Equal(t, Evaluate(b, Black, w), -Evaluate(b, White, w))
	require.Less(t, Evaluate(b, Black, w), evalOpenFour)
}

func TestEvaluateClosedFourBelowOpenFour(t *testing.T) {
	open := mustBoard(t, 11)
	placeStones(t, open, Black, [2]int{3, 5}, [2]int{4, 5}, [2]int{5, 5}, [2]int{6, 5})

	closed := mustBoard(t, 11)
	placeStones(t, closed, White, [2]int{2, 5})
	placeStones(t, closed, Black, [2]int{3, 5}, [2]int{4, 5}, [2]int{5, 5}, [2]int{6, 5})

	w := DefaultWeights()
	require.Greater(t, Evaluate(open, Black, w), Evaluate(closed, Black, w))
}

func TestEvaluateBorderBlocksLikeOpponent(t *testing.T) {
	// A four jammed against the edge has only one extension, so it must
	// score as closed, not open.
	edge := mustBoard(t, 11)
	placeStones(t, edge, Black, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0})

	open := mustBoard(t, 11)
	placeStones(t, open, Black, [2]int{3, 5}, [2]int{4, 5}, [2]int{5, 5}, [2]int{6, 5})

	w := DefaultWeights()
	require.Less(t, Evaluate(edge, Black, w), Evaluate(open, Black, w))
}

func TestEvaluateOpenThreeOutranksClosedThree(t *testing.T) {
	open := mustBoard(t, 11)
	placeStones(t, open, Black, [2]int{4, 5}, [2]int{5, 5}, [2]int{6, 5})

	closed := mustBoard(t, 11)
	placeStones(t, closed, White, [2]int{3, 5})
	placeStones(t, closed, Black, [2]int{4, 5}, [2]int{5, 5}, [2]int{6, 5})

	w := DefaultWeights()
	require.Greater(t, Evaluate(open, Black, w), Evaluate(closed, Black, w))
}

func TestEvaluateBrokenThreeCounts(t *testing.T) {
	b := mustBoard(t, 11)
	// .MM.M. on row 5
	placeStones(t, b, Black, [2]int{3, 5}, [2]int{4, 5}, [2]int{6, 5})
	w := DefaultWeights()
	score := Evaluate(b, Black, w)
	require.Greater(t, score, 0.0)
	require.GreaterOrEqual(t, score, w.Broken3, "broken three must register on its row")
}

func TestEvaluateForkBonusDoubleOpenThree(t *testing.T) {
	fork := mustBoard(t, 13)
	// Two open threes crossing at (6,6).
	placeStones(t, fork, Black, [2]int{5, 6}, [2]int{6, 6}, [2]int{7, 6})
	placeStones(t, fork, Black, [2]int{6, 5}, [2]int{6, 7})

	single := mustBoard(t, 13)
	placeStones(t, single, Black, [2]int{5, 6}, [2]int{6, 6}, [2]int{7, 6})

	w := DefaultWeights()
	require.Greater(t, Evaluate(fork, Black, w), 2*Evaluate(single, Black, w),
		"double three is worth more than the sum of its threes")
}

func TestEvaluateZeroWeightsFallBackToDefaults(t *testing.T) {
	b := mustBoard(t, 9)
	placeStones(t, b, Black, [2]int{3, 3}, [2]int{4, 3}, [2]int{5, 3})
	require.Equal(t, Evaluate(b, Black, DefaultWeights()), Evaluate(b, Black, Weights{}))
}

func TestBuildLinesCoversBoard(t *testing.T) {
	lines := linesForSize(5)
	// 5 rows + 5 cols + 1 diagonal + 1 antidiagonal of length five.
	require.Len(t, lines, 12)
	for _, line := range lines {
		require.GreaterOrEqual(t, len(line), WinLength)
	}
}
