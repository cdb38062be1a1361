package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCandidatesEmptyBoardIsCenter(t *testing.T) {
	b := mustBoard(t, 15)
	moves := Candidates(b, Black)
	require.Equal(t, []Move{{X: 7, Y: 7, Color: Black}}, moves)
}

func TestCandidatesStayNearStones(t *testing.T) {
	b := mustBoard(t, 15)
	placeStones(t, b, Black, [2]int{7, 7})
	placeStones(t, b, White, [2]int{8, 7})

	moves := Candidates(b, White)
	require.NotEmpty(t, moves)
	for _, m := range moves {
		require.Equal(t, White, m.Color)
		near := chebDist(m.X-7, m.Y-7) <= CandidateRadius || chebDist(m.X-8, m.Y-7) <= CandidateRadius
		require.True(t, near, "candidate (%d,%d) too far from any stone", m.X, m.Y)
		require.True(t, b.IsEmpty(m.X, m.Y))
	}
}

func TestOrderMovesWinningMoveFirst(t *testing.T) {
	b := mustBoard(t, 11)
	// Black four on row 5, completable at (7,5).
	placeStones(t, b, Black, [2]int{3, 5}, [2]int{4, 5}, [2]int{5, 5}, [2]int{6, 5})
	placeStones(t, b, White, [2]int{3, 6}, [2]int{4, 6})

	moves := OrderMoves(b, Candidates(b, Black), nil)
	require.NotEmpty(t, moves)
	first := moves[0]
	winning := (first.X == 7 && first.Y == 5) || (first.X == 2 && first.Y == 5)
	require.True(t, winning, "expected a five-completing move first, got (%d,%d)", first.X, first.Y)
}

func TestOrderMovesBlockBeforeQuiet(t *testing.T) {
	b := mustBoard(t, 11)
	// White threatens to complete a five; black has no win of its own.
	placeStones(t, b, White, [2]int{3, 5}, [2]int{4, 5}, [2]int{5, 5}, [2]int{6, 5})
	placeStones(t, b, Black, [2]int{3, 8}, [2]int{5, 9})

	moves := OrderMoves(b, Candidates(b, Black), nil)
	first := moves[0]
	blocking := (first.X == 7 && first.Y == 5) || (first.X == 2 && first.Y == 5)
	require.True(t, blocking, "expected a block of the white five first, got (%d,%d)", first.X, first.Y)
}

func TestOrderMovesOwnWinOutranksBlock(t *testing.T) {
	b := mustBoard(t, 13)
	// Both sides have a completable four; taking the win beats blocking.
	placeStones(t, b, Black, [2]int{3, 3}, [2]int{4, 3}, [2]int{5, 3}, [2]int{6, 3})
	placeStones(t, b, White, [2]int{3, 9}, [2]int{4, 9}, [2]int{5, 9}, [2]int{6, 9})

	moves := OrderMoves(b, Candidates(b, Black), nil)
	first := moves[0]
	require.Equal(t, 3, first.Y, "expected black to extend its own four, got (%d,%d)", first.X, first.Y)
}

func TestOrderMovesTTMoveHoisted(t *testing.T) {
	b := mustBoard(t, 11)
	placeStones(t, b, Black, [2]int{5, 5})
	placeStones(t, b, White, [2]int{6, 6})

	plain := OrderMoves(b, Candidates(b, Black), nil)
	require.Greater(t, len(plain), 3)

	// Pick a move from the middle of the plain ordering and pin it.
	pinned := plain[len(plain)/2]
	hoisted := OrderMoves(b, Candidates(b, Black), &pinned)
	require.Equal(t, pinned.X, hoisted[0].X)
	require.Equal(t, pinned.Y, hoisted[0].Y)
	require.ElementsMatch(t, plain, hoisted)
}

func TestOrderMovesDeterministic(t *testing.T) {
	b := mustBoard(t, 11)
	placeStones(t, b, Black, [2]int{5, 5}, [2]int{6, 5})
	placeStones(t, b, White, [2]int{5, 6})

	first := OrderMoves(b, Candidates(b, Black), nil)
	second := OrderMoves(b, Candidates(b, Black), nil)
	require.Equal(t, first, second)
}

func TestThreatFlagsOpenThreeNeedsBothEnds(t *testing.T) {
	b := mustBoard(t, 11)
	// Placing at (5,5) would make MM M -> three with open ends.
	placeStones(t, b, Black, [2]int{3, 5}, [2]int{4, 5})
	_, _, open3 := threatFlags(b, 5, 5, CellBlack)
	require.True(t, open3)

	// Same shape jammed against a white stone is not open.
	placeStones(t, b, White, [2]int{6, 5})
	_, _, open3 = threatFlags(b, 5, 5, CellBlack)
	require.False(t, open3)
}

func TestThreatFlagsWinAndFour(t *testing.T) {
	b := mustBoard(t, 11)
	placeStones(t, b, Black, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0})
	win, _, _ := threatFlags(b, 4, 0, CellBlack)
	require.True(t, win)

	b2 := mustBoard(t, 11)
	placeStones(t, b2, Black, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})
	win, four, _ := threatFlags(b2, 3, 0, CellBlack)
	require.False(t, win)
	require.True(t, four)
}
