package engine

import "errors"

var (
	// ErrInvalidBoard rejects board construction with an unplayable size.
	ErrInvalidBoard = errors.New("invalid board")

	// ErrInvalidMove rejects out-of-bounds or occupied placements before
	// they reach the board.
	ErrInvalidMove = errors.New("invalid move")

	// ErrNoLegalMoves is returned by ChooseMove on a full board. The
	// position is a draw, not a failure.
	ErrNoLegalMoves = errors.New("no legal moves")
)
