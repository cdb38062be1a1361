package engine

import (
	"context"
	"math"
	"time"
)

// nodeCheckInterval is how many node visits pass between deadline and
// cancellation checks. Cooperative stopping: the budget is honored within
// a bounded latency, not instantaneously.
const nodeCheckInterval = 1024

// SearchResult is the immutable outcome of one top-level search. Score is
// from the searching player's perspective; Depth is the deepest fully
// completed iteration.
type SearchResult struct {
	Move  Move    `json:"move"`
	Score float64 `json:"score"`
	Depth int     `json:"depth"`
	Nodes int64   `json:"nodes"`
}

// Progress is reported after every completed deepening iteration.
type Progress struct {
	Depth   int           `json:"depth"`
	Move    Move          `json:"move"`
	Score   float64       `json:"score"`
	Nodes   int64         `json:"nodes"`
	Elapsed time.Duration `json:"-"`
}

type searcher struct {
	board   *Board
	tt      *Table
	weights Weights
	player  Color

	ctx             context.Context
	deadline        time.Time
	hasDeadline     bool
	enforceDeadline bool

	stats      *SearchStats
	aborted    bool
	sinceCheck int
}

// checkAbort is the only suspension point of the search. It polls the
// deadline and the caller's context every nodeCheckInterval visits.
func (s *searcher) checkAbort() bool {
	if s.aborted {
		return true
	}
	s.sinceCheck++
	if s.sinceCheck < nodeCheckInterval {
		return false
	}
	s.sinceCheck = 0
	if s.ctx != nil {
		select {
		case <-s.ctx.Done():
			s.aborted = true
			return true
		default:
		}
	}
	if s.enforceDeadline && s.hasDeadline && time.Now().After(s.deadline) {
		s.aborted = true
		return true
	}
	return false
}

func (s *searcher) pastDeadline() bool {
	return s.hasDeadline && time.Now().After(s.deadline)
}

// searchRoot runs one full-width alpha-beta iteration to the given depth.
// completed is false when the iteration was aborted; its partial values
// must then be discarded by the caller.
func (s *searcher) searchRoot(depth int) (best Move, score float64, completed bool) {
	key := s.board.SearchKey(s.player, s.player)
	ttMove := s.probeMove(key, s.player)
	moves := OrderMoves(s.board, Candidates(s.board, s.player), ttMove)
	if len(moves) == 0 {
		return Move{}, 0, false
	}
	alpha := math.Inf(-1)
	beta := math.Inf(1)
	haveBest := false
	for _, m := range moves {
		if err := s.board.Apply(m); err != nil {
			continue
		}
		s.stats.Nodes++
		value, ok := s.childValue(m, depth, alpha, beta)
		s.board.Undo(m)
		if !ok {
			return Move{}, 0, false
		}
		if !haveBest || value > score {
			score = value
			best = m
			haveBest = true
		}
		if score > alpha {
			alpha = score
		}
	}
	if !haveBest {
		return Move{}, 0, false
	}
	s.tt.Store(key, depth, score, FlagExact, best, true)
	s.stats.TTStores++
	return best, score, true
}

// alphabeta scores the current position for toMove with depth plies left.
// The apply/undo bracket around each child restores the board on every
// exit path, including prune breaks and aborts.
func (s *searcher) alphabeta(depth int, toMove Color, alpha, beta float64) (float64, bool) {
	if s.checkAbort() {
		return 0, false
	}
	s.stats.Nodes++
	key := s.board.SearchKey(toMove, s.player)
	alphaOrig := alpha
	betaOrig := beta

	var ttMove *Move
	s.stats.TTProbes++
	if entry, ok := s.tt.Probe(key); ok {
		s.stats.TTHits++
		if entry.HasBest {
			mv := entry.Best
			mv.Color = toMove
			ttMove = &mv
		}
		if entry.Depth >= depth {
			switch entry.Flag {
			case FlagExact:
				s.stats.TTCutoffs++
				return entry.Score, true
			case FlagLower:
				if entry.Score > alpha {
					alpha = entry.Score
				}
			case FlagUpper:
				if entry.Score < beta {
					beta = entry.Score
				}
			}
			if alpha >= beta {
				s.stats.TTCutoffs++
				return entry.Score, true
			}
		}
	}

	maximizing := toMove == s.player
	moves := OrderMoves(s.board, Candidates(s.board, toMove), ttMove)
	if len(moves) == 0 {
		return 0, true
	}
	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}
	var bestMove Move
	haveBest := false
	for _, m := range moves {
		if err := s.board.Apply(m); err != nil {
			continue
		}
		value, ok := s.childValue(m, depth, alpha, beta)
		s.board.Undo(m)
		if !ok {
			return 0, false
		}
		if maximizing {
			if !haveBest || value > best {
				best = value
				bestMove = m
				haveBest = true
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if !haveBest || value < best {
				best = value
				bestMove = m
				haveBest = true
			}
			if best < beta {
				beta = best
			}
		}
		if alpha >= beta {
			s.stats.Cutoffs++
			break
		}
	}
	if !haveBest {
		return 0, false
	}
	flag := FlagExact
	if best <= alphaOrig {
		flag = FlagUpper
	} else if best >= betaOrig {
		flag = FlagLower
	}
	s.tt.Store(key, depth, best, flag, bestMove, true)
	s.stats.TTStores++
	return best, true
}

// childValue scores the position after m was just applied. Terminal
// positions short-circuit with the win score; depth exhaustion calls the
// evaluator — the only place leaf evaluation happens.
func (s *searcher) childValue(m Move, depth int, alpha, beta float64) (float64, bool) {
	switch status := s.board.Outcome(m); {
	case status == StatusDraw:
		return 0, true
	case status.Terminal():
		if m.Color == s.player {
			return evalWin, true
		}
		return -evalWin, true
	}
	if depth <= 1 {
		s.stats.Evaluations++
		return Evaluate(s.board, s.player, s.weights), true
	}
	return s.alphabeta(depth-1, m.Color.Other(), alpha, beta)
}

func (s *searcher) probeMove(key uint64, toMove Color) *Move {
	s.stats.TTProbes++
	entry, ok := s.tt.Probe(key)
	if !ok {
		return nil
	}
	s.stats.TTHits++
	if !entry.HasBest {
		return nil
	}
	mv := entry.Best
	mv.Color = toMove
	return &mv
}
