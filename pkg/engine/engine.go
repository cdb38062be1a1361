package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Difficulty caps the deepening loop. Time remains the primary limiter;
// the cap keeps low tiers beatable even on fast hardware.
type Difficulty uint8

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) DepthCap() int {
	switch d {
	case DifficultyEasy:
		return 2
	case DifficultyMedium:
		return 4
	default:
		return 8
	}
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	default:
		return "hard"
	}
}

// ParseDifficulty maps the wire names onto the tiers, defaulting to hard.
func ParseDifficulty(s string) Difficulty {
	switch s {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// Options configures an Engine. The zero value is usable: defaults are
// filled in by NewEngine.
type Options struct {
	MaxDepth       int
	TimeBudget     time.Duration
	TTCapacity     int
	TTBuckets      int
	Weights        Weights
	LogSearchStats bool
	LogTag         string
	Progress       func(Progress)
}

const (
	defaultMaxDepth   = 8
	defaultTimeBudget = 2 * time.Second
)

// Engine owns a transposition table and search configuration and answers
// move queries for any board handed to it. ChooseMove never mutates the
// caller's board: the search runs on a private clone.
type Engine struct {
	mu   sync.Mutex
	opts Options
	tt   *Table
}

func NewEngine(opts Options) *Engine {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = defaultMaxDepth
	}
	if opts.TimeBudget <= 0 {
		opts.TimeBudget = defaultTimeBudget
	}
	if opts.Weights.Zero() {
		opts.Weights = DefaultWeights()
	}
	if opts.LogTag == "" {
		opts.LogTag = "search"
	}
	return &Engine{
		opts: opts,
		tt:   NewTable(opts.TTCapacity, opts.TTBuckets),
	}
}

// TT exposes the transposition table for inspection endpoints.
func (e *Engine) TT() *Table {
	return e.tt
}

// Reset wipes accumulated search state. Call between games: cached scores
// from one game are stale ordering hints at best for the next.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tt.Clear()
}

// Evaluate scores the position heuristically from perspective's side
// without searching.
func (e *Engine) Evaluate(b *Board, perspective Color) (float64, error) {
	if b == nil {
		return 0, fmt.Errorf("nil board: %w", ErrInvalidBoard)
	}
	if !perspective.Valid() {
		return 0, fmt.Errorf("perspective %d: %w", perspective, ErrInvalidMove)
	}
	return Evaluate(b, perspective, e.opts.Weights), nil
}

// ChooseMove picks the best move for toMove within the time budget using
// iterative deepening. Depth 1 always completes regardless of the budget,
// so a legal answer exists whenever a legal move exists; deeper iterations
// that get aborted are discarded and the previous depth's answer stands.
func (e *Engine) ChooseMove(ctx context.Context, b *Board, toMove Color, budget time.Duration, difficulty Difficulty) (SearchResult, error) {
	if b == nil {
		return SearchResult{}, fmt.Errorf("nil board: %w", ErrInvalidBoard)
	}
	if !toMove.Valid() {
		return SearchResult{}, fmt.Errorf("side to move %d: %w", toMove, ErrInvalidMove)
	}
	if b.Full() {
		return SearchResult{}, ErrNoLegalMoves
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if budget <= 0 {
		budget = e.opts.TimeBudget
	}
	maxDepth := difficulty.DepthCap()
	if e.opts.MaxDepth < maxDepth {
		maxDepth = e.opts.MaxDepth
	}

	board := b.Clone()
	candidates := Candidates(board, toMove)
	if len(candidates) == 0 {
		return SearchResult{}, ErrNoLegalMoves
	}
	stats := &SearchStats{Start: time.Now()}
	if len(candidates) == 1 {
		return SearchResult{Move: candidates[0], Score: 0, Depth: 0, Nodes: 0}, nil
	}

	e.tt.NextGeneration()
	s := &searcher{
		board:       board,
		tt:          e.tt,
		weights:     e.opts.Weights,
		player:      toMove,
		ctx:         ctx,
		deadline:    stats.Start.Add(budget),
		hasDeadline: budget > 0,
		stats:       stats,
	}

	var result SearchResult
	haveResult := false
	for depth := 1; depth <= maxDepth; depth++ {
		s.enforceDeadline = depth > 1
		depthStart := time.Now()
		best, score, completed := s.searchRoot(depth)
		if !completed {
			break
		}
		result = SearchResult{Move: best, Score: score, Depth: depth, Nodes: stats.Nodes}
		haveResult = true
		stats.CompletedDepth = depth
		stats.DepthDurations = append(stats.DepthDurations, time.Since(depthStart))
		if e.opts.Progress != nil {
			e.opts.Progress(Progress{
				Depth:   depth,
				Move:    best,
				Score:   score,
				Nodes:   stats.Nodes,
				Elapsed: stats.Elapsed(),
			})
		}
		// A proven win or loss at this depth does not change with more
		// lookahead.
		if score >= evalWin || score <= -evalWin {
			break
		}
		if s.pastDeadline() {
			break
		}
	}

	if e.opts.LogSearchStats {
		log.Println(stats.LogLine(e.opts.LogTag))
	}
	if !haveResult {
		if ctx != nil && ctx.Err() != nil {
			return SearchResult{}, ctx.Err()
		}
		return SearchResult{}, ErrNoLegalMoves
	}
	return result, nil
}

// WinProbability maps a search score onto a display percentage for the
// searching side. Heuristic scores saturate at 95/5; proven wins and
// losses pin to the ends.
func WinProbability(score float64) int {
	switch {
	case score >= evalWin:
		return 99
	case score <= -evalWin:
		return 1
	}
	shift := int(score / 2000)
	if shift > 45 {
		shift = 45
	}
	if shift < -45 {
		shift = -45
	}
	return 50 + shift
}
