package engine

import (
	"fmt"
	"strings"
	"time"
)

// SearchStats accumulates counters for one top-level search.
type SearchStats struct {
	Nodes          int64
	TTProbes       int64
	TTHits         int64
	TTStores       int64
	TTCutoffs      int64
	Cutoffs        int64
	Evaluations    int64
	CompletedDepth int
	Start          time.Time
	DepthDurations []time.Duration
}

func (s *SearchStats) Elapsed() time.Duration {
	if s.Start.IsZero() {
		return 0
	}
	return time.Since(s.Start)
}

// LogLine renders the one-line stats dump emitted behind the
// LogSearchStats flag.
func (s *SearchStats) LogLine(tag string) string {
	elapsed := s.Elapsed()
	nps := 0.0
	if elapsed > 0 {
		nps = float64(s.Nodes) / elapsed.Seconds()
	}
	hitRate := 0.0
	if s.TTProbes > 0 {
		hitRate = float64(s.TTHits) * 100.0 / float64(s.TTProbes)
	}
	parts := make([]string, 0, len(s.DepthDurations))
	for _, d := range s.DepthDurations {
		parts = append(parts, fmt.Sprintf("%dms", d.Milliseconds()))
	}
	return fmt.Sprintf("[ai:%s] t=%dms completed=%d nodes=%d nps=%.0f evals=%d tt_probe=%d tt_hit=%d tt_hit_rate=%.1f%% tt_store=%d cutoffs=%d tt_cutoffs=%d depth_times=[%s]",
		tag,
		elapsed.Milliseconds(),
		s.CompletedDepth,
		s.Nodes,
		nps,
		s.Evaluations,
		s.TTProbes,
		s.TTHits,
		hitRate,
		s.TTStores,
		s.Cutoffs,
		s.TTCutoffs,
		strings.Join(parts, ","),
	)
}
