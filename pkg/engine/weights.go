package engine

// Weights is the pattern weight table. It is immutable configuration:
// callers hand a value to NewEngine and the engine never mutates it.
//
// The tiers are spaced far enough apart that summing every realistically
// co-occurring lesser pattern still cannot reach the next tier, so two
// materially different threat levels never tie. Relative order, not the
// exact numbers, is what matters: open four > double open three > single
// open three > blocked four > open two.
type Weights struct {
	Open4       float64 `json:"open_4" yaml:"open_4"`
	Closed4     float64 `json:"closed_4" yaml:"closed_4"`
	Broken4     float64 `json:"broken_4" yaml:"broken_4"`
	Open3       float64 `json:"open_3" yaml:"open_3"`
	Broken3     float64 `json:"broken_3" yaml:"broken_3"`
	Closed3     float64 `json:"closed_3" yaml:"closed_3"`
	Open2       float64 `json:"open_2" yaml:"open_2"`
	Broken2     float64 `json:"broken_2" yaml:"broken_2"`
	ForkOpen3   float64 `json:"fork_open_3" yaml:"fork_open_3"`
	ForkDouble4 float64 `json:"fork_double_4" yaml:"fork_double_4"`
}

func DefaultWeights() Weights {
	return Weights{
		Open4:       800000.0,
		ForkDouble4: 400000.0,
		ForkOpen3:   120000.0,
		Open3:       20000.0,
		Broken4:     12000.0,
		Closed4:     10000.0,
		Broken3:     3000.0,
		Closed3:     600.0,
		Open2:       150.0,
		Broken2:     60.0,
	}
}

// Zero reports whether the table was left unset, in which case the engine
// falls back to DefaultWeights.
func (w Weights) Zero() bool {
	return w == Weights{}
}
