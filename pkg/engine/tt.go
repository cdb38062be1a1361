package engine

import (
	"sync"
	"sync/atomic"
)

// Flag classifies a stored transposition score relative to the alpha-beta
// window it was searched with.
type Flag uint8

const (
	FlagExact Flag = iota
	FlagLower
	FlagUpper
)

func (f Flag) String() string {
	switch f {
	case FlagLower:
		return "lower"
	case FlagUpper:
		return "upper"
	default:
		return "exact"
	}
}

// Entry is one cached search result. Entries are advisory: a lost or
// evicted entry costs time, never correctness.
type Entry struct {
	Key     uint64
	Depth   int
	Score   float64
	Flag    Flag
	Best    Move
	HasBest bool
	Gen     uint32
	Valid   bool
}

// Table is a fixed-capacity transposition table: a power-of-two array of
// set-associative buckets with depth-preferred replacement. Striped
// RWMutexes keep concurrent probes and stores race-free without a single
// global lock; the table can be shared, though the search itself is a
// single logical computation.
type Table struct {
	mask       uint64
	buckets    int
	entries    []Entry
	locks      []sync.RWMutex
	stripeMask uint64
	gen        atomic.Uint32
}

const (
	defaultTTCapacity = 1 << 18
	defaultTTBuckets  = 4
	// Entries untouched for this many generations lose their replacement
	// protection even against shallower stores.
	ttStaleGenerations = 8
)

// NewTable builds a table with roughly capacity entries (rounded up to a
// power of two) split into set-associative buckets.
func NewTable(capacity int, buckets int) *Table {
	if capacity <= 0 {
		capacity = defaultTTCapacity
	}
	if buckets <= 0 {
		buckets = defaultTTBuckets
	}
	size := nextPowerOfTwo(uint64(capacity) / uint64(buckets))
	if size < 1 {
		size = 1
	}
	maxStripes := 64
	if int(size) < maxStripes {
		maxStripes = int(size)
	}
	stripes := 1
	for stripes*2 <= maxStripes {
		stripes *= 2
	}
	t := &Table{
		mask:       size - 1,
		buckets:    buckets,
		entries:    make([]Entry, int(size)*buckets),
		locks:      make([]sync.RWMutex, stripes),
		stripeMask: uint64(stripes - 1),
	}
	t.gen.Store(1)
	return t
}

func (t *Table) bucketIndex(key uint64) int {
	return int(key&t.mask) * t.buckets
}

func (t *Table) stripeFor(key uint64) *sync.RWMutex {
	return &t.locks[(key&t.mask)&t.stripeMask]
}

// Probe looks up a position key.
func (t *Table) Probe(key uint64) (Entry, bool) {
	lock := t.stripeFor(key)
	lock.RLock()
	defer lock.RUnlock()
	start := t.bucketIndex(key)
	for i := 0; i < t.buckets; i++ {
		entry := t.entries[start+i]
		if entry.Valid && entry.Key == key {
			return entry, true
		}
	}
	return Entry{}, false
}

// Store records a search result. An existing entry for the same key is
// overwritten when the new depth is >= the stored depth (depth-preferred
// replacement); in a full bucket the shallowest entry is evicted, with
// stale generations losing protection first.
func (t *Table) Store(key uint64, depth int, score float64, flag Flag, best Move, hasBest bool) {
	lock := t.stripeFor(key)
	lock.Lock()
	defer lock.Unlock()
	gen := t.gen.Load()
	entry := Entry{
		Key:     key,
		Depth:   depth,
		Score:   score,
		Flag:    flag,
		Best:    best,
		HasBest: hasBest,
		Gen:     gen,
		Valid:   true,
	}
	start := t.bucketIndex(key)

	for i := 0; i < t.buckets; i++ {
		idx := start + i
		existing := t.entries[idx]
		if !existing.Valid || existing.Key != key {
			continue
		}
		if depth >= existing.Depth || gen-existing.Gen >= ttStaleGenerations {
			t.entries[idx] = entry
		}
		return
	}

	for i := 0; i < t.buckets; i++ {
		idx := start + i
		if !t.entries[idx].Valid {
			t.entries[idx] = entry
			return
		}
	}

	victim := start
	for i := 1; i < t.buckets; i++ {
		idx := start + i
		if replacePriority(t.entries[idx], gen) < replacePriority(t.entries[victim], gen) {
			victim = idx
		}
	}
	existing := t.entries[victim]
	if depth >= existing.Depth || gen-existing.Gen >= ttStaleGenerations {
		t.entries[victim] = entry
	}
}

// replacePriority ranks bucket occupants for eviction: deeper and fresher
// entries survive longer.
func replacePriority(e Entry, gen uint32) int {
	age := int(gen - e.Gen)
	if age > ttStaleGenerations {
		age = ttStaleGenerations
	}
	return e.Depth*int(ttStaleGenerations+1) - age
}

// NextGeneration ages every stored entry by one search. Called once per
// top-level ChooseMove.
func (t *Table) NextGeneration() {
	gen := t.gen.Add(1)
	if gen == 0 {
		t.gen.CompareAndSwap(0, 1)
	}
}

// Clear wipes the table. Called when a new game starts.
func (t *Table) Clear() {
	for i := range t.locks {
		t.locks[i].Lock()
	}
	defer func() {
		for i := len(t.locks) - 1; i >= 0; i-- {
			t.locks[i].Unlock()
		}
	}()
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
	t.gen.Store(1)
}

// Len counts the valid entries.
func (t *Table) Len() int {
	for i := range t.locks {
		t.locks[i].RLock()
	}
	defer func() {
		for i := len(t.locks) - 1; i >= 0; i-- {
			t.locks[i].RUnlock()
		}
	}()
	count := 0
	for i := range t.entries {
		if t.entries[i].Valid {
			count++
		}
	}
	return count
}

func (t *Table) Capacity() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

func nextPowerOfTwo(v uint64) uint64 {
	if v == 0 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}
