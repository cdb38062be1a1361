package engine

import "sync"

// zobristTable holds one random key per (cell, color) plus a side-to-move
// key. Tables are deterministic per board size so hashes are stable across
// processes and runs.
type zobristTable struct {
	size   int
	cells  []uint64
	side   uint64
	player uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[int]*zobristTable
}

var zobristTables = &zobristStore{tables: make(map[int]*zobristTable)}

func zobristFor(size int) *zobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	if table, ok := zobristTables.tables[size]; ok {
		return table
	}
	rng := splitmix64{state: 0x9e3779b97f4a7c15 ^ uint64(size)}
	table := &zobristTable{size: size, cells: make([]uint64, size*size*2)}
	for i := range table.cells {
		table.cells[i] = rng.next()
	}
	table.side = rng.next()
	table.player = rng.next()
	zobristTables.tables[size] = table
	return table
}

func (z *zobristTable) stone(x, y int, color Color) uint64 {
	idx := (y*z.size + x) * 2
	if color == White {
		idx++
	}
	return z.cells[idx]
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
