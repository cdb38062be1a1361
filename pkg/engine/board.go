package engine

import "fmt"

// Cell is the content of one board intersection.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

// Color identifies a player. The numeric values line up with Cell so a
// stone placed by a player is Cell(color).
type Color uint8

const (
	Black Color = Color(CellBlack)
	White Color = Color(CellWhite)
)

func (c Color) Other() Color {
	if c == Black {
		return White
	}
	return Black
}

func (c Color) Valid() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "None"
	}
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	default:
		return "Empty"
	}
}

// Move is one stone placement.
type Move struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Color Color `json:"color"`
}

func (m Move) Equals(other Move) bool {
	return m.X == other.X && m.Y == other.Y && m.Color == other.Color
}

// Board is a square grid sized at construction. Cells live in a single
// contiguous buffer indexed y*size + x. The zobrist hash is maintained
// incrementally by Apply and Undo.
type Board struct {
	size   int
	cells  []Cell
	stones int
	hash   uint64
	zob    *zobristTable
}

// MinBoardSize is the smallest board a five-in-a-row game makes sense on.
const MinBoardSize = 5

// NewBoard creates an empty board. Size is a construction-time parameter;
// the usual game sizes are 10, 15 and 19.
func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize {
		return nil, fmt.Errorf("board size %d below minimum %d: %w", size, MinBoardSize, ErrInvalidBoard)
	}
	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
		zob:   zobristFor(size),
	}, nil
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) index(x, y int) int {
	return y*b.size + x
}

func (b *Board) At(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

func (b *Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.At(x, y) == CellEmpty
}

// Stones reports the number of occupied cells.
func (b *Board) Stones() int {
	return b.stones
}

func (b *Board) Full() bool {
	return b.stones == len(b.cells)
}

// Apply places the move's stone. Out-of-bounds or occupied targets fail
// with ErrInvalidMove before the board is touched.
func (b *Board) Apply(m Move) error {
	if !m.Color.Valid() {
		return fmt.Errorf("move (%d,%d) has no color: %w", m.X, m.Y, ErrInvalidMove)
	}
	if !b.InBounds(m.X, m.Y) {
		return fmt.Errorf("move (%d,%d) out of bounds on %dx%d board: %w", m.X, m.Y, b.size, b.size, ErrInvalidMove)
	}
	idx := b.index(m.X, m.Y)
	if b.cells[idx] != CellEmpty {
		return fmt.Errorf("cell (%d,%d) occupied: %w", m.X, m.Y, ErrInvalidMove)
	}
	b.cells[idx] = Cell(m.Color)
	b.stones++
	b.hash ^= b.zob.stone(m.X, m.Y, m.Color)
	return nil
}

// Undo removes the move's stone, exactly inverting Apply. A mismatch
// between the move and the board content is a programming defect that
// would corrupt search state, so it panics rather than being masked.
func (b *Board) Undo(m Move) {
	if !b.InBounds(m.X, m.Y) || b.At(m.X, m.Y) != Cell(m.Color) {
		panic(fmt.Sprintf("engine: undo mismatch at (%d,%d): board holds %v, move says %v", m.X, m.Y, b.At(m.X, m.Y), m.Color))
	}
	b.cells[b.index(m.X, m.Y)] = CellEmpty
	b.stones--
	b.hash ^= b.zob.stone(m.X, m.Y, m.Color)
}

// Hash is the zobrist hash of the stones alone. Key folds in the side to
// move and is what the transposition table is keyed by.
func (b *Board) Hash() uint64 {
	return b.hash
}

func (b *Board) Key(toMove Color) uint64 {
	if toMove == White {
		return b.hash ^ b.zob.side
	}
	return b.hash
}

// SearchKey extends Key with the player the scores are relative to.
// Cached search values are signed from the searching player's perspective,
// so an engine answering for both colors must never share entries across
// perspectives: the same position holds opposite values for them.
func (b *Board) SearchKey(toMove, player Color) uint64 {
	key := b.Key(toMove)
	if player == White {
		key ^= b.zob.player
	}
	return key
}

func (b *Board) Clone() *Board {
	clone := &Board{
		size:   b.size,
		cells:  make([]Cell, len(b.cells)),
		stones: b.stones,
		hash:   b.hash,
		zob:    b.zob,
	}
	copy(clone.cells, b.cells)
	return clone
}

// Equal reports bit-identical board content.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size || b.stones != other.stones || b.hash != other.hash {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// EmptyCellsNear returns every empty cell within Chebyshev distance
// radius of at least one stone. A full-board scan per search node is
// wasteful on 19x19, so candidate generation goes through this.
func (b *Board) EmptyCellsNear(radius int) []Move {
	if radius < 1 {
		radius = 1
	}
	seen := make([]bool, len(b.cells))
	out := make([]Move, 0, 64)
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if b.At(x, y) == CellEmpty {
				continue
			}
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := x + dx
					ny := y + dy
					if !b.IsEmpty(nx, ny) {
						continue
					}
					idx := b.index(nx, ny)
					if !seen[idx] {
						seen[idx] = true
						out = append(out, Move{X: nx, Y: ny})
					}
				}
			}
		}
	}
	return out
}

// CountBlackWhite returns the stone counts per color.
func (b *Board) CountBlackWhite() (black, white int) {
	for _, cell := range b.cells {
		switch cell {
		case CellBlack:
			black++
		case CellWhite:
			white++
		}
	}
	return black, white
}

func (b *Board) String() string {
	out := make([]byte, 0, (b.size+1)*b.size)
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			switch b.At(x, y) {
			case CellBlack:
				out = append(out, 'X')
			case CellWhite:
				out = append(out, 'O')
			default:
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
