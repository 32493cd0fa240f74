package wavefront

import (
	"fmt"
	"math"
)

// Traversable and Blocked are the two cell values of a grid buffer.
const (
	Blocked     byte = 0
	Traversable byte = 1
)

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is a read-only view over a row-major traversability buffer.
// It is never written after construction, so concurrent searches may share it.
type Grid struct {
	width  int
	height int
	cells  []byte
}

// NewGrid wraps cells, which must hold exactly width*height bytes.
// The buffer is not copied; callers must not mutate it while a search runs.
func NewGrid(width, height int, cells []byte) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions %dx%d must be positive", ErrInvalidInput, width, height)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: empty grid buffer", ErrInvalidInput)
	}
	if width > math.MaxInt32/height {
		return nil, fmt.Errorf("%w: grid %dx%d has too many cells", ErrInvalidInput, width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: grid buffer holds %d cells, want %d", ErrInvalidInput, len(cells), width*height)
	}
	return &Grid{width: width, height: height, cells: cells}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Size returns the number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether 0 <= c.X < width and 0 <= c.Y < height.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Traversable reports whether c is inside the grid and not blocked.
func (g *Grid) Traversable(c Cell) bool {
	return g.InBounds(c) && g.cells[g.Index(c)] == Traversable
}

// Index returns the linear index of c. c must be in bounds.
func (g *Grid) Index(c Cell) int {
	return c.Y*g.width + c.X
}

// CellAt is the inverse of Index.
func (g *Grid) CellAt(index int) Cell {
	return Cell{X: index % g.width, Y: index / g.width}
}

func (g *Grid) validate(start, target Cell) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidInput)
	}
	if !g.InBounds(start) {
		return fmt.Errorf("%w: start %s outside %dx%d grid", ErrInvalidInput, start, g.width, g.height)
	}
	if !g.InBounds(target) {
		return fmt.Errorf("%w: target %s outside %dx%d grid", ErrInvalidInput, target, g.width, g.height)
	}
	return nil
}
