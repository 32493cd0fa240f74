package wavefront

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	for _, tc := range []struct {
		name          string
		width, height int
		cells         []byte
	}{
		{"zero_width", 0, 4, make([]byte, 4)},
		{"negative_height", 4, -1, make([]byte, 4)},
		{"nil_buffer", 2, 2, nil},
		{"short_buffer", 2, 2, make([]byte, 3)},
		{"long_buffer", 2, 2, make([]byte, 5)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			grid, err := NewGrid(tc.width, tc.height, tc.cells)
			require.ErrorIs(t, err, ErrInvalidInput)
			require.Nil(t, grid)
		})
	}
}

func TestGridBounds(t *testing.T) {
	grid := openGrid(t, 4, 3)

	require.True(t, grid.InBounds(Cell{0, 0}))
	require.True(t, grid.InBounds(Cell{3, 2}))
	require.False(t, grid.InBounds(Cell{4, 0}))
	require.False(t, grid.InBounds(Cell{0, 3}))
	require.False(t, grid.InBounds(Cell{-1, 0}))
	require.False(t, grid.InBounds(Cell{0, -1}))
	require.False(t, grid.Traversable(Cell{4, 2}))
}

func TestGridIndex(t *testing.T) {
	grid := openGrid(t, 5, 3)

	require.Equal(t, 0, grid.Index(Cell{0, 0}))
	require.Equal(t, 4, grid.Index(Cell{4, 0}))
	require.Equal(t, 5, grid.Index(Cell{0, 1}))
	require.Equal(t, 14, grid.Index(Cell{4, 2}))

	for i := 0; i < grid.Size(); i++ {
		require.Equal(t, i, grid.Index(grid.CellAt(i)))
	}
}

func TestGridTraversable(t *testing.T) {
	grid := gridFromRows(t,
		".#",
		"#.",
	)
	require.True(t, grid.Traversable(Cell{0, 0}))
	require.False(t, grid.Traversable(Cell{1, 0}))
	require.False(t, grid.Traversable(Cell{0, 1}))
	require.True(t, grid.Traversable(Cell{1, 1}))
}

func TestGridValidate(t *testing.T) {
	var nilGrid *Grid
	require.ErrorIs(t, nilGrid.validate(Cell{}, Cell{}), ErrInvalidInput)

	grid := openGrid(t, 3, 3)
	require.NoError(t, grid.validate(Cell{0, 0}, Cell{2, 2}))
	require.ErrorIs(t, grid.validate(Cell{3, 0}, Cell{2, 2}), ErrInvalidInput)
	require.ErrorIs(t, grid.validate(Cell{0, 0}, Cell{2, 3}), ErrInvalidInput)
}
