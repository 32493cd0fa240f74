package gridmap

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("deterministic_for_seed", func(t *testing.T) {
		a, err := Generate(64, 64, WithSeed(7))
		require.NoError(t, err)
		b, err := Generate(64, 64, WithSeed(7))
		require.NoError(t, err)
		require.Equal(t, a, b)
	})

	t.Run("only_zero_and_one", func(t *testing.T) {
		cells, err := Generate(32, 16, WithSeed(3), WithDensity(0.5))
		require.NoError(t, err)
		require.Len(t, cells, 32*16)
		for _, v := range cells {
			require.Contains(t, []byte{0, 1}, v)
		}
	})

	t.Run("density_bounds", func(t *testing.T) {
		full, err := Generate(10, 10, WithDensity(2))
		require.NoError(t, err)
		require.Equal(t, Open(10, 10), full)

		empty, err := Generate(10, 10, WithDensity(-1))
		require.NoError(t, err)
		require.Equal(t, make([]byte, 100), empty)
	})

	t.Run("open_cells_forced", func(t *testing.T) {
		cells, err := Generate(10, 10, WithDensity(0), WithOpen(0, 99))
		require.NoError(t, err)
		require.Equal(t, byte(1), cells[0])
		require.Equal(t, byte(1), cells[99])
		require.Equal(t, byte(0), cells[50])
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Generate(0, 10)
		require.Error(t, err)
		_, err = Generate(10, 10, WithOpen(100))
		require.Error(t, err)
	})
}

func TestRead(t *testing.T) {
	t.Run("rejects_other_values", func(t *testing.T) {
		cells, err := Read(bytes.NewReader([]byte{0, 1, 1, 0}), 2, 2)
		require.NoError(t, err)
		require.Equal(t, []byte{0, 1, 1, 0}, cells)

		_, err = Read(bytes.NewReader([]byte{0, 1, 2, 1}), 2, 2)
		require.ErrorContains(t, err, "cell 2 has value 2")
		_, err = Read(bytes.NewReader([]byte{255, 1, 1, 1}), 2, 2)
		require.Error(t, err)
	})

	t.Run("short_input", func(t *testing.T) {
		_, err := Read(bytes.NewReader([]byte{1, 1, 1}), 2, 2)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "square.map")
		require.NoError(t, os.WriteFile(path, []byte{1, 0, 0, 1}, 0o600))

		cells, err := ReadFile(path, 2, 2)
		require.NoError(t, err)
		require.Equal(t, []byte{1, 0, 0, 1}, cells)

		_, err = ReadFile(filepath.Join(t.TempDir(), "missing.map"), 2, 2)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestWriteReadRoundTrip(t *testing.T) {
	cells, err := Generate(40, 25, WithSeed(11), WithDensity(0.7))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cells))
	require.Equal(t, len(cells), buf.Len())

	loaded, err := Read(&buf, 40, 25)
	require.NoError(t, err)
	require.Equal(t, cells, loaded)

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "generated.map")
		require.NoError(t, WriteFile(path, cells))

		loaded, err := ReadFile(path, 40, 25)
		require.NoError(t, err)
		require.Equal(t, cells, loaded)

		require.NoError(t, WriteFile(path, Open(2, 2)))
		loaded, err = ReadFile(path, 2, 2)
		require.NoError(t, err)
		require.Equal(t, Open(2, 2), loaded)
	})

	t.Run("invalid_cells", func(t *testing.T) {
		var buf bytes.Buffer
		require.Error(t, Write(&buf, []byte{1, 7}))
		require.Zero(t, buf.Len())
	})

	t.Run("missing_directory", func(t *testing.T) {
		err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.map"), cells)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
