// Package gridmap produces raw traversability buffers: seeded random maps for
// benchmarks and tests, and maps stored as raw byte files of width*height
// cells, 1 for traversable and 0 for blocked.
package gridmap

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
)

// Options controls Generate.
type Options struct {
	// Density is the probability that a cell is traversable.
	Density float64
	Seed    uint64
	// Open lists linear indices that are forced traversable.
	Open []int
}

type Option func(*Options)

// WithDensity sets the traversable probability, clamped to [0, 1].
func WithDensity(density float64) Option {
	return func(o *Options) {
		o.Density = min(max(density, 0), 1)
	}
}

func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithOpen forces the given linear indices to be traversable, typically the
// start and target of the search the map is generated for.
func WithOpen(indices ...int) Option {
	return func(o *Options) { o.Open = append(o.Open, indices...) }
}

// Generate returns a width*height buffer where each cell is 1 (traversable)
// with probability Density and 0 otherwise. The default density of 0.6
// matches three traversable values out of five.
func Generate(width, height int, options ...Option) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("map dimensions %dx%d must be positive", width, height)
	}
	opts := Options{Density: 0.6, Seed: 1}
	for _, option := range options {
		option(&opts)
	}

	r := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	cells := make([]byte, width*height)
	for i := range cells {
		if r.Float64() < opts.Density {
			cells[i] = 1
		}
	}
	for _, index := range opts.Open {
		if index < 0 || index >= len(cells) {
			return nil, fmt.Errorf("open cell %d outside %dx%d map", index, width, height)
		}
		cells[index] = 1
	}
	return cells, nil
}

// Open returns a fully traversable width*height buffer.
func Open(width, height int) []byte {
	cells := make([]byte, width*height)
	for i := range cells {
		cells[i] = 1
	}
	return cells
}

// Read reads exactly width*height bytes from r. Every byte must be 0 or 1.
func Read(r io.Reader, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("map dimensions %dx%d must be positive", width, height)
	}
	cells := make([]byte, width*height)
	if _, err := io.ReadFull(r, cells); err != nil {
		return nil, fmt.Errorf("reading %dx%d map: %w", width, height, err)
	}
	if err := check(cells); err != nil {
		return nil, err
	}
	return cells, nil
}

// ReadFile opens path and reads a width*height map from it.
func ReadFile(path string, width, height int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, width, height)
}

// Write writes cells to w in the format Read expects.
func Write(w io.Writer, cells []byte) error {
	if err := check(cells); err != nil {
		return err
	}
	if _, err := w.Write(cells); err != nil {
		return fmt.Errorf("writing map: %w", err)
	}
	return nil
}

// WriteFile creates or truncates path and writes cells to it.
func WriteFile(path string, cells []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return Write(f, cells)
}

func check(cells []byte) error {
	for i, v := range cells {
		if v > 1 {
			return fmt.Errorf("cell %d has value %d, want 0 or 1", i, v)
		}
	}
	return nil
}
