package wavefront

import "errors"

var (
	// ErrInvalidInput is returned when the grid, the endpoints or the output
	// buffer cannot describe a valid search. No expansion is started.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when every reachable cell was visited, within
	// the corridor and step limit, without reaching the target.
	ErrNotFound = errors.New("no path found")

	// ErrOverflow is returned when a path exists but is longer than the
	// output buffer. Nothing is written to the buffer in that case.
	ErrOverflow = errors.New("path exceeds output capacity")
)
