package wavefront

import (
	"time"

	"github.com/pdrpinto/wavefront/pkg/logger"
)

const (
	// DefaultWindowSize is the corridor tolerance used when pruning is enabled
	// without an explicit window.
	DefaultWindowSize = 3

	// DefaultPollInterval is how often the coordinator looks for a handshake.
	DefaultPollInterval = 100 * time.Millisecond
)

// Options defines parameters for a search.
type Options struct {
	// MultiThreaded runs two waves toward each other instead of one.
	MultiThreaded bool

	// CorridorPruning skips neighbors that move away from the target by more
	// than WindowSize beyond the straight-line distance.
	CorridorPruning bool
	WindowSize      int

	// StepLimit bounds how far a wave may travel. Zero means unbounded.
	StepLimit int

	PollInterval time.Duration

	// Timeout bounds a whole search. Zero means no bound beyond the caller's context.
	Timeout time.Duration

	Logger logger.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// DefaultOptions returns a single-threaded, unpruned configuration.
func DefaultOptions() Options {
	return Options{
		WindowSize:   DefaultWindowSize,
		PollInterval: DefaultPollInterval,
		Logger:       logger.NewNoopLogger(),
	}
}

// WithMultiThreaded switches between the bidirectional search and a single wave.
func WithMultiThreaded(enabled bool) Option {
	return func(options *Options) { options.MultiThreaded = enabled }
}

// WithCorridorPruning enables or disables corridor pruning. A non-positive
// window keeps the current one.
func WithCorridorPruning(enabled bool, window int) Option {
	return func(options *Options) {
		options.CorridorPruning = enabled
		if window > 0 {
			options.WindowSize = window
		}
	}
}

// WithStepLimit caps the number of steps a wave may take from its origin.
func WithStepLimit(limit int) Option {
	return func(options *Options) { options.StepLimit = limit }
}

// WithPollInterval sets how often the bidirectional coordinator scans for a handshake.
func WithPollInterval(interval time.Duration) Option {
	return func(options *Options) {
		if interval > 0 {
			options.PollInterval = interval
		}
	}
}

// WithTimeout bounds the duration of a search.
func WithTimeout(timeout time.Duration) Option {
	return func(options *Options) { options.Timeout = timeout }
}

// WithLogger sets the logger used for search diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(options *Options) {
		if l != nil {
			options.Logger = l
		}
	}
}

func (o Options) mode() string {
	if o.MultiThreaded {
		return "bidirectional"
	}
	return "single"
}
