package wavefront

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pdrpinto/wavefront/pkg/logger"
)

// Pathfinder holds an immutable search configuration. A single Pathfinder
// may serve concurrent FindPath calls; each call owns its own workers.
type Pathfinder struct {
	options Options
}

// New returns a Pathfinder configured by options applied over DefaultOptions.
func New(options ...Option) *Pathfinder {
	searchOptions := DefaultOptions()
	for _, option := range options {
		option(&searchOptions)
	}
	return &Pathfinder{options: searchOptions}
}

// Options returns a copy of the configuration.
func (p *Pathfinder) Options() Options {
	return p.options
}

// FindPath searches for a shortest path from start to target. The capacity
// of the search is len(out); on success the path, start excluded and target
// included, is written to out[:n] as linear grid indices and n is returned.
func FindPath(
	ctx context.Context,
	grid *Grid,
	start Cell,
	target Cell,
	out []int,
	options ...Option,
) (int, error) {
	return New(options...).FindPath(ctx, grid, start, target, out)
}

// FindPath is the method form of the package-level FindPath.
func (p *Pathfinder) FindPath(ctx context.Context, grid *Grid, start, target Cell, out []int) (int, error) {
	searchID := uuid.NewString()
	mode := p.options.mode()

	ctx, span := tracer.Start(ctx, "FindPath", trace.WithAttributes(
		attribute.String("search_id", searchID),
		attribute.String("mode", mode),
		attribute.String("start", start.String()),
		attribute.String("target", target.String()),
		attribute.Int("capacity", len(out)),
	))
	defer span.End()

	log := p.options.Logger.With(zap.String("search_id", searchID), zap.String("mode", mode))
	begin := time.Now()

	n, expanded, err := p.findPath(ctx, log, grid, start, target, out)

	searchesTotalCounter.WithLabelValues(mode, outcome(err)).Inc()
	searchDurationHistogram.WithLabelValues(mode).Observe(milliseconds(time.Since(begin)))
	if expanded > 0 {
		expandedCellsHistogram.WithLabelValues(mode).Observe(float64(expanded))
	}

	span.SetAttributes(attribute.Int("expanded", expanded))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.DebugWithContext(ctx, "search failed", zap.Error(err), zap.Int("expanded", expanded))
		return 0, err
	}

	span.SetAttributes(attribute.Int("length", n))
	log.DebugWithContext(ctx, "search complete", zap.Int("length", n), zap.Int("expanded", expanded), zap.Duration("elapsed", time.Since(begin)))
	return n, nil
}

func (p *Pathfinder) findPath(ctx context.Context, log logger.Logger, grid *Grid, start, target Cell, out []int) (int, int, error) {
	if err := grid.validate(start, target); err != nil {
		return 0, 0, err
	}
	// A blocked start may still be left, but a blocked target is never entered.
	if start != target && !grid.Traversable(target) {
		return 0, 0, fmt.Errorf("%w: target %s is blocked", ErrNotFound, target)
	}

	if p.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.options.Timeout)
		defer cancel()
	}

	log.DebugWithContext(ctx, "search started",
		zap.Stringer("start", start),
		zap.Stringer("target", target),
		zap.Int("capacity", len(out)),
		zap.Bool("corridor_pruning", p.options.CorridorPruning),
	)

	if p.options.MultiThreaded {
		return p.findBidirectional(ctx, log, grid, start, target, out)
	}
	return p.findSingle(ctx, log, grid, start, target, out)
}

// findSingle runs one wave from start to target and reconstructs directly.
func (p *Pathfinder) findSingle(ctx context.Context, log logger.Logger, grid *Grid, start, target Cell, out []int) (int, int, error) {
	worker := newSearchWorker(grid, start, target, p.options, nil)
	found := worker.expand(ctx, p.options.StepLimit)
	log.DebugWithContext(ctx, "worker finished", zap.Stringer("state", worker.state), zap.Int("expanded", worker.expanded))

	if !found {
		if err := ctx.Err(); err != nil {
			return 0, worker.expanded, err
		}
		return 0, worker.expanded, fmt.Errorf("%w: from %s to %s", ErrNotFound, start, target)
	}

	path, err := worker.reconstruct(target, len(out))
	if err != nil {
		return 0, worker.expanded, err
	}
	return copy(out, path), worker.expanded, nil
}
