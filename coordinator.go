package wavefront

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/pdrpinto/wavefront/internal"
	"github.com/pdrpinto/wavefront/pkg/logger"
)

// findBidirectional runs a wave from start and a wave from target
// concurrently until polling finds a handshake cell. The waves are then
// settled on the calling goroutine so the stitched path is a shortest one.
//
// The polling loop ends on a handshake, as soon as either wave finishes, or
// when ctx is done. Every wave over a finite grid ends in found or exhausted,
// so the loop always terminates; WithTimeout only shortens the wait.
func (p *Pathfinder) findBidirectional(ctx context.Context, log logger.Logger, grid *Grid, start, target Cell, out []int) (int, int, error) {
	forwardLog := newCrossingLog()
	backwardLog := newCrossingLog()

	forward := newSearchWorker(grid, start, target, p.options, forwardLog)
	backward := newSearchWorker(grid, target, start, p.options, backwardLog)

	forwardCtx, stopForward := context.WithCancel(ctx)
	defer stopForward()
	backwardCtx, stopBackward := context.WithCancel(ctx)
	defer stopBackward()

	forwardDone := make(chan struct{})
	backwardDone := make(chan struct{})

	var wg conc.WaitGroup
	wg.Go(func() {
		defer close(forwardDone)
		forward.expand(forwardCtx, p.options.StepLimit)
	})
	wg.Go(func() {
		defer close(backwardDone)
		backward.expand(backwardCtx, p.options.StepLimit)
	})

	rendezvous, met := p.awaitHandshake(ctx, forwardLog, backwardLog, forwardDone, backwardDone)

	stopForward()
	stopBackward()
	wg.Wait()

	log.DebugWithContext(ctx, "workers joined",
		zap.Stringer("forward_state", forward.state),
		zap.Stringer("backward_state", backward.state),
		zap.Int("forward_crossings", forwardLog.Len()),
		zap.Int("backward_crossings", backwardLog.Len()),
	)

	source := "poll"
	switch {
	case met:
	case forward.state == stateFound, backward.state == stateFound:
		return p.finishDirect(ctx, log, forward, backward, grid, start, target, out, forward.expanded+backward.expanded)
	default:
		if err := ctx.Err(); err != nil {
			return 0, forward.expanded + backward.expanded, err
		}
		rendezvous, met = handshake(forwardLog, backwardLog)
		source = "final_scan"
	}

	if !met {
		return 0, forward.expanded + backward.expanded, fmt.Errorf("%w: from %s to %s", ErrNotFound, start, target)
	}
	handshakesTotalCounter.WithLabelValues(source).Inc()
	log.DebugWithContext(ctx, "handshake found", zap.Stringer("cell", grid.CellAt(int(rendezvous))), zap.String("source", source))

	candidates := append([]int32{rendezvous}, forwardLog.Snapshot()...)
	best, err := p.settle(ctx, forward, backward, candidates)
	expanded := forward.expanded + backward.expanded
	if err != nil {
		return 0, expanded, err
	}

	meetingCell := grid.CellAt(int(best.index))
	log.DebugWithContext(ctx, "waves settled", zap.Stringer("cell", meetingCell), zap.Int("length", best.length))

	n, err := stitch(forward, backward, meetingCell, grid.Index(target), out)
	return n, expanded, err
}

// meeting tracks the cell with the fewest combined steps among the cells
// reached by both waves. Ties keep the cell offered first.
type meeting struct {
	forward, backward *searchWorker
	index             int32
	length            int
}

func (m *meeting) offer(index int32) {
	forwardSteps, backwardSteps := m.forward.distance[index], m.backward.distance[index]
	if forwardSteps == unvisited || backwardSteps == unvisited {
		return
	}
	if length := int(forwardSteps) + int(backwardSteps); length < m.length {
		m.index = index
		m.length = length
	}
}

// settled reports whether no route shorter than the best meeting is left to
// find. Any shorter route would cross a cell at most the forward level from
// start and at most the backward level from target; such a cell has been
// reached by both waves and offered already.
func (m *meeting) settled() bool {
	return int64(m.length) <= int64(m.forward.level())+int64(m.backward.level())
}

// settle runs on the coordinator once both workers are joined. It offers
// candidates first, in order, then every other cell, and keeps expanding the
// smaller frontier one level at a time until the best meeting is settled.
func (p *Pathfinder) settle(ctx context.Context, forward, backward *searchWorker, candidates []int32) (*meeting, error) {
	best := &meeting{forward: forward, backward: backward, index: unvisited, length: noLevel}
	for _, index := range candidates {
		best.offer(index)
	}
	for index := range forward.distance {
		best.offer(int32(index))
	}

	forward.meet, backward.meet = best, best
	defer func() { forward.meet, backward.meet = nil, nil }()

	for !best.settled() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if forward.frontier.Len() <= backward.frontier.Len() {
			forward.expandLevel(p.options.StepLimit)
		} else {
			backward.expandLevel(p.options.StepLimit)
		}
	}

	if best.index == unvisited {
		return nil, fmt.Errorf("%w: waves from %s and %s never met", ErrNotFound, forward.origin, backward.origin)
	}
	return best, nil
}

// awaitHandshake polls both crossing logs until they share a cell. It gives
// up without a handshake when either worker finishes or ctx is done.
func (p *Pathfinder) awaitHandshake(
	ctx context.Context,
	forwardLog, backwardLog *crossingLog,
	forwardDone, backwardDone <-chan struct{},
) (int32, bool) {
	ticker := time.NewTicker(p.options.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return -1, false
		case <-forwardDone:
			return -1, false
		case <-backwardDone:
			return -1, false
		case <-ticker.C:
			if index, ok := handshake(forwardLog, backwardLog); ok {
				return index, true
			}
		}
	}
}

// finishDirect handles a wave that reached its own target before any
// handshake was seen. The forward wave's path is used as is; the backward
// wave's path is turned around.
func (p *Pathfinder) finishDirect(
	ctx context.Context,
	log logger.Logger,
	forward, backward *searchWorker,
	grid *Grid,
	start, target Cell,
	out []int,
	expanded int,
) (int, int, error) {
	handshakesTotalCounter.WithLabelValues("direct").Inc()

	if forward.state == stateFound {
		log.DebugWithContext(ctx, "forward wave reached target")
		path, err := forward.reconstruct(target, len(out))
		if err != nil {
			return 0, expanded, err
		}
		return copy(out, path), expanded, nil
	}

	log.DebugWithContext(ctx, "backward wave reached start")
	n, err := stitch(nil, backward, start, grid.Index(target), out)
	return n, expanded, err
}

// stitch joins forward's path to meeting with backward's path to meeting,
// turned around so it runs from meeting to target. A nil forward worker means
// meeting is the start cell. Nothing is written to out unless the whole path
// fits.
func stitch(forward, backward *searchWorker, meeting Cell, targetIndex int, out []int) (int, error) {
	var head []int
	if forward != nil {
		var err error
		if head, err = forward.reconstruct(meeting, len(out)); err != nil {
			return 0, err
		}
	}
	tail, err := backward.reconstruct(meeting, len(out))
	if err != nil {
		return 0, err
	}

	length := len(head) + len(tail)
	if length > len(out) {
		return 0, fmt.Errorf("%w: %d steps through %s, capacity %d", ErrOverflow, length, meeting, len(out))
	}

	// tail runs target-side neighbor ... meeting. Turned around and with the
	// meeting cell dropped, it continues head up to the cell before target.
	n := copy(out, head)
	if len(tail) > 0 {
		internal.Reverse(tail)
		n += copy(out[n:], tail[1:])
		out[n] = targetIndex
		n++
	}
	return n, nil
}
