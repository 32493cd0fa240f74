package wavefront

import (
	"context"
	"fmt"
	"math"

	"github.com/pdrpinto/wavefront/internal"
)

type workerState int

const (
	stateIdle workerState = iota
	stateExpanding
	stateFound
	stateExhausted
	stateStopped
)

func (s workerState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateExpanding:
		return "expanding"
	case stateFound:
		return "found"
	case stateExhausted:
		return "exhausted"
	case stateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// directions is the neighbor scan order: +x, -x, +y, -y.
var directions = [4]Cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

const (
	unvisited int32 = -1
	// noLevel is the level of a worker whose frontier is empty.
	noLevel = math.MaxInt32
)

// searchWorker runs one wavefront from origin toward goal. It is single-use:
// a new search needs a new worker.
type searchWorker struct {
	grid      *Grid
	origin    Cell
	goal      Cell
	goalIndex int32

	pruning bool
	window  int
	// straight is the Manhattan distance from origin to goal; cells within
	// midpoint of the goal are recorded in crossing.
	straight int
	midpoint int

	// crossing is nil unless the worker is paired with another one.
	crossing *crossingLog
	// meet is set once the paired waves are joined; every cell relaxed
	// afterwards is offered to it.
	meet *meeting

	distance []int32
	parent   []int32
	frontier *frontier

	state    workerState
	expanded int
}

func newSearchWorker(grid *Grid, origin, goal Cell, options Options, crossing *crossingLog) *searchWorker {
	straight := internal.Manhattan(origin.X, origin.Y, goal.X, goal.Y)
	worker := &searchWorker{
		grid:      grid,
		origin:    origin,
		goal:      goal,
		goalIndex: int32(grid.Index(goal)),
		pruning:   options.CorridorPruning,
		window:    options.WindowSize,
		straight:  straight,
		// Rounded up so both waves of an odd-length pair can meet on a common cell.
		midpoint: (straight + 1) / 2,
		crossing: crossing,
		distance: make([]int32, grid.Size()),
		parent:   make([]int32, grid.Size()),
		frontier: newFrontier(grid.Width() + grid.Height()),
	}
	for i := range worker.distance {
		worker.distance[i] = unvisited
		worker.parent[i] = unvisited
	}
	return worker
}

// begin seeds the frontier with the origin.
func (w *searchWorker) begin() {
	w.state = stateExpanding
	originIndex := int32(w.grid.Index(w.origin))
	w.distance[originIndex] = 0
	w.frontier.Push(originIndex)
}

// expand runs the wavefront until the goal is reached, the frontier runs dry
// or ctx is done. Cells whose step count would exceed stepLimit are not
// expanded; a stepLimit <= 0 disables the limit. The context is only checked
// between frontier pops, so a stopped worker keeps its frontier intact.
func (w *searchWorker) expand(ctx context.Context, stepLimit int) bool {
	w.begin()
	if int32(w.grid.Index(w.origin)) == w.goalIndex {
		w.state = stateFound
		return true
	}

	for w.frontier.Len() > 0 {
		if ctx.Err() != nil {
			w.state = stateStopped
			return false
		}
		if w.visit(w.frontier.Pop(), stepLimit) {
			w.state = stateFound
			return true
		}
	}

	w.state = stateExhausted
	return false
}

// visit expands one popped cell and reports whether the goal is among its
// neighbors. A cell whose neighbors would lie past stepLimit is dropped.
func (w *searchWorker) visit(current int32, stepLimit int) bool {
	step := w.distance[current] + 1
	if stepLimit > 0 && int(step) > stepLimit {
		return false
	}
	w.expanded++

	currentCell := w.grid.CellAt(int(current))
	currentToGoal := internal.Manhattan(currentCell.X, currentCell.Y, w.goal.X, w.goal.Y)
	found := false

	for _, dir := range directions {
		next := Cell{X: currentCell.X + dir.X, Y: currentCell.Y + dir.Y}
		if !w.grid.Traversable(next) {
			continue
		}

		nextToGoal := internal.Manhattan(next.X, next.Y, w.goal.X, w.goal.Y)
		if w.pruning && nextToGoal > currentToGoal && nextToGoal > w.straight+w.window {
			continue
		}

		nextIndex := int32(w.grid.Index(next))
		if nextIndex == w.goalIndex {
			found = true
		}

		if previous := w.distance[nextIndex]; previous == unvisited || previous > step {
			w.distance[nextIndex] = step
			w.parent[nextIndex] = current
			w.frontier.Push(nextIndex)
			if w.meet != nil {
				w.meet.offer(nextIndex)
			}
		}

		if w.crossing != nil && nextToGoal <= w.midpoint {
			w.crossing.Append(nextIndex)
		}
	}
	return found
}

// level returns the step count of the next cell to expand, or noLevel when
// the frontier is empty. Every cell with a smaller step count has already
// been expanded.
func (w *searchWorker) level() int {
	if w.frontier.Len() == 0 {
		return noLevel
	}
	return int(w.distance[w.frontier.Peek()])
}

// expandLevel expands every pending cell of the current level.
func (w *searchWorker) expandLevel(stepLimit int) {
	level := w.level()
	for w.frontier.Len() > 0 && w.level() == level {
		w.visit(w.frontier.Pop(), stepLimit)
	}
}

// reached reports whether the worker has a distance entry for index.
func (w *searchWorker) reached(index int) bool {
	return index >= 0 && index < len(w.distance) && w.distance[index] != unvisited
}

// reconstruct returns the cells from the origin (excluded) to node
// (included), following the parent recorded when each cell was last relaxed.
// Parents were set in +x, -x, +y, -y scan order, so ties resolve the same way
// on every run.
func (w *searchWorker) reconstruct(node Cell, capacity int) ([]int, error) {
	if !w.grid.InBounds(node) {
		return nil, fmt.Errorf("%w: %s is outside the grid", ErrNotFound, node)
	}
	nodeIndex := w.grid.Index(node)
	if !w.reached(nodeIndex) {
		return nil, fmt.Errorf("%w: %s was never reached from %s", ErrNotFound, node, w.origin)
	}

	originIndex := int32(w.grid.Index(w.origin))
	length := 0
	for current := int32(nodeIndex); current != originIndex; current = w.parent[current] {
		if current == unvisited || length > len(w.parent) {
			return nil, fmt.Errorf("%w: broken parent chain at %s", ErrNotFound, w.grid.CellAt(int(current)))
		}
		length++
	}
	if length > capacity {
		return nil, fmt.Errorf("%w: %d steps from %s to %s, capacity %d", ErrOverflow, length, w.origin, node, capacity)
	}

	path := make([]int, length)
	current := int32(nodeIndex)
	for i := length - 1; i >= 0; i-- {
		path[i] = int(current)
		current = w.parent[current]
	}
	return path, nil
}
