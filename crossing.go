package wavefront

import "sync"

// crossingLog collects the cells a worker reached past the midpoint toward
// its target. The owning worker appends, the coordinator reads.
type crossingLog struct {
	mu    sync.RWMutex
	cells []int32
	seen  map[int32]struct{}
}

func newCrossingLog() *crossingLog {
	return &crossingLog{seen: make(map[int32]struct{})}
}

// Append records index once; later duplicates are ignored so the first
// occurrence keeps its position.
func (l *crossingLog) Append(index int32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[index]; ok {
		return
	}
	l.seen[index] = struct{}{}
	l.cells = append(l.cells, index)
}

func (l *crossingLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cells)
}

// Snapshot returns a copy of the recorded cells in append order.
func (l *crossingLog) Snapshot() []int32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]int32, len(l.cells))
	copy(out, l.cells)
	return out
}

// FirstCommon scans candidates in order and returns the first one that is
// also present in l.
func (l *crossingLog) FirstCommon(candidates []int32) (int32, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, index := range candidates {
		if _, ok := l.seen[index]; ok {
			return index, true
		}
	}
	return -1, false
}

// handshake returns the first cell of from (in append order) that is also
// recorded in other.
func handshake(from, other *crossingLog) (int32, bool) {
	if from.Len() == 0 || other.Len() == 0 {
		return -1, false
	}
	return other.FirstCommon(from.Snapshot())
}
