package wavefront

import (
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/require"
)

func TestCrossingLogDeduplicates(t *testing.T) {
	l := newCrossingLog()
	l.Append(4)
	l.Append(2)
	l.Append(4)
	l.Append(9)

	require.Equal(t, 3, l.Len())
	require.Equal(t, []int32{4, 2, 9}, l.Snapshot())
}

func TestHandshakeScanOrder(t *testing.T) {
	forward := newCrossingLog()
	backward := newCrossingLog()

	_, ok := handshake(forward, backward)
	require.False(t, ok)

	for _, index := range []int32{5, 3, 7, 1} {
		forward.Append(index)
	}
	_, ok = handshake(forward, backward)
	require.False(t, ok)

	for _, index := range []int32{7, 3, 8} {
		backward.Append(index)
	}

	meeting, ok := handshake(forward, backward)
	require.True(t, ok)
	require.Equal(t, int32(3), meeting, "first forward cell present in backward log")

	meeting, ok = handshake(backward, forward)
	require.True(t, ok)
	require.Equal(t, int32(7), meeting, "scan order follows the first log")
}

func TestCrossingLogConcurrentAccess(t *testing.T) {
	const n = 10000
	l := newCrossingLog()
	probe := newCrossingLog()
	probe.Append(n - 1)

	var wg conc.WaitGroup
	wg.Go(func() {
		for i := int32(0); i < n; i++ {
			l.Append(i)
		}
	})
	wg.Go(func() {
		for l.Len() < n {
			snapshot := l.Snapshot()
			for i, v := range snapshot {
				if int32(i) != v {
					t.Errorf("snapshot[%d] = %d", i, v)
					return
				}
			}
			handshake(l, probe)
		}
	})
	wg.Wait()

	meeting, ok := handshake(l, probe)
	require.True(t, ok)
	require.Equal(t, int32(n-1), meeting)
}
