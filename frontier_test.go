package wavefront

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrontierFIFO(t *testing.T) {
	queue := newFrontier(0)
	require.Equal(t, 0, queue.Len())

	// interleave pushes and pops so the ring wraps before it grows
	next := int32(0)
	var popped []int32
	for round := 0; round < 10; round++ {
		for i := 0; i < 12; i++ {
			queue.Push(next)
			next++
		}
		for i := 0; i < 7; i++ {
			popped = append(popped, queue.Pop())
		}
	}
	for queue.Len() > 0 {
		popped = append(popped, queue.Pop())
	}

	require.Len(t, popped, int(next))
	for i, v := range popped {
		require.Equal(t, int32(i), v)
	}
}

func TestFrontierPeek(t *testing.T) {
	queue := newFrontier(0)
	queue.Push(4)
	queue.Push(9)
	require.Equal(t, int32(4), queue.Peek())
	require.Equal(t, 2, queue.Len())
	require.Equal(t, int32(4), queue.Pop())
	require.Equal(t, int32(9), queue.Peek())
}
