package wavefront

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMilliseconds(t *testing.T) {
	require.InDelta(t, 0.25, milliseconds(250*time.Microsecond), 1e-9)
	require.InDelta(t, 1.5, milliseconds(1500*time.Microsecond), 1e-9)
	require.InDelta(t, 2000.0, milliseconds(2*time.Second), 1e-9)
	require.Zero(t, milliseconds(0))
}

func TestOutcome(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want string
	}{
		{nil, "found"},
		{fmt.Errorf("%w: wrapped", ErrNotFound), "not_found"},
		{ErrOverflow, "overflow"},
		{ErrInvalidInput, "invalid_input"},
		{context.DeadlineExceeded, "canceled"},
	} {
		require.Equal(t, tc.want, outcome(tc.err))
	}
}
