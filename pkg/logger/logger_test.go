package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevels(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name          string
		log           func(Logger, string)
		expectedLevel zapcore.Level
	}{
		{"Debug", func(l Logger, m string) { l.Debug(m) }, zapcore.DebugLevel},
		{"Info", func(l Logger, m string) { l.Info(m) }, zapcore.InfoLevel},
		{"Warn", func(l Logger, m string) { l.Warn(m) }, zapcore.WarnLevel},
		{"Error", func(l Logger, m string) { l.Error(m) }, zapcore.ErrorLevel},
		{"DebugWithContext", func(l Logger, m string) { l.DebugWithContext(ctx, m) }, zapcore.DebugLevel},
		{"InfoWithContext", func(l Logger, m string) { l.InfoWithContext(ctx, m) }, zapcore.InfoLevel},
		{"WarnWithContext", func(l Logger, m string) { l.WarnWithContext(ctx, m) }, zapcore.WarnLevel},
		{"ErrorWithContext", func(l Logger, m string) { l.ErrorWithContext(ctx, m) }, zapcore.ErrorLevel},
	} {
		t.Run(tc.name, func(t *testing.T) {
			observerLogger, logs := observer.New(zap.DebugLevel)
			dut := &ZapLogger{zap.New(observerLogger)}
			const testMessage = "ABC"

			tc.log(dut, testMessage)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			require.Equal(t, testMessage, entry.Message)
			require.Empty(t, entry.ContextMap())
			require.Equal(t, tc.expectedLevel, entry.Level)
		})
	}
}

func TestWithCarriesFields(t *testing.T) {
	observerLogger, logs := observer.New(zap.DebugLevel)
	dut := &ZapLogger{zap.New(observerLogger)}

	child := dut.With(zap.String("search_id", "abc"))
	child.Info("started")
	dut.Info("plain")

	require.Equal(t, 2, logs.Len())
	require.Equal(t, map[string]interface{}{"search_id": "abc"}, logs.All()[0].ContextMap())
	require.Empty(t, logs.All()[1].ContextMap())
}

func TestNewLogger(t *testing.T) {
	t.Run("none_is_noop", func(t *testing.T) {
		l, err := NewLogger("text", "none")
		require.NoError(t, err)
		require.NotNil(t, l)
	})

	t.Run("known_formats", func(t *testing.T) {
		for _, format := range []string{"text", "json"} {
			l, err := NewLogger(format, "debug")
			require.NoError(t, err)
			require.NotNil(t, l)
		}
	})

	t.Run("unknown_level", func(t *testing.T) {
		_, err := NewLogger("text", "verbose")
		require.ErrorContains(t, err, "unknown log level")
	})

	t.Run("unknown_format", func(t *testing.T) {
		_, err := NewLogger("xml", "info")
		require.ErrorContains(t, err, "unknown log format")
	})
}
