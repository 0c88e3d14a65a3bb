package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"essaybot/pkg/logger"
)

// observed returns a context carrying a logger whose output is captured for
// assertions.
func observed(ctx context.Context, level zap.AtomicLevel) (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(level)

	return logger.WithLogger(ctx, zap.New(core)), logs
}

func TestSetup(t *testing.T) {
	for _, environment := range []string{logger.DevelopmentEnvironment, logger.ProductionEnvironment} {
		t.Run(environment, func(t *testing.T) {
			require.NotPanics(t, func() {
				logger.Setup(environment)
			})
			require.NotNil(t, logger.Get(context.Background()))
		})
	}
}

func TestGet_PrefersContextLogger(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment)

	// bare context falls back to the default logger
	fallback := logger.Get(context.Background())
	require.NotNil(t, fallback)

	attached := zap.NewNop()
	ctx := logger.WithLogger(context.Background(), attached)
	require.Same(t, attached, logger.Get(ctx))

	// a child context keeps the attached logger
	child, cancel := context.WithCancel(ctx)
	defer cancel()
	require.Same(t, attached, logger.Get(child))
}

func TestWithFields_PropagatesDownstream(t *testing.T) {
	ctx, logs := observed(context.Background(), zap.NewAtomicLevelAt(zap.InfoLevel))

	ctx = logger.WithFields(ctx, zap.Int64("chatID", 100))
	ctx = logger.WithFields(ctx, zap.String("mediaGroupID", "g1"))

	logger.Info(ctx, "published")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "published", entries[0].Message)

	fields := entries[0].ContextMap()
	require.EqualValues(t, 100, fields["chatID"])
	require.EqualValues(t, "g1", fields["mediaGroupID"])
}

func TestIsDebug(t *testing.T) {
	debugCtx, _ := observed(context.Background(), zap.NewAtomicLevelAt(zap.DebugLevel))
	require.True(t, logger.IsDebug(debugCtx))

	infoCtx, _ := observed(context.Background(), zap.NewAtomicLevelAt(zap.InfoLevel))
	require.False(t, logger.IsDebug(infoCtx))
}

func TestLevels(t *testing.T) {
	ctx, logs := observed(context.Background(), zap.NewAtomicLevelAt(zap.DebugLevel))

	logger.Debug(ctx, "polling")
	logger.Info(ctx, "publishing", zap.String("path", "src/content/essays/x.md"))
	logger.Warn(ctx, "unauthorized user")
	logger.Error(ctx, "upload failed")

	entries := logs.All()
	require.Len(t, entries, 4)
	require.Equal(t, zap.DebugLevel, entries[0].Level)
	require.Equal(t, zap.InfoLevel, entries[1].Level)
	require.Equal(t, zap.WarnLevel, entries[2].Level)
	require.Equal(t, zap.ErrorLevel, entries[3].Level)
}
