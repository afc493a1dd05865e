package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core).Sugar()

	ctx := WithLogger(context.Background(), l)
	Log(ctx).Infof("loaded %d operations", 3)

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "loaded 3 operations", logs.All()[0].Message)
}

func TestLogFallsBackToGlobal(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := global
	global = zap.New(core).Sugar()
	defer func() { global = prev }()

	Log(context.Background()).Info("fallback")
	assert.Equal(t, 1, logs.Len())
}

func TestRunSetsLevel(t *testing.T) {
	prev := global
	defer func() { global = prev }()

	l := Run("warn")
	assert.False(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Desugar().Core().Enabled(zapcore.WarnLevel))

	l = Run("nonsense")
	assert.True(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
}
