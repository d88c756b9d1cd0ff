package logger_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskapi/internal/config"
	"taskapi/internal/platform/logger"
)

func TestSetupLevels(t *testing.T) {
	t.Parallel()

	for _, level := range []string{"debug", "info", "warn", "error"} {
		log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: level})
		require.NoError(t, err, "level %q should be accepted", level)
		require.NotNil(t, log)
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: "verbose"})
	require.Error(t, err)
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := logger.WithLogger(context.Background(), custom)

	assert.Same(t, custom, logger.FromContext(ctx))
	assert.Same(t, slog.Default(), logger.FromContext(context.Background()),
		"missing logger should fall back to the default")
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx := logger.WithLogger(context.Background(), custom)
	assert.Same(t, custom, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
}
