package logger

import (
	"bytes"
	"context"
	"testing"

	"golang.org/x/exp/slog"
	"qrkeeper/internal/app/server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		env            string
		expectedLevel  slog.Level
		expectedPretty bool
	}{
		{
			name:           "local environment",
			env:            config.EnvLocal,
			expectedLevel:  slog.LevelDebug,
			expectedPretty: true,
		},
		{
			name:           "dev environment",
			env:            config.EnvDev,
			expectedLevel:  slog.LevelDebug,
			expectedPretty: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env, "")
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= 0, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.expectedLevel <= slog.LevelInfo, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog(slog.LevelDebug)
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}

func TestNewLoggerLevels(t *testing.T) {
	ctx := context.Background()

	// Prod - только INFO и выше
	prodLogger := New(config.EnvProd, "")
	assert.False(t, prodLogger.Enabled(ctx, slog.LevelDebug))
	assert.True(t, prodLogger.Enabled(ctx, slog.LevelInfo))

	// Dev - DEBUG и выше
	devLogger := New(config.EnvDev, "")
	assert.True(t, devLogger.Enabled(ctx, slog.LevelDebug))
	assert.True(t, devLogger.Enabled(ctx, slog.LevelInfo))

	// Local - DEBUG (pretty)
	localLogger := New(config.EnvLocal, "")
	assert.True(t, localLogger.Enabled(ctx, slog.LevelDebug))
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With("component", "test")

	log.Info("hello", "id", "abc123")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, `"component": "test"`)
	assert.Contains(t, out, `"id": "abc123"`)
}

func TestNewCLI(t *testing.T) {
	ctx := context.Background()

	quiet := NewCLI(false, "")
	assert.False(t, quiet.Enabled(ctx, slog.LevelInfo))
	assert.True(t, quiet.Enabled(ctx, slog.LevelWarn))

	verbose := NewCLI(true, "error")
	assert.True(t, verbose.Enabled(ctx, slog.LevelDebug))

	fromEnv := NewCLI(false, "info")
	assert.True(t, fromEnv.Enabled(ctx, slog.LevelInfo))
	assert.False(t, fromEnv.Enabled(ctx, slog.LevelDebug))
}

func TestNew_LogLevelOverride(t *testing.T) {
	ctx := context.Background()

	prodDebug := New(config.EnvProd, "debug")
	assert.True(t, prodDebug.Enabled(ctx, slog.LevelDebug))

	localWarn := New(config.EnvLocal, "WARN")
	assert.False(t, localWarn.Enabled(ctx, slog.LevelInfo))
	assert.True(t, localWarn.Enabled(ctx, slog.LevelWarn))

	devUnknown := New(config.EnvDev, "verbose")
	assert.True(t, devUnknown.Enabled(ctx, slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" Info ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"trace", slog.LevelWarn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in, slog.LevelWarn), tt.in)
	}
}
