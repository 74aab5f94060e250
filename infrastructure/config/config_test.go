package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "graphd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, 3, cfg.MinTitleLength)
	assert.True(t, cfg.AllowSelfConnections)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	// Arrange
	path := writeConfig(t, t.TempDir(), `
server_address: ":9000"
log_level: debug
min_title_length: 5
shutdown_timeout: 30s
allowed_origins:
  - https://a.example
rate_limit_rps: 20
`)
	t.Setenv("SERVER_ADDRESS", ":9100")
	t.Setenv("ALLOW_SELF_CONNECTIONS", "false")

	// Act
	cfg, err := Load(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.ServerAddress)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5, cfg.MinTitleLength)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.False(t, cfg.AllowSelfConnections)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		env    map[string]string
		noFile bool
	}{
		{name: "missing file", noFile: true},
		{name: "malformed yaml", body: "server_address: [unclosed"},
		{name: "unknown log level", body: "log_level: loud"},
		{name: "zero title length", body: "min_title_length: 0"},
		{name: "negative rate", body: "rate_limit_rps: -1"},
		{name: "production without event bus", env: map[string]string{"ENVIRONMENT": "production"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "missing.yaml")
			if !tt.noFile {
				path = writeConfig(t, dir, tt.body)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestWatcher_ReloadAppliesLogLevel(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := writeConfig(t, dir, "log_level: info\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	w := NewWatcher(cfg, level, zap.NewNop())

	var seen *Config
	w.OnChange(func(c *Config) { seen = c })

	// Act
	writeConfig(t, dir, "log_level: debug\n")
	w.Reload()

	// Assert
	assert.Equal(t, zapcore.DebugLevel, level.Level())
	require.NotNil(t, seen)
	assert.Equal(t, "debug", w.Current().LogLevel)
}

func TestWatcher_InvalidReloadKeepsCurrent(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "log_level: warn\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	w := NewWatcher(cfg, level, zap.NewNop())

	writeConfig(t, dir, "log_level: loud\n")
	w.Reload()

	assert.Equal(t, zapcore.WarnLevel, level.Level())
	assert.Same(t, cfg, w.Current())
}

func TestWatcher_RunPicksUpFileChanges(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := writeConfig(t, dir, "log_level: info\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	w := NewWatcher(cfg, level, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Act
	assert.Eventually(t, func() bool {
		writeConfig(t, dir, "log_level: error\n")
		return level.Level() == zapcore.ErrorLevel
	}, 5*time.Second, 200*time.Millisecond)

	// Assert
	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_RunWithoutFileWaitsForCancel(t *testing.T) {
	w := NewWatcher(Defaults(), zap.NewAtomicLevel(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, w.Run(ctx))
}
