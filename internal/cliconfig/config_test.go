package cliconfig

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDotEnvMissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { require.NoError(t, os.Chdir(wd)) }()

	require.NoError(t, LoadDotEnv())
}

func TestLoadDotEnvSetsEnvironment(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { require.NoError(t, os.Chdir(wd)) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("IFENGINE_TEST_VAR=hello\n"), 0o644))
	defer os.Unsetenv("IFENGINE_TEST_VAR")

	require.NoError(t, LoadDotEnv())
	require.Equal(t, "hello", os.Getenv("IFENGINE_TEST_VAR"))
}

func TestNewLoggerLevels(t *testing.T) {
	cases := []struct {
		name  string
		level slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tc := range cases {
		logger := NewLogger(tc.name)
		require.True(t, logger.Enabled(context.Background(), tc.level))
		if tc.level > slog.LevelDebug {
			require.False(t, logger.Enabled(context.Background(), tc.level-1))
		}
	}
}
