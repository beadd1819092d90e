package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every ROTA_* variable for the test and returns a scratch dir.
func isolate(t *testing.T) string {
	t.Helper()
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "ROTA_") {
			t.Setenv(strings.SplitN(kv, "=", 2)[0], "")
		}
	}
	for _, k := range []string{"ROTA_SERVER", "ROTA_HISTORY_LIMIT", PathEnv} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return t.TempDir()
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)
	c, err := Load(Options{EnvFile: filepath.Join(dir, "missing.env"), Paths: []string{dir}})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", c.Server)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Equal(t, 300*time.Millisecond, c.Debounce)
	assert.Equal(t, 100, c.HistoryLimit)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, strings.HasPrefix(c.LogFile, "~"), "log file should be expanded: %s", c.LogFile)
	assert.Empty(t, c.File)
}

func TestLoadFileAndClamp(t *testing.T) {
	dir := isolate(t)
	yaml := "server: http://rota.example:9000\ndebounce: 50ms\nhistory:\n  limit: 900\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rota.yaml"), []byte(yaml), 0o600))

	c, err := Load(Options{EnvFile: filepath.Join(dir, "missing.env"), Paths: []string{dir}})
	require.NoError(t, err)

	assert.Equal(t, "http://rota.example:9000", c.Server)
	assert.Equal(t, 50*time.Millisecond, c.Debounce)
	assert.Equal(t, 500, c.HistoryLimit, "history limit is clamped to the store maximum")
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, filepath.Join(dir, ".rota.yaml"), c.File)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rota.yaml"), []byte("server: http://file:1\n"), 0o600))
	t.Setenv("ROTA_SERVER", "http://env:2")

	c, err := Load(Options{EnvFile: filepath.Join(dir, "missing.env"), Paths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "http://env:2", c.Server)
}

func TestConfigPathEnv(t *testing.T) {
	dir := isolate(t)
	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(other, ".rota.yaml"), []byte("server: http://override:3\n"), 0o600))
	t.Setenv(PathEnv, other)

	c, err := Load(Options{EnvFile: filepath.Join(dir, "missing.env"), Paths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "http://override:3", c.Server)
}

func TestDotenvFile(t *testing.T) {
	dir := isolate(t)
	env := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(env, []byte("ROTA_HISTORY_LIMIT=7\n"), 0o600))

	c, err := Load(Options{EnvFile: env, Paths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, 7, c.HistoryLimit)
}
