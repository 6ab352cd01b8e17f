package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/sysmond/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetArgs strips test-binary flags so Load only sees its own.
func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	os.Args = append([]string{"sysmond"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sysmond.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	resetArgs(t)
	path := writeConfig(t, `
# sampling configuration
LOG_INTERVAL=10
USE_SYSLOG=0
SOME_UNKNOWN_KEY=whatever
`)
	t.Setenv("SYSMOND_CONFIG", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Interval, "Expected Interval 10")
	assert.False(t, cfg.UseSyslog, "Expected UseSyslog false")
	assert.Equal(t, config.DefaultLogFile, cfg.LogFile, "Expected default LogFile")
}

func TestLoadDefaults(t *testing.T) {
	resetArgs(t)
	// Point at a config file that does not exist
	t.Setenv("SYSMOND_CONFIG", filepath.Join(t.TempDir(), "missing.conf"))

	cfg, err := config.Load()
	require.NoError(t, err, "Missing config file must not be an error")

	assert.Equal(t, config.DefaultInterval, cfg.Interval, "Expected default Interval")
	assert.True(t, cfg.UseSyslog, "Expected default UseSyslog true")
	assert.Equal(t, config.DefaultLogFile, cfg.LogFile, "Expected default LogFile")
}

func TestIntervalOutOfRangeFallsBackToDefault(t *testing.T) {
	for _, value := range []string{"0", "-3", "4000", "notanumber"} {
		resetArgs(t)
		path := writeConfig(t, "LOG_INTERVAL="+value+"\n")
		t.Setenv("SYSMOND_CONFIG", path)

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, config.DefaultInterval, cfg.Interval,
			"LOG_INTERVAL=%s should leave the default in place", value)
	}
}

func TestIntervalBounds(t *testing.T) {
	cases := []struct {
		value string
		want  int
	}{
		{"1", 1},
		{"3600", 3600},
	}
	for _, tc := range cases {
		resetArgs(t)
		path := writeConfig(t, "LOG_INTERVAL="+tc.value+"\n")
		t.Setenv("SYSMOND_CONFIG", path)

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, tc.want, cfg.Interval)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	resetArgs(t, "-interval", "7", "-syslog=false")
	path := writeConfig(t, "LOG_INTERVAL=10\nUSE_SYSLOG=1\n")
	t.Setenv("SYSMOND_CONFIG", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Interval, "Expected interval flag to win over the file")
	assert.False(t, cfg.UseSyslog, "Expected syslog flag to win over the file")
}

func TestConfigFlagSelectsFile(t *testing.T) {
	path := writeConfig(t, "LOG_INTERVAL=42\n")
	resetArgs(t, "-config", path)
	t.Setenv("SYSMOND_CONFIG", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Interval)
}

func TestLogFileFlag(t *testing.T) {
	resetArgs(t, "-log-file", "/tmp/other.log")
	t.Setenv("SYSMOND_CONFIG", filepath.Join(t.TempDir(), "missing.conf"))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.log", cfg.LogFile)
}
