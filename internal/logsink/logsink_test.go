package logsink_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"codeberg.org/mutker/sysmond/internal/logsink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lineFormat = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[[A-Z]+\] \[[^\]]+\] .+$`)

func openTestSink(t *testing.T) (*logsink.Sink, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sysmond.log")
	sink, err := logsink.Open(logsink.Config{Path: path, UseSyslog: false, Tag: "sysmond"})
	require.NoError(t, err)
	t.Cleanup(func() { sink.Close() })
	return sink, path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(content)), "\n")
}

func TestLineFormat(t *testing.T) {
	t.Setenv("USER", "tester")
	sink, path := openTestSink(t)

	sink.Info().Msg("hello world")
	sink.Warn().Msg("something odd")

	lines := readLines(t, path)
	require.Len(t, lines, 2)

	for _, line := range lines {
		assert.Regexp(t, lineFormat, line)
		assert.Contains(t, line, "[tester]")
	}
	assert.Contains(t, lines[0], "[INFO] [tester] hello world")
	assert.Contains(t, lines[1], "[WARNING] [tester] something odd")
}

func TestUsernameFallback(t *testing.T) {
	t.Setenv("USER", "")
	t.Setenv("USERNAME", "")
	sink, path := openTestSink(t)

	sink.Info().Msg("anonymous")

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[unknown]")
}

func TestLevels(t *testing.T) {
	sink, path := openTestSink(t)

	sink.Debug().Msg("d")
	sink.Info().Msg("i")
	sink.Warn().Msg("w")
	sink.Error().Msg("e")

	lines := readLines(t, path)
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "[DEBUG]")
	assert.Contains(t, lines[1], "[INFO]")
	assert.Contains(t, lines[2], "[WARNING]")
	assert.Contains(t, lines[3], "[ERROR]")
}

func TestMsgf(t *testing.T) {
	sink, path := openTestSink(t)

	sink.Info().Msgf("Logging interval: %d seconds", 5)

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], "Logging interval: 5 seconds"))
}

func TestAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysmond.log")
	require.NoError(t, os.WriteFile(path, []byte("existing line\n"), 0o644))

	sink, err := logsink.Open(logsink.Config{Path: path, UseSyslog: false, Tag: "sysmond"})
	require.NoError(t, err)
	defer sink.Close()

	sink.Info().Msg("appended")

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "existing line", lines[0])
}

func TestOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "sysmond.log")

	_, err := logsink.Open(logsink.Config{Path: path, UseSyslog: false, Tag: "sysmond"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to open log sink")
}

func TestPathAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysmond.log")
	sink, err := logsink.Open(logsink.Config{Path: path, UseSyslog: false, Tag: "sysmond"})
	require.NoError(t, err)

	assert.Equal(t, path, sink.Path())
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close())
}
