package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "weather.log")

	logger, err := New(path, false)
	require.NoError(t, err)

	logger.Info("lookup", zap.String("query", "02633,us"))
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug entries should be filtered at info level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "lookup", entry["msg"])
	assert.Equal(t, "02633,us", entry["query"])
}

func TestNew_Debug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, err := New(path, true)
	require.NoError(t, err)

	logger.Debug("visible")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}

func TestNew_Stderr(t *testing.T) {
	logger, err := New("", false)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
