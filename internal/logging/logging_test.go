package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chronos-tachyon/huffcodec/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Console(t *testing.T) {
	var console bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Level: "info", Console: &console})
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug().Msg("hidden")
	logger.Info().Str("table", "default.json").Msg("opened encoder")

	out := console.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "opened encoder")
	assert.Contains(t, out, "default.json")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huffcodec.log")
	var console bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Level: "debug", File: path, Console: &console})
	require.NoError(t, err)

	logger.Debug().Int("symbols", 100).Msg("built code table")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(raw))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "built code table", entry["message"])
	assert.Equal(t, float64(100), entry["symbols"])
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := logging.New(logging.Options{Level: "loud"})
	assert.Error(t, err)
}
