package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronos-tachyon/huffcodec/internal/workspace"
)

const sampleText = "she sells sea shells by the sea shore\n"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, err := execute(t, args...)
	if cerr := closeState(); cerr != nil {
		t.Errorf("closeState failed: %v", cerr)
	}
	return out, err
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath = ""
	compressTable = ""
	extractTable = ""
	inspectWeights = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_RoundTrip(t *testing.T) {
	t.Setenv("HUFFCODEC_LOG_LEVEL", "error")
	dir := t.TempDir()
	sample := filepath.Join(dir, "sample.txt")
	table := filepath.Join(dir, "sea.json")
	packed := filepath.Join(dir, "sample.bin")
	restored := filepath.Join(dir, "restored.txt")
	require.NoError(t, os.WriteFile(sample, []byte(sampleText), 0o644))

	out, err := run(t, "new", sample, table)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved code table sea.json with 100 symbols")

	out, err = run(t, "compress", "-t", table, sample, packed)
	require.NoError(t, err)
	assert.Contains(t, out, "using sea.json")

	_, err = run(t, "extract", "-t", table, packed, restored)
	require.NoError(t, err)
	raw, err := os.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, sampleText, string(raw))

	out, err = run(t, "inspect", "-w", table)
	require.NoError(t, err)
	assert.Contains(t, out, "sea.json: (Huffman decoder with 100 symbols")
	assert.Contains(t, out, "\tCode(' ') = ")
	assert.Contains(t, out, "\tWeight('s') = ")
}

func TestCLI_DefaultTable(t *testing.T) {
	t.Setenv("HUFFCODEC_LOG_LEVEL", "error")
	dir := t.TempDir()
	sample := filepath.Join(dir, "sample.txt")
	table := filepath.Join(dir, "sea.yaml")
	require.NoError(t, os.WriteFile(sample, []byte(sampleText), 0o644))

	_, err := run(t, "new", sample, table)
	require.NoError(t, err)

	_, err = run(t, "inspect")
	assert.ErrorIs(t, err, workspace.ErrNoEncoder)

	t.Setenv("HUFFCODEC_ENCODER_DEFAULT_PATH", table)
	out, err := run(t, "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "sea.yaml: ")
}

func TestCLI_CloseAfterFailure(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HUFFCODEC_LOG_LEVEL", "error")
	t.Setenv("HUFFCODEC_LOG_FILE", filepath.Join(dir, "huffcodec.log"))

	missing := filepath.Join(dir, "missing.json")
	_, err := execute(t, "compress", "-t", missing, filepath.Join(dir, "in.txt"), filepath.Join(dir, "out.bin"))
	require.Error(t, err)
	require.NotNil(t, state)

	logFile, ok := state.closer.(*os.File)
	require.True(t, ok, "expected the log file as closer, got %T", state.closer)

	require.NoError(t, closeState())
	assert.Nil(t, state)
	assert.ErrorIs(t, logFile.Close(), os.ErrClosed)
	assert.NoError(t, closeState())
}

func TestCLI_Version(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "huffcodec dev\n", out)
}
