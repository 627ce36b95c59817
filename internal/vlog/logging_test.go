package vlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TS01: Setup with a file path writes JSON lines to disk.
func TestSetup_WritesToFile(t *testing.T) {
	// Given: a temp log path
	dir := t.TempDir()
	path := filepath.Join(dir, "vettore.log")

	// When: setting up logging and emitting a record
	logger, cleanup, err := Setup(Config{Level: "debug", FilePath: path, WriteToStderr: false})
	require.NoError(t, err)
	defer cleanup()

	logger.Info("collection created", "name", "docs")

	// Then: the file contains the message
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "collection created")
	assert.Contains(t, string(data), "docs")
}

// TS02: Rotation kicks in once the size budget is exceeded.
func TestRotatingWriter_Rotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vettore.log")

	w, err := newRotatingWriter(path, 0, 2) // maxSize rounds to 0 MB -> always rotate
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	_, statErr := os.Stat(path + ".1")
	assert.NoError(t, statErr)
}

func TestDiscard_NeverPanics(t *testing.T) {
	logger := Discard()
	assert.NotPanics(t, func() {
		logger.Info("noop")
	})
}
