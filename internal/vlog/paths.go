package vlog

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.vettore/logs/).
// Falls back to the temp directory if the home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".vettore", "logs")
	}
	return filepath.Join(home, ".vettore", "logs")
}

// DefaultLogPath returns the default engine log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "vettore.log")
}

// EnsureLogDir creates the log directory if it doesn't already exist.
func EnsureLogDir() error {
	return os.MkdirAll(DefaultLogDir(), 0o755)
}
