package localstate

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	envHome    = "ASODI_STATE_DIR" // override for tests and multi-profile setups
	dirName    = ".asodi"          // default under $HOME
	dbFilename = "state.db"
)

// DataDir returns the directory where local state is stored. An explicit dir
// wins, then ASODI_STATE_DIR, then ~/.asodi. The directory is created with
// 0700 permissions.
func DataDir(dir string) (string, error) {
	if dir == "" {
		dir = os.Getenv(envHome)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user home: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// DBPath returns the absolute path to the SQLite state file under DataDir(dir).
func DBPath(dir string) (string, error) {
	d, err := DataDir(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(d, dbFilename), nil
}
