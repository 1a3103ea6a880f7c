package store

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	dirName        = ".taskboard"
	sqliteFileName = "taskboard.sqlite"
)

// Store is a data directory on disk. The board state itself lives in a KV
// backend; the directory also holds the SQLite file and UI state.
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .taskboard directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, dirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) SQLitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

// Exists reports whether the directory has been initialized.
func (s Store) Exists() bool {
	if strings.TrimSpace(s.Dir) == "" {
		return false
	}
	st, err := os.Stat(s.Dir)
	return err == nil && st.IsDir()
}
