// Package fileutil holds small filesystem helpers shared by the config and
// cache layers.
package fileutil

import (
	"os"
	"path/filepath"
)

// WriteAtomic writes data to path through a temp file in the same directory
// (named after pattern, see os.CreateTemp) and a rename. Parent directories
// are created 0700; the final file is 0600.
func WriteAtomic(path string, data []byte, pattern string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
