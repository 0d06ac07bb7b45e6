package logfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/climblog/climblog/internal/utils"
)

// OSFilesystem is the local disk implementation used outside of tests.
type OSFilesystem struct{}

// ListDirectory returns the names of the regular files in path. A missing
// directory yields an empty list.
func (OSFilesystem) ListDirectory(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (OSFilesystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a temp file next to path and links it into
// place so readers never observe a partially written log. The temp name
// carries no category marker, so an interrupted write is never indexed.
// An existing file at path is left untouched and the returned error
// matches fs.ErrExist.
func (OSFilesystem) WriteFile(path string, data []byte) error {
	if err := utils.EnsureParent(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".partial-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	// link fails with EEXIST instead of replacing path like rename would
	if err := os.Link(tmp.Name(), path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", fs.ErrExist, path)
		}
		return err
	}
	return nil
}
