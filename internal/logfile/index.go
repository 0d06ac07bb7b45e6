package logfile

import (
	"errors"
	"fmt"
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"
)

// DirLister is the slice of the filesystem the local index needs.
type DirLister interface {
	ListDirectory(path string) ([]string, error)
}

// ListLocal returns the set of classified log filenames in dir. Files that
// classify as Unknown are left out; a missing dir is an empty set.
func ListLocal(fs DirLister, dir string) (mapset.Set[string], error) {
	names, err := fs.ListDirectory(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	local := mapset.NewSetWithSize[string](len(names))
	for _, name := range names {
		_, err := ClassifyStrict(name)
		if errors.Is(err, ErrAmbiguousCategory) {
			slog.Warn("index", "file", name, "error", err)
			continue
		} else if err != nil {
			continue
		}
		local.Add(name)
	}

	return local, nil
}
