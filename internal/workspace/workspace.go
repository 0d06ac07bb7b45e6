// Package workspace owns the on-disk layout of a climblog install and the
// lock that keeps reconciliation passes from overlapping.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"github.com/climblog/climblog/internal/utils"
)

const (
	lockFile = "climblog.lock"
	dbFile   = "climblog.db"
	logsDir  = "logs"
)

var ErrWorkspaceLocked = errors.New("workspace locked by another pass")

type Workspace struct {
	Root    string
	LogsDir string
	DataDir string

	mu    sync.Mutex
	flock *flock.Flock
}

// NewWorkspace resolves logsDir and dataDir. A relative logsDir is taken
// relative to root; an empty one defaults to <root>/logs.
func NewWorkspace(root, logs, data string) (*Workspace, error) {
	rootDir, err := utils.ResolvePath(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", root, err)
	}

	logsPath, err := resolveUnder(rootDir, logs, logsDir)
	if err != nil {
		return nil, err
	}
	dataPath, err := resolveUnder(rootDir, data, "")
	if err != nil {
		return nil, err
	}

	return &Workspace{
		Root:    rootDir,
		LogsDir: logsPath,
		DataDir: dataPath,
		flock:   flock.New(filepath.Join(dataPath, lockFile)),
	}, nil
}

func resolveUnder(root, path, fallback string) (string, error) {
	if path == "" {
		path = fallback
	}
	if path == "" {
		return root, nil
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "~") {
		resolved, err := utils.ResolvePath(path)
		if err != nil {
			return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		return resolved, nil
	}
	return filepath.Join(root, path), nil
}

// Setup creates the logs and data directories.
func (w *Workspace) Setup() error {
	for _, dir := range []string{w.LogsDir, w.DataDir} {
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DBPath is the default SQLite database location.
func (w *Workspace) DBPath() string {
	return filepath.Join(w.DataDir, dbFile)
}

// LockPath is the lock file guarding sync and pull passes.
func (w *Workspace) LockPath() string {
	return w.flock.Path()
}

// Lock claims the workspace for one pass. It fails fast with
// ErrWorkspaceLocked if a pass is already running in this process or in
// another one.
func (w *Workspace) Lock() error {
	if !w.mu.TryLock() {
		return ErrWorkspaceLocked
	}

	if err := utils.EnsureDir(w.DataDir); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("failed to create directory %s: %w", w.DataDir, err)
	}

	locked, err := w.flock.TryLock()
	if err != nil {
		w.mu.Unlock()
		return fmt.Errorf("failed to lock workspace: %w", err)
	}
	if !locked {
		w.mu.Unlock()
		return ErrWorkspaceLocked
	}

	return nil
}

func (w *Workspace) Unlock() error {
	// nothing to release if this process never took the lock
	if !w.flock.Locked() {
		return nil
	}
	defer w.mu.Unlock()

	if err := w.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock workspace: %w", err)
	}

	if err := os.Remove(w.flock.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// WithLock runs fn while holding the workspace lock.
func (w *Workspace) WithLock(fn func() error) error {
	if err := w.Lock(); err != nil {
		return err
	}
	defer w.Unlock()
	return fn()
}
