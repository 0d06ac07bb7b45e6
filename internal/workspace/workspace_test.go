package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkspace_Layout(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere")

	cases := []struct {
		name     string
		logs     string
		data     string
		wantLogs string
		wantData string
	}{
		{"defaults", "", "", filepath.Join(root, "logs"), root},
		{"relative", "activity", ".state", filepath.Join(root, "activity"), filepath.Join(root, ".state")},
		{"absolute", abs, abs, abs, abs},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, err := NewWorkspace(root, c.logs, c.data)
			require.NoError(t, err)
			assert.Equal(t, c.wantLogs, w.LogsDir)
			assert.Equal(t, c.wantData, w.DataDir)
			assert.Equal(t, filepath.Join(c.wantData, "climblog.db"), w.DBPath())
		})
	}
}

func TestNewWorkspace_EmptyRoot(t *testing.T) {
	_, err := NewWorkspace("", "", "")
	require.Error(t, err)
}

func TestWorkspaceSetup_CreatesDirs(t *testing.T) {
	root := t.TempDir()
	w, err := NewWorkspace(root, "logs", "data")
	require.NoError(t, err)

	require.NoError(t, w.Setup())
	assert.DirExists(t, w.LogsDir)
	assert.DirExists(t, w.DataDir)
}

func TestWorkspaceLocking_SingleInstance(t *testing.T) {
	root := t.TempDir()

	w1, err := NewWorkspace(root, "", "")
	require.NoError(t, err)
	w2, err := NewWorkspace(root, "", "")
	require.NoError(t, err)

	require.NoError(t, w1.Lock())

	err = w2.Lock()
	require.ErrorIs(t, err, ErrWorkspaceLocked)

	lockPath := filepath.Join(root, "climblog.lock")
	assert.FileExists(t, lockPath)

	require.NoError(t, w1.Unlock())
	_, statErr := os.Stat(lockPath)
	require.ErrorIs(t, statErr, os.ErrNotExist)

	require.NoError(t, w2.Lock())
	t.Cleanup(func() { _ = w2.Unlock() })
}

func TestWorkspaceLocking_SameProcess(t *testing.T) {
	w, err := NewWorkspace(t.TempDir(), "", "")
	require.NoError(t, err)

	require.NoError(t, w.Lock())
	require.ErrorIs(t, w.Lock(), ErrWorkspaceLocked)
	require.NoError(t, w.Unlock())

	require.NoError(t, w.Lock())
	require.NoError(t, w.Unlock())
}

func TestWithLock(t *testing.T) {
	w, err := NewWorkspace(t.TempDir(), "", "")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = w.WithLock(func() error {
		assert.ErrorIs(t, w.Lock(), ErrWorkspaceLocked)
		return boom
	})
	require.ErrorIs(t, err, boom)

	// released after fn returns
	require.NoError(t, w.WithLock(func() error { return nil }))
}

func TestUnlock_NotLocked(t *testing.T) {
	w, err := NewWorkspace(t.TempDir(), "", "")
	require.NoError(t, err)
	require.NoError(t, w.Unlock())
}
