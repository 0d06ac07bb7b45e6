package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

type memFS struct {
	mu      sync.Mutex
	dir     string
	files   map[string][]byte
	listErr error
	readErr map[string]error
	reads   int
	writes  int
}

func newMemFS(dir string, names ...string) *memFS {
	fs := &memFS{dir: dir, files: make(map[string][]byte), readErr: make(map[string]error)}
	for _, name := range names {
		fs.files[filepath.Join(dir, name)] = []byte(`{"name":"` + name + `"}`)
	}
	return fs
}

func (m *memFS) ListDirectory(path string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var names []string
	for p := range m.files {
		if filepath.Dir(p) == path {
			names = append(names, filepath.Base(p))
		}
	}
	return names, nil
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if err := m.readErr[path]; err != nil {
		return nil, err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return slices.Clone(data), nil
}

func (m *memFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if _, ok := m.files[path]; ok {
		return fmt.Errorf("%w: %s", fs.ErrExist, path)
	}
	m.files[path] = slices.Clone(data)
	return nil
}

func (m *memFS) names() []string {
	names, _ := m.ListDirectory(m.dir)
	slices.Sort(names)
	return names
}

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	listErr error
	putErr  map[string]error
	getErr  map[string]error
	block   map[string]bool
	lists   int
	puts    int
	gets    int
}

func newMemStore(keys ...string) *memStore {
	s := &memStore{
		objects: make(map[string][]byte),
		putErr:  make(map[string]error),
		getErr:  make(map[string]error),
		block:   make(map[string]bool),
	}
	for _, key := range keys {
		s.objects[key] = []byte(`{"key":"` + key + `"}`)
	}
	return s
}

func (s *memStore) ListObjects(_ context.Context, bucket string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}
	keys := make([]string, 0, len(s.objects))
	for key := range s.objects {
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *memStore) GetObject(ctx context.Context, _ string, key string) ([]byte, error) {
	if err := s.wait(ctx, key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if err := s.getErr[key]; err != nil {
		return nil, err
	}
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return slices.Clone(data), nil
}

func (s *memStore) PutObject(ctx context.Context, _ string, key string, data []byte) error {
	if err := s.wait(ctx, key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if err := s.putErr[key]; err != nil {
		return err
	}
	s.objects[key] = slices.Clone(data)
	return nil
}

// wait blocks keys marked in block until ctx is done.
func (s *memStore) wait(ctx context.Context, key string) error {
	s.mu.Lock()
	blocked := s.block[key]
	s.mu.Unlock()
	if !blocked {
		return nil
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *memStore) keys() []string {
	keys, _ := s.ListObjects(context.Background(), "")
	slices.Sort(keys)
	return keys
}
