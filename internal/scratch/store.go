// Package scratch provides request-scoped temporary storage. Each
// request gets its own directory, released exactly once on every exit
// path via Dir.Release; the store tracks live handles so leaks are
// observable.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Store hands out per-request scratch directories under one root.
type Store struct {
	root   string
	active atomic.Int64
}

// NewStore creates a store rooted at dir. An empty dir means the
// system temp dir.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating scratch root: %w", err)
	}
	return &Store{root: dir}, nil
}

// Acquire allocates a scratch directory for one request. The caller
// owns the returned Dir and must call Release when done.
func (s *Store) Acquire(requestID string) (*Dir, error) {
	path, err := os.MkdirTemp(s.root, "parse-"+requestID+"-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch dir: %w", err)
	}
	s.active.Add(1)
	return &Dir{store: s, path: path}, nil
}

// Active returns the number of scratch directories currently live.
func (s *Store) Active() int64 {
	return s.active.Load()
}

// Dir is one request's scratch directory.
type Dir struct {
	store *Store
	path  string
	once  sync.Once
}

// Path returns the directory path.
func (d *Dir) Path() string {
	return d.path
}

// WriteInput spools data into the directory under name and returns
// the full path of the written file.
func (d *Dir) WriteInput(name string, data []byte) (string, error) {
	p := filepath.Join(d.path, name)
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return "", fmt.Errorf("spooling input: %w", err)
	}
	return p, nil
}

// Release removes the directory and everything in it. Safe to call
// more than once; only the first call takes effect.
func (d *Dir) Release() error {
	var err error
	d.once.Do(func() {
		err = os.RemoveAll(d.path)
		d.store.active.Add(-1)
	})
	return err
}
