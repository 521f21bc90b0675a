// internal/staging/dir.go
package staging

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// DirStore keeps one file per artifact in a directory.
type DirStore struct {
	dir     string
	owned   bool // created by us; removed on Close unless keep
	keep    bool
	bufSize int

	mu        sync.Mutex
	committed map[Key]struct{} // artifacts this store wrote; the only files Close removes
}

// NewDirStore uses dir (created if missing) or, when dir is "", a fresh
// temporary directory.
func NewDirStore(dir string, keep bool) (*DirStore, error) {
	owned := false
	if dir == "" {
		d, err := os.MkdirTemp("", "lcscan-*")
		if err != nil {
			return nil, err
		}
		dir, owned = d, true
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirStore{
		dir:       dir,
		owned:     owned,
		keep:      keep,
		bufSize:   64 * 1024,
		committed: make(map[Key]struct{}),
	}, nil
}

// Dir returns the staging directory.
func (s *DirStore) Dir() string { return s.dir }

func (s *DirStore) path(key Key) string {
	return filepath.Join(s.dir, strconv.Itoa(int(key))+".tsv")
}

func (s *DirStore) Create(ctx context.Context, key Key) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dest := s.path(key)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(dest)+".tmp-*")
	if err != nil {
		return nil, err
	}
	return &dirArtifact{store: s, key: key, f: tmp, bw: bufio.NewWriterSize(tmp, s.bufSize), dest: dest}, nil
}

func (s *DirStore) Open(ctx context.Context, key Key) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(key)
	}
	return f, err
}

// Close removes a temporary staging directory unless keep was requested.
// A caller-supplied directory is left in place and only the artifacts this
// store committed are removed from it.
func (s *DirStore) Close() error {
	if s.keep {
		return nil
	}
	if s.owned {
		return os.RemoveAll(s.dir)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var first error
	for key := range s.committed {
		err := os.Remove(s.path(key))
		if err != nil && !errors.Is(err, fs.ErrNotExist) && first == nil {
			first = err
		}
		delete(s.committed, key)
	}
	return first
}

func (s *DirStore) markCommitted(key Key) {
	s.mu.Lock()
	s.committed[key] = struct{}{}
	s.mu.Unlock()
}

// dirArtifact writes to a temp file and renames it over dest on Commit.
type dirArtifact struct {
	store *DirStore
	key   Key
	f     *os.File
	bw    *bufio.Writer
	dest  string
	err   error
	done  bool
}

func (a *dirArtifact) Write(p []byte) (int, error) {
	if a.done {
		return 0, ErrFinished
	}
	n, err := a.bw.Write(p)
	if err != nil && a.err == nil {
		a.err = err
	}
	return n, err
}

func (a *dirArtifact) Commit() error {
	if a.done {
		return nil
	}
	a.done = true
	err := a.err
	if err == nil {
		err = a.bw.Flush()
	}
	if cerr := a.f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(a.f.Name(), a.dest)
	}
	if err != nil {
		_ = os.Remove(a.f.Name())
		return err
	}
	a.store.markCommitted(a.key)
	return nil
}

func (a *dirArtifact) Discard() error {
	if a.done {
		return nil
	}
	a.done = true
	_ = a.f.Close()
	return os.Remove(a.f.Name())
}
