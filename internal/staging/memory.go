// internal/staging/memory.go
package staging

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/google/btree"
)

type memItem struct {
	key  Key
	body []byte
}

func memLess(a, b memItem) bool { return a.key < b.key }

// MemStore keeps committed artifacts in an ordered in-memory B-tree.
// Suitable when the total output fits in memory.
type MemStore struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[memItem]
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{tree: btree.NewG[memItem](32, memLess)}
}

func (s *MemStore) Create(ctx context.Context, key Key) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memArtifact{store: s, key: key}, nil
}

func (s *MemStore) Open(ctx context.Context, key Key) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	it, ok := s.tree.Get(memItem{key: key})
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(key)
	}
	return io.NopCloser(bytes.NewReader(it.body)), nil
}

// Len returns the number of committed artifacts.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Len()
}

// Keys returns committed keys in ascending order.
func (s *MemStore) Keys() []Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]Key, 0, s.tree.Len())
	s.tree.Ascend(func(it memItem) bool {
		keys = append(keys, it.key)
		return true
	})
	return keys
}

func (s *MemStore) Close() error {
	s.mu.Lock()
	s.tree.Clear(false)
	s.mu.Unlock()
	return nil
}

func (s *MemStore) commit(key Key, body []byte) {
	s.mu.Lock()
	s.tree.ReplaceOrInsert(memItem{key: key, body: body})
	s.mu.Unlock()
}

type memArtifact struct {
	store *MemStore
	key   Key
	buf   bytes.Buffer
	done  bool
}

func (a *memArtifact) Write(p []byte) (int, error) {
	if a.done {
		return 0, ErrFinished
	}
	return a.buf.Write(p)
}

func (a *memArtifact) Commit() error {
	if a.done {
		return nil
	}
	a.done = true
	a.store.commit(a.key, bytes.Clone(a.buf.Bytes()))
	a.buf.Reset()
	return nil
}

func (a *memArtifact) Discard() error {
	a.done = true
	a.buf.Reset()
	return nil
}
