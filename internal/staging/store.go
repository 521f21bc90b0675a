// Package staging holds per-record intermediate results between the parallel
// scoring phase and the ordered merge.
//
// Artifacts are keyed by the record's 0-based input index, so two records that
// share an identifier never overwrite each other. An artifact becomes visible
// only when it is committed; a discarded write leaves nothing behind.
package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Key identifies one staged artifact (the record's input index).
type Key int

var (
	// ErrNotFound is returned by Open for a key that was never committed.
	ErrNotFound = errors.New("staging artifact not found")
	// ErrFinished is returned by Write after Commit or Discard.
	ErrFinished = errors.New("staging artifact already committed or discarded")
)

// Store is the staging namespace shared by all workers. Create and Open must
// be safe for concurrent use with distinct keys.
type Store interface {
	// Create starts a new artifact for key.
	Create(ctx context.Context, key Key) (Artifact, error)
	// Open returns the committed artifact for key or ErrNotFound.
	Open(ctx context.Context, key Key) (io.ReadCloser, error)
	// Close releases the store and any resources it owns.
	Close() error
}

// Artifact is an in-progress staged write. Exactly one of Commit or Discard
// should be called; both are idempotent once one has succeeded.
type Artifact interface {
	io.Writer
	// Commit makes the artifact visible to Open, replacing any previous one
	// with the same key.
	Commit() error
	// Discard drops everything written so far.
	Discard() error
}

// Kinds of stores selectable from the CLI.
const (
	KindDir    = "dir"
	KindMemory = "memory"
	KindSQLite = "sqlite"
)

// Options selects and configures a Store.
type Options struct {
	Kind string // dir | memory | sqlite ("" = dir)
	Dir  string // staging directory; "" = fresh temp dir
	Keep bool   // keep on-disk artifacts after Close
}

// New builds the Store described by o.
func New(o Options) (Store, error) {
	switch o.Kind {
	case "", KindDir:
		return NewDirStore(o.Dir, o.Keep)
	case KindMemory:
		return NewMemStore(), nil
	case KindSQLite:
		return NewSQLiteStore(o.Dir, o.Keep)
	default:
		return nil, fmt.Errorf("unknown staging kind %q (want dir | memory | sqlite)", o.Kind)
	}
}

func notFound(key Key) error { return fmt.Errorf("%w: key %d", ErrNotFound, key) }
