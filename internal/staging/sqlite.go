// internal/staging/sqlite.go
package staging

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps artifacts as rows of a single-file SQLite database.
type SQLiteStore struct {
	db    *sql.DB
	dir   string
	path  string
	owned bool
	keep  bool
	mu    sync.Mutex
}

// NewSQLiteStore opens (or creates) staging.db inside dir, or inside a fresh
// temporary directory when dir is "".
func NewSQLiteStore(dir string, keep bool) (*SQLiteStore, error) {
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
	path := filepath.Join(dir, "staging.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection serialises writers inside database/sql.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS artifacts (
		idx  INTEGER PRIMARY KEY,
		body BLOB
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init staging table: %w", err)
	}
	for _, pragma := range []string{"PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL"} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return &SQLiteStore{db: db, dir: dir, path: path, owned: owned, keep: keep}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Create(ctx context.Context, key Key) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &sqliteArtifact{ctx: ctx, store: s, key: key}, nil
}

func (s *SQLiteStore) Open(ctx context.Context, key Key) (io.ReadCloser, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, "SELECT body FROM artifacts WHERE idx = ?", int64(key)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (s *SQLiteStore) put(ctx context.Context, key Key, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, "INSERT OR REPLACE INTO artifacts (idx, body) VALUES (?, ?)", int64(key), body)
	return err
}

func (s *SQLiteStore) Close() error {
	err := s.db.Close()
	if s.keep {
		return err
	}
	var rmErr error
	if s.owned {
		rmErr = os.RemoveAll(s.dir)
	} else {
		for _, p := range []string{s.path, s.path + "-wal", s.path + "-shm"} {
			if e := os.Remove(p); e != nil && !errors.Is(e, os.ErrNotExist) && rmErr == nil {
				rmErr = e
			}
		}
	}
	if err != nil {
		return err
	}
	return rmErr
}

type sqliteArtifact struct {
	ctx   context.Context
	store *SQLiteStore
	key   Key
	buf   bytes.Buffer
	done  bool
}

func (a *sqliteArtifact) Write(p []byte) (int, error) {
	if a.done {
		return 0, ErrFinished
	}
	return a.buf.Write(p)
}

func (a *sqliteArtifact) Commit() error {
	if a.done {
		return nil
	}
	// Empty records still get a row so Open can tell them from missing ones.
	body := a.buf.Bytes()
	if body == nil {
		body = []byte{}
	}
	if err := a.store.put(a.ctx, a.key, body); err != nil {
		return err
	}
	a.done = true
	return nil
}

func (a *sqliteArtifact) Discard() error {
	a.done = true
	a.buf.Reset()
	return nil
}
