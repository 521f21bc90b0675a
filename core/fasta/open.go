// core/fasta/open.go
package fasta

import (
	"context"
	"fmt"
	"os"
)

// Exists reports whether path names any filesystem entity. Regular files,
// FIFOs and symlinks to them all pass; format is not checked here.
func Exists(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no valid file was found at %q: %w", path, err)
	}
	return nil
}

// ReadPath opens path and streams its records to emit (see Read).
func ReadPath(ctx context.Context, path string, emit func(Record) error) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()
	if err := Read(ctx, fh, emit); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
