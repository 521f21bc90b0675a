// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// Record represents one parsed FASTA entry.
type Record struct {
	ID  string
	Seq []byte
}

var (
	// ErrNoHeader is returned when sequence data appears before any '>' line.
	ErrNoHeader = errors.New("fasta: sequence data before first header")
	// ErrEmptyID is returned for a header line without an identifier.
	ErrEmptyID = errors.New("fasta: header without identifier")
)

// ParseError carries the 1-based input line of a malformed entry.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)

// Read parses FASTA from r and calls emit once per record, in input order.
// Each emitted Record owns its Seq. Cancellation via ctx is checked between lines.
// The first parse error or emit error stops the scan and is returned.
func Read(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id     string
		inRec  bool
		seq    = make([]byte, 0, 1<<16)
		lineNo int
	)

	flush := func() error {
		if !inRec {
			return nil
		}
		return emit(Record{ID: id, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		lineNo++
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id = parseHeaderID(line[1:])
			if id == "" {
				return &ParseError{Line: lineNo, Err: ErrEmptyID}
			}
			inRec = true
			seq = seq[:0]
			continue
		}
		if !inRec {
			return &ParseError{Line: lineNo, Err: ErrNoHeader}
		}
		seq = append(seq, line...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
