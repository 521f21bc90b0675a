// internal/writers/output.go
package writers

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

const bufSize = 256 * 1024

// Output is the final destination of a run.
type Output struct {
	bw   *bufio.Writer
	tmp  *os.File // nil for stdout
	dest string
	done bool
}

// Create opens the output target. path "-" writes to stdout.
func Create(path string, stdout io.Writer) (*Output, error) {
	if path == "-" {
		return &Output{bw: bufio.NewWriterSize(stdout, bufSize), dest: "-"}, nil
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, err
	}
	_ = os.Chmod(tmp.Name(), 0o644)
	return &Output{bw: bufio.NewWriterSize(tmp, bufSize), tmp: tmp, dest: path}, nil
}

// Path returns the destination path ("-" for stdout).
func (o *Output) Path() string { return o.dest }

func (o *Output) Write(p []byte) (int, error) { return o.bw.Write(p) }

// Commit flushes and, for files, atomically replaces the destination.
func (o *Output) Commit() error {
	if o.done {
		return nil
	}
	o.done = true
	err := o.bw.Flush()
	if o.tmp == nil {
		return err
	}
	if err == nil {
		err = o.tmp.Sync()
	}
	if cerr := o.tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(o.tmp.Name(), o.dest)
	}
	if err != nil {
		_ = os.Remove(o.tmp.Name())
	}
	return err
}

// Abort drops a file output. Anything already streamed to stdout stays there.
func (o *Output) Abort() error {
	if o.done {
		return nil
	}
	o.done = true
	if o.tmp == nil {
		return nil
	}
	_ = o.tmp.Close()
	return os.Remove(o.tmp.Name())
}

// IsBrokenPipe reports whether err means the reader of stdout went away
// (for example `lcscan -o - in.fa | head`).
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
