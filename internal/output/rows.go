// internal/output/rows.go
package output

import (
	"io"
	"strconv"

	"lcscan/core/complexity"
)

// FormatScore renders a score the way the TSV output expects: shortest
// round-trip decimal ("1", "0.8333333333333334"), or "NaN".
func FormatScore(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }

// AppendRow appends one "id\tstart\tend\tscore\n" line to dst.
func AppendRow(dst []byte, r complexity.Record) []byte {
	dst = append(dst, r.RecordID...)
	dst = append(dst, '\t')
	dst = strconv.AppendInt(dst, int64(r.Start), 10)
	dst = append(dst, '\t')
	dst = strconv.AppendInt(dst, int64(r.End), 10)
	dst = append(dst, '\t')
	dst = strconv.AppendFloat(dst, r.Score, 'f', -1, 64)
	return append(dst, '\n')
}

// FormatRow returns the TSV line for r without the trailing newline.
func FormatRow(r complexity.Record) string {
	b := AppendRow(nil, r)
	return string(b[:len(b)-1])
}

// RowWriter writes rows to w, reusing a scratch buffer.
type RowWriter struct {
	w   io.Writer
	buf []byte
	n   int
}

func NewRowWriter(w io.Writer) *RowWriter { return &RowWriter{w: w, buf: make([]byte, 0, 128)} }

// Write emits one row.
func (rw *RowWriter) Write(r complexity.Record) error {
	rw.buf = AppendRow(rw.buf[:0], r)
	if _, err := rw.w.Write(rw.buf); err != nil {
		return err
	}
	rw.n++
	return nil
}

// Rows returns how many rows were written.
func (rw *RowWriter) Rows() int { return rw.n }
