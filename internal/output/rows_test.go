package output

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcscan/core/complexity"
)

func rec(id string, start, end int, score float64) complexity.Record {
	return complexity.Record{RecordID: id, Segment: complexity.Segment{Start: start, End: end, Score: score}}
}

func TestFormatRow(t *testing.T) {
	assert.Equal(t, "chr1\t0\t9\t1", FormatRow(rec("chr1", 0, 9, 1)))
	assert.Equal(t, "chr1\t10\t19\t0.5", FormatRow(rec("chr1", 10, 19, 0.5)))
	assert.Equal(t, "x\t0\t4\t0.8333333333333334", FormatRow(rec("x", 0, 4, 5.0/6.0)))
	assert.Equal(t, "x\t20\t22\tNaN", FormatRow(rec("x", 20, 22, math.NaN())))
	assert.Equal(t, "x\t20\t22\t0", FormatRow(rec("x", 20, 22, 0)))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "0.6666666666666666", FormatScore(4.0/6.0))
	assert.Equal(t, "NaN", FormatScore(math.NaN()))
}

func TestRowWriter(t *testing.T) {
	var b bytes.Buffer
	rw := NewRowWriter(&b)
	require.NoError(t, rw.Write(rec("a", 0, 1, 1)))
	require.NoError(t, rw.Write(rec("a", 2, 3, 0.25)))
	assert.Equal(t, "a\t0\t1\t1\na\t2\t3\t0.25\n", b.String())
	assert.Equal(t, 2, rw.Rows())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRowWriter_PropagatesError(t *testing.T) {
	rw := NewRowWriter(failWriter{})
	assert.Error(t, rw.Write(rec("a", 0, 1, 1)))
	assert.Zero(t, rw.Rows())
}
