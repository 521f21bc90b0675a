package kmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash32_Deterministic(t *testing.T) {
	seq := []byte("ACGTACGTACGTTTGACA")
	for i := 0; i+5 <= len(seq); i++ {
		w := seq[i : i+5]
		assert.Equal(t, Hash32(w), Hash32(append([]byte(nil), w...)), "window %q", w)
	}
}

func TestHash32_SameWindowAcrossPositions(t *testing.T) {
	seq := []byte("ACGTTACGTT")
	assert.Equal(t, Hash32(seq[0:5]), Hash32(seq[5:10]))
}

func TestHash32_TailsAndLength(t *testing.T) {
	// Each of these exercises a different word/tail path.
	ins := [][]byte{
		[]byte(""),
		[]byte("A"),
		[]byte("AC"),
		[]byte("ACG"),
		[]byte("ACGT"),
		[]byte("ACGTA"),
		[]byte("ACGTAC"),
		[]byte("ACGTACG"),
	}
	seen := map[uint32]string{}
	for _, in := range ins {
		h := Hash32(in)
		if prev, dup := seen[h]; dup {
			t.Fatalf("unexpected collision between %q and %q", prev, in)
		}
		seen[h] = string(in)
	}
	// Length is mixed in, so a zero byte is not the same as nothing.
	assert.NotEqual(t, Hash32([]byte{}), Hash32([]byte{0}))
}

func TestHash32_DistinguishesSimpleKmers(t *testing.T) {
	assert.NotEqual(t, Hash32([]byte("AAAAA")), Hash32([]byte("AAAAC")))
	assert.NotEqual(t, Hash32([]byte("ACGTA")), Hash32([]byte("TGCAT")))
}
