package complexity

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustScorer(t *testing.T, cfg Config) *Scorer {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func collect(t *testing.T, s *Scorer, seq string) []Segment {
	t.Helper()
	var out []Segment
	require.NoError(t, s.Segments([]byte(seq), func(seg Segment) error {
		out = append(out, seg)
		return nil
	}))
	return out
}

func TestNew_RejectsBadSizes(t *testing.T) {
	cases := []Config{
		{SegmentSize: 0, KmerSize: 1},
		{SegmentSize: 10, KmerSize: 0},
		{SegmentSize: -1, KmerSize: 1},
		{SegmentSize: 4, KmerSize: 5},
		{SegmentSize: 10, KmerSize: 5, Short: "drop"},
	}
	for _, c := range cases {
		_, err := New(c)
		assert.ErrorIs(t, err, ErrInvalidConfig, "%+v", c)
	}
}

func TestSegments_TwoEvenSegments(t *testing.T) {
	s := mustScorer(t, Config{SegmentSize: 10, KmerSize: 5})
	segs := collect(t, s, "ACGTACGTAC"+"GGGGGGGGGG")
	require.Len(t, segs, 2)

	assert.Equal(t, 0, segs[0].Start)
	assert.Equal(t, 9, segs[0].End)
	assert.Equal(t, 6, segs[0].Windows)
	// ACGTA CGTAC GTACG TACGT ACGTA CGTAC -> 4 distinct
	assert.Equal(t, 4, segs[0].Distinct)
	assert.InDelta(t, 4.0/6.0, segs[0].Score, 1e-12)

	assert.Equal(t, 10, segs[1].Start)
	assert.Equal(t, 19, segs[1].End)
	assert.Equal(t, 6, segs[1].Windows)
	assert.Equal(t, 1, segs[1].Distinct)
	assert.InDelta(t, 1.0/6.0, segs[1].Score, 1e-12)
}

func TestSegments_RemainderEndsAtLastBase(t *testing.T) {
	s := mustScorer(t, Config{SegmentSize: 10, KmerSize: 3})
	seq := strings.Repeat("ACGTTGCA", 3) // 24 bases
	segs := collect(t, s, seq)
	require.Len(t, segs, 3)
	last := segs[2]
	assert.Equal(t, 20, last.Start)
	assert.Equal(t, len(seq)-1, last.End)
	assert.Equal(t, len(seq)%10, last.Len())
	assert.Equal(t, 2, last.Windows)
}

func TestSegments_PartitionCoversSequence(t *testing.T) {
	seq := strings.Repeat("ACGGT", 41) // 205 bases
	for _, size := range []int{1, 7, 50, 205, 300} {
		s := mustScorer(t, Config{SegmentSize: size, KmerSize: 1})
		segs := collect(t, s, seq)
		next := 0
		for i, seg := range segs {
			assert.Equal(t, i, seg.Index)
			assert.Equal(t, next, seg.Start, "size=%d seg=%d", size, i)
			assert.LessOrEqual(t, seg.Len(), size)
			next = seg.End + 1
		}
		assert.Equal(t, len(seq), next, "size=%d", size)
	}
}

func TestSegments_ScoreBounds(t *testing.T) {
	s := mustScorer(t, Config{SegmentSize: 50, KmerSize: 4})
	seq := strings.Repeat("A", 60) + "ACGTTGCAACGGTCAGTCCATG" + strings.Repeat("AT", 30)
	for _, seg := range collect(t, s, seq) {
		if seg.Windows == 0 {
			continue
		}
		assert.Equal(t, seg.Len()-4+1, seg.Windows)
		assert.Greater(t, seg.Score, 0.0)
		assert.LessOrEqual(t, seg.Score, 1.0)
		assert.Equal(t, float64(seg.Distinct)/float64(seg.Windows), seg.Score)
	}
}

func TestSegments_ShortRemainderPolicies(t *testing.T) {
	seq := strings.Repeat("ACGTA", 4) + "CGT" // 23 bases, last segment 3 < k=5

	nan := collect(t, mustScorer(t, Config{SegmentSize: 10, KmerSize: 5}), seq)
	require.Len(t, nan, 3)
	assert.True(t, math.IsNaN(nan[2].Score))
	assert.Equal(t, 0, nan[2].Windows)
	assert.Equal(t, 20, nan[2].Start)
	assert.Equal(t, 22, nan[2].End)

	zero := collect(t, mustScorer(t, Config{SegmentSize: 10, KmerSize: 5, Short: ShortZero}), seq)
	require.Len(t, zero, 3)
	assert.Equal(t, 0.0, zero[2].Score)

	skip := collect(t, mustScorer(t, Config{SegmentSize: 10, KmerSize: 5, Short: ShortSkip}), seq)
	require.Len(t, skip, 2)
	assert.Equal(t, 19, skip[1].End)
}

func TestSegments_EmptySequence(t *testing.T) {
	s := mustScorer(t, Config{SegmentSize: 10, KmerSize: 5})
	assert.Empty(t, collect(t, s, ""))
}

func TestSegments_CollisionsLowerScore(t *testing.T) {
	constant := func([]byte) uint32 { return 7 }
	s := mustScorer(t, Config{SegmentSize: 10, KmerSize: 2, Hash: constant})
	segs := collect(t, s, "ACGTACGTAC")
	require.Len(t, segs, 1)
	assert.Equal(t, 1, segs[0].Distinct)
	assert.InDelta(t, 1.0/9.0, segs[0].Score, 1e-12)
}

func TestSegments_StopsOnEmitError(t *testing.T) {
	s := mustScorer(t, Config{SegmentSize: 2, KmerSize: 1})
	boom := errors.New("boom")
	calls := 0
	err := s.Segments([]byte("ACGTACGT"), func(Segment) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestScore_TagsRecordID(t *testing.T) {
	s := mustScorer(t, Config{SegmentSize: 4, KmerSize: 2})
	var got []Record
	require.NoError(t, s.Score("chr1", []byte("ACGTAC"), func(r Record) error {
		got = append(got, r)
		return nil
	}))
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "chr1", r.RecordID)
	}
	assert.Equal(t, 5, got[1].End)
}

func TestSegments_ConcurrentCallsAgree(t *testing.T) {
	s := mustScorer(t, Config{SegmentSize: 8, KmerSize: 3})
	seq := strings.Repeat("ACGTTTGACC", 20)
	want := collect(t, s, seq)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var got []Segment
			_ = s.Segments([]byte(seq), func(seg Segment) error {
				got = append(got, seg)
				return nil
			})
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestConfig_Defaults(t *testing.T) {
	s := mustScorer(t, Config{SegmentSize: 8, KmerSize: 3})
	assert.Equal(t, ShortNaN, s.Config().Short)
	assert.NotNil(t, s.Config().Hash)
}

func TestParseShortPolicy(t *testing.T) {
	for _, s := range []string{"nan", "zero", "skip"} {
		p, err := ParseShortPolicy(s)
		require.NoError(t, err)
		assert.Equal(t, ShortPolicy(s), p)
	}
	_, err := ParseShortPolicy("NaN")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
