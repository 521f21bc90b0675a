// core/complexity/scorer.go
package complexity

import (
	"errors"
	"fmt"
	"math"

	"lcscan/core/kmer"
)

// ErrInvalidConfig is returned by New for unusable segment/k-mer sizes.
var ErrInvalidConfig = errors.New("invalid complexity config")

// ShortPolicy decides what happens to a segment shorter than the k-mer size.
// Only the trailing remainder segment can be that short.
type ShortPolicy string

const (
	ShortNaN  ShortPolicy = "nan"  // emit with Score = NaN
	ShortZero ShortPolicy = "zero" // emit with Score = 0
	ShortSkip ShortPolicy = "skip" // do not emit
)

// ParseShortPolicy validates a policy name.
func ParseShortPolicy(s string) (ShortPolicy, error) {
	switch p := ShortPolicy(s); p {
	case ShortNaN, ShortZero, ShortSkip:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown short-segment policy %q (want nan | zero | skip)", ErrInvalidConfig, s)
}

// Config holds scoring parameters.
type Config struct {
	SegmentSize int
	KmerSize    int
	Short       ShortPolicy // "" means ShortNaN
	Hash        kmer.Hasher // nil means kmer.Hash32
}

// Segment is the score of one fixed-size slice of a sequence.
// Start and End are 0-based; End is inclusive.
type Segment struct {
	Index    int
	Start    int
	End      int
	Windows  int // k-mer windows in the segment (0 when shorter than k)
	Distinct int // distinct window hashes
	Score    float64
}

// Len returns the number of bases covered by the segment.
func (s Segment) Len() int { return s.End - s.Start + 1 }

// Record is a Segment tagged with the FASTA record it belongs to.
type Record struct {
	RecordID string
	Segment
}

// Scorer computes per-segment k-mer complexity. It is immutable and safe for
// concurrent use; scratch state lives in each Segments call.
type Scorer struct {
	cfg Config
}

// New validates cfg and returns a Scorer.
func New(cfg Config) (*Scorer, error) {
	if cfg.SegmentSize <= 0 {
		return nil, fmt.Errorf("%w: segment size must be > 0 (got %d)", ErrInvalidConfig, cfg.SegmentSize)
	}
	if cfg.KmerSize <= 0 {
		return nil, fmt.Errorf("%w: k-mer size must be > 0 (got %d)", ErrInvalidConfig, cfg.KmerSize)
	}
	if cfg.KmerSize > cfg.SegmentSize {
		return nil, fmt.Errorf("%w: k-mer size (%d) exceeds segment size (%d)", ErrInvalidConfig, cfg.KmerSize, cfg.SegmentSize)
	}
	if cfg.Short == "" {
		cfg.Short = ShortNaN
	}
	if _, err := ParseShortPolicy(string(cfg.Short)); err != nil {
		return nil, err
	}
	if cfg.Hash == nil {
		cfg.Hash = kmer.Hash32
	}
	return &Scorer{cfg: cfg}, nil
}

// Config returns the effective configuration.
func (s *Scorer) Config() Config { return s.cfg }

// Segments walks seq in ascending segment order and calls emit for each
// scored segment. It stops at the first error returned by emit.
func (s *Scorer) Segments(seq []byte, emit func(Segment) error) error {
	size, k := s.cfg.SegmentSize, s.cfg.KmerSize
	var seen map[uint32]struct{}
	for i, off := 0, 0; off < len(seq); i, off = i+1, off+size {
		end := off + size
		if end > len(seq) {
			end = len(seq)
		}
		seg := Segment{Index: i, Start: off, End: end - 1}

		n := end - off
		if n < k {
			switch s.cfg.Short {
			case ShortSkip:
				continue
			case ShortZero:
				seg.Score = 0
			default:
				seg.Score = math.NaN()
			}
			if err := emit(seg); err != nil {
				return err
			}
			continue
		}

		seg.Windows = n - k + 1
		if seen == nil {
			seen = make(map[uint32]struct{}, min(seg.Windows, size-k+1))
		}
		seg.Distinct = s.distinct(seen, seq[off:end])
		seg.Score = float64(seg.Distinct) / float64(seg.Windows)
		if err := emit(seg); err != nil {
			return err
		}
	}
	return nil
}

// Score is Segments with the record id attached.
func (s *Scorer) Score(id string, seq []byte, emit func(Record) error) error {
	return s.Segments(seq, func(seg Segment) error {
		return emit(Record{RecordID: id, Segment: seg})
	})
}

// distinct counts unique window hashes in segment (len(segment) >= k).
func (s *Scorer) distinct(seen map[uint32]struct{}, segment []byte) int {
	clear(seen)
	k := s.cfg.KmerSize
	for i := 0; i+k <= len(segment); i++ {
		seen[s.cfg.Hash(segment[i:i+k])] = struct{}{}
	}
	return len(seen)
}
