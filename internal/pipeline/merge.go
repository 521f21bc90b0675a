// internal/pipeline/merge.go
package pipeline

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"

	"lcscan/internal/staging"
)

// Merge writes every staged artifact to w in ascending input order, copying
// bytes verbatim. A missing artifact is fatal. It returns the bytes written.
func Merge(ctx context.Context, pairs []Ordered, st staging.Store, w io.Writer) (int64, error) {
	sorted := slices.Clone(pairs)
	slices.SortFunc(sorted, func(a, b Ordered) int { return cmp.Compare(a.Index, b.Index) })

	var total int64
	for _, p := range sorted {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := copyArtifact(ctx, st, p, w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func copyArtifact(ctx context.Context, st staging.Store, p Ordered, w io.Writer) (int64, error) {
	r, err := st.Open(ctx, staging.Key(p.Index))
	if err != nil {
		return 0, fmt.Errorf("merge record %q (#%d): %w", p.ID, p.Index, err)
	}
	defer r.Close()
	n, err := io.Copy(w, r)
	if err != nil {
		return n, fmt.Errorf("merge record %q (#%d): %w", p.ID, p.Index, err)
	}
	return n, nil
}

// Stats summarises a completed run.
type Stats struct {
	Records int
	Bytes   int64
}

// Run dispatches src through d and merges the staged output into w.
func Run(ctx context.Context, d *Dispatcher, src Source, w io.Writer) (Stats, error) {
	pairs, err := d.Dispatch(ctx, src)
	if err != nil {
		return Stats{}, err
	}
	n, err := Merge(ctx, pairs, d.st, w)
	return Stats{Records: len(pairs), Bytes: n}, err
}
