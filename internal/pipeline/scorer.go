// internal/pipeline/scorer.go
package pipeline

import (
	"context"

	"lcscan/core/complexity"
	"lcscan/core/fasta"
)

// Scorer is the minimal capability the pipeline needs. It must be safe for
// concurrent use by all workers.
type Scorer interface {
	Score(id string, seq []byte, emit func(complexity.Record) error) error
}

// Source enumerates records in input order, calling emit once per record.
type Source func(ctx context.Context, emit func(fasta.Record) error) error

// PathSource reads records from a FASTA file.
func PathSource(path string) Source {
	return func(ctx context.Context, emit func(fasta.Record) error) error {
		return fasta.ReadPath(ctx, path, emit)
	}
}

// Ordered pairs a record's input position with its identifier.
type Ordered struct {
	Index int
	ID    string
}
