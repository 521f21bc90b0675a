// internal/pipeline/dispatch.go
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"lcscan/core/fasta"
	"lcscan/internal/output"
	"lcscan/internal/staging"
)

// Config controls the dispatcher.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// Dispatcher scores records on a fixed-size worker pool and stages each
// record's rows under its input index.
type Dispatcher struct {
	threads int
	sc      Scorer
	st      staging.Store
	log     *slog.Logger
}

// NewDispatcher wires a dispatcher. Threads < 1 is treated as 1; a nil
// logger discards everything.
func NewDispatcher(cfg Config, sc Scorer, st staging.Store, log *slog.Logger) *Dispatcher {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{threads: cfg.Threads, sc: sc, st: st, log: log}
}

type job struct {
	idx int
	rec fasta.Record
}

// Dispatch consumes src once and returns one Ordered per record, in
// completion order. Every record is fully staged before it is reported.
// The first error (source, scoring or staging) stops the run and is returned.
func (d *Dispatcher) Dispatch(parent context.Context, src Source) ([]Ordered, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var (
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		cancel()
	}

	jobs := make(chan job, d.threads*2)
	results := make(chan Ordered, d.threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(d.threads)
	for w := 0; w < d.threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					if err := d.stage(ctx, j); err != nil {
						fail(err)
						return
					}
					select {
					case results <- Ordered{Index: j.idx, ID: j.rec.ID}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		pairs []Ordered
		cwg   sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for o := range results {
			pairs = append(pairs, o)
		}
	}()

	// Feed work
	next := 0
	seen := make(map[string]int)
	srcErr := src(ctx, func(rec fasta.Record) error {
		if first, dup := seen[rec.ID]; dup {
			d.log.Warn("duplicate record id", "id", rec.ID, "index", next, "first_index", first)
		} else {
			seen[rec.ID] = next
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case jobs <- job{idx: next, rec: rec}:
			next++
			return nil
		}
	})

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	mu.Lock()
	err := firstErr
	mu.Unlock()
	switch {
	case err != nil:
		return nil, err
	case parent.Err() != nil:
		return nil, parent.Err()
	case srcErr != nil:
		return nil, srcErr
	}
	return pairs, nil
}

// stage scores one record into a fresh artifact and commits it.
func (d *Dispatcher) stage(ctx context.Context, j job) error {
	d.log.Info("starting record", "id", j.rec.ID, "index", j.idx, "length", len(j.rec.Seq))

	a, err := d.st.Create(ctx, staging.Key(j.idx))
	if err != nil {
		return fmt.Errorf("stage record %q (#%d): %w", j.rec.ID, j.idx, err)
	}
	rw := output.NewRowWriter(a)
	if err := d.sc.Score(j.rec.ID, j.rec.Seq, rw.Write); err != nil {
		_ = a.Discard()
		return fmt.Errorf("score record %q (#%d): %w", j.rec.ID, j.idx, err)
	}
	if err := a.Commit(); err != nil {
		return fmt.Errorf("stage record %q (#%d): %w", j.rec.ID, j.idx, err)
	}
	d.log.Debug("staged record", "id", j.rec.ID, "index", j.idx, "segments", rw.Rows())
	return nil
}
