// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"lcscan/core/complexity"
	"lcscan/core/fasta"
	"lcscan/internal/cli"
	"lcscan/internal/cmdutil"
	"lcscan/internal/pipeline"
	"lcscan/internal/runutil"
	"lcscan/internal/staging"
	"lcscan/internal/version"
	"lcscan/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 2
	ExitRuntime   = 3
	ExitInterrupt = 130
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("lcscan")
	fs.SetOutput(io.Discard)

	printUsage := func(code int) int {
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return ExitOK
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return ExitRuntime
		}
		return code
	}

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		return printUsage(ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return printUsage(ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return printUsage(ExitUsage)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "lcscan version %s\n", version.Version)
		return ExitOK
	}

	log := cmdutil.NewLogger(stderr, opts.Debug, opts.Quiet)

	if err := fasta.Exists(opts.Input); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}

	sc, err := complexity.New(complexity.Config{
		SegmentSize: opts.Segment,
		KmerSize:    opts.Kmer,
		Short:       complexity.ShortPolicy(opts.ShortSegment),
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsage
	}

	threads := runutil.EffectiveThreads(opts.Threads)
	for _, w := range runutil.SizeWarnings(opts.Segment, opts.Kmer, threads) {
		log.Warn(w)
	}

	st, err := staging.New(staging.Options{Kind: opts.Staging, Dir: opts.StagingDir, Keep: opts.KeepStaging})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: staging: %v\n", err)
		return ExitRuntime
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("staging cleanup failed", "err", err)
		}
	}()

	out, err := writers.Create(opts.Out, outw)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: output: %v\n", err)
		return ExitRuntime
	}

	log.Info("run started",
		"input", opts.Input, "segment", opts.Segment, "kmer", opts.Kmer,
		"threads", threads, "staging", opts.Staging)
	began := time.Now()

	d := pipeline.NewDispatcher(pipeline.Config{Threads: threads}, sc, st, log)
	stats, perr := pipeline.Run(parent, d, pipeline.PathSource(opts.Input), out)
	if perr != nil {
		_ = out.Abort()
		if errors.Is(perr, context.Canceled) {
			return ExitInterrupt
		}
		_, _ = fmt.Fprintf(stderr, "error: %v\n", perr)
		return ExitRuntime
	}
	if err := out.Commit(); writers.IsBrokenPipe(err) {
		return ExitOK
	} else if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: output: %v\n", err)
		return ExitRuntime
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return ExitOK
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return ExitRuntime
	}

	log.Info("run finished",
		"records", stats.Records, "bytes", stats.Bytes, "out", out.Path(),
		"elapsed", time.Since(began).Round(time.Millisecond))
	return ExitOK
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
