// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strconv"

	"lcscan/core/complexity"
	"lcscan/internal/cliutil"
	"lcscan/internal/config"
	"lcscan/internal/staging"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Input      string
	ConfigPath string

	// Scoring
	Segment      int
	Kmer         int
	ShortSegment string

	// Performance
	Threads int

	// Output / staging
	Out         string
	Staging     string
	StagingDir  string
	KeepStaging bool

	// Misc
	Debug   int
	Quiet   bool
	Version bool
}

// aliases maps short flag names to the long name they share a value with.
var aliases = map[string]string{
	"s": "segment",
	"k": "kmer",
	"t": "threads",
	"o": "out",
	"d": "debug",
	"q": "quiet",
	"v": "version",
}

// ParseArgs registers and parses all flags and the INPUT_FASTA positional.
// Values from --config fill in every flag that was not set explicitly.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool
	def := config.Default()

	fs.StringVar(&opt.ConfigPath, "config", "", "YAML config file")

	fs.IntVar(&opt.Segment, "segment", def.Segment, "segment size")
	fs.IntVar(&opt.Segment, "s", def.Segment, "alias of --segment")
	fs.IntVar(&opt.Kmer, "kmer", def.Kmer, "k-mer size")
	fs.IntVar(&opt.Kmer, "k", def.Kmer, "alias of --kmer")
	fs.StringVar(&opt.ShortSegment, "short-segment", def.ShortSegment, "segments shorter than k: nan | zero | skip")

	fs.IntVar(&opt.Threads, "threads", def.Threads, "worker threads (0=all CPUs)")
	fs.IntVar(&opt.Threads, "t", def.Threads, "alias of --threads")

	fs.StringVar(&opt.Out, "out", def.Out, "output file ('-' for stdout)")
	fs.StringVar(&opt.Out, "o", def.Out, "alias of --out")
	fs.StringVar(&opt.Staging, "staging", def.Staging.Kind, "staging backend: dir | memory | sqlite")
	fs.StringVar(&opt.StagingDir, "staging-dir", def.Staging.Dir, "staging directory (default: temp dir)")
	fs.BoolVar(&opt.KeepStaging, "keep-staging", def.Staging.Keep, "keep staging artifacts after the run")

	dbg := (*countValue)(&opt.Debug)
	fs.Var(dbg, "debug", "turn debugging information on (repeatable)")
	fs.Var(dbg, "d", "alias of --debug")
	var dd bool
	fs.BoolVar(&dd, "dd", false, "same as -d -d")
	fs.BoolVar(&opt.Quiet, "quiet", false, "only report errors")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&opt.Version, "v", false, "alias of --version")
	fs.BoolVar(&help, "h", false, "show this help message")
	fs.BoolVar(&help, "help", false, "show this help message")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	posArgs = append(posArgs, fs.Args()...)
	if dd && opt.Debug < 2 {
		opt.Debug = 2
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	if opt.ConfigPath != "" {
		file, err := config.Load(opt.ConfigPath)
		if err != nil {
			return opt, err
		}
		applyFile(fs, &opt, file)
	}

	switch len(posArgs) {
	case 0:
		return opt, errors.New("INPUT_FASTA is required")
	case 1:
		opt.Input = posArgs[0]
	default:
		return opt, fmt.Errorf("expected one INPUT_FASTA, got %d arguments", len(posArgs))
	}
	return opt, Validate(opt)
}

// applyFile copies file values into opt for flags the user did not set.
func applyFile(fs *flag.FlagSet, opt *Options, file config.Config) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := aliases[name]; ok {
			name = long
		}
		set[name] = true
	})
	if !set["segment"] {
		opt.Segment = file.Segment
	}
	if !set["kmer"] {
		opt.Kmer = file.Kmer
	}
	if !set["threads"] {
		opt.Threads = file.Threads
	}
	if !set["out"] {
		opt.Out = file.Out
	}
	if !set["short-segment"] {
		opt.ShortSegment = file.ShortSegment
	}
	if !set["staging"] {
		opt.Staging = file.Staging.Kind
	}
	if !set["staging-dir"] {
		opt.StagingDir = file.Staging.Dir
	}
	if !set["keep-staging"] {
		opt.KeepStaging = file.Staging.Keep
	}
}

// Validate applies CLI invariants.
func Validate(o Options) error {
	if o.Segment <= 0 {
		return errors.New("--segment must be > 0")
	}
	if o.Kmer <= 0 {
		return errors.New("--kmer must be > 0")
	}
	if o.Kmer > o.Segment {
		return fmt.Errorf("--kmer (%d) must not exceed --segment (%d)", o.Kmer, o.Segment)
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if _, err := complexity.ParseShortPolicy(o.ShortSegment); err != nil {
		return fmt.Errorf("invalid --short-segment %q", o.ShortSegment)
	}
	switch o.Staging {
	case staging.KindDir, staging.KindMemory, staging.KindSQLite:
	default:
		return fmt.Errorf("invalid --staging %q", o.Staging)
	}
	if o.Out == "" {
		return errors.New("--out must not be empty")
	}
	return nil
}

// countValue is a bool-style flag that counts repetitions (-d -d) and also
// accepts an explicit level (--debug=2).
type countValue int

func (c *countValue) String() string {
	if c == nil {
		return "0"
	}
	return strconv.Itoa(int(*c))
}

func (c *countValue) Set(v string) error {
	if v == "true" {
		*c++
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid debug level %q", v)
	}
	*c = countValue(n)
	return nil
}

func (c *countValue) IsBoolFlag() bool { return true }
