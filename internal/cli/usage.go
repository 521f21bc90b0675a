// internal/cli/usage.go
package cli

import (
	"flag"
	"fmt"

	"lcscan/internal/version"
)

// NewFlagSet returns a FlagSet with ContinueOnError and the lcscan help screen.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – k-mer sequence complexity per segment\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintf(out, "Usage: %s [options] INPUT_FASTA\n", name)

		fmt.Fprintln(out, "\nScoring:")
		fmt.Fprintf(out, "  -s, --segment int           Segment size [%s]\n", def("segment"))
		fmt.Fprintf(out, "  -k, --kmer int              K-mer size (≤ segment) [%s]\n", def("kmer"))
		fmt.Fprintf(out, "      --short-segment string  Segments shorter than k: nan | zero | skip [%s]\n", def("short-segment"))

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int           Worker threads (0=all CPUs) [%s]\n", def("threads"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --out file              Output TSV ('-' for stdout) [%s]\n", def("out"))
		fmt.Fprintf(out, "      --staging string        Staging backend: dir | memory | sqlite [%s]\n", def("staging"))
		fmt.Fprintln(out, "      --staging-dir dir       Staging directory [temp dir]")
		fmt.Fprintf(out, "      --keep-staging          Keep staging artifacts [%s]\n", def("keep-staging"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintln(out, "      --config file           YAML config file (flags override)")
		fmt.Fprintln(out, "  -d, --debug                 More logging (-dd or -d -d for debug)")
		fmt.Fprintln(out, "  -q, --quiet                 Only report errors")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
	return fs
}
