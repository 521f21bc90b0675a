// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveThreads resolves the worker count: 0 means all CPUs.
func EffectiveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// SizeWarnings returns advisory messages for legal but unusual size choices.
// Hard errors (non-positive sizes, k larger than the segment) are rejected
// elsewhere.
func SizeWarnings(segment, kmer int, threads int) []string {
	var warns []string
	if kmer == segment {
		warns = append(warns, "k-mer size equals segment size; every full segment scores 1")
	}
	if kmer > 32 {
		warns = append(warns, "k-mer size above 32 makes nearly every window unique")
	}
	if threads > 4*runtime.NumCPU() {
		warns = append(warns, "more worker threads than 4x the CPU count")
	}
	return warns
}
