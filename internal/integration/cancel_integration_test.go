package integration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lcscan/internal/app"
)

func TestCanceledBeforeStart_Exit130(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "big.fa")
	var b strings.Builder
	for i := 0; i < 64; i++ {
		b.WriteString(">chr" + strings.Repeat("x", i%3+1) + "\n")
		b.WriteString(strings.Repeat("ACGTTGCA", 4096) + "\n")
	}
	if err := os.WriteFile(fn, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write fasta: %v", err)
	}
	outFile := filepath.Join(dir, "out.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := app.RunContext(ctx, []string{"-t", "2", "-o", outFile, fn}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
	if _, err := os.Stat(outFile); !os.IsNotExist(err) {
		t.Fatalf("canceled run must not leave %s behind", outFile)
	}
}
