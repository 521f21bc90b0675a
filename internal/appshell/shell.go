// internal/appshell/shell.go
package appshell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

// ExitInterrupted is the status of a run stopped by SIGINT or SIGTERM.
const ExitInterrupted = 130

// Main runs the lcscan entrypoint under a context that is canceled on the
// first SIGINT/SIGTERM. A second signal kills the process with the default
// handler. Running without arguments shows the help screen.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	if ctx.Err() != nil && (code == 0 || code == ExitInterrupted) {
		fmt.Fprintf(os.Stderr, "%s: interrupted\n", filepath.Base(os.Args[0]))
		code = ExitInterrupted
	}

	stop()
	os.Exit(code)
}
