// Package appshell wires a command entry point to the process: signals,
// stdio and the exit code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is a whole command invocation; it returns the exit code.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs fn under a context cancelled by SIGINT/SIGTERM and exits.
// An interrupted run that still reports success exits 130.
func Main(fn RunFunc) {
	os.Exit(run(fn, os.Args[1:], os.Stdout, os.Stderr))
}

func run(fn RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := fn(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
