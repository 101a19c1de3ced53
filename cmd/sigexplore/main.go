// Command sigexplore recomputes the explorer views from a parameter file
// and prints them.
//
// Usage:
//
//	sigexplore [flags]
//
// The table format prints per-view statistics; csv prints one row per grid
// point (hidden values are left empty). With -spectrum the amplitude
// spectrum of the named view is added. With -watch the file is re-read on
// every change and the output repeated.
//
// Examples:
//
//	sigexplore
//	sigexplore -config params.yaml -format csv -out views.csv
//	sigexplore -config params.toml -spectrum filtered
//	sigexplore -config params.yaml -watch -metrics-addr localhost:9090
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
