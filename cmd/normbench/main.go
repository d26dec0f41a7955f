// Package main is the normbench CLI entry point.
//
// With no arguments it runs the reference row normalization benchmark
// (1024x60000 matrix, 20 passes) and prints the average seconds per pass.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
