// Command gridcount counts the samples of a synthetic grid that exceed a
// threshold, using one of the parallel work distribution strategies.
//
//	gridcount --strategy dynamic --workers 8 --tile-width 32 --tile-height 32
//	gridcount --compare --schedule "@every 30s" --metrics-addr :9090
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

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
