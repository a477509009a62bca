// Command remap evaluates stage pipelines from almanac files and manages
// stored snapshots of their definitions.
//
// Usage:
//
//	remap min input.txt                      # lowest mapped seed
//	remap min input.txt --ranges             # seeds as (start, length) pairs
//	remap trace input.txt -k 79 -k 14        # per-stage values
//	remap pack input.txt --store ./snaps     # store a snapshot
//	remap unpack input --store ./snaps       # print a stored definition
//	remap list --store s3://bucket/prefix    # list stored snapshots
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
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
