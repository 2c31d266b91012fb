// Command pathviz finds and animates shortest paths on square grids.
//
//	pathviz solve --size 30 --topology 8 --start 0 --target 899 --verify
//	pathviz solve --layout-file maze.txt
//	pathviz view --config pathviz.yaml
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
		fmt.Fprintln(os.Stderr, "pathviz:", err)
		stop()
		os.Exit(1)
	}
}
