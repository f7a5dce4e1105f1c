package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/multierr"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(version).ExecuteContext(ctx); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, e)
		}
		stop()
		os.Exit(1)
	}
}
