// Command dictimport loads DSL/BKRS dictionary files into the database.
//
// Subcommands:
//
//	import         import characters, phrases or examples from a .dsl/.dsl.dz file
//	update-pinyin  backfill pinyin of characters already in the database
//	validate       parse a file and report what an import would write
//
// SIGINT/SIGTERM stop reading the source; entries already read are still
// written. Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "dictimport: %v\n", err)
		return 1
	}
	return 0
}
