package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/dynotable/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	sourceName := flag.String("source", "", "data source: dynamodb or sqlite (optional)")
	table := flag.String("table", "", "table to view (optional, overrides config)")
	refresh := flag.Float64("refresh", 0, "auto refresh interval in seconds; negative disables (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:     *configPath,
		Source:         *sourceName,
		Table:          *table,
		RefreshSeconds: *refresh,
	}
	if flag.NArg() > 0 && opts.Table == "" {
		opts.Table = flag.Arg(0)
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "dynotable: %v\n", err)
		return 1
	}
	return 0
}
