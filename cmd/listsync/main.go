package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"github.com/five82/listsync/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config path (default ~/.config/listsync/config.toml)")
	sourceFlag := flag.String("source", "", "list file or http(s) URL; overrides config")
	pollSeconds := flag.Int("poll", 0, "refresh interval in seconds (optional, defaults to 2s)")
	async := flag.Bool("async", false, "diff on the buffer's worker goroutine")
	headless := flag.Bool("headless", false, "print edits to stdout instead of starting the UI")
	once := flag.Bool("once", false, "fetch once, print the edits and exit")
	flag.Parse()
	defer glog.Flush()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Source:     *sourceFlag,
		Async:      *async,
		Headless:   *headless,
		Once:       *once,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "listsync: %v\n", err)
		return 1
	}
	return 0
}
