package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/foodbites/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override foodbites config path (optional)")
	pollSeconds := flag.Int("poll", 0, "account refresh interval in seconds (optional)")
	apiBase := flag.String("api", "", "backend base URL (overrides api_base)")
	token := flag.String("token", "", "bearer token to sign in with (optional)")
	start := flag.String("route", "/", "initial screen, e.g. /foods?cuisine=Italian")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		APIBase:    *apiBase,
		Token:      *token,
		Start:      *start,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "foodbites: %v\n", err)
		return 1
	}
	return 0
}
