package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"AuthDesk/internal/cli/commands"
	"AuthDesk/internal/config"
)

// Заполняются через -ldflags "-X main.version=... -X main.buildDate=...".
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cfg := config.NewConfig()
	if cfg.Version {
		printVersion(os.Stdout, cfg)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Dispatch(ctx, cfg, flag.Args())
	stop()
	os.Exit(code)
}

func printVersion(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "authdesk %s (built %s)\nserver: %s\n", version, buildDate, cfg.ServerURL)
}
