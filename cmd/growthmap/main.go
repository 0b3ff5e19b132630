package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/growthmap/internal/cli"
	"github.com/alexanderramin/growthmap/internal/config"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Environment first; flags bound in NewRootCmd override it.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	app := &cli.App{Config: &cfg}

	// Detect interactive terminal: the map is printed once otherwise.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
