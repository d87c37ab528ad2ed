// dashboard shows the inventory served by the inventory API.
//
// Three modes of operation:
//
// Terminal (default): an interactive table. Left/right or h/l cycle the
// category filter, j/k scroll, q quits.
//
// Print (--print): fetch once, write the table to stdout and exit.
//
// Web (--serve): serve the table as an HTML page on --addr, with the
// category filter in the query string.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"inventory-dashboard/internal"
	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/dashboard"
	"inventory-dashboard/internal/dashboard/tui"
	"inventory-dashboard/internal/dashboard/web"
	"inventory-dashboard/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	var printOnce, serve bool
	var category, logOutput string

	flagSet := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "inventory endpoint URL")
	flagSet.DurationVar(&cfg.FetchTimeout, "timeout", cfg.FetchTimeout, "request timeout (0 waits indefinitely)")
	flagSet.BoolVar(&printOnce, "print", false, "print the table once and exit")
	flagSet.StringVar(&category, "category", dashboard.All, "category to show with --print")
	flagSet.BoolVar(&serve, "serve", false, "serve the dashboard as an HTML page")
	flagSet.StringVar(&cfg.DashboardAddr, "addr", cfg.DashboardAddr, "listen address for --serve")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (terminal mode)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	if printOnce && serve {
		return errors.New("--print and --serve are mutually exclusive")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := dashboard.NewClient(cfg.Endpoint, cfg.FetchTimeout)

	switch {
	case printOnce:
		logger := logging.New(logging.Config{Env: cfg.Env, Level: cfg.LogLevel})
		return runPrint(ctx, os.Stdout, client, category, logger)
	case serve:
		logger := logging.New(logging.Config{Env: cfg.Env, Level: cfg.LogLevel})
		return runWeb(ctx, cfg.DashboardAddr, client, logger)
	default:
		logger, closeLog, err := terminalLogger(cfg, logOutput)
		if err != nil {
			return err
		}
		defer closeLog()
		return runTerminal(ctx, client, logger)
	}
}

// terminalLogger keeps log records off the screen the UI owns: they go to
// logOutput when set and are dropped otherwise.
func terminalLogger(cfg *config.Config, logOutput string) (zerolog.Logger, func(), error) {
	if logOutput == "" {
		return zerolog.Nop(), func() {}, nil
	}
	file, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("cannot open log file %s: %w", logOutput, err)
	}
	logger := logging.New(logging.Config{Env: "production", Level: cfg.LogLevel, Output: file})
	return logger, func() { file.Close() }, nil
}

func runTerminal(ctx context.Context, client *dashboard.Client, logger zerolog.Logger) error {
	logger.Info().Str("endpoint", client.Endpoint()).Msg("Starting inventory dashboard")
	model := tui.NewModel(ctx, dashboard.NewView(logger), client)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// runPrint loads once and writes the table. A failed load still prints the
// empty table and exits cleanly.
func runPrint(ctx context.Context, out io.Writer, src dashboard.Fetcher, category string, logger zerolog.Logger) error {
	view := dashboard.NewView(logger)
	view.Load(ctx, src)
	view.Select(category)
	_, err := io.WriteString(out, tui.RenderStatic(view, tui.DefaultTheme, 0))
	return err
}

func runWeb(ctx context.Context, addr string, client *dashboard.Client, logger zerolog.Logger) error {
	d := web.New(logger)
	go d.Load(ctx, client)

	logger.Info().Str("addr", addr).Str("endpoint", client.Endpoint()).Msg("Starting inventory dashboard server")
	return internal.ListenAndServe(ctx, addr, d.Router)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Inventory dashboard: browse the inventory served by the inventory API.

The endpoint defaults to %s and can be set with
DASHBOARD_ENDPOINT or --endpoint.

Usage:
  dashboard [flags]

Examples:
  # Interactive table
  dashboard

  # Print the Tools category once
  dashboard --print --category Tools

  # Serve the HTML dashboard on :5173
  dashboard --serve

Flags:
`, config.DefaultEndpoint)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
