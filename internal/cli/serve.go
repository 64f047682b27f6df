// Package cli holds the cobra subcommands of the court-metrics binary.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/court-metrics/internal/app"
	"github.com/iliyamo/court-metrics/internal/config"
	"github.com/iliyamo/court-metrics/internal/logging"
)

// NewServeCmd creates the "serve" subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().StringP("port", "p", "", "Listen port (overrides APP_PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return exitError(ExitConfig, "config: %v", err)
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}

	log := newLogger(cmd, cfg.IsProduction())
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "err", err)
		return err
	}
	return a.Run(ctx)
}

func newLogger(cmd *cobra.Command, production bool) logging.Logger {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return logging.New(cmd.ErrOrStderr(), production, level)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
