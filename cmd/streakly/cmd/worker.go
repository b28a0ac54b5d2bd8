package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/streakly/streakly/internal/app"
	"github.com/streakly/streakly/internal/config"
	"github.com/streakly/streakly/internal/logger"
)

func WorkerCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Deliver due reminders from the database queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorker(once)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "handle the jobs that are due now and exit")
	return cmd
}

func runWorker(once bool) error {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN, "worker")
	defer logger.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if a.Worker == nil {
		return errors.New("worker requires QUEUE_BACKEND=db")
	}

	if once {
		handled, err := a.Worker.Poll(ctx)
		if err != nil {
			return err
		}
		slog.Info("reminder pass finished", "handled", handled)
		return nil
	}

	return a.Worker.Run(ctx)
}
