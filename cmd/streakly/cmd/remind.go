package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/streakly/streakly/internal/app"
	"github.com/streakly/streakly/internal/config"
	"github.com/streakly/streakly/internal/logger"
	"github.com/streakly/streakly/internal/service"
)

func RemindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind <todo-id>",
		Short: "Send the reminder for one to-do now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return remind(cmd.Context(), args[0])
		},
	}
}

func remind(ctx context.Context, todoID string) error {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN, "remind")
	defer logger.Flush()

	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	outcome := a.ReminderDispatcher.Dispatch(ctx, todoID)
	fmt.Printf("reminder %s: %s\n", todoID, outcome)

	if outcome == service.OutcomeFailed {
		return fmt.Errorf("reminder for %s could not be delivered", todoID)
	}
	return nil
}
