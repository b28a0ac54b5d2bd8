package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/streakly/streakly/cmd/streakly/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "streakly",
		Short:        "Habit, note, and to-do tracking with email reminders",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.ServeCmd())
	rootCmd.AddCommand(cmd.WorkerCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.RemindCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
