package cli

import (
	"github.com/spf13/cobra"

	"github.com/dbshield/dbshield/internal/app"
)

func newDaemonCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run continuously, firing backups on each target's cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}

			application, err := app.New(path)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			return application.Daemon(cmd.Context())
		},
	}
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Back up every enabled target once, ignoring schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}

			application, err := app.New(path)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			return application.RunOnce(cmd.Context())
		},
	}
}
