package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newEnableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <name|id>",
		Short: "Enable scheduled backups for a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setEnabled(args[0], true)
		},
	}
}

func newDisableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <name|id>",
		Short: "Disable scheduled backups for a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setEnabled(args[0], false)
		},
	}
}

func setEnabled(query string, enabled bool) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	idx, err := cfg.FindTarget(query)
	if err != nil {
		return err
	}

	cfg.Targets[idx].Enabled = enabled
	if err := cfg.Save(path); err != nil {
		return err
	}

	if enabled {
		color.Green("Enabled backups for %q.", cfg.Targets[idx].Name)
	} else {
		color.Yellow("Disabled backups for %q.", cfg.Targets[idx].Name)
	}
	return nil
}
