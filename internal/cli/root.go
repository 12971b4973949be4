// Package cli implements the dbshield command tree: the daemon and
// one-shot engine entrypoints plus the target management commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/dbshield/dbshield/internal/config"
)

var configFlag string

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dbshield",
		Short:         "Scheduled database backups with dedup and retention rotation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configFlag, "config", "",
		"path to config file (default: <user config dir>/dbshield/config.yaml)")

	root.AddCommand(
		newDaemonCommand(),
		newRunCommand(),
		newAddCommand(),
		newListCommand(),
		newEditCommand(),
		newDeleteCommand(),
		newEnableCommand(),
		newDisableCommand(),
	)

	return root
}

func configPath() (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	return config.DefaultPath()
}

func loadConfig() (*config.Config, string, error) {
	path, err := configPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
