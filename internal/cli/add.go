package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dbshield/dbshield/internal/config"
)

func newAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Add a new backup target interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig()
			if err != nil {
				return err
			}

			target, err := promptTarget(cfg)
			if err != nil {
				return err
			}

			cfg.Targets = append(cfg.Targets, target)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return err
			}

			color.Green("Target %q saved.", target.Name)
			return nil
		},
	}
}

func promptTarget(cfg *config.Config) (config.TargetConfig, error) {
	var target config.TargetConfig

	dbType, err := askSelect("Database type", config.SupportedTypes, config.SupportedTypes[0])
	if err != nil {
		return target, err
	}
	target.Type = dbType

	name, err := askText("Target name (e.g. production-db)", "", true)
	if err != nil {
		return target, err
	}
	for _, t := range cfg.Targets {
		if t.Name == name {
			return target, fmt.Errorf("a target named %q already exists", name)
		}
	}
	target.Name = name

	if target.Host, err = askText("Host", "localhost", true); err != nil {
		return target, err
	}
	if target.Port, err = askInt("Port", config.DefaultPort(dbType), 1, 65535); err != nil {
		return target, err
	}
	if target.Username, err = askText("User", "", true); err != nil {
		return target, err
	}
	if target.Password, err = askPassword("Password (optional)"); err != nil {
		return target, err
	}
	if target.Database, err = askText("Database name", "", true); err != nil {
		return target, err
	}
	if target.OutputDir, err = askText("Output directory for backups", "./backups", true); err != nil {
		return target, err
	}

	retention, err := askText("Retention count (backups to keep)", "5", true)
	if err != nil {
		return target, err
	}
	if target.RetentionCount, err = strconv.Atoi(retention); err != nil || target.RetentionCount < 0 {
		return target, fmt.Errorf("retention count must be a non-negative number")
	}

	if target.Schedule, err = askSchedule(); err != nil {
		return target, err
	}

	target.Enabled = true
	return target, nil
}
