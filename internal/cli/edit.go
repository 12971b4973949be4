package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dbshield/dbshield/internal/config"
)

func newEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [name|id]",
		Short: "Edit an existing backup target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig()
			if err != nil {
				return err
			}
			if len(cfg.Targets) == 0 {
				fmt.Println("No targets configured.")
				return nil
			}

			idx, ok, err := resolveTarget(args, "Target to edit", cfg)
			if err != nil || !ok {
				return err
			}

			if err := editTarget(&cfg.Targets[idx]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return err
			}

			color.Green("Target %q updated.", cfg.Targets[idx].Name)
			return nil
		},
	}
}

func editTarget(target *config.TargetConfig) error {
	for {
		field, err := askSelect(
			fmt.Sprintf("Editing %q, select field to change", target.Name),
			[]string{
				"Name", "Host", "Port", "User", "Password", "Database",
				"Output directory", "Retention count", "Schedule", "Done",
			},
			"Done",
		)
		if err != nil {
			return err
		}

		switch field {
		case "Name":
			if target.Name, err = askText("Name", target.Name, true); err != nil {
				return err
			}
		case "Host":
			if target.Host, err = askText("Host", target.Host, true); err != nil {
				return err
			}
		case "Port":
			if target.Port, err = askInt("Port", target.Port, 1, 65535); err != nil {
				return err
			}
		case "User":
			if target.Username, err = askText("User", target.Username, true); err != nil {
				return err
			}
		case "Password":
			pass, err := askPassword("Password (empty keeps current, \"clear\" removes)")
			if err != nil {
				return err
			}
			if pass == "clear" {
				target.Password = ""
			} else if pass != "" {
				target.Password = pass
			}
		case "Database":
			if target.Database, err = askText("Database", target.Database, true); err != nil {
				return err
			}
		case "Output directory":
			if target.OutputDir, err = askText("Output directory", target.OutputDir, true); err != nil {
				return err
			}
		case "Retention count":
			if target.RetentionCount, err = askInt("Retention count", target.RetentionCount, 0, 10000); err != nil {
				return err
			}
		case "Schedule":
			current := target.Schedule
			if current == "" {
				current = "none"
			}
			fmt.Printf("Current schedule: %s\n", current)
			if target.Schedule, err = askSchedule(); err != nil {
				return err
			}
		case "Done":
			return nil
		}
	}
}
