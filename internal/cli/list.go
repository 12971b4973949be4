package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dbshield/dbshield/internal/artifact"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured backup targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if len(cfg.Targets) == 0 {
				fmt.Println("No targets configured. Run \"dbshield add\" first.")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "Name", "Type", "Host", "Database", "Schedule",
					"Retention", "Status", "Last Backup")

			for i, target := range cfg.Targets {
				schedule := target.Schedule
				if schedule == "" {
					schedule = "none"
				}

				status := color.RedString("disabled")
				if target.Enabled {
					status = color.GreenString("enabled")
				}

				lastBackup := "never"
				if latest, ok, err := artifact.Latest(target.OutputDir, target.Name); err == nil && ok {
					lastBackup = latest.Name
				}

				t.Row(
					strconv.Itoa(i+1),
					target.Name,
					target.Type,
					target.Host,
					target.Database,
					schedule,
					strconv.Itoa(target.RetentionCount),
					status,
					lastBackup,
				)
			}

			fmt.Println(t)
			return nil
		},
	}
}
