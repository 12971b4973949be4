package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name|id]",
		Short: "Delete a backup target",
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

			idx, ok, err := resolveTarget(args, "Target to delete", cfg)
			if err != nil || !ok {
				return err
			}
			name := cfg.Targets[idx].Name

			var confirmed bool
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Delete target %q? Existing artifacts stay on disk.", name),
			}
			if err := survey.AskOne(prompt, &confirmed); err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Deletion cancelled.")
				return nil
			}

			cfg.Targets = append(cfg.Targets[:idx], cfg.Targets[idx+1:]...)
			if err := cfg.Save(path); err != nil {
				return err
			}

			color.Green("Target %q deleted.", name)
			return nil
		},
	}
}
