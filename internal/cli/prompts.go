package cli

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"

	"github.com/dbshield/dbshield/internal/config"
	"github.com/dbshield/dbshield/internal/infrastructure/schedule"
)

func askText(message, defaultValue string, required bool) (string, error) {
	prompt := &survey.Input{Message: message, Default: defaultValue}
	var answer string
	opts := []survey.AskOpt{}
	if required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	if err := survey.AskOne(prompt, &answer, opts...); err != nil {
		return "", err
	}
	return answer, nil
}

func askInt(message string, defaultValue, min, max int) (int, error) {
	prompt := &survey.Input{Message: message, Default: strconv.Itoa(defaultValue)}
	var answer string
	validator := survey.WithValidator(func(ans interface{}) error {
		s, _ := ans.(string)
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if n < min || n > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	})
	if err := survey.AskOne(prompt, &answer, validator); err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}

func askSelect(message string, options []string, defaultOption string) (string, error) {
	prompt := &survey.Select{Message: message, Options: options}
	if defaultOption != "" {
		prompt.Default = defaultOption
	}
	var answer string
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

func askPassword(message string) (string, error) {
	var answer string
	if err := survey.AskOne(&survey.Password{Message: message}, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

var weekdays = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// askSchedule builds a 6-field cron expression from schedule presets, the
// same presets the interactive configuration has always offered.
func askSchedule() (string, error) {
	choice, err := askSelect("Backup schedule", []string{
		"Every minute (test)",
		"Hourly",
		"Daily",
		"Weekly",
		"Monthly",
		"Custom cron expression",
	}, "Hourly")
	if err != nil {
		return "", err
	}

	switch choice {
	case "Every minute (test)":
		return "0 * * * * *", nil

	case "Hourly":
		return "0 0 * * * *", nil

	case "Daily":
		hour, err := askInt("At what hour (0-23)?", 0, 0, 23)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("0 0 %d * * *", hour), nil

	case "Weekly":
		day, err := askSelect("On which day?", weekdays, weekdays[0])
		if err != nil {
			return "", err
		}
		dayIdx := 0
		for i, d := range weekdays {
			if d == day {
				dayIdx = i
			}
		}
		hour, err := askInt("At what hour (0-23)?", 0, 0, 23)
		if err != nil {
			return "", err
		}
		// Cron weekdays run 0-6 starting at Sunday, same as the list order.
		return fmt.Sprintf("0 0 %d * * %d", hour, dayIdx), nil

	case "Monthly":
		date, err := askInt("On which date (1-31)?", 1, 1, 31)
		if err != nil {
			return "", err
		}
		hour, err := askInt("At what hour (0-23)?", 0, 0, 23)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("0 0 %d %d * *", hour, date), nil

	default: // custom
		prompt := &survey.Input{Message: "Cron expression (seconds first)", Default: "0 0 * * * *"}
		var expr string
		validator := survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			if err := schedule.Validate(s); err != nil {
				return fmt.Errorf("invalid cron expression")
			}
			return nil
		})
		if err := survey.AskOne(prompt, &expr, validator); err != nil {
			return "", err
		}
		return expr, nil
	}
}

const cancelOption = "Cancel"

// askTargetIndex lets the user pick a target interactively. The second
// return value is false when the user cancelled.
func askTargetIndex(message string, cfg *config.Config) (int, bool, error) {
	options := make([]string, 0, len(cfg.Targets)+1)
	for i, t := range cfg.Targets {
		options = append(options, fmt.Sprintf("%d. %s (%s)", i+1, t.Name, t.Type))
	}
	options = append(options, cancelOption)

	choice, err := askSelect(message, options, "")
	if err != nil {
		return 0, false, err
	}
	if choice == cancelOption {
		return 0, false, nil
	}

	for i, opt := range options {
		if opt == choice {
			return i, true, nil
		}
	}
	return 0, false, fmt.Errorf("unexpected selection %q", choice)
}

// resolveTarget picks a target from an optional name/id argument, falling
// back to an interactive selection.
func resolveTarget(args []string, message string, cfg *config.Config) (int, bool, error) {
	if len(args) > 0 {
		idx, err := cfg.FindTarget(args[0])
		if err != nil {
			return 0, false, err
		}
		return idx, true, nil
	}
	return askTargetIndex(message, cfg)
}
