package commands

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/sqlbridge/sqlbridge/cli/internal/config"
	"github.com/sqlbridge/sqlbridge/cli/internal/ui"
	"github.com/sqlbridge/sqlbridge/query/dialect"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactively write a .sqlbridge.yaml configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit()
		},
	}
}

func runInit() error {
	answers := struct {
		Dialect     string
		DatabaseURL string
		Debug       bool
	}{}

	questions := []*survey.Question{
		{
			Name: "dialect",
			Prompt: &survey.Select{
				Message: "Default dialect:",
				Options: dialect.Names(),
				Default: "postgres",
			},
		},
		{
			Name: "databaseurl",
			Prompt: &survey.Input{
				Message: "Database URL (leave empty to use DATABASE_URL):",
			},
		},
		{
			Name: "debug",
			Prompt: &survey.Confirm{
				Message: "Enable debug logging by default?",
				Default: false,
			},
		},
	}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	path, err := config.Save(&config.Config{
		Dialect:     answers.Dialect,
		DatabaseURL: answers.DatabaseURL,
		Debug:       answers.Debug,
	})
	if err != nil {
		return err
	}

	ui.PrintSuccess("wrote %s", path)
	ui.PrintInfo("run 'sqlbridge render' to see each dialect's output")
	return nil
}
