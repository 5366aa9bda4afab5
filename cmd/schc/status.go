package main

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/schc/pkg/interfaces/cli/commands"
	"github.com/vsinha/schc/pkg/interfaces/cli/output"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which reference files and predictors are available",
	RunE: func(cmd *cobra.Command, args []string) error {
		return commands.NewStatusCommand(commands.StatusConfig{
			Settings: settings,
			Format:   statusFormat,
			Out:      cmd.OutOrStdout(),
		}).Execute(cmd.Context())
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusFormat, "format", "f", output.FormatText, "Output format: text, json")
}
