package main

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/schc/pkg/interfaces/cli/commands"
)

var (
	serveAddress string
	serveWatch   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("address") {
			settings.Server.Address = serveAddress
		}
		if cmd.Flags().Changed("watch") {
			settings.Server.Watch = serveWatch
		}
		return commands.NewServeCommand(commands.ServeConfig{Settings: settings}).Execute(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddress, "address", "a", "", "Listen address (overrides configuration)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "Reload reference data when files in the data directory change")
}
