package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vsinha/schc/pkg/application/dto"
	"github.com/vsinha/schc/pkg/interfaces/cli/commands"
	"github.com/vsinha/schc/pkg/interfaces/cli/output"
)

var (
	request          dto.RecommendationRequest
	recommendFormat  string
	recommendOutput  string
	recommendVerbose bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Evaluate one order decision and carrier lane",
	Long: `Evaluates a single request. Inputs left unset take the dashboard defaults:
the first known hospital, medicine, origin, destination, carrier and service
level, the current month, 150 units on hand, 7 days lead time, 35000 lb and
one stop.`,
	Example: `  schc recommend --hospital GenHosp --medicine InsulinX --month 6 --inventory 50
  schc recommend --origin CHI --destination DAL --carrier FastFreight --format json
  schc recommend --format html --output results/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var overrides []string
		cmd.Flags().Visit(func(f *pflag.Flag) {
			overrides = append(overrides, f.Name)
		})

		return commands.NewRecommendCommand(commands.RecommendConfig{
			Settings:  settings,
			Request:   request,
			Overrides: overrides,
			Format:    recommendFormat,
			OutputDir: recommendOutput,
			Verbose:   recommendVerbose,
			Out:       cmd.OutOrStdout(),
		}).Execute(cmd.Context())
	},
}

func init() {
	flags := recommendCmd.Flags()
	flags.StringVar(&request.Hospital, commands.FlagHospital, "", "Hospital name")
	flags.StringVar(&request.Medicine, commands.FlagMedicine, "", "Medicine name")
	flags.IntVar(&request.Month, commands.FlagMonth, 0, "Month of year (1-12)")
	flags.Int64Var(&request.CurrentInventory, commands.FlagCurrentInventory, 0, "Units currently on hand")
	flags.IntVar(&request.LeadTimeDays, commands.FlagLeadTimeDays, 0, "Replenishment lead time in days")
	flags.StringVar(&request.Origin, commands.FlagOrigin, "", "Shipment origin")
	flags.StringVar(&request.Destination, commands.FlagDestination, "", "Shipment destination")
	flags.StringVar(&request.Carrier, commands.FlagCarrier, "", "Carrier")
	flags.StringVar(&request.ServiceLevel, commands.FlagServiceLevel, "", "Service level")
	flags.Float64Var(&request.DistanceOverride, commands.FlagDistanceOverride, 0, "Distance in miles, 0 derives it from history")
	flags.Float64Var(&request.Weight, commands.FlagWeight, 0, "Shipment weight")
	flags.IntVar(&request.Stops, commands.FlagStops, 0, "Number of stops (1-3)")

	flags.StringVarP(&recommendFormat, "format", "f", output.FormatText, "Output format: text, json, csv, html")
	flags.StringVarP(&recommendOutput, "output", "o", "", "Directory to save results (required for csv and html)")
	flags.BoolVarP(&recommendVerbose, "verbose", "v", false, "Print inputs and saved file paths")
}
