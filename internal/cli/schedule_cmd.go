package cli

import (
	"fmt"

	"github.com/alexanderramin/leadtime/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var filters scheduleFilters
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "schedule PROGRAM",
		Short: "Show order-by dates and statuses for every part phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			program, err := resolveProgram(ctx, app, args[0])
			if err != nil {
				return err
			}

			resp, err := app.Schedule.GetSchedule(ctx, filters.request(program.ID, app.Now))
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(resp))
			return nil
		},
	}

	filters.register(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}

func newRiskCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "risk PROGRAM",
		Aliases: []string{"early"},
		Short:   "List parts that must be ordered before their authorizing gate",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			program, err := resolveProgram(ctx, app, args[0])
			if err != nil {
				return err
			}

			resp, err := app.Schedule.GetEarlyOrders(ctx, program.ID, app.Now)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEarlyOrders(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}
