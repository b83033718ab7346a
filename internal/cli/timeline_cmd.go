package cli

import (
	"fmt"

	"github.com/alexanderramin/leadtime/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// timelinePixelsPerDay is the geometry scale requested from the schedule;
// the text renderer rescales it to terminal columns.
const timelinePixelsPerDay = 4

func newTimelineCmd(app *App) *cobra.Command {
	var filters scheduleFilters
	var colsPerDay float64
	var padDays int
	var interactive bool

	cmd := &cobra.Command{
		Use:   "timeline PROGRAM",
		Short: "Draw order and transit bars against the program gates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			program, err := resolveProgram(ctx, app, args[0])
			if err != nil {
				return err
			}

			req := filters.request(program.ID, app.Now)
			req.PixelsPerDay = timelinePixelsPerDay
			req.PadDays = padDays
			resp, err := app.Schedule.GetSchedule(ctx, req)
			if err != nil {
				return err
			}

			if !interactive {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(resp, colsPerDay))
				return nil
			}
			if !app.interactive() {
				return fmt.Errorf("--interactive needs a terminal")
			}
			_, err = tea.NewProgram(newTimelineModel(resp, colsPerDay), tea.WithAltScreen()).Run()
			return err
		},
	}

	filters.register(cmd.Flags())
	cmd.Flags().Float64Var(&colsPerDay, "cols-per-day", 0.5, "Terminal columns per day")
	cmd.Flags().IntVar(&padDays, "pad", 14, "Days of padding around the timeline window")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open a scrollable, zoomable view")

	return cmd
}
