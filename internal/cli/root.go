package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/leadtime/internal/config"
	"github.com/alexanderramin/leadtime/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Programs service.ProgramService
	Parts    service.PartService
	Schedule service.ScheduleService
	Import   service.ImportService

	Config *config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means never,
	// so prompts are skipped and missing flags are errors.
	IsInteractive func() bool

	// Now overrides the evaluation date of every schedule command (--now).
	Now *time.Time
}

// NewRootCmd creates the top-level "leadtime" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "leadtime",
		Short:         "Procurement lead-time scheduling for program parts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Var(newDateFlag(&app.Now), "now", "Evaluate as of this date (YYYY-MM-DD) instead of today")

	root.AddCommand(
		newProgramCmd(app),
		newPartCmd(app),
		newScheduleCmd(app),
		newRiskCmd(app),
		newTimelineCmd(app),
		newImportCmd(app),
		newServeCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}
