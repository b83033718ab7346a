package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/leadtime/internal/cli/formatter"
	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/service"
	"github.com/spf13/cobra"
)

func newPartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "part",
		Short: "Manage the parts of a program",
	}

	cmd.AddCommand(
		newPartAddCmd(app),
		newPartListCmd(app),
		newPartShowCmd(app),
		newPartUpdateCmd(app),
		newPartOrderCmd(app),
		newPartRemoveCmd(app),
	)

	return cmd
}

func newPartAddCmd(app *App) *cobra.Command {
	var code string
	var fields partFields

	cmd := &cobra.Command{
		Use:   "add PROGRAM",
		Short: "Add a part to a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			program, err := resolveProgram(ctx, app, args[0])
			if err != nil {
				return err
			}

			p := &domain.Part{ProgramID: program.ID, Code: code}
			if strings.TrimSpace(code) == "" {
				if !app.interactive() {
					return fmt.Errorf("--code is required")
				}
				var values partFormValues
				if err := newPartForm(&values).Run(); err != nil {
					return err
				}
				if err := values.applyTo(p); err != nil {
					return err
				}
			}
			if err := fields.apply(cmd.Flags(), p); err != nil {
				return err
			}

			if err := app.Parts.Create(ctx, p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added part %s to %s\n", p.DisplayCode(), program.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Part code (prompted on a terminal when omitted)")
	fields.register(cmd.Flags())

	return cmd
}

func newPartListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROGRAM",
		Short: "List the parts of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			program, err := resolveProgram(ctx, app, args[0])
			if err != nil {
				return err
			}
			parts, err := app.Parts.ListByProgram(ctx, program.ID)
			if err != nil {
				return err
			}

			if len(parts) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No parts in %s.\n", program.DisplayID())
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPartList(parts))
			return nil
		},
	}
}

func newPartShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show PROGRAM PART",
		Short: "Show the derived schedule of one part",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, part, err := resolvePart(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			resp, err := app.Schedule.GetPartSchedule(ctx, part.ID, app.Now)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPartSchedule(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}

func newPartUpdateCmd(app *App) *cobra.Command {
	var code string
	var fields partFields

	cmd := &cobra.Command{
		Use:   "update PROGRAM PART",
		Short: "Change part attributes and lead-time inputs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, part, err := resolvePart(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("code") {
				part.Code = strings.TrimSpace(code)
			}
			if err := fields.apply(cmd.Flags(), part); err != nil {
				return err
			}
			if err := app.Parts.Update(ctx, part); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated part %s\n", part.DisplayCode())
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Part code")
	fields.register(cmd.Flags())

	return cmd
}

func newPartOrderCmd(app *App) *cobra.Command {
	var (
		phase                     string
		target, poDate            *time.Time
		clearTarget, clearPODate  bool
		poNumber                  string
		received                  bool
		receivedQty, requestedQty int
	)

	cmd := &cobra.Command{
		Use:   "order PROGRAM PART",
		Short: "Record order facts for one phase of a part",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, part, err := resolvePart(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			upd := service.PhaseUpdate{
				TargetDate:  target,
				ClearTarget: clearTarget,
				PODate:      poDate,
				ClearPODate: clearPODate,
			}
			if flags.Changed("po") {
				upd.PONumber = &poNumber
			}
			if flags.Changed("received") {
				upd.Received = &received
			}
			if flags.Changed("received-qty") {
				upd.ReceivedQty = &receivedQty
			}
			if flags.Changed("requested-qty") {
				upd.RequestedQty = &requestedQty
			}

			updated, err := app.Parts.SetPhase(ctx, part.ID, domain.Phase(phase), upd)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s order\n", updated.DisplayCode(), phase)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&phase, "phase", string(domain.PhaseSprint), "Phase to update (sprint or production)")
	f.Var(newDateFlag(&target), "target", "Target date (YYYY-MM-DD)")
	f.BoolVar(&clearTarget, "clear-target", false, "Remove the target date")
	f.StringVar(&poNumber, "po", "", "Purchase-order number")
	f.Var(newDateFlag(&poDate), "po-date", "Purchase-order date (YYYY-MM-DD)")
	f.BoolVar(&clearPODate, "clear-po-date", false, "Remove the purchase-order date")
	f.BoolVar(&received, "received", false, "Mark the phase received (--received=false to undo)")
	f.IntVar(&receivedQty, "received-qty", 0, "Quantity received so far")
	f.IntVar(&requestedQty, "requested-qty", 0, "Quantity requested on the order")
	cmd.MarkFlagsMutuallyExclusive("target", "clear-target")
	cmd.MarkFlagsMutuallyExclusive("po-date", "clear-po-date")

	return cmd
}

func newPartRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROGRAM PART",
		Short: "Delete a part",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, part, err := resolvePart(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.Parts.Delete(ctx, part.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed part %s\n", part.DisplayCode())
			return nil
		},
	}
}
