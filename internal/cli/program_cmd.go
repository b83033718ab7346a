package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/leadtime/internal/cli/formatter"
	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/spf13/cobra"
)

func newProgramCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "program",
		Aliases: []string{"prog"},
		Short:   "Manage programs and their gate dates",
	}

	cmd.AddCommand(
		newProgramAddCmd(app),
		newProgramListCmd(app),
		newProgramShowCmd(app),
		newProgramGateCmd(app),
		newProgramRemoveCmd(app),
	)

	return cmd
}

func newProgramAddCmd(app *App) *cobra.Command {
	var shortID, name string
	var gates map[string]string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new program",
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := parseGateFlags(gates)
			if err != nil {
				return err
			}

			p := &domain.Program{
				ShortID: strings.ToUpper(shortID),
				Name:    name,
				Gates:   seq,
			}
			if err := app.Programs.Create(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created program %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (2-6 uppercase letters + 2-4 digits, e.g. AX100)")
	cmd.Flags().StringVar(&name, "name", "", "Program name")
	cmd.Flags().StringToStringVar(&gates, "gate", nil, "Gate dates as key=YYYY-MM-DD (repeatable)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// parseGateFlags turns key=date pairs into a gate sequence.
func parseGateFlags(pairs map[string]string) (domain.GateSequence, error) {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seq := domain.NewGateSequence()
	for _, k := range keys {
		key, err := domain.ParseGateKey(strings.TrimSpace(k))
		if err != nil {
			return nil, err
		}
		d, err := parseDate(pairs[k])
		if err != nil {
			return nil, fmt.Errorf("gate %s: %w", key, err)
		}
		seq = seq.With(key, &d)
	}
	return seq, nil
}

func newProgramListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List programs",
		RunE: func(cmd *cobra.Command, args []string) error {
			programs, err := app.Programs.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(programs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No programs found.")
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProgramList(programs))
			return nil
		},
	}
}

func newProgramShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROGRAM",
		Short: "Show a program's gates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProgram(ctx, app, args[0])
			if err != nil {
				return err
			}
			parts, err := app.Parts.ListByProgram(ctx, p.ID)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProgramDetail(p, parts))
			return nil
		},
	}
}

func newProgramGateCmd(app *App) *cobra.Command {
	var clearDate bool

	cmd := &cobra.Command{
		Use:   "gate PROGRAM GATE [DATE]",
		Short: "Set or clear one gate date",
		Long:  "Set or clear one gate date. Gates: " + gateKeyList() + ".",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProgram(ctx, app, args[0])
			if err != nil {
				return err
			}
			key, err := domain.ParseGateKey(args[1])
			if err != nil {
				return err
			}

			var date *time.Time
			switch {
			case clearDate && len(args) == 3:
				return fmt.Errorf("pass either a date or --clear, not both")
			case clearDate:
			case len(args) == 3:
				d, err := parseDate(args[2])
				if err != nil {
					return err
				}
				date = &d
			default:
				return fmt.Errorf("a date is required (or --clear)")
			}

			if err := app.Programs.SetGate(ctx, p.ID, key, date); err != nil {
				return err
			}

			if date == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s on %s\n", key.Label(), p.DisplayID())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s on %s to %s\n", key.Label(), p.DisplayID(), date.Format(domain.DateLayout))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearDate, "clear", false, "Remove the gate date")

	return cmd
}

func gateKeyList() string {
	keys := make([]string, len(domain.ProgramGateKeys))
	for i, k := range domain.ProgramGateKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, ", ")
}

func newProgramRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROGRAM",
		Short: "Delete a program and its parts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProgram(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Programs.Delete(ctx, p.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed program %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}
}
