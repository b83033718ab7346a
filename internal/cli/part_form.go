package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/leadtime/internal/cli/formatter"
	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// leadtimeHuhTheme returns a huh theme matching the formatter palette.
func leadtimeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// partFormValues collects the fields asked for when "part add" runs on a
// terminal without --code.
type partFormValues struct {
	Code         string
	Description  string
	BaseDays     string
	Weeks        string
	Freight      string
	SprintTarget string
}

func newPartForm(v *partFormValues) *huh.Form {
	if v.Freight == "" {
		v.Freight = string(domain.FreightSea)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Part code").
				Value(&v.Code).
				Validate(validateRequired("part code")),
			huh.NewInput().
				Title("Description").
				Value(&v.Description),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Lead time (days, blank if unknown)").
				Placeholder("45").
				Value(&v.BaseDays).
				Validate(validateOptionalNonNegativeInt),
			huh.NewInput().
				Title("Lead time as quoted").
				Placeholder("6-8 weeks").
				Value(&v.Weeks),
			huh.NewSelect[string]().
				Title("Freight").
				Options(
					huh.NewOption("Sea", string(domain.FreightSea)),
					huh.NewOption("Air", string(domain.FreightAir)),
				).
				Value(&v.Freight),
			huh.NewInput().
				Title("Sprint target (YYYY-MM-DD, blank for none)").
				Placeholder("2025-06-30").
				Value(&v.SprintTarget).
				Validate(validateOptionalDate),
		),
	).WithTheme(leadtimeHuhTheme()).WithShowHelp(false)
}

// applyTo copies validated form answers onto p.
func (v *partFormValues) applyTo(p *domain.Part) error {
	p.Code = strings.TrimSpace(v.Code)
	p.Description = strings.TrimSpace(v.Description)
	if s := strings.TrimSpace(v.BaseDays); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid lead time %q", s)
		}
		p.BaseLeadTimeDays = domain.IntPtr(n)
	}
	p.LeadTimeWeeks = strings.TrimSpace(v.Weeks)
	p.FreightType = domain.FreightType(v.Freight)
	if s := strings.TrimSpace(v.SprintTarget); s != "" {
		d, err := parseDate(s)
		if err != nil {
			return err
		}
		p.Sprint.TargetDate = &d
	}
	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateOptionalNonNegativeInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a whole number")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := parseDate(s)
	return err
}
