package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ToneStyle returns the bar style for a tone.
func ToneStyle(t scheduler.Tone) lipgloss.Style {
	switch t {
	case scheduler.ToneWarning:
		return StyleRed
	case scheduler.ToneSuccess:
		return StyleGreen
	case scheduler.ToneNeutral:
		return StyleBlue
	case scheduler.ToneMuted:
		return StyleFg
	default:
		return StyleDim
	}
}

// StatusPill returns a colored indicator such as "● Late" for an order status.
// A late phase is always shown as late, whatever its status.
func StatusPill(status domain.OrderStatus, late bool) string {
	if late {
		return StyleRed.Render("▲ Late")
	}
	switch status {
	case domain.OrderReceived:
		return StyleGreen.Render("✔ Received")
	case domain.OrderOrdered:
		return StyleBlue.Render("● Ordered")
	case domain.OrderNotOrdered:
		return StyleYellow.Render("○ Not ordered")
	case domain.OrderNoTarget:
		return StyleDim.Render("· No target")
	default:
		return StyleDim.Render(string(status))
	}
}

// StagePill returns a colored workflow stage label.
func StagePill(stage domain.PartStage) string {
	label := strings.ReplaceAll(string(stage), "_", " ")
	switch stage {
	case domain.StageComplete:
		return StyleDim.Render("✔ " + label)
	case domain.StageCancelled:
		return StyleDim.Render("✖ " + label)
	case domain.StageOnHold:
		return StyleYellow.Render(label)
	case domain.StageProcurement:
		return StylePurple.Render(label)
	default:
		return StyleFg.Render(label)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
