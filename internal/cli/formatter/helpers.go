package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDays renders a signed day offset as "Today", "In 3d", "12d ago" and
// coarser units further out.
func RelativeDays(days int) string {
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// RelativeDateFrom returns RelativeDays for the calendar-day distance from now to t.
func RelativeDateFrom(t time.Time, now time.Time) string {
	return RelativeDays(domain.DaysBetween(now, t))
}

// OrderByCell renders an order-by date with its distance from today, coloured
// by urgency: red when overdue or within two days, yellow within a week.
func OrderByCell(date *string, days *int) string {
	if date == nil {
		return Dim("--")
	}
	if days == nil {
		return *date
	}
	rel := RelativeDays(*days)
	switch {
	case *days <= 2:
		rel = StyleRed.Render(rel)
	case *days <= 7:
		rel = StyleYellow.Render(rel)
	default:
		rel = Dim(rel)
	}
	return *date + " " + rel
}

// DatePtr renders an optional YYYY-MM-DD string, dimmed dashes when unset.
func DatePtr(s *string) string {
	if s == nil {
		return Dim("--")
	}
	return *s
}

// FormatDate renders an optional date as YYYY-MM-DD.
func FormatDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format(domain.DateLayout)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// LeadDays renders "base+transit=effective".
func LeadDays(base, transit, effective int) string {
	return fmt.Sprintf("%d+%d=%s", base, transit, Bold(fmt.Sprintf("%dd", effective)))
}

// ReceivedCell renders received against requested quantity.
func ReceivedCell(received, requested int, pct float64, partial bool) string {
	if requested == 0 && received == 0 {
		return Dim("--")
	}
	s := fmt.Sprintf("%d/%d (%.0f%%)", received, requested, pct)
	if partial {
		return StyleYellow.Render(s)
	}
	return s
}

// WarningLines renders warnings as dimmed bullet lines.
func WarningLines(ws []scheduler.Warning) string {
	var b strings.Builder
	for _, w := range ws {
		b.WriteString(StyleYellow.Render("  ! "))
		b.WriteString(Dim(string(w.Code) + ": " + w.Message))
		b.WriteString("\n")
	}
	return b.String()
}

// MessageLines renders preformatted warning messages.
func MessageLines(msgs []string) string {
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(StyleYellow.Render("  ! "))
		b.WriteString(Dim(m))
		b.WriteString("\n")
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return Dim("--")
	}
	return s
}
