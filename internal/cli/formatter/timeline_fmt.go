package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/leadtime/internal/contract"
	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
)

const (
	glyphOrder   = "░"
	glyphTransit = "█"
	glyphToday   = '│'
	glyphGate    = '◆'
)

// FormatTimeline draws the bar geometry of a schedule as text, colsPerDay
// terminal columns per day. Order time is drawn light, transit solid.
func FormatTimeline(resp *contract.ScheduleResponse, colsPerDay float64) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s timeline", resp.Summary.ProgramName)))
	b.WriteString("\n")

	tl := resp.Timeline
	if tl == nil || tl.PixelsPerDay <= 0 {
		b.WriteString(Dim("Nothing to draw: no phase has both a target and an order-by date."))
		b.WriteString("\n")
		return b.String()
	}
	if colsPerDay <= 0 {
		colsPerDay = 1
	}

	scale := colsPerDay / tl.PixelsPerDay
	width := int(math.Ceil(float64(tl.Days)*colsPerDay)) + 1
	todayCol := -1
	if tl.TodayX != nil {
		todayCol = clampCol(*tl.TodayX*scale, width)
	}

	labels := make([]string, len(resp.Rows))
	labelWidth := 0
	for i, r := range resp.Rows {
		labels[i] = fmt.Sprintf("%s %s", r.PartCode, phaseAbbrev(r.Phase))
		labelWidth = max(labelWidth, lipgloss.Width(labels[i]))
	}
	indent := strings.Repeat(" ", labelWidth+1)

	b.WriteString(Dim(fmt.Sprintf("%s → %s · %d days", tl.Start, tl.End, tl.Days)))
	b.WriteString("\n\n")
	b.WriteString(indent + Dim(monthAxis(tl.Start, tl.Days, colsPerDay, width)) + "\n")
	b.WriteString(indent + StylePurple.Render(gateAxis(tl.Gates, scale, width)) + "\n")

	for i, r := range resp.Rows {
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(labels[i])+1)
		b.WriteString(labels[i] + pad)
		b.WriteString(barLine(r.Bar, r.Tone, scale, width, todayCol))
		b.WriteString("\n")
	}

	if len(tl.Gates) > 0 {
		b.WriteString("\n")
		for _, g := range tl.Gates {
			fmt.Fprintf(&b, "%s %s %s\n", StylePurple.Render(string(glyphGate)), g.Label, Dim(g.Date))
		}
	}
	b.WriteString("\n")
	b.WriteString(timelineLegend())
	b.WriteString("\n")
	return b.String()
}

func phaseAbbrev(p domain.Phase) string {
	if p == domain.PhaseProduction {
		return Dim("P")
	}
	return Dim("S")
}

func clampCol(x float64, width int) int {
	return min(max(int(math.Round(x)), 0), width)
}

func blankLane(width, todayCol int) []rune {
	lane := []rune(strings.Repeat(" ", width))
	if todayCol >= 0 && todayCol < width {
		lane[todayCol] = glyphToday
	}
	return lane
}

func barLine(bar *contract.BarView, tone scheduler.Tone, scale float64, width, todayCol int) string {
	lane := blankLane(width, todayCol)
	if bar == nil {
		return Dim(string(lane))
	}
	start := min(clampCol(bar.StartX*scale, width), width-1)
	orderEnd := max(clampCol((bar.StartX+bar.OrderSegmentWidth)*scale, width), start+1)
	end := min(max(clampCol((bar.StartX+bar.TotalWidth)*scale, width), orderEnd), width)
	orderEnd = min(orderEnd, end)

	style := ToneStyle(tone)
	return Dim(string(lane[:start])) +
		style.Render(strings.Repeat(glyphOrder, orderEnd-start)) +
		style.Render(strings.Repeat(glyphTransit, end-orderEnd)) +
		Dim(string(lane[end:]))
}

// monthAxis labels the window start and the first day of each month inside
// it. A label that would overlap the previous one is skipped.
func monthAxis(start string, days int, colsPerDay float64, width int) string {
	axis := []rune(strings.Repeat(" ", width))
	first, err := time.Parse(domain.DateLayout, start)
	if err != nil {
		return string(axis)
	}
	next := 0
	for d := 0; d <= days; d++ {
		day := first.AddDate(0, 0, d)
		var label []rune
		switch {
		case day.Day() == 1:
			label = []rune(day.Format("Jan"))
		case d == 0:
			label = []rune(day.Format("Jan 2"))
		default:
			continue
		}
		col := clampCol(float64(d)*colsPerDay, width)
		if col < next || col+len(label) > width {
			continue
		}
		copy(axis[col:], label)
		next = col + len(label) + 1
	}
	return string(axis)
}

func gateAxis(gates []contract.GateMarker, scale float64, width int) string {
	axis := []rune(strings.Repeat(" ", width))
	for _, g := range gates {
		col := clampCol(g.X*scale, width)
		if col < width {
			axis[col] = glyphGate
		}
	}
	return string(axis)
}

func timelineLegend() string {
	return Dim(glyphOrder+" order ") + Dim(glyphTransit+" transit ") +
		Dim(string(glyphToday)+" today ") + StylePurple.Render(string(glyphGate)) + Dim(" gate") + "   " +
		ToneStyle(scheduler.ToneWarning).Render("late") + " " +
		ToneStyle(scheduler.ToneSuccess).Render("received") + " " +
		ToneStyle(scheduler.ToneNeutral).Render("ordered") + " " +
		ToneStyle(scheduler.ToneMuted).Render("not ordered")
}
