package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeline_DrawsBarsFromGeometry(t *testing.T) {
	out := stripANSI(FormatTimeline(sampleSchedule(), 0.5))

	// 0.5 columns per day at 2px per day: x/4 columns.
	// Bar 34..124 order, 124..194 transit -> columns 9..31 and 31..49.
	want := "BRK-100 S " + strings.Repeat(" ", 9) + strings.Repeat("░", 22) + strings.Repeat("█", 18)
	assert.Contains(t, out, want)

	// Rows without geometry still carry the today marker at column 18.
	assert.Contains(t, out, "ENC-400 P "+strings.Repeat(" ", 18)+"│")

	assert.Contains(t, out, "2025-01-24 → 2025-06-01 · 129 days")
	assert.Contains(t, out, "◆ Design Transfer 2025-04-01")
}

func TestFormatTimeline_GateAxis(t *testing.T) {
	out := stripANSI(FormatTimeline(sampleSchedule(), 0.5))

	var gateLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "◆") && !strings.Contains(line, "Design") {
			gateLine = line
			break
		}
	}
	require.NotEmpty(t, gateLine)
	// 10 label columns, then x=134 -> column 34 (33.5 rounds up).
	assert.Equal(t, 10+34, strings.Index(gateLine, "◆"))
}

func TestFormatTimeline_NoWindow(t *testing.T) {
	resp := sampleSchedule()
	resp.Timeline = nil

	assert.Contains(t, stripANSI(FormatTimeline(resp, 1)), "Nothing to draw")
}

func TestMonthAxis(t *testing.T) {
	axis := monthAxis("2025-01-24", 10, 1, 11)
	assert.True(t, strings.HasPrefix(axis, "Jan 24"))

	axis = monthAxis("2025-01-30", 5, 1, 6)
	assert.Equal(t, "Jan 30", axis)
}
