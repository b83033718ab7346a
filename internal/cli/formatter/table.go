package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line. Column
// widths are measured on visible width so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := columnWidths(headers, rows)

	var b strings.Builder
	for i, h := range headers {
		writeCell(&b, StyleHeader.Render(h), widths, i)
	}
	b.WriteString("\n")

	for i, w := range widths {
		writeCell(&b, StyleDim.Render(strings.Repeat("─", w)), widths, i)
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(&b, cell, widths, i)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

// writeCell writes cell and pads it to its column, except in the last column.
func writeCell(b *strings.Builder, cell string, widths []int, col int) {
	b.WriteString(cell)
	if col == len(widths)-1 {
		return
	}
	pad := max(widths[col]-lipgloss.Width(cell), 0)
	b.WriteString(strings.Repeat(" ", pad+colGap))
}
