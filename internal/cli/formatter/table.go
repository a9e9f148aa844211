package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders rows under a styled header and a dim rule. Column
// widths are measured on visible text so pre-styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	measure := func(cells []string) {
		for i := range widths {
			if i < len(cells) {
				widths[i] = max(widths[i], lipgloss.Width(cells[i]))
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	var b strings.Builder

	styled := make([]string, len(headers))
	rule := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = StyleHeader.Render(h)
		rule[i] = StyleDim.Render(strings.Repeat("─", widths[i]))
	}
	writeRow(&b, styled, widths)
	writeRow(&b, rule, widths)

	for _, row := range rows {
		writeRow(&b, row, widths)
	}
	return b.String()
}

// writeRow pads every cell but the last to its column width.
func writeRow(b *strings.Builder, cells []string, widths []int) {
	last := len(widths) - 1
	for i := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		if i < last {
			pad := max(widths[i]-lipgloss.Width(cell), 0)
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}
	b.WriteString("\n")
}
