package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// maxCellWidth caps a single cell so a long vehicle name or note cannot
// push the rest of the table off screen.
const maxCellWidth = 36

// RenderTable renders an aligned table with a header separator line.
// Headers use the Header style; column widths are the maximum visible
// width in each column (ANSI sequences excluded via lipgloss.Width),
// capped at maxCellWidth.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for r, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			rows[r][i] = truncateCell(row[i])
			if w := lipgloss.Width(rows[r][i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2
	var b strings.Builder

	for i, h := range headers {
		b.WriteString(StyleHeader.Render(h))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", pad(widths[i], lipgloss.Width(h))+colGap))
		}
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", pad(widths[i], lipgloss.Width(cell))+colGap))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func pad(width, visible int) int {
	if p := width - visible; p > 0 {
		return p
	}
	return 0
}

// truncateCell shortens over-wide plain cells with an ellipsis. Styled
// cells (anything carrying escape sequences) pass through untouched; the
// pills and IDs we style are all short.
func truncateCell(s string) string {
	if len(s) != lipgloss.Width(s) {
		return s
	}
	if len(s) <= maxCellWidth {
		return s
	}
	return s[:maxCellWidth-1] + "…"
}
