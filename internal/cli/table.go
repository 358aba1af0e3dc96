package cli

import (
	"strings"
	"unicode/utf8"
)

// RenderTable renders a monospace table with a styled header row. Columns are
// padded to the widest cell; numeric alignment is the caller's concern.
func RenderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(renderLine(header, widths)))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(separator(widths)))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(renderLine(row, widths))
	}
	return b.String()
}

func renderLine(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = pad(cell, w)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func pad(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w)
	}
	return strings.Join(parts, "  ")
}
