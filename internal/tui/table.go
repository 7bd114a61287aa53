package tui

import (
	"fmt"
	"strings"
)

type column struct {
	title string
	width int
}

// flexColumns gives the last column whatever width the others leave.
func flexColumns(total int, cols ...column) []column {
	used := 0
	for _, c := range cols[:len(cols)-1] {
		used += c.width + 2
	}
	last := &cols[len(cols)-1]
	last.width = max(total-used-2, 8)
	return cols
}

// renderTable draws rows under a header, keeping the cursor row inside a
// window of visible rows. mark, if set, prefixes each row.
func renderTable(cols []column, rows [][]string, cursor, visible int, mark func(i int) string) string {
	var header strings.Builder
	header.WriteString("  ")
	if mark != nil {
		header.WriteString("    ")
	}
	for i, c := range cols {
		if i > 0 {
			header.WriteString("  ")
		}
		header.WriteString(cell(c.title, c.width))
	}
	lines := []string{tableHeaderStyle.Render(header.String())}
	if len(rows) == 0 {
		return strings.Join(append(lines, mutedStyle.Render("  (nothing here yet)")), "\n")
	}

	visible = max(visible, 1)
	top := 0
	if cursor >= visible {
		top = cursor - visible + 1
	}
	end := min(top+visible, len(rows))
	for i := top; i < end; i++ {
		var b strings.Builder
		prefix := "  "
		if i == cursor {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix)
		if mark != nil {
			b.WriteString(mark(i))
		}
		for j, c := range cols {
			if j > 0 {
				b.WriteString("  ")
			}
			v := ""
			if j < len(rows[i]) {
				v = rows[i][j]
			}
			b.WriteString(cell(v, c.width))
		}
		lines = append(lines, b.String())
	}
	if len(rows) > visible {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("── showing %d-%d of %d ──", top+1, end, len(rows))))
	}
	return strings.Join(lines, "\n")
}
