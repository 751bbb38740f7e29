package timing

import (
	"bytes"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Formatter renders a prepared table: a header, pre-formatted data rows and
// footer rows. Implementations are optional niceties; when PrintTable has no
// formatter configured it falls back to the built-in fixed-width renderer.
type Formatter interface {
	Format(header []string, rows [][]string, footer [][]string) (string, error)
}

// plainFormatter is the fallback renderer: left-justified group column,
// right-justified numeric columns, widths sized to the longest value per
// column including the header.
type plainFormatter struct{}

func (plainFormatter) Format(header []string, rows [][]string, footer [][]string) (string, error) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	measure := func(cells [][]string) {
		for _, row := range cells {
			for i, cell := range row {
				if i < len(widths) && len(cell) > widths[i] {
					widths[i] = len(cell)
				}
			}
		}
	}
	measure(rows)
	measure(footer)
	for i := range widths {
		widths[i]++ // column gap
	}

	var b strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			if i == 0 {
				b.WriteString(pad(cell, widths[i], false))
			} else {
				b.WriteString(pad(cell, widths[i], true))
			}
		}
		b.WriteByte('\n')
	}

	writeRow(header)
	for i, w := range widths {
		if i == 0 {
			b.WriteString(strings.Repeat("-", w-1) + "  ")
		} else {
			b.WriteString(strings.Repeat("-", w-1) + " ")
		}
	}
	b.WriteByte('\n')
	for _, row := range rows {
		writeRow(row)
	}
	b.WriteByte('\n')
	for _, row := range footer {
		writeRow(row)
	}
	return b.String(), nil
}

func pad(s string, width int, right bool) string {
	if len(s) >= width {
		return s
	}
	fill := strings.Repeat(" ", width-len(s))
	if right {
		return fill + s
	}
	return s + fill
}

// GridFormatter renders through the tablewriter package, the analog of the
// optional tabulate dependency used by other MantleFlow tooling.
type GridFormatter struct{}

func (GridFormatter) Format(header []string, rows [][]string, footer [][]string) (string, error) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	for _, row := range rows {
		table.Append(row)
	}
	for _, row := range footer {
		table.Append(row)
	}
	table.Render()
	return buf.String(), nil
}
