package ui

import (
	"strings"
	"text/tabwriter"
)

// Table renders rows as left-aligned columns separated by two spaces.
// The first row is treated as the header and followed by a rule.
func Table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for i, row := range rows {
		w.Write([]byte(strings.Join(row, "\t") + "\n"))
		if i == 0 {
			rule := make([]string, len(row))
			for j, cell := range row {
				rule[j] = strings.Repeat("-", len(cell))
			}
			w.Write([]byte(strings.Join(rule, "\t") + "\n"))
		}
	}
	w.Flush()
	return b.String()
}
