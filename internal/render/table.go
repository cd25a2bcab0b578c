// Package render turns records into a markdown pipe table.
package render

import (
	"fmt"
	"strings"

	"github.com/starford/docindex/internal/models"
)

// DefaultPlaceholder is written instead of a table when there are no records.
const DefaultPlaceholder = "_No records yet._"

// Columns is the number of columns a record row renders.
const Columns = 5

// Table renders records in the given order under headers. An empty record
// set renders placeholder (or DefaultPlaceholder when it is empty) instead of
// a header-only table.
func Table(headers []string, records []models.Record, placeholder string) string {
	if len(records) == 0 {
		if placeholder == "" {
			return DefaultPlaceholder
		}
		return placeholder
	}

	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}

	lines := make([]string, 0, len(records)+2)
	lines = append(lines, row(headers), row(sep))
	for _, r := range records {
		lines = append(lines, row([]string{
			fmt.Sprintf("[%s](%s)", r.Key(), r.Filename),
			cell(r.Title),
			cell(r.Status),
			cell(r.Date),
			cell(r.Tags),
		}))
	}
	return strings.Join(lines, "\n")
}

func row(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

// cell escapes bare pipes and replaces empty values with "-". A pipe the
// author already wrote as \| is left as is.
func cell(v string) string {
	if v == "" {
		return "-"
	}
	if !strings.Contains(v, "|") {
		return v
	}
	var b strings.Builder
	b.Grow(len(v) + 4)
	for i := 0; i < len(v); i++ {
		if v[i] == '|' && (i == 0 || v[i-1] != '\\') {
			b.WriteByte('\\')
		}
		b.WriteByte(v[i])
	}
	return b.String()
}
