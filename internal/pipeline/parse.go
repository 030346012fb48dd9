package pipeline

import (
	"strconv"
	"strings"
	"time"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/table"
)

// naSentinel is the literal the field teams write for a missing reading
const naSentinel = "Na"

// Date layouts accepted by parseDate, tried in order. The workbooks carry
// ISO dates, day-first Spanish forms, and the month-first short form Excel
// readers emit for date-formatted cells. Single-digit layout fields also
// accept zero-padded input.
var dateLayouts = []string{
	"2006-1-2",
	"2006-1-2 15:04:05",
	"2006-1-2T15:04:05",
	"2/1/2006",
	"2/1/2006 15:04:05",
	"2-1-2006",
	"1-2-06",
}

// parseNumeric converts a raw cell to a numeric value. The "Na" sentinel and
// empty cells report missing (nil, true); decimal commas are replaced before
// parsing. A non-numeric remainder reports (nil, false) so callers can drop
// or warn on the row.
func parseNumeric(c table.Cell) (*float64, bool) {
	if c.IsEmpty() {
		return nil, true
	}
	s := strings.TrimSpace(c.String())
	if s == "" || s == naSentinel {
		return nil, true
	}

	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// numericCell converts a raw cell to a parsed numeric cell, collapsing both
// missing values and parse failures to a missing cell
func numericCell(c table.Cell) (table.Cell, bool) {
	v, ok := parseNumeric(c)
	if v == nil {
		return table.Missing(), ok
	}
	return table.Float(*v), true
}

// parseDate normalizes a raw date cell to ISO YYYY-MM-DD. Reports false for
// empty cells and values no layout accepts.
func parseDate(c table.Cell) (string, bool) {
	if c.IsEmpty() {
		return "", false
	}
	s := strings.TrimSpace(c.String())
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
