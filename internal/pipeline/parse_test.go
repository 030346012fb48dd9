package pipeline

import (
	"testing"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/table"
)

// Test numeric parsing - field data mixes decimal commas, the "Na" sentinel,
// and truly blank cells, and each must land on the right side of the
// missing/invalid divide
func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name    string
		cell    table.Cell
		value   float64
		missing bool
		ok      bool
	}{
		{
			name:  "decimal comma",
			cell:  table.NewCell("12,5"),
			value: 12.5,
			ok:    true,
		},
		{
			name:  "decimal period",
			cell:  table.NewCell("3.14"),
			value: 3.14,
			ok:    true,
		},
		{
			name:  "plain integer",
			cell:  table.NewCell("42"),
			value: 42,
			ok:    true,
		},
		{
			name:  "negative with comma",
			cell:  table.NewCell("-0,75"),
			value: -0.75,
			ok:    true,
		},
		{
			name:  "surrounding whitespace",
			cell:  table.NewCell(" 7,25 "),
			value: 7.25,
			ok:    true,
		},
		{
			name:  "already numeric cell",
			cell:  table.Float(18.2),
			value: 18.2,
			ok:    true,
		},
		{
			name:    "Na sentinel",
			cell:    table.NewCell("Na"),
			missing: true,
			ok:      true,
		},
		{
			name:    "missing cell",
			cell:    table.Missing(),
			missing: true,
			ok:      true,
		},
		{
			name:    "empty string",
			cell:    table.NewCell(""),
			missing: true,
			ok:      true,
		},
		{
			name:    "whitespace only",
			cell:    table.NewCell("   "),
			missing: true,
			ok:      true,
		},
		{
			name:    "non-numeric text",
			cell:    table.NewCell("abc"),
			missing: true,
			ok:      false,
		},
		{
			name:    "lowercase na is not the sentinel",
			cell:    table.NewCell("na"),
			missing: true,
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := parseNumeric(tt.cell)
			if ok != tt.ok {
				t.Errorf("parseNumeric(%v) ok = %v, expected %v", tt.cell.Raw(), ok, tt.ok)
			}
			if tt.missing {
				if v != nil {
					t.Errorf("parseNumeric(%v) = %v, expected nil", tt.cell.Raw(), *v)
				}
				return
			}
			if v == nil {
				t.Fatalf("parseNumeric(%v) = nil, expected %v", tt.cell.Raw(), tt.value)
			}
			if *v != tt.value {
				t.Errorf("parseNumeric(%v) = %v, expected %v", tt.cell.Raw(), *v, tt.value)
			}
		})
	}
}

func TestNumericCell(t *testing.T) {
	cell, ok := numericCell(table.NewCell("19,5"))
	if !ok {
		t.Errorf("numericCell(19,5) reported not ok")
	}
	if cell.Float64() != 19.5 {
		t.Errorf("numericCell(19,5) = %v, expected 19.5", cell.Float64())
	}

	// Parse failures collapse to missing so the table stays rectangular
	cell, ok = numericCell(table.NewCell("broken"))
	if ok {
		t.Errorf("numericCell(broken) reported ok")
	}
	if !cell.IsMissing() {
		t.Errorf("numericCell(broken) = %v, expected missing", cell.Raw())
	}

	cell, ok = numericCell(table.NewCell("Na"))
	if !ok {
		t.Errorf("numericCell(Na) reported not ok")
	}
	if !cell.IsMissing() {
		t.Errorf("numericCell(Na) = %v, expected missing", cell.Raw())
	}
}

// Test date normalization across the layouts the workbooks actually contain
func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:     "ISO date",
			input:    "2023-05-07",
			expected: "2023-05-07",
			ok:       true,
		},
		{
			name:     "ISO without padding",
			input:    "2023-5-7",
			expected: "2023-05-07",
			ok:       true,
		},
		{
			name:     "ISO with time",
			input:    "2023-05-07 14:30:00",
			expected: "2023-05-07",
			ok:       true,
		},
		{
			name:     "ISO with T separator",
			input:    "2023-05-07T14:30:00",
			expected: "2023-05-07",
			ok:       true,
		},
		{
			name:     "day first slashes",
			input:    "07/05/2023",
			expected: "2023-05-07",
			ok:       true,
		},
		{
			name:     "day first slashes without padding",
			input:    "7/5/2023",
			expected: "2023-05-07",
			ok:       true,
		},
		{
			name:     "day first slashes with time",
			input:    "07/05/2023 14:30:00",
			expected: "2023-05-07",
			ok:       true,
		},
		{
			name:     "day first dashes",
			input:    "07-05-2023",
			expected: "2023-05-07",
			ok:       true,
		},
		{
			name:     "month first short year",
			input:    "5-7-23",
			expected: "2023-05-07",
			ok:       true,
		},
		{
			name:  "not a date",
			input: "mucho calor",
		},
		{
			name:  "empty",
			input: "",
		},
		{
			name:  "impossible day",
			input: "2023-02-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := parseDate(table.NewCell(tt.input))
			if ok != tt.ok {
				t.Fatalf("parseDate(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
			if ok && result != tt.expected {
				t.Errorf("parseDate(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseDateMissingCell(t *testing.T) {
	if _, ok := parseDate(table.Missing()); ok {
		t.Errorf("parseDate(missing) reported ok")
	}
}
