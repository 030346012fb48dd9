package table

import (
	"fmt"
	"strconv"
)

// Cell holds one nullable value of a table. A nil raw value means the
// observation is missing, which is distinct from a recorded zero or an
// empty string produced by the source reader.
type Cell struct {
	raw interface{}
}

// NewCell creates a Cell from a raw value as produced by a workbook reader
func NewCell(raw interface{}) Cell {
	return Cell{raw: raw}
}

// Float creates a Cell holding a parsed numeric value
func Float(v float64) Cell {
	return Cell{raw: v}
}

// Missing creates an explicitly missing Cell
func Missing() Cell {
	return Cell{}
}

// String returns the cell value as a string, "" when missing
func (c Cell) String() string {
	if c.raw == nil {
		return ""
	}
	switch v := c.raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", c.raw)
}

// Float64 returns the cell value as a float64, or 0 when it does not hold one
func (c Cell) Float64() float64 {
	if v, ok := c.Float64Ptr(); ok {
		return *v
	}
	return 0
}

// Float64Ptr returns the cell value as *float64 and whether a numeric value
// is present. Strings are parsed with strconv; missing cells report false.
func (c Cell) Float64Ptr() (*float64, bool) {
	if c.raw == nil {
		return nil, false
	}
	switch v := c.raw.(type) {
	case float64:
		return &v, true
	case int:
		f := float64(v)
		return &f, true
	case int64:
		f := float64(v)
		return &f, true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f, true
		}
	}
	return nil, false
}

// IsMissing reports whether the cell holds no value at all
func (c Cell) IsMissing() bool {
	return c.raw == nil
}

// IsEmpty reports whether the cell is missing or an empty string
func (c Cell) IsEmpty() bool {
	return c.raw == nil || c.raw == ""
}

// Raw returns the underlying value. This should only be used at
// serialization boundaries.
func (c Cell) Raw() interface{} {
	return c.raw
}
