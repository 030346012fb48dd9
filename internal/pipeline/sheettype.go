// Package pipeline implements the sheet transformation and unification
// pipeline: per-type reshaping of raw workbook sheets into a common
// (Fecha, Estacion) shape, dictionary-driven column standardization, and the
// sequential outer join producing the unified dataset.
package pipeline

import (
	"strings"
)

// SheetType identifies which transformation strategy applies to a sheet
type SheetType int

const (
	SheetUnknown SheetType = iota
	SheetTemperature
	SheetDendrometer
	SheetLitterfall
	SheetCapture
)

// Classification keywords matched case-insensitively against sheet names.
const (
	keywordTemperature = "temperaturas"
	keywordDendrometer = "dendrometros"
	keywordLitterfall  = "desfronde"
	keywordCapture     = "capturas"
)

// carmMarker selects the CARM station column in sheets from the regional
// network. The match is case sensitive, as in the source workbooks.
const carmMarker = "CARM"

// String returns a short identifier for logs and listings
func (t SheetType) String() string {
	switch t {
	case SheetTemperature:
		return "temperature"
	case SheetDendrometer:
		return "dendrometer"
	case SheetLitterfall:
		return "litterfall"
	case SheetCapture:
		return "capture"
	default:
		return "unknown"
	}
}

// Classify maps a sheet name to its transformation strategy by
// case-insensitive substring match against the fixed keywords. Sheets that
// match nothing are SheetUnknown; they pass through untransformed and may be
// skipped later if they lack the join columns.
func Classify(sheetName string) SheetType {
	name := strings.ToLower(sheetName)
	switch {
	case strings.Contains(name, keywordTemperature):
		return SheetTemperature
	case strings.Contains(name, keywordDendrometer):
		return SheetDendrometer
	case strings.Contains(name, keywordLitterfall):
		return SheetLitterfall
	case strings.Contains(name, keywordCapture):
		return SheetCapture
	default:
		return SheetUnknown
	}
}

// isCARM reports whether a sheet comes from the CARM network and therefore
// keeps its station identifier in the CARM column
func isCARM(sheetName string) bool {
	return strings.Contains(sheetName, carmMarker)
}
