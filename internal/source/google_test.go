package source

import (
	"reflect"
	"testing"
)

// The Google API itself is not reachable from tests; what matters here is
// the conversion of its loosely typed value rows into tables.
func TestTableFromValues(t *testing.T) {
	rows := [][]interface{}{
		{"Fecha", "Punto", "Diam"},
		{"2023-05-07", "P1", "3,2"},
		{"2023-05-08", nil, 4.5},
		{"2023-05-09"},
	}

	tbl := tableFromValues("ESFP_dendrometros_final", rows)

	if !reflect.DeepEqual(tbl.Columns(), []string{"Fecha", "Punto", "Diam"}) {
		t.Fatalf("columns = %v, expected [Fecha Punto Diam]", tbl.Columns())
	}
	if tbl.NumRows() != 3 {
		t.Fatalf("rows = %d, expected 3", tbl.NumRows())
	}

	if got := tbl.Value(0, "Diam").String(); got != "3,2" {
		t.Errorf("row 0 Diam = %q, expected 3,2", got)
	}
	if !tbl.Value(1, "Punto").IsMissing() {
		t.Errorf("row 1 Punto = %v, expected missing", tbl.Value(1, "Punto").Raw())
	}
	if got := tbl.Value(1, "Diam").Float64(); got != 4.5 {
		t.Errorf("row 1 Diam = %v, expected 4.5", got)
	}
	if !tbl.Value(2, "Punto").IsMissing() || !tbl.Value(2, "Diam").IsMissing() {
		t.Errorf("row 2 should be padded with missing cells")
	}
}

func TestTableFromValuesEmpty(t *testing.T) {
	tbl := tableFromValues("vacia", nil)
	if tbl.NumCols() != 0 || tbl.NumRows() != 0 {
		t.Errorf("empty sheet = %d columns and %d rows, expected none", tbl.NumCols(), tbl.NumRows())
	}

	headerOnly := tableFromValues("cabecera", [][]interface{}{{"Fecha", "Diam"}})
	if headerOnly.NumCols() != 2 || headerOnly.NumRows() != 0 {
		t.Errorf("header-only sheet = %d columns and %d rows, expected 2 and 0",
			headerOnly.NumCols(), headerOnly.NumRows())
	}
}

func TestTableFromStringsTruncatesWideRows(t *testing.T) {
	tbl := tableFromStrings("hoja", [][]string{
		{"A", "B"},
		{"1", "2", "3"},
	})

	if tbl.NumCols() != 2 {
		t.Fatalf("columns = %d, expected 2", tbl.NumCols())
	}
	if got := tbl.Value(0, "B").String(); got != "2" {
		t.Errorf("B = %q, expected 2", got)
	}
}
