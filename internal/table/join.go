package table

import (
	"fmt"
	"strings"
)

// keySeparator joins key cell values into a composite lookup key. The unit
// separator cannot occur in date or station identifiers.
const keySeparator = "\x1f"

// OuterJoin merges two tables on the given key columns, keeping every row
// from both sides. Rows matched on the key pair are combined; unmatched rows
// are kept with missing cells for the other side's columns. Non-key columns
// whose names appear on both sides are disambiguated by appending leftSuffix
// and rightSuffix respectively.
//
// Output column order follows the left table, then the right table's non-key
// columns. Row order is left rows first, then unmatched right rows in their
// input order. The joined table keeps the left table's name.
func OuterJoin(left, right *Table, keys []string, leftSuffix, rightSuffix string) (*Table, error) {
	for _, key := range keys {
		if !left.HasColumn(key) {
			return nil, fmt.Errorf("join key %q missing from table %q", key, left.Name)
		}
		if !right.HasColumn(key) {
			return nil, fmt.Errorf("join key %q missing from table %q", key, right.Name)
		}
	}

	keySet := make(map[string]bool, len(keys))
	for _, key := range keys {
		keySet[key] = true
	}

	// Columns colliding across both non-key sets get suffixed on each side.
	rightNonKey := make(map[string]bool)
	for _, col := range right.Columns() {
		if !keySet[col] {
			rightNonKey[col] = true
		}
	}
	collisions := make(map[string]bool)
	for _, col := range left.Columns() {
		if !keySet[col] && rightNonKey[col] {
			collisions[col] = true
		}
	}

	var outCols []string
	for _, col := range left.Columns() {
		if collisions[col] {
			outCols = append(outCols, col+leftSuffix)
		} else {
			outCols = append(outCols, col)
		}
	}
	var rightValueIdx []int
	for i, col := range right.Columns() {
		if keySet[col] {
			continue
		}
		rightValueIdx = append(rightValueIdx, i)
		if collisions[col] {
			outCols = append(outCols, col+rightSuffix)
		} else {
			outCols = append(outCols, col)
		}
	}

	out := New(left.Name, outCols)

	// Index right rows by composite key. Rows with an empty key cell never
	// match and are emitted as unmatched.
	rightByKey := make(map[string][]int)
	for i := 0; i < right.NumRows(); i++ {
		key, ok := rowKey(right, i, keys)
		if !ok {
			continue
		}
		rightByKey[key] = append(rightByKey[key], i)
	}

	matched := make([]bool, right.NumRows())
	leftWidth := left.NumCols()

	for i := 0; i < left.NumRows(); i++ {
		key, ok := rowKey(left, i, keys)
		var partners []int
		if ok {
			partners = rightByKey[key]
		}

		if len(partners) == 0 {
			row := make([]Cell, 0, len(outCols))
			row = append(row, left.Row(i)...)
			for range rightValueIdx {
				row = append(row, Missing())
			}
			if err := out.AppendRow(row); err != nil {
				return nil, err
			}
			continue
		}

		for _, r := range partners {
			matched[r] = true
			row := make([]Cell, 0, len(outCols))
			row = append(row, left.Row(i)...)
			for _, idx := range rightValueIdx {
				row = append(row, right.Row(r)[idx])
			}
			if err := out.AppendRow(row); err != nil {
				return nil, err
			}
		}
	}

	// Unmatched right rows keep their key cells and fill the left side with
	// missing values.
	keyIdxInOut := make([]int, len(keys))
	for i, key := range keys {
		keyIdxInOut[i] = left.ColumnIndex(key)
	}
	for r := 0; r < right.NumRows(); r++ {
		if matched[r] {
			continue
		}
		row := make([]Cell, leftWidth, len(outCols))
		for i := range row {
			row[i] = Missing()
		}
		for i, key := range keys {
			row[keyIdxInOut[i]] = right.Value(r, key)
		}
		for _, idx := range rightValueIdx {
			row = append(row, right.Row(r)[idx])
		}
		if err := out.AppendRow(row); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// rowKey builds the composite key for a row. Reports false when any key cell
// is empty, because rows without a full key pair must not match each other.
func rowKey(t *Table, row int, keys []string) (string, bool) {
	parts := make([]string, len(keys))
	for i, key := range keys {
		cell := t.Value(row, key)
		if cell.IsEmpty() {
			return "", false
		}
		parts[i] = cell.String()
	}
	return strings.Join(parts, keySeparator), true
}
