package pipeline

import (
	"fmt"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/table"
)

// keyJoinSep separates the date and station parts of an aggregation group
// key. It cannot occur in either value.
const keyJoinSep = "\x1f"

// Identifier columns of the wide temperature sheets. Every other column is a
// station holding readings.
var temperatureIDColumns = []string{"id", "year", "nmes", "mes", ColFecha, "Hora"}

// Identifier columns of the capture sheets. Every other column is a species
// count.
var captureIDColumns = []string{"id", "Year", "Mes", "Nmes", ColFecha, ColEstacion}

// TransformSheet reshapes a raw sheet according to its classified type and
// standardizes the join columns via the variable dictionary. The input table
// is never mutated. Sheets of unknown type are copied untransformed; they
// may still lack the join columns and be skipped by Unify.
func (s *Service) TransformSheet(raw *table.Table) (*table.Table, error) {
	sheetType := Classify(raw.Name)
	carm := isCARM(raw.Name)

	var transformed *table.Table
	var err error

	switch sheetType {
	case SheetTemperature:
		transformed, err = s.transformTemperatures(raw)
	case SheetDendrometer:
		transformed, err = s.transformMeasurement(raw, carm, "Punto", "Diam")
	case SheetLitterfall:
		transformed, err = s.transformMeasurement(raw, carm, "Esfp", "MO")
	case SheetCapture:
		transformed, err = s.transformCaptures(raw, carm)
	default:
		s.logger.Warn().
			Str("sheet", raw.Name).
			Msg("Unknown sheet type, returning untransformed")
		transformed = raw.Copy()
	}
	if err != nil {
		return nil, err
	}

	s.standardizeJoinColumns(transformed)
	return transformed, nil
}

// transformTemperatures melts a wide temperature sheet into long form and
// aggregates the readings by day and station.
func (s *Service) transformTemperatures(raw *table.Table) (*table.Table, error) {
	if !raw.HasColumn(ColFecha) {
		return nil, fmt.Errorf("sheet %q has no %s column", raw.Name, ColFecha)
	}

	idSet := make(map[string]bool, len(temperatureIDColumns))
	for _, col := range temperatureIDColumns {
		idSet[col] = true
	}
	var stationCols []string
	for _, col := range raw.Columns() {
		if !idSet[col] {
			stationCols = append(stationCols, col)
		}
	}
	if len(stationCols) == 0 {
		return nil, fmt.Errorf("sheet %q has no station columns to melt", raw.Name)
	}

	// Group readings by (Fecha, Estacion) in first-appearance order. The
	// melt emits per input row, then per station column, so the output is
	// deterministic.
	type group struct {
		fecha, estacion string
		values          []float64
	}
	groups := make(map[string]*group)
	var groupOrder []*group

	var droppedDates, badReadings int
	for i := 0; i < raw.NumRows(); i++ {
		fecha, ok := parseDate(raw.Value(i, ColFecha))
		if !ok {
			droppedDates++
			continue
		}
		for _, station := range stationCols {
			reading, ok := parseNumeric(raw.Value(i, station))
			if !ok {
				badReadings++
			}

			key := fecha + keyJoinSep + station
			g := groups[key]
			if g == nil {
				g = &group{fecha: fecha, estacion: station}
				groups[key] = g
				groupOrder = append(groupOrder, g)
			}
			if reading != nil {
				g.values = append(g.values, *reading)
			}
		}
	}

	if droppedDates > 0 {
		s.logger.Warn().
			Str("sheet", raw.Name).
			Int("rows", droppedDates).
			Msg("Dropped rows with unparseable dates")
	}
	if badReadings > 0 {
		s.logger.Warn().
			Str("sheet", raw.Name).
			Int("readings", badReadings).
			Msg("Non-numeric temperature readings treated as missing")
	}

	s.logger.Info().
		Str("sheet", raw.Name).
		Int("groups", len(groupOrder)).
		Msg("Aggregating temperature data by day")

	out := table.New(raw.Name, []string{ColFecha, ColEstacion, "Temp_Min", "Temp_Max", "Temp_Mean", "Temp_Count"})
	for _, g := range groupOrder {
		row := []table.Cell{
			table.NewCell(g.fecha),
			table.NewCell(g.estacion),
			table.Missing(),
			table.Missing(),
			table.Missing(),
			table.Float(float64(len(g.values))),
		}
		if len(g.values) > 0 {
			minV, maxV, sum := g.values[0], g.values[0], 0.0
			for _, v := range g.values {
				if v < minV {
					minV = v
				}
				if v > maxV {
					maxV = v
				}
				sum += v
			}
			row[2] = table.Float(minV)
			row[3] = table.Float(maxV)
			row[4] = table.Float(sum / float64(len(g.values)))
		}
		if err := out.AppendRow(row); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// transformMeasurement handles the shared dendrometer/litterfall shape:
// rename the station column, normalize dates, and parse one comma-decimal
// value column, keeping everything else unchanged.
func (s *Service) transformMeasurement(raw *table.Table, carm bool, stationCol, valueCol string) (*table.Table, error) {
	if !raw.HasColumn(ColFecha) {
		return nil, fmt.Errorf("sheet %q has no %s column", raw.Name, ColFecha)
	}
	if !raw.HasColumn(valueCol) {
		return nil, fmt.Errorf("sheet %q has no %s column", raw.Name, valueCol)
	}

	t := raw.Copy()
	s.renameStationColumn(t, carm, stationCol)

	var badValues int
	for i := 0; i < t.NumRows(); i++ {
		cell, ok := numericCell(t.Value(i, valueCol))
		if !ok {
			badValues++
		}
		t.SetValue(i, valueCol, cell)
	}
	if badValues > 0 {
		s.logger.Warn().
			Str("sheet", raw.Name).
			Str("column", valueCol).
			Int("values", badValues).
			Msg("Non-numeric values treated as missing")
	}

	return s.normalizeDatesAndStations(t), nil
}

// transformCaptures renames the station column, normalizes dates, and
// parses every species column as a nullable count. A missing count stays
// missing rather than becoming zero; absence of a catch and a recorded zero
// are different observations.
func (s *Service) transformCaptures(raw *table.Table, carm bool) (*table.Table, error) {
	if !raw.HasColumn(ColFecha) {
		return nil, fmt.Errorf("sheet %q has no %s column", raw.Name, ColFecha)
	}

	t := raw.Copy()
	s.renameStationColumn(t, carm, "Esfp")

	idSet := make(map[string]bool, len(captureIDColumns))
	for _, col := range captureIDColumns {
		idSet[col] = true
	}

	var badValues int
	for _, col := range t.Columns() {
		if idSet[col] {
			continue
		}
		for i := 0; i < t.NumRows(); i++ {
			cell, ok := numericCell(t.Value(i, col))
			if !ok {
				badValues++
			}
			t.SetValue(i, col, cell)
		}
	}
	if badValues > 0 {
		s.logger.Warn().
			Str("sheet", raw.Name).
			Int("values", badValues).
			Msg("Non-numeric species counts treated as missing")
	}

	return s.normalizeDatesAndStations(t), nil
}

// renameStationColumn renames the type-specific station column to Estacion.
// CARM sheets keep their station in the CARM column regardless of type. A
// missing station column is not an error here; Unify skips sheets that end
// up without the join columns.
func (s *Service) renameStationColumn(t *table.Table, carm bool, defaultCol string) {
	stationCol := defaultCol
	if carm {
		stationCol = carmMarker
	}
	if t.HasColumn(ColEstacion) {
		return
	}
	if t.RenameColumn(stationCol, ColEstacion) {
		s.logger.Debug().
			Str("sheet", t.Name).
			Str("from", stationCol).
			Msg("Renamed station column to Estacion")
	}
}

// normalizeDatesAndStations rewrites Fecha cells to ISO form and drops rows
// that end up without a full join key pair.
func (s *Service) normalizeDatesAndStations(t *table.Table) *table.Table {
	hasEstacion := t.HasColumn(ColEstacion)

	out := table.New(t.Name, t.Columns())
	var dropped int
	for i := 0; i < t.NumRows(); i++ {
		fecha, ok := parseDate(t.Value(i, ColFecha))
		if !ok {
			dropped++
			continue
		}
		if hasEstacion && t.Value(i, ColEstacion).IsEmpty() {
			dropped++
			continue
		}
		row := make([]table.Cell, 0, t.NumCols())
		row = append(row, t.Row(i)...)
		row[t.ColumnIndex(ColFecha)] = table.NewCell(fecha)
		if err := out.AppendRow(row); err != nil {
			s.logger.Error().Err(err).Str("sheet", t.Name).Msg("Failed to append normalized row")
		}
	}

	if dropped > 0 {
		s.logger.Warn().
			Str("sheet", t.Name).
			Int("rows", dropped).
			Msg("Dropped rows without a resolvable (Fecha, Estacion) pair")
	}
	return out
}
