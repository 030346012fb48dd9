package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/table"
)

// Failure modes of Unify, checkable with errors.Is.
var (
	ErrNoSelection   = errors.New("no data loaded or no sheets selected")
	ErrNoUsableSheet = errors.New("no valid sheets to process")
)

// redundantColumns are per-sheet row identifiers with no cross-sheet
// meaning, dropped before and after joining. The suffixed names cover
// duplicates resurrected by the join.
var redundantColumns = []string{
	"id", "year", "nmes", "mes", "Year", "Mes", "Nmes",
	"id_ESFP_capturas_trampas_final", "Year_ESFP_capturas_trampas_final",
	"Mes_ESFP_capturas_trampas_final", "Nmes_ESFP_capturas_trampas_final",
	"id_ESFP_datos_temperaturas_final", "Year_ESFP_dendrometros_final",
	"Mes_ESFP_dendrometros_final", "Nmes_ESFP_dendrometros_final",
}

// Unify transforms the selected sheets and outer-joins them on the
// (Fecha, Estacion) key, in selection order. The first usable sheet is the
// join base. Sheets that are missing, fail transformation, or lack the join
// columns are skipped with a note in the report; the whole operation fails
// only when nothing usable remains.
//
// On success it returns the unified table and a multi-line report of the
// actions taken. The caller owns the returned table.
func (s *Service) Unify(selection []string) (*table.Table, string, error) {
	if len(s.sheets) == 0 || len(selection) == 0 {
		return nil, "", ErrNoSelection
	}

	transformed := make(map[string]*table.Table, len(selection))
	var valid []string
	var messages []string

	for _, name := range selection {
		raw, ok := s.sheets[name]
		if !ok {
			messages = append(messages, fmt.Sprintf("Sheet %s not found in data", name))
			continue
		}

		t, err := s.TransformSheet(raw)
		if err != nil {
			s.logger.Warn().Err(err).Str("sheet", name).Msg("Skipping sheet that could not be transformed")
			messages = append(messages, fmt.Sprintf("Warning: Sheet %s could not be transformed: %v", name, err))
			continue
		}

		if !t.HasColumn(ColFecha) || !t.HasColumn(ColEstacion) {
			s.logger.Warn().Str("sheet", name).Msg("Skipping sheet without required join columns")
			messages = append(messages, fmt.Sprintf("Warning: Sheet %s missing required columns (Fecha, Estacion)", name))
			continue
		}

		s.dropRedundantColumns(t)

		transformed[name] = t
		valid = append(valid, name)
		messages = append(messages, fmt.Sprintf("Transformed %s", name))
	}

	if len(valid) == 0 {
		return nil, "", ErrNoUsableSheet
	}

	baseSheet := valid[0]
	unified := transformed[baseSheet].Copy()

	for _, name := range valid[1:] {
		joined, err := table.OuterJoin(unified, transformed[name], JoinKeys, "_"+baseSheet, "_"+name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to join sheet %s: %w", name, err)
		}
		unified = joined
		messages = append(messages, fmt.Sprintf("Joined sheet %s on Fecha and Estacion", name))
	}

	// Joins can resurrect suffixed duplicates of the redundant identifiers.
	s.dropRedundantColumns(unified)

	if renames := s.applyCanonicalNames(unified); len(renames) > 0 {
		messages = append(messages, fmt.Sprintf("Renamed columns: %s", strings.Join(renames, ", ")))
	}

	report := fmt.Sprintf("Successfully transformed and joined sheets:\n%s", strings.Join(messages, "\n"))

	s.logger.Info().
		Int("sheets", len(valid)).
		Int("rows", unified.NumRows()).
		Int("columns", unified.NumCols()).
		Msg("Created unified table")

	return unified, report, nil
}

func (s *Service) dropRedundantColumns(t *table.Table) {
	if dropped := t.DropColumns(redundantColumns...); len(dropped) > 0 {
		s.logger.Info().
			Str("sheet", t.Name).
			Str("columns", strings.Join(dropped, ", ")).
			Msg("Dropping columns")
	}
}

// applyCanonicalNames renames unified-table columns to the display names the
// variable dictionary defines for their source aliases. When two columns
// would rename to the same canonical name the first one wins and the
// collision is logged; a rename never overwrites an existing column.
func (s *Service) applyCanonicalNames(t *table.Table) []string {
	mapping := s.dict.AliasMap()

	var renames []string
	for _, col := range t.Columns() {
		canonical, ok := mapping[col]
		if !ok || canonical == col {
			continue
		}
		if t.HasColumn(canonical) {
			s.logger.Warn().
				Str("column", col).
				Str("canonical", canonical).
				Msg("Rename collision, keeping the earlier column's name")
			continue
		}
		t.RenameColumn(col, canonical)
		renames = append(renames, fmt.Sprintf("%s -> %s", col, canonical))
	}
	return renames
}
