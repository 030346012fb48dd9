package pipeline

import (
	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/table"
)

// Dictionary names of the join-key variables. The accented display name maps
// onto the unaccented join column used throughout the pipeline.
var joinKeyVariables = map[string]string{
	"Fecha":    ColFecha,
	"Estación": ColEstacion,
}

// standardizeJoinColumns renames source-specific join-key columns to their
// canonical names using the variable dictionary. Raw sheets carry the date
// and station under sheet-type-specific headers the per-type transformers do
// not all normalize themselves; this is a second, configuration-driven pass
// on top of those hardcoded renames.
//
// For every dictionary variable naming a join key, the first alias present
// as a column is renamed, unless the canonical column already exists. The
// operation is idempotent.
func (s *Service) standardizeJoinColumns(t *table.Table) {
	for _, def := range s.dict.Definitions() {
		joinColumn, ok := joinKeyVariables[def.CanonicalName]
		if !ok {
			continue
		}
		if t.HasColumn(joinColumn) {
			continue
		}
		for _, alias := range def.SourceAliases {
			if !t.HasColumn(alias) {
				continue
			}
			t.RenameColumn(alias, joinColumn)
			s.logger.Info().
				Str("sheet", t.Name).
				Str("from", alias).
				Str("to", joinColumn).
				Msg("Renamed join column")
			break
		}
	}
}
