package pipeline

import (
	"fmt"
	"strings"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/app"
	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/table"
	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/variables"

	"github.com/rs/zerolog"
)

// Canonical join column names every transformed sheet must carry.
const (
	ColFecha    = "Fecha"
	ColEstacion = "Estacion"
)

// JoinKeys is the (date, station) pair rows are aligned on across sheets
var JoinKeys = []string{ColFecha, ColEstacion}

// Service runs the transformation and unification pipeline. It holds the
// raw sheets of the currently loaded workbook and the read-only variable
// dictionary; transformed sheets and the unified table are recomputed from
// scratch on every Unify call.
type Service struct {
	env    *app.Context
	dict   *variables.Dictionary
	logger zerolog.Logger

	source string
	sheets map[string]*table.Table
	order  []string
}

// NewService creates a pipeline service bound to the application context and
// variable dictionary
func NewService(env *app.Context, dict *variables.Dictionary) *Service {
	return &Service{
		env:    env,
		dict:   dict,
		logger: env.Named("pipeline"),
		sheets: make(map[string]*table.Table),
	}
}

// SetSheets replaces the loaded raw sheets. The previous set is discarded;
// the pipeline reads the new tables but never mutates them.
func (s *Service) SetSheets(source string, sheets []*table.Table) {
	s.source = source
	s.sheets = make(map[string]*table.Table, len(sheets))
	s.order = s.order[:0]
	for _, t := range sheets {
		if _, dup := s.sheets[t.Name]; dup {
			s.logger.Warn().Str("sheet", t.Name).Msg("Duplicate sheet name, keeping the first")
			continue
		}
		s.sheets[t.Name] = t
		s.order = append(s.order, t.Name)
	}

	s.logger.Info().
		Str("source", source).
		Int("sheets", len(s.order)).
		Msg("Loaded raw sheets")
}

// SheetNames returns the raw sheet names in load order
func (s *Service) SheetNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Sheet returns the raw sheet with the given name
func (s *Service) Sheet(name string) (*table.Table, bool) {
	t, ok := s.sheets[name]
	return t, ok
}

// Summary describes the loaded workbook: source name, sheet count, and per
// sheet its shape and column headers
func (s *Service) Summary() string {
	if len(s.order) == 0 {
		return "No data loaded"
	}

	summary := []string{fmt.Sprintf("File: %s", s.source)}
	summary = append(summary, fmt.Sprintf("Number of sheets: %d", len(s.order)))
	summary = append(summary, "\nAvailable sheets:")

	for _, name := range s.order {
		t := s.sheets[name]
		summary = append(summary, fmt.Sprintf("\n%s:", name))
		summary = append(summary, fmt.Sprintf("- Rows: %d", t.NumRows()))
		summary = append(summary, fmt.Sprintf("- Columns: %d", t.NumCols()))
		summary = append(summary, fmt.Sprintf("- Columns: %s", strings.Join(t.Columns(), ", ")))
	}

	return strings.Join(summary, "\n")
}
