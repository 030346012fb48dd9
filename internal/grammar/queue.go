package grammar

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/app"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	queueFileVersion = "1.0"
	queueDescription = "Análisis de datos forestales"
)

// ErrNoTasks is returned by Generate when the queue is empty
var ErrNoTasks = errors.New("no tasks in the queue")

// Task is one queued plot: a stable identifier, a user-facing name, and the
// grammar spec that produces it
type Task struct {
	ID   string
	Name string
	Spec Spec
}

// Queue holds the ordered list of plot tasks for one analysis
type Queue struct {
	tasks  []Task
	logger zerolog.Logger
	now    func() time.Time
}

// NewQueue creates an empty task queue
func NewQueue(env *app.Context) *Queue {
	return &Queue{
		logger: env.Named("queue"),
		now:    time.Now,
	}
}

// Add appends a task for the given spec and returns it
func (q *Queue) Add(name string, spec Spec) Task {
	task := Task{
		ID:   uuid.NewString(),
		Name: name,
		Spec: spec,
	}
	q.tasks = append(q.tasks, task)

	q.logger.Info().Str("task", name).Msg("Added task to the queue")
	return task
}

// Tasks returns the queued tasks in order
func (q *Queue) Tasks() []Task {
	tasks := make([]Task, len(q.tasks))
	copy(tasks, q.tasks)
	return tasks
}

// Len returns the number of queued tasks
func (q *Queue) Len() int {
	return len(q.tasks)
}

// Remove deletes the task with the given ID, reporting whether it existed
func (q *Queue) Remove(id string) bool {
	for i, task := range q.tasks {
		if task.ID == id {
			q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
			q.logger.Info().Str("task", task.Name).Msg("Removed task from the queue")
			return true
		}
	}
	return false
}

// Clear empties the queue and returns the number of tasks removed
func (q *Queue) Clear() int {
	count := len(q.tasks)
	q.tasks = nil
	if count > 0 {
		q.logger.Info().Int("tasks", count).Msg("Cleared the task queue")
	}
	return count
}

// queueFile is the on-disk analysis format. Each task is stored twice: split
// into the labeled sections older readers expect, and as the complete
// grammar_state used when loading.
type queueFile struct {
	Version     string       `yaml:"version"`
	CreatedAt   string       `yaml:"created_at"`
	Description string       `yaml:"description"`
	Tasks       []taskRecord `yaml:"tasks"`
}

type taskRecord struct {
	ID            int               `yaml:"id"`
	Name          string            `yaml:"name"`
	PlotType      string            `yaml:"plot_type"`
	Variables     map[string]string `yaml:"variables"`
	Aesthetics    map[string]string `yaml:"aesthetics"`
	Coordinates   coordinateRecord  `yaml:"coordinates"`
	FacetSettings facetRecord       `yaml:"facet_settings"`
	GrammarState  *stateRecord      `yaml:"grammar_state,omitempty"`
}

type coordinateRecord struct {
	Flip   bool   `yaml:"flip"`
	XScale string `yaml:"x_scale"`
	YScale string `yaml:"y_scale"`
}

type facetRecord struct {
	Rows   string `yaml:"rows,omitempty"`
	Cols   string `yaml:"cols,omitempty"`
	Scales string `yaml:"scales"`
}

type stateRecord struct {
	X        string `yaml:"x,omitempty"`
	Y        string `yaml:"y,omitempty"`
	Color    string `yaml:"color,omitempty"`
	Size     string `yaml:"size,omitempty"`
	Shape    string `yaml:"shape,omitempty"`
	Alpha    string `yaml:"alpha,omitempty"`
	FacetRow string `yaml:"facet_row,omitempty"`
	FacetCol string `yaml:"facet_col,omitempty"`
	Stat     string `yaml:"stat,omitempty"`
	PlotType string `yaml:"plot_type"`
	XScale   string `yaml:"x_scale"`
	YScale   string `yaml:"y_scale"`
	Coords   string `yaml:"coords"`
}

// Save writes the queue as a YAML analysis file. An empty queue writes a
// valid file with an empty task list.
func (q *Queue) Save(path string) error {
	file := queueFile{
		Version:     queueFileVersion,
		CreatedAt:   q.now().Format(time.RFC3339),
		Description: queueDescription,
	}
	for i, task := range q.tasks {
		file.Tasks = append(file.Tasks, taskToRecord(i+1, task))
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write analysis file %s: %w", path, err)
	}

	q.logger.Info().Str("path", path).Int("tasks", len(q.tasks)).Msg("Saved analysis")
	return nil
}

func taskToRecord(ordinal int, task Task) taskRecord {
	s := task.Spec

	variables := make(map[string]string)
	for key, value := range map[string]string{
		"x":     s.X,
		"y":     s.Y,
		"color": s.Color,
		"size":  s.Size,
		"shape": s.Shape,
		"alpha": s.Alpha,
	} {
		if value != "" {
			variables[key] = value
		}
	}

	return taskRecord{
		ID:         ordinal,
		Name:       task.Name,
		PlotType:   s.PlotType,
		Variables:  variables,
		Aesthetics: map[string]string{},
		Coordinates: coordinateRecord{
			Flip:   s.Coords == CoordsFlipped,
			XScale: s.XScale,
			YScale: s.YScale,
		},
		FacetSettings: facetRecord{
			Rows:   s.FacetRow,
			Cols:   s.FacetCol,
			Scales: "fixed",
		},
		GrammarState: &stateRecord{
			X:        s.X,
			Y:        s.Y,
			Color:    s.Color,
			Size:     s.Size,
			Shape:    s.Shape,
			Alpha:    s.Alpha,
			FacetRow: s.FacetRow,
			FacetCol: s.FacetCol,
			Stat:     s.Stat,
			PlotType: s.PlotType,
			XScale:   s.XScale,
			YScale:   s.YScale,
			Coords:   s.Coords,
		},
	}
}

// Load replaces the queue with the tasks of a YAML analysis file
func (q *Queue) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read analysis file %s: %w", path, err)
	}

	var file queueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("invalid analysis YAML: %w", err)
	}
	if file.Tasks == nil {
		return fmt.Errorf("invalid analysis file %s: no tasks list", path)
	}
	if file.Version != queueFileVersion {
		q.logger.Warn().
			Str("version", file.Version).
			Msg("Analysis file version may not be compatible")
	}

	tasks := make([]Task, 0, len(file.Tasks))
	for i, rec := range file.Tasks {
		name := rec.Name
		if name == "" {
			name = fmt.Sprintf("Gráfico %d", i+1)
		}
		tasks = append(tasks, Task{
			ID:   uuid.NewString(),
			Name: name,
			Spec: rec.spec(),
		})
	}
	q.tasks = tasks

	q.logger.Info().Str("path", path).Int("tasks", len(q.tasks)).Msg("Loaded analysis")
	return nil
}

// spec reconstructs the grammar spec of a stored task, preferring the
// complete grammar_state and falling back to the split sections
func (r taskRecord) spec() Spec {
	if r.GrammarState != nil {
		g := r.GrammarState
		s := Spec{
			X:        g.X,
			Y:        g.Y,
			Color:    g.Color,
			Size:     g.Size,
			Shape:    g.Shape,
			Alpha:    g.Alpha,
			FacetRow: g.FacetRow,
			FacetCol: g.FacetCol,
			Stat:     g.Stat,
			PlotType: g.PlotType,
			XScale:   g.XScale,
			YScale:   g.YScale,
			Coords:   g.Coords,
		}
		applyOptionDefaults(&s)
		return s
	}

	s := NewSpec()
	if r.PlotType != "" {
		s.PlotType = r.PlotType
	}
	for key, value := range r.Variables {
		// Unknown keys in hand-edited files are skipped
		_ = s.Assign(key, value)
	}
	if r.Coordinates.Flip {
		s.Coords = CoordsFlipped
	}
	if r.Coordinates.XScale != "" {
		s.XScale = r.Coordinates.XScale
	}
	if r.Coordinates.YScale != "" {
		s.YScale = r.Coordinates.YScale
	}
	s.FacetRow = r.FacetSettings.Rows
	s.FacetCol = r.FacetSettings.Cols
	return s
}

func applyOptionDefaults(s *Spec) {
	if s.PlotType == "" {
		s.PlotType = PlotScatter
	}
	if s.XScale == "" {
		s.XScale = ScaleLinear
	}
	if s.YScale == "" {
		s.YScale = ScaleLinear
	}
	if s.Coords == "" {
		s.Coords = CoordsCartesian
	}
}

// Generate writes the human-readable plot listing to a timestamped text file
// in outputDir and returns the file's path
func (q *Queue) Generate(outputDir string) (string, error) {
	if len(q.tasks) == 0 {
		return "", ErrNoTasks
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	now := q.now()
	path := filepath.Join(outputDir, fmt.Sprintf("%s_ListaGraficos.txt", now.Format("20060102-150405")))

	var b strings.Builder
	b.WriteString("LISTA DE GRÁFICOS\n")
	b.WriteString("=================\n\n")
	fmt.Fprintf(&b, "Fecha y hora: %s\n\n", now.Format("2006-01-02 15:04:05"))

	for i, task := range q.tasks {
		title := fmt.Sprintf("Gráfico %d: %s", i+1, task.Name)
		b.WriteString(title + "\n")
		b.WriteString(strings.Repeat("-", utf8.RuneCountInString(title)) + "\n")
		b.WriteString("Configuración:\n")

		plotType := task.Spec.PlotType
		if plotType == "" {
			plotType = "No especificado"
		}
		fmt.Fprintf(&b, "  - Tipo de gráfico: %s\n", plotType)

		mappings := []struct {
			value string
			label string
		}{
			{task.Spec.X, "Eje X"},
			{task.Spec.Y, "Eje Y"},
			{task.Spec.Color, "Color"},
			{task.Spec.Size, "Tamaño"},
			{task.Spec.Shape, "Forma"},
			{task.Spec.Alpha, "Transparencia"},
			{task.Spec.FacetRow, "Faceta (fila)"},
			{task.Spec.FacetCol, "Faceta (columna)"},
		}
		for _, m := range mappings {
			if m.value != "" {
				fmt.Fprintf(&b, "  - %s: %s\n", m.label, m.value)
			}
		}

		spec := task.Spec
		applyOptionDefaults(&spec)
		fmt.Fprintf(&b, "  - Escala X: %s\n", spec.XScale)
		fmt.Fprintf(&b, "  - Escala Y: %s\n", spec.YScale)
		fmt.Fprintf(&b, "  - Coordenadas: %s\n", spec.Coords)

		b.WriteString("\n" + strings.Repeat("=", 50) + "\n\n")
	}

	fmt.Fprintf(&b, "Total de gráficos: %d\n", len(q.tasks))

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write listing %s: %w", path, err)
	}

	q.logger.Info().Str("path", path).Int("tasks", len(q.tasks)).Msg("Saved plot listing")
	return path, nil
}
