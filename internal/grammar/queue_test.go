package grammar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/app"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()
	env := app.NewContext(&app.Config{}, zerolog.Nop())
	q := NewQueue(env)
	q.now = func() time.Time {
		return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	}
	return q
}

func TestAddRemoveClear(t *testing.T) {
	q := newTestQueue(t)

	spec := NewSpec()
	assert.NoError(t, spec.Assign("x", "Fecha"))
	first := q.Add("Temperatura anual", spec)
	second := q.Add("Capturas por estación", NewSpec())

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, q.Len())

	assert.True(t, q.Remove(first.ID))
	assert.False(t, q.Remove(first.ID))
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, "Capturas por estación", q.Tasks()[0].Name)

	assert.Equal(t, 1, q.Clear())
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Clear())
}

func TestTasksReturnsCopy(t *testing.T) {
	q := newTestQueue(t)
	q.Add("Uno", NewSpec())

	tasks := q.Tasks()
	tasks[0].Name = "changed"
	assert.Equal(t, "Uno", q.Tasks()[0].Name)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	q := newTestQueue(t)

	spec := NewSpec()
	assert.NoError(t, spec.Assign("x", "Fecha"))
	assert.NoError(t, spec.Assign("y", "Temp_Mean"))
	assert.NoError(t, spec.Assign("color", "Estación"))
	assert.NoError(t, spec.Assign("facet_row", "Especie"))
	assert.NoError(t, spec.SetOption("plot_type", PlotLines))
	assert.NoError(t, spec.SetOption("y_scale", ScaleLog))
	assert.NoError(t, spec.SetOption("coords", CoordsFlipped))
	q.Add("Evolución de temperaturas", spec)
	q.Add("Dispersión simple", NewSpec())

	path := filepath.Join(t.TempDir(), "analisis.yaml")
	assert.NoError(t, q.Save(path))

	loaded := newTestQueue(t)
	assert.NoError(t, loaded.Load(path))
	assert.Equal(t, 2, loaded.Len())

	got := loaded.Tasks()
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, "Evolución de temperaturas", got[0].Name)
	assert.Equal(t, "Fecha", got[0].Spec.X)
	assert.Equal(t, "Temp_Mean", got[0].Spec.Y)
	assert.Equal(t, "Estación", got[0].Spec.Color)
	assert.Equal(t, "Especie", got[0].Spec.FacetRow)
	assert.Equal(t, PlotLines, got[0].Spec.PlotType)
	assert.Equal(t, ScaleLinear, got[0].Spec.XScale)
	assert.Equal(t, ScaleLog, got[0].Spec.YScale)
	assert.Equal(t, CoordsFlipped, got[0].Spec.Coords)

	assert.Equal(t, "Dispersión simple", got[1].Name)
	assert.Equal(t, NewSpec(), got[1].Spec)
}

func TestSaveWireFormat(t *testing.T) {
	q := newTestQueue(t)
	spec := NewSpec()
	assert.NoError(t, spec.Assign("x", "Fecha"))
	assert.NoError(t, spec.SetOption("coords", CoordsFlipped))
	q.Add("Mapa de capturas", spec)

	path := filepath.Join(t.TempDir(), "analisis.yaml")
	assert.NoError(t, q.Save(path))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	var doc map[string]interface{}
	assert.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "1.0", doc["version"])
	assert.Equal(t, "2024-03-15T10:30:00Z", doc["created_at"])
	assert.Equal(t, "Análisis de datos forestales", doc["description"])

	tasks, ok := doc["tasks"].([]interface{})
	if !ok || len(tasks) != 1 {
		t.Fatalf("unexpected tasks section: %v", doc["tasks"])
	}
	task, ok := tasks[0].(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected task entry: %v", tasks[0])
	}

	assert.Equal(t, 1, task["id"])
	assert.Equal(t, "Mapa de capturas", task["name"])
	assert.Equal(t, PlotScatter, task["plot_type"])

	variables, _ := task["variables"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"x": "Fecha"}, variables)

	aesthetics, _ := task["aesthetics"].(map[string]interface{})
	assert.Empty(t, aesthetics)

	coords, _ := task["coordinates"].(map[string]interface{})
	assert.Equal(t, true, coords["flip"])
	assert.Equal(t, ScaleLinear, coords["x_scale"])

	facet, _ := task["facet_settings"].(map[string]interface{})
	assert.Equal(t, "fixed", facet["scales"])

	state, _ := task["grammar_state"].(map[string]interface{})
	assert.Equal(t, "Fecha", state["x"])
	assert.Equal(t, CoordsFlipped, state["coords"])
}

func TestLoadWithoutGrammarState(t *testing.T) {
	doc := `version: "1.0"
created_at: 2023-11-02T09:00:00Z
description: Análisis de datos forestales
tasks:
  - id: 1
    plot_type: Barras
    variables:
      x: Estacion
      y: Capturas
    coordinates:
      flip: true
      y_scale: log
    facet_settings:
      rows: Especie
      scales: fixed
`
	path := filepath.Join(t.TempDir(), "analisis.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	q := newTestQueue(t)
	assert.NoError(t, q.Load(path))
	assert.Equal(t, 1, q.Len())

	task := q.Tasks()[0]
	assert.Equal(t, "Gráfico 1", task.Name)
	assert.Equal(t, "Estacion", task.Spec.X)
	assert.Equal(t, "Capturas", task.Spec.Y)
	assert.Equal(t, PlotBars, task.Spec.PlotType)
	assert.Equal(t, ScaleLinear, task.Spec.XScale)
	assert.Equal(t, ScaleLog, task.Spec.YScale)
	assert.Equal(t, CoordsFlipped, task.Spec.Coords)
	assert.Equal(t, "Especie", task.Spec.FacetRow)
	assert.Empty(t, task.Spec.FacetCol)
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	q := newTestQueue(t)

	assert.Error(t, q.Load(filepath.Join(dir, "missing.yaml")))

	noTasks := filepath.Join(dir, "notasks.yaml")
	if err := os.WriteFile(noTasks, []byte("version: \"1.0\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	assert.Error(t, q.Load(noTasks))

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("tasks: ["), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	assert.Error(t, q.Load(broken))
}

func TestSaveEmptyQueueRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analisis.yaml")

	q := newTestQueue(t)
	assert.NoError(t, q.Save(path))

	loaded := newTestQueue(t)
	loaded.Add("sobrescrita", NewSpec())
	assert.NoError(t, loaded.Load(path))
	assert.Equal(t, 0, loaded.Len())
}

func TestGenerateRequiresTasks(t *testing.T) {
	q := newTestQueue(t)
	_, err := q.Generate(t.TempDir())
	assert.ErrorIs(t, err, ErrNoTasks)
}

func TestGenerateListing(t *testing.T) {
	q := newTestQueue(t)

	spec := NewSpec()
	assert.NoError(t, spec.Assign("x", "Fecha"))
	assert.NoError(t, spec.Assign("y", "Diametro"))
	assert.NoError(t, spec.Assign("color", "Estación"))
	assert.NoError(t, spec.SetOption("plot_type", PlotLines))
	q.Add("Crecimiento según estación", spec)
	q.Add("Sin configurar", Spec{})

	dir := t.TempDir()
	path, err := q.Generate(dir)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20240315-103000_ListaGraficos.txt"), path)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	want := strings.Join([]string{
		"LISTA DE GRÁFICOS",
		"=================",
		"",
		"Fecha y hora: 2024-03-15 10:30:00",
		"",
		"Gráfico 1: Crecimiento según estación",
		strings.Repeat("-", 37),
		"Configuración:",
		"  - Tipo de gráfico: Líneas",
		"  - Eje X: Fecha",
		"  - Eje Y: Diametro",
		"  - Color: Estación",
		"  - Escala X: lineal",
		"  - Escala Y: lineal",
		"  - Coordenadas: cartesiano",
		"",
		strings.Repeat("=", 50),
		"",
		"Gráfico 2: Sin configurar",
		strings.Repeat("-", 25),
		"Configuración:",
		"  - Tipo de gráfico: No especificado",
		"  - Escala X: lineal",
		"  - Escala Y: lineal",
		"  - Coordenadas: cartesiano",
		"",
		strings.Repeat("=", 50),
		"",
		"Total de gráficos: 2",
	}, "\n") + "\n"
	assert.Equal(t, want, string(data))
}

func TestGenerateCreatesOutputDir(t *testing.T) {
	q := newTestQueue(t)
	q.Add("Uno", NewSpec())

	dir := filepath.Join(t.TempDir(), "salidas", "informes")
	path, err := q.Generate(dir)
	assert.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("listing file not written: %v", err)
	}
}
