package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSpecDefaults(t *testing.T) {
	s := NewSpec()
	assert.Equal(t, PlotScatter, s.PlotType)
	assert.Equal(t, ScaleLinear, s.XScale)
	assert.Equal(t, ScaleLinear, s.YScale)
	assert.Equal(t, CoordsCartesian, s.Coords)
	assert.Empty(t, s.X)
	assert.Empty(t, s.Y)
	assert.Empty(t, s.Stat)
}

func TestAssignFields(t *testing.T) {
	s := NewSpec()
	assert.NoError(t, s.Assign("x", "Fecha"))
	assert.NoError(t, s.Assign("y", "Diametro"))
	assert.NoError(t, s.Assign("color", "Estación"))
	assert.NoError(t, s.Assign("size", "Capturas"))
	assert.NoError(t, s.Assign("shape", "Especie"))
	assert.NoError(t, s.Assign("alpha", "Peso seco"))
	assert.NoError(t, s.Assign("facet_row", "Especie"))
	assert.NoError(t, s.Assign("facet_col", "Estación"))

	assert.Equal(t, "Fecha", s.X)
	assert.Equal(t, "Diametro", s.Y)
	assert.Equal(t, "Estación", s.Color)
	assert.Equal(t, "Capturas", s.Size)
	assert.Equal(t, "Especie", s.Shape)
	assert.Equal(t, "Peso seco", s.Alpha)
	assert.Equal(t, "Especie", s.FacetRow)
	assert.Equal(t, "Estación", s.FacetCol)
}

func TestAssignOverwritesMapping(t *testing.T) {
	s := NewSpec()
	assert.NoError(t, s.Assign("y", "Diametro"))
	assert.NoError(t, s.Assign("y", "Temp_Mean"))
	assert.Equal(t, "Temp_Mean", s.Y)
}

func TestAssignUnknownField(t *testing.T) {
	s := NewSpec()
	err := s.Assign("theta", "Fecha")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "theta")
}

func TestClear(t *testing.T) {
	s := NewSpec()
	assert.NoError(t, s.Assign("color", "Estación"))
	assert.NoError(t, s.Clear("color"))
	assert.Empty(t, s.Color)

	assert.Error(t, s.Clear("plot_type"))
}

func TestSetOption(t *testing.T) {
	s := NewSpec()
	assert.NoError(t, s.SetOption("plot_type", PlotBars))
	assert.NoError(t, s.SetOption("x_scale", ScaleLog))
	assert.NoError(t, s.SetOption("y_scale", ScaleLog))
	assert.NoError(t, s.SetOption("coords", CoordsFlipped))

	assert.Equal(t, PlotBars, s.PlotType)
	assert.Equal(t, ScaleLog, s.XScale)
	assert.Equal(t, ScaleLog, s.YScale)
	assert.Equal(t, CoordsFlipped, s.Coords)
}

func TestSetOptionUnknown(t *testing.T) {
	s := NewSpec()
	err := s.SetOption("stat", "identity")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "stat")
}
