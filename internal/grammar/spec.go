// Package grammar models the grammar-of-graphics state behind each queued
// plot and the task queue built from it: which variables map onto which
// aesthetics, the axis scales and coordinate system, and the geometry.
package grammar

import (
	"fmt"
)

// Plot geometries
const (
	PlotScatter   = "Dispersión"
	PlotLines     = "Líneas"
	PlotBars      = "Barras"
	PlotHistogram = "Histograma"
)

// Axis scales
const (
	ScaleLinear = "lineal"
	ScaleLog    = "log"
)

// Coordinate systems
const (
	CoordsCartesian = "cartesiano"
	CoordsFlipped   = "flip"
)

// Spec is the grammar state of one plot. Aesthetic fields hold the name of
// the mapped dataset variable, or "" when nothing is mapped. The option
// fields are always set; NewSpec provides the defaults.
type Spec struct {
	X        string
	Y        string
	Color    string
	Size     string
	Shape    string
	Alpha    string
	FacetRow string
	FacetCol string
	Stat     string

	PlotType string
	XScale   string
	YScale   string
	Coords   string
}

// NewSpec returns a spec with nothing mapped and the default options: a
// scatter plot on linear cartesian axes.
func NewSpec() Spec {
	return Spec{
		PlotType: PlotScatter,
		XScale:   ScaleLinear,
		YScale:   ScaleLinear,
		Coords:   CoordsCartesian,
	}
}

// aestheticFields maps the state key of each aesthetic to its spec field
func (s *Spec) aestheticFields() map[string]*string {
	return map[string]*string{
		"x":         &s.X,
		"y":         &s.Y,
		"color":     &s.Color,
		"size":      &s.Size,
		"shape":     &s.Shape,
		"alpha":     &s.Alpha,
		"facet_row": &s.FacetRow,
		"facet_col": &s.FacetCol,
	}
}

// Assign maps a dataset variable onto an aesthetic field named by its state
// key (x, y, color, size, shape, alpha, facet_row, facet_col)
func (s *Spec) Assign(field, variable string) error {
	target, ok := s.aestheticFields()[field]
	if !ok {
		return fmt.Errorf("unknown aesthetic field %q", field)
	}
	*target = variable
	return nil
}

// Clear removes the variable mapped onto an aesthetic field
func (s *Spec) Clear(field string) error {
	target, ok := s.aestheticFields()[field]
	if !ok {
		return fmt.Errorf("unknown aesthetic field %q", field)
	}
	*target = ""
	return nil
}

// SetOption sets one of the plot options: plot_type, x_scale, y_scale or
// coords
func (s *Spec) SetOption(option, value string) error {
	switch option {
	case "plot_type":
		s.PlotType = value
	case "x_scale":
		s.XScale = value
	case "y_scale":
		s.YScale = value
	case "coords":
		s.Coords = value
	default:
		return fmt.Errorf("unknown plot option %q", option)
	}
	return nil
}
