package sigil

import (
	"fmt"

	"github.com/san-kum/sigilgen/internal/fractal"
	"github.com/san-kum/sigilgen/internal/palette"
)

const (
	DefaultLayers     = 3
	DefaultIterations = 50
	// DefaultFieldSize is the edge length of the fractal grid in cells.
	DefaultFieldSize = 500
)

// Params selects which layers are drawn and how.
type Params struct {
	Layers         int           `yaml:"layers"`
	Iterations     int           `yaml:"iterations"`
	Particles      bool          `yaml:"particles"`
	SacredGeometry bool          `yaml:"sacred_geometry"`
	Fractal        bool          `yaml:"fractal"`
	Parametric     bool          `yaml:"parametric"`
	Relativity     bool          `yaml:"relativity"`
	Theme          palette.Theme `yaml:"theme"`
	FieldSize      int           `yaml:"field_size"`
}

// DefaultParams enables every layer.
func DefaultParams() Params {
	return Params{
		Layers:         DefaultLayers,
		Iterations:     DefaultIterations,
		Particles:      true,
		SacredGeometry: true,
		Fractal:        true,
		Parametric:     true,
		Relativity:     true,
		Theme:          palette.ThemeRandom,
		FieldSize:      DefaultFieldSize,
	}
}

func (p Params) Validate() error {
	if p.Layers < 0 {
		return fmt.Errorf("%w: layers must be >= 0, got %d", ErrInvalidParams, p.Layers)
	}
	if p.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be >= 1, got %d", ErrInvalidParams, p.Iterations)
	}
	if p.FieldSize < 0 {
		return fmt.Errorf("%w: field size must be >= 0, got %d", ErrInvalidParams, p.FieldSize)
	}
	return nil
}

func (p Params) fieldSize() int {
	if p.FieldSize == 0 {
		return DefaultFieldSize
	}
	return p.FieldSize
}

// Point is a position in world coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned world rectangle.
type Rect struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (r Rect) Width() float64  { return r.XMax - r.XMin }
func (r Rect) Height() float64 { return r.YMax - r.YMin }

// Primitive is one drawable element of a Scene: *Circle, *Scatter,
// *Polyline or *Raster.
type Primitive interface {
	primitive()
}

// Circle is an unfilled ring.
type Circle struct {
	Center    Point
	Radius    float64
	Color     palette.RGB
	LineWidth float64
}

// Scatter is a cloud of equally sized dots.
type Scatter struct {
	Points []Point
	Color  palette.RGB
	Size   float64
	Alpha  float64
}

// Polyline is an open curve through Points.
type Polyline struct {
	Points []Point
	Color  palette.RGB
	Width  float64
	Alpha  float64
	Dashed bool
}

// Raster is a fractal field stretched over Extent.
type Raster struct {
	Field    *fractal.Field
	Colormap palette.Colormap
	Extent   Rect
	Alpha    float64
}

func (*Circle) primitive()   {}
func (*Scatter) primitive()  {}
func (*Polyline) primitive() {}
func (*Raster) primitive()   {}

// Scene is an ordered list of primitives drawn back to front over View.
type Scene struct {
	Background palette.RGB
	View       Rect
	Items      []Primitive
}

// Add appends primitives in draw order.
func (s *Scene) Add(items ...Primitive) {
	s.Items = append(s.Items, items...)
}

// Empty reports whether nothing was drawn.
func (s *Scene) Empty() bool { return len(s.Items) == 0 }
