package sigil

import (
	"math"
	"math/rand"

	"github.com/san-kum/sigilgen/internal/fractal"
	"github.com/san-kum/sigilgen/internal/palette"
)

const (
	// PhaseStep is the rotation applied per animation tick.
	PhaseStep = math.Pi / 30
	// ColormapPeriod is how many ticks an animated fractal keeps its colormap.
	ColormapPeriod = 10
	// CurveDrift is added to the parametric C frequency per tick.
	CurveDrift = 0.1

	viewPad = 0.05
)

// Black is the canvas background.
var Black = palette.RGB{}

// View returns the square world window that frames every layer p enables.
func View(p Params) Rect {
	half := particleSpread
	if p.SacredGeometry && p.Layers > 0 {
		// outermost ring: centre at distance r plus radius r
		half = max(half, 2*float64(p.Layers)*Phi*0.5)
	}
	half *= 1 + viewPad
	return Rect{XMin: -half, XMax: half, YMin: -half, YMax: half}
}

// FieldFor computes the escape-time field for p. It is the only expensive
// step of a render and depends on nothing random.
func FieldFor(p Params) *fractal.Field {
	n := p.fieldSize()
	return fractal.Compute(n, n, p.Iterations)
}

// Compose builds a static sigil. Layers are drawn in the order sacred
// geometry, fractal, particles, parametric, relativity.
func Compose(p Params, rng *rand.Rand) (Scene, error) {
	return ComposeWithField(p, rng, nil)
}

// ComposeWithField is Compose with a precomputed field; a nil field is
// computed on demand.
func ComposeWithField(p Params, rng *rand.Rand, f *fractal.Field) (Scene, error) {
	if err := p.Validate(); err != nil {
		return Scene{}, err
	}
	s := Scene{Background: Black, View: View(p)}

	if p.SacredGeometry {
		s.Add(SacredGeometry(palette.Colors(p.Theme, p.Layers, rng), 0)...)
	}
	if p.Fractal {
		if f == nil {
			f = FieldFor(p)
		}
		s.Add(Fractal(f, palette.RandomColormap(rng)))
	}
	if p.Particles {
		s.Add(Particles(rng, palette.Color(p.Theme, rng)))
	}
	if p.Parametric {
		k := RandomCoeffs(rng)
		s.Add(Parametric(k, palette.Color(p.Theme, rng), 0))
	}
	if p.Relativity {
		m := RandomMass(rng)
		s.Add(Relativity(m, palette.Color(p.Theme, rng), 0)...)
	}
	return s, nil
}

// Animation produces the frames of a rotating sigil. Layer colours are
// drawn once so they stay stable across frames; curve coefficients, masses
// and particles are redrawn every tick.
type Animation struct {
	params Params
	ticks  int
	rng    *rand.Rand

	ringColors    []palette.RGB
	curveColor    palette.RGB
	particleColor palette.RGB
	lensColor     palette.RGB

	field     *fractal.Field
	colormaps []palette.Colormap
}

// NewAnimation prepares a ticks-long animation for p.
func NewAnimation(p Params, ticks int, rng *rand.Rand) (*Animation, error) {
	return NewAnimationWithField(p, ticks, rng, nil)
}

// NewAnimationWithField is NewAnimation with a precomputed field.
func NewAnimationWithField(p Params, ticks int, rng *rand.Rand, f *fractal.Field) (*Animation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if ticks < 0 {
		ticks = 0
	}
	a := &Animation{
		params:        p,
		ticks:         ticks,
		rng:           rng,
		ringColors:    palette.Colors(p.Theme, p.Layers, rng),
		curveColor:    palette.Color(p.Theme, rng),
		particleColor: palette.Color(p.Theme, rng),
		lensColor:     palette.Color(p.Theme, rng),
	}
	if p.Fractal {
		if f == nil {
			f = FieldFor(p)
		}
		a.field = f
		blocks := (ticks + ColormapPeriod - 1) / ColormapPeriod
		a.colormaps = make([]palette.Colormap, max(blocks, 1))
		for i := range a.colormaps {
			a.colormaps[i] = palette.RandomColormap(rng)
		}
	}
	return a, nil
}

func (a *Animation) Ticks() int     { return a.ticks }
func (a *Animation) Params() Params { return a.params }

// Field returns the shared fractal field, or nil when the layer is off.
func (a *Animation) Field() *fractal.Field { return a.field }

// Phase is the rotation at tick.
func Phase(tick int) float64 { return float64(tick) * PhaseStep }

// Frame builds the scene for tick. Layers are drawn in the order sacred
// geometry, parametric, particles, relativity, fractal.
func (a *Animation) Frame(tick int) Scene {
	p := a.params
	phase := Phase(tick)
	s := Scene{Background: Black, View: View(p)}

	if p.SacredGeometry {
		s.Add(SacredGeometry(a.ringColors, phase)...)
	}
	if p.Parametric {
		k := RandomCoeffs(a.rng)
		k.C += float64(tick) * CurveDrift
		s.Add(Parametric(k, a.curveColor, phase))
	}
	if p.Particles {
		s.Add(Particles(a.rng, a.particleColor))
	}
	if p.Relativity {
		s.Add(Relativity(RandomMass(a.rng), a.lensColor, phase)...)
	}
	if a.field != nil {
		s.Add(Fractal(a.field, a.colormapAt(tick)))
	}
	return s
}

func (a *Animation) colormapAt(tick int) palette.Colormap {
	i := tick / ColormapPeriod
	if i < 0 {
		i = 0
	}
	if i >= len(a.colormaps) {
		i = len(a.colormaps) - 1
	}
	return a.colormaps[i]
}
