package sigil

import (
	"math"
	"math/rand"

	"github.com/san-kum/sigilgen/internal/fractal"
	"github.com/san-kum/sigilgen/internal/palette"
)

// Phi is the golden ratio; ring radii grow in steps of Phi/2.
var Phi = (1 + math.Sqrt(5)) / 2

const (
	ringSides     = 6
	ringLineWidth = 0.5

	minParticles    = 200
	maxParticles    = 500
	particleSpread  = 2.0
	particleSize    = 0.5
	particleOpacity = 0.7

	curveSamples = 1000
	curveWidth   = 1.0

	// RelativityClip bounds |r| of the light-bending curve; samples beyond
	// it split the curve into separate segments.
	RelativityClip  = 6.0
	relativityAlpha = 0.7

	fractalAlpha = 0.5
)

// SacredGeometry draws one ring of six circles per layer, each circle of
// radius r centred at distance r from the origin, rotated by phase.
func SacredGeometry(colors []palette.RGB, phase float64) []Primitive {
	out := make([]Primitive, 0, len(colors)*ringSides)
	for n, c := range colors {
		r := float64(n+1) * Phi * 0.5
		for k := 0; k < ringSides; k++ {
			a := 2*math.Pi*float64(k)/ringSides + phase
			out = append(out, &Circle{
				Center:    Point{X: r * math.Cos(a), Y: r * math.Sin(a)},
				Radius:    r,
				Color:     c,
				LineWidth: ringLineWidth,
			})
		}
	}
	return out
}

// Particles scatters between 200 and 500 points uniformly over [-2, 2]^2.
func Particles(rng *rand.Rand, c palette.RGB) *Scatter {
	n := minParticles + rng.Intn(maxParticles-minParticles+1)
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			X: uniform(rng, -particleSpread, particleSpread),
			Y: uniform(rng, -particleSpread, particleSpread),
		}
	}
	return &Scatter{Points: pts, Color: c, Size: particleSize, Alpha: particleOpacity}
}

// CurveCoeffs are the frequencies of the parametric curve.
type CurveCoeffs struct {
	A, B, C float64
}

// RandomCoeffs draws each frequency uniformly from [0.5, 1.5].
func RandomCoeffs(rng *rand.Rand) CurveCoeffs {
	return CurveCoeffs{
		A: uniform(rng, 0.5, 1.5),
		B: uniform(rng, 0.5, 1.5),
		C: uniform(rng, 0.5, 1.5),
	}
}

// Parametric evaluates x = cos(at) - cos(bt+phase)^3, y = sin(ct) - sin(bt+phase)^3
// over t in [0, 2pi].
func Parametric(k CurveCoeffs, c palette.RGB, phase float64) *Polyline {
	ts := linspace(0, 2*math.Pi, curveSamples)
	pts := make([]Point, len(ts))
	for i, t := range ts {
		cb := math.Cos(k.B*t + phase)
		sb := math.Sin(k.B*t + phase)
		pts[i] = Point{
			X: math.Cos(k.A*t) - cb*cb*cb,
			Y: math.Sin(k.C*t) - sb*sb*sb,
		}
	}
	return &Polyline{Points: pts, Color: c, Width: curveWidth, Alpha: 1}
}

// RandomMass draws the lensing mass uniformly from [0.5, 2].
func RandomMass(rng *rand.Rand) float64 {
	return uniform(rng, 0.5, 2.0)
}

// Relativity traces the conic r = 1 / (1 + mass*cos(theta+phase)). For
// mass >= 1 the curve is unbounded; it is split wherever |r| leaves
// RelativityClip or changes sign.
func Relativity(mass float64, c palette.RGB, phase float64) []Primitive {
	thetas := linspace(0, 2*math.Pi, curveSamples)
	var (
		out  []Primitive
		cur  []Point
		prev float64
	)
	flush := func() {
		if len(cur) >= 2 {
			out = append(out, &Polyline{
				Points: cur,
				Color:  c,
				Width:  curveWidth,
				Alpha:  relativityAlpha,
				Dashed: true,
			})
		}
		cur = nil
	}
	for _, th := range thetas {
		den := 1 + mass*math.Cos(th+phase)
		if den == 0 {
			flush()
			continue
		}
		r := 1 / den
		if math.Abs(r) > RelativityClip {
			flush()
			continue
		}
		if len(cur) > 0 && math.Signbit(r) != math.Signbit(prev) {
			flush()
		}
		prev = r
		cur = append(cur, Point{X: r * math.Cos(th), Y: r * math.Sin(th)})
	}
	flush()
	return out
}

// Fractal wraps an escape-time field as a translucent raster over the
// field's own viewport.
func Fractal(f *fractal.Field, cm palette.Colormap) *Raster {
	vp := f.Viewport
	return &Raster{
		Field:    f,
		Colormap: cm,
		Extent:   Rect{XMin: vp.XMin, XMax: vp.XMax, YMin: vp.YMin, YMax: vp.YMax},
		Alpha:    fractalAlpha,
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
