package fractal

// EscapeRadius is the modulus beyond which a point is considered to diverge.
const EscapeRadius = 10.0

// Viewport is a rectangle on the complex plane.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DefaultViewport frames the whole set.
var DefaultViewport = Viewport{
	XMin: -2.0,
	XMax: 1.0,
	YMin: -1.5,
	YMax: 1.5,
}

// Field holds one escape-iteration count per pixel, row-major.
type Field struct {
	Width, Height int
	MaxIter       int
	Viewport      Viewport
	Counts        []int
}

// Compute returns the escape-time field of the default viewport.
func Compute(h, w, maxIter int) *Field {
	return ComputeViewport(h, w, maxIter, DefaultViewport)
}

// ComputeViewport evaluates z <- z*z + c from z = 0 for every pixel of an
// h x w grid laid over vp. Rows map to the imaginary axis and columns to the
// real axis, both sampled with inclusive endpoints. A cell records the
// iteration index at which |z| first exceeds EscapeRadius, or maxIter.
func ComputeViewport(h, w, maxIter int, vp Viewport) *Field {
	if h < 0 {
		h = 0
	}
	if w < 0 {
		w = 0
	}
	if maxIter < 0 {
		maxIter = 0
	}

	f := &Field{
		Width:    w,
		Height:   h,
		MaxIter:  maxIter,
		Viewport: vp,
		Counts:   make([]int, h*w),
	}

	xs := linspace(vp.XMin, vp.XMax, w)
	ys := linspace(vp.YMin, vp.YMax, h)

	for i, cy := range ys {
		row := f.Counts[i*w : (i+1)*w]
		for j, cx := range xs {
			row[j] = escape(cx, cy, maxIter)
		}
	}
	return f
}

func escape(cx, cy float64, maxIter int) int {
	const r2 = EscapeRadius * EscapeRadius
	var zx, zy float64
	for k := 0; k < maxIter; k++ {
		zx, zy = zx*zx-zy*zy+cx, 2*zx*zy+cy
		if zx*zx+zy*zy > r2 {
			return k
		}
	}
	return maxIter
}

// linspace mirrors numpy.linspace: n samples, both endpoints included.
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

// At returns the count at row i, column j.
func (f *Field) At(i, j int) int {
	return f.Counts[i*f.Width+j]
}

// Normalized maps the count at (i, j) into [0, 1].
func (f *Field) Normalized(i, j int) float64 {
	if f.MaxIter == 0 {
		return 0
	}
	return float64(f.At(i, j)) / float64(f.MaxIter)
}

// Range returns the smallest and largest count in the field.
func (f *Field) Range() (lo, hi int) {
	if len(f.Counts) == 0 {
		return 0, 0
	}
	lo, hi = f.Counts[0], f.Counts[0]
	for _, c := range f.Counts[1:] {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return lo, hi
}

// Histogram buckets the counts into bins equal-width classes spanning
// [0, MaxIter]. The last bin also holds the points that never escaped.
func (f *Field) Histogram(bins int) []float64 {
	if bins < 1 {
		bins = 1
	}
	out := make([]float64, bins)
	if len(f.Counts) == 0 {
		return out
	}
	span := f.MaxIter + 1
	for _, c := range f.Counts {
		b := c * bins / span
		if b >= bins {
			b = bins - 1
		}
		out[b]++
	}
	return out
}

// Equal reports whether two fields cover the same viewport with identical
// dimensions and counts.
func (f *Field) Equal(o *Field) bool {
	if f == nil || o == nil {
		return f == o
	}
	if f.Width != o.Width || f.Height != o.Height || f.MaxIter != o.MaxIter || f.Viewport != o.Viewport {
		return false
	}
	for i := range f.Counts {
		if f.Counts[i] != o.Counts[i] {
			return false
		}
	}
	return true
}
