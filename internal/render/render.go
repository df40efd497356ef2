package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/san-kum/sigilgen/internal/fractal"
	"github.com/san-kum/sigilgen/internal/palette"
	"github.com/san-kum/sigilgen/internal/sigil"
)

// DefaultSize is the edge length of the output surface in pixels.
const DefaultSize = 600

// referenceSize is the surface edge at which stroke widths are 1:1 in pixels.
const referenceSize = 600.0

// Surface rasterises scenes onto a square RGBA image.
type Surface struct {
	dc   *gg.Context
	size int
	view sigil.Rect

	// fractal rasters resampled at the current size, keyed by field+colormap
	rasters map[rasterKey]*image.RGBA
}

type rasterKey struct {
	field    *fractal.Field
	colormap string
	alpha    float64
}

// NewSurface returns a cleared size x size surface.
func NewSurface(size int) *Surface {
	if size < 1 {
		size = DefaultSize
	}
	s := &Surface{
		dc:      gg.NewContext(size, size),
		size:    size,
		rasters: make(map[rasterKey]*image.RGBA),
	}
	s.Clear(sigil.Black)
	return s
}

func (s *Surface) Size() int { return s.size }

// Clear fills the surface with bg.
func (s *Surface) Clear(bg palette.RGB) {
	s.dc.SetColor(bg.NRGBA(1))
	s.dc.Clear()
}

// Image returns the surface pixels. The image is owned by the surface and
// changes on the next Draw; use Snapshot to keep a copy.
func (s *Surface) Image() *image.RGBA {
	return s.dc.Image().(*image.RGBA)
}

// Snapshot copies the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	src := s.Image()
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// Draw replaces the surface content with scene.
func (s *Surface) Draw(scene sigil.Scene) {
	s.view = scene.View
	if s.view.Width() <= 0 || s.view.Height() <= 0 {
		s.view = sigil.Rect{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	}
	s.Clear(scene.Background)
	s.evict(scene)
	for _, it := range scene.Items {
		switch v := it.(type) {
		case *sigil.Circle:
			s.circle(v)
		case *sigil.Scatter:
			s.scatter(v)
		case *sigil.Polyline:
			s.polyline(v)
		case *sigil.Raster:
			s.raster(v)
		}
	}
}

// Render draws scene onto a fresh size x size image.
func Render(scene sigil.Scene, size int) *image.RGBA {
	s := NewSurface(size)
	s.Draw(scene)
	return s.Image()
}

func (s *Surface) scale() float64 { return float64(s.size) / referenceSize }

func (s *Surface) px(p sigil.Point) (float64, float64) {
	w, h := float64(s.size), float64(s.size)
	x := (p.X - s.view.XMin) / s.view.Width() * w
	y := h - (p.Y-s.view.YMin)/s.view.Height()*h
	return x, y
}

func (s *Surface) length(d float64) float64 {
	return d / s.view.Width() * float64(s.size)
}

func (s *Surface) circle(c *sigil.Circle) {
	x, y := s.px(c.Center)
	s.dc.SetColor(c.Color.NRGBA(1))
	s.dc.SetLineWidth(max(c.LineWidth*s.scale(), 0.5))
	s.dc.DrawCircle(x, y, s.length(c.Radius))
	s.dc.Stroke()
}

func (s *Surface) scatter(sc *sigil.Scatter) {
	s.dc.SetColor(sc.Color.NRGBA(sc.Alpha))
	r := max(sc.Size*0.8*s.scale(), 0.6)
	for _, p := range sc.Points {
		x, y := s.px(p)
		s.dc.DrawCircle(x, y, r)
		s.dc.Fill()
	}
}

func (s *Surface) polyline(pl *sigil.Polyline) {
	if len(pl.Points) < 2 {
		return
	}
	s.dc.SetColor(pl.Color.NRGBA(pl.Alpha))
	s.dc.SetLineWidth(max(pl.Width*s.scale(), 0.5))
	if pl.Dashed {
		s.dc.SetDash(6*s.scale(), 4*s.scale())
	}
	x, y := s.px(pl.Points[0])
	s.dc.MoveTo(x, y)
	for _, p := range pl.Points[1:] {
		x, y = s.px(p)
		s.dc.LineTo(x, y)
	}
	s.dc.Stroke()
	if pl.Dashed {
		s.dc.SetDash()
	}
}

func (s *Surface) raster(r *sigil.Raster) {
	x0, y0 := s.px(sigil.Point{X: r.Extent.XMin, Y: r.Extent.YMax})
	x1, y1 := s.px(sigil.Point{X: r.Extent.XMax, Y: r.Extent.YMin})
	w, h := int(x1-x0+0.5), int(y1-y0+0.5)
	if w < 1 || h < 1 || r.Field == nil {
		return
	}

	key := keyOf(r)
	img, ok := s.rasters[key]
	if !ok || img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		img = Resample(Colorize(r.Field, r.Colormap, r.Alpha), w, h)
		s.rasters[key] = img
	}
	s.dc.DrawImage(img, int(x0+0.5), int(y0+0.5))
}

func keyOf(r *sigil.Raster) rasterKey {
	return rasterKey{field: r.Field, colormap: r.Colormap.Name, alpha: r.Alpha}
}

// evict drops cached rasters that scene does not draw, so at most one entry
// per raster item survives a Draw.
func (s *Surface) evict(scene sigil.Scene) {
	if len(s.rasters) == 0 {
		return
	}
	live := make(map[rasterKey]bool)
	for _, it := range scene.Items {
		if r, ok := it.(*sigil.Raster); ok && r.Field != nil {
			live[keyOf(r)] = true
		}
	}
	for k := range s.rasters {
		if !live[k] {
			delete(s.rasters, k)
		}
	}
}

// Colorize maps a field through cm. Row 0 of the field lands on the top row
// of the image.
func Colorize(f *fractal.Field, cm palette.Colormap, alpha float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	lut := make([]color.NRGBA, f.MaxIter+1)
	for i := range lut {
		t := 0.0
		if f.MaxIter > 0 {
			t = float64(i) / float64(f.MaxIter)
		}
		lut[i] = cm.NRGBA(t, alpha)
	}
	for i := 0; i < f.Height; i++ {
		for j := 0; j < f.Width; j++ {
			img.SetNRGBA(j, i, lut[f.At(i, j)])
		}
	}
	return img
}

// Resample stretches src to w x h with bilinear filtering.
func Resample(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
