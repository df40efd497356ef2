package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/san-kum/sigilgen/internal/palette"
	"github.com/san-kum/sigilgen/internal/render"
	"github.com/san-kum/sigilgen/internal/sigil"
)

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// sceneSVG maps world coordinates onto a size x size viewport.
type sceneSVG struct {
	canvas *svg.SVG
	view   sigil.Rect
	size   int
}

// EncodeSVG writes scene as an SVG document of the given pixel size.
// Shapes stay vector; a fractal raster is embedded as a PNG data URI.
func EncodeSVG(w io.Writer, scene sigil.Scene, size int) error {
	if size < 1 {
		size = render.DefaultSize
	}
	ew := &errWriter{w: w}
	s := sceneSVG{canvas: svg.New(ew), view: scene.View, size: size}
	if s.view.Width() <= 0 || s.view.Height() <= 0 {
		s.view = sigil.Rect{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	}

	s.canvas.Start(size, size)
	s.canvas.Rect(0, 0, size, size, "fill:"+scene.Background.Hex())
	for _, it := range scene.Items {
		switch v := it.(type) {
		case *sigil.Circle:
			s.circle(v)
		case *sigil.Scatter:
			s.scatter(v)
		case *sigil.Polyline:
			s.polyline(v)
		case *sigil.Raster:
			if err := s.raster(v); err != nil {
				return err
			}
		}
	}
	s.canvas.End()
	return ew.err
}

// WriteSVG writes scene to path as SVG.
func WriteSVG(path string, scene sigil.Scene, size int) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeSVG(w, scene, size)
	})
}

func (s sceneSVG) px(p sigil.Point) (int, int) {
	x := (p.X - s.view.XMin) / s.view.Width() * float64(s.size)
	y := float64(s.size) - (p.Y-s.view.YMin)/s.view.Height()*float64(s.size)
	return int(math.Round(x)), int(math.Round(y))
}

func (s sceneSVG) length(d float64) int {
	return int(math.Round(d / s.view.Width() * float64(s.size)))
}

func (s sceneSVG) stroke(c palette.RGB, width, alpha float64) string {
	scale := float64(s.size) / float64(render.DefaultSize)
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.2f;stroke-opacity:%.2f",
		c.Hex(), math.Max(width*scale, 0.5), alpha)
}

func (s sceneSVG) circle(c *sigil.Circle) {
	x, y := s.px(c.Center)
	s.canvas.Circle(x, y, s.length(c.Radius), s.stroke(c.Color, c.LineWidth, 1))
}

func (s sceneSVG) scatter(sc *sigil.Scatter) {
	s.canvas.Gstyle(fmt.Sprintf("fill:%s;fill-opacity:%.2f", sc.Color.Hex(), sc.Alpha))
	for _, p := range sc.Points {
		x, y := s.px(p)
		s.canvas.Circle(x, y, 1)
	}
	s.canvas.Gend()
}

func (s sceneSVG) polyline(pl *sigil.Polyline) {
	if len(pl.Points) < 2 {
		return
	}
	xs := make([]int, len(pl.Points))
	ys := make([]int, len(pl.Points))
	for i, p := range pl.Points {
		xs[i], ys[i] = s.px(p)
	}
	style := s.stroke(pl.Color, pl.Width, pl.Alpha)
	if pl.Dashed {
		style += ";stroke-dasharray:6,4"
	}
	s.canvas.Polyline(xs, ys, style)
}

func (s sceneSVG) raster(r *sigil.Raster) error {
	if r.Field == nil {
		return nil
	}
	x0, y0 := s.px(sigil.Point{X: r.Extent.XMin, Y: r.Extent.YMax})
	x1, y1 := s.px(sigil.Point{X: r.Extent.XMax, Y: r.Extent.YMin})

	var buf bytes.Buffer
	if err := png.Encode(&buf, render.Colorize(r.Field, r.Colormap, r.Alpha)); err != nil {
		return fmt.Errorf("export: embed fractal: %w", err)
	}
	href := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	s.canvas.Image(x0, y0, x1-x0, y1-y0, href, `preserveAspectRatio="none"`)
	return nil
}
