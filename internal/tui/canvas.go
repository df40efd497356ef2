package tui

import (
	"math"
	"strings"

	"github.com/san-kum/sigilgen/internal/sigil"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells addressed in dots; it is
// Width*2 dots wide and Height*4 dots tall.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  max(w, 1),
		Height: max(h, 1),
	}
	c.Grid = make([][]rune, c.Height)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, c.Width)
	}
	c.Clear()
	return c
}

func (c *Canvas) Dots() (w, h int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at (x, y); out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Plot draws scene into the largest centred square of dots. Fractal
// rasters contribute only their escape boundary.
func (c *Canvas) Plot(scene sigil.Scene) {
	p := newPlotter(c, scene.View)
	for _, it := range scene.Items {
		switch v := it.(type) {
		case *sigil.Circle:
			p.circle(v)
		case *sigil.Scatter:
			for _, pt := range v.Points {
				c.Set(p.dot(pt))
			}
		case *sigil.Polyline:
			p.polyline(v.Points)
		case *sigil.Raster:
			p.raster(v)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

type plotter struct {
	c          *Canvas
	view       sigil.Rect
	side       float64
	offX, offY float64
}

func newPlotter(c *Canvas, view sigil.Rect) plotter {
	if view.Width() <= 0 || view.Height() <= 0 {
		view = sigil.Rect{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	}
	w, h := c.Dots()
	side := float64(min(w, h))
	return plotter{
		c:    c,
		view: view,
		side: side,
		offX: (float64(w) - side) / 2,
		offY: (float64(h) - side) / 2,
	}
}

func (p plotter) dot(pt sigil.Point) (int, int) {
	x := p.offX + (pt.X-p.view.XMin)/p.view.Width()*(p.side-1)
	y := p.offY + (p.view.YMax-pt.Y)/p.view.Height()*(p.side-1)
	return int(math.Round(x)), int(math.Round(y))
}

func (p plotter) circle(c *sigil.Circle) {
	r := c.Radius / p.view.Width() * p.side
	n := max(int(2*math.Pi*r), 12)
	pts := make([]sigil.Point, n+1)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = sigil.Point{X: c.Center.X + c.Radius*math.Cos(a), Y: c.Center.Y + c.Radius*math.Sin(a)}
	}
	p.polyline(pts)
}

func (p plotter) polyline(pts []sigil.Point) {
	for i := 1; i < len(pts); i++ {
		x0, y0 := p.dot(pts[i-1])
		x1, y1 := p.dot(pts[i])
		p.c.DrawLine(x0, y0, x1, y1)
	}
	if len(pts) == 1 {
		p.c.Set(p.dot(pts[0]))
	}
}

func (p plotter) raster(r *sigil.Raster) {
	f := r.Field
	if f == nil || f.Width == 0 || f.Height == 0 {
		return
	}
	x0, y1 := p.dot(sigil.Point{X: r.Extent.XMin, Y: r.Extent.YMin})
	x1, y0 := p.dot(sigil.Point{X: r.Extent.XMax, Y: r.Extent.YMax})
	lo := f.MaxIter / 8
	for y := y0; y <= y1; y++ {
		i := (y1 - y) * (f.Height - 1) / max(y1-y0, 1)
		for x := x0; x <= x1; x++ {
			j := (x - x0) * (f.Width - 1) / max(x1-x0, 1)
			if n := f.At(i, j); n > lo && n < f.MaxIter {
				p.c.Set(x, y)
			}
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
