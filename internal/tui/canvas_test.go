package tui

import (
	"strings"
	"testing"

	"github.com/san-kum/sigilgen/internal/fractal"
	"github.com/san-kum/sigilgen/internal/sigil"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("cell 1 = %U, want U+2880", c.Grid[0][1])
	}
	if !c.IsSet(0, 0) || c.IsSet(1, 0) {
		t.Error("IsSet disagrees with Set")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 2)
	c.DrawLine(0, 0, 5, 7)
	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != brailleBlank {
				t.Fatalf("cell not blank: %U", r)
			}
		}
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(1, 2, 17, 15)
	if !c.IsSet(1, 2) || !c.IsSet(17, 15) {
		t.Error("line endpoints not set")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(4, 3)
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if len([]rune(l)) != 4 {
			t.Errorf("line %q has wrong width", l)
		}
	}
}

func lit(c *Canvas) int {
	n := 0
	w, h := c.Dots()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c.IsSet(x, y) {
				n++
			}
		}
	}
	return n
}

func TestPlotCircleCentred(t *testing.T) {
	c := NewCanvas(20, 10)
	scene := sigil.Scene{View: sigil.Rect{XMin: -2, XMax: 2, YMin: -2, YMax: 2}}
	scene.Add(&sigil.Circle{Radius: 1})
	c.Plot(scene)

	if lit(c) == 0 {
		t.Fatal("circle drew nothing")
	}
	// 40x40 dots; the centre is empty, the ring passes 10 dots to the right
	if c.IsSet(19, 19) {
		t.Error("circle centre should be empty")
	}
	found := false
	for x := 27; x <= 31; x++ {
		if c.IsSet(x, 19) || c.IsSet(x, 20) {
			found = true
		}
	}
	if !found {
		t.Error("ring not found right of centre")
	}
}

func TestPlotScatterAndRaster(t *testing.T) {
	c := NewCanvas(20, 10)
	view := sigil.Rect{XMin: -2, XMax: 2, YMin: -2, YMax: 2}

	empty := NewCanvas(20, 10)
	empty.Plot(sigil.Scene{View: view})
	if lit(empty) != 0 {
		t.Fatal("empty scene lit dots")
	}

	scene := sigil.Scene{View: view}
	scene.Add(
		&sigil.Scatter{Points: []sigil.Point{{X: -2, Y: 2}, {X: 0, Y: 0}}},
		&sigil.Raster{Field: fractal.Compute(30, 30, 40), Extent: sigil.Rect{XMin: -2, XMax: 1, YMin: -1.5, YMax: 1.5}},
	)
	c.Plot(scene)
	if !c.IsSet(0, 0) {
		t.Error("top-left scatter point missing")
	}
	if lit(c) < 10 {
		t.Errorf("expected fractal boundary dots, got %d", lit(c))
	}
}
