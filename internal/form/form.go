// Package form describes the editable render parameters independently of
// any front end.
package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/sigilgen/internal/palette"
	"github.com/san-kum/sigilgen/internal/sigil"
)

type Kind int

const (
	Int Kind = iota
	Toggle
	Choice
)

// Control is one editable field of sigil.Params.
type Control struct {
	Name string
	Kind Kind

	get   func(p *sigil.Params) int
	set   func(p *sigil.Params, v int)
	flag  func(p *sigil.Params) *bool
	step  int
	floor int
}

func intControl(name string, step, floor int, field func(p *sigil.Params) *int) Control {
	return Control{
		Name:  name,
		Kind:  Int,
		get:   func(p *sigil.Params) int { return *field(p) },
		set:   func(p *sigil.Params, v int) { *field(p) = v },
		step:  step,
		floor: floor,
	}
}

func toggle(name string, flag func(p *sigil.Params) *bool) Control {
	return Control{Name: name, Kind: Toggle, flag: flag}
}

// Controls lists the fields in display order.
var Controls = []Control{
	intControl("layers", 1, 0, func(p *sigil.Params) *int { return &p.Layers }),
	intControl("iterations", 10, 1, func(p *sigil.Params) *int { return &p.Iterations }),
	toggle("particles", func(p *sigil.Params) *bool { return &p.Particles }),
	toggle("sacred geometry", func(p *sigil.Params) *bool { return &p.SacredGeometry }),
	toggle("fractal", func(p *sigil.Params) *bool { return &p.Fractal }),
	toggle("parametric", func(p *sigil.Params) *bool { return &p.Parametric }),
	toggle("relativity", func(p *sigil.Params) *bool { return &p.Relativity }),
	{Name: "theme", Kind: Choice},
}

// Value formats the control's current value.
func (c Control) Value(p sigil.Params) string {
	switch c.Kind {
	case Int:
		return strconv.Itoa(c.get(&p))
	case Toggle:
		if *c.flag(&p) {
			return "on"
		}
		return "off"
	}
	return p.Theme.String()
}

// Checked reports the state of a toggle.
func (c Control) Checked(p sigil.Params) bool {
	return c.Kind == Toggle && *c.flag(&p)
}

// Adjust steps an integer, flips a toggle or cycles the theme.
func (c Control) Adjust(p *sigil.Params, delta int) {
	switch c.Kind {
	case Int:
		c.set(p, max(c.get(p)+delta*c.step, c.floor))
	case Toggle:
		b := c.flag(p)
		*b = !*b
	case Choice:
		themes := palette.Themes()
		n := len(themes)
		p.Theme = themes[((int(p.Theme)+delta)%n+n)%n]
	}
}

// Set parses s into an integer control.
func (c Control) Set(p *sigil.Params, s string) error {
	if c.Kind != Int {
		return fmt.Errorf("%s is not a number field", c.Name)
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%s: %q is not a whole number", c.Name, s)
	}
	if v < c.floor {
		return fmt.Errorf("%s must be at least %d", c.Name, c.floor)
	}
	c.set(p, v)
	return nil
}
