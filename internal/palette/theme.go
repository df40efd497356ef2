package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownTheme is returned by ParseTheme for names outside the enum.
var ErrUnknownTheme = errors.New("palette: unknown color theme")

// Theme selects how layer colours are drawn.
type Theme int

const (
	ThemeRandom Theme = iota
	ThemeWarm
	ThemeCool
	ThemeMonochrome
)

var themeNames = []string{"Random", "Warm", "Cool", "Monochrome"}

func (t Theme) String() string {
	if t < 0 || int(t) >= len(themeNames) {
		return fmt.Sprintf("Theme(%d)", int(t))
	}
	return themeNames[t]
}

// ParseTheme resolves a theme name, ignoring case.
func ParseTheme(name string) (Theme, error) {
	for i, n := range themeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Theme(i), nil
		}
	}
	return ThemeRandom, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// ThemeNames lists the selectable theme names in display order.
func ThemeNames() []string {
	out := make([]string, len(themeNames))
	copy(out, themeNames)
	return out
}

// Themes lists every theme in display order.
func Themes() []Theme {
	return []Theme{ThemeRandom, ThemeWarm, ThemeCool, ThemeMonochrome}
}

// MarshalText lets themes round-trip through yaml and flags by name.
func (t Theme) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Theme) UnmarshalText(b []byte) error {
	v, err := ParseTheme(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// RGB is a colour with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// NRGBA converts to a non-premultiplied colour with the given opacity.
func (c RGB) NRGBA(alpha float64) color.NRGBA {
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha)*255 + 0.5)}
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// Valid reports whether every channel lies in [0, 1].
func (c RGB) Valid() bool {
	return in01(c.R) && in01(c.G) && in01(c.B)
}

// Color draws a colour for theme t from rng. Warm hues sit in the reds,
// cool hues in the blues, monochrome yields a grey.
func Color(t Theme, rng *rand.Rand) RGB {
	switch t {
	case ThemeWarm:
		return fromColorful(colorful.Hsv(uniform(rng, 0, 0.1)*360, 1, 1))
	case ThemeCool:
		return fromColorful(colorful.Hsv(uniform(rng, 0.5, 0.75)*360, 1, 1))
	case ThemeMonochrome:
		s := rng.Float64()
		return RGB{s, s, s}
	default:
		return RGB{rng.Float64(), rng.Float64(), rng.Float64()}
	}
}

// Colors draws n colours for theme t.
func Colors(t Theme, n int, rng *rand.Rand) []RGB {
	out := make([]RGB, n)
	for i := range out {
		out[i] = Color(t, rng)
	}
	return out
}

func fromColorful(c colorful.Color) RGB {
	c = c.Clamped()
	return RGB{R: c.R, G: c.G, B: c.B}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func in01(v float64) bool { return v >= 0 && v <= 1 }

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
