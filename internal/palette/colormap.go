package palette

import (
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Colormap is a piecewise-linear gradient over evenly spaced stops.
type Colormap struct {
	Name  string
	stops []colorful.Color
}

func mustColormap(name string, hexes ...string) Colormap {
	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("palette: bad stop " + h + " in " + name)
		}
		stops[i] = c
	}
	return Colormap{Name: name, stops: stops}
}

// Perceptual maps sampled from their published tables.
var (
	Magma = mustColormap("magma",
		"#000004", "#1c1044", "#4f127b", "#812581", "#b5367a",
		"#e55064", "#fb8761", "#fec287", "#fcfdbf")
	Inferno = mustColormap("inferno",
		"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60",
		"#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4")
	Plasma = mustColormap("plasma",
		"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
		"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921")
	Viridis = mustColormap("viridis",
		"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725")
	Cividis = mustColormap("cividis",
		"#00224e", "#123570", "#3b496c", "#575d6d", "#707173",
		"#8a8779", "#a69d75", "#c4b56c", "#e4cf5b", "#fee838")

	Colormaps = []Colormap{Magma, Inferno, Plasma, Viridis, Cividis}
)

// RandomColormap picks one of Colormaps.
func RandomColormap(rng *rand.Rand) Colormap {
	return Colormaps[rng.Intn(len(Colormaps))]
}

// ColormapByName looks up a colormap, reporting whether it exists.
func ColormapByName(name string) (Colormap, bool) {
	for _, cm := range Colormaps {
		if cm.Name == name {
			return cm, true
		}
	}
	return Colormap{}, false
}

// At samples the gradient at t, clamped to [0, 1].
func (cm Colormap) At(t float64) RGB {
	if len(cm.stops) == 0 {
		return RGB{}
	}
	if len(cm.stops) == 1 {
		return fromColorful(cm.stops[0])
	}
	t = clamp01(t)
	pos := t * float64(len(cm.stops)-1)
	i := int(pos)
	if i >= len(cm.stops)-1 {
		return fromColorful(cm.stops[len(cm.stops)-1])
	}
	return fromColorful(cm.stops[i].BlendRgb(cm.stops[i+1], pos-float64(i)))
}

// NRGBA samples the gradient at t with the given opacity.
func (cm Colormap) NRGBA(t, alpha float64) color.NRGBA {
	return cm.At(t).NRGBA(alpha)
}
