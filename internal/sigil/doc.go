// Package sigil composes decorative scenes from independent layer
// generators:
//
//   - [SacredGeometry]: rings of six circles whose radii grow with the golden ratio
//   - [Particles]: uniformly scattered points
//   - [Parametric]: a Lissajous-like curve of cubed sinusoids
//   - [Relativity]: a polar light-bending conic
//   - [Fractal]: an escape-time raster from package fractal
//
// Generators are pure apart from the *rand.Rand they are handed, so a fixed
// seed reproduces a scene exactly. [Compose] builds a still; [Animation]
// builds per-tick frames with a rotating phase.
package sigil
