package export

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"
)

// EncodeGIF writes frames as a looping animated GIF, one frame per delay.
func EncodeGIF(w io.Writer, frames []*image.RGBA, delay time.Duration) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	cs := int(delay / (10 * time.Millisecond))
	if cs < 1 {
		cs = 1
	}

	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		b := frame.Bounds()
		pal := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(pal, b, frame, b.Min)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, cs)
	}
	return gif.EncodeAll(w, &anim)
}

// WriteAnimation writes frames to path as an animated GIF. A path without
// an extension gets ".gif" appended. It returns the path actually written.
func WriteAnimation(path string, frames []*image.RGBA, delay time.Duration) (string, error) {
	f, path, err := FormatOf(path, GIF)
	if err != nil {
		return path, err
	}
	if f != GIF {
		return path, fmt.Errorf("%w: animations are written as .gif, got %s", ErrUnsupportedFormat, f)
	}
	if len(frames) == 0 {
		return path, ErrNoFrames
	}
	return path, writeFile(path, func(w io.Writer) error {
		return EncodeGIF(w, frames, delay)
	})
}
