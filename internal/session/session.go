package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/sigilgen/internal/anim"
	"github.com/san-kum/sigilgen/internal/export"
	"github.com/san-kum/sigilgen/internal/fractal"
	"github.com/san-kum/sigilgen/internal/render"
	"github.com/san-kum/sigilgen/internal/sigil"
)

// ErrNoSigil is returned when saving before anything was generated.
var ErrNoSigil = errors.New("session: no sigil generated")

type Options struct {
	Size int
	Anim anim.Config
	// Seed fixes the random stream; zero seeds from the clock.
	Seed   int64
	Logger *log.Logger
}

// Session holds the shell state shared by every front end: the current
// parameters, the static surface and the active animation, if any.
type Session struct {
	params sigil.Params
	opts   Options
	seed   int64
	rng    *rand.Rand
	logger *log.Logger

	surface   *render.Surface
	scene     sigil.Scene
	generated bool

	field    *fractal.Field
	fieldKey [2]int

	driver *anim.Driver
}

func New(p sigil.Params, opts Options) *Session {
	if opts.Size < 1 {
		opts.Size = render.DefaultSize
	}
	if opts.Anim.Ticks == 0 && opts.Anim.Interval == 0 {
		opts.Anim = anim.DefaultConfig()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		params:  p,
		opts:    opts,
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
		logger:  logger,
		surface: render.NewSurface(opts.Size),
	}
}

func (s *Session) Params() sigil.Params { return s.params }
func (s *Session) Seed() int64          { return s.seed }
func (s *Session) Size() int            { return s.opts.Size }
func (s *Session) Generated() bool      { return s.generated }

// SetParams replaces the parameters used by the next Generate or Animate.
func (s *Session) SetParams(p sigil.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	return nil
}

// Scene returns the most recently composed static scene.
func (s *Session) Scene() sigil.Scene { return s.scene }

// Animating reports whether an animation is still producing frames.
func (s *Session) Animating() bool {
	return s.driver != nil && s.driver.State() == anim.Running
}

// HasAnimation reports whether the next Save writes a frame sequence.
func (s *Session) HasAnimation() bool { return s.driver != nil }

// Image returns what is currently on screen: the latest animation frame
// while one exists, otherwise the static surface.
func (s *Session) Image() *image.RGBA {
	if s.driver != nil {
		if img := s.driver.Current(); img != nil {
			return img
		}
	}
	return s.surface.Image()
}

// Generate draws a static sigil, discarding any animation.
func (s *Session) Generate() error {
	if err := s.params.Validate(); err != nil {
		return err
	}
	start := time.Now()
	scene, err := sigil.ComposeWithField(s.params, s.rng, s.fieldFor())
	if err != nil {
		return err
	}
	s.stopAnimation()
	s.scene = scene
	s.surface.Draw(scene)
	s.generated = true
	s.logger.Debug("generated sigil", "items", len(scene.Items), "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// Animate starts a new animation and renders its first frame.
func (s *Session) Animate(now time.Time) error {
	d, err := s.newDriver()
	if err != nil {
		return err
	}
	d.Start(now)
	s.logger.Debug("animation started", "ticks", d.Config().Ticks, "interval", d.Config().Interval)
	return nil
}

// Play runs a new animation in real time until its last frame or until ctx
// is cancelled. onFrame, if set, is called after each frame is rendered.
func (s *Session) Play(ctx context.Context, onFrame func(tick int)) error {
	d, err := s.newDriver()
	if err != nil {
		return err
	}
	s.logger.Debug("playing animation", "ticks", d.Config().Ticks, "interval", d.Config().Interval)
	return d.Run(ctx, func(tick int, _ *image.RGBA) {
		if onFrame != nil {
			onFrame(tick)
		}
	})
}

func (s *Session) newDriver() (*anim.Driver, error) {
	if err := s.params.Validate(); err != nil {
		return nil, err
	}
	a, err := sigil.NewAnimationWithField(s.params, s.opts.Anim.Ticks, s.rng, s.fieldFor())
	if err != nil {
		return nil, err
	}
	surface := render.NewSurface(s.opts.Size)
	s.driver = anim.New(s.opts.Anim, func(tick int) *image.RGBA {
		s.scene = a.Frame(tick)
		surface.Draw(s.scene)
		return surface.Snapshot()
	})
	s.generated = true
	return s.driver, nil
}

// Advance steps a running animation; it reports whether a new frame is
// available.
func (s *Session) Advance(now time.Time) bool {
	if s.driver == nil {
		return false
	}
	if !s.driver.Advance(now) {
		return false
	}
	if s.driver.Done() {
		s.logger.Debug("animation finished", "frames", len(s.driver.Frames()))
	}
	return true
}

// Frames renders every remaining tick of the active animation and returns
// the full sequence, or nil when there is none.
func (s *Session) Frames() []*image.RGBA {
	if s.driver == nil {
		return nil
	}
	return s.driver.RenderAll()
}

// Clear blanks the surface and forgets the sigil.
func (s *Session) Clear() {
	s.stopAnimation()
	s.scene = sigil.Scene{}
	s.surface.Clear(sigil.Black)
	s.generated = false
}

func (s *Session) stopAnimation() { s.driver = nil }

// Save writes the animation as a GIF when one exists, otherwise the static
// surface in the format implied by path. It returns the path written.
func (s *Session) Save(path string) (string, error) {
	if !s.generated {
		return "", ErrNoSigil
	}
	if s.driver != nil {
		frames := s.Frames()
		out, err := export.WriteAnimation(path, frames, s.driver.Config().Interval)
		if err != nil {
			return "", err
		}
		s.logger.Info("saved animation", "path", out, "frames", len(frames))
		return out, nil
	}

	format, out, err := export.FormatOf(path, export.PNG)
	if err != nil {
		return "", err
	}
	if format == export.SVG {
		err = export.WriteSVG(out, s.scene, s.opts.Size)
	} else {
		out, err = export.WriteImage(out, s.surface.Snapshot())
	}
	if err != nil {
		return "", err
	}
	s.logger.Info("saved sigil", "path", out, "format", format)
	return out, nil
}

// DefaultName is the file name offered by the save dialog.
func (s *Session) DefaultName() string {
	if s.driver != nil {
		return "sigil.gif"
	}
	return "sigil.png"
}

func (s *Session) fieldFor() *fractal.Field {
	if !s.params.Fractal {
		return nil
	}
	key := [2]int{s.params.Iterations, s.params.FieldSize}
	if s.field == nil || s.fieldKey != key {
		start := time.Now()
		s.field = sigil.FieldFor(s.params)
		s.fieldKey = key
		s.logger.Debug("computed fractal field",
			"size", fmt.Sprintf("%dx%d", s.field.Width, s.field.Height),
			"iterations", s.field.MaxIter,
			"elapsed", time.Since(start).Round(time.Millisecond))
	}
	return s.field
}
