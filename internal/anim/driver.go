package anim

import (
	"context"
	"fmt"
	"image"
	"time"
)

const (
	DefaultTicks    = 60
	DefaultInterval = 100 * time.Millisecond
)

// State of a Driver.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Config struct {
	Ticks    int
	Interval time.Duration
}

func DefaultConfig() Config {
	return Config{Ticks: DefaultTicks, Interval: DefaultInterval}
}

// FrameFunc renders the full surface for tick. The returned image must not
// be modified afterwards.
type FrameFunc func(tick int) *image.RGBA

// Driver advances an animation one full-surface redraw per tick at a fixed
// rate and stops after Config.Ticks ticks.
type Driver struct {
	cfg    Config
	render FrameFunc

	state  State
	tick   int
	last   time.Time
	frames []*image.RGBA
}

func New(cfg Config, render FrameFunc) *Driver {
	if cfg.Ticks < 0 {
		cfg.Ticks = 0
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Driver{cfg: cfg, render: render}
}

func (d *Driver) Config() Config { return d.cfg }
func (d *Driver) State() State   { return d.state }

// Tick is the index of the next frame to render.
func (d *Driver) Tick() int { return d.tick }

// Done reports whether every tick has been rendered.
func (d *Driver) Done() bool { return d.tick >= d.cfg.Ticks }

// Start discards any previous frames and renders tick 0.
func (d *Driver) Start(now time.Time) {
	d.tick = 0
	d.frames = make([]*image.RGBA, 0, d.cfg.Ticks)
	if d.cfg.Ticks == 0 {
		d.state = Idle
		return
	}
	d.state = Running
	d.step(now)
}

// Advance renders the next tick if at least one interval has passed since
// the previous one. It reports whether a frame was rendered.
func (d *Driver) Advance(now time.Time) bool {
	if d.state != Running || now.Sub(d.last) < d.cfg.Interval {
		return false
	}
	d.step(now)
	return true
}

func (d *Driver) step(now time.Time) {
	d.frames = append(d.frames, d.render(d.tick))
	d.tick++
	d.last = now
	if d.Done() {
		d.state = Idle
	}
}

// Current returns the most recent frame, or nil before Start.
func (d *Driver) Current() *image.RGBA {
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}

// Frames returns the frames rendered so far.
func (d *Driver) Frames() []*image.RGBA { return d.frames }

// RenderAll renders any remaining ticks without waiting and returns the
// complete sequence. The driver ends Idle.
func (d *Driver) RenderAll() []*image.RGBA {
	if d.frames == nil {
		d.frames = make([]*image.RGBA, 0, d.cfg.Ticks)
	}
	for !d.Done() {
		d.frames = append(d.frames, d.render(d.tick))
		d.tick++
	}
	d.state = Idle
	return d.frames
}

// Run starts the driver and advances it from a ticker until it finishes or
// ctx is cancelled. onFrame, if set, sees every frame as it is rendered.
func (d *Driver) Run(ctx context.Context, onFrame func(tick int, img *image.RGBA)) error {
	notify := func() {
		if onFrame != nil {
			onFrame(d.tick-1, d.Current())
		}
	}

	d.Start(time.Now())
	if d.state != Running {
		if d.tick > 0 {
			notify()
		}
		return nil
	}
	notify()

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	for d.state == Running {
		select {
		case <-ctx.Done():
			d.state = Idle
			return ctx.Err()
		case now := <-ticker.C:
			d.step(now)
			notify()
		}
	}
	return nil
}
