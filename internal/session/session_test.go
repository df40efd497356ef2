package session_test

import (
	"context"
	"errors"
	"image/gif"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sigilgen/internal/anim"
	"github.com/san-kum/sigilgen/internal/palette"
	"github.com/san-kum/sigilgen/internal/session"
	"github.com/san-kum/sigilgen/internal/sigil"
)

type message struct{ title, msg string }

type fakeDialogs struct {
	path  string
	err   error
	asked []string
	warns []message
	errs  []message
	infos []message
}

func (f *fakeDialogs) SavePath(defaultName string) (string, error) {
	f.asked = append(f.asked, defaultName)
	return f.path, f.err
}
func (f *fakeDialogs) Warn(title, msg string)  { f.warns = append(f.warns, message{title, msg}) }
func (f *fakeDialogs) Error(title, msg string) { f.errs = append(f.errs, message{title, msg}) }
func (f *fakeDialogs) Info(title, msg string)  { f.infos = append(f.infos, message{title, msg}) }

func smallParams() sigil.Params {
	p := sigil.DefaultParams()
	p.FieldSize = 24
	p.Iterations = 20
	p.Theme = palette.ThemeWarm
	return p
}

func newSession(seed int64) *session.Session {
	return session.New(smallParams(), session.Options{
		Size:   64,
		Anim:   anim.Config{Ticks: 5, Interval: 10 * time.Millisecond},
		Seed:   seed,
		Logger: log.New(GinkgoWriter),
	})
}

func entries(dir string) []os.DirEntry {
	des, err := os.ReadDir(dir)
	Expect(err).NotTo(HaveOccurred())
	return des
}

var _ = Describe("Session", func() {
	var (
		s   *session.Session
		dir string
	)

	BeforeEach(func() {
		s = newSession(42)
		dir = GinkgoT().TempDir()
	})

	Describe("saving before generating", func() {
		It("fails with ErrNoSigil", func() {
			_, err := s.Save(filepath.Join(dir, "out.png"))
			Expect(err).To(MatchError(session.ErrNoSigil))
			Expect(entries(dir)).To(BeEmpty())
		})

		It("warns and never opens the save dialog", func() {
			d := &fakeDialogs{path: filepath.Join(dir, "out.png")}
			err := s.SaveWithDialogs(d)

			Expect(errors.Is(err, session.ErrNoSigil)).To(BeTrue())
			Expect(d.warns).To(HaveLen(1))
			Expect(d.warns[0].title).To(Equal("No Sigil"))
			Expect(d.asked).To(BeEmpty())
			Expect(d.infos).To(BeEmpty())
			Expect(entries(dir)).To(BeEmpty())
			Expect(s.Generated()).To(BeFalse())
		})
	})

	Describe("a static sigil", func() {
		BeforeEach(func() {
			Expect(s.Generate()).To(Succeed())
		})

		It("is marked generated with a composed scene", func() {
			Expect(s.Generated()).To(BeTrue())
			Expect(s.HasAnimation()).To(BeFalse())
			Expect(s.Scene().Items).NotTo(BeEmpty())
			Expect(s.Image().Bounds().Dx()).To(Equal(64))
		})

		It("saves as PNG when no extension is given", func() {
			out, err := s.Save(filepath.Join(dir, "sigil"))
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HaveSuffix("sigil.png"))
			Expect(out).To(BeARegularFile())
		})

		It("saves vector output for .svg", func() {
			out, err := s.Save(filepath.Join(dir, "sigil.svg"))
			Expect(err).NotTo(HaveOccurred())
			data, err := os.ReadFile(out)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("<svg"))
		})

		It("reports success through an info dialog", func() {
			d := &fakeDialogs{path: filepath.Join(dir, "mine.png")}
			Expect(s.SaveWithDialogs(d)).To(Succeed())
			Expect(d.asked).To(Equal([]string{"sigil.png"}))
			Expect(d.infos).To(HaveLen(1))
			Expect(d.infos[0].msg).To(Equal("Sigil saved as mine.png"))
			Expect(filepath.Join(dir, "mine.png")).To(BeARegularFile())
		})

		It("does nothing when the dialog is cancelled", func() {
			d := &fakeDialogs{err: session.ErrCanceled}
			Expect(s.SaveWithDialogs(d)).To(Succeed())
			Expect(d.warns).To(BeEmpty())
			Expect(d.errs).To(BeEmpty())
			Expect(d.infos).To(BeEmpty())
			Expect(entries(dir)).To(BeEmpty())
		})

		It("treats an empty path as cancelled", func() {
			d := &fakeDialogs{}
			Expect(s.SaveWithDialogs(d)).To(Succeed())
			Expect(d.errs).To(BeEmpty())
			Expect(d.infos).To(BeEmpty())
		})

		It("shows I/O failures in an error dialog", func() {
			d := &fakeDialogs{path: filepath.Join(dir, "missing", "out.png")}
			err := s.SaveWithDialogs(d)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
			Expect(d.errs).To(HaveLen(1))
			Expect(d.errs[0].title).To(Equal("Error"))
			Expect(d.errs[0].msg).To(ContainSubstring(err.Error()))
			Expect(d.infos).To(BeEmpty())
		})

		It("shows unsupported formats in an error dialog", func() {
			d := &fakeDialogs{path: filepath.Join(dir, "out.webp")}
			Expect(s.SaveWithDialogs(d)).NotTo(Succeed())
			Expect(d.errs).To(HaveLen(1))
			Expect(entries(dir)).To(BeEmpty())
		})

		It("forgets the sigil on Clear", func() {
			s.Clear()
			Expect(s.Generated()).To(BeFalse())
			scene := s.Scene()
			Expect(scene.Empty()).To(BeTrue())
			_, err := s.Save(filepath.Join(dir, "out.png"))
			Expect(err).To(MatchError(session.ErrNoSigil))
		})
	})

	Describe("an animation", func() {
		var start time.Time

		BeforeEach(func() {
			start = time.Now()
			Expect(s.Animate(start)).To(Succeed())
		})

		It("renders the first frame immediately", func() {
			Expect(s.Animating()).To(BeTrue())
			Expect(s.HasAnimation()).To(BeTrue())
			Expect(s.Image()).NotTo(BeNil())
		})

		It("advances once per interval and then stops", func() {
			Expect(s.Advance(start)).To(BeFalse())
			now := start
			steps := 0
			for s.Animating() {
				now = now.Add(10 * time.Millisecond)
				if s.Advance(now) {
					steps++
				}
			}
			Expect(steps).To(Equal(4))
			Expect(s.Advance(now.Add(time.Second))).To(BeFalse())
		})

		It("saves the full sequence as a GIF", func() {
			d := &fakeDialogs{path: filepath.Join(dir, "spin")}
			Expect(s.SaveWithDialogs(d)).To(Succeed())
			Expect(d.asked).To(Equal([]string{"sigil.gif"}))
			Expect(d.infos[0].msg).To(Equal("Animated sigil saved as spin.gif"))

			f, err := os.Open(filepath.Join(dir, "spin.gif"))
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()
			g, err := gif.DecodeAll(f)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Image).To(HaveLen(5))
			Expect(s.Animating()).To(BeFalse())
		})

		It("is discarded by a static Generate", func() {
			Expect(s.Generate()).To(Succeed())
			Expect(s.HasAnimation()).To(BeFalse())
			out, err := s.Save(filepath.Join(dir, "still.png"))
			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.Ext(out)).To(Equal(".png"))
		})

		It("is discarded by Clear", func() {
			s.Clear()
			Expect(s.HasAnimation()).To(BeFalse())
			Expect(s.Advance(start.Add(time.Second))).To(BeFalse())
		})
	})

	Describe("playing in real time", func() {
		It("renders every frame and leaves the sequence ready to save", func() {
			var ticks []int
			Expect(s.Play(context.Background(), func(tick int) {
				ticks = append(ticks, tick)
			})).To(Succeed())
			Expect(ticks).To(Equal([]int{0, 1, 2, 3, 4}))
			Expect(s.Animating()).To(BeFalse())

			out, err := s.Save(filepath.Join(dir, "live"))
			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.Ext(out)).To(Equal(".gif"))
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := s.Play(ctx, nil)
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
			Expect(s.Animating()).To(BeFalse())
		})

		It("rejects invalid parameters before rendering", func() {
			p := smallParams()
			p.Iterations = 0
			s = session.New(p, session.Options{Logger: log.New(GinkgoWriter)})
			Expect(errors.Is(s.Play(context.Background(), nil), sigil.ErrInvalidParams)).To(BeTrue())
			Expect(s.Generated()).To(BeFalse())
		})
	})

	Describe("parameters", func() {
		It("rejects invalid values", func() {
			p := smallParams()
			p.Iterations = 0
			err := s.SetParams(p)
			Expect(errors.Is(err, sigil.ErrInvalidParams)).To(BeTrue())
			Expect(s.Params()).To(Equal(smallParams()))
		})

		It("is reproducible for a fixed seed", func() {
			a, b := newSession(7), newSession(7)
			Expect(a.Generate()).To(Succeed())
			Expect(b.Generate()).To(Succeed())
			Expect(a.Image().Pix).To(Equal(b.Image().Pix))
		})

		It("draws a fresh seed when none is set", func() {
			s := session.New(smallParams(), session.Options{})
			Expect(s.Seed()).NotTo(BeZero())
			Expect(s.Size()).To(Equal(600))
		})
	})
})
