package fractal_test

import (
	"github.com/san-kum/sigilgen/internal/fractal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func point(re, im float64) fractal.Viewport {
	return fractal.Viewport{XMin: re, XMax: re, YMin: im, YMax: im}
}

var _ = Describe("Field", func() {
	DescribeTable("dimensions and bounds",
		func(h, w, n int) {
			f := fractal.Compute(h, w, n)
			Expect(f.Height).To(Equal(h))
			Expect(f.Width).To(Equal(w))
			Expect(f.Counts).To(HaveLen(h * w))
			for _, c := range f.Counts {
				Expect(c).To(BeNumerically(">=", 0))
				Expect(c).To(BeNumerically("<=", n))
			}
		},
		Entry("single pixel", 1, 1, 1),
		Entry("single row", 1, 17, 5),
		Entry("single column", 13, 1, 20),
		Entry("non-square", 31, 47, 50),
		Entry("square", 64, 64, 100),
	)

	It("never lets the origin escape", func() {
		for _, n := range []int{1, 10, 50, 250} {
			f := fractal.ComputeViewport(1, 1, n, point(0, 0))
			Expect(f.At(0, 0)).To(Equal(n))
		}
	})

	It("lets 2+2i escape within a few steps", func() {
		f := fractal.ComputeViewport(1, 1, 50, point(2, 2))
		Expect(f.At(0, 0)).To(BeNumerically("<=", 2))
	})

	It("keeps the main cardioid inside the set", func() {
		f := fractal.ComputeViewport(1, 1, 200, point(-0.25, 0.1))
		Expect(f.At(0, 0)).To(Equal(200))
	})

	It("samples the viewport with inclusive endpoints", func() {
		f := fractal.Compute(3, 3, 30)
		// centre pixel maps to c = -0.5 which lies inside the set
		Expect(f.At(1, 1)).To(Equal(30))
		// corners diverge quickly
		Expect(f.At(0, 0)).To(BeNumerically("<", 5))
		Expect(f.At(2, 2)).To(BeNumerically("<", 30))
	})

	It("is deterministic", func() {
		a := fractal.Compute(50, 60, 40)
		b := fractal.Compute(50, 60, 40)
		Expect(a.Equal(b)).To(BeTrue())
	})

	It("distinguishes fields over different viewports", func() {
		a := fractal.ComputeViewport(3, 3, 0, fractal.DefaultViewport)
		b := fractal.ComputeViewport(3, 3, 0, fractal.Viewport{XMin: -1, XMax: 1, YMin: -1, YMax: 1})
		Expect(a.Counts).To(Equal(b.Counts))
		Expect(a.Equal(b)).To(BeFalse())
	})

	It("yields all zeros for a zero iteration bound", func() {
		f := fractal.Compute(4, 4, 0)
		for _, c := range f.Counts {
			Expect(c).To(BeZero())
		}
		Expect(f.Normalized(0, 0)).To(BeZero())
	})

	It("clamps negative dimensions to an empty field", func() {
		f := fractal.Compute(-3, 5, 10)
		Expect(f.Counts).To(BeEmpty())
		lo, hi := f.Range()
		Expect(lo).To(BeZero())
		Expect(hi).To(BeZero())
	})

	Describe("Histogram", func() {
		It("accounts for every pixel", func() {
			f := fractal.Compute(20, 30, 25)
			h := f.Histogram(8)
			Expect(h).To(HaveLen(8))
			total := 0.0
			for _, v := range h {
				total += v
			}
			Expect(total).To(Equal(float64(20 * 30)))
		})

		It("puts bounded points in the last bin", func() {
			f := fractal.ComputeViewport(1, 1, 50, point(0, 0))
			h := f.Histogram(10)
			Expect(h[9]).To(Equal(1.0))
		})

		It("falls back to one bin", func() {
			f := fractal.Compute(2, 2, 10)
			Expect(f.Histogram(0)).To(HaveLen(1))
		})
	})

	Describe("Normalized", func() {
		It("stays in the unit interval", func() {
			f := fractal.Compute(16, 16, 12)
			for i := 0; i < f.Height; i++ {
				for j := 0; j < f.Width; j++ {
					v := f.Normalized(i, j)
					Expect(v).To(BeNumerically(">=", 0))
					Expect(v).To(BeNumerically("<=", 1))
				}
			}
		})
	})
})
