package pathbool

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestPathBuild(t *testing.T) {
	p := &Path{}
	test.That(t, p.Empty())
	p.MoveTo(0.0, 0.0)
	p.LineTo(10.0, 0.0)
	p.LineTo(10.0, 10.0)
	p.LineTo(0.0, 10.0)
	p.Close()
	test.That(t, p.Closed())
	test.T(t, len(p.Segments()), 4)
	test.T(t, len(p.Curves()), 4)
	test.T(t, p.String(), "M0 0L10 0L10 10L0 10z")

	// closing on a line back to the start merges the last anchor
	p = &Path{}
	p.MoveTo(0.0, 0.0)
	p.LineTo(10.0, 0.0)
	p.LineTo(10.0, 10.0)
	p.LineTo(0.0, 10.0)
	p.LineTo(0.0, 0.0)
	p.Close()
	test.T(t, len(p.Segments()), 4)
}

func TestPathQuadTo(t *testing.T) {
	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.QuadTo(5.0, 10.0, 10.0, 0.0)
	test.That(t, p.Segments()[0].HandleOut().Close(Point{10.0 / 3.0, 20.0 / 3.0}, Epsilon))
	test.That(t, p.Segments()[1].HandleIn().Close(Point{-10.0 / 3.0, 20.0 / 3.0}, Epsilon))
}

func TestPathArea(t *testing.T) {
	var tts = []struct {
		p    string
		area float64
	}{
		{"M0 0L10 0L10 10L0 10z", 100.0},
		{"M0 0L0 10L10 10L10 0z", -100.0},
		{"M0 0L10 0L5 10z", 50.0},
		{"M0 0L10 0L10 10", 50.0}, // open paths are closed by their chord
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			p := MustParseSVGPath(tt.p)[0]
			test.Float(t, p.Area(), tt.area)
			test.T(t, p.CCW(), 0.0 < tt.area)
		})
	}
}

func TestPathReverse(t *testing.T) {
	p := MustParseSVGPath("M0 0C0 10 10 10 10 0L20 0z")[0]
	s := p.String()
	q := p.Clone()
	q.Reverse()
	test.Float(t, q.Area(), -p.Area())
	q.Reverse()
	test.T(t, q.String(), s)
}

func TestPathSetCCW(t *testing.T) {
	p := MustParseSVGPath("M0 0L0 10L10 10L10 0z")[0]
	test.That(t, !p.CCW())
	p.SetCCW(true)
	test.That(t, p.CCW())
	p.SetCCW(true)
	test.That(t, p.CCW())
}

func TestPathClone(t *testing.T) {
	p := MustParseSVGPath("M0 0L10 0L10 10z")[0]
	q := p.Clone()
	q.Segments()[0].SetPoint(Point{-5.0, 0.0})
	test.T(t, p.String(), "M0 0L10 0L10 10z")
	test.T(t, q.String(), "M-5 0L10 0L10 10z")
}

func TestPathBounds(t *testing.T) {
	// axis-aligned edges have zero-thickness curve boxes
	p := MustParseSVGPath("M0 0L10 0L10 10L0 10z")[0]
	test.T(t, p.Bounds(), Rect{0.0, 0.0, 10.0, 10.0})

	p = MustParseSVGPath("M0 0L10 0")[0]
	test.T(t, p.Bounds(), Rect{0.0, 0.0, 10.0, 0.0})

	p = MustParseSVGPath("M0 0C0 10 10 10 10 0z")[0]
	test.T(t, p.Bounds(), Rect{0.0, 0.0, 10.0, 7.5})
}

func TestPathString(t *testing.T) {
	// z implies the closing line, but a curved closing segment is written out
	var tts = []string{
		"M0 0L10 0L10 10L0 10z",
		"M0 0C0 10 10 10 10 0C10 -10 0 -10 0 0z",
		"M0 0L10 0L10 10",
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, MustParseSVGPath(tt)[0].String(), tt)
		})
	}
}

func TestPathTransform(t *testing.T) {
	p := MustParseSVGPath("M0 0L10 0L10 10L0 10z")[0]
	p.Transform(Identity.Translate(5.0, -5.0))
	test.T(t, p.Bounds(), Rect{5.0, -5.0, 10.0, 10.0})
	test.Float(t, p.Area(), 100.0)

	p.Transform(Identity.Scale(1.0, -1.0))
	test.Float(t, p.Area(), -100.0)
}

func TestPathContains(t *testing.T) {
	var tts = []struct {
		p        string
		pt       Point
		fillRule FillRule
		inside   bool
	}{
		{"M0 0L10 0L10 10L0 10z", Point{5.0, 5.0}, NonZero, true},
		{"M0 0L10 0L10 10L0 10z", Point{15.0, 5.0}, NonZero, false},
		{"M0 0L10 0L10 10L0 10z", Point{5.0, -5.0}, NonZero, false},
		{"M0 0L20 0L20 20L0 20zM5 5L15 5L15 15L5 15z", Point{10.0, 10.0}, NonZero, true},
		{"M0 0L20 0L20 20L0 20zM5 5L15 5L15 15L5 15z", Point{10.0, 10.0}, EvenOdd, false},
		{"M0 0L20 0L20 20L0 20zM5 5L15 5L15 15L5 15z", Point{2.0, 10.0}, EvenOdd, true},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			ps := MustParseSVGPath(tt.p)
			test.T(t, ps.Contains(tt.pt, tt.fillRule), tt.inside)
		})
	}
}

func TestPathInteriorPoint(t *testing.T) {
	var tts = []string{
		"M0 0L10 0L10 10L0 10z",
		"M0 0L10 0L5 1z", // bounds center lies outside
		"M0 0C0 10 10 10 10 0z",
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			p := MustParseSVGPath(tt)[0]
			test.That(t, p.Contains(p.InteriorPoint(), NonZero))
		})
	}
}

func TestPathCoincides(t *testing.T) {
	p := MustParseSVGPath("M0 0L10 0L10 10L0 10z")[0]
	q := MustParseSVGPath("M10 10L0 10L0 0L10 0z")[0] // same contour, rotated start
	test.That(t, p.coincides(q))

	r := MustParseSVGPath("M0 0L10 0L10 10L1 10z")[0]
	test.That(t, !p.coincides(r))
}

func TestPathRemoveSegments(t *testing.T) {
	p := MustParseSVGPath("M0 0L10 0L10 10L0 10z")[0]
	seg := p.Segments()[2]
	p.removeSegments(2)
	test.T(t, len(p.Segments()), 2)
	test.That(t, seg.Path() == nil)
	test.T(t, p.Segments()[1].Index(), 1)
}

func TestPaths(t *testing.T) {
	ps := MustParseSVGPath("M0 0L10 0L10 10L0 10zM20 0L30 0L30 10L20 10z")
	test.T(t, len(ps), 2)
	test.Float(t, ps.Area(), 200.0)
	test.T(t, ps.Bounds(), Rect{0.0, 0.0, 30.0, 10.0})
	test.Float(t, ps.Length(), 80.0)

	qs := ps.Clone()
	qs.Reverse()
	test.Float(t, qs.Area(), -200.0)
	test.Float(t, ps.Area(), 200.0)
}
