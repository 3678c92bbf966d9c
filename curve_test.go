package pathbool

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func arch() *Curve {
	return MustParseSVGPath("M0 0C0 10 10 10 10 0")[0].Curves()[0]
}

func TestCurvePos(t *testing.T) {
	c := arch()
	test.T(t, c.PointAt(0.0), Point{0.0, 0.0})
	test.T(t, c.PointAt(1.0), Point{10.0, 0.0})
	p := c.PointAt(0.5)
	test.Float(t, p.X, 5.0)
	test.Float(t, p.Y, 7.5)
}

func TestCurveTangent(t *testing.T) {
	c := arch()
	n := c.TangentAt(0.0)
	test.Float(t, n.X, 0.0)
	test.Float(t, n.Y, 1.0)
	n = c.TangentAt(1.0)
	test.Float(t, n.X, 0.0)
	test.Float(t, n.Y, -1.0)
	n = c.TangentAt(0.5)
	test.Float(t, n.X, 1.0)
	test.Float(t, n.Y, 0.0)

	// zero handles fall back to the next control point
	c = MustParseSVGPath("M0 0C0 0 10 10 10 0")[0].Curves()[0]
	n = c.TangentAt(0.0)
	test.Float(t, n.X, 1.0/math.Sqrt2)
	test.Float(t, n.Y, 1.0/math.Sqrt2)
}

func TestCurveStraight(t *testing.T) {
	c := MustParseSVGPath("M0 0L3 4")[0].Curves()[0]
	test.That(t, c.IsStraight())
	test.Float(t, c.Length(), 5.0)
	test.T(t, c.PointAt(0.5), Point{1.5, 2.0})

	c = MustParseSVGPath("M0 0C1 1 2 2 3 3")[0].Curves()[0]
	test.That(t, c.IsStraight())
	test.That(t, c.HasHandles())

	test.That(t, !arch().IsStraight())
}

func TestCurveLength(t *testing.T) {
	c := MustParseSVGPath("M0 0C0 10 10 10 10 0")[0].Curves()[0]
	l := c.Length()
	test.That(t, 19.0 < l && l < 21.0) // between chord (10) and control polygon (30), close to 20

	tm := c.TimeAt(l / 2.0)
	test.That(t, math.Abs(tm-0.5) < 1e-3)
}

func TestCurveBounds(t *testing.T) {
	c := arch()
	b := c.Bounds()
	test.Float(t, b.X, 0.0)
	test.Float(t, b.Y, 0.0)
	test.Float(t, b.W, 10.0)
	test.Float(t, b.H, 7.5)
}

func TestCurveClassify(t *testing.T) {
	var tts = []struct {
		p     string
		kind  CurveKind
		roots int
	}{
		{"M0 0C1 1 2 2 3 3", KindLine, 0},
		{"M0 0C2 3 -1 3 1 0", KindLoop, 2},
		{"M0 0C2 1 4 -1 6 0", KindSerpentine, 1},
		{"M0 0C0 10 10 10 10 0", KindArch, 0},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			kind, roots := MustParseSVGPath(tt.p)[0].Curves()[0].Classify()
			test.T(t, kind, tt.kind)
			test.T(t, len(roots), tt.roots)
		})
	}
}

func TestCurveMonotone(t *testing.T) {
	c := arch()
	v := c.Values()

	mono := cubicMonoCurves(&v, false) // split on y extrema
	test.T(t, len(mono), 2)
	test.Float(t, mono[0][7], 7.5)
	test.Float(t, mono[1][1], 7.5)

	mono = cubicMonoCurves(&v, true) // x is already monotone
	test.T(t, len(mono), 1)
}

func TestCurveTimeOf(t *testing.T) {
	c := arch()
	test.Float(t, c.TimeOf(Point{0.0, 0.0}), 0.0)
	test.Float(t, c.TimeOf(Point{10.0, 0.0}), 1.0)
	test.Float(t, c.TimeOf(Point{5.0, 7.5}), 0.5)
	test.T(t, c.TimeOf(Point{5.0, 5.0}), -1.0)
}

func TestCurveNearest(t *testing.T) {
	c := MustParseSVGPath("M0 0L10 0")[0].Curves()[0]
	p := c.NearestPoint(Point{4.0, 3.0})
	test.That(t, p.Close(Point{4.0, 0.0}, 1e-6)) // scan plus refinement, not exact
	p = c.NearestPoint(Point{-2.0, 1.0})
	test.T(t, p, Point{0.0, 0.0})
}

func TestCurveDivideAtTime(t *testing.T) {
	p := MustParseSVGPath("M0 0C0 10 10 10 10 0")[0]
	c := p.Curves()[0]
	c2 := c.DivideAtTime(0.5)

	test.T(t, len(p.Segments()), 3)
	test.T(t, len(p.Curves()), 2)
	mid := p.Segments()[1].Point()
	test.Float(t, mid.X, 5.0)
	test.Float(t, mid.Y, 7.5)
	test.T(t, c.seg2, c2.seg1)
	test.T(t, c2.seg2.Point(), Point{10.0, 0.0})
	test.T(t, c.Index(), 0)
	test.T(t, c2.Index(), 1)

	// the halves join smoothly at the split point
	test.Float(t, c.PointAt(1.0).X, 5.0)
	test.Float(t, c2.PointAt(0.0).Y, 7.5)
}

func TestCurveArea(t *testing.T) {
	p := MustParseSVGPath("M0 0L10 0L10 10L0 10z")[0]
	test.Float(t, p.Area(), 100.0)
	p.Reverse()
	test.Float(t, p.Area(), -100.0)
}
