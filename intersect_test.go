package pathbool

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/tdewolff/test"
)

func locPoints(locs []*CurveLocation) []Point {
	pts := make([]Point, len(locs))
	for i, loc := range locs {
		pts[i] = loc.Point
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	return pts
}

func TestPathIntersections(t *testing.T) {
	var tts = []struct {
		p, q string
		pts  []Point
	}{
		// squares crossing at two corners of the overlap region
		{"M0 0L10 0L10 10L0 10z", "M5 5L15 5L15 15L5 15z", []Point{{5.0, 10.0}, {10.0, 5.0}}},
		// line through a square
		{"M0 0L10 0L10 10L0 10z", "M-5 5L15 5", []Point{{0.0, 5.0}, {10.0, 5.0}}},
		// disjoint squares
		{"M0 0L10 0L10 10L0 10z", "M20 0L30 0L30 10L20 10z", nil},
		// touching at a single corner
		{"M0 0L10 0L10 10L0 10z", "M10 10L20 10L20 20L10 20z", []Point{{10.0, 10.0}}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			p := MustParseSVGPath(tt.p)[0]
			q := MustParseSVGPath(tt.q)[0]
			locs := p.Intersections(q)
			test.T(t, len(locs), 2*len(tt.pts)) // each intersection is reported from both operands
			pts := locPoints(locs)
			for j, want := range tt.pts {
				test.That(t, pts[2*j].Close(want, Epsilon))
				test.That(t, pts[2*j+1].Close(want, Epsilon))
			}

			// symmetric in its operands
			locs2 := q.Intersections(p)
			test.T(t, len(locs2), len(locs))
		})
	}
}

func TestCurveLineIntersections(t *testing.T) {
	p := MustParseSVGPath("M0 0C0 10 10 10 10 0")[0]
	q := MustParseSVGPath("M-5 5L15 5")[0]
	locs := p.Intersections(q)
	test.T(t, len(locs), 4)
	for _, loc := range locs {
		test.That(t, math.Abs(loc.Point.Y-5.0) < 1e-7)
	}
}

func TestCurveCurveIntersections(t *testing.T) {
	c1 := MustParseSVGPath("M0 0C0 10 10 10 10 0")[0].Curves()[0]
	c2 := MustParseSVGPath("M0 7C0 -3 10 -3 10 7")[0].Curves()[0]
	locs := c1.Intersections(c2)
	test.T(t, len(locs), 4)
	for _, loc := range locs {
		other := locs[loc.Partner]
		test.That(t, loc.Point.Close(other.Point, 1e-6))
	}
}

func TestSelfIntersections(t *testing.T) {
	// bowtie crossing itself at the center
	p := MustParseSVGPath("M0 0L10 10L10 0L0 10z")[0]
	locs := p.SelfIntersections()
	test.T(t, len(locs), 2)
	test.That(t, locs[0].Point.Close(Point{5.0, 5.0}, Epsilon))
	test.That(t, locs[1].Point.Close(Point{5.0, 5.0}, Epsilon))

	// a single curve with a loop
	p = MustParseSVGPath("M0 0C20 30 -10 30 10 0")[0]
	locs = p.SelfIntersections()
	test.T(t, len(locs), 2)
	test.That(t, locs[0].Point.Close(locs[1].Point, 1e-6))
	test.That(t, locs[0].Time < locs[1].Time)

	// a plain square does not intersect itself
	p = MustParseSVGPath("M0 0L10 0L10 10L0 10z")[0]
	test.T(t, len(p.SelfIntersections()), 0)
}

func TestOverlapIntersections(t *testing.T) {
	// identical squares overlap along all edges
	p := MustParseSVGPath("M0 0L10 0L10 10L0 10z")[0]
	q := p.Clone()
	locs := p.Intersections(q)
	test.That(t, 0 < len(locs))
	for _, loc := range locs {
		test.That(t, loc.Overlap)
	}

	// partially shared edge
	p = MustParseSVGPath("M0 0L10 0L10 10L0 10z")[0]
	q = MustParseSVGPath("M10 2L20 2L20 8L10 8z")[0]
	locs = p.Intersections(q)
	overlaps := 0
	for _, loc := range locs {
		if loc.Overlap {
			overlaps++
		}
	}
	test.That(t, 0 < overlaps)
}

func TestIntersectionDedup(t *testing.T) {
	c1 := MustParseSVGPath("M0 0L10 10")[0].Curves()[0]
	c2 := MustParseSVGPath("M0 10L10 0")[0].Curves()[0]

	s := newLocationSet()
	s.add(c1, 0.5, c2, 0.5, false, nil)
	s.add(c1, 0.5+1e-9, c2, 0.5-1e-9, false, nil)
	test.T(t, len(s.order), 1)

	// clearly distinct times are kept apart
	s.add(c1, 0.25, c2, 0.75, false, nil)
	test.T(t, len(s.order), 2)
}

func TestIntersectionAdjacency(t *testing.T) {
	// neighbouring curves of one path meet at their shared anchor, which is not an intersection
	p := MustParseSVGPath("M0 0L10 0L10 10L0 10z")[0]
	curves := p.Curves()
	s := newLocationSet()
	s.curveIntersections(valuesOf(curves[0]), valuesOf(curves[1]), curves[0], curves[1], nil)
	test.T(t, len(s.order), 0)
}

func valuesOf(c *Curve) *[8]float64 {
	v := c.Values()
	return &v
}
