package pathbool

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestWindingAt(t *testing.T) {
	var tts = []struct {
		p       string
		pt      Point
		winding int
		onPath  bool
	}{
		{"M0 0L10 0L10 10L0 10z", Point{5.0, 5.0}, 1, false},
		{"M0 0L0 10L10 10L10 0z", Point{5.0, 5.0}, 1, false}, // clockwise, same magnitude
		{"M0 0L10 0L10 10L0 10z", Point{20.0, 5.0}, 0, false},
		{"M0 0L10 0L10 10L0 10z", Point{-5.0, 5.0}, 0, false},
		{"M0 0L10 0L10 10L0 10z", Point{5.0, 15.0}, 0, false},
		{"M0 0L10 0L10 10L0 10z", Point{0.0, 5.0}, 1, true},
		{"M0 0L10 0L10 10L0 10z", Point{5.0, 0.0}, 1, true},
		{"M0 0L10 0L10 10L0 10z", Point{10.0, 10.0}, 1, true},
		// overlapping contours wind twice
		{"M0 0L10 0L10 10L0 10zM5 5L15 5L15 15L5 15z", Point{7.0, 7.0}, 2, false},
		// a hole drawn in reverse cancels the winding
		{"M0 0L20 0L20 20L0 20zM5 5L5 15L15 15L15 5z", Point{10.0, 10.0}, 0, false},
		{"M0 0L20 0L20 20L0 20zM5 5L5 15L15 15L15 5z", Point{2.0, 10.0}, 1, false},
		// curved contour
		{"M0 0C0 10 10 10 10 0z", Point{5.0, 3.0}, 1, false},
		{"M0 0C0 10 10 10 10 0z", Point{5.0, 8.0}, 0, false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			ps := MustParseSVGPath(tt.p)
			w := ps.WindingAt(tt.pt)
			test.T(t, w.Winding, tt.winding)
			test.T(t, w.OnPath, tt.onPath)
		})
	}
}

func TestWindingQuality(t *testing.T) {
	p := MustParseSVGPath("M0 0L10 0L10 10L0 10z")[0]
	w := p.WindingAt(Point{5.0, 5.0})
	test.Float(t, w.Quality, 1.0)

	// a ray through the anchors is less reliable
	w = p.WindingAt(Point{5.0, 10.0})
	test.That(t, w.Quality < 1.0 || w.OnPath)
}

func TestWindingSides(t *testing.T) {
	p := MustParseSVGPath("M0 0L10 0L10 10L0 10z")[0]

	// interior points wind on both sides
	w := p.WindingAt(Point{5.0, 5.0})
	test.T(t, w.WindingL, 1)
	test.T(t, w.WindingR, 1)

	// on the left edge only the right side is covered
	w = p.WindingAt(Point{0.0, 5.0})
	test.That(t, w.OnPath)
	test.T(t, w.Winding, 1)
}

func TestWindingRayDirection(t *testing.T) {
	curves := MustParseSVGPath("M0 0L10 0L10 10L0 10z")[0].Curves()
	pt := Point{5.0, 5.0}
	w1 := windingAt(pt, curves, false, false, false)
	w2 := windingAt(pt, curves, true, false, false)
	test.T(t, w1.Winding, w2.Winding)
}

func TestWindingOpenPath(t *testing.T) {
	// open paths are implicitly closed by their chord
	p := MustParseSVGPath("M0 0L10 0L10 10L0 10")[0]
	w := p.WindingAt(Point{5.0, 5.0})
	test.T(t, w.Winding, 1)
	w = p.WindingAt(Point{15.0, 5.0})
	test.T(t, w.Winding, 0)
}
