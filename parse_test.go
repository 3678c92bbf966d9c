package pathbool

import (
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestParseSVGPath(t *testing.T) {
	var tts = []struct {
		orig string
		want string
	}{
		{"M10 0L20 0L20 10z", "M10 0L20 0L20 10z"},
		{"m10 0l10 0l0 10z", "M10 0L20 0L20 10z"},
		{"M10 0 20 0 20 10z", "M10 0L20 0L20 10z"}, // implicit line-tos
		{"m10 0 10 0 0 10z", "M10 0L20 0L20 10z"},
		{"M0 0H10V10H0z", "M0 0L10 0L10 10L0 10z"},
		{"M0 0h10v10h-10z", "M0 0L10 0L10 10L0 10z"},
		{"M0 0C0 10 10 10 10 0", "M0 0C0 10 10 10 10 0"},
		{"M0 0c0 10 10 10 10 0", "M0 0C0 10 10 10 10 0"},
		{"M0,0 L10,0 L10,10 z", "M0 0L10 0L10 10z"},
		{"L10 0L10 10", "M0 0L10 0L10 10"}, // drawing without a moveto starts at the origin
		{"M0 0L10 0L10 10L0 0z", "M0 0L10 0L10 10z"},    // closing line is merged
		{"M0 0L1 0L1 1zM2 0L3 0L3 1z", "M0 0L1 0L1 1z"}, // first contour of two
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			ps, err := ParseSVGPath(tt.orig)
			test.Error(t, err)
			test.T(t, ps[0].String(), tt.want)
		})
	}
}

func TestParseSVGPathMulti(t *testing.T) {
	ps := MustParseSVGPath("M0 0L1 0L1 1zM2 0L3 0L3 1z")
	test.T(t, len(ps), 2)
	test.T(t, ps[1].String(), "M2 0L3 0L3 1z")

	// open and closed contours mix
	ps = MustParseSVGPath("M0 0L1 0M2 0L3 0L3 1z")
	test.T(t, len(ps), 2)
	test.That(t, !ps[0].Closed())
	test.That(t, ps[1].Closed())
}

func TestParseSVGPathSmooth(t *testing.T) {
	// S reflects the previous cubic control point
	ps := MustParseSVGPath("M0 0C0 10 10 10 10 0S20 -10 20 0")
	segs := ps[0].Segments()
	test.T(t, segs[1].Point(), Point{10.0, 0.0})
	test.T(t, segs[1].HandleOut(), Point{0.0, -10.0})

	// T reflects the previous quadratic control point
	ps = MustParseSVGPath("M0 0Q5 10 10 0T20 0")
	segs = ps[0].Segments()
	test.T(t, segs[1].Point(), Point{10.0, 0.0})
	test.That(t, segs[1].HandleOut().Close(Point{10.0 / 3.0, -20.0 / 3.0}, Epsilon))
}

func TestParseSVGPathErrors(t *testing.T) {
	var tts = []string{
		"10 0",
		"M10",
		"M0 0L10",
		"M0 0A5 5 0 0 0 10 0",
		"M0 0X10 0",
		"M0 0z10 10",
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := ParseSVGPath(tt)
			test.That(t, err != nil)
		})
	}
}
