package pathbool

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestShapeLine(t *testing.T) {
	p := Line(3.0, 4.0)
	test.That(t, !p.Closed())
	test.Float(t, p.Length(), 5.0)
	test.That(t, Line(0.0, 0.0).Empty())
}

func TestShapeRectangle(t *testing.T) {
	p := Rectangle(10.0, 5.0)
	test.T(t, p.String(), "M0 0L10 0L10 5L0 5z")
	test.Float(t, p.Area(), 50.0)
	test.That(t, p.CCW())
	test.That(t, Rectangle(0.0, 5.0).Empty())

	test.Float(t, Square(4.0).Area(), 16.0)
}

func TestShapeRoundedRectangle(t *testing.T) {
	p := RoundedRectangle(10.0, 6.0, 2.0)
	test.That(t, p.Closed())
	test.T(t, p.Bounds(), Rect{0.0, 0.0, 10.0, 6.0})
	want := 60.0 - (4.0-math.Pi)*4.0
	test.That(t, math.Abs(p.Area()-want) < 0.05)

	// zero radius degrades to a plain rectangle
	test.T(t, RoundedRectangle(10.0, 6.0, 0.0).String(), Rectangle(10.0, 6.0).String())
}

func TestShapeCircle(t *testing.T) {
	p := Circle(10.0)
	test.That(t, p.Closed())
	test.That(t, p.CCW())
	test.T(t, p.Bounds(), Rect{-10.0, -10.0, 20.0, 20.0})
	test.That(t, math.Abs(p.Area()-100.0*math.Pi) < 0.5)
	test.That(t, math.Abs(p.Length()-20.0*math.Pi) < 0.5)
	test.That(t, p.Contains(Point{0.0, 0.0}, NonZero))
	test.That(t, !p.Contains(Point{9.0, 9.0}, NonZero))
}

func TestShapeEllipse(t *testing.T) {
	p := Ellipse(10.0, 5.0)
	test.T(t, p.Bounds(), Rect{-10.0, -5.0, 20.0, 10.0})
	test.That(t, math.Abs(p.Area()-50.0*math.Pi) < 0.3)
	test.That(t, Ellipse(10.0, 0.0).Empty())
}

func TestShapeRegularPolygon(t *testing.T) {
	p := RegularPolygon(4, 5.0, false)
	test.T(t, len(p.Segments()), 4)
	test.Float(t, p.Area(), 50.0)
	test.That(t, p.CCW())

	hexagon := RegularPolygon(6, 2.0, true)
	test.Float(t, hexagon.Area(), 1.5*math.Sqrt(3.0)*4.0)

	test.That(t, RegularPolygon(2, 5.0, false).Empty())
}
