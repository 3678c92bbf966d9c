package pathbool

import (
	"math"
)

// kappa scales the handles of a quarter arc so that the cubic stays within 0.03% of the circle.
const kappa = 4.0 / 3.0 * (math.Sqrt2 - 1.0)

// Line returns an open line segment from (0,0) to (x,y).
func Line(x, y float64) *Path {
	if equal(x, 0.0) && equal(y, 0.0) {
		return &Path{}
	}

	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.LineTo(x, y)
	return p
}

// Rectangle returns a rectangle of width w and height h, with its lower left corner at the origin, wound counter clockwise.
func Rectangle(w, h float64) *Path {
	if equal(w, 0.0) || equal(h, 0.0) {
		return &Path{}
	}

	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.LineTo(w, 0.0)
	p.LineTo(w, h)
	p.LineTo(0.0, h)
	p.Close()
	return p
}

// Square returns a square of side length l, with its lower left corner at the origin.
func Square(l float64) *Path {
	return Rectangle(l, l)
}

// RoundedRectangle returns a rectangle of width w and height h with corners rounded by radius r, approximated by quarter-circle cubics.
func RoundedRectangle(w, h, r float64) *Path {
	if equal(w, 0.0) || equal(h, 0.0) {
		return &Path{}
	} else if equal(r, 0.0) {
		return Rectangle(w, h)
	}

	r = math.Abs(r)
	r = math.Min(r, w/2.0)
	r = math.Min(r, h/2.0)
	k := r * kappa

	p := &Path{}
	p.MoveTo(r, 0.0)
	p.LineTo(w-r, 0.0)
	p.CubeTo(w-r+k, 0.0, w, r-k, w, r)
	p.LineTo(w, h-r)
	p.CubeTo(w, h-r+k, w-r+k, h, w-r, h)
	p.LineTo(r, h)
	p.CubeTo(r-k, h, 0.0, h-r+k, 0.0, h-r)
	p.LineTo(0.0, r)
	p.CubeTo(0.0, r-k, r-k, 0.0, r, 0.0)
	p.Close()
	return p
}

// Circle returns a circle of radius r around the origin.
func Circle(r float64) *Path {
	return Ellipse(r, r)
}

// Ellipse returns an ellipse of radii rx and ry around the origin, approximated by four cubics, wound counter clockwise.
func Ellipse(rx, ry float64) *Path {
	if equal(rx, 0.0) || equal(ry, 0.0) {
		return &Path{}
	}

	kx, ky := rx*kappa, ry*kappa
	p := &Path{}
	p.MoveTo(rx, 0.0)
	p.CubeTo(rx, ky, kx, ry, 0.0, ry)
	p.CubeTo(-kx, ry, -rx, ky, -rx, 0.0)
	p.CubeTo(-rx, -ky, -kx, -ry, 0.0, -ry)
	p.CubeTo(kx, -ry, rx, -ky, rx, 0.0)
	p.Close()
	return p
}

// RegularPolygon returns a regular polygon with n vertices on a circle of radius r. The up boolean makes the first vertex point north instead of east. n must be 3 or more.
func RegularPolygon(n int, r float64, up bool) *Path {
	if n < 3 || equal(r, 0.0) {
		return &Path{}
	}

	dtheta := 2.0 * math.Pi / float64(n)
	theta0 := 0.0
	if up {
		theta0 = 0.5 * math.Pi
	}

	p := &Path{}
	for i := 0; i < n; i++ {
		theta := theta0 + float64(i)*dtheta
		x, y := r*math.Cos(theta), r*math.Sin(theta)
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
	return p
}
