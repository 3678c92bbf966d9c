package pathbool

import (
	"fmt"
	"math"
)

// Epsilon is the geometric tolerance below which two coordinates are considered equal.
const Epsilon = 1e-10

// CurveTimeEpsilon is the tolerance below which two curve-time parameters are considered equal.
const CurveTimeEpsilon = 1e-8

// MachineEpsilon is the upper bound on the relative rounding error of a float64 operation.
const MachineEpsilon = 1.12e-16

// TrigEpsilon is the tolerance used for angular comparisons such as collinearity.
const TrigEpsilon = 1e-8

// equal returns true if a and b are equal with tolerance Epsilon.
func equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// equalTime returns true if curve times s and t are equal with tolerance CurveTimeEpsilon.
func equalTime(s, t float64) bool {
	return math.Abs(s-t) < CurveTimeEpsilon
}

// machineZero returns true if x is zero within MachineEpsilon.
func machineZero(x float64) bool {
	return -MachineEpsilon <= x && x <= MachineEpsilon
}

// clamp limits x to the range [lo,hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	} else if hi < x {
		return hi
	}
	return x
}

// angleNorm returns the angle theta in the range [0,2PI).
func angleNorm(theta float64) float64 {
	theta = math.Mod(theta, 2.0*math.Pi)
	if theta < 0.0 {
		theta += 2.0 * math.Pi
	}
	return theta
}

// angleBetween is true when theta is in range (lower,upper) excluding the end points. Angles can be outside the [0,2PI) range.
func angleBetween(theta, lower, upper float64) bool {
	sweep := lower <= upper // true for CCW, ie along a positive angle
	theta = angleNorm(theta - lower)
	upper = angleNorm(upper - lower)
	if theta != 0.0 && (sweep && theta < upper || !sweep && theta > upper) {
		return true
	}
	return false
}

////////////////////////////////////////////////////////////////

// Point is a coordinate in 2D space. OP refers to the line that goes through the origin (0,0) and this point (x,y).
type Point struct {
	X, Y float64
}

// IsZero returns true if P is exactly zero.
func (p Point) IsZero() bool {
	return p.X == 0.0 && p.Y == 0.0
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p Point) Equals(q Point) bool {
	return equal(p.X, q.X) && equal(p.Y, q.Y)
}

// Close returns true if P and Q are within eps of each other.
func (p Point) Close(q Point, eps float64) bool {
	x, y := p.X-q.X, p.Y-q.Y
	return x*x+y*y <= eps*eps
}

// Neg negates x and y.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y}
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul multiplies x and y by f.
func (p Point) Mul(f float64) Point {
	return Point{f * p.X, f * p.Y}
}

// Div divides x and y by f.
func (p Point) Div(f float64) Point {
	return Point{p.X / f, p.Y / f}
}

// Rot90CW rotates the line OP by 90 degrees CW.
func (p Point) Rot90CW() Point {
	return Point{p.Y, -p.X}
}

// Rot90CCW rotates the line OP by 90 degrees CCW.
func (p Point) Rot90CCW() Point {
	return Point{-p.Y, p.X}
}

// Dot returns the dot product between OP and OQ, ie. zero if perpendicular and |OP|*|OQ| if aligned.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// PerpDot returns the perp dot product between OP and OQ, ie. zero if aligned and |OP|*|OQ| if perpendicular.
func (p Point) PerpDot(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of OP.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Angle returns the angle between the x-axis and OP.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// AngleBetween returns the angle between OP and OQ.
func (p Point) AngleBetween(q Point) float64 {
	return math.Atan2(p.PerpDot(q), p.Dot(q))
}

// Collinear returns true if OP and OQ span no area within an angular tolerance.
func (p Point) Collinear(q Point) bool {
	return math.Abs(p.PerpDot(q)) <= math.Sqrt((p.X*p.X+p.Y*p.Y)*(q.X*q.X+q.Y*q.Y))*TrigEpsilon
}

// Norm normalized OP to be of certain length.
func (p Point) Norm(length float64) Point {
	d := p.Length()
	if equal(d, 0.0) {
		return Point{}
	}
	return Point{p.X / d * length, p.Y / d * length}
}

// Interpolate returns a point on PQ that is linearly interpolated by t, ie. t=0 returns P and t=1 returns Q.
func (p Point) Interpolate(q Point, t float64) Point {
	return Point{(1-t)*p.X + t*q.X, (1-t)*p.Y + t*q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("[%g; %g]", p.X, p.Y)
}

////////////////////////////////////////////////////////////////

// Rect is an axis-aligned rectangle with a position and a non-negative size.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Move(p Point) Rect {
	r.X += p.X
	r.Y += p.Y
	return r
}

// Add returns the smallest rectangle containing both R and Q.
func (r Rect) Add(q Rect) Rect {
	if q.W == 0.0 || q.H == 0.0 {
		return r
	} else if r.W == 0.0 || r.H == 0.0 {
		return q
	}
	x0 := math.Min(r.X, q.X)
	y0 := math.Min(r.Y, q.Y)
	x1 := math.Max(r.X+r.W, q.X+q.W)
	y1 := math.Max(r.Y+r.H, q.Y+q.H)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// union returns the smallest rectangle containing both R and Q, counting zero-size operands as points and lines instead of empty. Per-curve bounding boxes of axis-aligned lines have zero width or height and must still extend the result.
func (r Rect) union(q Rect) Rect {
	x0 := math.Min(r.X, q.X)
	y0 := math.Min(r.Y, q.Y)
	x1 := math.Max(r.X+r.W, q.X+q.W)
	y1 := math.Max(r.Y+r.H, q.Y+q.H)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2.0, r.Y + r.H/2.0}
}

// Contains returns true if point P is inside or on the rectangle.
func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X <= r.X+r.W && r.Y <= p.Y && p.Y <= r.Y+r.H
}

// Touches returns true if rectangles R and Q overlap or touch within tolerance eps.
func (r Rect) Touches(q Rect, eps float64) bool {
	return r.X <= q.X+q.W+eps && q.X <= r.X+r.W+eps && r.Y <= q.Y+q.H+eps && q.Y <= r.Y+r.H+eps
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g; %g]--[%g; %g]", r.X, r.Y, r.X+r.W, r.Y+r.H)
}

////////////////////////////////////////////////////////////////

// Matrix is used for affine transformations. Be aware that concatenating transformation functions will be evaluated right-to-left! So Identity.Rotate(30).Translate(20,0) will first translate 20 points horizontally and then rotate 30 degrees counter clockwise.
type Matrix [2][3]float64

var Identity = Matrix{
	{1.0, 0.0, 0.0},
	{0.0, 1.0, 0.0},
}

func (m Matrix) Mul(q Matrix) Matrix {
	return Matrix{{
		m[0][0]*q[0][0] + m[0][1]*q[1][0],
		m[0][0]*q[0][1] + m[0][1]*q[1][1],
		m[0][0]*q[0][2] + m[0][1]*q[1][2] + m[0][2],
	}, {
		m[1][0]*q[0][0] + m[1][1]*q[1][0],
		m[1][0]*q[0][1] + m[1][1]*q[1][1],
		m[1][0]*q[0][2] + m[1][1]*q[1][2] + m[1][2],
	}}
}

// Dot transforms point P by the matrix.
func (m Matrix) Dot(p Point) Point {
	return Point{
		m[0][0]*p.X + m[0][1]*p.Y + m[0][2],
		m[1][0]*p.X + m[1][1]*p.Y + m[1][2],
	}
}

// DotVec transforms vector P by the matrix, ignoring translation. Used for handles, which are relative to their anchor.
func (m Matrix) DotVec(p Point) Point {
	return Point{
		m[0][0]*p.X + m[0][1]*p.Y,
		m[1][0]*p.X + m[1][1]*p.Y,
	}
}

func (m Matrix) Translate(x, y float64) Matrix {
	return m.Mul(Matrix{
		{1.0, 0.0, x},
		{0.0, 1.0, y},
	})
}

// Rotate adds a rotation transformation of rot degrees counter clockwise.
func (m Matrix) Rotate(rot float64) Matrix {
	sintheta, costheta := math.Sincos(rot * math.Pi / 180.0)
	return m.Mul(Matrix{
		{costheta, -sintheta, 0.0},
		{sintheta, costheta, 0.0},
	})
}

func (m Matrix) Scale(sx, sy float64) Matrix {
	return m.Mul(Matrix{
		{sx, 0.0, 0.0},
		{0.0, sy, 0.0},
	})
}

func (m Matrix) Shear(sx, sy float64) Matrix {
	return m.Mul(Matrix{
		{1.0, sx, 0.0},
		{sy, 1.0, 0.0},
	})
}

// Det returns the determinant of the matrix.
func (m Matrix) Det() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Inv returns the inverted matrix. It panics for singular matrices.
func (m Matrix) Inv() Matrix {
	det := m.Det()
	if machineZero(det) {
		panic("bug: cannot invert singular matrix")
	}
	return Matrix{{
		m[1][1] / det,
		-m[0][1] / det,
		(m[0][1]*m[1][2] - m[1][1]*m[0][2]) / det,
	}, {
		-m[1][0] / det,
		m[0][0] / det,
		(m[1][0]*m[0][2] - m[0][0]*m[1][2]) / det,
	}}
}

func (m Matrix) String() string {
	return fmt.Sprintf("(%g, %g, %g; %g, %g, %g)", m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2])
}

////////////////////////////////////////////////////////////////

// signedLineDistance returns the signed distance from the point (x,y) to the line through (px,py) with direction (vx,vy). The scaling order avoids the precision loss of a naive cross-product formulation.
func signedLineDistance(px, py, vx, vy, x, y float64) float64 {
	if vx == 0.0 {
		if vy > 0.0 {
			return x - px
		}
		return px - x
	} else if vy == 0.0 {
		if vx < 0.0 {
			return y - py
		}
		return py - y
	}
	d := (x-px)*vy - (y-py)*vx
	if math.Abs(vy) > math.Abs(vx) {
		return d / (vy * math.Sqrt(1.0+(vx*vx)/(vy*vy)))
	}
	return d / (vx * math.Sqrt(1.0+(vy*vy)/(vx*vx)))
}

// lineDistance returns the perpendicular distance from point (x,y) to the line through (px,py) with direction (vx,vy).
func lineDistance(px, py, vx, vy, x, y float64) float64 {
	return math.Abs(signedLineDistance(px, py, vx, vy, x, y))
}

// lineIntersect returns the intersection point of the line segments P1-P2 and P3-P4, or false if they are parallel or do not intersect within the segments.
func lineIntersect(p1, p2, p3, p4 Point) (Point, bool) {
	v1, v2 := p2.Sub(p1), p4.Sub(p3)
	cross := v1.PerpDot(v2)
	if machineZero(cross) {
		return Point{}, false
	}
	d := p1.Sub(p3)
	u1 := (v2.X*d.Y - v2.Y*d.X) / cross
	u2 := (v1.X*d.Y - v1.Y*d.X) / cross
	if -Epsilon < u1 && u1 < 1.0+Epsilon && -Epsilon < u2 && u2 < 1.0+Epsilon {
		u1 = clamp(u1, 0.0, 1.0)
		return p1.Add(v1.Mul(u1)), true
	}
	return Point{}, false
}
