package pathbool

import (
	"fmt"
	"math"
)

// Curve is the cubic Bézier between two adjacent segments of a path. Its control vector is laid out as [x0,y0, cx1,cy1, cx2,cy2, x3,y3] with absolute control point coordinates.
type Curve struct {
	path       *Path
	seg1, seg2 *Segment

	lengthVersion int
	length        float64
	boundsVersion int
	bounds        Rect
}

// segmentValues returns the control vector of the curve from seg1 to seg2. When straight is set the handles are ignored and a line results.
func segmentValues(seg1, seg2 *Segment, straight bool) [8]float64 {
	p1, p2 := seg1.point, seg2.point
	if straight {
		return [8]float64{p1.X, p1.Y, p1.X, p1.Y, p2.X, p2.Y, p2.X, p2.Y}
	}
	c1 := p1.Add(seg1.handleOut)
	c2 := p2.Add(seg2.handleIn)
	return [8]float64{p1.X, p1.Y, c1.X, c1.Y, c2.X, c2.Y, p2.X, p2.Y}
}

// Path returns the owning path.
func (c *Curve) Path() *Path {
	return c.path
}

// Index returns the position of the curve within its path.
func (c *Curve) Index() int {
	return c.seg1.index
}

// Segment1 returns the segment the curve starts at.
func (c *Curve) Segment1() *Segment {
	return c.seg1
}

// Segment2 returns the segment the curve ends at.
func (c *Curve) Segment2() *Segment {
	return c.seg2
}

// Point1 returns the start point.
func (c *Curve) Point1() Point {
	return c.seg1.point
}

// Point2 returns the end point.
func (c *Curve) Point2() Point {
	return c.seg2.point
}

// Values returns the control vector of the curve.
func (c *Curve) Values() [8]float64 {
	return segmentValues(c.seg1, c.seg2, false)
}

// Next returns the following curve, wrapping around on closed paths.
func (c *Curve) Next() *Curve {
	curves := c.path.Curves()
	if i := c.Index(); i+1 < len(curves) {
		return curves[i+1]
	} else if c.path.closed {
		return curves[0]
	}
	return nil
}

// Previous returns the preceding curve, wrapping around on closed paths.
func (c *Curve) Previous() *Curve {
	curves := c.path.Curves()
	if i := c.Index(); 0 < i {
		return curves[i-1]
	} else if c.path.closed {
		return curves[len(curves)-1]
	}
	return nil
}

// HasHandles returns true if either control handle between the two segments is set.
func (c *Curve) HasHandles() bool {
	return !c.seg1.handleOut.IsZero() || !c.seg2.handleIn.IsZero()
}

// IsStraight returns true if the curve is geometrically a line.
func (c *Curve) IsStraight() bool {
	v := c.Values()
	return cubicIsStraight(&v)
}

// Length returns the arc length of the curve.
func (c *Curve) Length() float64 {
	if c.lengthVersion != c.path.version+1 {
		v := c.Values()
		c.length = cubicLength(&v, 0.0, 1.0)
		c.lengthVersion = c.path.version + 1
	}
	return c.length
}

// Bounds returns the axis-aligned bounding box of the curve.
func (c *Curve) Bounds() Rect {
	if c.boundsVersion != c.path.version+1 {
		v := c.Values()
		c.bounds = cubicBounds(&v)
		c.boundsVersion = c.path.version + 1
	}
	return c.bounds
}

// PointAt returns the point at curve time t in [0,1].
func (c *Curve) PointAt(t float64) Point {
	v := c.Values()
	return cubicPos(&v, t)
}

// TangentAt returns the unit tangent at curve time t.
func (c *Curve) TangentAt(t float64) Point {
	v := c.Values()
	return cubicTangent(&v, t).Norm(1.0)
}

// NormalAt returns the unit normal at curve time t, the tangent rotated 90 degrees clockwise.
func (c *Curve) NormalAt(t float64) Point {
	return c.TangentAt(t).Rot90CW()
}

// CurvatureAt returns the signed curvature at curve time t.
func (c *Curve) CurvatureAt(t float64) float64 {
	v := c.Values()
	d1 := cubicDeriv1(&v, t)
	d2 := cubicDeriv2(&v, t)
	speed := d1.Length()
	if machineZero(speed) {
		return math.Inf(1)
	}
	return d1.PerpDot(d2) / (speed * speed * speed)
}

// TimeAt returns the curve time at the given arc length from the start.
func (c *Curve) TimeAt(length float64) float64 {
	v := c.Values()
	return cubicTimeAtLength(&v, length)
}

// TimeOf returns the curve time at which the curve passes through the given point, or -1 when it does not.
func (c *Curve) TimeOf(p Point) float64 {
	v := c.Values()
	if t, ok := cubicTimeOf(&v, p); ok {
		return t
	}
	return -1.0
}

// NearestTime returns the curve time closest to the given point.
func (c *Curve) NearestTime(p Point) float64 {
	v := c.Values()
	return cubicNearestTime(&v, p)
}

// NearestPoint returns the point on the curve closest to the given point.
func (c *Curve) NearestPoint(p Point) Point {
	return c.PointAt(c.NearestTime(p))
}

// Classify returns the Loop-Blinn classification of the curve together with the curve times of its inflections, cusp, or double point.
func (c *Curve) Classify() (CurveKind, []float64) {
	v := c.Values()
	return classifyCubic(&v)
}

// DivideAtTime splits the curve in place at curve time t. The curve is shortened to the left part, a new segment is inserted, and the curve of the right part is returned.
func (c *Curve) DivideAtTime(t float64) *Curve {
	v := c.Values()
	left, right := cubicSplit(&v, t)
	p := c.path
	p.Curves() // the curve list is updated in place below

	seg := NewSegment(
		Point{left[6], left[7]},
		Point{left[4] - left[6], left[5] - left[7]},
		Point{right[2] - right[0], right[3] - right[1]},
	)
	c.seg1.handleOut = Point{left[2] - left[0], left[3] - left[1]}
	c.seg2.handleIn = Point{right[4] - right[6], right[5] - right[7]}

	i := c.seg1.index
	p.insertSegment(i+1, seg)
	next := &Curve{path: p, seg1: seg, seg2: c.seg2}
	c.seg2 = seg
	p.curves = append(p.curves, nil)
	copy(p.curves[i+2:], p.curves[i+1:])
	p.curves[i+1] = next
	return next
}

func (c *Curve) String() string {
	v := c.Values()
	return fmt.Sprintf("[%g; %g]-([%g; %g],[%g; %g])-[%g; %g]", v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7])
}

////////////////////////////////////////////////////////////////

// CurveKind is the Loop-Blinn classification of a cubic.
type CurveKind int

const (
	KindLine CurveKind = iota
	KindQuadratic
	KindSerpentine
	KindCusp
	KindLoop
	KindArch
)

func (kind CurveKind) String() string {
	switch kind {
	case KindLine:
		return "Line"
	case KindQuadratic:
		return "Quadratic"
	case KindSerpentine:
		return "Serpentine"
	case KindCusp:
		return "Cusp"
	case KindLoop:
		return "Loop"
	case KindArch:
		return "Arch"
	}
	return "Unknown"
}

// cubicPos returns the point at curve time t.
func cubicPos(v *[8]float64, t float64) Point {
	if t == 0.0 {
		return Point{v[0], v[1]}
	} else if t == 1.0 {
		return Point{v[6], v[7]}
	}
	cx := 3.0 * (v[2] - v[0])
	bx := 3.0*(v[4]-v[2]) - cx
	ax := v[6] - v[0] - cx - bx
	cy := 3.0 * (v[3] - v[1])
	by := 3.0*(v[5]-v[3]) - cy
	ay := v[7] - v[1] - cy - by
	return Point{
		((ax*t+bx)*t+cx)*t + v[0],
		((ay*t+by)*t+cy)*t + v[1],
	}
}

// cubicDeriv1 returns the first derivative at curve time t.
func cubicDeriv1(v *[8]float64, t float64) Point {
	cx := 3.0 * (v[2] - v[0])
	bx := 3.0*(v[4]-v[2]) - cx
	ax := v[6] - v[0] - cx - bx
	cy := 3.0 * (v[3] - v[1])
	by := 3.0*(v[5]-v[3]) - cy
	ay := v[7] - v[1] - cy - by
	return Point{
		(3.0*ax*t+2.0*bx)*t + cx,
		(3.0*ay*t+2.0*by)*t + cy,
	}
}

// cubicDeriv2 returns the second derivative at curve time t.
func cubicDeriv2(v *[8]float64, t float64) Point {
	cx := 3.0 * (v[2] - v[0])
	bx := 3.0*(v[4]-v[2]) - cx
	ax := v[6] - v[0] - cx - bx
	cy := 3.0 * (v[3] - v[1])
	by := 3.0*(v[5]-v[3]) - cy
	ay := v[7] - v[1] - cy - by
	return Point{6.0*ax*t + 2.0*bx, 6.0*ay*t + 2.0*by}
}

// cubicTangent returns the unnormalized tangent at curve time t. Near the end points zero-length handles are stepped over so that the tangent never degenerates to zero.
func cubicTangent(v *[8]float64, t float64) Point {
	tMin, tMax := CurveTimeEpsilon, 1.0-CurveTimeEpsilon
	var d Point
	if t < tMin {
		d = Point{3.0 * (v[2] - v[0]), 3.0 * (v[3] - v[1])}
	} else if tMax < t {
		d = Point{3.0 * (v[6] - v[4]), 3.0 * (v[7] - v[5])}
	} else {
		d = cubicDeriv1(v, t)
	}
	if d.IsZero() && (t < tMin || tMax < t) {
		d = Point{v[4] - v[0], v[5] - v[1]}
		if d.IsZero() {
			d = Point{v[6] - v[0], v[7] - v[1]}
		}
	}
	return d
}

// cubicSplit subdivides the curve at curve time t using De Casteljau's algorithm.
func cubicSplit(v *[8]float64, t float64) ([8]float64, [8]float64) {
	p0 := Point{v[0], v[1]}
	p1 := Point{v[2], v[3]}
	p2 := Point{v[4], v[5]}
	p3 := Point{v[6], v[7]}
	q1 := p0.Interpolate(p1, t)
	r1 := p1.Interpolate(p2, t)
	q2 := p2.Interpolate(p3, t)
	s1 := q1.Interpolate(r1, t)
	s2 := r1.Interpolate(q2, t)
	m := s1.Interpolate(s2, t)
	return [8]float64{p0.X, p0.Y, q1.X, q1.Y, s1.X, s1.Y, m.X, m.Y},
		[8]float64{m.X, m.Y, s2.X, s2.Y, q2.X, q2.Y, p3.X, p3.Y}
}

// cubicPart returns the part of the curve between curve times from and to. When from is greater than to the part is reversed.
func cubicPart(v *[8]float64, from, to float64) [8]float64 {
	flip := to < from
	if flip {
		from, to = to, from
	}
	res := *v
	if 0.0 < from {
		_, res = cubicSplit(&res, from)
	}
	if to < 1.0 {
		res, _ = cubicSplit(&res, (to-from)/(1.0-from))
	}
	if flip {
		return [8]float64{res[6], res[7], res[4], res[5], res[2], res[3], res[0], res[1]}
	}
	return res
}

// squaredChordLength returns the squared distance between the curve's end points.
func squaredChordLength(v *[8]float64) float64 {
	x, y := v[6]-v[0], v[7]-v[1]
	return x*x + y*y
}

// handlesStraight returns true if the curve from p1 to p2 with relative handles h1 and h2 is geometrically a line.
func handlesStraight(p1, h1, h2, p2 Point) bool {
	if h1.IsZero() && h2.IsZero() {
		return true
	}
	d := p2.Sub(p1)
	if d.IsZero() {
		return false
	}
	if d.Collinear(h1) && d.Collinear(h2) {
		// the handles must lie on the line between the end points
		if lineDistance(p1.X, p1.Y, d.X, d.Y, p1.X+h1.X, p1.Y+h1.Y) < Epsilon &&
			lineDistance(p1.X, p1.Y, d.X, d.Y, p2.X+h2.X, p2.Y+h2.Y) < Epsilon {
			div := d.Dot(d)
			s1 := d.Dot(h1) / div
			s2 := d.Dot(h2) / div
			return 0.0 <= s1 && s1 <= 1.0 && -1.0 <= s2 && s2 <= 0.0
		}
	}
	return false
}

// cubicIsStraight returns true if the curve is geometrically a line.
func cubicIsStraight(v *[8]float64) bool {
	p1 := Point{v[0], v[1]}
	p2 := Point{v[6], v[7]}
	return handlesStraight(p1, Point{v[2] - v[0], v[3] - v[1]}, Point{v[4] - v[6], v[5] - v[7]}, p2)
}

// cubicLength returns the arc length of the curve between curve times a and b using Gauss-Legendre quadrature.
func cubicLength(v *[8]float64, a, b float64) float64 {
	if b < a {
		a, b = b, a
	}
	if cubicIsStraight(v) {
		return cubicPos(v, b).Sub(cubicPos(v, a)).Length()
	}
	speed := func(t float64) float64 {
		return cubicDeriv1(v, t).Length()
	}
	// split the integration range to keep the quadrature error low around cusps
	const n = 4
	d := 0.0
	for i := 0; i < n; i++ {
		t0 := a + (b-a)*float64(i)/n
		t1 := a + (b-a)*float64(i+1)/n
		d += gaussLegendre7(speed, t0, t1)
	}
	return d
}

// cubicTimeAtLength returns the curve time at which the arc length from the start reaches the given length.
func cubicTimeAtLength(v *[8]float64, length float64) float64 {
	total := cubicLength(v, 0.0, 1.0)
	if length <= 0.0 {
		return 0.0
	} else if total <= length {
		return 1.0
	}
	f := func(t float64) float64 {
		return cubicLength(v, 0.0, t)
	}
	return bisectionMethod(f, length, 0.0, 1.0)
}

// cubicArea returns the signed area between the curve and the origin, so that summing over a closed contour yields its signed area. See https://gist.github.com/hkrish/5ef0f2da7f9882341ee5 for the derivation.
func cubicArea(v *[8]float64) float64 {
	return 3.0 * ((v[7]-v[1])*(v[2]+v[4]) - (v[6]-v[0])*(v[3]+v[5]) +
		v[3]*(v[0]-v[4]) - v[2]*(v[1]-v[5]) +
		v[7]*(v[4]+v[0]/3.0) - v[6]*(v[5]+v[1]/3.0)) / 20.0
}

// cubicBounds returns the axis-aligned bounding box of the curve by evaluating it at the extrema of each coordinate.
func cubicBounds(v *[8]float64) Rect {
	x0, x1 := math.Min(v[0], v[6]), math.Max(v[0], v[6])
	y0, y1 := math.Min(v[1], v[7]), math.Max(v[1], v[7])
	for coord := 0; coord < 2; coord++ {
		p0, p1, p2, p3 := v[coord], v[coord+2], v[coord+4], v[coord+6]
		a := 3.0 * (-p0 + 3.0*p1 - 3.0*p2 + p3)
		b := 6.0 * (p0 - 2.0*p1 + p2)
		c := 3.0 * (p1 - p0)
		for _, t := range solveQuadratic(a, b, c, CurveTimeEpsilon, 1.0-CurveTimeEpsilon) {
			p := cubicPos(v, t)
			if coord == 0 {
				x0, x1 = math.Min(x0, p.X), math.Max(x1, p.X)
			} else {
				y0, y1 = math.Min(y0, p.Y), math.Max(y1, p.Y)
			}
		}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// cubicSolveCoord returns the curve times within [lo,hi] at which the given coordinate (0 for x, 1 for y) equals val.
func cubicSolveCoord(v *[8]float64, coord int, val, lo, hi float64) []float64 {
	v0, v1, v2, v3 := v[coord], v[coord+2], v[coord+4], v[coord+6]
	if v0 < val && v3 < val && v1 < val && v2 < val ||
		val < v0 && val < v3 && val < v1 && val < v2 {
		return nil
	}
	c := 3.0 * (v1 - v0)
	b := 3.0*(v2-v1) - c
	a := v3 - v0 - c - b
	return solveCubic(a, b, c, v0-val, lo, hi)
}

// cubicMonoCurves splits the curve into parts that are monotone in y, or in x when dir is set.
func cubicMonoCurves(v *[8]float64, dir bool) [][8]float64 {
	io := 1
	if dir {
		io = 0
	}
	o0, o1, o2, o3 := v[io], v[io+2], v[io+4], v[io+6]
	if (o0 >= o1) == (o1 >= o2) && (o1 >= o2) == (o2 >= o3) || cubicIsStraight(v) {
		// ordered control points and straight curves are monotone already
		return [][8]float64{*v}
	}
	a := 3.0*(o1-o2) - o0 + o3
	b := 2.0*(o0+o2) - 4.0*o1
	c := o1 - o0
	roots := solveQuadratic(a, b, c, CurveTimeEpsilon, 1.0-CurveTimeEpsilon)
	if len(roots) == 0 {
		return [][8]float64{*v}
	}
	var curves [][8]float64
	t := roots[0]
	left, right := cubicSplit(v, t)
	curves = append(curves, left)
	if 1 < len(roots) {
		t2 := (roots[1] - t) / (1.0 - t)
		left, right = cubicSplit(&right, t2)
		curves = append(curves, left)
	}
	return append(curves, right)
}

// classifyCubic returns the Loop-Blinn classification of the curve and the significant curve times: the inflections of a serpentine, the cusp parameter, or the two times of a loop's double point. See Loop and Blinn, GPU Gems 3, chapter 25.
func classifyCubic(v *[8]float64) (CurveKind, []float64) {
	x0, y0 := v[0], v[1]
	x1, y1 := v[2], v[3]
	x2, y2 := v[4], v[5]
	x3, y3 := v[6], v[7]
	a1 := x0*(y3-y2) + y0*(x2-x3) + x3*y2 - y3*x2
	a2 := x1*(y0-y3) + y1*(x3-x0) + x0*y3 - y0*x3
	a3 := x2*(y1-y0) + y2*(x0-x1) + x1*y0 - y1*x0
	d3 := 3.0 * a3
	d2 := d3 - a2
	d1 := d2 - a2 + a1

	// normalize to keep the error consistent across scales
	l := math.Sqrt(d1*d1 + d2*d2 + d3*d3)
	if l != 0.0 {
		d1 /= l
		d2 /= l
		d3 /= l
	}

	result := func(kind CurveKind, ts ...float64) (CurveKind, []float64) {
		hasRoots := 0 < len(ts)
		t1Ok := hasRoots && 0.0 < ts[0] && ts[0] < 1.0
		t2Ok := 1 < len(ts) && 0.0 < ts[1] && ts[1] < 1.0
		// degrade to arch when the roots fall outside the curve
		if hasRoots && (!(t1Ok || t2Ok) || kind == KindLoop && !(t1Ok && t2Ok)) {
			return KindArch, nil
		}
		var roots []float64
		if t1Ok {
			roots = append(roots, ts[0])
		}
		if t2Ok {
			roots = append(roots, ts[1])
		}
		if len(roots) == 2 && roots[1] < roots[0] {
			roots[0], roots[1] = roots[1], roots[0]
		}
		return kind, roots
	}

	if math.Abs(d1) < Epsilon {
		if math.Abs(d2) < Epsilon {
			if math.Abs(d3) < Epsilon {
				return KindLine, nil
			}
			return KindQuadratic, nil
		}
		return result(KindSerpentine, d3/(3.0*d2))
	}
	d := 3.0*d2*d2 - 4.0*d1*d3
	if math.Abs(d) < Epsilon {
		return result(KindCusp, d2/(2.0*d1))
	}
	var f1 float64
	if 0.0 < d {
		f1 = math.Sqrt(d / 3.0)
	} else {
		f1 = math.Sqrt(-d)
	}
	f2 := 2.0 * d1
	if 0.0 < d {
		return result(KindSerpentine, (d2+f1)/f2, (d2-f1)/f2)
	}
	return result(KindLoop, (d2+f1)/f2, (d2-f1)/f2)
}

// cubicPeaks returns the curve times where the curve changes its heading relative to its own travel, used to pick unambiguous tangent sampling offsets.
func cubicPeaks(v *[8]float64) []float64 {
	x0, y0 := v[0], v[1]
	x1, y1 := v[2], v[3]
	x2, y2 := v[4], v[5]
	x3, y3 := v[6], v[7]
	ax := -x0 + 3.0*x1 - 3.0*x2 + x3
	bx := 3.0*x0 - 6.0*x1 + 3.0*x2
	cx := -3.0*x0 + 3.0*x1
	ay := -y0 + 3.0*y1 - 3.0*y2 + y3
	by := 3.0*y0 - 6.0*y1 + 3.0*y2
	cy := -3.0*y0 + 3.0*y1
	return solveCubic(
		9.0*(ax*ax+ay*ay),
		9.0*(ax*bx+by*ay),
		2.0*(bx*bx+by*by)+3.0*(cx*ax+cy*ay),
		cx*bx+by*cy,
		CurveTimeEpsilon, 1.0-CurveTimeEpsilon)
}

// cubicTimeOf returns the curve time at which the curve passes through the given point. The end points are matched first so intersections there snap to exactly 0 or 1.
func cubicTimeOf(v *[8]float64, p Point) (float64, bool) {
	p0 := Point{v[0], v[1]}
	p3 := Point{v[6], v[7]}
	if p.Close(p0, Epsilon) {
		return 0.0, true
	} else if p.Close(p3, Epsilon) {
		return 1.0, true
	}
	coords := [2]float64{p.X, p.Y}
	for coord := 0; coord < 2; coord++ {
		for _, t := range cubicSolveCoord(v, coord, coords[coord], 0.0, 1.0) {
			if p.Close(cubicPos(v, t), Epsilon) {
				return t, true
			}
		}
	}
	return 0.0, false
}

// cubicNearestTime returns the curve time closest to the given point using a coarse scan followed by local refinement.
func cubicNearestTime(v *[8]float64, p Point) float64 {
	const count = 100
	minDist := math.Inf(1)
	minT := 0.0
	refine := func(t float64) bool {
		if 0.0 <= t && t <= 1.0 {
			d := p.Sub(cubicPos(v, t))
			if dist := d.Dot(d); dist < minDist {
				minDist = dist
				minT = t
				return true
			}
		}
		return false
	}
	for i := 0; i <= count; i++ {
		refine(float64(i) / count)
	}
	step := 1.0 / (count * 2.0)
	for CurveTimeEpsilon < step {
		if !refine(minT-step) && !refine(minT+step) {
			step /= 2.0
		}
	}
	return minT
}
