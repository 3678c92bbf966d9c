package pathbool

import (
	"math"
	"strings"
)

// FillRule decides which regions a winding number fills.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// pathID hands out identities used to order contours deterministically.
var pathID int

// Path is a single contour: an ordered list of segments connected by cubic Bézier curves, optionally closed. A path with all handles zero is a polygon.
type Path struct {
	segments []*Segment
	closed   bool

	id      int
	version int
	curves  []*Curve
}

// Paths is a set of contours, the operand and result type of the boolean operators.
type Paths []*Path

// Empty returns true if the path has no segments.
func (p *Path) Empty() bool {
	return len(p.segments) == 0
}

// Closed returns true if the path is closed.
func (p *Path) Closed() bool {
	return p.closed
}

// Segments returns the path's segments. The slice must not be modified directly.
func (p *Path) Segments() []*Segment {
	return p.segments
}

// FirstSegment returns the first segment, or nil for an empty path.
func (p *Path) FirstSegment() *Segment {
	if len(p.segments) == 0 {
		return nil
	}
	return p.segments[0]
}

// LastSegment returns the last segment, or nil for an empty path.
func (p *Path) LastSegment() *Segment {
	if len(p.segments) == 0 {
		return nil
	}
	return p.segments[len(p.segments)-1]
}

func (p *Path) pid() int {
	if p.id == 0 {
		pathID++
		p.id = pathID
	}
	return p.id
}

// structChanged invalidates the curve list after a structural mutation.
func (p *Path) structChanged() {
	p.version++
	p.curves = nil
}

////////////////////////////////////////////////////////////////

// MoveTo starts the path at the given coordinate. It may only be called on an empty path.
func (p *Path) MoveTo(x, y float64) {
	if 0 < len(p.segments) {
		panic("bug: MoveTo on non-empty path")
	}
	p.appendSegment(NewSegment(Point{x, y}, Point{}, Point{}))
}

// LineTo adds a straight line towards the given coordinate.
func (p *Path) LineTo(x, y float64) {
	p.appendSegment(NewSegment(Point{x, y}, Point{}, Point{}))
}

// CubeTo adds a cubic Bézier towards the given coordinate, with absolute control points (cpx1,cpy1) and (cpx2,cpy2).
func (p *Path) CubeTo(cpx1, cpy1, cpx2, cpy2, x, y float64) {
	if last := p.LastSegment(); last != nil {
		last.handleOut = Point{cpx1, cpy1}.Sub(last.point)
		last.changed()
	}
	p.appendSegment(NewSegment(Point{x, y}, Point{cpx2, cpy2}.Sub(Point{x, y}), Point{}))
}

// QuadTo adds a quadratic Bézier towards the given coordinate, promoted to its exact cubic equivalent.
func (p *Path) QuadTo(cpx, cpy, x, y float64) {
	last := p.LastSegment()
	if last == nil {
		p.LineTo(x, y)
		return
	}
	cp := Point{cpx, cpy}
	cp1 := last.point.Interpolate(cp, 2.0/3.0)
	cp2 := Point{x, y}.Interpolate(cp, 2.0/3.0)
	p.CubeTo(cp1.X, cp1.Y, cp2.X, cp2.Y, x, y)
}

// Close closes the path. When the last anchor coincides with the first it is merged into it, carrying over its incoming handle.
func (p *Path) Close() {
	if 1 < len(p.segments) {
		first, last := p.segments[0], p.segments[len(p.segments)-1]
		if first.point.Equals(last.point) {
			first.handleIn = last.handleIn
			last.path = nil
			p.segments = p.segments[:len(p.segments)-1]
		}
	}
	p.closed = true
	p.structChanged()
}

// Add appends detached segments to the path.
func (p *Path) Add(segs ...*Segment) {
	for _, seg := range segs {
		p.appendSegment(seg)
	}
}

func (p *Path) appendSegment(seg *Segment) {
	seg.path = p
	seg.index = len(p.segments)
	p.segments = append(p.segments, seg)
	p.structChanged()
}

// insertSegment inserts seg at index i, shifting subsequent segments.
func (p *Path) insertSegment(i int, seg *Segment) {
	seg.path = p
	p.segments = append(p.segments, nil)
	copy(p.segments[i+1:], p.segments[i:])
	p.segments[i] = seg
	for j := i; j < len(p.segments); j++ {
		p.segments[j].index = j
	}
	p.version++
}

// removeSegments detaches and removes all segments from index i to the end.
func (p *Path) removeSegments(i int) {
	for _, seg := range p.segments[i:] {
		seg.path = nil
		seg.index = -1
	}
	p.segments = p.segments[:i]
	p.structChanged()
}

////////////////////////////////////////////////////////////////

// Curves returns the curves between subsequent segments. A closed path with n segments has n curves, an open path n-1.
func (p *Path) Curves() []*Curve {
	if p.curves == nil {
		n := len(p.segments)
		if !p.closed {
			n--
		}
		if n < 1 {
			return nil
		}
		p.curves = make([]*Curve, n)
		for i := 0; i < n; i++ {
			p.curves[i] = &Curve{
				path: p,
				seg1: p.segments[i],
				seg2: p.segments[(i+1)%len(p.segments)],
			}
		}
	}
	return p.curves
}

// FirstCurve returns the first curve, or nil when the path has none.
func (p *Path) FirstCurve() *Curve {
	curves := p.Curves()
	if len(curves) == 0 {
		return nil
	}
	return curves[0]
}

// LastCurve returns the last curve, or nil when the path has none.
func (p *Path) LastCurve() *Curve {
	curves := p.Curves()
	if len(curves) == 0 {
		return nil
	}
	return curves[len(curves)-1]
}

// closingValues returns the control vector of the chord that would close an open path. When straight is set the handles of the end segments are ignored.
func (p *Path) closingValues(straight bool) [8]float64 {
	return segmentValues(p.LastSegment(), p.FirstSegment(), straight)
}

////////////////////////////////////////////////////////////////

// Bounds returns the axis-aligned bounding box of the path.
func (p *Path) Bounds() Rect {
	curves := p.Curves()
	if len(curves) == 0 {
		if len(p.segments) == 1 {
			pt := p.segments[0].point
			return Rect{pt.X, pt.Y, 0.0, 0.0}
		}
		return Rect{}
	}
	r := curves[0].Bounds()
	for _, c := range curves[1:] {
		r = r.union(c.Bounds())
	}
	return r
}

// Length returns the arc length of the path.
func (p *Path) Length() float64 {
	d := 0.0
	for _, c := range p.Curves() {
		d += c.Length()
	}
	return d
}

// Area returns the signed area of the path, positive for counter clockwise contours. Open paths are treated as closed by their chord.
func (p *Path) Area() float64 {
	if len(p.segments) < 2 {
		return 0.0
	}
	area := 0.0
	for _, c := range p.Curves() {
		v := c.Values()
		area += cubicArea(&v)
	}
	if !p.closed {
		v := p.closingValues(true)
		area += cubicArea(&v)
	}
	return area
}

// CCW returns true if the path winds counter clockwise, ie. has non-negative signed area.
func (p *Path) CCW() bool {
	return 0.0 <= p.Area()
}

// SetCCW reverses the path if needed so that its orientation matches ccw.
func (p *Path) SetCCW(ccw bool) {
	if p.CCW() != ccw {
		p.Reverse()
	}
}

// Reverse reverses the direction of the path in place and returns it.
func (p *Path) Reverse() *Path {
	n := len(p.segments)
	for i := 0; i < n/2; i++ {
		p.segments[i], p.segments[n-1-i] = p.segments[n-1-i], p.segments[i]
	}
	for i, seg := range p.segments {
		seg.handleIn, seg.handleOut = seg.handleOut, seg.handleIn
		seg.index = i
	}
	p.structChanged()
	return p
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	q := &Path{closed: p.closed}
	q.segments = make([]*Segment, len(p.segments))
	for i, seg := range p.segments {
		q.segments[i] = &Segment{
			point:     seg.point,
			handleIn:  seg.handleIn,
			handleOut: seg.handleOut,
			path:      q,
			index:     i,
		}
	}
	return q
}

// Transform applies the affine transformation matrix to the path in place and returns it.
func (p *Path) Transform(m Matrix) *Path {
	for _, seg := range p.segments {
		seg.point = m.Dot(seg.point)
		seg.handleIn = m.DotVec(seg.handleIn)
		seg.handleOut = m.DotVec(seg.handleOut)
	}
	p.version++
	return p
}

// coincides returns true if q describes the same contour as p: the same closed state and the same anchors and handles in order, allowing the start anchor to differ.
func (p *Path) coincides(q *Path) bool {
	n := len(p.segments)
	if n != len(q.segments) || p.closed != q.closed {
		return false
	} else if n == 0 {
		return true
	}
	for offset := 0; offset < n; offset++ {
		if !p.closed && 0 < offset {
			break
		}
		match := true
		for i := 0; i < n; i++ {
			a, b := p.segments[i], q.segments[(i+offset)%n]
			if !a.point.Equals(b.point) || !a.handleIn.Equals(b.handleIn) || !a.handleOut.Equals(b.handleOut) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Contains returns true if the point is inside the path under the given fill rule, or on the path itself. Open paths are implicitly closed by their chord.
func (p *Path) Contains(pt Point, fillRule FillRule) bool {
	w := windingAt(pt, p.Curves(), false, false, false)
	if w.OnPath {
		return true
	}
	if fillRule == EvenOdd {
		return w.WindingL&1 == 1 || w.WindingR&1 == 1
	}
	return w.Winding != 0
}

// InteriorPoint returns a point inside the path. It prefers the bounds center and falls back to a point between the first two ray crossings.
func (p *Path) InteriorPoint() Point {
	bounds := p.Bounds()
	pt := bounds.Center()
	if p.Contains(pt, NonZero) {
		return pt
	}
	var intercepts []float64
	for _, c := range p.Curves() {
		v := c.Values()
		if pt.Y < math.Min(math.Min(v[1], v[3]), math.Min(v[5], v[7])) ||
			math.Max(math.Max(v[1], v[3]), math.Max(v[5], v[7])) < pt.Y {
			continue
		}
		for _, mv := range cubicMonoCurves(&v, false) {
			o0, o3 := mv[1], mv[7]
			if o0 == o3 || pt.Y < math.Min(o0, o3) || math.Max(o0, o3) < pt.Y {
				continue
			}
			var x float64
			if pt.Y == o0 {
				x = mv[0]
			} else if pt.Y == o3 {
				x = mv[6]
			} else if roots := cubicSolveCoord(&mv, 1, pt.Y, 0.0, 1.0); len(roots) == 1 {
				x = cubicPos(&mv, roots[0]).X
			} else {
				x = (mv[0] + mv[6]) / 2.0
			}
			intercepts = append(intercepts, x)
		}
	}
	if 1 < len(intercepts) {
		insertionSort(intercepts)
		pt.X = (intercepts[0] + intercepts[1]) / 2.0
	}
	return pt
}

// String returns the path as SVG path data.
func (p *Path) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var sb strings.Builder
	first := p.segments[0].point
	sb.WriteString("M")
	writeFloats(&sb, first.X, first.Y)
	curves := p.Curves()
	for i, c := range curves {
		seg1, seg2 := c.seg1, c.seg2
		if p.closed && i == len(curves)-1 && seg1.handleOut.IsZero() && seg2.handleIn.IsZero() {
			break // z implies the closing line
		}
		if seg1.handleOut.IsZero() && seg2.handleIn.IsZero() {
			sb.WriteString("L")
			writeFloats(&sb, seg2.point.X, seg2.point.Y)
		} else {
			cp1 := seg1.point.Add(seg1.handleOut)
			cp2 := seg2.point.Add(seg2.handleIn)
			sb.WriteString("C")
			writeFloats(&sb, cp1.X, cp1.Y, cp2.X, cp2.Y, seg2.point.X, seg2.point.Y)
		}
	}
	if p.closed {
		sb.WriteString("z")
	}
	return sb.String()
}

// insertionSort sorts xs in ascending order.
func insertionSort(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; 0 < j && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

////////////////////////////////////////////////////////////////

// Empty returns true if no contour has any segments.
func (ps Paths) Empty() bool {
	for _, p := range ps {
		if !p.Empty() {
			return false
		}
	}
	return true
}

// Bounds returns the bounding box containing all contours.
func (ps Paths) Bounds() Rect {
	var r Rect
	set := false
	for _, p := range ps {
		if p.Empty() {
			continue
		}
		if !set {
			r, set = p.Bounds(), true
		} else {
			r = r.union(p.Bounds())
		}
	}
	return r
}

// Area returns the sum of the signed areas of all contours.
func (ps Paths) Area() float64 {
	area := 0.0
	for _, p := range ps {
		area += p.Area()
	}
	return area
}

// Length returns the sum of the arc lengths of all contours.
func (ps Paths) Length() float64 {
	d := 0.0
	for _, p := range ps {
		d += p.Length()
	}
	return d
}

// Clone returns a deep copy of all contours.
func (ps Paths) Clone() Paths {
	qs := make(Paths, len(ps))
	for i, p := range ps {
		qs[i] = p.Clone()
	}
	return qs
}

// Reverse reverses the direction of each contour in place and returns the set.
func (ps Paths) Reverse() Paths {
	for _, p := range ps {
		p.Reverse()
	}
	return ps
}

// Transform applies the affine transformation matrix to each contour in place and returns the set.
func (ps Paths) Transform(m Matrix) Paths {
	for _, p := range ps {
		p.Transform(m)
	}
	return ps
}

// Contains returns true if the point is inside the contour set under the given fill rule, with all contours contributing to the winding number.
func (ps Paths) Contains(pt Point, fillRule FillRule) bool {
	var curves []*Curve
	for _, p := range ps {
		curves = append(curves, p.Curves()...)
	}
	w := windingAt(pt, curves, false, false, false)
	if w.OnPath {
		return true
	}
	if fillRule == EvenOdd {
		return w.WindingL&1 == 1 || w.WindingR&1 == 1
	}
	return w.Winding != 0
}

// String returns all contours as SVG path data.
func (ps Paths) String() string {
	strs := make([]string, len(ps))
	for i, p := range ps {
		strs[i] = p.String()
	}
	return strings.Join(strs, "")
}
