package pathbool

import (
	"fmt"
	"math"
	"sort"
)

// maximum effort spent on isolating the intersections of a single curve pair
const (
	clipMaxRecursion = 40
	clipMaxCalls     = 4096
)

// fatlineEpsilon is the parameter width below which a fat-line clip is considered converged.
const fatlineEpsilon = 1e-9

// CurveLocation is a position on a curve where it meets another curve (or itself). Partner is the index of the twin location on the other curve within the slice that holds this location.
type CurveLocation struct {
	Curve   *Curve
	Time    float64
	Point   Point
	Overlap bool
	Partner int

	next, prev int // chain of locations joined at the same position after division
	segment    *Segment
}

func (loc *CurveLocation) String() string {
	s := fmt.Sprintf("pos=%v t=%v", loc.Point, loc.Time)
	if loc.Overlap {
		s += " overlap"
	}
	return s
}

// includeFunc filters locations before they are recorded.
type includeFunc func(loc *CurveLocation) bool

// locationSet collects the intersections of one search. Locations are stored append-only so that partner and chain indices stay valid, and order holds the indices sorted by contour order.
type locationSet struct {
	locs  []*CurveLocation
	order []int

	// keep coincident overlap locations as separate entries instead of merging them
	includeOverlaps bool
}

func newLocationSet() *locationSet {
	return &locationSet{}
}

// partner returns the twin location on the other curve.
func (s *locationSet) partner(loc *CurveLocation) *CurveLocation {
	return s.locs[loc.Partner]
}

// hasOverlap returns true if the location or its twin lies on an overlapping run.
func (s *locationSet) hasOverlap(loc *CurveLocation) bool {
	return loc.Overlap || s.partner(loc).Overlap
}

// key orders locations by contour, then by position along the contour.
func (s *locationSet) key(loc *CurveLocation) (int, float64) {
	return loc.Curve.path.pid(), float64(loc.Curve.Index()) + loc.Time
}

func (s *locationSet) less(a, b *CurveLocation) bool {
	pa, ka := s.key(a)
	pb, kb := s.key(b)
	if pa != pb {
		return pa < pb
	}
	return ka < kb
}

// ordered returns the recorded locations in contour order.
func (s *locationSet) ordered() []*CurveLocation {
	locs := make([]*CurveLocation, len(s.order))
	for i, idx := range s.order {
		locs[i] = s.locs[idx]
	}
	return locs
}

// expand returns the indices of all recorded locations and their twins, sorted in contour order.
func (s *locationSet) expand() []int {
	idxs := make([]int, 0, 2*len(s.order))
	for _, i := range s.order {
		idxs = append(idxs, i, s.locs[i].Partner)
	}
	sort.SliceStable(idxs, func(i, j int) bool {
		return s.less(s.locs[idxs[i]], s.locs[idxs[j]])
	})
	return idxs
}

// export remaps partner indices into the returned slice, which holds all recorded location pairs in contour order.
func (s *locationSet) export() []*CurveLocation {
	idxs := s.expand()
	remap := make(map[int]int, len(idxs))
	for i, idx := range idxs {
		remap[idx] = i
	}
	locs := make([]*CurveLocation, len(idxs))
	for i, idx := range idxs {
		loc := s.locs[idx]
		loc.Partner = remap[loc.Partner]
		locs[i] = loc
	}
	return locs
}

// matches returns true if an existing location pair coincides with the pair (c1,t1,p1)-(c2,t2,p2), either by curve time or by position.
func locMatches(e, eTwin *CurveLocation, c1 *Curve, t1 float64, p1 Point, c2 *Curve, t2 float64, p2 Point) bool {
	if !(e.Curve == c1 && equalTime(e.Time, t1) || e.Curve.path == c1.path && e.Point.Close(p1, Epsilon)) {
		return false
	}
	return eTwin.Curve == c2 && equalTime(eTwin.Time, t2) || eTwin.Curve.path == c2.path && eTwin.Point.Close(p2, Epsilon)
}

// add records a mutually linked location pair, unless the pair duplicates an existing one or falls on the shared end point of adjacent curves.
func (s *locationSet) add(c1 *Curve, t1 float64, c2 *Curve, t2 float64, overlap bool, include includeFunc) {
	// ignore the join of neighbouring curves of the same path, it is not an intersection
	excludeStart := !overlap && c1.Previous() == c2
	excludeEnd := !overlap && c1 != c2 && c1.Next() == c2
	tMin, tMax := CurveTimeEpsilon, 1.0-CurveTimeEpsilon
	lo1, hi1 := 0.0, 1.0
	if excludeStart {
		lo1, hi1 = tMin, 1.0
	} else if excludeEnd {
		lo1, hi1 = 0.0, tMax
	}
	if t1 < lo1 || hi1 < t1 {
		return
	}
	lo2, hi2 := 0.0, 1.0
	if excludeEnd {
		lo2, hi2 = tMin, 1.0
	} else if excludeStart {
		lo2, hi2 = 0.0, tMax
	}
	if t2 < lo2 || hi2 < t2 {
		return
	}

	p1 := c1.PointAt(t1)
	p2 := c2.PointAt(t2)
	if !(s.includeOverlaps && overlap) {
		for _, e := range s.locs {
			eTwin := s.partner(e)
			if locMatches(e, eTwin, c1, t1, p1, c2, t2, p2) {
				if overlap {
					e.Overlap = true
					eTwin.Overlap = true
				}
				return
			}
		}
	}

	loc1 := &CurveLocation{Curve: c1, Time: t1, Point: p1, Overlap: overlap, Partner: len(s.locs) + 1, next: -1, prev: -1}
	loc2 := &CurveLocation{Curve: c2, Time: t2, Point: p2, Overlap: overlap, Partner: len(s.locs), next: -1, prev: -1}
	s.locs = append(s.locs, loc1, loc2)
	if include != nil && !include(loc1) {
		return
	}
	idx := len(s.locs) - 2
	pos := sort.Search(len(s.order), func(i int) bool {
		return s.less(loc1, s.locs[s.order[i]])
	})
	s.order = append(s.order, 0)
	copy(s.order[pos+1:], s.order[pos:])
	s.order[pos] = idx
}

////////////////////////////////////////////////////////////////

func min4(a, b, c, d float64) float64 {
	return math.Min(math.Min(a, b), math.Min(c, d))
}

func max4(a, b, c, d float64) float64 {
	return math.Max(math.Max(a, b), math.Max(c, d))
}

// curveIntersections finds all intersections between the two curves and records them. It detects overlapping runs first, dispatches on straightness, and finally probes the end point pairs to catch tangential touches the clipping may have missed.
func (s *locationSet) curveIntersections(v1, v2 *[8]float64, c1, c2 *Curve, include includeFunc) {
	// cheap bounds check
	if max4(v1[0], v1[2], v1[4], v1[6])+Epsilon <= min4(v2[0], v2[2], v2[4], v2[6]) ||
		max4(v2[0], v2[2], v2[4], v2[6])+Epsilon <= min4(v1[0], v1[2], v1[4], v1[6]) ||
		max4(v1[1], v1[3], v1[5], v1[7])+Epsilon <= min4(v2[1], v2[3], v2[5], v2[7]) ||
		max4(v2[1], v2[3], v2[5], v2[7])+Epsilon <= min4(v1[1], v1[3], v1[5], v1[7]) {
		return
	}

	if pairs, ok := cubicOverlaps(v1, v2); ok {
		for i := 0; i < 2; i++ {
			s.add(c1, pairs[i][0], c2, pairs[i][1], true, include)
		}
		return
	}

	straight1 := cubicIsStraight(v1)
	straight2 := cubicIsStraight(v2)
	straight := straight1 && straight2
	flip := straight1 && !straight2
	before := len(s.order)
	if straight {
		s.addLineLine(v1, v2, c1, c2, include)
	} else if straight1 || straight2 {
		if flip {
			s.addCurveLine(v2, v1, c2, c1, include, true)
		} else {
			s.addCurveLine(v1, v2, c1, c2, include, false)
		}
	} else {
		frame := clipFrame{tMin: 0.0, tMax: 1.0, uMin: 0.0, uMax: 1.0}
		s.clipCurves(v1, v2, c1, c2, include, frame, 0)
	}
	// handle the end points overlapping, which the above can miss for tangential touches
	if !straight || len(s.order) == before {
		for i := 0; i < 4; i++ {
			t1 := i >> 1
			t2 := i & 1
			p1 := Point{v1[6*t1], v1[6*t1+1]}
			p2 := Point{v2[6*t2], v2[6*t2+1]}
			if p1.Close(p2, Epsilon) {
				s.add(c1, float64(t1), c2, float64(t2), false, include)
			}
		}
	}
}

// selfIntersection records the double point of a looping curve.
func (s *locationSet) selfIntersection(v1 *[8]float64, c1 *Curve, include includeFunc) {
	kind, roots := classifyCubic(v1)
	if kind == KindLoop && len(roots) == 2 {
		s.add(c1, roots[0], c1, roots[1], false, include)
	}
}

// addLineLine records the intersection of two straight curves.
func (s *locationSet) addLineLine(v1, v2 *[8]float64, c1, c2 *Curve, include includeFunc) {
	pt, ok := lineIntersect(Point{v1[0], v1[1]}, Point{v1[6], v1[7]}, Point{v2[0], v2[1]}, Point{v2[6], v2[7]})
	if !ok {
		return
	}
	if t1, ok := cubicTimeOf(v1, pt); ok {
		if t2, ok := cubicTimeOf(v2, pt); ok {
			s.add(c1, t1, c2, t2, false, include)
		}
	}
}

// addCurveLine records the intersections of a curve with a straight curve. v1 is the curve and v2 the line; flip restores the original operand order when recording.
func (s *locationSet) addCurveLine(v1, v2 *[8]float64, c1, c2 *Curve, include includeFunc, flip bool) {
	x1, y1 := v2[0], v2[1]
	x2, y2 := v2[6], v2[7]
	for _, t1 := range curveLineIntersections(v1, x1, y1, x2-x1, y2-y1) {
		p1 := cubicPos(v1, t1)
		if t2, ok := cubicTimeOf(v2, p1); ok {
			if flip {
				s.add(c2, t2, c1, t1, false, include)
			} else {
				s.add(c1, t1, c2, t2, false, include)
			}
		}
	}
}

// curveLineIntersections returns the curve times at which the curve meets the line through (px,py) with direction (vx,vy), by rotating the curve so the line coincides with the x-axis.
func curveLineIntersections(v *[8]float64, px, py, vx, vy float64) []float64 {
	if vx == 0.0 && vy == 0.0 {
		if t, ok := cubicTimeOf(v, Point{px, py}); ok {
			return []float64{t}
		}
		return nil
	}
	angle := math.Atan2(-vy, vx)
	sin, cos := math.Sincos(angle)
	var rv [8]float64
	for i := 0; i < 8; i += 2 {
		x, y := v[i]-px, v[i+1]-py
		rv[i] = x*cos - y*sin
		rv[i+1] = x*sin + y*cos
	}
	return cubicSolveCoord(&rv, 1, 0.0, 0.0, 1.0)
}

////////////////////////////////////////////////////////////////

// cubicOverlaps detects whether two curves run on top of each other for some range, and returns the two time pairs bounding the overlap.
func cubicOverlaps(v1, v2 *[8]float64) ([2][2]float64, bool) {
	var none [2][2]float64
	straight1 := cubicIsStraight(v1)
	straight2 := cubicIsStraight(v2)
	straightBoth := straight1 && straight2
	flip := squaredChordLength(v1) < squaredChordLength(v2)
	l1, l2 := v1, v2
	if flip {
		l1, l2 = v2, v1
	}
	// the end points of the smaller curve must lie on the line of the larger
	px, py := l1[0], l1[1]
	vx, vy := l1[6]-px, l1[7]-py
	if lineDistance(px, py, vx, vy, l2[0], l2[1]) < Epsilon &&
		lineDistance(px, py, vx, vy, l2[6], l2[7]) < Epsilon {
		if !straightBoth &&
			lineDistance(px, py, vx, vy, l1[2], l1[3]) < Epsilon &&
			lineDistance(px, py, vx, vy, l1[4], l1[5]) < Epsilon &&
			lineDistance(px, py, vx, vy, l2[2], l2[3]) < Epsilon &&
			lineDistance(px, py, vx, vy, l2[4], l2[5]) < Epsilon {
			// all control points collinear, handle the pair as straight
			straight1, straight2, straightBoth = true, true, true
		}
	} else if straightBoth {
		return none, false
	}
	if straight1 != straight2 {
		return none, false
	}

	vs := [2]*[8]float64{v1, v2}
	var pairs [][2]float64
	for i := 0; i < 4 && len(pairs) < 2; i++ {
		i1 := i & 1
		i2 := i1 ^ 1
		t1 := i >> 1
		pt := Point{vs[i2][6*t1], vs[i2][6*t1+1]}
		if t2, ok := cubicTimeOf(vs[i1], pt); ok {
			pair := [2]float64{t2, float64(t1)}
			if i1 == 1 {
				pair = [2]float64{float64(t1), t2}
			}
			if len(pairs) == 0 ||
				CurveTimeEpsilon < math.Abs(pair[0]-pairs[0][0]) && CurveTimeEpsilon < math.Abs(pair[1]-pairs[0][1]) {
				pairs = append(pairs, pair)
			}
		}
		if 1 < i && len(pairs) == 0 {
			// no end point matched, the curves cannot overlap
			break
		}
	}
	if len(pairs) != 2 {
		return none, false
	}
	if !straightBoth {
		// check that the handles of the overlapping parts match as well
		o1 := cubicPart(v1, pairs[0][0], pairs[1][0])
		o2 := cubicPart(v2, pairs[0][1], pairs[1][1])
		if Epsilon < math.Abs(o2[2]-o1[2]) || Epsilon < math.Abs(o2[3]-o1[3]) ||
			Epsilon < math.Abs(o2[4]-o1[4]) || Epsilon < math.Abs(o2[5]-o1[5]) {
			return none, false
		}
	}
	return [2][2]float64{pairs[0], pairs[1]}, true
}

////////////////////////////////////////////////////////////////

// clipFrame carries the parameter ranges of one fat-line clipping step. tMin..tMax tracks the surviving range on the first curve and uMin..uMax on the second; flip restores the original operand order when recording.
type clipFrame struct {
	flip                   bool
	recursion              int
	tMin, tMax, uMin, uMax float64
}

// clipCurves isolates curve/curve intersections by fat-line clipping, alternating the roles of the two curves and subdividing whenever a clip fails to shrink the range enough. It returns the updated call count and gives up beyond the recursion and call budgets.
func (s *locationSet) clipCurves(v1, v2 *[8]float64, c1, c2 *Curve, include includeFunc, f clipFrame, calls int) int {
	calls++
	f.recursion++
	if clipMaxCalls <= calls || clipMaxRecursion <= f.recursion {
		return calls
	}

	// fat line around the baseline of v2, covering its control points
	q0x, q0y, q3x, q3y := v2[0], v2[1], v2[6], v2[7]
	d1 := signedLineDistance(q0x, q0y, q3x-q0x, q3y-q0y, v2[2], v2[3])
	d2 := signedLineDistance(q0x, q0y, q3x-q0x, q3y-q0y, v2[4], v2[5])
	factor := 4.0 / 9.0
	if 0.0 < d1*d2 {
		factor = 3.0 / 4.0
	}
	dMin := factor * math.Min(0.0, math.Min(d1, d2))
	dMax := factor * math.Max(0.0, math.Max(d1, d2))

	// non-parametric distance curve of v1 against the fat line
	dp0 := signedLineDistance(q0x, q0y, q3x-q0x, q3y-q0y, v1[0], v1[1])
	dp1 := signedLineDistance(q0x, q0y, q3x-q0x, q3y-q0y, v1[2], v1[3])
	dp2 := signedLineDistance(q0x, q0y, q3x-q0x, q3y-q0y, v1[4], v1[5])
	dp3 := signedLineDistance(q0x, q0y, q3x-q0x, q3y-q0y, v1[6], v1[7])
	if d1 == 0.0 && d2 == 0.0 && dp0 == 0.0 && dp1 == 0.0 && dp2 == 0.0 && dp3 == 0.0 {
		// all points collinear, covered by the overlap handling
		return calls
	}
	top, bottom := distanceConvexHull(dp0, dp1, dp2, dp3)
	tMinClip, ok := clipConvexHull(top, bottom, dMin, dMax)
	if !ok {
		return calls
	}
	reverseHull(top)
	reverseHull(bottom)
	tMaxClip, ok := clipConvexHull(top, bottom, dMin, dMax)
	if !ok {
		return calls
	}

	tMinNew := f.tMin + (f.tMax-f.tMin)*tMinClip
	tMaxNew := f.tMin + (f.tMax-f.tMin)*tMaxClip
	if math.Max(f.uMax-f.uMin, tMaxNew-tMinNew) < fatlineEpsilon {
		// the intersection is isolated with sufficient precision
		t := (tMinNew + tMaxNew) / 2.0
		u := (f.uMin + f.uMax) / 2.0
		if f.flip {
			s.add(c2, u, c1, t, false, include)
		} else {
			s.add(c1, t, c2, u, false, include)
		}
		return calls
	}

	clipped := cubicPart(v1, tMinClip, tMaxClip)
	uDiff := f.uMax - f.uMin
	if 0.8 < tMaxClip-tMinClip {
		// the clip barely narrowed the range, subdivide the curve that converged least
		if uDiff < tMaxNew-tMinNew {
			left, right := cubicSplit(&clipped, 0.5)
			t := (tMinNew + tMaxNew) / 2.0
			calls = s.clipCurves(v2, &left, c2, c1, include, clipFrame{
				flip: !f.flip, recursion: f.recursion,
				tMin: f.uMin, tMax: f.uMax, uMin: tMinNew, uMax: t,
			}, calls)
			calls = s.clipCurves(v2, &right, c2, c1, include, clipFrame{
				flip: !f.flip, recursion: f.recursion,
				tMin: f.uMin, tMax: f.uMax, uMin: t, uMax: tMaxNew,
			}, calls)
		} else {
			left, right := cubicSplit(v2, 0.5)
			u := (f.uMin + f.uMax) / 2.0
			calls = s.clipCurves(&left, &clipped, c2, c1, include, clipFrame{
				flip: !f.flip, recursion: f.recursion,
				tMin: f.uMin, tMax: u, uMin: tMinNew, uMax: tMaxNew,
			}, calls)
			calls = s.clipCurves(&right, &clipped, c2, c1, include, clipFrame{
				flip: !f.flip, recursion: f.recursion,
				tMin: u, tMax: f.uMax, uMin: tMinNew, uMax: tMaxNew,
			}, calls)
		}
	} else if uDiff == 0.0 || fatlineEpsilon <= uDiff {
		// swap the roles of the curves for the next clip
		calls = s.clipCurves(v2, &clipped, c2, c1, include, clipFrame{
			flip: !f.flip, recursion: f.recursion,
			tMin: f.uMin, tMax: f.uMax, uMin: tMinNew, uMax: tMaxNew,
		}, calls)
	} else {
		// the other curve's range is already tight, keep clipping this one
		calls = s.clipCurves(&clipped, v2, c1, c2, include, clipFrame{
			flip: f.flip, recursion: f.recursion,
			tMin: tMinNew, tMax: tMaxNew, uMin: f.uMin, uMax: f.uMax,
		}, calls)
	}
	return calls
}

// distanceConvexHull returns the top and bottom of the convex hull of the non-parametric distance curve (0,d0),(1/3,d1),(2/3,d2),(1,d3).
func distanceConvexHull(d0, d1, d2, d3 float64) ([][2]float64, [][2]float64) {
	p0 := [2]float64{0.0, d0}
	p1 := [2]float64{1.0 / 3.0, d1}
	p2 := [2]float64{2.0 / 3.0, d2}
	p3 := [2]float64{1.0, d3}
	dist1 := d1 - (2.0*d0+d3)/3.0
	dist2 := d2 - (d0+2.0*d3)/3.0
	var top, bottom [][2]float64
	if dist1*dist2 < 0.0 {
		// p1 and p2 lie on different sides of the baseline, both hulls are triangles
		top = [][2]float64{p0, p1, p3}
		bottom = [][2]float64{p0, p2, p3}
	} else {
		distRatio := dist1 / dist2
		switch {
		case 2.0 <= distRatio:
			// p2 is inside the triangle p0-p1-p3
			top = [][2]float64{p0, p1, p3}
		case distRatio <= 0.5:
			// p1 is inside the triangle p0-p2-p3
			top = [][2]float64{p0, p2, p3}
		default:
			top = [][2]float64{p0, p1, p2, p3}
		}
		bottom = [][2]float64{p0, p3}
	}
	var flip bool
	if dist1 != 0.0 {
		flip = dist1 < 0.0
	} else {
		flip = dist2 < 0.0
	}
	if flip {
		return bottom, top
	}
	return top, bottom
}

func reverseHull(hull [][2]float64) {
	for i, j := 0, len(hull)-1; i < j; i, j = i+1, j-1 {
		hull[i], hull[j] = hull[j], hull[i]
	}
}

// clipConvexHull walks the hull to the point where it enters the band dMin..dMax and returns the parameter there.
func clipConvexHull(hullTop, hullBottom [][2]float64, dMin, dMax float64) (float64, bool) {
	if hullTop[0][1] < dMin {
		return clipConvexHullPart(hullTop, true, dMin)
	} else if dMax < hullBottom[0][1] {
		return clipConvexHullPart(hullBottom, false, dMax)
	}
	return hullTop[0][0], true
}

func clipConvexHullPart(part [][2]float64, top bool, threshold float64) (float64, bool) {
	px, py := part[0][0], part[0][1]
	for _, q := range part[1:] {
		qx, qy := q[0], q[1]
		if top && threshold <= qy || !top && qy <= threshold {
			if qy == threshold {
				return qx, true
			}
			return px + (threshold-py)*(qx-px)/(qy-py), true
		}
		px, py = qx, qy
	}
	// the hull never enters the band
	return 0.0, false
}

////////////////////////////////////////////////////////////////

// curveSetIntersections finds all intersections between two sets of curves, or the self intersections of one set when self is set.
func curveSetIntersections(curves1, curves2 []*Curve, self bool, include includeFunc) *locationSet {
	s := newLocationSet()
	curveSetIntersectionsInto(s, curves1, curves2, self, include)
	return s
}

// curveSetIntersectionsInto records the intersections into an existing set, so that the include filter can consult locations recorded earlier in the same search.
func curveSetIntersectionsInto(s *locationSet, curves1, curves2 []*Curve, self bool, include includeFunc) {
	if self {
		curves2 = curves1
	}
	values1 := make([][8]float64, len(curves1))
	for i, c := range curves1 {
		values1[i] = c.Values()
	}
	values2 := values1
	if !self {
		values2 = make([][8]float64, len(curves2))
		for i, c := range curves2 {
			values2[i] = c.Values()
		}
	}
	collisions := findCurveBoundsCollisions(curves1, curves2, Epsilon)
	for i1, c1 := range curves1 {
		v1 := &values1[i1]
		if self {
			s.selfIntersection(v1, c1, include)
		}
		for _, i2 := range collisions[i1] {
			if !self || i1 < i2 {
				s.curveIntersections(v1, &values2[i2], c1, curves2[i2], include)
			}
		}
	}
}

func pathsCurves(ps Paths) []*Curve {
	var curves []*Curve
	for _, p := range ps {
		curves = append(curves, p.Curves()...)
	}
	return curves
}

// Intersections returns the intersections between paths p and q in contour order. Partner indices refer into the returned slice.
func (p *Path) Intersections(q *Path) []*CurveLocation {
	if q == nil || q == p {
		return p.SelfIntersections()
	}
	return curveSetIntersections(p.Curves(), q.Curves(), false, nil).export()
}

// SelfIntersections returns the intersections of the path with itself in contour order.
func (p *Path) SelfIntersections() []*CurveLocation {
	return curveSetIntersections(p.Curves(), nil, true, nil).export()
}

// Intersections returns the intersections between the two contour sets in contour order.
func (ps Paths) Intersections(qs Paths) []*CurveLocation {
	return curveSetIntersections(pathsCurves(ps), pathsCurves(qs), false, nil).export()
}

// SelfIntersections returns the intersections of the contour set with itself, including those between different contours of the set.
func (ps Paths) SelfIntersections() []*CurveLocation {
	return curveSetIntersections(pathsCurves(ps), nil, true, nil).export()
}

// Intersections returns the intersections between the two curves.
func (c *Curve) Intersections(o *Curve) []*CurveLocation {
	s := newLocationSet()
	v1, v2 := c.Values(), o.Values()
	s.curveIntersections(&v1, &v2, c, o, nil)
	return s.export()
}

// SelfIntersections returns the double point of the curve when it loops.
func (c *Curve) SelfIntersections() []*CurveLocation {
	s := newLocationSet()
	v := c.Values()
	s.selfIntersection(&v, c, nil)
	return s.export()
}

////////////////////////////////////////////////////////////////

// isTouching returns true if the two curves are tangential at the location without crossing. Straight curves that still intersect elsewhere do not count as touching.
func (s *locationSet) isTouching(loc *CurveLocation) bool {
	twin := s.partner(loc)
	t1 := loc.Curve.TangentAt(loc.Time)
	t2 := twin.Curve.TangentAt(twin.Time)
	if t1.Collinear(t2) {
		c1, c2 := loc.Curve, twin.Curve
		if c1.IsStraight() && c2.IsStraight() {
			if _, ok := lineIntersect(c1.Point1(), c1.Point2(), c2.Point1(), c2.Point2()); ok {
				return false
			}
		}
		return true
	}
	return false
}

// curvePointAtOffset returns the point at the given arc length from the start of the curve, or from its end for negative offsets.
func curvePointAtOffset(c *Curve, offset float64) Point {
	v := c.Values()
	if offset < 0.0 {
		return cubicPos(&v, cubicTimeAtLength(&v, cubicLength(&v, 0.0, 1.0)+offset))
	}
	return cubicPos(&v, cubicTimeAtLength(&v, offset))
}

// angleInRange returns true if the angle lies strictly between lo and hi, with the range wrapping around at +-PI when hi is less than lo.
func angleInRange(angle, lo, hi float64) bool {
	if lo < hi {
		return lo < angle && angle < hi
	}
	return lo < angle || angle < hi
}

// isCrossing returns true if the two paths truly cross at this location, as opposed to merely touching. At curve ends the incoming and outgoing edges of both paths are compared by angle: the paths cross when the edges of one separate the edges of the other.
func (s *locationSet) isCrossing(loc *CurveLocation) bool {
	twin := s.partner(loc)
	t1, t2 := loc.Time, twin.Time
	tMin, tMax := CurveTimeEpsilon, 1.0-CurveTimeEpsilon
	t1Inside := tMin <= t1 && t1 <= tMax
	t2Inside := tMin <= t2 && t2 <= tMax
	if t1Inside && t2Inside {
		return !s.isTouching(loc)
	}

	// the four involved curve edges around the location
	c2, c4 := loc.Curve, twin.Curve
	c1, c3 := c2, c4
	if t1 < tMin {
		c1 = c2.Previous()
	}
	if t2 < tMin {
		c3 = c4.Previous()
	}
	if tMax < t1 {
		c2 = c2.Next()
	}
	if tMax < t2 {
		c4 = c4.Next()
	}
	if c1 == nil || c2 == nil || c3 == nil || c4 == nil {
		return false
	}

	// find an offset short enough that every edge's direction is unambiguous, stopping before loops, cusps, inflections and peaks
	var offsets []float64
	addOffsets := func(c *Curve, atEnd bool) {
		v := c.Values()
		_, roots := classifyCubic(&v)
		if len(roots) == 0 {
			roots = cubicPeaks(&v)
		}
		count := len(roots)
		var offset float64
		if atEnd {
			from := 0.0
			if 0 < count {
				from = roots[count-1]
			}
			offset = cubicLength(&v, from, 1.0)
		} else {
			to := 1.0
			if 0 < count {
				to = roots[0]
			}
			offset = cubicLength(&v, 0.0, to)
		}
		if count == 0 {
			offset /= 32.0
		}
		offsets = append(offsets, offset)
	}
	if !t1Inside {
		addOffsets(c1, true)
		addOffsets(c2, false)
	}
	if !t2Inside {
		addOffsets(c3, true)
		addOffsets(c4, false)
	}
	offset := offsets[0]
	for _, o := range offsets[1:] {
		offset = math.Min(offset, o)
	}

	pt := loc.Point
	var v1, v2, v3, v4 Point
	if t1Inside {
		v2 = loc.Curve.TangentAt(t1)
		v1 = v2.Neg()
	} else {
		v2 = curvePointAtOffset(c2, offset).Sub(pt)
		v1 = curvePointAtOffset(c1, -offset).Sub(pt)
	}
	if t2Inside {
		v4 = twin.Curve.TangentAt(t2)
		v3 = v4.Neg()
	} else {
		v4 = curvePointAtOffset(c4, offset).Sub(pt)
		v3 = curvePointAtOffset(c3, -offset).Sub(pt)
	}
	a1, a2 := v1.Angle(), v2.Angle()
	a3, a4 := v3.Angle(), v4.Angle()
	// the paths cross when the edges of one separate the edges of the other
	if t1Inside {
		return (angleInRange(a1, a3, a4) != angleInRange(a2, a3, a4)) &&
			(angleInRange(a1, a4, a3) != angleInRange(a2, a4, a3))
	}
	return (angleInRange(a3, a1, a2) != angleInRange(a4, a1, a2)) &&
		(angleInRange(a3, a2, a1) != angleInRange(a4, a2, a1))
}
