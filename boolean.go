package pathbool

import (
	"math"
	"sort"
)

// operator describes one boolean operation: which winding numbers select a curve chain for the result, and which operation is running for the cases that need to know.
type operator struct {
	unite, intersect, subtract, exclude bool

	keep map[int]bool
}

var (
	opUnite     = &operator{unite: true, keep: map[int]bool{1: true, 2: true}}
	opIntersect = &operator{intersect: true, keep: map[int]bool{2: true}}
	opSubtract  = &operator{subtract: true, keep: map[int]bool{1: true}}
	opExclude   = &operator{exclude: true, keep: map[int]bool{1: true, -1: true}}
)

// Unite returns the union of the two contour sets.
func Unite(a, b Paths) Paths {
	return traceBoolean(a, b, opUnite)
}

// Intersect returns the regions covered by both contour sets.
func Intersect(a, b Paths) Paths {
	return traceBoolean(a, b, opIntersect)
}

// Subtract returns the regions of a not covered by b.
func Subtract(a, b Paths) Paths {
	return traceBoolean(a, b, opSubtract)
}

// Exclude returns the regions covered by exactly one of the two contour sets.
func Exclude(a, b Paths) Paths {
	return traceBoolean(a, b, opExclude)
}

// Divide cuts a along the contours of b, returning the union and the subtraction together. Re-uniting the pieces recovers the union of a and b.
func Divide(a, b Paths) Paths {
	res := append(Paths{}, Unite(a, b)...)
	return append(res, Subtract(a, b)...)
}

// Unite returns the union of the two paths.
func (p *Path) Unite(q *Path) Paths { return Unite(Paths{p}, Paths{q}) }

// Intersect returns the regions covered by both paths.
func (p *Path) Intersect(q *Path) Paths { return Intersect(Paths{p}, Paths{q}) }

// Subtract returns the regions of p not covered by q.
func (p *Path) Subtract(q *Path) Paths { return Subtract(Paths{p}, Paths{q}) }

// Exclude returns the regions covered by exactly one of the two paths.
func (p *Path) Exclude(q *Path) Paths { return Exclude(Paths{p}, Paths{q}) }

// Divide cuts p along the contours of q.
func (p *Path) Divide(q *Path) Paths { return Divide(Paths{p}, Paths{q}) }

// Unite returns the union of the two contour sets.
func (ps Paths) Unite(qs Paths) Paths { return Unite(ps, qs) }

// Intersect returns the regions covered by both contour sets.
func (ps Paths) Intersect(qs Paths) Paths { return Intersect(ps, qs) }

// Subtract returns the regions of ps not covered by qs.
func (ps Paths) Subtract(qs Paths) Paths { return Subtract(ps, qs) }

// Exclude returns the regions covered by exactly one of the two contour sets.
func (ps Paths) Exclude(qs Paths) Paths { return Exclude(ps, qs) }

// Divide cuts ps along the contours of qs.
func (ps Paths) Divide(qs Paths) Paths { return Divide(ps, qs) }

// ResolveCrossings returns a copy of the contour set with self crossings resolved into separate contours and overlapping runs divided.
func (ps Paths) ResolveCrossings() Paths {
	return resolveCrossings(ps.Clone())
}

// Reorient fixes the contour orientations so that filling with the non-zero rule matches the given fill rule, removing contours that do not contribute. Outermost contours are oriented counter clockwise when ccw is set.
func (ps Paths) Reorient(fillRule FillRule, ccw bool) Paths {
	isInside := func(w int) bool { return w != 0 }
	if fillRule == EvenOdd {
		isInside = func(w int) bool { return w&1 != 0 }
	}
	return reorientPaths(ps, isInside, &ccw)
}

////////////////////////////////////////////////////////////////

// segmentInfo is the per-run state of one segment: the head of its intersection chain in the location store, its propagated winding, and the visited flag of the tracer.
type segmentInfo struct {
	inter      int
	winding    Winding
	hasWinding bool
	visited    bool
}

// booleanRun holds the shared state of one boolean operation: the location store and the per-segment side table. Segments themselves stay untouched, so concurrent runs over the same paths do not interfere through them.
type booleanRun struct {
	locs *locationSet
	info map[*Segment]*segmentInfo
}

func newBooleanRun() *booleanRun {
	return &booleanRun{
		locs: newLocationSet(),
		info: map[*Segment]*segmentInfo{},
	}
}

func (r *booleanRun) infoOf(seg *Segment) *segmentInfo {
	si := r.info[seg]
	if si == nil {
		si = &segmentInfo{inter: -1}
		r.info[seg] = si
	}
	return si
}

// interOf returns the first location anchored at the segment, or nil.
func (r *booleanRun) interOf(seg *Segment) *CurveLocation {
	if si := r.info[seg]; si != nil && si.inter != -1 {
		return r.locs.locs[si.inter]
	}
	return nil
}

func (r *booleanRun) visited(seg *Segment) bool {
	si := r.info[seg]
	return si != nil && si.visited
}

////////////////////////////////////////////////////////////////

// preparePaths clones and normalizes the operand: open contours are closed with a straight joint, self crossings are resolved, and orientations are fixed for the non-zero rule.
func preparePaths(ps Paths) Paths {
	qs := make(Paths, 0, len(ps))
	for _, p := range ps.Clone() {
		if len(p.segments) < 2 {
			continue
		}
		if !p.closed {
			p.Close()
			p.FirstSegment().handleIn = Point{}
			p.LastSegment().handleOut = Point{}
			p.structChanged()
		}
		qs = append(qs, p)
	}
	qs = resolveCrossings(qs)
	ccw := true
	return reorientPaths(qs, func(w int) bool { return w != 0 }, &ccw)
}

// resolveCrossings divides the contour set at its self intersections and retraces it, so that afterwards no contour crosses itself or another contour of the set.
func resolveCrossings(ps Paths) Paths {
	r := newBooleanRun()
	hasOverlaps, hasCrossings := false, false
	include := func(loc *CurveLocation) bool {
		if r.locs.hasOverlap(loc) {
			hasOverlaps = true
			return true
		}
		if r.locs.isCrossing(loc) {
			hasCrossings = true
			return true
		}
		return false
	}
	curveSetIntersectionsInto(r.locs, pathsCurves(ps), nil, true, include)
	if !hasOverlaps && !hasCrossings {
		return ps
	}

	idxs := r.locs.expand()
	var clearCurves []*Curve
	var clearLater *[]*Curve
	if hasOverlaps && hasCrossings {
		clearLater = &clearCurves
	}
	if hasOverlaps {
		r.divideLocations(idxs, r.locs.hasOverlap, clearLater)
	}
	if hasCrossings {
		r.divideLocations(idxs, nil, clearLater)
		clearCurveHandles(clearCurves)
		var segments []*Segment
		for _, p := range ps {
			segments = append(segments, p.segments...)
		}
		ps = r.tracePaths(segments, nil, nil)
	}
	return ps
}

// clearCurveHandles removes the handles that dividing introduced on curves that had none before.
func clearCurveHandles(curves []*Curve) {
	for _, c := range curves {
		c.seg1.SetHandleOut(Point{})
		c.seg2.SetHandleIn(Point{})
	}
}

////////////////////////////////////////////////////////////////

// divideLocations splits the curves at the given locations, which must be sorted in contour order. Locations are processed right to left so that curve times of earlier splits on the same curve can be renormalized onto the shortened curve. Each divided location is anchored to its segment and linked to the other locations meeting there. With include set, only matching locations are divided and their indices returned; the rest have their times renormalized for a later pass. Curves that had no handles get them back removed through clearLater, or right away when it is nil.
func (r *booleanRun) divideLocations(idxs []int, include func(*CurveLocation) bool, clearLater *[]*Curve) []int {
	locs := r.locs.locs
	var results []int
	tMin, tMax := CurveTimeEpsilon, 1.0-CurveTimeEpsilon
	clearHandles := false
	var clearCurves []*Curve
	clearLookup := map[*Curve]bool{}
	if clearLater != nil {
		clearCurves = *clearLater
		for _, c := range clearCurves {
			clearLookup[c] = true
		}
	}
	var renormalize []*CurveLocation
	var prevCurve *Curve
	prevTime := -1.0

	for i := len(idxs) - 1; 0 <= i; i-- {
		loc := locs[idxs[i]]
		time := loc.Time
		origTime := time
		exclude := include != nil && !include(loc)
		curve := loc.Curve
		if curve != prevCurve {
			clearHandles = !curve.HasHandles() || clearLookup[curve]
			renormalize = nil
			prevTime = -1.0
			prevCurve = curve
		} else if tMin <= prevTime {
			// the curve was already split to our right, rescale onto the left part
			time /= prevTime
		}
		if exclude {
			renormalize = append(renormalize, loc)
			continue
		}
		if include != nil {
			results = append(results, idxs[i])
		}
		prevTime = origTime

		var segment *Segment
		if time < tMin {
			segment = curve.seg1
		} else if tMax < time {
			segment = curve.seg2
		} else {
			newCurve := curve.DivideAtTime(time)
			if clearHandles {
				clearCurves = append(clearCurves, curve, newCurve)
			}
			segment = newCurve.seg1
			for j := len(renormalize) - 1; 0 <= j; j-- {
				l := renormalize[j]
				l.Time = (l.Time - time) / (1.0 - time)
			}
		}
		loc.segment = segment
		if c := segment.curveOut(); c != nil {
			loc.Curve, loc.Time = c, 0.0
		} else {
			loc.Time = 1.0
		}

		// anchor the twin location at the segment, linking into the chain of locations already meeting there
		si := r.infoOf(segment)
		dest := loc.Partner
		if si.inter != -1 {
			r.linkIntersections(si.inter, dest)
			for other := si.inter; other != -1; other = locs[other].next {
				r.linkIntersections(locs[other].Partner, si.inter)
			}
		} else {
			si.inter = dest
		}
	}
	if clearLater == nil {
		clearCurveHandles(clearCurves)
	} else {
		*clearLater = clearCurves
	}
	if include == nil {
		return idxs
	}
	// restore contour order
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results
}

// linkIntersections appends the chain of to onto the chain of from, unless to is already part of it.
func (r *booleanRun) linkIntersections(from, to int) {
	locs := r.locs.locs
	for prev := from; prev != -1; prev = locs[prev].prev {
		if prev == to {
			return
		}
	}
	for locs[from].next != -1 && locs[from].next != to {
		from = locs[from].next
	}
	if locs[from].next == -1 {
		for locs[to].prev != -1 {
			to = locs[to].prev
		}
		locs[from].next = to
		locs[to].prev = from
	}
}

////////////////////////////////////////////////////////////////

// curveLists holds the collision-culled curve lists of one curve per ray direction.
type curveLists struct {
	hor, ver []*Curve
}

// propagateWinding determines the winding contribution of the curve chain starting at the segment and running to the next intersected segment, and assigns it to every segment of the chain. The winding is sampled at up to three points along the chain until a sample of sufficient quality is found.
func (r *booleanRun) propagateWinding(segment *Segment, opA, opB Paths, operandB map[*Path]bool, collisions map[*Curve]curveLists, op *operator) {
	type link struct {
		segment *Segment
		curve   *Curve
		length  float64
	}
	var chain []link
	start := segment
	totalLength := 0.0
	for {
		if curve := segment.curveOut(); curve != nil {
			length := curve.Length()
			chain = append(chain, link{segment, curve, length})
			totalLength += length
		}
		segment = segment.Next()
		if segment == nil || r.interOf(segment) != nil || segment == start {
			break
		}
	}

	offsets := [3]float64{0.5, 0.25, 0.75}
	winding := Winding{Quality: -1.0}
	tMin, tMax := 1e-3, 1.0-1e-3
	for i := 0; i < len(offsets) && winding.Quality < 0.5; i++ {
		length := totalLength * offsets[i]
		for _, entry := range chain {
			if length <= entry.length {
				curve := entry.curve
				path := curve.path
				t := clamp(curve.TimeAt(length), tMin, tMax)
				pt := curve.PointAt(t)
				// cast the ray across the curve's direction
				dir := math.Abs(curve.TangentAt(t).Y) < math.Sqrt2/2.0
				var wind *Winding
				if op.subtract && opB != nil {
					// omit curves of the subtrahend outside the minuend and of the minuend inside the subtrahend
					other := opA
					if !operandB[path] {
						other = opB
					}
					pw := windingAt(pt, pathsCurves(other), dir, true, false)
					if !operandB[path] && pw.Winding != 0 || operandB[path] && pw.Winding == 0 {
						if pw.Quality < 1.0 {
							continue
						}
						wind = &Winding{Winding: 0, Quality: 1.0}
					}
				}
				if wind == nil {
					lists := collisions[curve]
					w := windingRay(pt, lists.hor, lists.ver, dir, true, false)
					wind = &w
				}
				if winding.Quality < wind.Quality {
					winding = *wind
				}
				break
			}
			length -= entry.length
		}
	}
	for _, entry := range chain {
		si := r.infoOf(entry.segment)
		si.winding = winding
		si.hasWinding = true
	}
}

////////////////////////////////////////////////////////////////

// tracePaths marches along the divided segments and builds the result contours, switching between operands at crossings. When a dead end is reached it backtracks to the last crossing and tries the remaining options there. With a nil operator every unvisited segment is considered part of the result, which retraces self-crossing paths into simple ones.
func (r *booleanRun) tracePaths(segments []*Segment, op *operator, overlapsOnly map[*Path]bool) Paths {
	var paths Paths
	var starts []*Segment

	isValid := func(seg *Segment) bool {
		if seg == nil || r.visited(seg) {
			return false
		}
		if op == nil {
			return true
		}
		si := r.info[seg]
		if si == nil || !si.hasWinding || !op.keep[si.winding.Winding] {
			return false
		}
		// a chain covered by both operands only borders the union when one side is empty
		if op.unite && si.winding.Winding == 2 && si.winding.WindingL != 0 && si.winding.WindingR != 0 {
			return false
		}
		return true
	}

	isStart := func(seg *Segment) bool {
		if seg != nil {
			for _, s := range starts {
				if seg == s {
					return true
				}
			}
		}
		return false
	}

	visitPath := func(p *Path) {
		for _, s := range p.segments {
			r.infoOf(s).visited = true
		}
	}

	// getCrossingSegments returns the segments at the intersection chain of seg that are worth switching to, preferring ones that lead back to the start or are still valid.
	getCrossingSegments := func(segment *Segment, collectStarts bool) []*Segment {
		locs := r.locs.locs
		interIdx := -1
		if si := r.info[segment]; si != nil {
			interIdx = si.inter
		}
		var crossings []*Segment
		if collectStarts {
			starts = []*Segment{segment}
		}
		collect := func(inter, end int) {
			for inter != -1 && inter != end {
				loc := locs[inter]
				other := loc.segment
				if other != nil && other.path != nil {
					next := other.Next()
					if next == nil {
						next = other.path.FirstSegment()
					}
					var nextInterSeg *Segment
					if next != nil {
						if nsi := r.info[next]; nsi != nil && nsi.inter != -1 {
							nextInterSeg = locs[nsi.inter].segment
						}
					}
					if other != segment && (isStart(other) || isStart(next) ||
						next != nil && isValid(other) && (isValid(next) ||
							nextInterSeg != nil && isValid(nextInterSeg))) {
						crossings = append(crossings, other)
					}
					if collectStarts {
						starts = append(starts, other)
					}
				}
				inter = loc.next
			}
		}
		if interIdx != -1 {
			collect(interIdx, -1)
			inter := interIdx
			for locs[inter].prev != -1 {
				inter = locs[inter].prev
			}
			collect(inter, interIdx)
		}
		return crossings
	}

	// prefer unambiguous starting points: plain segments first, intersections later, overlaps last
	sort.SliceStable(segments, func(i, j int) bool {
		seg1, seg2 := segments[i], segments[j]
		inter1, inter2 := r.interOf(seg1), r.interOf(seg2)
		over1 := inter1 != nil && inter1.Overlap
		over2 := inter2 != nil && inter2.Overlap
		if over1 != over2 {
			return !over1
		}
		if (inter1 != nil) != (inter2 != nil) {
			return inter1 == nil
		}
		if seg1.path != seg2.path {
			return seg1.path.pid() < seg2.path.pid()
		}
		return seg1.index < seg2.index
	})

	type branchState struct {
		start     int
		crossings []*Segment
		visited   []*Segment
		handleIn  Point
	}

	for _, segStart := range segments {
		seg := segStart
		valid := isValid(seg)
		var path *Path
		finished := false
		closed := true
		var branches []*branchState
		var branch *branchState
		var handleIn Point

		// two contours that fully overlap each other appear once in the result
		if valid && overlapsOnly[seg.path] {
			path1 := seg.path
			if inter := r.interOf(seg); inter != nil && inter.segment != nil {
				path2 := inter.segment.path
				if path2 != nil && path1.coincides(path2) {
					if path1.Area() != 0.0 {
						paths = append(paths, path1.Clone())
					}
					visitPath(path1)
					visitPath(path2)
					valid = false
				}
			}
		}

		for valid {
			first := path == nil
			crossings := getCrossingSegments(seg, first)
			var other *Segment
			if 0 < len(crossings) {
				other = crossings[0]
				crossings = crossings[1:]
			}
			finished = !first && (isStart(seg) || isStart(other))
			cross := !finished && other != nil
			if first {
				path = &Path{}
				branch = nil
			}
			if finished {
				// carry over the closed state of open operands
				if seg.IsFirst() || seg.IsLast() {
					closed = seg.path.closed
				}
				r.infoOf(seg).visited = true
				break
			}
			if cross && branch != nil {
				branches = append(branches, branch)
				branch = nil
			}
			if branch == nil {
				// staying on this path is the last option to try at this crossing
				if cross {
					crossings = append(crossings, seg)
				}
				branch = &branchState{
					start:     len(path.segments),
					crossings: crossings,
					handleIn:  handleIn,
				}
			}
			if cross {
				seg = other
			}
			if !isValid(seg) {
				// dead end, undo this branch and try the remaining crossings
				path.removeSegments(branch.start)
				for _, s := range branch.visited {
					r.infoOf(s).visited = false
				}
				branch.visited = branch.visited[:0]
				for {
					seg = nil
					if branch != nil && 0 < len(branch.crossings) {
						seg = branch.crossings[0]
						branch.crossings = branch.crossings[1:]
					}
					if seg == nil || seg.path == nil {
						seg = nil
						branch = nil
						if 0 < len(branches) {
							branch = branches[len(branches)-1]
							branches = branches[:len(branches)-1]
							handleIn = branch.handleIn
						}
					}
					if branch == nil || seg != nil && isValid(seg) {
						break
					}
				}
				if seg == nil {
					break
				}
			}

			// append the segment; the end of an open operand connects straight back to its start
			next := seg.Next()
			newSeg := NewSegment(seg.point, handleIn, Point{})
			if next != nil {
				newSeg.handleOut = seg.handleOut
			}
			path.Add(newSeg)
			r.infoOf(seg).visited = true
			branch.visited = append(branch.visited, seg)
			if next != nil {
				seg = next
				handleIn = next.handleIn
			} else {
				seg = seg.path.FirstSegment()
				handleIn = Point{}
			}
		}

		if finished && path != nil {
			if closed {
				path.FirstSegment().handleIn = handleIn
				path.closed = true
				path.structChanged()
			}
			// drop zero-area remnants
			if path.Area() != 0.0 {
				paths = append(paths, path)
			}
		}
	}
	return paths
}

////////////////////////////////////////////////////////////////

// reorientPaths fixes the orientation of the contours so that filling the set with the non-zero rule matches isInside applied to the nested winding, and drops contours across which the filled state does not change. Contours are processed from largest to smallest so containers are fixed before their contents. With ccwFirst nil the largest contour keeps its orientation.
func reorientPaths(ps Paths, isInside func(int) bool, ccwFirst *bool) Paths {
	if len(ps) == 0 {
		return ps
	}
	type entry struct {
		container *Path
		winding   int
		index     int
		exclude   bool
	}
	lookup := make(map[*Path]*entry, len(ps))
	for i, p := range ps {
		w := -1
		if p.CCW() {
			w = 1
		}
		lookup[p] = &entry{winding: w, index: i}
	}
	sorted := append(Paths{}, ps...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return math.Abs(sorted[j].Area()) < math.Abs(sorted[i].Area())
	})
	boundsList := make([][4]float64, len(sorted))
	for i, p := range sorted {
		b := p.Bounds()
		boundsList[i] = [4]float64{b.X, b.Y, b.X + b.W, b.Y + b.H}
	}
	collisions := findBoundsCollisions(boundsList, boundsList, Epsilon, false, false)
	ccw := sorted[0].CCW()
	if ccwFirst != nil {
		ccw = *ccwFirst
	}
	out := append(Paths{}, ps...)
	for i, p1 := range sorted {
		e1 := lookup[p1]
		containerWinding := 0
		indices := collisions[i]
		var pt Point
		havePt := false
		for j := len(indices) - 1; 0 <= j; j-- {
			// only larger contours can contain this one
			if indices[j] < i {
				if !havePt {
					pt = p1.InteriorPoint()
					havePt = true
				}
				p2 := sorted[indices[j]]
				if p2.Contains(pt, NonZero) {
					e2 := lookup[p2]
					containerWinding = e2.winding
					e1.winding += containerWinding
					if e2.exclude {
						e1.container = e2.container
					} else {
						e1.container = p2
					}
					break
				}
			}
		}
		if isInside(e1.winding) == isInside(containerWinding) {
			// the filled state does not change across this contour
			e1.exclude = true
			out[e1.index] = nil
		} else if e1.container != nil {
			p1.SetCCW(!e1.container.CCW())
		} else {
			p1.SetCCW(ccw)
		}
	}
	var res Paths
	for _, p := range out {
		if p != nil {
			res = append(res, p)
		}
	}
	return res
}

////////////////////////////////////////////////////////////////

// traceBoolean runs one boolean operation: both operands are prepared and oriented, their curves divided at all crossings, winding contributions propagated along the chains, and the result traced. Without crossings the result follows from containment alone.
func traceBoolean(a, b Paths, op *operator) Paths {
	pa := preparePaths(a)
	pb := preparePaths(b)

	// subtraction and exclusion need the operands at opposite orientations
	ccwA, ccwB := 0.0 <= pa.Area(), 0.0 <= pb.Area()
	if (op.subtract || op.exclude) != (ccwA != ccwB) {
		pb.Reverse()
	}

	r := newBooleanRun()
	include := func(loc *CurveLocation) bool {
		return r.locs.hasOverlap(loc) || r.locs.isCrossing(loc)
	}
	curveSetIntersectionsInto(r.locs, pathsCurves(pa), pathsCurves(pb), false, include)
	crossings := r.divideLocations(r.locs.expand(), nil, nil)

	if len(crossings) == 0 {
		// no crossings, containment decides
		all := append(Paths{}, pa...)
		all = append(all, pb...)
		return reorientPaths(all, func(w int) bool { return op.keep[w] }, nil)
	}

	var segments []*Segment
	var curves []*Curve
	overlapsOnly := map[*Path]bool{}
	operandB := map[*Path]bool{}
	for _, p := range pa {
		segments = append(segments, p.segments...)
		curves = append(curves, p.Curves()...)
		overlapsOnly[p] = true
	}
	for _, p := range pb {
		segments = append(segments, p.segments...)
		curves = append(curves, p.Curves()...)
		overlapsOnly[p] = true
		operandB[p] = true
	}

	// per-curve collision lists cut the winding rays down to nearby curves
	axes := findCurveBoundsCollisionsAxes(curves, 0.0)
	collisions := make(map[*Curve]curveLists, len(curves))
	for i, c := range curves {
		var lists curveLists
		for _, j := range axes[i].hor {
			lists.hor = append(lists.hor, curves[j])
		}
		for _, j := range axes[i].ver {
			lists.ver = append(lists.ver, curves[j])
		}
		collisions[c] = lists
	}

	// windings of chains starting at crossings first, then of all remaining chains
	for _, ci := range crossings {
		if seg := r.locs.locs[ci].segment; seg != nil {
			r.propagateWinding(seg, pa, pb, operandB, collisions, op)
		}
	}
	for _, seg := range segments {
		si := r.infoOf(seg)
		if !si.hasWinding {
			r.propagateWinding(seg, pa, pb, operandB, collisions, op)
		}
		inter := r.interOf(seg)
		if inter == nil || !inter.Overlap {
			overlapsOnly[seg.path] = false
		}
	}
	return r.tracePaths(segments, op, overlapsOnly)
}
