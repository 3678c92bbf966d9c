package pathbool

import (
	"fmt"
	"math"
)

// Winding is the winding number of a point relative to a set of curves, split into the contributions just left and just right of the point. The overall Winding is the larger of the two. Quality estimates how reliable the sampling was, 1 being fully reliable, and OnPath reports that the point lies on a curve itself.
type Winding struct {
	Winding  int
	WindingL int
	WindingR int
	Quality  float64
	OnPath   bool
}

func (w Winding) String() string {
	s := fmt.Sprintf("%d [%d %d] quality=%v", w.Winding, w.WindingL, w.WindingR, w.Quality)
	if w.OnPath {
		s += " on-path"
	}
	return s
}

const (
	windingEpsilon = 1e-9
	qualityEpsilon = 1e-6
)

// windingAt casts a ray from the point and counts the crossings of the curves. With dir unset the ray runs along x, otherwise along y. With closed set, open paths are closed with their handles taken into account instead of by a plain chord.
func windingAt(pt Point, curves []*Curve, dir, closed, dontFlip bool) Winding {
	return windingRay(pt, curves, curves, dir, closed, dontFlip)
}

// windingRay computes the winding of the point with separate curve lists per ray direction, so callers can pass collision-culled lists. Curves of the same path must be adjacent and in path order within each list.
func windingRay(pt Point, hor, ver []*Curve, dir, closed, dontFlip bool) Winding {
	list := ver
	if dir {
		list = hor
	}
	// the abscissa runs along the ray, the ordinate across it
	ia := 0
	if dir {
		ia = 1
	}
	io := ia ^ 1
	pv := [2]float64{pt.X, pt.Y}
	pa, po := pv[ia], pv[io]
	paL, paR := pa-windingEpsilon, pa+windingEpsilon

	var windingL, windingR, pathWindingL, pathWindingR int
	var onPath, onAnyPath bool
	quality := 1.0
	var vPrev, vClose [8]float64
	var vPrevSet, vCloseSet bool
	var flipped Winding

	// addWinding counts the crossing of one monotone piece, returning true when the winding was recomputed with a flipped ray because the tangent at the crossing runs along the ray.
	addWinding := func(v *[8]float64) bool {
		o0, o3 := v[io], v[io+6]
		if po < math.Min(o0, o3) || math.Max(o0, o3) < po {
			return false
		}
		a0, a1, a2, a3 := v[ia], v[ia+2], v[ia+4], v[ia+6]
		if o0 == o3 {
			// the piece runs along the ray and covers the point
			if a0 < paR && paL < a3 || a3 < paR && paL < a0 {
				onPath = true
			}
			return false
		}
		var t float64
		switch {
		case po == o0:
			t = 0.0
		case po == o3:
			t = 1.0
		case max4(a0, a1, a2, a3) < paL || paR < min4(a0, a1, a2, a3):
			// all abscissas on one side, the exact crossing time is irrelevant
			t = 1.0
		default:
			if roots := cubicSolveCoord(v, io, po, 0.0, 1.0); 0 < len(roots) {
				t = roots[0]
			} else {
				t = 0.5
			}
		}
		var a float64
		switch {
		case t == 0.0:
			a = a0
		case t == 1.0:
			a = a3
		default:
			p := cubicPos(v, t)
			if dir {
				a = p.Y
			} else {
				a = p.X
			}
		}
		winding := -1
		if o3 < o0 {
			winding = 1
		}
		windingPrev := -1
		if vPrev[io+6] < vPrev[io] {
			windingPrev = 1
		}
		a3Prev := vPrev[ia+6]
		if po != o0 {
			// crossing mid-piece
			if a < paL {
				pathWindingL += winding
			} else if paR < a {
				pathWindingR += winding
			} else {
				onPath = true
			}
			// crossings very close to the point make the result unreliable
			if pa-qualityEpsilon < a && a < pa+qualityEpsilon {
				quality /= 2.0
			}
		} else {
			// crossing at the piece's start anchor
			if winding != windingPrev {
				// the previous piece crossed back, count this one
				if a0 < paL {
					pathWindingL += winding
				} else if paR < a0 {
					pathWindingR += winding
				}
			} else if a0 != a3Prev {
				// a piece running along the ray sits between this piece and the previous one
				if a3Prev < paR && paL < a {
					pathWindingL += winding
					onPath = true
				} else if paL < a3Prev && a < paR {
					pathWindingR += winding
					onPath = true
				}
			}
			quality /= 4.0
		}
		vPrev = *v
		vPrevSet = true
		if !dontFlip && paL < a && a < paR {
			tangent := cubicTangent(v, t)
			along := tangent.Y
			if dir {
				along = tangent.X
			}
			if along == 0.0 {
				// the tangent runs along the ray, a flipped ray is unambiguous here
				flipped = windingRay(pt, hor, ver, !dir, closed, true)
				return true
			}
		}
		return false
	}

	handleCurve := func(v *[8]float64) bool {
		o0, o1, o2, o3 := v[io], v[io+2], v[io+4], v[io+6]
		if po < min4(o0, o1, o2, o3) || max4(o0, o1, o2, o3) < po {
			return false
		}
		a0, a1, a2, a3 := v[ia], v[ia+2], v[ia+4], v[ia+6]
		if max4(a0, a1, a2, a3) < paL || paR < min4(a0, a1, a2, a3) {
			return addWinding(v)
		}
		for _, mv := range cubicMonoCurves(v, dir) {
			mv := mv
			if addWinding(&mv) {
				return true
			}
		}
		return false
	}

	for i, curve := range list {
		path := curve.path
		v := curve.Values()
		if i == 0 || list[i-1].path != path {
			// determine the last non-horizontal curve of this path, to resolve crossings at the first anchor
			vPrevSet = false
			vCloseSet = false
			if !path.closed {
				vClose = segmentValues(path.LastCurve().seg2, curve.seg1, !closed)
				vCloseSet = true
				if vClose[io] != vClose[io+6] {
					vPrev = vClose
					vPrevSet = true
				}
			}
			if !vPrevSet {
				vPrev = v
				prev := path.LastCurve()
				for prev != nil && prev != curve {
					v2 := prev.Values()
					if v2[io] != v2[io+6] {
						vPrev = v2
						break
					}
					prev = prev.Previous()
				}
				vPrevSet = true
			}
		}
		if handleCurve(&v) {
			return flipped
		}
		if i+1 == len(list) || list[i+1].path != path {
			// last curve of this path, close it with the synthetic closing curve
			if vCloseSet {
				if handleCurve(&vClose) {
					return flipped
				}
				vCloseSet = false
			}
			if onPath && pathWindingL == 0 && pathWindingR == 0 {
				// the crossings canceled but the point lies on the path, treat it as inside
				add := -1
				if path.CCW() != dir {
					add = 1
				}
				pathWindingL += add
				pathWindingR -= add
			}
			windingL += pathWindingL
			windingR += pathWindingR
			pathWindingL, pathWindingR = 0, 0
			if onPath {
				onAnyPath = true
				onPath = false
			}
		}
	}

	if windingL < 0 {
		windingL = -windingL
	}
	if windingR < 0 {
		windingR = -windingR
	}
	w := windingL
	if w < windingR {
		w = windingR
	}
	return Winding{
		Winding:  w,
		WindingL: windingL,
		WindingR: windingR,
		Quality:  quality,
		OnPath:   onAnyPath,
	}
}

// WindingAt returns the winding numbers of the point relative to the path. Open paths are implicitly closed by their chord.
func (p *Path) WindingAt(pt Point) Winding {
	return windingAt(pt, p.Curves(), false, false, false)
}

// WindingAt returns the winding numbers of the point relative to the contour set, with all contours contributing.
func (ps Paths) WindingAt(pt Point) Winding {
	return windingAt(pt, pathsCurves(ps), false, false, false)
}
