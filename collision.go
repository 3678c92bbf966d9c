package pathbool

import (
	"math"
	"sort"
)

// curveBoundsList returns the control-polygon bounds [x0,y0,x1,y1] of each curve. Control points bound the curve, so these boxes are conservative and cheaper than exact extrema.
func curveBoundsList(curves []*Curve) [][4]float64 {
	bounds := make([][4]float64, len(curves))
	for i, c := range curves {
		v := c.Values()
		bounds[i] = [4]float64{
			math.Min(math.Min(v[0], v[2]), math.Min(v[4], v[6])),
			math.Min(math.Min(v[1], v[3]), math.Min(v[5], v[7])),
			math.Max(math.Max(v[0], v[2]), math.Max(v[4], v[6])),
			math.Max(math.Max(v[1], v[3]), math.Max(v[5], v[7])),
		}
	}
	return bounds
}

// findCurveBoundsCollisions returns, for each curve of curves1, the indices of the curves of curves2 whose bounds overlap within tolerance. Pass the same slice twice for self collisions.
func findCurveBoundsCollisions(curves1, curves2 []*Curve, tolerance float64) [][]int {
	bounds1 := curveBoundsList(curves1)
	bounds2 := bounds1
	if len(curves1) != len(curves2) || (0 < len(curves1) && curves1[0] != curves2[0]) {
		bounds2 = curveBoundsList(curves2)
	}
	return findBoundsCollisions(bounds1, bounds2, tolerance, false, false)
}

// axisCollisions holds the collision lists of one curve for both sweep directions, used by the winding calculation to pick the list matching its ray direction.
type axisCollisions struct {
	hor, ver []int
}

// findCurveBoundsCollisionsAxes returns for each curve the indices of colliding curves along each sweep axis separately.
func findCurveBoundsCollisionsAxes(curves []*Curve, tolerance float64) []axisCollisions {
	bounds := curveBoundsList(curves)
	hor := findBoundsCollisions(bounds, bounds, tolerance, false, true)
	ver := findBoundsCollisions(bounds, bounds, tolerance, true, true)
	list := make([]axisCollisions, len(curves))
	for i := range list {
		list[i] = axisCollisions{hor: hor[i], ver: ver[i]}
	}
	return list
}

// findBoundsCollisions sweeps the boxes along one axis and reports the overlapping pairs. Boxes are [x0,y0,x1,y1]. When boundsA and boundsB share the same backing array a self collision pass is run. With onlySweepAxis set, overlap is only required on the sweep axis, not on both.
func findBoundsCollisions(boundsA, boundsB [][4]float64, tolerance float64, sweepVertical, onlySweepAxis bool) [][]int {
	self := len(boundsA) == len(boundsB) && (len(boundsA) == 0 || &boundsA[0] == &boundsB[0])
	allBounds := boundsA
	if !self {
		allBounds = make([][4]float64, 0, len(boundsA)+len(boundsB))
		allBounds = append(allBounds, boundsA...)
		allBounds = append(allBounds, boundsB...)
	}
	lengthA := len(boundsA)
	lengthAll := len(allBounds)

	// coordinates of the primary (sweep) and secondary axis
	pri0, pri1, sec0, sec1 := 0, 2, 1, 3
	if sweepVertical {
		pri0, pri1, sec0, sec1 = 1, 3, 0, 2
	}

	// all indices sorted by lower bound on the sweep axis
	byPri0 := make([]int, lengthAll)
	for i := range byPri0 {
		byPri0[i] = i
	}
	sort.SliceStable(byPri0, func(i, j int) bool {
		return allBounds[byPri0[i]][pri0] < allBounds[byPri0[j]][pri0]
	})

	// searchUpper returns the number of active entries whose upper bound is below value
	searchUpper := func(active []int, value float64) int {
		lo, hi := 0, len(active)
		for lo < hi {
			mid := (lo + hi) / 2
			if allBounds[active[mid]][pri1] < value {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		return lo
	}

	var active []int
	allCollisions := make([][]int, lengthA)
	for _, cur := range byPri0 {
		curBounds := allBounds[cur]
		origIndex := cur
		if !self {
			origIndex = cur - lengthA
		}
		isCurrentA := cur < lengthA
		isCurrentB := self || !isCurrentA
		var curCollisions []int
		if 0 < len(active) {
			// prune boxes that ended before the current one starts
			prune := searchUpper(active, curBounds[pri0]-tolerance)
			active = active[prune:]
			curSec0, curSec1 := curBounds[sec0], curBounds[sec1]
			for _, act := range active {
				actBounds := allBounds[act]
				isActiveA := act < lengthA
				isActiveB := self || !isActiveA
				if onlySweepAxis ||
					(isCurrentA && isActiveB || isCurrentB && isActiveA) &&
						actBounds[sec0]-tolerance <= curSec1 && curSec0 <= actBounds[sec1]+tolerance {
					if isCurrentA && isActiveB {
						if self {
							curCollisions = append(curCollisions, act)
						} else {
							curCollisions = append(curCollisions, act-lengthA)
						}
					}
					if isCurrentB && isActiveA {
						allCollisions[act] = append(allCollisions[act], origIndex)
					}
				}
			}
		}
		if isCurrentA {
			if self {
				// a box always collides with itself
				curCollisions = append(curCollisions, cur)
			}
			allCollisions[cur] = curCollisions
		}
		// insert the current box into the active list, ordered by upper bound
		pos := searchUpper(active, curBounds[pri1])
		active = append(active, 0)
		copy(active[pos+1:], active[pos:])
		active[pos] = cur
	}
	for _, collisions := range allCollisions {
		sort.Ints(collisions)
	}
	return allCollisions
}
