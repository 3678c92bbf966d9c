package pathbool

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestFindBoundsCollisions(t *testing.T) {
	boundsA := [][4]float64{
		{0.0, 0.0, 1.0, 1.0},
		{2.0, 0.0, 3.0, 1.0},
	}
	boundsB := [][4]float64{
		{0.5, 0.0, 1.5, 1.0},
		{5.0, 0.0, 6.0, 1.0},
	}
	collisions := findBoundsCollisions(boundsA, boundsB, 0.0, false, false)
	test.T(t, collisions[0], []int{0})
	test.T(t, len(collisions[1]), 0)

	// touching within tolerance counts
	collisions = findBoundsCollisions(boundsA, [][4]float64{{3.0, 0.0, 4.0, 1.0}}, 0.0, false, false)
	test.T(t, collisions[1], []int{0})
	collisions = findBoundsCollisions(boundsA, [][4]float64{{3.1, 0.0, 4.0, 1.0}}, 0.05, false, false)
	test.T(t, len(collisions[1]), 0)
	collisions = findBoundsCollisions(boundsA, [][4]float64{{3.1, 0.0, 4.0, 1.0}}, 0.2, false, false)
	test.T(t, collisions[1], []int{0})
}

func TestFindBoundsCollisionsSelf(t *testing.T) {
	bounds := [][4]float64{
		{0.0, 0.0, 2.0, 2.0},
		{1.0, 1.0, 3.0, 3.0},
		{10.0, 0.0, 11.0, 1.0},
	}
	collisions := findBoundsCollisions(bounds, bounds, 0.0, false, false)
	test.T(t, collisions[0], []int{0, 1})
	test.T(t, collisions[1], []int{0, 1})
	test.T(t, collisions[2], []int{2})
}

func TestFindCurveBoundsCollisions(t *testing.T) {
	a := MustParseSVGPath("M0 0L10 0L10 10L0 10z")[0].Curves()
	b := MustParseSVGPath("M5 5L15 5L15 15L5 15z")[0].Curves()
	collisions := findCurveBoundsCollisions(a, b, 0.0)
	test.T(t, len(collisions), 4)
	// the bottom edge of a lies below b entirely
	test.T(t, len(collisions[0]), 0)
	// the right edge of a crosses the bottom edge of b
	test.That(t, 0 < len(collisions[1]))
}

func TestFindCurveBoundsCollisionsAxes(t *testing.T) {
	// two horizontal lines sharing their x range but vertically apart
	ps := MustParseSVGPath("M0 0L10 0M0 5L10 5")
	curves := append(ps[0].Curves(), ps[1].Curves()...)
	axes := findCurveBoundsCollisionsAxes(curves, 0.0)
	test.T(t, axes[0].hor, []int{0, 1})
	test.T(t, axes[1].hor, []int{0, 1})
	test.T(t, axes[0].ver, []int{0})
	test.T(t, axes[1].ver, []int{1})
}
