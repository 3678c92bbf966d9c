package pathbool

import (
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestSolveQuadraticFormula(t *testing.T) {
	var tts = []struct {
		a, b, c float64
		x1, x2  float64
	}{
		{0.0, 0.0, 0.0, 0.0, math.NaN()},
		{0.0, 2.0, -4.0, 2.0, math.NaN()},
		{1.0, -3.0, 2.0, 1.0, 2.0},
		{1.0, -2.0, 1.0, 1.0, math.NaN()},
		{1.0, 0.0, 1.0, math.NaN(), math.NaN()},
		{1.0, 1e10, 1.0, -1e10, -1e-10}, // catastrophic cancellation in the naive formula
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			x1, x2 := solveQuadraticFormula(tt.a, tt.b, tt.c)
			test.Float(t, x1, tt.x1)
			test.Float(t, x2, tt.x2)
		})
	}
}

func TestSolveCubicFormula(t *testing.T) {
	var tts = []struct {
		a, b, c, d float64
		x1, x2, x3 float64
	}{
		{1.0, -6.0, 11.0, -6.0, 1.0, 2.0, 3.0},
		{1.0, 0.0, 0.0, 0.0, 0.0, math.NaN(), math.NaN()},
		{1.0, 0.0, -1.0, 0.0, -1.0, 0.0, 1.0},
		{0.0, 1.0, -3.0, 2.0, 1.0, 2.0, math.NaN()},
		{1.0, 0.0, 0.0, -8.0, 2.0, math.NaN(), math.NaN()},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			x1, x2, x3 := solveCubicFormula(tt.a, tt.b, tt.c, tt.d)
			test.Float(t, x1, tt.x1)
			test.Float(t, x2, tt.x2)
			test.Float(t, x3, tt.x3)
		})
	}
}

func TestSolveRange(t *testing.T) {
	roots := solveQuadratic(1.0, -3.0, 2.0, 0.0, 1.5)
	test.T(t, len(roots), 1)
	test.Float(t, roots[0], 1.0)

	roots = solveCubic(1.0, -6.0, 11.0, -6.0, 0.0, 4.0)
	test.T(t, len(roots), 3)
	test.Float(t, roots[0], 1.0)
	test.Float(t, roots[1], 2.0)
	test.Float(t, roots[2], 3.0)

	// near-duplicate roots collapse
	roots = solveQuadratic(1.0, -2.0, 1.0, 0.0, 2.0)
	test.T(t, len(roots), 1)
	test.Float(t, roots[0], 1.0)

	roots = solveCubic(1.0, 0.0, 1.0, 0.0, -1.0, 1.0)
	test.T(t, len(roots), 1)
	test.Float(t, roots[0], 0.0)
}

func TestGaussLegendre(t *testing.T) {
	// the truncated node constants leave an error around 1e-6
	test.That(t, math.Abs(gaussLegendre7(func(x float64) float64 { return x }, 0.0, 1.0)-0.5) < 1e-5)
	test.That(t, math.Abs(gaussLegendre7(func(x float64) float64 { return 3.0 * x * x }, 0.0, 2.0)-8.0) < 1e-5)
	test.That(t, math.Abs(gaussLegendre7(func(x float64) float64 { return x * x * x }, -1.0, 1.0)) < 1e-5)
}

func TestBisectionMethod(t *testing.T) {
	x := bisectionMethod(func(x float64) float64 { return x * x }, 4.0, 0.0, 10.0)
	test.That(t, math.Abs(x-2.0) < 0.01)

	x = bisectionMethod(func(x float64) float64 { return x }, 0.25, 0.0, 1.0)
	test.That(t, math.Abs(x-0.25) < 0.01)
}
