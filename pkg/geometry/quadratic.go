package geometry

import "math"

// FindRoots returns the real roots of a·t² + b·t + c = 0 in ascending
// order. count is 0 for a negative discriminant, 1 when it is exactly
// zero and 2 otherwise.
func FindRoots(a, b, c float64) (roots [2]float64, count int) {
	if a == 0 {
		if b == 0 {
			return roots, 0
		}
		roots[0] = -c / b
		return roots, 1
	}

	discriminant := b*b - 4*a*c
	switch {
	case discriminant < 0:
		return roots, 0
	case discriminant == 0:
		roots[0] = -b / (2 * a)
		return roots, 1
	}

	// Avoids cancellation when b and sqrt(discriminant) are close
	q := -0.5 * (b + math.Copysign(math.Sqrt(discriminant), b))
	r0, r1 := q/a, c/q
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	roots[0], roots[1] = r0, r1
	return roots, 2
}

// SelectSmallestRoot returns the smallest root that is at least MinRayT
func SelectSmallestRoot(a, b, c float64) (float64, bool) {
	roots, count := FindRoots(a, b, c)
	for i := 0; i < count; i++ {
		if roots[i] >= MinRayT {
			return roots[i], true
		}
	}
	return 0, false
}
