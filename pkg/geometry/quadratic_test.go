package geometry

import (
	"math"
	"testing"
)

func TestFindRoots(t *testing.T) {
	tests := []struct {
		name          string
		a, b, c       float64
		expectedCount int
		expected      [2]float64
	}{
		{"two roots", 1, -3, 2, 2, [2]float64{1, 2}},
		{"two roots negative a", -1, 3, -2, 2, [2]float64{1, 2}},
		{"tangent", 1, -10, 25, 1, [2]float64{5, 0}},
		{"no roots", 1, 0, 1, 0, [2]float64{}},
		{"linear", 0, 2, -4, 1, [2]float64{2, 0}},
		{"b zero", 1, 0, -4, 2, [2]float64{-2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, count := FindRoots(tt.a, tt.b, tt.c)
			if count != tt.expectedCount {
				t.Fatalf("Expected %d roots, got %d", tt.expectedCount, count)
			}
			for i := 0; i < count; i++ {
				if math.Abs(roots[i]-tt.expected[i]) > 1e-12 {
					t.Errorf("Root %d: expected %v, got %v", i, tt.expected[i], roots[i])
				}
			}
		})
	}
}

func TestSelectSmallestRoot(t *testing.T) {
	// Roots -1 and 3: the negative one is behind the ray
	if root, ok := SelectSmallestRoot(1, -2, -3); !ok || math.Abs(root-3) > 1e-12 {
		t.Errorf("Expected root 3, got %v (ok=%v)", root, ok)
	}
	// Root at zero is below MinRayT
	if root, ok := SelectSmallestRoot(1, -1, 0); !ok || math.Abs(root-1) > 1e-12 {
		t.Errorf("Expected root 1, got %v (ok=%v)", root, ok)
	}
	// Both roots behind
	if _, ok := SelectSmallestRoot(1, 3, 2); ok {
		t.Error("Expected no valid root")
	}
}
