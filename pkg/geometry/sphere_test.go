package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestSphere_Hit_DistanceFromRadius(t *testing.T) {
	for _, radius := range []float64{0.5, 1, 2.5, 4.9} {
		sphere := NewSphere(core.Origin(), radius, VisualData{})
		ray := core.NewRay(core.NewPoint3(0, 0, -5), core.NewVec3(0, 0, 1))

		hit, ok := sphere.Hit(ray)
		if !ok {
			t.Fatalf("radius %v: expected hit", radius)
		}
		if math.Abs(hit.T-(5-radius)) > 1e-9 {
			t.Errorf("radius %v: expected t=%v, got %v", radius, 5-radius, hit.T)
		}
		if hit.Normal.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
			t.Errorf("radius %v: expected normal (0,0,-1), got %v", radius, hit.Normal)
		}
	}
}

func TestSphere_Hit_Tangent(t *testing.T) {
	sphere := NewSphere(core.Origin(), 1, VisualData{})
	ray := core.NewRay(core.NewPoint3(1, 0, -5), core.NewVec3(0, 0, 1))

	oc := ray.Origin.Subtract(sphere.Center)
	a := ray.Direction.LengthSquared()
	b := 2 * oc.Dot(ray.Direction)
	c := oc.LengthSquared() - 1
	roots, count := FindRoots(a, b, c)
	if count != 1 {
		t.Fatalf("Expected a single root, got %d", count)
	}

	hit, ok := sphere.Hit(ray)
	if !ok {
		t.Fatal("Expected tangent hit")
	}
	if hit.T != roots[0] {
		t.Errorf("Expected t=%v, got %v", roots[0], hit.T)
	}
	if math.Abs(hit.T-5) > 1e-12 {
		t.Errorf("Expected t=5, got %v", hit.T)
	}
}

func TestSphere_Hit(t *testing.T) {
	sphere := NewSphere(core.NewPoint3(0, 0, -3), 1, VisualData{})

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
		expectedT float64
	}{
		{"miss", core.NewRay(core.Origin(), core.NewVec3(0, 1, 0)), false, 0},
		{"behind", core.NewRay(core.Origin(), core.NewVec3(0, 0, 1)), false, 0},
		{"from inside", core.NewRay(core.NewPoint3(0, 0, -3), core.NewVec3(1, 0, 0)), true, 1},
		{"unnormalized direction", core.NewRay(core.Origin(), core.NewVec3(0, 0, -2)), true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := sphere.Hit(tt.ray)
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, ok)
			}
			if ok && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%v, got %v", tt.expectedT, hit.T)
			}
		})
	}
}
