package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestAxisAlignedBox_Hit(t *testing.T) {
	box := NewAxisAlignedBox(core.NewAABB(core.NewPoint3(-1, -1, -1), core.NewPoint3(1, 1, 1)), VisualData{})

	tests := []struct {
		name           string
		ray            core.Ray
		expectHit      bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{"front face", core.NewRay(core.NewPoint3(0, 0, -5), core.NewVec3(0, 0, 1)), true, 4, core.NewVec3(0, 0, -1)},
		{"top face", core.NewRay(core.NewPoint3(0.2, 5, 0.3), core.NewVec3(0, -1, 0)), true, 4, core.NewVec3(0, 1, 0)},
		{"from inside exits", core.NewRay(core.Origin(), core.NewVec3(1, 0, 0)), true, 1, core.NewVec3(1, 0, 0)},
		{"miss", core.NewRay(core.NewPoint3(0, 3, -5), core.NewVec3(0, 0, 1)), false, 0, core.Vec3{}},
		{"behind", core.NewRay(core.NewPoint3(0, 0, 5), core.NewVec3(0, 0, 1)), false, 0, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := box.Hit(tt.ray)
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%v, got %v", tt.expectedT, hit.T)
			}
			if hit.Normal != tt.expectedNormal {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}
