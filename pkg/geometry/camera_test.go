package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func newTestCamera(t *testing.T, width, height int, projection Projection) *Camera {
	t.Helper()
	camera, err := NewCamera(CameraConfig{
		Origin:      core.Origin(),
		Forward:     core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       width,
		Height:      height,
		FieldOfView: math.Pi / 2,
		Projection:  projection,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return camera
}

func TestCamera_PerspectiveCenterRay(t *testing.T) {
	camera := newTestCamera(t, 5, 3, Perspective)
	ray := camera.GenerateRay(2, 1)

	if ray.Origin != core.Origin() {
		t.Errorf("Expected origin at camera, got %v", ray.Origin)
	}
	if ray.Direction.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Expected forward direction, got %v", ray.Direction)
	}
}

func TestCamera_PerspectiveFieldOfView(t *testing.T) {
	camera := newTestCamera(t, 4, 2, Perspective)

	// Left edge of the image at half the field of view
	left := camera.GenerateJitteredRay(0, 1, 0, 0).Direction
	if math.Abs(left.X+1) > 1e-12 || math.Abs(left.Z+1) > 1e-12 {
		t.Errorf("Expected left edge direction (-1, y, -1), got %v", left)
	}

	// Vertical extent follows the aspect ratio; rows count from the bottom
	bottom := camera.GenerateJitteredRay(2, 0, 0, 0).Direction
	if math.Abs(bottom.Y+0.5) > 1e-12 {
		t.Errorf("Expected bottom edge y=-0.5, got %v", bottom.Y)
	}
	top := camera.GenerateRay(2, 1).Direction
	if top.Y <= 0 {
		t.Errorf("Expected upper row to point up, got %v", top)
	}

	// Symmetric pixels give mirrored directions
	a := camera.GenerateRay(0, 0).Direction
	b := camera.GenerateRay(3, 1).Direction
	if math.Abs(a.X+b.X) > 1e-12 || math.Abs(a.Y+b.Y) > 1e-12 {
		t.Errorf("Expected mirrored directions, got %v and %v", a, b)
	}
}

func TestCamera_Parallel(t *testing.T) {
	camera := newTestCamera(t, 4, 4, Parallel)

	first := camera.GenerateRay(0, 0)
	second := camera.GenerateRay(3, 2)
	if first.Direction != second.Direction {
		t.Errorf("Expected equal directions, got %v and %v", first.Direction, second.Direction)
	}
	if first.Origin == second.Origin {
		t.Error("Expected distinct origins")
	}
	if first.Origin.Z != 0 || second.Origin.Z != 0 {
		t.Error("Expected origins in the camera plane")
	}

	scaled, _ := NewCamera(CameraConfig{
		Forward: core.NewVec3(0, 0, -1), Up: core.NewVec3(0, 1, 0),
		Width: 4, Height: 4, FieldOfView: math.Pi / 2,
		Projection: Parallel, ViewDistance: 7,
	})
	edge := scaled.GenerateJitteredRay(0, 0, 0, 0).Origin
	if math.Abs(edge.X+7) > 1e-12 || math.Abs(edge.Y+7) > 1e-12 {
		t.Errorf("Expected corner (-7,-7), got %v", edge)
	}
}

func TestNewCamera_Validation(t *testing.T) {
	base := CameraConfig{
		Forward: core.NewVec3(0, 0, -1), Up: core.NewVec3(0, 1, 0),
		Width: 10, Height: 10, FieldOfView: 1,
	}

	tests := []struct {
		name   string
		modify func(c *CameraConfig)
	}{
		{"zero width", func(c *CameraConfig) { c.Width = 0 }},
		{"zero fov", func(c *CameraConfig) { c.FieldOfView = 0 }},
		{"fov too wide", func(c *CameraConfig) { c.FieldOfView = math.Pi }},
		{"up parallel to forward", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 2) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := base
			tt.modify(&config)
			if _, err := NewCamera(config); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestParseProjection(t *testing.T) {
	for _, name := range []string{"perspective", "parallel"} {
		projection, err := ParseProjection(name)
		if err != nil || projection.String() != name {
			t.Errorf("Expected %q round trip, got %v (%v)", name, projection, err)
		}
	}
	if _, err := ParseProjection("fisheye"); err == nil {
		t.Error("Expected error for unknown projection")
	}
}
