package scene

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "render.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultRenderOptions_Valid(t *testing.T) {
	if err := DefaultRenderOptions().Validate(); err != nil {
		t.Errorf("Default options should be valid: %v", err)
	}
}

func TestLoadRenderOptions(t *testing.T) {
	path := writeConfig(t, `
scene = "mesh"
width = 320
use_soft_shadows = true
reflection_glossiness = 0.1

[camera]
position = [1.0, 2.0, -5.0]
yaw = 0.5

[ray]
bounding_volume = "sphere"
mesh_normals = "face"

[[object]]
name = "box"
translation = [1.0, 0.0, 0.0]
scale = [2.0, 2.0, 2.0]

[[object]]
name = "extra"
scale = [1.0, 1.0, 1.0]
`)

	options, err := LoadRenderOptions(path)
	if err != nil {
		t.Fatalf("LoadRenderOptions failed: %v", err)
	}

	defaults := DefaultRenderOptions()
	if options.Scene != SceneMesh || options.Width != 320 || !options.UseSoftShadows {
		t.Errorf("Top-level keys not applied: %+v", options)
	}
	if options.Height != defaults.Height {
		t.Errorf("Expected default height %d, got %d", defaults.Height, options.Height)
	}
	if options.Camera.Position != [3]float64{1, 2, -5} || options.Camera.Yaw != 0.5 {
		t.Errorf("Camera keys not applied: %+v", options.Camera)
	}
	if options.Camera.Pitch != defaults.Camera.Pitch {
		t.Errorf("Expected default pitch, got %f", options.Camera.Pitch)
	}
	if options.Ray.BVHDisplayDepth != -1 {
		t.Errorf("Expected default display depth -1, got %d", options.Ray.BVHDisplayDepth)
	}

	meshOptions, err := options.MeshOptions()
	if err != nil {
		t.Fatalf("MeshOptions failed: %v", err)
	}
	if meshOptions.BoundingVolume != geometry.BoundingSphereVolume || meshOptions.NormalMode != geometry.NormalFace {
		t.Errorf("Unexpected mesh options %+v", meshOptions)
	}

	if len(options.Objects) != len(defaults.Objects)+1 {
		t.Errorf("Expected %d objects, got %d", len(defaults.Objects)+1, len(options.Objects))
	}
	box := options.Placement("box")
	if box.Translation != [3]float64{1, 0, 0} || box.Scale != [3]float64{2, 2, 2} {
		t.Errorf("Box placement keys not applied: %+v", box)
	}
	defaultBox := defaults.Placement("box")
	if box.RotationAngle != defaultBox.RotationAngle || box.SpecularStrength != defaultBox.SpecularStrength {
		t.Errorf("Box keys missing from the file should keep their defaults: %+v", box)
	}
	if options.Placement("red_sphere") != defaults.Placement("red_sphere") {
		t.Error("Red sphere placement should keep its default")
	}
}

func TestLoadRenderOptions_PartialObjectOverride(t *testing.T) {
	path := writeConfig(t, `
[[object]]
name = "red_sphere"
translation = [1.5, 0.0, 0.0]

[[object]]
name = "marker"
translation = [0.0, 1.0, 0.0]
`)

	options, err := LoadRenderOptions(path)
	if err != nil {
		t.Fatalf("LoadRenderOptions failed: %v", err)
	}

	want := DefaultRenderOptions().Placement("red_sphere")
	want.Translation = [3]float64{1.5, 0, 0}
	if got := options.Placement("red_sphere"); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	marker := options.Placement("marker")
	if marker.Scale != [3]float64{1, 1, 1} || marker.Translation != [3]float64{0, 1, 0} {
		t.Errorf("New object should start from the identity placement: %+v", marker)
	}

	scene, err := Build(options, nil)
	if err != nil {
		t.Fatalf("Build failed after a translation-only override: %v", err)
	}
	if len(scene.Surfaces) != 5 {
		t.Errorf("Expected 5 surfaces, got %d", len(scene.Surfaces))
	}
}

func TestLoadRenderOptions_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"malformed", "width = ", "decode"},
		{"wrong type", `width = "wide"`, "decode"},
		{"invalid value", "width = -1", "invalid"},
		{"wrong object type", "[[object]]\nname = \"box\"\nscale = \"big\"", "decode"},
		{"zero object scale", "[[object]]\nname = \"box\"\nscale = [1.0, 0.0, 1.0]", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRenderOptions(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Expected error containing %q, got %v", tt.errText, err)
			}
		})
	}

	if _, err := LoadRenderOptions(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestRenderOptions_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*RenderOptions)
	}{
		{"unknown scene", func(o *RenderOptions) { o.Scene = "cornell" }},
		{"zero width", func(o *RenderOptions) { o.Width = 0 }},
		{"negative height", func(o *RenderOptions) { o.Height = -3 }},
		{"unknown projection", func(o *RenderOptions) { o.Projection = "fisheye" }},
		{"field of view too wide", func(o *RenderOptions) { o.FieldOfView = math.Pi }},
		{"pitch straight up", func(o *RenderOptions) { o.Camera.Pitch = math.Pi / 2 }},
		{"negative lights", func(o *RenderOptions) { o.NumberOfLights = -1 }},
		{"empty supersampling grid", func(o *RenderOptions) { o.SupersamplingGrid = 0 }},
		{"negative glossiness", func(o *RenderOptions) { o.ReflectionGlossiness = -0.1 }},
		{"unknown bounding volume", func(o *RenderOptions) { o.Ray.BoundingVolume = "capsule" }},
		{"unknown normals", func(o *RenderOptions) { o.Ray.MeshNormals = "smooth" }},
		{"negative ambient", func(o *RenderOptions) { o.AmbientStrength = -1 }},
		{"zero object scale", func(o *RenderOptions) { o.Objects[1].Scale = [3]float64{0.5, 0, 0.5} }},
		{"unnamed object", func(o *RenderOptions) { o.Objects = append(o.Objects, ObjectPlacement{Scale: [3]float64{1, 1, 1}}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := DefaultRenderOptions()
			tt.modify(&options)
			if err := options.Validate(); err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}

func TestRenderOptions_Shading(t *testing.T) {
	options := DefaultRenderOptions()
	options.UseSoftShadows = true
	options.UseSupersampling = true
	options.SupersamplingGrid = 4

	want := ShadingOptions{SoftShadows: true, Supersampling: true, SupersamplingGrid: 4}
	if got := options.Shading(); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestObjectPlacement_Transform(t *testing.T) {
	placement := ObjectPlacement{
		Translation:   [3]float64{1, 2, 3},
		Scale:         [3]float64{2, 2, 2},
		RotationAxis:  [3]float64{0, 1, 0},
		RotationAngle: math.Pi / 2,
	}

	// Scale, then rotate, then translate
	got := placement.Transform().ApplyPoint(core.NewPoint3(1, 0, 0))
	want := core.NewPoint3(1, 2, 1)
	if got.DistanceTo(want) > 1e-9 {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestRenderOptions_PlacementFallback(t *testing.T) {
	placement := DefaultRenderOptions().Placement("unknown")
	got := placement.Transform().ApplyPoint(core.NewPoint3(1, 2, 3))
	if got.DistanceTo(core.NewPoint3(1, 2, 3)) > 1e-12 {
		t.Errorf("Expected identity placement, got %v", got)
	}
}
