package scene

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Scene names accepted by Build
const (
	SceneSimple = "simple"
	SceneMesh   = "mesh"
)

// RenderOptions configures how a scene is assembled and shaded. It is
// decoded from TOML; DefaultRenderOptions supplies every missing key.
type RenderOptions struct {
	Scene                string            `toml:"scene"`
	Width                int               `toml:"width"`
	Height               int               `toml:"height"`
	Projection           string            `toml:"projection"`
	FieldOfView          float64           `toml:"field_of_view"` // Horizontal, radians
	Camera               CameraOptions     `toml:"camera"`
	NumberOfLights       int               `toml:"number_of_lights"`
	UseSoftShadows       bool              `toml:"use_soft_shadows"`
	UseSupersampling     bool              `toml:"use_supersampling"`
	SupersamplingGrid    int               `toml:"supersampling_grid"`
	ReflectionGlossiness float64           `toml:"reflection_glossiness"`
	MeshPath             string            `toml:"mesh_path"`
	Background           [3]float64        `toml:"background"`
	AmbientStrength      float64           `toml:"ambient_strength"`
	DiffuseStrength      float64           `toml:"diffuse_strength"`
	Ray                  RayOptions        `toml:"ray"`
	Objects              []ObjectPlacement `toml:"object"`
}

// CameraOptions places the viewer in world space
type CameraOptions struct {
	Position [3]float64 `toml:"position"`
	Yaw      float64    `toml:"yaw"`   // Radians around +y
	Pitch    float64    `toml:"pitch"` // Radians towards +y
}

// RayOptions tunes mesh traversal
type RayOptions struct {
	BoundingVolume  string `toml:"bounding_volume"`   // box, sphere or none
	BVHDisplayDepth int    `toml:"bvh_display_depth"` // -1 disables
	MeshNormals     string `toml:"mesh_normals"`      // auto, provided, pseudo or face
}

// ObjectPlacement positions one named scene object: scale, then rotate,
// then translate
type ObjectPlacement struct {
	Name             string     `toml:"name"`
	Translation      [3]float64 `toml:"translation"`
	Scale            [3]float64 `toml:"scale"`
	RotationAxis     [3]float64 `toml:"rotation_axis"`
	RotationAngle    float64    `toml:"rotation_angle"` // Radians
	SpecularStrength float64    `toml:"specular_strength"`
}

// DefaultRenderOptions returns the options of the simple scene viewed
// from seven units in front of the origin
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Scene:       SceneSimple,
		Width:       800,
		Height:      600,
		Projection:  geometry.Perspective.String(),
		FieldOfView: math.Pi / 2,
		Camera: CameraOptions{
			Position: [3]float64{0, 0, -7},
			Yaw:      -math.Pi / 2,
			Pitch:    0,
		},
		NumberOfLights:       1,
		SupersamplingGrid:    3,
		ReflectionGlossiness: 0,
		Background:           [3]float64{0.204, 0.596, 0.86},
		AmbientStrength:      0.7,
		DiffuseStrength:      0.5,
		Ray: RayOptions{
			BoundingVolume:  "box",
			BVHDisplayDepth: -1,
			MeshNormals:     "auto",
		},
		Objects: DefaultPlacements(),
	}
}

// DefaultPlacements returns the placements of every built-in object
func DefaultPlacements() []ObjectPlacement {
	return []ObjectPlacement{
		{Name: "plane", Scale: [3]float64{1, 1, 1}},
		{Name: "blue_sphere", Translation: [3]float64{-1, 0, 0}, Scale: [3]float64{0.5, 0.5, 0.5}},
		{Name: "red_sphere", Translation: [3]float64{1, 0, 0}, Scale: [3]float64{0.5, 0.5, 0.5}, SpecularStrength: 0.5},
		{Name: "ellipsoid", Translation: [3]float64{0, -1, 1.5}, Scale: [3]float64{0.8, 0.4, 0.4}, SpecularStrength: 0.3},
		{Name: "cone", Translation: [3]float64{2.5, -1.4, 1.5}, Scale: [3]float64{1, 1, 1}, RotationAxis: [3]float64{0, 1, 0}, RotationAngle: math.Pi / 4},
		{Name: "mesh", Translation: [3]float64{0, -0.4, 0}, Scale: [3]float64{1, 1, 1}, SpecularStrength: 0.2},
		{Name: "box", Translation: [3]float64{-1, -0.9, 0}, Scale: [3]float64{1, 1, 1}, RotationAxis: [3]float64{0, 1, 0}, RotationAngle: math.Pi / 6, SpecularStrength: 0.2},
		{Name: "icosahedron", Translation: [3]float64{1, -0.6, 0}, Scale: [3]float64{0.8, 0.8, 0.8}, SpecularStrength: 0.2},
	}
}

// LoadRenderOptions reads a TOML file over the defaults. Each object
// table is overlaid on the default placement of the same name, so keys
// the table omits keep their default values.
func LoadRenderOptions(path string) (RenderOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RenderOptions{}, fmt.Errorf("failed to read render options %s: %w", path, err)
	}

	options := DefaultRenderOptions()
	defaults := options.Objects
	options.Objects = nil
	if _, err := toml.Decode(string(data), &options); err != nil {
		return RenderOptions{}, fmt.Errorf("failed to decode render options %s: %w", path, err)
	}

	var file struct {
		Objects []toml.Primitive `toml:"object"`
	}
	metadata, err := toml.Decode(string(data), &file)
	if err != nil {
		return RenderOptions{}, fmt.Errorf("failed to decode render options %s: %w", path, err)
	}
	options.Objects, err = mergePlacements(metadata, defaults, file.Objects)
	if err != nil {
		return RenderOptions{}, fmt.Errorf("failed to decode render options %s: %w", path, err)
	}

	if err := options.Validate(); err != nil {
		return RenderOptions{}, fmt.Errorf("invalid render options %s: %w", path, err)
	}
	return options, nil
}

// mergePlacements decodes each object table on top of the placement it
// names. Unknown names start from the identity placement.
func mergePlacements(metadata toml.MetaData, defaults []ObjectPlacement, objects []toml.Primitive) ([]ObjectPlacement, error) {
	merged := make([]ObjectPlacement, len(defaults))
	copy(merged, defaults)

	for i, object := range objects {
		var named struct {
			Name string `toml:"name"`
		}
		if err := metadata.PrimitiveDecode(object, &named); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}

		index := -1
		placement := ObjectPlacement{Name: named.Name, Scale: [3]float64{1, 1, 1}}
		for j := range merged {
			if merged[j].Name == named.Name {
				index, placement = j, merged[j]
				break
			}
		}
		if err := metadata.PrimitiveDecode(object, &placement); err != nil {
			return nil, fmt.Errorf("object %q: %w", named.Name, err)
		}

		if index >= 0 {
			merged[index] = placement
		} else {
			merged = append(merged, placement)
		}
	}
	return merged, nil
}

// Validate checks every field against its accepted range
func (o RenderOptions) Validate() error {
	if o.Scene != SceneSimple && o.Scene != SceneMesh {
		return fmt.Errorf("unknown scene %q", o.Scene)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", o.Width, o.Height)
	}
	if _, err := geometry.ParseProjection(o.Projection); err != nil {
		return err
	}
	if o.FieldOfView <= 0 || o.FieldOfView >= math.Pi {
		return fmt.Errorf("field of view must be in (0, pi), got %f", o.FieldOfView)
	}
	if math.Abs(o.Camera.Pitch) >= math.Pi/2 {
		return fmt.Errorf("camera pitch must be in (-pi/2, pi/2), got %f", o.Camera.Pitch)
	}
	if o.NumberOfLights < 0 {
		return fmt.Errorf("number of lights must not be negative, got %d", o.NumberOfLights)
	}
	if o.SupersamplingGrid < 1 {
		return fmt.Errorf("supersampling grid must be at least 1, got %d", o.SupersamplingGrid)
	}
	if o.ReflectionGlossiness < 0 || o.ReflectionGlossiness >= math.Pi/2 {
		return fmt.Errorf("reflection glossiness must be in [0, pi/2), got %f", o.ReflectionGlossiness)
	}
	if o.AmbientStrength < 0 || o.DiffuseStrength < 0 {
		return fmt.Errorf("light strengths must not be negative")
	}
	if _, err := o.MeshOptions(); err != nil {
		return err
	}
	for _, placement := range o.Objects {
		if placement.Name == "" {
			return fmt.Errorf("object placement without a name")
		}
		for _, s := range placement.Scale {
			if s == 0 {
				return fmt.Errorf("object %q has a zero scale %v", placement.Name, placement.Scale)
			}
		}
	}
	return nil
}

// Shading returns the per-pixel shading switches
func (o RenderOptions) Shading() ShadingOptions {
	return ShadingOptions{
		SoftShadows:       o.UseSoftShadows,
		Supersampling:     o.UseSupersampling,
		SupersamplingGrid: o.SupersamplingGrid,
	}
}

// MeshOptions converts the ray options to mesh traversal options
func (o RenderOptions) MeshOptions() (geometry.MeshOptions, error) {
	options := geometry.DefaultMeshOptions()
	options.DisplayDepth = o.Ray.BVHDisplayDepth

	switch o.Ray.BoundingVolume {
	case "", "box":
		options.BoundingVolume = geometry.BoundingBox
	case "sphere":
		options.BoundingVolume = geometry.BoundingSphereVolume
	case "none":
		options.BoundingVolume = geometry.BoundingNone
	default:
		return options, fmt.Errorf("unknown bounding volume %q", o.Ray.BoundingVolume)
	}

	switch o.Ray.MeshNormals {
	case "", "auto":
		options.NormalMode = geometry.NormalAuto
	case "provided":
		options.NormalMode = geometry.NormalProvided
	case "pseudo":
		options.NormalMode = geometry.NormalPseudo
	case "face":
		options.NormalMode = geometry.NormalFace
	default:
		return options, fmt.Errorf("unknown mesh normal mode %q", o.Ray.MeshNormals)
	}
	return options, nil
}

// Placement returns the placement named name, or the identity placement
func (o RenderOptions) Placement(name string) ObjectPlacement {
	for _, placement := range o.Objects {
		if placement.Name == name {
			return placement
		}
	}
	return ObjectPlacement{Name: name, Scale: [3]float64{1, 1, 1}}
}

// Transform returns translate ∘ rotate ∘ scale
func (p ObjectPlacement) Transform() core.Affine {
	transform := core.Translate(vec3(p.Translation))
	axis := vec3(p.RotationAxis)
	if p.RotationAngle != 0 && axis.LengthSquared() > 0 {
		transform = transform.Compose(core.Rotation(p.RotationAngle, axis))
	}
	return transform.Compose(core.Scaling(p.Scale[0], p.Scale[1], p.Scale[2]))
}

func vec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
