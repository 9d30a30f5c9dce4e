package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

const (
	lightHeight     = 10.0
	lightRingRadius = 5.0
	lightSize       = 0.2
)

var (
	planeColor     = core.NewColor(0.5, 0.5, 0.5)
	blueColor      = core.NewColor(0.1, 0.2, 0.9)
	redColor       = core.NewColor(0.9, 0.1, 0.1)
	ellipsoidColor = core.NewColor(0.2, 0.7, 0.3)
	coneColor      = core.NewColor(0.9, 0.75, 0.2)
	meshColor      = core.NewColor(0.769, 0.792, 0.808)
)

// Build assembles the scene described by options. Every surface and light
// is placed in camera space, so the camera sits at the origin looking
// down -z. Meshes come from assets and are shared between builds.
func Build(options RenderOptions, assets *Assets) (*Scene, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	position := core.NewPoint3(options.Camera.Position[0], options.Camera.Position[1], options.Camera.Position[2])
	lookAt := core.LookAt(position, options.Camera.Yaw, options.Camera.Pitch)

	var (
		surfaces []geometry.Surface
		err      error
	)
	switch options.Scene {
	case SceneMesh:
		surfaces, err = meshSurfaces(options, assets)
	default:
		surfaces, err = simpleSurfaces(options)
	}
	if err != nil {
		return nil, err
	}

	placed := make([]geometry.Surface, len(surfaces))
	for i, surface := range surfaces {
		if placed[i], err = placeSurface(lookAt, surface); err != nil {
			return nil, err
		}
	}

	camera, err := buildCamera(options, position)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Surfaces:        placed,
		Camera:          camera,
		Lights:          buildLights(options.NumberOfLights, lookAt),
		Background:      core.NewColor(options.Background[0], options.Background[1], options.Background[2]),
		AmbientStrength: options.AmbientStrength,
		DiffuseStrength: options.DiffuseStrength,
	}, nil
}

// placedSurface pairs a surface with its world placement
type placedSurface struct {
	transform core.Affine
	surface   geometry.Surface
}

func (p placedSurface) Hit(ray core.Ray) (geometry.Hit, bool) { return p.surface.Hit(ray) }
func (p placedSurface) VisualData() geometry.VisualData       { return p.surface.VisualData() }

func placeSurface(lookAt core.Affine, surface geometry.Surface) (geometry.Surface, error) {
	transform := lookAt
	if placed, ok := surface.(placedSurface); ok {
		transform = lookAt.Compose(placed.transform)
		surface = placed.surface
	}
	transformed, err := geometry.NewTransformed(transform, surface)
	if err != nil {
		return nil, fmt.Errorf("failed to place surface: %w", err)
	}
	return transformed, nil
}

func simpleSurfaces(options RenderOptions) ([]geometry.Surface, error) {
	glossiness := options.ReflectionGlossiness

	plane := placedSurface{
		transform: options.Placement("plane").Transform(),
		surface: geometry.NewPlane(core.NewPoint3(0, -1.4, 0), core.NewVec3(0, 1, 0),
			geometry.VisualData{Color: planeColor}),
	}

	bluePlacement := options.Placement("blue_sphere")
	blue := placedSurface{
		transform: bluePlacement.Transform(),
		surface: geometry.NewSphere(core.Origin(), 1, geometry.VisualData{
			Color:            blueColor,
			SpecularStrength: bluePlacement.SpecularStrength,
		}),
	}

	redPlacement := options.Placement("red_sphere")
	red := placedSurface{
		transform: redPlacement.Transform(),
		surface: geometry.NewSphere(core.Origin(), 1, geometry.VisualData{
			Color:                redColor,
			SpecularStrength:     redPlacement.SpecularStrength,
			ReflectionStrength:   0.5,
			ReflectionGlossiness: glossiness,
		}),
	}

	// The ellipsoid carries its own radii; its placement only moves it
	ellipsoidPlacement := options.Placement("ellipsoid")
	radii := vec3(ellipsoidPlacement.Scale)
	ellipsoidShape, err := geometry.NewEllipsoid(core.Origin(), radii, geometry.VisualData{
		Color:            ellipsoidColor,
		SpecularStrength: ellipsoidPlacement.SpecularStrength,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ellipsoid: %w", err)
	}
	rigid := ellipsoidPlacement
	rigid.Scale = [3]float64{1, 1, 1}
	ellipsoid := placedSurface{transform: rigid.Transform(), surface: ellipsoidShape}

	conePlacement := options.Placement("cone")
	coneShape, err := geometry.NewCone(core.NewPoint3(0, 1, 0), 1, math.Pi/6, geometry.VisualData{
		Color:            coneColor,
		SpecularStrength: conePlacement.SpecularStrength,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cone: %w", err)
	}
	cone := placedSurface{transform: conePlacement.Transform(), surface: coneShape}

	return []geometry.Surface{plane, blue, red, ellipsoid, cone}, nil
}

func meshSurfaces(options RenderOptions, assets *Assets) ([]geometry.Surface, error) {
	if assets == nil {
		assets = NewAssets(nil)
	}
	meshOptions, err := options.MeshOptions()
	if err != nil {
		return nil, err
	}

	surfaces := []geometry.Surface{placedSurface{
		transform: options.Placement("plane").Transform(),
		surface: geometry.NewPlane(core.NewPoint3(0, -1.4, 0), core.NewVec3(0, 1, 0),
			geometry.VisualData{Color: planeColor}),
	}}

	addMesh := func(mesh *geometry.TriangleMesh, placement ObjectPlacement) {
		visual := geometry.VisualData{
			Color:                meshColor,
			SpecularStrength:     placement.SpecularStrength,
			ReflectionStrength:   0.2,
			ReflectionGlossiness: options.ReflectionGlossiness,
		}
		surfaces = append(surfaces, placedSurface{
			transform: placement.Transform(),
			surface:   mesh.WithOptions(meshOptions).WithVisualData(visual),
		})
	}

	if options.MeshPath != "" {
		meshes, err := assets.Meshes(options.MeshPath)
		if err != nil {
			return nil, err
		}
		placement := options.Placement("mesh")
		for _, mesh := range meshes {
			addMesh(mesh, placement)
		}
		return surfaces, nil
	}

	for _, name := range []string{"box", "icosahedron"} {
		mesh, err := assets.Builtin(name)
		if err != nil {
			return nil, err
		}
		addMesh(mesh, options.Placement(name))
	}
	return surfaces, nil
}

// buildLights places the first light straight above the scene and the
// rest evenly on a ring around the vertical axis. Light colors are split
// so the total intensity does not depend on the light count.
func buildLights(count int, lookAt core.Affine) []*lights.Light {
	if count <= 0 {
		return nil
	}

	color := core.White().Multiply(1 / float64(count))
	right := core.NewVec3(lightSize, 0, 0)
	top := core.NewVec3(0, 0, lightSize)
	corner := core.NewVec3(-lightSize/2, 0, -lightSize/2)

	result := make([]*lights.Light, 0, count)
	result = append(result, lights.NewLight(core.NewPoint3(0, lightHeight, 0).Add(corner), color, right, top).Transform(lookAt))
	for i := 1; i < count; i++ {
		angle := 2 * math.Pi * float64(i-1) / float64(count-1)
		center := core.NewPoint3(lightRingRadius*math.Cos(angle), lightHeight, lightRingRadius*math.Sin(angle))
		result = append(result, lights.NewLight(center.Add(corner), color, right, top).Transform(lookAt))
	}
	return result
}

func buildCamera(options RenderOptions, position core.Point3) (*geometry.Camera, error) {
	projection, err := geometry.ParseProjection(options.Projection)
	if err != nil {
		return nil, err
	}
	camera, err := geometry.NewCamera(geometry.CameraConfig{
		Origin:       core.Origin(),
		Forward:      core.NewVec3(0, 0, -1),
		Up:           core.NewVec3(0, 1, 0),
		Width:        options.Width,
		Height:       options.Height,
		FieldOfView:  options.FieldOfView,
		Projection:   projection,
		ViewDistance: position.ToVec3().Length(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}
	return camera, nil
}
