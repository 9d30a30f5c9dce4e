package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

const (
	specularExponent = 64
	// shadowEpsilon offsets shadow and reflection origins off the surface
	shadowEpsilon = 1e-4
	// glossyGrid is the side of the stratified grid of glossy reflection samples
	glossyGrid = 3
)

// Scene contains all the elements needed for rendering. It is read-only
// once built and safe to share between render workers.
type Scene struct {
	Surfaces        []geometry.Surface
	Camera          *geometry.Camera
	Lights          []*lights.Light
	Background      core.Color
	AmbientStrength float64
	DiffuseStrength float64
}

// ShadingOptions selects the stochastic features used per pixel
type ShadingOptions struct {
	SoftShadows       bool
	Supersampling     bool
	SupersamplingGrid int // Side of the N x N grid of primary rays
}

// Size returns the image size the camera was built for
func (s *Scene) Size() (int, int) {
	return s.Camera.Size()
}

// ClosestHit returns the nearest hit among all surfaces along the ray
func (s *Scene) ClosestHit(ray core.Ray) (geometry.Hit, geometry.Surface, bool) {
	best := geometry.InfiniteHit()
	var closest geometry.Surface
	for _, surface := range s.Surfaces {
		if hit, ok := surface.Hit(ray); ok && hit.T < best.T {
			best, closest = hit, surface
		}
	}
	return best, closest, closest != nil
}

// SurfaceIndexAt returns the index of the surface seen through the
// center of pixel (column, row)
func (s *Scene) SurfaceIndexAt(column, row int) (int, bool) {
	ray := s.Camera.GenerateRay(column, row)
	best := math.Inf(1)
	index := -1
	for i, surface := range s.Surfaces {
		if hit, ok := surface.Hit(ray); ok && hit.T < best {
			best, index = hit.T, i
		}
	}
	return index, index >= 0
}

// ComputePixel returns the color of pixel (column, row), rows counting up
// from the bottom. With supersampling it averages an N x N grid of rays,
// each jittered inside its own sub-cell.
func (s *Scene) ComputePixel(column, row int, options ShadingOptions, sampler core.Sampler) core.Color {
	if !options.Supersampling || options.SupersamplingGrid <= 1 {
		ray := s.Camera.GenerateRay(column, row)
		return s.ComputeRayColor(ray, 0, options.SoftShadows, sampler)
	}

	n := options.SupersamplingGrid
	colors := make([]core.Color, 0, n*n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			offset := core.StratifiedSample(a, b, n, sampler.Get2D())
			ray := s.Camera.GenerateJitteredRay(column, row, offset.X, offset.Y)
			colors = append(colors, s.ComputeRayColor(ray, 0, options.SoftShadows, sampler))
		}
	}
	return core.AverageColors(colors)
}

// ComputeRayColor shades the closest hit along the ray: ambient, then
// diffuse and specular per unshadowed light, then at depth 0 a mirror or
// glossy reflection
func (s *Scene) ComputeRayColor(ray core.Ray, depth int, softShadows bool, sampler core.Sampler) core.Color {
	hit, surface, ok := s.ClosestHit(ray)
	if !ok {
		return s.Background
	}

	visual := surface.VisualData()
	point := ray.At(hit.T)
	eyeDir := ray.Direction.Negate().Normalize()

	color := visual.Color.Multiply(s.AmbientStrength)

	for _, light := range s.Lights {
		lightPosition := light.NominalPosition()
		if softShadows {
			lightPosition = light.Sample(sampler)
		}

		toLight := lightPosition.Subtract(point)
		distance := toLight.Length()
		if distance == 0 {
			continue
		}
		lightDir := toLight.Multiply(1 / distance)

		if s.isShadowed(point, lightDir, distance) {
			continue
		}

		diffuse := math.Max(0, hit.Normal.Dot(lightDir)) * s.DiffuseStrength
		color = color.Add(light.Color.Multiply(diffuse))

		if visual.SpecularStrength > 0 {
			halfVector := eyeDir.Add(lightDir).Normalize()
			specular := math.Pow(math.Max(0, hit.Normal.Dot(halfVector)), specularExponent)
			color = color.Add(light.Color.Multiply(visual.SpecularStrength * specular))
		}
	}

	// Reflections are traced only from primary hits
	if depth == 0 && visual.ReflectionStrength > 0 {
		reflected := s.reflectionColor(point, ray.Direction, hit.Normal, visual.ReflectionGlossiness, softShadows, sampler)
		color = color.Add(reflected.Multiply(visual.ReflectionStrength))
	}

	return color
}

// isShadowed casts a ray from just off the surface towards the light and
// reports any hit before the light
func (s *Scene) isShadowed(point core.Point3, lightDir core.Vec3, distance float64) bool {
	shadowRay := core.NewRay(point.Add(lightDir.Multiply(shadowEpsilon)), lightDir)
	for _, surface := range s.Surfaces {
		if hit, ok := surface.Hit(shadowRay); ok && hit.T < distance {
			return true
		}
	}
	return false
}

func (s *Scene) reflectionColor(point core.Point3, incoming, normal core.Vec3, glossiness float64, softShadows bool, sampler core.Sampler) core.Color {
	mirror := ReflectDirection(incoming.Normalize(), normal)
	origin := point.Add(mirror.Multiply(shadowEpsilon))

	if glossiness <= 0 {
		return s.ComputeRayColor(core.NewRay(origin, mirror), 1, softShadows, sampler)
	}

	cosWidth := math.Cos(glossiness)
	colors := make([]core.Color, 0, glossyGrid*glossyGrid)
	for a := 0; a < glossyGrid; a++ {
		for b := 0; b < glossyGrid; b++ {
			sample := core.StratifiedSample(a, b, glossyGrid, sampler.Get2D())
			direction := core.SampleCone(mirror, cosWidth, sample)
			colors = append(colors, s.ComputeRayColor(core.NewRay(origin, direction), 1, softShadows, sampler))
		}
	}
	return core.AverageColors(colors)
}

// ReflectDirection mirrors direction about the normal
func ReflectDirection(direction, normal core.Vec3) core.Vec3 {
	return direction.Subtract(normal.Multiply(2 * direction.Dot(normal)))
}
