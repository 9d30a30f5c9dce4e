package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// cliSettings holds the flags that do not belong to the render options
type cliSettings struct {
	help       bool
	output     string
	workers    int
	tileSize   int
	sixteenBit bool
}

func main() {
	options, settings, err := parseOptions(os.Args[1:])
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if settings.help {
		printHelp()
		return
	}

	fmt.Println("Starting Whitted Raytracer...")
	logger := renderer.NewDefaultLogger()

	fmt.Printf("Using %s scene...\n", options.Scene)
	selectedScene, err := scene.Build(options, scene.NewAssets(logger))
	if err != nil {
		log.Fatalf("Error building scene: %v", err)
	}

	config := renderer.DefaultConfig()
	config.NumWorkers = settings.workers
	if settings.tileSize > 0 {
		config.TileSize = settings.tileSize
	}

	frame, stats, err := renderer.RenderFrame(selectedScene, options.Shading(), config, logger)
	if err != nil {
		log.Fatalf("Error rendering frame: %v", err)
	}
	fmt.Printf("Render completed in %v (%d tiles, %d workers)\n", stats.Duration, stats.Tiles, stats.Workers)

	filename := settings.output
	if filename == "" {
		outputDir := createOutputDir(options.Scene)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			log.Fatalf("Error creating output directory: %v", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	var img image.Image = frame.ToRGBA()
	if settings.sixteenBit {
		img = frame.ToRGBA64()
	}
	if err := savePNG(filename, img); err != nil {
		log.Fatalf("Error saving PNG: %v", err)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// parseOptions reads the optional TOML config and applies every flag that
// was set explicitly on top of it
func parseOptions(args []string) (scene.RenderOptions, cliSettings, error) {
	defaults := scene.DefaultRenderOptions()
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)

	configPath := fs.String("config", "", "TOML file with render options")
	sceneName := fs.String("scene", defaults.Scene, "Scene type: 'simple' or 'mesh'")
	width := fs.Int("width", defaults.Width, "Image width in pixels")
	height := fs.Int("height", defaults.Height, "Image height in pixels")
	projection := fs.String("projection", defaults.Projection, "Projection: 'perspective' or 'parallel'")
	fov := fs.Float64("fov", defaults.FieldOfView, "Horizontal field of view in radians")
	lights := fs.Int("lights", defaults.NumberOfLights, "Number of lights")
	softShadows := fs.Bool("soft-shadows", defaults.UseSoftShadows, "Sample area lights for soft shadows")
	supersampling := fs.Bool("supersampling", defaults.UseSupersampling, "Average a grid of rays per pixel")
	glossiness := fs.Float64("glossiness", defaults.ReflectionGlossiness, "Reflection cone half-angle in radians")
	meshPath := fs.String("mesh", defaults.MeshPath, "OBJ or PLY model for the mesh scene")
	boundingVolume := fs.String("bvh", defaults.Ray.BoundingVolume, "BVH bounding volume: 'box', 'sphere' or 'none'")

	var settings cliSettings
	fs.BoolVar(&settings.help, "help", false, "Show help information")
	fs.StringVar(&settings.output, "output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.IntVar(&settings.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&settings.tileSize, "tile-size", 0, "Tile size in pixels (0 = default)")
	fs.BoolVar(&settings.sixteenBit, "16bit", false, "Write a 16-bit PNG")

	if err := fs.Parse(args); err != nil {
		return scene.RenderOptions{}, settings, err
	}
	if settings.help {
		return defaults, settings, nil
	}

	options := defaults
	if *configPath != "" {
		loaded, err := scene.LoadRenderOptions(*configPath)
		if err != nil {
			return scene.RenderOptions{}, settings, err
		}
		options = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			options.Scene = *sceneName
		case "width":
			options.Width = *width
		case "height":
			options.Height = *height
		case "projection":
			options.Projection = *projection
		case "fov":
			options.FieldOfView = *fov
		case "lights":
			options.NumberOfLights = *lights
		case "soft-shadows":
			options.UseSoftShadows = *softShadows
		case "supersampling":
			options.UseSupersampling = *supersampling
		case "glossiness":
			options.ReflectionGlossiness = *glossiness
		case "mesh":
			options.MeshPath = *meshPath
		case "bvh":
			options.Ray.BoundingVolume = *boundingVolume
		}
	})

	if err := options.Validate(); err != nil {
		return scene.RenderOptions{}, settings, err
	}
	return options, settings, nil
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Flags override values read from -config.")
	fmt.Println()
	fmt.Println("Available scenes:")
	fmt.Println("  simple - Ground plane, two spheres, an ellipsoid and a cone")
	fmt.Println("  mesh   - Ground plane with the -mesh model, or a box and an icosahedron")
	fmt.Println()
	fmt.Printf("Projections: %s, %s\n", geometry.Perspective, geometry.Parallel)
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// createOutputDir returns the output directory for a scene
func createOutputDir(sceneName string) string {
	return filepath.Join("output", sceneName)
}

func savePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return file.Close()
}
