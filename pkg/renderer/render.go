package renderer

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Scene is what the renderer needs from a scene: its image size and a
// color per pixel. ComputePixel must be safe for concurrent use.
type Scene interface {
	Size() (width, height int)
	ComputePixel(column, row int, options scene.ShadingOptions, sampler core.Sampler) core.Color
}

// Config contains configuration for frame rendering
type Config struct {
	TileSize   int   // Size of each square tile in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base random seed; 0 seeds from the clock
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0,
		Seed:       0,
	}
}

// RenderStats contains statistics about a rendered frame
type RenderStats struct {
	TotalPixels int
	Tiles       int
	Workers     int
	Duration    time.Duration
}

// RenderFrame computes every pixel of the scene. Tiles are distributed
// over a bounded set of goroutines; each tile owns its random generator
// and writes only its own pixels, so workers share nothing mutable.
func RenderFrame(s Scene, options scene.ShadingOptions, config Config, logger core.Logger) (*Frame, RenderStats, error) {
	width, height := s.Size()
	if width <= 0 || height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if config.TileSize <= 0 {
		return nil, RenderStats{}, fmt.Errorf("tile size must be positive, got %d", config.TileSize)
	}

	workers := config.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	startTime := time.Now()
	frame := NewFrame(width, height)
	tiles := NewTileGrid(width, height, config.TileSize)

	if logger != nil {
		logger.Printf("Rendering %dx%d in %d tiles with %d workers\n", width, height, len(tiles), workers)
	}

	var group errgroup.Group
	group.SetLimit(workers)
	for _, tile := range tiles {
		group.Go(func() error {
			renderTile(s, options, frame, tile, seed)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		TotalPixels: width * height,
		Tiles:       len(tiles),
		Workers:     workers,
		Duration:    time.Since(startTime),
	}
	if logger != nil {
		logger.Printf("Rendered %d pixels in %v\n", stats.TotalPixels, stats.Duration)
	}
	return frame, stats, nil
}

// renderTile fills the tile's pixels. Image row y is scene row
// height-1-y since scene rows count from the bottom.
func renderTile(s Scene, options scene.ShadingOptions, frame *Frame, tile *Tile, seed int64) {
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed + int64(tile.ID))))
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		row := frame.Height - 1 - y
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			frame.Set(x, y, s.ComputePixel(x, row, options, sampler))
		}
	}
}
