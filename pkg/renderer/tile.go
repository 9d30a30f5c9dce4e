package renderer

import "image"

// Tile is a rectangle of pixels rendered by a single worker
type Tile struct {
	ID     int             // Unique tile identifier, also offsets the tile's random seed
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1) in image coordinates
}

// NewTileGrid covers a width x height image with tiles of tileSize pixels;
// tiles on the right and bottom edges are clipped to the image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}
