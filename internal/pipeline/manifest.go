package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"mesh-atlas-builder/internal/atlas"
)

// ManifestTile describes one placed tile: its cell rectangle in atlas
// pixels plus the usable rectangle in atlas UV space (bottom-left origin).
type ManifestTile struct {
	Index    int     `json:"index"`
	Material string  `json:"material"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	W        int     `json:"w"`
	H        int     `json:"h"`
	U0       float64 `json:"u0"`
	V0       float64 `json:"v0"`
	U1       float64 `json:"u1"`
	V1       float64 `json:"v1"`
}

// Manifest describes the finished atlas for downstream consumers.
type Manifest struct {
	AtlasWidth  int            `json:"atlas_width"`
	AtlasHeight int            `json:"atlas_height"`
	TileWidth   int            `json:"tile_width"`
	TileHeight  int            `json:"tile_height"`
	PaddingPx   int            `json:"padding_px"`
	Rows        int            `json:"rows"`
	Cols        int            `json:"cols"`
	Tiles       []ManifestTile `json:"tiles"`
}

// BuildManifest flattens a layout into its manifest form.
func BuildManifest(layout atlas.Layout) Manifest {
	m := Manifest{
		AtlasWidth:  layout.Width,
		AtlasHeight: layout.Height,
		TileWidth:   layout.TileW,
		TileHeight:  layout.TileH,
		PaddingPx:   layout.Padding,
		Rows:        layout.Rows,
		Cols:        layout.Cols,
		Tiles:       make([]ManifestTile, len(layout.Tiles)),
	}
	for i, tile := range layout.Tiles {
		tr := atlas.BuildTransform(tile, layout)
		m.Tiles[i] = ManifestTile{
			Index:    i,
			Material: tile.Name,
			X:        tile.Rect.Min.X,
			Y:        tile.Rect.Min.Y,
			W:        tile.Rect.Dx(),
			H:        tile.Rect.Dy(),
			U0:       tr.OffsetU,
			V0:       tr.OffsetV,
			U1:       tr.OffsetU + tr.ScaleU,
			V1:       tr.OffsetV + tr.ScaleV,
		}
	}
	return m
}

// WriteManifest writes the manifest JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("pipeline: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("pipeline: write manifest: %w", err)
	}
	return nil
}
