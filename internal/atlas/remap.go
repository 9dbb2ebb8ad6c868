package atlas

// Transform maps one material slot's UV coordinates into atlas UV space:
// atlasUV = uv*scale + offset. The UV origin is bottom-left while the pixel
// origin is top-left, so the V offset is measured from the bottom atlas edge.
type Transform struct {
	ScaleU  float64
	ScaleV  float64
	OffsetU float64
	OffsetV float64
}

// BuildTransform derives the affine map from a tile's usable rectangle and
// the final atlas dimensions. The unit square lands exactly on the usable
// rectangle, so for source UVs in [0,1] the padding margin is never sampled.
func BuildTransform(tile Tile, layout Layout) Transform {
	u := tile.Usable()
	aw := float64(layout.Width)
	ah := float64(layout.Height)
	return Transform{
		ScaleU:  float64(u.Dx()) / aw,
		ScaleV:  float64(u.Dy()) / ah,
		OffsetU: float64(u.Min.X) / aw,
		// Pixel rows grow downward, V grows upward: the offset counts from
		// the usable rectangle's bottom edge.
		OffsetV: 1 - float64(u.Max.Y)/ah,
	}
}

// Apply maps a single UV pair. Pure arithmetic with no error path; inputs
// outside [0,1] pass through the same affine map and legitimately sample
// outside the tile's usable rectangle (tiling textures do not survive
// atlasing).
func (t Transform) Apply(u, v float64) (float64, float64) {
	return u*t.ScaleU + t.OffsetU, v*t.ScaleV + t.OffsetV
}

// Transforms builds the per-slot transform table for a layout, keyed by
// material slot index. Exactly one transform per tile.
func Transforms(layout Layout) map[int]Transform {
	out := make(map[int]Transform, len(layout.Tiles))
	for _, tile := range layout.Tiles {
		out[tile.Slot] = BuildTransform(tile, layout)
	}
	return out
}
