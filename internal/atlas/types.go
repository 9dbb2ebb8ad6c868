package atlas

import "image"

// Mode selects how tiles are arranged into the atlas grid.
type Mode int

const (
	ModeAuto Mode = iota // near-square grid, wider than tall
	ModeRow              // single row
	ModeCol              // single column
	ModeFixed            // caller-supplied rows x cols
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeRow:
		return "row"
	case ModeCol:
		return "col"
	case ModeFixed:
		return "fixed"
	}
	return "unknown"
}

// TileRequest describes one material slot's size demand before planning.
// Slot order is material insertion order and is preserved by Plan.
type TileRequest struct {
	Slot int    // material slot index on the mesh
	Name string // material name, carried into the manifest
	W, H int    // largest source image dimensions across channels; 0 when unknown
}

// Tile is one placed cell within the atlas.
type Tile struct {
	Slot    int
	Name    string
	Rect    image.Rectangle // full cell in atlas pixels, padding included
	Padding int
}

// Usable returns the sub-rectangle source pixels are drawn into: the cell
// inset by the padding margin on all four sides. Remapped UVs for source
// coordinates in [0,1] never leave it.
func (t Tile) Usable() image.Rectangle {
	return t.Rect.Inset(t.Padding)
}

// Layout is the finished placement for one atlas build. Tiles are 1:1 with
// the requests handed to Plan, in the same order.
type Layout struct {
	Tiles   []Tile
	Width   int // final atlas width, after any pow2 rounding
	Height  int
	Rows    int
	Cols    int
	TileW   int // effective tile size: the usable area of every cell
	TileH   int
	Padding int
	Pow2    bool
}

// PlanOptions are the planning knobs. The zero value is a padding-less auto
// grid sized from the requests.
type PlanOptions struct {
	Padding   int
	TileW     int // force every tile to this width; 0 uses the max request width
	TileH     int
	Mode      Mode
	Rows      int // ModeFixed only
	Cols      int
	ForcePow2 bool
}
