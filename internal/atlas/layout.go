package atlas

import (
	"fmt"
	"image"
	"math"
)

// LayoutError reports an invalid planning input together with the offending
// parameter. It is always raised before any pixel work starts.
type LayoutError struct {
	Param string
	Value int
	Msg   string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("atlas: layout: %s (%s=%d)", e.Msg, e.Param, e.Value)
}

// Plan assigns every tile request a cell in a row-major grid and returns the
// finished layout. Request order is preserved; identical inputs produce
// identical layouts. Each cell is the effective tile size plus the padding
// margin on all four sides, so neighboring tiles are separated by twice the
// padding and the outer atlas edges keep a full margin as well.
func Plan(reqs []TileRequest, opts PlanOptions) (Layout, error) {
	n := len(reqs)
	if n == 0 {
		return Layout{}, &LayoutError{Param: "tiles", Value: 0, Msg: "no tiles to place"}
	}
	if opts.Padding < 0 {
		return Layout{}, &LayoutError{Param: "padding_px", Value: opts.Padding, Msg: "negative padding"}
	}

	tw, th := opts.TileW, opts.TileH
	if tw <= 0 {
		tw = 0
		for _, r := range reqs {
			if r.W > tw {
				tw = r.W
			}
		}
	}
	if th <= 0 {
		th = 0
		for _, r := range reqs {
			if r.H > th {
				th = r.H
			}
		}
	}
	if tw <= 0 {
		return Layout{}, &LayoutError{Param: "tile_w", Value: tw, Msg: "zero-area cell"}
	}
	if th <= 0 {
		return Layout{}, &LayoutError{Param: "tile_h", Value: th, Msg: "zero-area cell"}
	}

	rows, cols, err := gridShape(n, opts)
	if err != nil {
		return Layout{}, err
	}

	cellW := tw + 2*opts.Padding
	cellH := th + 2*opts.Padding

	// The full grid rectangle is kept even when the last row is partial:
	// uniform cells keep the UV math identical for every slot.
	width := cols * cellW
	height := rows * cellH
	if opts.ForcePow2 {
		width = nextPow2(width)
		height = nextPow2(height)
	}

	tiles := make([]Tile, n)
	for i, r := range reqs {
		col := i % cols
		row := i / cols
		x := col * cellW
		y := row * cellH
		tiles[i] = Tile{
			Slot:    r.Slot,
			Name:    r.Name,
			Rect:    image.Rect(x, y, x+cellW, y+cellH),
			Padding: opts.Padding,
		}
	}

	return Layout{
		Tiles:   tiles,
		Width:   width,
		Height:  height,
		Rows:    rows,
		Cols:    cols,
		TileW:   tw,
		TileH:   th,
		Padding: opts.Padding,
		Pow2:    opts.ForcePow2,
	}, nil
}

func gridShape(n int, opts PlanOptions) (rows, cols int, err error) {
	switch opts.Mode {
	case ModeRow:
		return 1, n, nil
	case ModeCol:
		return n, 1, nil
	case ModeFixed:
		if opts.Rows < 1 {
			return 0, 0, &LayoutError{Param: "rows", Value: opts.Rows, Msg: "fixed grid needs rows >= 1"}
		}
		if opts.Cols < 1 {
			return 0, 0, &LayoutError{Param: "cols", Value: opts.Cols, Msg: "fixed grid needs cols >= 1"}
		}
		if opts.Rows*opts.Cols < n {
			return 0, 0, &LayoutError{
				Param: "rows*cols",
				Value: opts.Rows * opts.Cols,
				Msg:   fmt.Sprintf("fixed grid too small for %d tiles", n),
			}
		}
		return opts.Rows, opts.Cols, nil
	default:
		// Near-square, preferring wider than tall.
		cols = int(math.Ceil(math.Sqrt(float64(n))))
		rows = (n + cols - 1) / cols
		return rows, cols, nil
	}
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
