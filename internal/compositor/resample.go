// Package compositor renders the per-channel atlas images from a finished
// layout: each tile's source texture is resized to its usable rectangle and
// pasted onto a canvas pre-filled with the channel's default color.
package compositor

import (
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/transform"
)

// Method selects the resampling kernel used when fitting a source texture
// into its tile. A quality/speed trade-off only; placement is unaffected.
type Method int

const (
	Nearest Method = iota
	Bilinear
	Bicubic
	Lanczos
)

func (m Method) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	case Bicubic:
		return "bicubic"
	case Lanczos:
		return "lanczos"
	}
	return "unknown"
}

// ParseMethod parses a resample method name. Empty defaults to Lanczos.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest":
		return Nearest, nil
	case "bilinear":
		return Bilinear, nil
	case "bicubic":
		return Bicubic, nil
	case "", "lanczos":
		return Lanczos, nil
	}
	return 0, fmt.Errorf("compositor: unknown resample method %q", s)
}

func (m Method) filter() transform.ResampleFilter {
	switch m {
	case Nearest:
		return transform.NearestNeighbor
	case Bilinear:
		return transform.Linear
	case Bicubic:
		return transform.CatmullRom
	}
	return transform.Lanczos
}

// resize fits src to w×h with the method's kernel.
func resize(src image.Image, w, h int, m Method) *image.RGBA {
	return transform.Resize(src, w, h, m.filter())
}
