// Package atlas plans tile placement for multi-material texture atlases and
// derives the per-slot UV transforms that follow from a placement.
package atlas

import "image/color"

// Channel identifies one PBR texture channel. Each channel is composited
// into its own atlas image.
type Channel int

const (
	BaseColor Channel = iota
	Normal
	Roughness
	Metalness
)

// Channels lists all channels in composition order.
var Channels = [4]Channel{BaseColor, Normal, Roughness, Metalness}

func (c Channel) String() string {
	switch c {
	case BaseColor:
		return "BaseColor"
	case Normal:
		return "Normal"
	case Roughness:
		return "Roughness"
	case Metalness:
		return "Metalness"
	}
	return "Unknown"
}

// DefaultFill returns the constant color used wherever a material has no
// texture for this channel: black base color, flat +Z normal, mid roughness,
// zero metalness.
func (c Channel) DefaultFill() color.NRGBA {
	switch c {
	case Normal:
		return color.NRGBA{R: 128, G: 128, B: 255, A: 255}
	case Roughness:
		return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return color.NRGBA{A: 255}
}

// Grayscale reports whether the channel is composited as a single-channel
// gray image rather than color.
func (c Channel) Grayscale() bool {
	return c == Roughness || c == Metalness
}
