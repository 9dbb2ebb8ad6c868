// Package scene reads the mesh/material document this tool operates on.
// The document is produced by a host-side exporter; everything here is
// treated as read-only input.
package scene

import "mesh-atlas-builder/internal/atlas"

// ChannelPaths holds one material's explicit texture references. Empty
// fields fall back to name-pattern lookup in the texture directory, and
// finally to the channel's default fill.
type ChannelPaths struct {
	BaseColor string `json:"base_color,omitempty"`
	Normal    string `json:"normal,omitempty"`
	Roughness string `json:"roughness,omitempty"`
	Metalness string `json:"metalness,omitempty"`
}

// For returns the path registered for a channel, or "".
func (p ChannelPaths) For(ch atlas.Channel) string {
	switch ch {
	case atlas.BaseColor:
		return p.BaseColor
	case atlas.Normal:
		return p.Normal
	case atlas.Roughness:
		return p.Roughness
	case atlas.Metalness:
		return p.Metalness
	}
	return ""
}

// Material is one material slot on the mesh. Slice order is slot order.
type Material struct {
	Name     string       `json:"name"`
	Textures ChannelPaths `json:"textures"`
	UVMap    string       `json:"uv_map,omitempty"` // source UV layer this slot samples
}

// Face is one polygon: a loop range plus the material slot it is assigned
// to. Loops index into the mesh's UV layers.
type Face struct {
	MaterialIndex int `json:"material_index"`
	LoopStart     int `json:"loop_start"`
	LoopTotal     int `json:"loop_total"`
}

// UV is one texture coordinate pair, bottom-left origin.
type UV [2]float32

// Mesh carries the polygon and UV data needed for remapping.
type Mesh struct {
	Name     string          `json:"name"`
	Faces    []Face          `json:"faces"`
	UVLayers map[string][]UV `json:"uv_layers"`
	ActiveUV string          `json:"active_uv,omitempty"` // render-active layer, fallback source
}

// LoopCount returns the total loop count, which every UV layer matches.
func (m *Mesh) LoopCount() int {
	return len(m.UVLayers[m.ActiveUV])
}

// SourceLayer returns the named UV layer, falling back to the render-active
// layer when the name is empty or unknown.
func (m *Mesh) SourceLayer(name string) []UV {
	if name != "" {
		if l, ok := m.UVLayers[name]; ok {
			return l
		}
	}
	return m.UVLayers[m.ActiveUV]
}

// Scene ties the mesh to its material slots and the directory source
// textures are resolved against.
type Scene struct {
	Mesh       Mesh       `json:"mesh"`
	Materials  []Material `json:"materials"`
	TextureDir string     `json:"texture_dir,omitempty"`
}
