package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"mesh-atlas-builder/internal/atlas"
	"mesh-atlas-builder/internal/scene"
)

// BakeUVLayer produces the destination UV layer: one remapped pair per mesh
// loop. Each face samples its slot's source layer (the slot's uv_map when
// the mesh has it, else the render-active layer) through that slot's
// transform. Faces whose slot has no transform copy through unchanged.
// Face topology is untouched.
func BakeUVLayer(mesh *scene.Mesh, materials []scene.Material, transforms map[int]atlas.Transform) []scene.UV {
	out := make([]scene.UV, mesh.LoopCount())
	for _, f := range mesh.Faces {
		srcName := ""
		if f.MaterialIndex >= 0 && f.MaterialIndex < len(materials) {
			srcName = materials[f.MaterialIndex].UVMap
		}
		src := mesh.SourceLayer(srcName)
		tr, ok := transforms[f.MaterialIndex]
		for li := f.LoopStart; li < f.LoopStart+f.LoopTotal; li++ {
			uv := src[li]
			if !ok {
				out[li] = uv
				continue
			}
			u, v := tr.Apply(float64(uv[0]), float64(uv[1]))
			out[li] = scene.UV{float32(u), float32(v)}
		}
	}
	return out
}

// UVLayerFile is the on-disk form of the baked UV layer, consumed by the
// host-side importer that attaches it to the duplicated mesh.
type UVLayerFile struct {
	Name     string     `json:"name"`
	Material string     `json:"material"`
	UVs      []scene.UV `json:"uvs"`
}

// WriteUVLayer writes the baked layer JSON to path.
func WriteUVLayer(path, name, material string, uvs []scene.UV) error {
	data, err := json.MarshalIndent(UVLayerFile{Name: name, Material: material, UVs: uvs}, "", "  ")
	if err != nil {
		return fmt.Errorf("pipeline: marshal uv layer: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("pipeline: write uv layer: %w", err)
	}
	return nil
}
