package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads and validates a scene document. TextureDir is resolved
// relative to the scene file; when absent it defaults to the scene's own
// directory.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if s.TextureDir == "" {
		s.TextureDir = dir
	} else if !filepath.IsAbs(s.TextureDir) {
		s.TextureDir = filepath.Join(dir, s.TextureDir)
	}

	return &s, nil
}

func (s *Scene) validate() error {
	if len(s.Materials) == 0 {
		return fmt.Errorf("mesh %q has no material slots", s.Mesh.Name)
	}
	if len(s.Mesh.UVLayers) == 0 {
		return fmt.Errorf("mesh %q has no UV layers", s.Mesh.Name)
	}

	// Default the active layer when there is exactly one candidate.
	if s.Mesh.ActiveUV == "" && len(s.Mesh.UVLayers) == 1 {
		for name := range s.Mesh.UVLayers {
			s.Mesh.ActiveUV = name
		}
	}
	active, ok := s.Mesh.UVLayers[s.Mesh.ActiveUV]
	if !ok {
		return fmt.Errorf("active UV layer %q not found on mesh %q", s.Mesh.ActiveUV, s.Mesh.Name)
	}

	loops := len(active)
	for name, layer := range s.Mesh.UVLayers {
		if len(layer) != loops {
			return fmt.Errorf("UV layer %q has %d loops, active layer has %d", name, len(layer), loops)
		}
	}

	for i, f := range s.Mesh.Faces {
		if f.MaterialIndex < 0 || f.MaterialIndex >= len(s.Materials) {
			return fmt.Errorf("face %d references material slot %d of %d", i, f.MaterialIndex, len(s.Materials))
		}
		if f.LoopTotal < 1 || f.LoopStart < 0 || f.LoopStart+f.LoopTotal > loops {
			return fmt.Errorf("face %d loop range [%d,%d) exceeds %d loops", i, f.LoopStart, f.LoopStart+f.LoopTotal, loops)
		}
	}
	return nil
}
