package pipeline_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"mesh-atlas-builder/internal/atlas"
	"mesh-atlas-builder/internal/pipeline"
	"mesh-atlas-builder/internal/scene"
)

func TestBakeUVLayer(t *testing.T) {
	mesh := &scene.Mesh{
		ActiveUV: "A",
		UVLayers: map[string][]scene.UV{
			"A": {{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}, {1, 0}, {1, 1}, {0, 1}},
			"B": {{0.5, 0.5}, {1, 0.5}, {1, 1}, {0.5, 1}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		},
		Faces: []scene.Face{
			{MaterialIndex: 0, LoopStart: 0, LoopTotal: 4},
			{MaterialIndex: 1, LoopStart: 4, LoopTotal: 4},
		},
	}
	materials := []scene.Material{
		{Name: "wood", UVMap: "B"}, // slot 0 samples layer B
		{Name: "stone"},            // slot 1 falls back to the active layer
	}
	transforms := map[int]atlas.Transform{
		0: {ScaleU: 0.5, ScaleV: 0.5, OffsetU: 0.25, OffsetV: 0},
		// slot 1 has no transform: its loops copy through unchanged
	}

	got := pipeline.BakeUVLayer(mesh, materials, transforms)

	want := []scene.UV{
		// layer B through the slot-0 transform
		{0.5, 0.25}, {0.75, 0.25}, {0.75, 0.5}, {0.5, 0.5},
		// layer A copied through for slot 1
		{0, 0}, {1, 0}, {1, 1}, {0, 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BakeUVLayer mismatch (-want+got):\n%v", diff)
	}
}

func TestBakeUVLayerLength(t *testing.T) {
	mesh := &scene.Mesh{
		ActiveUV: "A",
		UVLayers: map[string][]scene.UV{"A": {{0, 0}, {1, 1}, {0.5, 0.5}}},
		Faces:    []scene.Face{{MaterialIndex: 0, LoopStart: 0, LoopTotal: 3}},
	}
	got := pipeline.BakeUVLayer(mesh, []scene.Material{{Name: "a"}}, map[int]atlas.Transform{
		0: {ScaleU: 1, ScaleV: 1},
	})
	if len(got) != mesh.LoopCount() {
		t.Errorf("baked %d loops, want %d", len(got), mesh.LoopCount())
	}
}
