package texture_test

import (
	"os"
	"path/filepath"
	"testing"

	"mesh-atlas-builder/internal/atlas"
	"mesh-atlas-builder/internal/texture"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIndexResolveChannel(t *testing.T) {
	dir := t.TempDir()
	woodBase := touch(t, dir, "Wood_BaseColor.png")
	touch(t, dir, "wood_normal.png")
	woodRough := touch(t, dir, "wood_roughness.jpg")
	stone := touch(t, dir, "stone.png")
	stoneMetal := touch(t, dir, "stone_metallic.tga")
	touch(t, dir, "notes.txt") // ignored: not an image

	idx := texture.BuildIndex(dir)
	if idx.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", idx.Len())
	}

	tests := []struct {
		material string
		ch       atlas.Channel
		want     string
		ok       bool
	}{
		{"Wood", atlas.BaseColor, woodBase, true},
		{"wood", atlas.Roughness, woodRough, true},
		{"wood", atlas.Metalness, "", false},
		{"Stone", atlas.Metalness, stoneMetal, true},
		// No keyword match, but "stone.png" carries the material name and
		// no other channel's keyword: accepted as BaseColor.
		{"Stone", atlas.BaseColor, stone, true},
		{"stone", atlas.Normal, "", false},
		{"brick", atlas.BaseColor, "", false},
		{"", atlas.BaseColor, "", false},
	}
	for _, tt := range tests {
		got, ok := idx.ResolveChannel(tt.material, tt.ch)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ResolveChannel(%q, %v) = (%q, %v), want (%q, %v)",
				tt.material, tt.ch, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIndexNormalNotMistakenForBaseColor(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "iron_normal.png")

	idx := texture.BuildIndex(dir)
	if _, ok := idx.ResolveChannel("iron", atlas.BaseColor); ok {
		t.Error("ResolveChannel picked a normal map as BaseColor")
	}
}
