package pipeline_test

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"mesh-atlas-builder/internal/atlas"
	"mesh-atlas-builder/internal/compositor"
	"mesh-atlas-builder/internal/pipeline"
	"mesh-atlas-builder/internal/scene"
	"mesh-atlas-builder/internal/texture"
)

func writeSolidPNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func testScene(t *testing.T, dir string) *scene.Scene {
	t.Helper()
	// wood_basecolor.png is found by the name-pattern index; stone has an
	// explicit path for BaseColor and nothing else.
	writeSolidPNG(t, filepath.Join(dir, "wood_basecolor.png"), 8, 8, color.NRGBA{R: 200, A: 255})
	writeSolidPNG(t, filepath.Join(dir, "gray.png"), 8, 8, color.NRGBA{R: 90, G: 90, B: 90, A: 255})

	sc := &scene.Scene{
		TextureDir: dir,
		Materials: []scene.Material{
			{Name: "wood"},
			{Name: "stone", Textures: scene.ChannelPaths{BaseColor: "gray.png"}},
		},
		Mesh: scene.Mesh{
			Name:     "Crate",
			ActiveUV: "UVMap",
			UVLayers: map[string][]scene.UV{
				"UVMap": {{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}, {1, 0}, {1, 1}, {0, 1}},
			},
			Faces: []scene.Face{
				{MaterialIndex: 0, LoopStart: 0, LoopTotal: 4},
				{MaterialIndex: 1, LoopStart: 4, LoopTotal: 4},
			},
		},
	}
	return sc
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	sc := testScene(t, dir)

	cfg := pipeline.Config{
		OutputDir:    outDir,
		BaseName:     "crate",
		UVName:       "BAKE_ATLAS",
		MaterialName: "AtlasMaterial",
		Format:       "png",
		Method:       compositor.Nearest,
		Plan:         atlas.PlanOptions{Padding: 2, Mode: atlas.ModeRow},
		Workers:      2,
	}

	result, err := pipeline.Run(cfg, sc)
	if err != nil {
		t.Fatal(err)
	}

	// 8x8 tiles, padding 2, single row: 12px cells, 24x12 atlas.
	if result.Layout.Width != 24 || result.Layout.Height != 12 {
		t.Fatalf("atlas = %dx%d, want 24x12", result.Layout.Width, result.Layout.Height)
	}

	// Channel images decode back at atlas size; tile 0's usable region is
	// the wood base color.
	basePath := result.ImagePaths[atlas.BaseColor]
	f, err := os.Open(basePath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	base, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if base.Bounds().Dx() != 24 || base.Bounds().Dy() != 12 {
		t.Fatalf("BaseColor image %v, want 24x12", base.Bounds())
	}
	r, g, b, _ := base.At(6, 6).RGBA()
	if uint8(r>>8) != 200 || g != 0 || b != 0 {
		t.Errorf("tile 0 center = (%d,%d,%d), want (200,0,0)", r>>8, g>>8, b>>8)
	}

	for _, ch := range atlas.Channels {
		if _, err := os.Stat(result.ImagePaths[ch]); err != nil {
			t.Errorf("missing %s output: %v", ch, err)
		}
	}

	// Manifest round-trips and matches the layout.
	data, err := os.ReadFile(result.ManifestPath)
	if err != nil {
		t.Fatal(err)
	}
	var m pipeline.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m.AtlasWidth != 24 || m.AtlasHeight != 12 || len(m.Tiles) != 2 {
		t.Errorf("manifest = %dx%d with %d tiles", m.AtlasWidth, m.AtlasHeight, len(m.Tiles))
	}
	if m.Tiles[0].Material != "wood" || m.Tiles[1].Material != "stone" {
		t.Errorf("manifest materials = %q, %q", m.Tiles[0].Material, m.Tiles[1].Material)
	}

	// Baked UV layer has one pair per loop.
	data, err = os.ReadFile(result.UVLayerPath)
	if err != nil {
		t.Fatal(err)
	}
	var layer pipeline.UVLayerFile
	if err := json.Unmarshal(data, &layer); err != nil {
		t.Fatal(err)
	}
	if layer.Name != "BAKE_ATLAS" || len(layer.UVs) != 8 {
		t.Errorf("uv layer %q with %d loops, want BAKE_ATLAS with 8", layer.Name, len(layer.UVs))
	}

	// Each material misses three of four channels.
	if result.Substitutions != 6 {
		t.Errorf("Substitutions = %d, want 6", result.Substitutions)
	}
}

func TestRunLayoutErrorBeforePixels(t *testing.T) {
	dir := t.TempDir()
	sc := testScene(t, dir)
	outDir := filepath.Join(dir, "out")

	_, err := pipeline.Run(pipeline.Config{
		OutputDir: outDir,
		BaseName:  "crate",
		UVName:    "BAKE_ATLAS",
		Format:    "png",
		// 1x1 fixed grid cannot hold two tiles.
		Plan:    atlas.PlanOptions{Mode: atlas.ModeFixed, Rows: 1, Cols: 1},
		Workers: 1,
	}, sc)
	if err == nil {
		t.Fatal("Run succeeded with an undersized fixed grid")
	}
	if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
		t.Error("output directory was created despite the layout failure")
	}
}

func TestTileRequests(t *testing.T) {
	dir := t.TempDir()
	sc := testScene(t, dir)

	src := texture.NewSceneSource(sc.Materials, sc.TextureDir)
	reqs := pipeline.TileRequests(sc.Materials, src)
	if len(reqs) != 2 {
		t.Fatalf("got %d requests, want 2", len(reqs))
	}
	if reqs[0].W != 8 || reqs[0].H != 8 {
		t.Errorf("request 0 = %dx%d, want 8x8", reqs[0].W, reqs[0].H)
	}
	if reqs[0].Slot != 0 || reqs[1].Slot != 1 {
		t.Errorf("slots = %d, %d", reqs[0].Slot, reqs[1].Slot)
	}
}

func TestRunWebPFormat(t *testing.T) {
	dir := t.TempDir()
	sc := testScene(t, dir)

	result, err := pipeline.Run(pipeline.Config{
		OutputDir: filepath.Join(dir, "out"),
		BaseName:  "crate",
		UVName:    "BAKE_ATLAS",
		Format:    "webp",
		Method:    compositor.Bilinear,
		Plan:      atlas.PlanOptions{Padding: 2},
		Workers:   1,
	}, sc)
	if err != nil {
		t.Fatal(err)
	}
	for _, ch := range atlas.Channels {
		p := result.ImagePaths[ch]
		if filepath.Ext(p) != ".webp" {
			t.Errorf("%s path = %q, want .webp", ch, p)
		}
		info, err := os.Stat(p)
		if err != nil || info.Size() == 0 {
			t.Errorf("%s output missing or empty: %v", ch, err)
		}
	}
}
