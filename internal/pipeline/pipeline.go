// Package pipeline runs one atlas build end to end: collect tile requests,
// plan the layout, composite the channel atlases, bake the remapped UV
// layer, and write every output artifact.
package pipeline

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"

	"mesh-atlas-builder/internal/atlas"
	"mesh-atlas-builder/internal/compositor"
	"mesh-atlas-builder/internal/logger"
	"mesh-atlas-builder/internal/scene"
	"mesh-atlas-builder/internal/texture"
)

// Config holds everything one atlas build needs beyond the scene itself.
type Config struct {
	OutputDir    string
	BaseName     string
	UVName       string
	MaterialName string
	Format       string // "png" or "webp"
	Method       compositor.Method
	Plan         atlas.PlanOptions
	Workers      int
}

// Result summarizes one run.
type Result struct {
	Layout        atlas.Layout
	ImagePaths    map[atlas.Channel]string
	ManifestPath  string
	UVLayerPath   string
	Substitutions int
}

// Run executes the build. Planning happens strictly before any compositing
// or remap work; a layout failure aborts before pixels are touched.
func Run(cfg Config, sc *scene.Scene) (*Result, error) {
	src := texture.NewSceneSource(sc.Materials, sc.TextureDir)

	reqs := TileRequests(sc.Materials, src)
	layout, err := atlas.Plan(reqs, cfg.Plan)
	if err != nil {
		return nil, err
	}
	logger.Info("layout planned",
		zap.Int("tiles", len(layout.Tiles)),
		zap.Int("rows", layout.Rows), zap.Int("cols", layout.Cols),
		zap.Int("width", layout.Width), zap.Int("height", layout.Height))

	outs := compositor.Render(layout, src, cfg.Method, cfg.Workers)

	uvLayer := BakeUVLayer(&sc.Mesh, sc.Materials, atlas.Transforms(layout))

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("pipeline: create output dir: %w", err)
	}

	paths := make(map[atlas.Channel]string, len(atlas.Channels))
	for _, ch := range atlas.Channels {
		p, err := writeImage(cfg.OutputDir, cfg.BaseName, ch, outs[ch], cfg.Format)
		if err != nil {
			return nil, err
		}
		paths[ch] = p
	}

	manifestPath := filepath.Join(cfg.OutputDir, cfg.BaseName+"_manifest.json")
	if err := WriteManifest(manifestPath, BuildManifest(layout)); err != nil {
		return nil, err
	}

	uvPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_%s.json", cfg.BaseName, cfg.UVName))
	if err := WriteUVLayer(uvPath, cfg.UVName, cfg.MaterialName, uvLayer); err != nil {
		return nil, err
	}

	return &Result{
		Layout:        layout,
		ImagePaths:    paths,
		ManifestPath:  manifestPath,
		UVLayerPath:   uvPath,
		Substitutions: src.Substitutions(),
	}, nil
}

// TileRequests probes every material slot's channel images and returns one
// request per slot, in slot order. Slots with no texture in any channel
// still get a request (their tiles composite as pure default fill), keeping
// slots, tiles and transforms 1:1.
func TileRequests(materials []scene.Material, src texture.Source) []atlas.TileRequest {
	reqs := make([]atlas.TileRequest, len(materials))
	for i, m := range materials {
		req := atlas.TileRequest{Slot: i, Name: m.Name}
		for _, ch := range atlas.Channels {
			img := src.Image(i, ch)
			if img == nil {
				continue
			}
			if w := img.Bounds().Dx(); w > req.W {
				req.W = w
			}
			if h := img.Bounds().Dy(); h > req.H {
				req.H = h
			}
		}
		reqs[i] = req
	}
	return reqs
}

func writeImage(dir, base string, ch atlas.Channel, img image.Image, format string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", base, ch, format))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("pipeline: create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "webp":
		err = nativewebp.Encode(f, texture.ToNRGBA(img), nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return "", fmt.Errorf("pipeline: encode %s: %w", path, err)
	}
	return path, nil
}
