// atlasplan plans a tile layout for a scene and prints the manifest JSON to
// stdout without touching any pixels. Useful for checking atlas dimensions
// and tile placement before a full build.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"mesh-atlas-builder/internal/atlas"
	"mesh-atlas-builder/internal/pipeline"
	"mesh-atlas-builder/internal/scene"
	"mesh-atlas-builder/internal/texture"
)

func main() {
	scenePath := flag.String("scene", "", "Path to scene JSON document")
	padding := flag.Int("padding", 32, "Padding pixels around each tile")
	tileW := flag.Int("tilew", 0, "Force tile width (default: max source width)")
	tileH := flag.Int("tileh", 0, "Force tile height (default: max source height)")
	pow2 := flag.Bool("pow2", true, "Round atlas size up to powers of two")
	layout := flag.String("layout", "auto", "Layout mode: auto, row, col, or RxC")

	flag.Parse()

	scn := *scenePath
	if scn == "" {
		scn = flag.Arg(0)
	}
	if scn == "" {
		fmt.Fprintln(os.Stderr, "Usage: atlasplan [-padding N] [-layout MODE] scene.json")
		os.Exit(1)
	}

	mode, rows, cols, err := atlas.ParseMode(*layout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sc, err := scene.Load(scn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	src := texture.NewSceneSource(sc.Materials, sc.TextureDir)
	planned, err := atlas.Plan(pipeline.TileRequests(sc.Materials, src), atlas.PlanOptions{
		Padding:   *padding,
		TileW:     *tileW,
		TileH:     *tileH,
		Mode:      mode,
		Rows:      rows,
		Cols:      cols,
		ForcePow2: *pow2,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(pipeline.BuildManifest(planned), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
