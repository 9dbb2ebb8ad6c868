package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"mesh-atlas-builder/internal/atlas"
	"mesh-atlas-builder/internal/compositor"
	"mesh-atlas-builder/internal/config"
	"mesh-atlas-builder/internal/logger"
	"mesh-atlas-builder/internal/pipeline"
	"mesh-atlas-builder/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	scenePath := flag.String("scene", "", "Path to scene JSON document")
	outputDir := flag.String("output", "", "Output directory (default: atlas_out beside the scene)")
	baseName := flag.String("basename", "", "Output base name (default: mesh name)")
	padding := flag.Int("padding", -1, "Padding pixels around each tile (default: 32)")
	tileW := flag.Int("tilew", 0, "Force tile width (default: max source width)")
	tileH := flag.Int("tileh", 0, "Force tile height (default: max source height)")
	pow2 := flag.String("pow2", "", "Round atlas size up to powers of two, true/false (default: true)")
	resample := flag.String("resample", "", "Resample method: nearest, bilinear, bicubic, lanczos (default: lanczos)")
	layout := flag.String("layout", "", "Layout mode: auto, row, col, or RxC (default: auto)")
	material := flag.String("material", "", "Name for the output atlas material (default: AtlasMaterial)")
	uvName := flag.String("uv", "", "Name for the baked UV layer (default: BAKE_ATLAS)")
	format := flag.String("format", "", "Output image format: png or webp (default: png)")
	workers := flag.Int("workers", 0, "Number of tile workers (default: NumCPU)")
	logLevel := flag.String("loglevel", "", "Log level: debug, info, warn, error")
	logFile := flag.String("logfile", "", "Optional log file (rotated)")

	flag.Parse()

	// Load config file
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	scn := *scenePath
	if scn == "" {
		scn = flag.Arg(0)
	}

	// CLI flags override config file
	opts, err := cfg.Resolve(config.Flags{
		Scene:     scn,
		OutputDir: *outputDir,
		BaseName:  *baseName,
		Padding:   *padding,
		TileW:     *tileW,
		TileH:     *tileH,
		Pow2:      *pow2,
		Resample:  *resample,
		Layout:    *layout,
		Material:  *material,
		UVName:    *uvName,
		Format:    *format,
		Workers:   *workers,
		LogLevel:  *logLevel,
		LogFile:   *logFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(opts.LogLevel, opts.LogFile)
	defer logger.Sync()

	method, err := compositor.ParseMethod(opts.Resample)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mode, rows, cols, err := atlas.ParseMode(opts.Layout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sc, err := scene.Load(opts.Scene)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}
	if opts.BaseName == "" {
		opts.BaseName = strings.ReplaceAll(sc.Mesh.Name, " ", "_")
	}

	fmt.Printf("Mesh Atlas Builder\n")
	fmt.Printf("Mesh: %s, Materials: %d, Faces: %d\n", sc.Mesh.Name, len(sc.Materials), len(sc.Mesh.Faces))
	fmt.Printf("Output: %s\n", opts.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	result, err := pipeline.Run(pipeline.Config{
		OutputDir:    opts.OutputDir,
		BaseName:     opts.BaseName,
		UVName:       opts.UVName,
		MaterialName: opts.MaterialName,
		Format:       opts.Format,
		Method:       method,
		Plan: atlas.PlanOptions{
			Padding:   opts.PaddingPx,
			TileW:     opts.TileW,
			TileH:     opts.TileH,
			Mode:      mode,
			Rows:      rows,
			Cols:      cols,
			ForcePow2: opts.ForcePow2,
		},
		Workers: opts.Workers,
	}, sc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())
	fmt.Printf("Atlas: %dx%d (%d tiles, %dx%d grid)\n",
		result.Layout.Width, result.Layout.Height,
		len(result.Layout.Tiles), result.Layout.Rows, result.Layout.Cols)
	for _, ch := range atlas.Channels {
		fmt.Printf("  %-9s %s\n", ch.String()+":", result.ImagePaths[ch])
	}
	fmt.Printf("  Manifest: %s\n", result.ManifestPath)
	fmt.Printf("  UV layer: %s (%s)\n", result.UVLayerPath, opts.UVName)
	if result.Substitutions > 0 {
		fmt.Printf("Default fills used for %d missing channel textures\n", result.Substitutions)
	}
}
