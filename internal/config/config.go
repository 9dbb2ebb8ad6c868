// Package config holds the settings surface for an atlas build: an optional
// JSON config file merged with CLI flag overrides and defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config mirrors the optional JSON config file. Pointer fields distinguish
// "absent" from a meaningful zero (padding 0 and pow2 false are both valid
// settings).
type Config struct {
	Scene        string `json:"scene"`
	OutputDir    string `json:"output_dir"`
	BaseName     string `json:"base_name"`
	PaddingPx    *int   `json:"padding_px"`
	TileW        int    `json:"tile_w"`
	TileH        int    `json:"tile_h"`
	ForcePow2    *bool  `json:"force_pow2"`
	Resample     string `json:"resample"`
	Layout       string `json:"layout"`
	MaterialName string `json:"material_name"`
	UVName       string `json:"uv_name"`
	Format       string `json:"format"`
	Workers      int    `json:"workers"`
	LogLevel     string `json:"log_level"`
	LogFile      string `json:"log_file"`
}

// Load reads a JSON config file. Fields not set in the file keep their zero
// values and are filled in by Resolve.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings. Sentinel
// values mark flags the user did not pass: -1 for padding, "" for strings.
type Flags struct {
	Scene     string
	OutputDir string
	BaseName  string
	Padding   int // -1 = unset
	TileW     int
	TileH     int
	Pow2      string // "", "true", "false"
	Resample  string
	Layout    string
	Material  string
	UVName    string
	Format    string
	Workers   int
	LogLevel  string
	LogFile   string
}

// Options is the fully-resolved settings surface handed to the rest of the
// program.
type Options struct {
	Scene        string
	OutputDir    string
	BaseName     string // empty → derived from the mesh name after scene load
	PaddingPx    int
	TileW        int
	TileH        int
	ForcePow2    bool
	Resample     string
	Layout       string
	MaterialName string
	UVName       string
	Format       string
	Workers      int
	LogLevel     string
	LogFile      string
}

// Resolve merges CLI flags over the config file and fills defaults.
func (c Config) Resolve(flags Flags) (Options, error) {
	o := Options{
		Scene:        pick(flags.Scene, c.Scene),
		OutputDir:    pick(flags.OutputDir, c.OutputDir),
		BaseName:     pick(flags.BaseName, c.BaseName),
		TileW:        pickInt(flags.TileW, c.TileW),
		TileH:        pickInt(flags.TileH, c.TileH),
		Resample:     pick(flags.Resample, c.Resample, "lanczos"),
		Layout:       pick(flags.Layout, c.Layout, "auto"),
		MaterialName: pick(flags.Material, c.MaterialName, "AtlasMaterial"),
		UVName:       pick(flags.UVName, c.UVName, "BAKE_ATLAS"),
		Format:       pick(flags.Format, c.Format, "png"),
		Workers:      pickInt(flags.Workers, c.Workers, runtime.NumCPU()),
		LogLevel:     pick(flags.LogLevel, c.LogLevel, "info"),
		LogFile:      pick(flags.LogFile, c.LogFile),
	}

	switch {
	case flags.Padding >= 0:
		o.PaddingPx = flags.Padding
	case c.PaddingPx != nil:
		o.PaddingPx = *c.PaddingPx
	default:
		o.PaddingPx = 32
	}

	switch {
	case flags.Pow2 != "":
		v, err := strconv.ParseBool(flags.Pow2)
		if err != nil {
			return Options{}, fmt.Errorf("config: invalid -pow2 value %q", flags.Pow2)
		}
		o.ForcePow2 = v
	case c.ForcePow2 != nil:
		o.ForcePow2 = *c.ForcePow2
	default:
		o.ForcePow2 = true
	}

	if o.Format != "png" && o.Format != "webp" {
		return Options{}, fmt.Errorf("config: unknown output format %q (want png or webp)", o.Format)
	}
	if o.Scene == "" {
		return Options{}, fmt.Errorf("config: no scene file given")
	}
	if o.OutputDir == "" {
		o.OutputDir = filepath.Join(filepath.Dir(o.Scene), "atlas_out")
	}

	return o, nil
}

func pick(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func pickInt(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
