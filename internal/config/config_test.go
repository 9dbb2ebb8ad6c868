package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"mesh-atlas-builder/internal/config"
)

func TestResolveDefaults(t *testing.T) {
	var cfg config.Config
	opts, err := cfg.Resolve(config.Flags{Scene: "/work/crate.json", Padding: -1})
	if err != nil {
		t.Fatal(err)
	}

	if opts.PaddingPx != 32 {
		t.Errorf("PaddingPx = %d, want 32", opts.PaddingPx)
	}
	if !opts.ForcePow2 {
		t.Error("ForcePow2 = false, want true by default")
	}
	if opts.Resample != "lanczos" || opts.Layout != "auto" || opts.Format != "png" {
		t.Errorf("defaults = %q/%q/%q", opts.Resample, opts.Layout, opts.Format)
	}
	if opts.MaterialName != "AtlasMaterial" || opts.UVName != "BAKE_ATLAS" {
		t.Errorf("names = %q/%q", opts.MaterialName, opts.UVName)
	}
	if opts.OutputDir != filepath.Join("/work", "atlas_out") {
		t.Errorf("OutputDir = %q", opts.OutputDir)
	}
	if opts.Workers < 1 {
		t.Errorf("Workers = %d", opts.Workers)
	}
}

func TestResolveFlagOverrides(t *testing.T) {
	var cfg config.Config
	opts, err := cfg.Resolve(config.Flags{
		Scene:    "s.json",
		Padding:  0, // explicit zero padding is a valid setting
		Pow2:     "false",
		Resample: "nearest",
		Layout:   "2x3",
		Format:   "webp",
		Workers:  3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if opts.PaddingPx != 0 {
		t.Errorf("PaddingPx = %d, want 0", opts.PaddingPx)
	}
	if opts.ForcePow2 {
		t.Error("ForcePow2 = true, want false")
	}
	if opts.Resample != "nearest" || opts.Layout != "2x3" || opts.Format != "webp" || opts.Workers != 3 {
		t.Errorf("overrides lost: %+v", opts)
	}
}

func TestLoadFileAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"scene": "mesh.json",
		"padding_px": 0,
		"force_pow2": false,
		"layout": "row",
		"base_name": "crate"
	}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.Resolve(config.Flags{Padding: -1})
	if err != nil {
		t.Fatal(err)
	}
	if opts.PaddingPx != 0 || opts.ForcePow2 || opts.Layout != "row" || opts.BaseName != "crate" {
		t.Errorf("file settings lost: %+v", opts)
	}

	// Flags still win over the file.
	opts, err = cfg.Resolve(config.Flags{Padding: 8, Layout: "col"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.PaddingPx != 8 || opts.Layout != "col" {
		t.Errorf("flag override lost: %+v", opts)
	}
}

func TestResolveErrors(t *testing.T) {
	var cfg config.Config
	if _, err := cfg.Resolve(config.Flags{Padding: -1}); err == nil {
		t.Error("Resolve without a scene succeeded")
	}
	if _, err := cfg.Resolve(config.Flags{Scene: "s.json", Padding: -1, Format: "gif"}); err == nil {
		t.Error("Resolve with format=gif succeeded")
	}
	if _, err := cfg.Resolve(config.Flags{Scene: "s.json", Padding: -1, Pow2: "maybe"}); err == nil {
		t.Error("Resolve with pow2=maybe succeeded")
	}
}
