package texture

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"mesh-atlas-builder/internal/atlas"
)

// channelKeywords are the stem substrings that identify a channel when a
// material carries no explicit texture reference.
var channelKeywords = map[atlas.Channel][]string{
	atlas.BaseColor: {"base", "albedo", "diff", "color"},
	atlas.Normal:    {"normal", "nrm", "nor"},
	atlas.Roughness: {"rough", "gloss"},
	atlas.Metalness: {"metal"},
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tga":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Index maps lowercase image stems to filesystem paths within one texture
// directory tree. Stems are kept sorted so lookups are deterministic.
type Index struct {
	entries map[string]string // stem.lower() → full path
	stems   []string          // sorted
}

// BuildIndex scans dir and its subdirectories for decodable image files.
// The first path seen for a stem wins.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !imageExts[ext] {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		if _, exists := idx.entries[stem]; !exists {
			idx.entries[stem] = path
			idx.stems = append(idx.stems, stem)
		}
		return nil
	})

	sort.Strings(idx.stems)
	return idx
}

// Len returns the number of indexed images.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// ResolveChannel finds an image for (material, channel) by name pattern.
// Stems carrying both the material name and a channel keyword win; for
// BaseColor only, an image carrying the material name but no other
// channel's keyword is accepted as a last resort (diffuse maps are often
// named after the material alone).
func (idx *Index) ResolveChannel(material string, ch atlas.Channel) (string, bool) {
	mat := strings.ToLower(strings.TrimSpace(material))
	if mat == "" {
		return "", false
	}

	for _, stem := range idx.stems {
		if strings.Contains(stem, mat) && containsAny(stem, channelKeywords[ch]) {
			return idx.entries[stem], true
		}
	}

	if ch == atlas.BaseColor {
		for _, stem := range idx.stems {
			if strings.Contains(stem, mat) && !otherChannelMatch(stem, ch) {
				return idx.entries[stem], true
			}
		}
	}
	return "", false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func otherChannelMatch(stem string, except atlas.Channel) bool {
	for _, ch := range atlas.Channels {
		if ch == except {
			continue
		}
		if containsAny(stem, channelKeywords[ch]) {
			return true
		}
	}
	return false
}
