package texture

import (
	"image"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"mesh-atlas-builder/internal/atlas"
	"mesh-atlas-builder/internal/logger"
	"mesh-atlas-builder/internal/scene"
)

// Source yields the texture for one material slot and channel. A nil image
// means the slot has none and the channel's default fill applies; absence is
// never an error.
type Source interface {
	Image(slot int, ch atlas.Channel) *image.NRGBA
}

// SceneSource resolves channel images for a scene's material slots:
// explicit per-slot paths first, name-pattern lookup in the texture
// directory second, default fill last. Decodes run through a shared cache,
// so it is safe for concurrent tile workers.
type SceneSource struct {
	materials []scene.Material
	dir       string
	index     *Index
	cache     *Cache

	mu     sync.Mutex
	missed map[missKey]bool
}

type missKey struct {
	slot int
	ch   atlas.Channel
}

// NewSceneSource indexes dir and wraps the given material slots.
func NewSceneSource(materials []scene.Material, dir string) *SceneSource {
	return &SceneSource{
		materials: materials,
		dir:       dir,
		index:     BuildIndex(dir),
		cache:     NewCache(),
		missed:    make(map[missKey]bool),
	}
}

// Image implements Source.
func (s *SceneSource) Image(slot int, ch atlas.Channel) *image.NRGBA {
	if slot < 0 || slot >= len(s.materials) {
		return nil
	}
	m := s.materials[slot]

	path := m.Textures.For(ch)
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}
	if path == "" {
		if p, ok := s.index.ResolveChannel(m.Name, ch); ok {
			path = p
		} else {
			s.recordMiss(slot, ch, func() {
				logger.Debug("channel missing, using default fill",
					zap.String("material", m.Name), zap.Stringer("channel", ch))
			})
			return nil
		}
	}

	img, err := s.cache.Load(path)
	if err != nil {
		// Degrade to the default fill rather than failing the whole build.
		s.recordMiss(slot, ch, func() {
			logger.Warn("texture unreadable, using default fill",
				zap.String("material", m.Name), zap.Stringer("channel", ch),
				zap.String("path", path), zap.Error(err))
		})
		return nil
	}
	return img
}

// Substitutions reports how many (slot, channel) pairs fell back to the
// default fill so far.
func (s *SceneSource) Substitutions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.missed)
}

func (s *SceneSource) recordMiss(slot int, ch atlas.Channel, log func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := missKey{slot: slot, ch: ch}
	if s.missed[key] {
		return
	}
	s.missed[key] = true
	log()
}
