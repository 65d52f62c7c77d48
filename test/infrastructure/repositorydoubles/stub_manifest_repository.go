//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// SpyManifestRepository implements repositories.ManifestRepository over an
// in-memory map of manifests keyed by path, recording every Save.
type SpyManifestRepository struct {
	Manifests map[string]*entities.Manifest

	Saves []SaveCall
}

// SaveCall records one Save invocation.
type SaveCall struct {
	Path  string
	Edits []entities.ManifestEdit
}

var _ repositories.ManifestRepository = (*SpyManifestRepository)(nil)

func (s *SpyManifestRepository) Load(path string) (*entities.Manifest, error) {
	if manifest, ok := s.Manifests[path]; ok {
		return manifest, nil
	}
	return nil, fmt.Errorf("no manifest at %s", path)
}

func (s *SpyManifestRepository) Save(manifest *entities.Manifest, edits []entities.ManifestEdit) error {
	s.Saves = append(s.Saves, SaveCall{Path: manifest.Path, Edits: edits})
	return nil
}
