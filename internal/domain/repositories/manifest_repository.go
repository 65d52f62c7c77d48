package repositories

import "github.com/mass-publish/masspub/internal/domain/entities"

// ManifestRepository is the manifest capability: structured reads plus
// writes that preserve all formatting and ordering the rewrite does not
// touch. Save applies targeted edits to the raw bytes on disk, so
// untouched fields round-trip byte-identically.
type ManifestRepository interface {
	Load(path string) (*entities.Manifest, error)
	Save(manifest *entities.Manifest, edits []entities.ManifestEdit) error
}
