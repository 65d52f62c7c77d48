// Package manifesttoml implements the manifest capability over TOML
// package manifests. Reads are structural; writes are targeted text
// replacements against the raw bytes, so every byte the rewrite does not
// touch survives a round trip unchanged.
package manifesttoml

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// ManifestRepository loads and saves package manifests.
type ManifestRepository struct{}

var _ repositories.ManifestRepository = (*ManifestRepository)(nil)

// NewManifestRepository creates a ManifestRepository.
func NewManifestRepository() *ManifestRepository {
	return &ManifestRepository{}
}

type manifestDoc struct {
	BuildSystem struct {
		Requires []string `toml:"requires"`
	} `toml:"build-system"`
	Project struct {
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		NativeLib map[string]nativeLibDoc `toml:"nativelib"`
	} `toml:"tool"`
}

type nativeLibDoc struct {
	Version string `toml:"version"`
	RepoURL string `toml:"repo_url"`
	Exempt  bool   `toml:"exempt"`
}

// Load reads and structurally decodes one manifest. Unrecognized fields
// are ignored here and preserved on disk.
func (it *ManifestRepository) Load(path string) (*entities.Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var doc manifestDoc
	if _, decodeErr := toml.Decode(string(raw), &doc); decodeErr != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, decodeErr)
	}
	if doc.Project.Name == "" {
		return nil, fmt.Errorf("manifest %s declares no package name", path)
	}

	manifest := &entities.Manifest{
		Path:          path,
		Name:          doc.Project.Name,
		BuildRequires: doc.BuildSystem.Requires,
		Dependencies:  doc.Project.Dependencies,
	}

	keys := make([]string, 0, len(doc.Tool.NativeLib))
	for key := range doc.Tool.NativeLib {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		lib := doc.Tool.NativeLib[key]
		manifest.NativeLibs = append(manifest.NativeLibs, entities.NativeLib{
			Key:     key,
			Version: lib.Version,
			RepoURL: lib.RepoURL,
			Exempt:  lib.Exempt,
		})
	}

	return manifest, nil
}

// Save applies the given edits to the manifest file in place.
func (it *ManifestRepository) Save(
	manifest *entities.Manifest,
	edits []entities.ManifestEdit,
) error {
	raw, err := os.ReadFile(manifest.Path)
	if err != nil {
		return fmt.Errorf("read manifest %s: %w", manifest.Path, err)
	}

	text := string(raw)
	for _, edit := range edits {
		switch edit.Kind {
		case entities.EditRequirement:
			text, err = replaceRequirement(text, edit)
		case entities.EditLibField:
			text, err = replaceLibField(text, edit)
		default:
			err = fmt.Errorf("unknown edit kind %d", edit.Kind)
		}
		if err != nil {
			return fmt.Errorf("edit manifest %s: %w", manifest.Path, err)
		}
	}

	if writeErr := os.WriteFile(manifest.Path, []byte(text), 0o644); writeErr != nil {
		return fmt.Errorf("write manifest %s: %w", manifest.Path, writeErr)
	}
	return nil
}

// replaceRequirement swaps one quoted requirement string for its rewritten
// form, keeping the original quote style.
func replaceRequirement(text string, edit entities.ManifestEdit) (string, error) {
	for _, quote := range []string{`"`, `'`} {
		old := quote + edit.Old + quote
		if strings.Contains(text, old) {
			return strings.Replace(text, old, quote+edit.New+quote, 1), nil
		}
	}
	return "", fmt.Errorf("requirement %q not found", edit.Old)
}

// replaceLibField rewrites one field assignment inside the named
// native-lib descriptor table, leaving the rest of the table untouched.
func replaceLibField(text string, edit entities.ManifestEdit) (string, error) {
	header := fmt.Sprintf("[tool.nativelib.%s]", edit.LibKey)

	lines := strings.Split(text, "\n")
	inTable := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") {
			inTable = trimmed == header
			continue
		}
		if !inTable {
			continue
		}

		key, _, found := strings.Cut(trimmed, "=")
		if !found || strings.TrimSpace(key) != edit.Field {
			continue
		}

		for _, quote := range []string{`"`, `'`} {
			old := quote + edit.Old + quote
			if strings.Contains(line, old) {
				lines[i] = strings.Replace(line, old, quote+edit.New+quote, 1)
				return strings.Join(lines, "\n"), nil
			}
		}
		return "", fmt.Errorf(
			"%s.%s does not carry expected value %q", edit.LibKey, edit.Field, edit.Old,
		)
	}

	return "", fmt.Errorf("descriptor %s has no %s field", edit.LibKey, edit.Field)
}
