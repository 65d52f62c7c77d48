// Package policyyaml loads the version policy document and writes version
// updates back into it without disturbing comments or layout.
package policyyaml

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// PolicyRepository reads and rewrites the policy document.
type PolicyRepository struct{}

var _ repositories.PolicyRepository = (*PolicyRepository)(nil)

// NewPolicyRepository creates a PolicyRepository.
func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{}
}

type policyDoc struct {
	Params struct {
		ReleaseBranch  string   `yaml:"release_branch"`
		MaxVersion     string   `yaml:"max_version"`
		MetaPackage    string   `yaml:"meta_package"`
		BinaryVersion  string   `yaml:"binary_version"`
		BinaryURL      string   `yaml:"binary_url"`
		BinaryPackages []string `yaml:"binary_packages"`
		BinaryExempt   []string `yaml:"binary_exempt"`
		Repos          []string `yaml:"repos"`
	} `yaml:"params"`
	Versions    map[string]string `yaml:"versions"`
	MinVersions map[string]string `yaml:"min_versions"`
	Linked      []string          `yaml:"linked"`
}

// Load reads the policy document and constructs the validated immutable
// policy. Configuration errors abort here, before any mutation.
func (it *PolicyRepository) Load(path string) (*entities.VersionPolicy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy %s: %w", path, err)
	}

	var doc policyDoc
	if unmarshalErr := yaml.Unmarshal(raw, &doc); unmarshalErr != nil {
		return nil, fmt.Errorf("parse policy %s: %w", path, unmarshalErr)
	}

	policy, err := entities.NewVersionPolicy(entities.PolicyInput{
		Targets:       doc.Versions,
		MinVersions:   doc.MinVersions,
		MaxCeiling:    doc.Params.MaxVersion,
		Linked:        doc.Linked,
		ReleaseBranch: doc.Params.ReleaseBranch,
		Repos:         doc.Params.Repos,
		MetaPackage:   doc.Params.MetaPackage,
		BinaryVersion: doc.Params.BinaryVersion,
		BinaryURL:     doc.Params.BinaryURL,
		BinaryPkgs:    doc.Params.BinaryPackages,
		BinaryExempt:  doc.Params.BinaryExempt,
	})
	if err != nil {
		return nil, fmt.Errorf("policy %s: %w", path, err)
	}
	return policy, nil
}

// SetTargetVersions updates target versions in the policy document in
// place via the yaml node tree, so comments and layout survive.
func (it *PolicyRepository) SetTargetVersions(path string, versions map[string]string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read policy %s: %w", path, err)
	}

	var root yaml.Node
	if unmarshalErr := yaml.Unmarshal(raw, &root); unmarshalErr != nil {
		return fmt.Errorf("parse policy %s: %w", path, unmarshalErr)
	}
	if len(root.Content) == 0 {
		return fmt.Errorf("policy %s is empty", path)
	}

	versionsNode := mappingValue(root.Content[0], "versions")
	if versionsNode == nil {
		return fmt.Errorf("policy %s has no versions section", path)
	}

	for name, version := range versions {
		setMappingString(versionsNode, name, version)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if encodeErr := enc.Encode(&root); encodeErr != nil {
		return fmt.Errorf("encode policy %s: %w", path, encodeErr)
	}
	if closeErr := enc.Close(); closeErr != nil {
		return fmt.Errorf("encode policy %s: %w", path, closeErr)
	}

	if writeErr := os.WriteFile(path, buf.Bytes(), 0o644); writeErr != nil {
		return fmt.Errorf("write policy %s: %w", path, writeErr)
	}
	return nil
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// setMappingString sets key to value in a mapping node, appending the pair
// when the key is absent.
func setMappingString(mapping *yaml.Node, key, value string) {
	if existing := mappingValue(mapping, key); existing != nil {
		existing.SetString(value)
		return
	}
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
	valueNode := &yaml.Node{Kind: yaml.ScalarNode}
	valueNode.SetString(value)
	mapping.Content = append(mapping.Content, keyNode, valueNode)
}
