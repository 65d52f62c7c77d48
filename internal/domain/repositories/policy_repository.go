package repositories

import "github.com/mass-publish/masspub/internal/domain/entities"

// PolicyRepository is the policy-source capability. Load reads the policy
// document once per run; SetTargetVersions rewrites target versions in the
// document in place, preserving comments and formatting.
type PolicyRepository interface {
	Load(path string) (*entities.VersionPolicy, error)
	SetTargetVersions(path string, versions map[string]string) error
}
