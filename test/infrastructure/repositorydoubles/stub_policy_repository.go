//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// SpyPolicyRepository implements repositories.PolicyRepository over a fixed
// policy, recording target-version writes.
type SpyPolicyRepository struct {
	Policy *entities.VersionPolicy

	Writes []map[string]string
}

var _ repositories.PolicyRepository = (*SpyPolicyRepository)(nil)

func (s *SpyPolicyRepository) Load(_ string) (*entities.VersionPolicy, error) {
	return s.Policy, nil
}

func (s *SpyPolicyRepository) SetTargetVersions(_ string, versions map[string]string) error {
	s.Writes = append(s.Writes, versions)
	return nil
}
