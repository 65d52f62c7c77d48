package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/mass-publish/masspub/internal/domain/repositories"
	"github.com/mass-publish/masspub/internal/infrastructure/repositories/gitrepo"
	"github.com/mass-publish/masspub/internal/infrastructure/repositories/manifesttoml"
	"github.com/mass-publish/masspub/internal/infrastructure/repositories/policyyaml"
	"github.com/mass-publish/masspub/internal/infrastructure/repositories/pypi"
)

// RegisterProviders registers all capability implementations with the DIG
// container, bound to their domain interfaces.
func RegisterProviders(container *dig.Container) error {
	providers := []any{
		func() domainRepos.GitSource { return gitrepo.NewSource() },
		func() domainRepos.IndexRepository { return pypi.NewIndexRepository() },
		func() domainRepos.ManifestRepository { return manifesttoml.NewManifestRepository() },
		func() domainRepos.PolicyRepository { return policyyaml.NewPolicyRepository() },
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}
	return nil
}
