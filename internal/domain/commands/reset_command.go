package commands

import (
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// Reset is the interface for the reset-origin command.
type Reset interface {
	Execute(policy *entities.VersionPolicy, repoDir, pkgName string) error
}

// ResetCommand hard-resets one managed repository, identified by its
// declared package name, to origin's release branch. Used to recover a
// checkout after a botched local commit.
type ResetCommand struct {
	gits      repositories.GitSource
	manifests repositories.ManifestRepository
}

// NewResetCommand creates a ResetCommand.
func NewResetCommand(
	gits repositories.GitSource,
	manifests repositories.ManifestRepository,
) *ResetCommand {
	return &ResetCommand{gits: gits, manifests: manifests}
}

// Execute finds the repository whose manifest declares pkgName and resets
// it hard to origin/<release branch>.
func (it *ResetCommand) Execute(policy *entities.VersionPolicy, repoDir, pkgName string) error {
	for _, repoURL := range policy.Repos {
		path := filepath.Join(repoDir, repoDirName(repoURL))

		manifest, err := it.manifests.Load(filepath.Join(path, entities.ManifestFileName))
		if err != nil {
			return err
		}
		if manifest.Name != pkgName {
			continue
		}

		repo, openErr := it.gits.Open(path)
		if openErr != nil {
			return openErr
		}
		logger.Infof("Resetting %s to origin/%s", pkgName, policy.ReleaseBranch)
		return repo.ResetHard(policy.ReleaseBranch)
	}

	return fmt.Errorf("no managed repository declares package %q", pkgName)
}
