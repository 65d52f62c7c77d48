package commands

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// Ensure is the interface for the repo ensure command.
type Ensure interface {
	Execute(ctx context.Context, policy *entities.VersionPolicy, repoDir string) error
}

// EnsureCommand puts every managed repository on the release branch and
// fast-forwards it.
type EnsureCommand struct {
	gits repositories.GitSource
}

// NewEnsureCommand creates an EnsureCommand.
func NewEnsureCommand(gits repositories.GitSource) *EnsureCommand {
	return &EnsureCommand{gits: gits}
}

// Execute checks out the release branch and pulls, per repository in list
// order.
func (it *EnsureCommand) Execute(
	ctx context.Context,
	policy *entities.VersionPolicy,
	repoDir string,
) error {
	for _, repoURL := range policy.Repos {
		dirName := repoDirName(repoURL)
		logger.Infof("%s:", dirName)

		repo, err := it.gits.Open(filepath.Join(repoDir, dirName))
		if err != nil {
			return err
		}
		if err := repo.Checkout(policy.ReleaseBranch); err != nil {
			return fmt.Errorf("%s: checkout %s: %w", dirName, policy.ReleaseBranch, err)
		}
		if err := repo.Pull(ctx); err != nil {
			return fmt.Errorf("%s: pull: %w", dirName, err)
		}
	}

	return nil
}
