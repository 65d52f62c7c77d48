package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// Clone is the interface for the repo clone command.
type Clone interface {
	Execute(ctx context.Context, policy *entities.VersionPolicy, repoDir string) error
}

// CloneCommand checks out every managed repository that is not yet present
// under the repo directory.
type CloneCommand struct {
	gits repositories.GitSource
}

// NewCloneCommand creates a CloneCommand.
func NewCloneCommand(gits repositories.GitSource) *CloneCommand {
	return &CloneCommand{gits: gits}
}

// Execute clones missing repositories in list order.
func (it *CloneCommand) Execute(
	ctx context.Context,
	policy *entities.VersionPolicy,
	repoDir string,
) error {
	if err := os.MkdirAll(repoDir, 0o755); err != nil {
		return fmt.Errorf("create repo dir %s: %w", repoDir, err)
	}

	for _, repoURL := range policy.Repos {
		path := filepath.Join(repoDir, repoDirName(repoURL))
		if _, err := os.Stat(path); err == nil {
			continue
		}

		logger.Infof("Cloning %s", repoURL)
		if err := it.gits.Clone(ctx, repoURL, path); err != nil {
			return fmt.Errorf("clone %s: %w", repoURL, err)
		}
	}

	return nil
}
