package commands

import (
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// SyncPolicy is the interface for the policy version-sync command.
type SyncPolicy interface {
	Execute(policy *entities.VersionPolicy, opts SyncPolicyOptions) error
}

// SyncPolicyOptions holds runtime options for a version-sync run.
type SyncPolicyOptions struct {
	RepoDir    string
	PolicyPath string
	DoIt       bool // rewrite the policy document; false only reports
}

// SyncPolicyCommand reconciles the policy document with reality: for every
// managed repository whose last tag differs from the policy's target
// version, it reports the drift and, when authorized, rewrites the target
// in the policy document in place (comments and formatting preserved).
type SyncPolicyCommand struct {
	gits      repositories.GitSource
	manifests repositories.ManifestRepository
	policies  repositories.PolicyRepository
}

// NewSyncPolicyCommand creates a SyncPolicyCommand.
func NewSyncPolicyCommand(
	gits repositories.GitSource,
	manifests repositories.ManifestRepository,
	policies repositories.PolicyRepository,
) *SyncPolicyCommand {
	return &SyncPolicyCommand{gits: gits, manifests: manifests, policies: policies}
}

// Execute reports version drift per repository and optionally persists the
// observed versions back into the policy document.
func (it *SyncPolicyCommand) Execute(
	policy *entities.VersionPolicy,
	opts SyncPolicyOptions,
) error {
	drifted := make(map[string]string)

	for _, repoURL := range policy.Repos {
		path := filepath.Join(opts.RepoDir, repoDirName(repoURL))

		repo, err := it.gits.Open(path)
		if err != nil {
			return err
		}
		manifest, err := it.manifests.Load(filepath.Join(path, entities.ManifestFileName))
		if err != nil {
			return err
		}

		actual, err := repo.LastTag()
		if err != nil {
			return err
		}

		desired := ""
		if target := policy.TargetFor(manifest.Name); target != nil {
			desired = target.String()
		}
		if actual == desired {
			continue
		}

		logger.Infof("%-20s: %s -> %s", manifest.Name, desired, actual)
		drifted[manifest.Name] = actual
	}

	if len(drifted) == 0 {
		logger.Info("Policy versions match the repositories")
		return nil
	}

	if !opts.DoIt {
		return nil
	}
	return it.policies.SetTargetVersions(opts.PolicyPath, drifted)
}
