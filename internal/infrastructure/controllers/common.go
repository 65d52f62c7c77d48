package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// runContext is what every controller derives from the global flags: the
// validated policy, the path it was loaded from, and the checkout
// directory.
type runContext struct {
	policy     *entities.VersionPolicy
	policyPath string
	repoDir    string
}

// newRunContext reads the global flags and loads the policy document once
// for this run.
func newRunContext(cmd *cobra.Command, policies repositories.PolicyRepository) (*runContext, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	policyPath, _ := cmd.Flags().GetString("config")
	repoDir, _ := cmd.Flags().GetString("repo-dir")

	policy, err := policies.Load(policyPath)
	if err != nil {
		return nil, err
	}

	return &runContext{
		policy:     policy,
		policyPath: policyPath,
		repoDir:    repoDir,
	}, nil
}
