package controllers

import (
	"github.com/spf13/cobra"

	"github.com/mass-publish/masspub/internal/domain/commands"
	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// SyncController handles "manifest sync-versions".
type SyncController struct {
	command  commands.SyncPolicy
	policies repositories.PolicyRepository
}

// NewSyncController creates a SyncController.
func NewSyncController(
	command commands.SyncPolicy,
	policies repositories.PolicyRepository,
) *SyncController {
	return &SyncController{command: command, policies: policies}
}

// GetBind returns the Cobra command metadata for the sync controller.
func (it *SyncController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "sync-versions",
		Short: "Reconcile policy target versions with repository tags",
		Long: `Report every managed package whose last tag differs from the policy's
target version. With --doit the policy document is rewritten in place,
preserving comments and layout.`,
		Parent: "manifest",
	}
}

// AddFlags adds the sync-specific flags.
func (it *SyncController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("doit", false, "Write observed versions back into the policy document")
}

// Execute runs the version sync.
func (it *SyncController) Execute(cmd *cobra.Command, _ []string) error {
	run, err := newRunContext(cmd, it.policies)
	if err != nil {
		return err
	}

	doit, _ := cmd.Flags().GetBool("doit")

	return it.command.Execute(run.policy, commands.SyncPolicyOptions{
		RepoDir:    run.repoDir,
		PolicyPath: run.policyPath,
		DoIt:       doit,
	})
}
