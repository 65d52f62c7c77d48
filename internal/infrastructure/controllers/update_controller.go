package controllers

import (
	"github.com/spf13/cobra"

	"github.com/mass-publish/masspub/internal/domain/commands"
	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// UpdateController handles "manifest update", the constraint rewrite.
type UpdateController struct {
	command  commands.Rewrite
	policies repositories.PolicyRepository
}

// NewUpdateController creates an UpdateController.
func NewUpdateController(
	command commands.Rewrite,
	policies repositories.PolicyRepository,
) *UpdateController {
	return &UpdateController{command: command, policies: policies}
}

// GetBind returns the Cobra command metadata for the update controller.
func (it *UpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "update",
		Short: "Rewrite manifest dependency constraints from the policy",
		Long: `Reconcile every managed manifest's dependency ranges against the
version policy. Without --commit this is a dry run that only prints the
changes each manifest would need.`,
		Parent: "manifest",
	}
}

// AddFlags adds the update-specific flags.
func (it *UpdateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("commit", false, "Write the rewritten manifests and commit them")
	cmd.Flags().String("until", "", "Stop before this repository directory")
}

// Execute runs the rewrite across all managed repositories.
func (it *UpdateController) Execute(cmd *cobra.Command, _ []string) error {
	run, err := newRunContext(cmd, it.policies)
	if err != nil {
		return err
	}

	commit, _ := cmd.Flags().GetBool("commit")
	until, _ := cmd.Flags().GetString("until")

	return it.command.Execute(run.policy, commands.RewriteOptions{
		RepoDir: run.repoDir,
		Commit:  commit,
		Until:   until,
	})
}
