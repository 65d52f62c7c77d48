package controllers

import (
	"github.com/spf13/cobra"

	"github.com/mass-publish/masspub/internal/domain/commands"
	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// CloneController handles "repo clone".
type CloneController struct {
	command  commands.Clone
	policies repositories.PolicyRepository
}

// NewCloneController creates a CloneController.
func NewCloneController(
	command commands.Clone,
	policies repositories.PolicyRepository,
) *CloneController {
	return &CloneController{command: command, policies: policies}
}

// GetBind returns the Cobra command metadata for the clone controller.
func (it *CloneController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:    "clone",
		Short:  "Check out managed repositories",
		Long:   `Clone every managed repository that is not yet present under the repo directory.`,
		Parent: "repo",
	}
}

// Execute runs the clone sweep.
func (it *CloneController) Execute(cmd *cobra.Command, _ []string) error {
	run, err := newRunContext(cmd, it.policies)
	if err != nil {
		return err
	}
	return it.command.Execute(cmd.Context(), run.policy, run.repoDir)
}
