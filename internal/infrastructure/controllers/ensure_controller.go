package controllers

import (
	"github.com/spf13/cobra"

	"github.com/mass-publish/masspub/internal/domain/commands"
	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// EnsureController handles "repo ensure".
type EnsureController struct {
	command  commands.Ensure
	policies repositories.PolicyRepository
}

// NewEnsureController creates an EnsureController.
func NewEnsureController(
	command commands.Ensure,
	policies repositories.PolicyRepository,
) *EnsureController {
	return &EnsureController{command: command, policies: policies}
}

// GetBind returns the Cobra command metadata for the ensure controller.
func (it *EnsureController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:    "ensure",
		Short:  "Put every managed repository on the release branch, up to date",
		Long:   `Check out the release branch and pull in each managed repository.`,
		Parent: "repo",
	}
}

// Execute runs the ensure sweep.
func (it *EnsureController) Execute(cmd *cobra.Command, _ []string) error {
	run, err := newRunContext(cmd, it.policies)
	if err != nil {
		return err
	}
	return it.command.Execute(cmd.Context(), run.policy, run.repoDir)
}
