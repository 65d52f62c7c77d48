package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mass-publish/masspub/internal/domain/commands"
	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// ResetController handles "repo reset-origin".
type ResetController struct {
	command  commands.Reset
	policies repositories.PolicyRepository
}

// NewResetController creates a ResetController.
func NewResetController(
	command commands.Reset,
	policies repositories.PolicyRepository,
) *ResetController {
	return &ResetController{command: command, policies: policies}
}

// GetBind returns the Cobra command metadata for the reset controller.
func (it *ResetController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:    "reset-origin <package>",
		Short:  "Hard-reset one repository to origin's release branch",
		Long:   `Discard local commits in the repository declaring the given package, resetting it to origin's release branch.`,
		Parent: "repo",
	}
}

// Execute runs the reset for one package.
func (it *ResetController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one package name, got %d arguments", len(args))
	}

	run, err := newRunContext(cmd, it.policies)
	if err != nil {
		return err
	}
	return it.command.Execute(run.policy, run.repoDir, args[0])
}
