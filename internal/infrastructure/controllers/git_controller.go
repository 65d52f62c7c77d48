package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mass-publish/masspub/internal/domain/commands"
	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// GitController handles "git", the cross-repo passthrough.
type GitController struct {
	command  commands.Exec
	policies repositories.PolicyRepository
}

// NewGitController creates a GitController.
func NewGitController(
	command commands.Exec,
	policies repositories.PolicyRepository,
) *GitController {
	return &GitController{command: command, policies: policies}
}

// GetBind returns the Cobra command metadata for the git controller.
func (it *GitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "git <args>...",
		Short: "Run a git command across all managed repositories",
		Long: `Run an arbitrary git command in every managed repository, in list
order, streaming output. Example: masspub git -- status --short`,
	}
}

// Execute runs the git sweep.
func (it *GitController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no git arguments given")
	}

	run, err := newRunContext(cmd, it.policies)
	if err != nil {
		return err
	}
	return it.command.Execute(cmd.Context(), run.policy, run.repoDir, args)
}
