package controllers

import (
	"github.com/spf13/cobra"

	"github.com/mass-publish/masspub/internal/domain/commands"
	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// PushController handles "autopush", the release orchestration.
type PushController struct {
	command  commands.Release
	policies repositories.PolicyRepository
}

// NewPushController creates a PushController.
func NewPushController(
	command commands.Release,
	policies repositories.PolicyRepository,
) *PushController {
	return &PushController{command: command, policies: policies}
}

// GetBind returns the Cobra command metadata for the push controller.
func (it *PushController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "autopush",
		Short: "Publish every repository with an outstanding release",
		Long: `Publish each managed repository whose target version has moved, in
list order. Each release is tagged, pushed, and confirmed on the package
index before the next repository is processed, because later packages may
depend on earlier ones being published first.

Without --doit this is a dry run that lists the packages that would be
released.`,
	}
}

// AddFlags adds the autopush-specific flags.
func (it *PushController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("doit", false, "Actually tag, push, and publish")
	cmd.Flags().String("until", "", "Stop before this repository directory")
}

// Execute runs the orchestration.
func (it *PushController) Execute(cmd *cobra.Command, _ []string) error {
	run, err := newRunContext(cmd, it.policies)
	if err != nil {
		return err
	}

	doit, _ := cmd.Flags().GetBool("doit")
	until, _ := cmd.Flags().GetString("until")

	return it.command.Execute(cmd.Context(), run.policy, commands.ReleaseOptions{
		RepoDir: run.repoDir,
		DoIt:    doit,
		Until:   until,
	})
}
