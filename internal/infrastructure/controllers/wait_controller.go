package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mass-publish/masspub/internal/domain/commands"
	"github.com/mass-publish/masspub/internal/domain/entities"
)

// WaitController handles "wait".
type WaitController struct {
	command commands.Wait
}

// NewWaitController creates a WaitController.
func NewWaitController(command commands.Wait) *WaitController {
	return &WaitController{command: command}
}

// GetBind returns the Cobra command metadata for the wait controller.
func (it *WaitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "wait <package> <version>",
		Short: "Block until a release is fully visible on the package index",
		Long: `Poll the package index until the given (package, version) pair is
listed with a complete artifact set. The wait has no timeout; interrupt
the process to give up.`,
	}
}

// Execute runs the blocking wait. The policy document is not needed here;
// the pair to wait for is given explicitly.
func (it *WaitController) Execute(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected <package> <version>, got %d arguments", len(args))
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	return it.command.Execute(cmd.Context(), args[0], args[1])
}
