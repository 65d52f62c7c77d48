package entities

import "github.com/spf13/cobra"

// ControllerBind is the Cobra command metadata a controller exposes.
// Parent names the command group ("repo", "manifest") the command hangs
// under; empty means top level.
type ControllerBind struct {
	Use    string
	Short  string
	Long   string
	Parent string
}

// Controller is implemented by every CLI controller. Execute returns an
// error so aborted runs surface a non-zero exit status through Cobra.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string) error
}
