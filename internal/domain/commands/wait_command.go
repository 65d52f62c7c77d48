package commands

import (
	"context"
)

// Wait is the interface for the index wait command.
type Wait interface {
	Execute(ctx context.Context, pkgName, version string) error
}

// WaitCommand blocks until a single (package, version) pair becomes fully
// visible on the package index.
type WaitCommand struct {
	poller *IndexPoller
}

// NewWaitCommand creates a WaitCommand.
func NewWaitCommand(poller *IndexPoller) *WaitCommand {
	return &WaitCommand{poller: poller}
}

// Execute runs the poller's blocking wait.
func (it *WaitCommand) Execute(ctx context.Context, pkgName, version string) error {
	return it.poller.Wait(ctx, pkgName, version)
}
