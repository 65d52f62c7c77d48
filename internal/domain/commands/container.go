package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []any{
		NewIndexPoller,
		NewRewriteCommand,
		NewReleaseCommand,
		NewCloneCommand,
		NewEnsureCommand,
		NewExecCommand,
		NewResetCommand,
		NewSyncPolicyCommand,
		NewWaitCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	bindings := []any{
		func(impl *RewriteCommand) Rewrite { return impl },
		func(impl *ReleaseCommand) Release { return impl },
		func(impl *CloneCommand) Clone { return impl },
		func(impl *EnsureCommand) Ensure { return impl },
		func(impl *ExecCommand) Exec { return impl },
		func(impl *ResetCommand) Reset { return impl },
		func(impl *SyncPolicyCommand) SyncPolicy { return impl },
		func(impl *WaitCommand) Wait { return impl },
	}
	for _, binding := range bindings {
		if err := container.Provide(binding); err != nil {
			return err
		}
	}

	return nil
}
