package controllers

import (
	"go.uber.org/dig"

	"github.com/mass-publish/masspub/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	constructors := []any{
		NewCloneController,
		NewEnsureController,
		NewResetController,
		NewGitController,
		NewUpdateController,
		NewSyncController,
		NewPushController,
		NewWaitController,
		NewControllers,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}
	return nil
}

// NewControllers aggregates all controllers, in the order they appear in
// the CLI help.
func NewControllers(
	cloneController *CloneController,
	ensureController *EnsureController,
	resetController *ResetController,
	gitController *GitController,
	updateController *UpdateController,
	syncController *SyncController,
	pushController *PushController,
	waitController *WaitController,
) *[]entities.Controller {
	return &[]entities.Controller{
		cloneController,
		ensureController,
		resetController,
		gitController,
		updateController,
		syncController,
		pushController,
		waitController,
	}
}
