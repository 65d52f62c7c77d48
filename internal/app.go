package internal

import (
	"github.com/mass-publish/masspub/internal/domain/entities"
)

// App aggregates the wired controllers for the CLI entrypoint.
type App struct {
	controllers []entities.Controller
}

// NewApp creates the App from the aggregated controllers.
func NewApp(controllers *[]entities.Controller) *App {
	return &App{controllers: *controllers}
}

// GetControllers returns all controllers in CLI order.
func (it *App) GetControllers() []entities.Controller {
	return it.controllers
}
