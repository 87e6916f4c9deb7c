package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewUpdateController); err != nil {
		return err
	}
	if err := container.Provide(NewListController); err != nil {
		return err
	}
	if err := container.Provide(NewSyncManifestController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	updateController *UpdateController,
	listController *ListController,
	syncManifestController *SyncManifestController,
) *[]entities.Controller {
	return &[]entities.Controller{
		updateController,
		listController,
		syncManifestController,
	}
}
