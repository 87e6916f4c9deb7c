package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/pkgbump/internal"
	"github.com/rios0rios0/pkgbump/internal/infrastructure/controllers"
)

// injectAppContext builds the container once and returns the app together
// with the controller bound to the root command.
func injectAppContext() (*internal.AppInternal, *controllers.UpdateController) {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var appInternal *internal.AppInternal
	var updateController *controllers.UpdateController
	if err := container.Invoke(func(ai *internal.AppInternal, uc *controllers.UpdateController) {
		appInternal = ai
		updateController = uc
	}); err != nil {
		panic(err)
	}

	return appInternal, updateController
}
