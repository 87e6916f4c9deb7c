package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/pkgbump/internal/domain/commands"
	"github.com/rios0rios0/pkgbump/internal/domain/entities"
)

// UpdateController handles the interactive version bump, both as the root
// command and as the "update" subcommand.
type UpdateController struct {
	command commands.Update
}

// NewUpdateController creates a new UpdateController.
func NewUpdateController(command commands.Update) *UpdateController {
	return &UpdateController{command: command}
}

var _ entities.Controller = (*UpdateController)(nil)

// GetBind returns the Cobra command metadata for the update controller.
func (it *UpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "update",
		Short: "Interactively bump the versions of changed packages",
		Long: `Scan the packages directory, find the packages touched by the
changes of the Git repository and ask, one package at a time, how
its version should be bumped.

For every bump a changelog entry is appended to the package
changelog before the manifest version is rewritten.`,
	}
}

// Execute runs one interactive session on the terminal streams of cmd.
func (it *UpdateController) Execute(cmd *cobra.Command, _ []string) error {
	opts := loadOptions(cmd)
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if _, err = it.command.Execute(commandContext(cmd), settings, commands.UpdateOptions{
		UpdateOptions: opts,
		In:            cmd.InOrStdin(),
		Out:           cmd.OutOrStdout(),
	}); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	return nil
}

// AddFlags has nothing to add, the update command only uses the persistent flags.
func (it *UpdateController) AddFlags(_ *cobra.Command) {}
