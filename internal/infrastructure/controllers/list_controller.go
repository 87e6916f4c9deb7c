package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/pkgbump/internal/domain/commands"
	"github.com/rios0rios0/pkgbump/internal/domain/entities"
)

// ListController handles the "list" subcommand.
type ListController struct {
	command commands.List
}

// NewListController creates a new ListController.
func NewListController(command commands.List) *ListController {
	return &ListController{command: command}
}

var _ entities.Controller = (*ListController)(nil)

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list",
		Short: "List the packages found below the packages path",
		Long:  `Print the name, version and directory of every package, ordered by name.`,
	}
}

// Execute prints the packages to the command output.
func (it *ListController) Execute(cmd *cobra.Command, _ []string) error {
	loadOptions(cmd)
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if _, err = it.command.Execute(commandContext(cmd), settings, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("list failed: %w", err)
	}
	return nil
}

// AddFlags has nothing to add.
func (it *ListController) AddFlags(_ *cobra.Command) {}
