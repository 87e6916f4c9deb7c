package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/pkgbump/internal/domain/commands"
	"github.com/rios0rios0/pkgbump/internal/domain/entities"
)

// SyncManifestController handles the "sync-manifest" subcommand.
type SyncManifestController struct {
	command commands.SyncManifest
}

// NewSyncManifestController creates a new SyncManifestController.
func NewSyncManifestController(command commands.SyncManifest) *SyncManifestController {
	return &SyncManifestController{command: command}
}

var _ entities.Controller = (*SyncManifestController)(nil)

// GetBind returns the Cobra command metadata for the sync-manifest controller.
func (it *SyncManifestController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "sync-manifest",
		Short: "Pin the project manifest dependencies to the local package versions",
		Long: `Read the project manifest and set every entry of its "dependencies"
object that names a local package to that package's version.
Other entries and fields are left untouched.`,
	}
}

// Execute rewrites the project manifest.
func (it *SyncManifestController) Execute(cmd *cobra.Command, _ []string) error {
	opts := loadOptions(cmd)
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if manifest, _ := cmd.Flags().GetString(flagProjectManifestOverride); manifest != "" {
		settings.ProjectManifestPath = manifest
	}

	if _, err = it.command.Execute(commandContext(cmd), settings, opts); err != nil {
		return fmt.Errorf("sync-manifest failed: %w", err)
	}
	return nil
}

// AddFlags adds the sync-manifest specific flags to the given Cobra command.
func (it *SyncManifestController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagProjectManifestOverride, "m", "",
		"Project manifest to update (shorthand for --project-manifest)")
}
