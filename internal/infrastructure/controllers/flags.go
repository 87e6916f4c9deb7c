package controllers

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
)

const (
	flagConfig               = "config"
	flagRepositoryPath       = "repository-path"
	flagPackagesPath         = "packages-path"
	flagManifestFilename     = "manifest-filename"
	flagChangelogFilename    = "changelog-filename"
	flagVersionEntryTemplate = "version-entry-template"
	flagChangeItemTemplate   = "change-item-template"
	flagStatusSource         = "status-source"
	flagProjectManifest      = "project-manifest"
	flagDryRun               = "dry-run"
	flagVerbose              = "verbose"
	flagNoColor              = "no-color"

	flagProjectManifestOverride = "manifest"
)

// AddPersistentFlags registers the flags shared by every pkgbump command.
func AddPersistentFlags(cmd *cobra.Command) {
	defaults := entities.DefaultSettings()
	flags := cmd.PersistentFlags()

	flags.StringP(flagConfig, "c", "", "Path to config file (default: auto-detect)")
	flags.StringP(flagRepositoryPath, "r", defaults.RepositoryPath, "Path inside the Git repository")
	flags.StringP(flagPackagesPath, "p", defaults.PackagesPath,
		"Directory scanned for packages, relative to the repository path")
	flags.String(flagManifestFilename, defaults.ManifestFilename, "File name of a package manifest")
	flags.String(flagChangelogFilename, defaults.ChangelogFilename, "File name of a package changelog")
	flags.String(flagVersionEntryTemplate, defaults.VersionEntryTemplate,
		fmt.Sprintf("Changelog heading template, must contain %s", entities.VersionPlaceholder))
	flags.String(flagChangeItemTemplate, defaults.ChangeItemTemplate,
		fmt.Sprintf("Changelog bullet template, must contain %s", entities.MessagePlaceholder))
	flags.String(flagStatusSource, string(defaults.StatusSource),
		fmt.Sprintf("Which changes to consider (%s, %s)", entities.StatusSourceIndex, entities.StatusSourceWorktree))
	flags.String(flagProjectManifest, defaults.ProjectManifestPath,
		"Project manifest updated by sync-manifest, relative to the repository path")
	flags.Bool(flagDryRun, false, "Show what would be done without making changes")
	flags.BoolP(flagVerbose, "v", false, "Enable verbose output")
	flags.Bool(flagNoColor, false, "Disable coloured output")
}

// loadSettings builds the settings of one invocation: defaults, then the config
// file, then every flag given explicitly on the command line.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	flags := cmd.Flags()

	cfgPath, _ := flags.GetString(flagConfig)
	if cfgPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
		}
		cfgPath = found
	}

	settings := entities.DefaultSettings()
	if cfgPath != "" {
		logger.Infof("Using config file: %s", cfgPath)
		loaded, err := entities.NewSettings(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		settings = loaded
	}

	overrides := map[string]*string{
		flagRepositoryPath:       &settings.RepositoryPath,
		flagPackagesPath:         &settings.PackagesPath,
		flagManifestFilename:     &settings.ManifestFilename,
		flagChangelogFilename:    &settings.ChangelogFilename,
		flagVersionEntryTemplate: &settings.VersionEntryTemplate,
		flagChangeItemTemplate:   &settings.ChangeItemTemplate,
		flagProjectManifest:      &settings.ProjectManifestPath,
	}
	for name, field := range overrides {
		if flags.Changed(name) {
			*field, _ = flags.GetString(name)
		}
	}
	if flags.Changed(flagStatusSource) {
		source, _ := flags.GetString(flagStatusSource)
		settings.StatusSource = entities.StatusSource(source)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

// loadOptions applies the output flags and returns the runtime options.
func loadOptions(cmd *cobra.Command) entities.UpdateOptions {
	dryRun, _ := cmd.Flags().GetBool(flagDryRun)
	verbose, _ := cmd.Flags().GetBool(flagVerbose)
	noColor, _ := cmd.Flags().GetBool(flagNoColor)

	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	if noColor {
		color.NoColor = true
	}

	return entities.UpdateOptions{DryRun: dryRun, Verbose: verbose}
}

// commandContext returns the context of cmd, which is nil when cmd was not
// started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
