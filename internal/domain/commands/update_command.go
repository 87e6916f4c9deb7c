package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
	"github.com/rios0rios0/pkgbump/internal/domain/repositories"
	"github.com/rios0rios0/pkgbump/internal/scanner"
)

// Update defines the interface for the interactive version bump command.
type Update interface {
	Execute(ctx context.Context, settings *entities.Settings, opts UpdateOptions) (EngineResult, error)
}

// UpdateOptions holds the runtime options and terminal streams of an update run.
type UpdateOptions struct {
	entities.UpdateOptions
	In  io.Reader
	Out io.Writer
}

// UpdateCommand scans the packages directory, correlates the changed paths of
// the repository with the packages and hands the changed ones to the Engine.
type UpdateCommand struct {
	manifests  repositories.ManifestRepository
	changelogs repositories.ChangelogRepository
	openStatus repositories.StatusRepositoryOpener
}

// NewUpdateCommand creates a new UpdateCommand.
func NewUpdateCommand(
	manifests repositories.ManifestRepository,
	changelogs repositories.ChangelogRepository,
	openStatus repositories.StatusRepositoryOpener,
) *UpdateCommand {
	return &UpdateCommand{
		manifests:  manifests,
		changelogs: changelogs,
		openStatus: openStatus,
	}
}

var _ Update = (*UpdateCommand)(nil)

// Execute runs one interactive update session.
func (it *UpdateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts UpdateOptions,
) (EngineResult, error) {
	status, err := it.openStatus(settings.RepositoryPath, settings.StatusSource)
	if err != nil {
		return EngineResult{}, err
	}

	packagesRoot, err := resolvePackagesRoot(settings)
	if err != nil {
		return EngineResult{}, err
	}

	packages := slices.Collect(scanner.NewPackageScanner(it.manifests, settings.ManifestFilename).Scan(packagesRoot))
	logger.Debugf("Discovered %d package(s) below %s", len(packages), packagesRoot)

	scope, err := filepath.Rel(status.Workdir(), packagesRoot)
	if err != nil {
		return EngineResult{}, fmt.Errorf("failed to locate %s inside %s: %w", packagesRoot, status.Workdir(), err)
	}

	records, err := status.Statuses(ctx, scope)
	if err != nil {
		return EngineResult{}, err
	}

	tracked, err := entities.Correlate(packages, records, entities.CorrelateOptions{
		ManifestFilename: settings.ManifestFilename,
		Workdir:          status.Workdir(),
	})
	if err != nil {
		return EngineResult{}, err
	}

	if len(tracked) == 0 {
		logger.Info("No changed packages found")
		return EngineResult{}, nil
	}
	logger.Infof("Found %d changed package(s)", len(tracked))

	engine := NewEngine(it.manifests, it.changelogs, status, settings, opts.UpdateOptions, opts.In, opts.Out)
	result, err := engine.Run(ctx, tracked)
	if err != nil {
		return result, err
	}

	logger.Infof("Bumped %d package(s), skipped %d", len(result.Bumped), len(result.Skipped))
	return result, nil
}

// resolvePackagesRoot returns the absolute, symlink-free packages directory so
// that it can be compared with the repository workdir.
func resolvePackagesRoot(settings *entities.Settings) (string, error) {
	root := settings.PackagesPath
	if !filepath.IsAbs(root) {
		root = filepath.Join(settings.RepositoryPath, root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve packages path %q: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", fmt.Errorf("failed to resolve packages path %q: %w", absRoot, err)
	}
	return resolved, nil
}
