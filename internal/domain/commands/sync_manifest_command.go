package commands

import (
	"context"
	"path/filepath"
	"slices"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
	"github.com/rios0rios0/pkgbump/internal/domain/repositories"
	"github.com/rios0rios0/pkgbump/internal/scanner"
)

// SyncManifest defines the interface for the project manifest sync command.
type SyncManifest interface {
	Execute(ctx context.Context, settings *entities.Settings, opts entities.UpdateOptions) (int, error)
}

// SyncManifestCommand points the dependencies of the project manifest at the
// versions currently declared by the local packages.
type SyncManifestCommand struct {
	manifests repositories.ManifestRepository
}

// NewSyncManifestCommand creates a new SyncManifestCommand.
func NewSyncManifestCommand(manifests repositories.ManifestRepository) *SyncManifestCommand {
	return &SyncManifestCommand{manifests: manifests}
}

var _ SyncManifest = (*SyncManifestCommand)(nil)

// Execute returns the number of dependency entries that were (or, in dry-run
// mode, would be) changed.
func (it *SyncManifestCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts entities.UpdateOptions,
) (int, error) {
	packagesRoot, err := resolvePackagesRoot(settings)
	if err != nil {
		return 0, err
	}

	packages := slices.Collect(scanner.NewPackageScanner(it.manifests, settings.ManifestFilename).Scan(packagesRoot))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}

	versions, err := entities.PackageVersions(packages)
	if err != nil {
		return 0, err
	}

	manifestPath := settings.ProjectManifestPath
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(settings.RepositoryPath, manifestPath)
	}

	if opts.DryRun {
		pending, pendingErr := it.manifests.PendingDependencies(manifestPath, versions)
		if pendingErr != nil {
			return 0, pendingErr
		}
		for _, name := range pending {
			logger.Infof("[dry-run] Would pin %s to %s in %s", name, versions[name], manifestPath)
		}
		return len(pending), nil
	}

	changed, err := it.manifests.SyncDependencies(manifestPath, versions)
	if err != nil {
		return 0, err
	}

	logger.Infof("Updated %d dependency version(s) in %s", changed, manifestPath)
	return changed, nil
}
