package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/pkgbump/internal/domain/repositories"
	"github.com/rios0rios0/pkgbump/internal/infrastructure/repositories/changelogfile"
	"github.com/rios0rios0/pkgbump/internal/infrastructure/repositories/gitstatus"
	"github.com/rios0rios0/pkgbump/internal/infrastructure/repositories/jsonmanifest"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() domainRepos.ManifestRepository {
		return jsonmanifest.NewManifestRepository()
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.ChangelogRepository {
		return changelogfile.NewChangelogRepository()
	}); err != nil {
		return err
	}

	// The repository path is only known per invocation, so an opener is provided
	if err := container.Provide(func() domainRepos.StatusRepositoryOpener {
		return gitstatus.Open
	}); err != nil {
		return err
	}

	return nil
}
