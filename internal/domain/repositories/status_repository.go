package repositories

import (
	"context"
	"io"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
)

// StatusRepository abstracts the version-control engine that reports changed
// paths and renders diffs for them.
type StatusRepository interface {
	// Workdir returns the absolute, symlink-resolved working directory.
	Workdir() string

	// Statuses returns the changed paths below scope (relative to Workdir),
	// ordered by path. An empty scope means the whole repository.
	Statuses(ctx context.Context, scope string) ([]entities.ChangeRecord, error)

	// Diff writes a line-oriented, coloured diff of the changes below scope.
	Diff(ctx context.Context, scope string, out io.Writer) error
}

// StatusRepositoryOpener opens the repository containing repositoryPath.
type StatusRepositoryOpener func(repositoryPath string, source entities.StatusSource) (StatusRepository, error)
