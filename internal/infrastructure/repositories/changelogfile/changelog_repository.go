package changelogfile

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
	"github.com/rios0rios0/pkgbump/internal/domain/repositories"
	"github.com/rios0rios0/pkgbump/internal/infrastructure/repositories/fileio"
)

// ChangelogRepository appends entries to plain-text changelog files.
type ChangelogRepository struct{}

var _ repositories.ChangelogRepository = (*ChangelogRepository)(nil)

// NewChangelogRepository creates a new ChangelogRepository.
func NewChangelogRepository() *ChangelogRepository {
	return &ChangelogRepository{}
}

// Append renders the entry after the existing content and rewrites the file.
func (r *ChangelogRepository) Append(
	changelogPath string,
	version entities.Version,
	messages []string,
	templates entities.ChangelogTemplates,
) error {
	existing, err := fileio.ReadFile(changelogPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read changelog: %w", err)
	}

	content, err := entities.AppendChangelogEntry(string(existing.Data), version, messages, templates)
	if err != nil {
		return err
	}

	return fileio.WriteFile(changelogPath, existing.WithData([]byte(content)))
}
