package repositories

import "github.com/rios0rios0/pkgbump/internal/domain/entities"

// ChangelogRepository persists changelog entries next to a package manifest.
type ChangelogRepository interface {
	// Append adds a version entry with one bullet per message to the changelog
	// file, creating the file when it does not exist yet.
	Append(
		changelogPath string,
		version entities.Version,
		messages []string,
		templates entities.ChangelogTemplates,
	) error
}
