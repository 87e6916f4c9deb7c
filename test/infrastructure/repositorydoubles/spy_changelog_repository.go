//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pkgbump/internal/domain/entities"
	"github.com/rios0rios0/pkgbump/internal/domain/repositories"
)

// SpyChangelogRepository implements repositories.ChangelogRepository as a configurable spy.
type SpyChangelogRepository struct {
	AppendErr   error
	AppendCalls []AppendCall
}

// AppendCall records a single invocation of Append.
type AppendCall struct {
	ChangelogPath string
	Version       entities.Version
	Messages      []string
	Templates     entities.ChangelogTemplates
}

var _ repositories.ChangelogRepository = (*SpyChangelogRepository)(nil)

func (r *SpyChangelogRepository) Append(
	changelogPath string,
	version entities.Version,
	messages []string,
	templates entities.ChangelogTemplates,
) error {
	r.AppendCalls = append(r.AppendCalls, AppendCall{
		ChangelogPath: changelogPath,
		Version:       version,
		Messages:      messages,
		Templates:     templates,
	})
	return r.AppendErr
}
