//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"io"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
	"github.com/rios0rios0/pkgbump/internal/domain/repositories"
)

// StubStatusRepository implements repositories.StatusRepository with canned answers.
type StubStatusRepository struct {
	WorkdirPath string

	// --- Statuses ---
	Records     []entities.ChangeRecord
	StatusesErr error
	Scopes      []string

	// --- Diff ---
	DiffOutput string
	DiffErr    error
	DiffScopes []string
}

var _ repositories.StatusRepository = (*StubStatusRepository)(nil)

func (r *StubStatusRepository) Workdir() string { return r.WorkdirPath }

func (r *StubStatusRepository) Statuses(_ context.Context, scope string) ([]entities.ChangeRecord, error) {
	r.Scopes = append(r.Scopes, scope)
	return r.Records, r.StatusesErr
}

func (r *StubStatusRepository) Diff(_ context.Context, scope string, out io.Writer) error {
	r.DiffScopes = append(r.DiffScopes, scope)
	if r.DiffErr != nil {
		return r.DiffErr
	}
	_, err := io.WriteString(out, r.DiffOutput)
	return err
}

// Opener returns a repositories.StatusRepositoryOpener that always yields r,
// or openErr when it is not nil.
func (r *StubStatusRepository) Opener(openErr error) repositories.StatusRepositoryOpener {
	return func(_ string, _ entities.StatusSource) (repositories.StatusRepository, error) {
		if openErr != nil {
			return nil, openErr
		}
		return r, nil
	}
}
