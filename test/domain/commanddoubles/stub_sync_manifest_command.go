//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pkgbump/internal/domain/commands"
	"github.com/rios0rios0/pkgbump/internal/domain/entities"
)

// StubSyncManifestCommand is a stub implementation of commands.SyncManifest.
type StubSyncManifestCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Changed          int
	LastSettings     *entities.Settings
	LastOpts         entities.UpdateOptions
}

var _ commands.SyncManifest = (*StubSyncManifestCommand)(nil)

func (s *StubSyncManifestCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts entities.UpdateOptions,
) (int, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.Changed, s.ExecuteErr
}
