//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
	"github.com/rios0rios0/pkgbump/internal/domain/repositories"
)

// SpyManifestRepository implements repositories.ManifestRepository in memory.
type SpyManifestRepository struct {
	// --- ReadPackage ---
	Packages map[string]entities.Package // manifest path -> package

	// --- WriteVersion ---
	WriteVersionErr   error
	WriteVersionCalls []WriteVersionCall

	// --- SyncDependencies ---
	SyncChanged int
	SyncErr     error
	SyncCalls   []SyncDependenciesCall

	// --- PendingDependencies ---
	Pending      []string
	PendingErr   error
	PendingCalls []SyncDependenciesCall
}

// WriteVersionCall records a single invocation of WriteVersion.
type WriteVersionCall struct {
	ManifestPath string
	Version      entities.Version
}

// SyncDependenciesCall records a single invocation of SyncDependencies.
type SyncDependenciesCall struct {
	ManifestPath string
	Versions     map[string]entities.Version
}

var _ repositories.ManifestRepository = (*SpyManifestRepository)(nil)

func (r *SpyManifestRepository) ReadPackage(manifestPath string) (entities.Package, error) {
	if pkg, ok := r.Packages[manifestPath]; ok {
		return pkg, nil
	}
	return entities.Package{}, fmt.Errorf("no manifest at %s", manifestPath)
}

func (r *SpyManifestRepository) WriteVersion(manifestPath string, version entities.Version) error {
	r.WriteVersionCalls = append(r.WriteVersionCalls, WriteVersionCall{ManifestPath: manifestPath, Version: version})
	return r.WriteVersionErr
}

func (r *SpyManifestRepository) SyncDependencies(
	manifestPath string,
	versions map[string]entities.Version,
) (int, error) {
	r.SyncCalls = append(r.SyncCalls, SyncDependenciesCall{ManifestPath: manifestPath, Versions: versions})
	return r.SyncChanged, r.SyncErr
}

func (r *SpyManifestRepository) PendingDependencies(
	manifestPath string,
	versions map[string]entities.Version,
) ([]string, error) {
	r.PendingCalls = append(r.PendingCalls, SyncDependenciesCall{ManifestPath: manifestPath, Versions: versions})
	return r.Pending, r.PendingErr
}
