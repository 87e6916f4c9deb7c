package repositories

import "github.com/rios0rios0/pkgbump/internal/domain/entities"

// ManifestRepository reads and edits JSON manifests in place. Writes only touch
// the targeted values; every other field and its order is preserved.
type ManifestRepository interface {
	// ReadPackage decodes the name and version fields of a package manifest.
	ReadPackage(manifestPath string) (entities.Package, error)

	// WriteVersion replaces (or inserts) the top-level version value.
	WriteVersion(manifestPath string, version entities.Version) error

	// SyncDependencies sets every existing key of the top-level "dependencies"
	// object that appears in versions to the matching version. It returns how
	// many values actually changed.
	SyncDependencies(manifestPath string, versions map[string]entities.Version) (int, error)

	// PendingDependencies returns, sorted by name, the dependency keys that
	// SyncDependencies would change, without writing anything.
	PendingDependencies(manifestPath string, versions map[string]entities.Version) ([]string, error)
}
