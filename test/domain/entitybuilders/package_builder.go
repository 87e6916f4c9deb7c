//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"path/filepath"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PackageBuilder helps create test packages with a fluent interface.
type PackageBuilder struct {
	*testkit.BaseBuilder
	name         string
	version      entities.Version
	path         string
	relativePath string
	changes      []entities.ChangeRecord
}

// NewPackageBuilder creates a new package builder with sensible defaults.
func NewPackageBuilder() *PackageBuilder {
	return &PackageBuilder{
		BaseBuilder:  testkit.NewBaseBuilder(),
		name:         "test-package",
		version:      entities.NewVersion(1, 0, 0),
		path:         filepath.Join("/repo", "Packages", "test-package"),
		relativePath: "Packages/test-package",
	}
}

// WithName sets the package name.
func (b *PackageBuilder) WithName(name string) *PackageBuilder {
	b.name = name
	return b
}

// WithVersion sets the package version.
func (b *PackageBuilder) WithVersion(version entities.Version) *PackageBuilder {
	b.version = version
	return b
}

// WithPath sets the absolute package directory.
func (b *PackageBuilder) WithPath(path string) *PackageBuilder {
	b.path = path
	return b
}

// WithRelativePath sets the package directory relative to the repository workdir.
func (b *PackageBuilder) WithRelativePath(relativePath string) *PackageBuilder {
	b.relativePath = relativePath
	return b
}

// WithChange appends a change record.
func (b *PackageBuilder) WithChange(path string, status entities.ChangeStatus) *PackageBuilder {
	b.changes = append(b.changes, entities.ChangeRecord{Path: path, Status: status})
	return b
}

// Build creates the package (satisfies testkit.Builder interface).
func (b *PackageBuilder) Build() interface{} {
	return b.BuildPackage()
}

// BuildPackage creates the package with a concrete return type.
func (b *PackageBuilder) BuildPackage() entities.Package {
	return entities.Package{
		Name:    b.name,
		Version: b.version,
		Path:    b.path,
	}
}

// BuildTracked creates the package together with its change records.
func (b *PackageBuilder) BuildTracked() entities.TrackedPackage {
	return entities.TrackedPackage{
		Package:      b.BuildPackage(),
		RelativePath: b.relativePath,
		Changes:      append([]entities.ChangeRecord(nil), b.changes...),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PackageBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-package"
	b.version = entities.NewVersion(1, 0, 0)
	b.path = filepath.Join("/repo", "Packages", "test-package")
	b.relativePath = "Packages/test-package"
	b.changes = nil
	return b
}

// Clone creates a deep copy of the PackageBuilder.
func (b *PackageBuilder) Clone() testkit.Builder {
	return &PackageBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:         b.name,
		version:      b.version,
		path:         b.path,
		relativePath: b.relativePath,
		changes:      append([]entities.ChangeRecord(nil), b.changes...),
	}
}
