package entities

import (
	"path"
	"slices"
	"strings"
)

// DefaultManifestFilename is the reserved name of a package manifest file.
const DefaultManifestFilename = "package.json"

// Package is a package discovered on disk.
type Package struct {
	Name    string  `json:"name"`
	Version Version `json:"version"`
	Path    string  `json:"-"` // Absolute path of the directory holding the manifest
}

// ChangeStatus classifies a change reported for one repository path.
type ChangeStatus string

const (
	StatusNew        ChangeStatus = "new"
	StatusModified   ChangeStatus = "modified"
	StatusDeleted    ChangeStatus = "deleted"
	StatusRenamed    ChangeStatus = "renamed"
	StatusTypeChange ChangeStatus = "typechange"
	StatusUnknown    ChangeStatus = "unknown"
)

// ChangeRecord is one (path, status) pair from the change-status provider.
type ChangeRecord struct {
	Path   string // Slash-separated, relative to the repository workdir
	Status ChangeStatus
}

// TrackedPackage is a Package together with the changes that belong to it.
type TrackedPackage struct {
	Package
	RelativePath string // Package directory relative to the repository workdir
	Changes      []ChangeRecord
}

// IsChanged reports whether at least one change belongs to the package.
func (p TrackedPackage) IsChanged() bool {
	return len(p.Changes) > 0
}

// IsDeleted reports whether the package manifest itself has been deleted.
func (p TrackedPackage) IsDeleted(manifestFilename string) bool {
	return slices.ContainsFunc(p.Changes, func(change ChangeRecord) bool {
		return change.Status == StatusDeleted && path.Base(change.Path) == manifestFilename
	})
}

// addChange inserts the record keeping Changes ordered by path.
func (p *TrackedPackage) addChange(record ChangeRecord) {
	idx, _ := slices.BinarySearchFunc(p.Changes, record, func(a, b ChangeRecord) int {
		return strings.Compare(a.Path, b.Path)
	})
	p.Changes = slices.Insert(p.Changes, idx, record)
}

// PackageVersions maps each package name to its version. Two packages with the
// same name produce a *DuplicatePackageError.
func PackageVersions(packages []Package) (map[string]Version, error) {
	versions := make(map[string]Version, len(packages))
	paths := make(map[string]string, len(packages))
	for _, pkg := range packages {
		if existing, ok := paths[pkg.Name]; ok {
			return nil, &DuplicatePackageError{Name: pkg.Name, Paths: []string{existing, pkg.Path}}
		}
		paths[pkg.Name] = pkg.Path
		versions[pkg.Name] = pkg.Version
	}
	return versions, nil
}
