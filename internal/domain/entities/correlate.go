package entities

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	logger "github.com/sirupsen/logrus"
)

// DuplicatePackageError is returned when two manifests declare the same package name.
type DuplicatePackageError struct {
	Name  string
	Paths []string
}

func (e *DuplicatePackageError) Error() string {
	return fmt.Sprintf("package %q is declared more than once: %s", e.Name, strings.Join(e.Paths, ", "))
}

// CorrelateOptions controls how change records are mapped to packages.
type CorrelateOptions struct {
	ManifestFilename string
	Workdir          string // Absolute repository workdir, used to derive RelativePath
}

// Correlate assigns each change record to the first package whose name equals
// one of the record's path components, walking from the root towards the leaf.
// It returns the changed packages whose manifest was not deleted, sorted by name.
func Correlate(packages []Package, records []ChangeRecord, opts CorrelateOptions) ([]TrackedPackage, error) {
	if opts.ManifestFilename == "" {
		opts.ManifestFilename = DefaultManifestFilename
	}

	tracked := make(map[string]*TrackedPackage, len(packages))
	for _, pkg := range packages {
		if existing, ok := tracked[pkg.Name]; ok {
			return nil, &DuplicatePackageError{Name: pkg.Name, Paths: []string{existing.Path, pkg.Path}}
		}
		tracked[pkg.Name] = &TrackedPackage{
			Package:      pkg,
			RelativePath: relativeTo(opts.Workdir, pkg.Path),
		}
	}

	for _, record := range records {
		owner := findOwner(record.Path, tracked)
		if owner == nil {
			logger.Debugf("Change %q does not belong to any package", record.Path)
			continue
		}
		owner.addChange(record)
	}

	result := make([]TrackedPackage, 0, len(tracked))
	for _, pkg := range tracked {
		if !pkg.IsChanged() {
			continue
		}
		if pkg.IsDeleted(opts.ManifestFilename) {
			logger.Debugf("Package %q has its manifest deleted, skipping", pkg.Name)
			continue
		}
		result = append(result, *pkg)
	}
	slices.SortFunc(result, func(a, b TrackedPackage) int {
		return strings.Compare(a.Name, b.Name)
	})

	return result, nil
}

func findOwner(recordPath string, tracked map[string]*TrackedPackage) *TrackedPackage {
	for component := range strings.SplitSeq(recordPath, "/") {
		if component == "" {
			continue
		}
		if pkg, ok := tracked[component]; ok {
			return pkg
		}
	}
	return nil
}

// relativeTo returns target relative to base in slash form, or target itself
// when it does not live below base.
func relativeTo(base, target string) string {
	if base == "" {
		return filepath.ToSlash(target)
	}
	rel, err := filepath.Rel(base, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
