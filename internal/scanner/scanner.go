package scanner

import (
	"iter"
	"os"
	"path/filepath"
	"slices"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
)

// ManifestReader decodes the package declared by a manifest file.
type ManifestReader interface {
	ReadPackage(manifestPath string) (entities.Package, error)
}

// PackageScanner discovers packages below a root directory. A directory that
// directly contains the manifest file is a package root and nothing below it
// is visited, so nested packages are never reported on their own.
type PackageScanner struct {
	reader           ManifestReader
	manifestFilename string
}

// NewPackageScanner creates a scanner looking for manifestFilename.
func NewPackageScanner(reader ManifestReader, manifestFilename string) *PackageScanner {
	if manifestFilename == "" {
		manifestFilename = entities.DefaultManifestFilename
	}
	return &PackageScanner{reader: reader, manifestFilename: manifestFilename}
}

// Scan returns a lazy sequence of the packages found below root. Nothing is
// read until the sequence is iterated, and every iteration walks the tree
// again from root. Manifests that cannot be decoded are skipped.
func (it *PackageScanner) Scan(root string) iter.Seq[entities.Package] {
	return func(yield func(entities.Package) bool) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			logger.Debugf("Cannot resolve scan root %q: %v", root, err)
			return
		}
		it.walk(absRoot, yield)
	}
}

// walk visits dir and returns false once the consumer has stopped iterating.
func (it *PackageScanner) walk(dir string, yield func(entities.Package) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debugf("Skipping unreadable directory %q: %v", dir, err)
		return true
	}

	// The pruning decision is made from the direct children only, before descending.
	if slices.ContainsFunc(entries, it.isManifest) {
		return it.emit(dir, yield)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !it.walk(filepath.Join(dir, entry.Name()), yield) {
			return false
		}
	}
	return true
}

func (it *PackageScanner) emit(dir string, yield func(entities.Package) bool) bool {
	manifestPath := filepath.Join(dir, it.manifestFilename)
	pkg, err := it.reader.ReadPackage(manifestPath)
	if err != nil {
		logger.Debugf("Skipping manifest %q: %v", manifestPath, err)
		return true
	}
	pkg.Path = dir
	return yield(pkg)
}

func (it *PackageScanner) isManifest(entry os.DirEntry) bool {
	return entry.Type().IsRegular() && entry.Name() == it.manifestFilename
}
