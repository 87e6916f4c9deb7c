package commands

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
	"github.com/rios0rios0/pkgbump/internal/domain/repositories"
	"github.com/rios0rios0/pkgbump/internal/scanner"
)

// List defines the interface for the package listing command.
type List interface {
	Execute(ctx context.Context, settings *entities.Settings, out io.Writer) ([]entities.Package, error)
}

// ListCommand prints every package found below the packages path.
type ListCommand struct {
	manifests repositories.ManifestRepository
}

// NewListCommand creates a new ListCommand.
func NewListCommand(manifests repositories.ManifestRepository) *ListCommand {
	return &ListCommand{manifests: manifests}
}

var _ List = (*ListCommand)(nil)

// Execute writes one "name version path" line per package, ordered by name.
func (it *ListCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	out io.Writer,
) ([]entities.Package, error) {
	packagesRoot, err := resolvePackagesRoot(settings)
	if err != nil {
		return nil, err
	}

	var packages []entities.Package
	for pkg := range scanner.NewPackageScanner(it.manifests, settings.ManifestFilename).Scan(packagesRoot) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		packages = append(packages, pkg)
	}
	slices.SortFunc(packages, func(a, b entities.Package) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, pkg := range packages {
		if _, writeErr := fmt.Fprintf(out, "%s %s %s\n", pkg.Name, pkg.Version, pkg.Path); writeErr != nil {
			return nil, writeErr
		}
	}
	return packages, nil
}
