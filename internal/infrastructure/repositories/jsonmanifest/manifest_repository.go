package jsonmanifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
	"github.com/rios0rios0/pkgbump/internal/domain/repositories"
	"github.com/rios0rios0/pkgbump/internal/infrastructure/repositories/fileio"
)

const (
	versionKey      = "version"
	dependenciesKey = "dependencies"
)

var (
	// ErrMalformedManifest is returned when a manifest is not valid JSON.
	ErrMalformedManifest = errors.New("manifest is not valid JSON")
	// ErrNotAnObject is returned when a manifest (or its dependencies) is not a JSON object.
	ErrNotAnObject = errors.New("manifest is not a JSON object")
)

// ManifestRepository edits JSON manifests without reformatting them.
type ManifestRepository struct{}

var _ repositories.ManifestRepository = (*ManifestRepository)(nil)

// NewManifestRepository creates a new ManifestRepository.
func NewManifestRepository() *ManifestRepository {
	return &ManifestRepository{}
}

type packageDocument struct {
	Name    *string           `json:"name"`
	Version *entities.Version `json:"version"`
}

// ReadPackage decodes the name and version of the manifest at manifestPath.
func (r *ManifestRepository) ReadPackage(manifestPath string) (entities.Package, error) {
	content, err := fileio.ReadFile(manifestPath)
	if err != nil {
		return entities.Package{}, err
	}

	var doc packageDocument
	if unmarshalErr := json.Unmarshal(content.Data, &doc); unmarshalErr != nil {
		return entities.Package{}, fmt.Errorf("failed to decode %q: %w", manifestPath, unmarshalErr)
	}
	if doc.Name == nil || *doc.Name == "" {
		return entities.Package{}, fmt.Errorf("manifest %q has no name", manifestPath)
	}
	if doc.Version == nil {
		return entities.Package{}, fmt.Errorf("manifest %q has no version", manifestPath)
	}

	return entities.Package{Name: *doc.Name, Version: *doc.Version}, nil
}

// WriteVersion sets the top-level version field, leaving all other fields untouched.
func (r *ManifestRepository) WriteVersion(manifestPath string, version entities.Version) error {
	content, err := readObject(manifestPath)
	if err != nil {
		return err
	}

	updated, err := sjson.SetBytes(content.Data, versionKey, version.String())
	if err != nil {
		return fmt.Errorf("failed to set version in %q: %w", manifestPath, err)
	}

	return fileio.WriteFile(manifestPath, content.WithData(updated))
}

// PendingDependencies returns, sorted, the keys of the top-level dependencies
// object whose value differs from the matching entry of versions.
func (r *ManifestRepository) PendingDependencies(
	manifestPath string,
	versions map[string]entities.Version,
) ([]string, error) {
	content, err := readObject(manifestPath)
	if err != nil {
		return nil, err
	}
	return pendingDependencies(manifestPath, content.Data, versions)
}

// SyncDependencies rewrites dependency versions for the packages in versions.
func (r *ManifestRepository) SyncDependencies(
	manifestPath string,
	versions map[string]entities.Version,
) (int, error) {
	content, err := readObject(manifestPath)
	if err != nil {
		return 0, err
	}

	pending, err := pendingDependencies(manifestPath, content.Data, versions)
	if err != nil || len(pending) == 0 {
		return 0, err
	}

	data := content.Data
	for _, name := range pending {
		data, err = sjson.SetBytes(data, dependenciesKey+"."+gjson.Escape(name), versions[name].String())
		if err != nil {
			return 0, fmt.Errorf("failed to set dependency %q in %q: %w", name, manifestPath, err)
		}
	}

	if writeErr := fileio.WriteFile(manifestPath, content.WithData(data)); writeErr != nil {
		return 0, writeErr
	}
	return len(pending), nil
}

func pendingDependencies(
	manifestPath string,
	data []byte,
	versions map[string]entities.Version,
) ([]string, error) {
	dependencies := gjson.GetBytes(data, dependenciesKey)
	if !dependencies.Exists() {
		return nil, nil
	}
	if !dependencies.IsObject() {
		return nil, fmt.Errorf("%q: %s: %w", manifestPath, dependenciesKey, ErrNotAnObject)
	}

	var pending []string
	dependencies.ForEach(func(key, value gjson.Result) bool {
		if version, ok := versions[key.String()]; ok && value.String() != version.String() {
			pending = append(pending, key.String())
		}
		return true
	})
	slices.Sort(pending)
	return pending, nil
}

func readObject(manifestPath string) (fileio.Content, error) {
	content, err := fileio.ReadFile(manifestPath)
	if err != nil {
		return fileio.Content{}, err
	}
	if !gjson.ValidBytes(content.Data) {
		return fileio.Content{}, fmt.Errorf("%q: %w", manifestPath, ErrMalformedManifest)
	}
	if !gjson.ParseBytes(content.Data).IsObject() {
		return fileio.Content{}, fmt.Errorf("%q: %w", manifestPath, ErrNotAnObject)
	}
	return content, nil
}
