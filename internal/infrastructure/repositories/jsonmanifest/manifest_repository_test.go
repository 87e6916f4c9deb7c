//go:build unit

package jsonmanifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
	"github.com/rios0rios0/pkgbump/internal/infrastructure/repositories/jsonmanifest"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readManifest(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestManifestRepository_ReadPackage(t *testing.T) {
	t.Parallel()

	t.Run("should read name and version", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, `{"displayName": "Foo", "version": "1.4.2", "name": "com.foo"}`)
		repo := jsonmanifest.NewManifestRepository()

		// when
		pkg, err := repo.ReadPackage(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "com.foo", pkg.Name)
		assert.Equal(t, entities.NewVersion(1, 4, 2), pkg.Version)
	})

	t.Run("should read a manifest with a byte order mark", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, "\xef\xbb\xbf"+`{"name": "com.bom", "version": "0.0.1"}`)
		repo := jsonmanifest.NewManifestRepository()

		// when
		pkg, err := repo.ReadPackage(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "com.bom", pkg.Name)
	})

	t.Run("should fail without a version", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, `{"name": "com.foo"}`)
		repo := jsonmanifest.NewManifestRepository()

		// when
		_, err := repo.ReadPackage(path)

		// then
		require.Error(t, err)
	})

	t.Run("should fail for an invalid version", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, `{"name": "com.foo", "version": "1.0.0-preview"}`)
		repo := jsonmanifest.NewManifestRepository()

		// when
		_, err := repo.ReadPackage(path)

		// then
		require.ErrorIs(t, err, entities.ErrUnexpectedCharAfter)
	})
}

func TestManifestRepository_WriteVersion(t *testing.T) {
	t.Parallel()

	t.Run("should replace only the version and keep the layout", func(t *testing.T) {
		t.Parallel()

		// given
		original := "{\n  \"name\": \"com.foo\",\n  \"version\": \"1.0.0\",\n  \"unity\": \"2021.3\",\n" +
			"  \"keywords\": [\"a\", \"b\"]\n}\n"
		path := writeManifest(t, original)
		repo := jsonmanifest.NewManifestRepository()

		// when
		err := repo.WriteVersion(path, entities.NewVersion(1, 1, 0))

		// then
		require.NoError(t, err)
		expected := "{\n  \"name\": \"com.foo\",\n  \"version\": \"1.1.0\",\n  \"unity\": \"2021.3\",\n" +
			"  \"keywords\": [\"a\", \"b\"]\n}\n"
		assert.Equal(t, expected, readManifest(t, path))
	})

	t.Run("should insert a missing version field", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, `{"name":"com.foo"}`)
		repo := jsonmanifest.NewManifestRepository()

		// when
		err := repo.WriteVersion(path, entities.NewVersion(0, 1, 0))

		// then
		require.NoError(t, err)
		pkg, readErr := repo.ReadPackage(path)
		require.NoError(t, readErr)
		assert.Equal(t, entities.NewVersion(0, 1, 0), pkg.Version)
	})

	t.Run("should refuse a manifest that is not an object", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, `["name", "version"]`)
		repo := jsonmanifest.NewManifestRepository()

		// when
		err := repo.WriteVersion(path, entities.NewVersion(1, 0, 0))

		// then
		require.ErrorIs(t, err, jsonmanifest.ErrNotAnObject)
		assert.Equal(t, `["name", "version"]`, readManifest(t, path))
	})

	t.Run("should refuse malformed JSON", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, `{"name": `)
		repo := jsonmanifest.NewManifestRepository()

		// when
		err := repo.WriteVersion(path, entities.NewVersion(1, 0, 0))

		// then
		require.ErrorIs(t, err, jsonmanifest.ErrMalformedManifest)
	})
}

func TestManifestRepository_SyncDependencies(t *testing.T) {
	t.Parallel()

	t.Run("should update only known dependencies", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, `{
  "dependencies": {
    "com.foo": "1.0.0",
    "com.bar": "2.0.0",
    "com.other": "9.9.9"
  },
  "scopedRegistries": []
}`)
		repo := jsonmanifest.NewManifestRepository()
		versions := map[string]entities.Version{
			"com.foo":    entities.NewVersion(1, 1, 0),
			"com.bar":    entities.NewVersion(2, 0, 0),
			"com.absent": entities.NewVersion(3, 0, 0),
		}

		// when
		changed, err := repo.SyncDependencies(path, versions)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, changed)
		assert.Equal(t, `{
  "dependencies": {
    "com.foo": "1.1.0",
    "com.bar": "2.0.0",
    "com.other": "9.9.9"
  },
  "scopedRegistries": []
}`, readManifest(t, path))
	})

	t.Run("should leave a manifest without dependencies untouched", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, `{"name": "project"}`)
		repo := jsonmanifest.NewManifestRepository()

		// when
		changed, err := repo.SyncDependencies(path, map[string]entities.Version{"a": entities.NewVersion(1, 0, 0)})

		// then
		require.NoError(t, err)
		assert.Zero(t, changed)
		assert.Equal(t, `{"name": "project"}`, readManifest(t, path))
	})

	t.Run("should refuse dependencies that are not an object", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, `{"dependencies": ["a"]}`)
		repo := jsonmanifest.NewManifestRepository()

		// when
		_, err := repo.SyncDependencies(path, map[string]entities.Version{"a": entities.NewVersion(1, 0, 0)})

		// then
		require.ErrorIs(t, err, jsonmanifest.ErrNotAnObject)
	})
}

func TestManifestRepository_WriteVersionByteOrderMark(t *testing.T) {
	t.Parallel()

	t.Run("should keep the byte order mark of the manifest", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, "\xef\xbb\xbf"+`{"name": "com.bom", "version": "0.0.1"}`)
		repo := jsonmanifest.NewManifestRepository()

		// when
		err := repo.WriteVersion(path, entities.NewVersion(0, 0, 2))

		// then
		require.NoError(t, err)
		assert.Equal(t, "\xef\xbb\xbf"+`{"name": "com.bom", "version": "0.0.2"}`, readManifest(t, path))
	})

	t.Run("should not add a byte order mark to a plain manifest", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, `{"name": "com.plain", "version": "0.0.1"}`)
		repo := jsonmanifest.NewManifestRepository()

		// when
		err := repo.WriteVersion(path, entities.NewVersion(0, 0, 2))

		// then
		require.NoError(t, err)
		assert.Equal(t, `{"name": "com.plain", "version": "0.0.2"}`, readManifest(t, path))
	})
}

func TestManifestRepository_PendingDependencies(t *testing.T) {
	t.Parallel()

	t.Run("should list the dependencies that differ without writing", func(t *testing.T) {
		t.Parallel()

		// given
		original := `{"dependencies": {"com.b": "1.0.0", "com.a": "0.1.0", "com.same": "2.0.0"}}`
		path := writeManifest(t, original)
		repo := jsonmanifest.NewManifestRepository()
		versions := map[string]entities.Version{
			"com.a":      entities.NewVersion(0, 2, 0),
			"com.b":      entities.NewVersion(1, 1, 0),
			"com.same":   entities.NewVersion(2, 0, 0),
			"com.absent": entities.NewVersion(5, 0, 0),
		}

		// when
		pending, err := repo.PendingDependencies(path, versions)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"com.a", "com.b"}, pending)
		assert.Equal(t, original, readManifest(t, path))
	})

	t.Run("should refuse malformed JSON", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeManifest(t, "not json")
		repo := jsonmanifest.NewManifestRepository()

		// when
		_, err := repo.PendingDependencies(path, map[string]entities.Version{"a": entities.NewVersion(1, 0, 0)})

		// then
		require.ErrorIs(t, err, jsonmanifest.ErrMalformedManifest)
	})
}
