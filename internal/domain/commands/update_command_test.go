//go:build unit

package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pkgbump/internal/domain/commands"
	"github.com/rios0rios0/pkgbump/internal/domain/entities"
	"github.com/rios0rios0/pkgbump/test/infrastructure/repositorydoubles"
)

// packageTree creates <root>/Packages/<name>/package.json for each name and
// registers the manifests with the spy so the scanner can read them.
func packageTree(
	t *testing.T,
	manifests *repositorydoubles.SpyManifestRepository,
	names ...string,
) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	manifests.Packages = map[string]entities.Package{}
	for _, name := range names {
		dir := filepath.Join(root, "Packages", name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		manifestPath := filepath.Join(dir, "package.json")
		require.NoError(t, os.WriteFile(manifestPath, []byte("{}"), 0o600))
		manifests.Packages[manifestPath] = entities.Package{Name: name, Version: entities.NewVersion(1, 0, 0)}
	}
	return root
}

func settingsFor(root string) *entities.Settings {
	settings := entities.DefaultSettings()
	settings.RepositoryPath = root
	return settings
}

func TestUpdateCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should bump the packages touched by the repository changes", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := &repositorydoubles.SpyManifestRepository{}
		changelogs := &repositorydoubles.SpyChangelogRepository{}
		root := packageTree(t, manifests, "com.foo", "com.bar")
		status := &repositorydoubles.StubStatusRepository{
			WorkdirPath: root,
			Records: []entities.ChangeRecord{
				{Path: "Packages/com.foo/Editor/x.cs", Status: entities.StatusModified},
				{Path: "Other/y.cs", Status: entities.StatusModified},
			},
		}
		command := commands.NewUpdateCommand(manifests, changelogs, status.Opener(nil))
		var out bytes.Buffer

		// when
		result, err := command.Execute(context.Background(), settingsFor(root), commands.UpdateOptions{
			In:  strings.NewReader("3\nfix\n\n"),
			Out: &out,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"Packages"}, status.Scopes)
		require.Len(t, result.Bumped, 1)
		assert.Equal(t, "com.foo", result.Bumped[0].Name)
		assert.Equal(t, filepath.Join(root, "Packages", "com.foo", "package.json"),
			manifests.WriteVersionCalls[0].ManifestPath)
		assert.NotContains(t, out.String(), "com.bar")
	})

	t.Run("should not prompt when nothing changed", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := &repositorydoubles.SpyManifestRepository{}
		root := packageTree(t, manifests, "com.foo")
		status := &repositorydoubles.StubStatusRepository{WorkdirPath: root}
		command := commands.NewUpdateCommand(manifests, &repositorydoubles.SpyChangelogRepository{}, status.Opener(nil))
		var out bytes.Buffer

		// when
		result, err := command.Execute(context.Background(), settingsFor(root), commands.UpdateOptions{
			In:  strings.NewReader(""),
			Out: &out,
		})

		// then
		require.NoError(t, err)
		assert.Empty(t, result.Bumped)
		assert.Empty(t, out.String())
	})

	t.Run("should fail at startup when the repository cannot be opened", func(t *testing.T) {
		t.Parallel()

		// given
		openErr := errors.New("bare repositories are not supported")
		status := &repositorydoubles.StubStatusRepository{}
		command := commands.NewUpdateCommand(
			&repositorydoubles.SpyManifestRepository{},
			&repositorydoubles.SpyChangelogRepository{},
			status.Opener(openErr),
		)

		// when
		_, err := command.Execute(context.Background(), settingsFor(t.TempDir()), commands.UpdateOptions{
			In:  strings.NewReader(""),
			Out: &bytes.Buffer{},
		})

		// then
		require.ErrorIs(t, err, openErr)
		assert.Empty(t, status.Scopes)
	})

	t.Run("should fail when the packages path does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		status := &repositorydoubles.StubStatusRepository{WorkdirPath: t.TempDir()}
		command := commands.NewUpdateCommand(
			&repositorydoubles.SpyManifestRepository{},
			&repositorydoubles.SpyChangelogRepository{},
			status.Opener(nil),
		)

		// when
		_, err := command.Execute(context.Background(), settingsFor(status.WorkdirPath), commands.UpdateOptions{
			In:  strings.NewReader(""),
			Out: &bytes.Buffer{},
		})

		// then
		require.Error(t, err)
	})

	t.Run("should propagate status errors", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := &repositorydoubles.SpyManifestRepository{}
		root := packageTree(t, manifests, "com.foo")
		status := &repositorydoubles.StubStatusRepository{WorkdirPath: root, StatusesErr: errors.New("index corrupt")}
		command := commands.NewUpdateCommand(manifests, &repositorydoubles.SpyChangelogRepository{}, status.Opener(nil))

		// when
		_, err := command.Execute(context.Background(), settingsFor(root), commands.UpdateOptions{
			In:  strings.NewReader(""),
			Out: &bytes.Buffer{},
		})

		// then
		require.ErrorIs(t, err, status.StatusesErr)
	})
}
