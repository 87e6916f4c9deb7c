//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
)

func TestAppendChangelogEntry(t *testing.T) {
	t.Parallel()

	t.Run("should start an empty changelog with the heading", func(t *testing.T) {
		t.Parallel()

		// given
		version := entities.NewVersion(1, 0, 1)

		// when
		content, err := entities.AppendChangelogEntry("", version, []string{"fixed a bug"},
			entities.DefaultChangelogTemplates())

		// then
		require.NoError(t, err)
		assert.Equal(t, "## Version 1.0.1\n - fixed a bug\n", content)
	})

	t.Run("should normalize line endings and trailing whitespace before appending", func(t *testing.T) {
		t.Parallel()

		// given
		existing := "# Notes\r\n\r\n## Version 1.0.0\r\n - first\r\n\r\n   \n"

		// when
		content, err := entities.AppendChangelogEntry(existing, entities.NewVersion(1, 1, 0),
			[]string{"added a", "added b"}, entities.DefaultChangelogTemplates())

		// then
		require.NoError(t, err)
		assert.Equal(t,
			"# Notes\n\n## Version 1.0.0\n - first\n\n## Version 1.1.0\n - added a\n - added b\n",
			content,
		)
	})

	t.Run("should use custom templates", func(t *testing.T) {
		t.Parallel()

		// given
		templates := entities.ChangelogTemplates{VersionEntry: "### v{version}", ChangeItem: "* {message}"}

		// when
		content, err := entities.AppendChangelogEntry("old", entities.NewVersion(2, 0, 0),
			[]string{"breaking"}, templates)

		// then
		require.NoError(t, err)
		assert.Equal(t, "old\n### v2.0.0\n* breaking\n", content)
	})

	t.Run("should refuse an entry without messages", func(t *testing.T) {
		t.Parallel()

		// given
		existing := "# Notes\n"

		// when
		content, err := entities.AppendChangelogEntry(existing, entities.NewVersion(1, 0, 0), nil,
			entities.DefaultChangelogTemplates())

		// then
		require.ErrorIs(t, err, entities.ErrNoChangeMessages)
		assert.Equal(t, existing, content)
	})
}
