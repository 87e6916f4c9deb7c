//go:build unit

package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	t.Run("should map every known key", func(t *testing.T) {
		t.Parallel()

		// given
		expected := map[string]entities.CommandKind{
			"1": entities.CommandUpdateMajor,
			"2": entities.CommandUpdateMinor,
			"3": entities.CommandUpdatePatch,
			"s": entities.CommandSkip,
			"d": entities.CommandDiff,
			"q": entities.CommandQuit,
			"?": entities.CommandHelp,
		}

		for input, kind := range expected {
			// when
			got := entities.ParseCommand(input)

			// then
			assert.Equal(t, kind, got, input)
		}
	})

	t.Run("should fall back to help for anything else", func(t *testing.T) {
		t.Parallel()

		// given
		inputs := []string{"", "x", "11", "q ", " 1", "S", "é"}

		for _, input := range inputs {
			// when
			got := entities.ParseCommand(input)

			// then
			assert.Equal(t, entities.CommandHelp, got, "%q", input)
		}
	})
}

func TestCommandLegend(t *testing.T) {
	t.Parallel()

	t.Run("should list one line per command key", func(t *testing.T) {
		t.Parallel()

		// given
		keys := strings.Split(entities.CommandKeys(), ",")

		// when
		lines := strings.Split(entities.CommandLegend(), "\n")

		// then
		assert.Equal(t, "1,2,3,s,d,q,?", entities.CommandKeys())
		require.Len(t, lines, len(keys))
		for i, key := range keys {
			assert.True(t, strings.HasPrefix(lines[i], key+" - "), lines[i])
		}
	})
}

func TestCommandKindBump(t *testing.T) {
	t.Parallel()

	t.Run("should increment the matching field", func(t *testing.T) {
		t.Parallel()

		// given
		version := entities.NewVersion(1, 2, 3)

		// when
		major, _ := entities.CommandUpdateMajor.Bump(version)
		minor, _ := entities.CommandUpdateMinor.Bump(version)
		patch, _ := entities.CommandUpdatePatch.Bump(version)

		// then
		assert.Equal(t, "2.0.0", major.String())
		assert.Equal(t, "1.3.0", minor.String())
		assert.Equal(t, "1.2.4", patch.String())
	})

	t.Run("should fail for commands that do not bump", func(t *testing.T) {
		t.Parallel()

		// given
		kind := entities.CommandSkip

		// when
		_, err := kind.Bump(entities.NewVersion(1, 0, 0))

		// then
		require.Error(t, err)
		assert.False(t, kind.IsUpdate())
		assert.True(t, entities.CommandUpdatePatch.IsUpdate())
	})
}
