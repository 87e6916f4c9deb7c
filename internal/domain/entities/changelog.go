package entities

import (
	"errors"
	"strings"
	"unicode"
)

const (
	VersionPlaceholder = "{version}"
	MessagePlaceholder = "{message}"

	DefaultChangelogFilename    = "release_notes.md"
	DefaultVersionEntryTemplate = "\n## Version {version}"
	DefaultChangeItemTemplate   = " - {message}"
)

// ErrNoChangeMessages is returned when a changelog entry would have no bullet lines.
var ErrNoChangeMessages = errors.New("at least one change message is required")

// ChangelogTemplates holds the line templates used to render a changelog entry.
type ChangelogTemplates struct {
	VersionEntry string // Must contain {version}
	ChangeItem   string // Must contain {message}
}

// DefaultChangelogTemplates returns the templates used when none are configured.
func DefaultChangelogTemplates() ChangelogTemplates {
	return ChangelogTemplates{
		VersionEntry: DefaultVersionEntryTemplate,
		ChangeItem:   DefaultChangeItemTemplate,
	}
}

// AppendChangelogEntry appends a version heading and one bullet per message
// to the existing changelog content.
//
// Behaviour:
//   - Line endings are normalized to LF and trailing whitespace is removed
//     before anything is appended.
//   - The rendered heading is placed on a new line after the existing text;
//     for an empty changelog leading blank lines of the heading are dropped.
//   - The result always ends with exactly one newline.
func AppendChangelogEntry(
	content string,
	version Version,
	messages []string,
	templates ChangelogTemplates,
) (string, error) {
	if len(messages) == 0 {
		return content, ErrNoChangeMessages
	}

	existing := strings.TrimRightFunc(normalizeLineEndings(content), unicode.IsSpace)
	heading := normalizeLineEndings(strings.ReplaceAll(templates.VersionEntry, VersionPlaceholder, version.String()))

	var builder strings.Builder
	if existing == "" {
		builder.WriteString(strings.TrimLeft(heading, "\n"))
	} else {
		builder.WriteString(existing)
		builder.WriteString("\n")
		builder.WriteString(heading)
	}
	for _, message := range messages {
		builder.WriteString("\n")
		builder.WriteString(strings.ReplaceAll(templates.ChangeItem, MessagePlaceholder, message))
	}
	builder.WriteString("\n")

	return builder.String(), nil
}

// normalizeLineEndings converts CRLF and lone CR line endings to LF.
func normalizeLineEndings(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}
