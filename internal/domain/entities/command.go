package entities

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// CommandKind is one action the interactive update loop can take on a package.
type CommandKind int

const (
	CommandUpdateMajor CommandKind = iota
	CommandUpdateMinor
	CommandUpdatePatch
	CommandSkip
	CommandDiff
	CommandQuit
	CommandHelp
)

type commandMeta struct {
	kind CommandKind
	key  rune
	help string
}

//nolint:gochecknoglobals // fixed command table
var commandList = []commandMeta{
	{kind: CommandUpdateMajor, key: '1', help: "update package major version"},
	{kind: CommandUpdateMinor, key: '2', help: "update package minor version"},
	{kind: CommandUpdatePatch, key: '3', help: "update package patch version"},
	{kind: CommandSkip, key: 's', help: "skip current package"},
	{kind: CommandDiff, key: 'd', help: "show diff for current package"},
	{kind: CommandQuit, key: 'q', help: "quit; do not update package or any of the remaining ones"},
	{kind: CommandHelp, key: '?', help: "print help"},
}

// ParseCommand maps one line of input to a command. Anything that is not
// exactly one known key, including empty and multi-character input, is Help.
func ParseCommand(input string) CommandKind {
	key, size := utf8.DecodeRuneInString(input)
	if size == 0 || size != len(input) {
		return CommandHelp
	}
	for _, command := range commandList {
		if command.key == key {
			return command.kind
		}
	}
	return CommandHelp
}

// CommandKeys returns the command keys joined by commas, e.g. "1,2,3,s,d,q,?".
func CommandKeys() string {
	keys := make([]string, 0, len(commandList))
	for _, command := range commandList {
		keys = append(keys, string(command.key))
	}
	return strings.Join(keys, ",")
}

// CommandLegend returns the command legend, one "key - description" line per command.
func CommandLegend() string {
	lines := make([]string, 0, len(commandList))
	for _, command := range commandList {
		lines = append(lines, fmt.Sprintf("%c - %s", command.key, command.help))
	}
	return strings.Join(lines, "\n")
}

// Bump returns the incremented version for the three update commands.
func (k CommandKind) Bump(v Version) (Version, error) {
	switch k {
	case CommandUpdateMajor:
		return v.IncrementMajor()
	case CommandUpdateMinor:
		return v.IncrementMinor()
	case CommandUpdatePatch:
		return v.IncrementPatch()
	default:
		return v, fmt.Errorf("command %d does not change the version", k)
	}
}

// IsUpdate reports whether the command bumps the package version.
func (k CommandKind) IsUpdate() bool {
	return k == CommandUpdateMajor || k == CommandUpdateMinor || k == CommandUpdatePatch
}
