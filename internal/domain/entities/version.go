package entities

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

const versionSeparator = '.'

var (
	// ErrEmpty is reported when the version string has no characters at all.
	ErrEmpty = errors.New("empty version string")
	// ErrUnexpectedEnd is reported when digits are expected but the input is exhausted.
	ErrUnexpectedEnd = errors.New("unexpected end of version string")
	// ErrUnexpectedChar is reported when a character other than a digit or separator appears.
	ErrUnexpectedChar = errors.New("unexpected character")
	// ErrUnexpectedCharAfter is reported when characters follow the patch number.
	ErrUnexpectedCharAfter = errors.New("unexpected character after patch number")
	// ErrLeadingZero is reported when a multi-digit component starts with zero.
	ErrLeadingZero = errors.New("leading zero in version component")
	// ErrOverflow is reported when a component does not fit in 16 bits.
	ErrOverflow = errors.New("version component out of u16 range")

	// ErrVersionOverflow is returned by the increment operations at the 16-bit boundary.
	ErrVersionOverflow = errors.New("version component cannot be incremented past 65535")
)

// VersionField identifies one of the three positional version components.
type VersionField int

const (
	FieldMajor VersionField = iota
	FieldMinor
	FieldPatch
)

func (f VersionField) String() string {
	switch f {
	case FieldMajor:
		return "major"
	case FieldMinor:
		return "minor"
	case FieldPatch:
		return "patch"
	default:
		return "unknown"
	}
}

// VersionError describes why a version string was rejected and where.
// Kind is one of the Err* sentinels above, so callers can match with errors.Is.
type VersionError struct {
	Kind     error
	Input    string
	Field    VersionField
	Position int
	Char     rune
}

func (e *VersionError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrEmpty):
		return e.Kind.Error()
	case errors.Is(e.Kind, ErrUnexpectedChar), errors.Is(e.Kind, ErrUnexpectedCharAfter):
		return fmt.Sprintf("invalid version %q: %s %q in %s at position %d",
			e.Input, e.Kind, e.Char, e.Field, e.Position)
	default:
		return fmt.Sprintf("invalid version %q: %s in %s at position %d",
			e.Input, e.Kind, e.Field, e.Position)
	}
}

func (e *VersionError) Unwrap() error {
	return e.Kind
}

// Version is an immutable major.minor.patch triple.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// NewVersion builds a Version from its three components.
func NewVersion(major, minor, patch uint16) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// ParseVersion parses text strictly as digits '.' digits '.' digits.
// No whitespace, signs or leading zeros are accepted and the first problem
// found stops the parse.
func ParseVersion(text string) (Version, error) {
	if text == "" {
		return Version{}, &VersionError{Kind: ErrEmpty, Input: text}
	}

	var components [3]uint16
	pos := 0
	for field := FieldMajor; field <= FieldPatch; field++ {
		if field > FieldMajor {
			if pos >= len(text) {
				return Version{}, &VersionError{Kind: ErrUnexpectedEnd, Input: text, Field: field, Position: pos}
			}
			if text[pos] != versionSeparator {
				return Version{}, unexpectedChar(ErrUnexpectedChar, text, field-1, pos)
			}
			pos++
		}

		value, next, err := parseComponent(text, pos, field)
		if err != nil {
			return Version{}, err
		}
		components[field] = value
		pos = next
	}

	if pos < len(text) {
		return Version{}, unexpectedChar(ErrUnexpectedCharAfter, text, FieldPatch, pos)
	}

	return Version{Major: components[0], Minor: components[1], Patch: components[2]}, nil
}

// parseComponent accumulates base-10 digits starting at pos and returns the
// value together with the index of the first byte after the digits.
func parseComponent(text string, pos int, field VersionField) (uint16, int, error) {
	if pos >= len(text) {
		return 0, pos, &VersionError{Kind: ErrUnexpectedEnd, Input: text, Field: field, Position: pos}
	}
	if !isDigit(text[pos]) {
		return 0, pos, unexpectedChar(ErrUnexpectedChar, text, field, pos)
	}

	start := pos
	value := 0
	for pos < len(text) && isDigit(text[pos]) {
		if pos > start && text[start] == '0' {
			return 0, pos, &VersionError{Kind: ErrLeadingZero, Input: text, Field: field, Position: start}
		}
		value = value*10 + int(text[pos]-'0')
		if value > math.MaxUint16 {
			return 0, pos, &VersionError{Kind: ErrOverflow, Input: text, Field: field, Position: pos}
		}
		pos++
	}

	return uint16(value), pos, nil
}

func unexpectedChar(kind error, text string, field VersionField, pos int) *VersionError {
	char, _ := utf8.DecodeRuneInString(text[pos:])
	return &VersionError{Kind: kind, Input: text, Field: field, Position: pos, Char: char}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// IncrementMajor returns (major+1).0.0.
func (v Version) IncrementMajor() (Version, error) {
	if v.Major == math.MaxUint16 {
		return v, fmt.Errorf("%w: %s", ErrVersionOverflow, FieldMajor)
	}
	return Version{Major: v.Major + 1}, nil
}

// IncrementMinor returns major.(minor+1).0.
func (v Version) IncrementMinor() (Version, error) {
	if v.Minor == math.MaxUint16 {
		return v, fmt.Errorf("%w: %s", ErrVersionOverflow, FieldMinor)
	}
	return Version{Major: v.Major, Minor: v.Minor + 1}, nil
}

// IncrementPatch returns major.minor.(patch+1).
func (v Version) IncrementPatch() (Version, error) {
	if v.Patch == math.MaxUint16 {
		return v, fmt.Errorf("%w: %s", ErrVersionOverflow, FieldPatch)
	}
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
}

// Compare returns -1, 0 or +1 ordering by major, then minor, then patch.
func (v Version) Compare(other Version) int {
	for _, pair := range [3][2]uint16{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	} {
		if pair[0] < pair[1] {
			return -1
		}
		if pair[0] > pair[1] {
			return 1
		}
	}
	return 0
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MarshalText renders the canonical form so Version can sit in JSON and YAML documents.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText parses with the same strict grammar as ParseVersion.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
