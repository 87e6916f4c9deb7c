// Package fileio holds the small file helpers shared by the file-backed repositories.
package fileio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const defaultFileMode fs.FileMode = 0o644

//nolint:gochecknoglobals // byte order mark constant
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Content is decoded file text together with whether the file started with
// a UTF-8 byte order mark.
type Content struct {
	Data []byte
	BOM  bool
}

// WithData returns a copy of c holding data, keeping the BOM marker.
func (c Content) WithData(data []byte) Content {
	return Content{Data: data, BOM: c.BOM}
}

// ReadFile reads a whole file as UTF-8. A leading UTF-8 byte order mark is
// removed from Data and remembered in BOM. UTF-16 content announced by its BOM
// is converted to UTF-8 and is written back as plain UTF-8.
func ReadFile(path string) (Content, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Content{}, err
	}

	data, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return Content{}, fmt.Errorf("failed to decode %q: %w", path, err)
	}
	return Content{Data: data, BOM: bytes.HasPrefix(raw, utf8BOM)}, nil
}

// WriteFile replaces the contents of path, keeping the mode of an existing
// file and prefixing the UTF-8 BOM when content.BOM is set. The buffered
// writer is flushed and the file closed on every path.
func WriteFile(path string, content Content) (err error) {
	mode := defaultFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to open %q for writing: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	writer := bufio.NewWriter(file)
	if content.BOM {
		if _, err = writer.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write %q: %w", path, err)
		}
	}
	if _, err = writer.Write(content.Data); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	if err = writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %q: %w", path, err)
	}
	return nil
}
