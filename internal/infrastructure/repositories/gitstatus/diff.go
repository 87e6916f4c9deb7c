package gitstatus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
)

// binaryProbeSize is how many leading bytes are inspected for NUL bytes.
const binaryProbeSize = 8000

//nolint:gochecknoglobals // colour palette
var (
	fileHeaderColor = color.New(color.Bold)
	hunkHeaderColor = color.New(color.FgHiCyan)
	addedLineColor  = color.New(color.FgGreen)
	removedColor    = color.New(color.FgRed)
)

// Diff writes the changes below scope as a coloured unified diff. In index
// mode HEAD is compared with the staged content, in worktree mode with the
// files on disk.
func (r *StatusRepository) Diff(ctx context.Context, scope string, out io.Writer) error {
	records, err := r.Statuses(ctx, scope)
	if err != nil {
		return err
	}

	tree, err := r.headTree()
	if err != nil {
		return err
	}

	for _, record := range records {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		oldContent, err := r.headContent(tree, record.Path)
		if err != nil {
			return err
		}
		newContent, err := r.currentContent(record)
		if err != nil {
			return err
		}

		if err := renderFileDiff(out, record.Path, oldContent, newContent); err != nil {
			return err
		}
	}
	return nil
}

func (r *StatusRepository) headContent(tree *object.Tree, path string) ([]byte, error) {
	if tree == nil {
		return nil, nil
	}
	file, err := tree.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up %q in HEAD: %w", path, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to read %q from HEAD: %w", path, err)
	}
	return []byte(contents), nil
}

func (r *StatusRepository) currentContent(record entities.ChangeRecord) ([]byte, error) {
	if record.Status == entities.StatusDeleted {
		return nil, nil
	}
	if r.source == entities.StatusSourceWorktree {
		data, err := util.ReadFile(r.worktree.Filesystem, record.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q from working tree: %w", record.Path, err)
		}
		return data, nil
	}
	return r.indexContent(record.Path)
}

func (r *StatusRepository) indexContent(path string) ([]byte, error) {
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	entry, err := idx.Entry(path)
	if err != nil {
		if errors.Is(err, index.ErrEntryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up %q in index: %w", path, err)
	}

	blob, err := r.repo.BlobObject(entry.Hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load staged %q: %w", path, err)
	}
	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to open staged %q: %w", path, err)
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

func renderFileDiff(out io.Writer, path string, oldContent, newContent []byte) error {
	if isBinary(oldContent) || isBinary(newContent) {
		if _, err := fileHeaderColor.Fprintf(out, "--- a/%s\n+++ b/%s\n", path, path); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out, "Binary files differ")
		return err
	}

	diff := udiff.Unified("a/"+path, "b/"+path, string(oldContent), string(newContent))
	if diff == "" {
		return nil
	}

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		if err := renderLine(out, line); err != nil {
			return err
		}
	}
	return nil
}

func renderLine(out io.Writer, line string) error {
	var err error
	switch {
	case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
		_, err = fileHeaderColor.Fprint(out, line)
	case strings.HasPrefix(line, "@@"):
		ranges, trailer := splitHunkHeader(line)
		if trailer == "" {
			_, err = fmt.Fprintln(out, hunkHeaderColor.Sprint(ranges))
		} else {
			_, err = fmt.Fprintf(out, "%s %s\n", hunkHeaderColor.Sprint(ranges), trailer)
		}
	case strings.HasPrefix(line, "+"):
		_, err = addedLineColor.Fprint(out, line)
	case strings.HasPrefix(line, "-"):
		_, err = removedColor.Fprint(out, line)
	default:
		_, err = fmt.Fprint(out, line)
	}
	return err
}

// splitHunkHeader separates "@@ -1,2 +1,3 @@ func x()" into the range part and the trailing context.
func splitHunkHeader(header string) (string, string) {
	header = strings.TrimRight(header, "\n")
	end := strings.Index(header[2:], "@@")
	if end < 0 {
		return header, ""
	}
	end += 4
	return strings.TrimSpace(header[:end]), strings.TrimSpace(header[end:])
}

func isBinary(content []byte) bool {
	probe := content
	if len(probe) > binaryProbeSize {
		probe = probe[:binaryProbeSize]
	}
	return bytes.IndexByte(probe, 0) >= 0
}
