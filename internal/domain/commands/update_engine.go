package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
	"github.com/rios0rios0/pkgbump/internal/domain/repositories"
)

// maxInputLineSize caps a single line typed at a prompt.
const maxInputLineSize = 1 << 20

// ErrInputClosed is returned when input ends while a change message is still required.
var ErrInputClosed = errors.New("input closed before a change message was entered")

//nolint:gochecknoglobals // colour palette
var (
	packageColor = color.New(color.Bold)
	noticeColor  = color.New(color.FgYellow)
	statusColors = map[entities.ChangeStatus]*color.Color{
		entities.StatusNew:        color.New(color.FgGreen),
		entities.StatusModified:   color.New(color.FgYellow),
		entities.StatusDeleted:    color.New(color.FgRed),
		entities.StatusRenamed:    color.New(color.FgCyan),
		entities.StatusTypeChange: color.New(color.FgMagenta),
	}
)

// BumpResult records one version bump applied (or planned in dry-run mode).
type BumpResult struct {
	Name     string
	Previous entities.Version
	Next     entities.Version
	Messages []string
}

// EngineResult summarizes a run of the interactive loop.
type EngineResult struct {
	Bumped  []BumpResult
	Skipped []string
	Quit    bool
}

// Engine walks the changed packages one at a time and applies the command
// typed for each of them. The only state is the cursor into the package list.
type Engine struct {
	manifests  repositories.ManifestRepository
	changelogs repositories.ChangelogRepository
	status     repositories.StatusRepository
	settings   *entities.Settings
	opts       entities.UpdateOptions
	input      *bufio.Scanner
	out        io.Writer
}

// NewEngine creates an Engine reading commands from in and writing prompts to out.
func NewEngine(
	manifests repositories.ManifestRepository,
	changelogs repositories.ChangelogRepository,
	status repositories.StatusRepository,
	settings *entities.Settings,
	opts entities.UpdateOptions,
	in io.Reader,
	out io.Writer,
) *Engine {
	input := bufio.NewScanner(in)
	input.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxInputLineSize)

	return &Engine{
		manifests:  manifests,
		changelogs: changelogs,
		status:     status,
		settings:   settings,
		opts:       opts,
		input:      input,
		out:        out,
	}
}

// Run processes packages in order until all are handled or the user quits.
// A failed changelog or manifest write aborts the whole run; bumps applied to
// earlier packages stay applied.
func (it *Engine) Run(ctx context.Context, packages []entities.TrackedPackage) (EngineResult, error) {
	var result EngineResult

	index := 0
	for index < len(packages) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		pkg := packages[index]
		it.display(pkg)

		line, ok := it.readLine(fmt.Sprintf("Bump %s [%s]? ", pkg.Name, entities.CommandKeys()))
		if !ok {
			logger.Debug("Input closed, stopping")
			result.Quit = true
			return result, it.input.Err()
		}

		kind := entities.ParseCommand(line)
		switch {
		case kind.IsUpdate():
			bump, bumped, err := it.update(pkg, kind)
			if err != nil {
				return result, err
			}
			if !bumped {
				continue
			}
			result.Bumped = append(result.Bumped, bump)
			index++
		case kind == entities.CommandSkip:
			result.Skipped = append(result.Skipped, pkg.Name)
			index++
		case kind == entities.CommandDiff:
			if err := it.status.Diff(ctx, pkg.RelativePath, it.out); err != nil {
				logger.Warnf("Failed to render diff for %s: %v", pkg.Name, err)
			}
		case kind == entities.CommandQuit:
			result.Quit = true
			return result, nil
		case kind == entities.CommandHelp:
			it.printf("%s\n", entities.CommandLegend())
		}
	}

	return result, nil
}

// update bumps the package version. It returns false without error when the
// version cannot be incremented, so the same package is prompted again.
func (it *Engine) update(pkg entities.TrackedPackage, kind entities.CommandKind) (BumpResult, bool, error) {
	next, err := kind.Bump(pkg.Version)
	if err != nil {
		if errors.Is(err, entities.ErrVersionOverflow) {
			it.notice("Cannot bump %s %s: %v", pkg.Name, pkg.Version, err)
			return BumpResult{}, false, nil
		}
		return BumpResult{}, false, err
	}

	it.printf("%s -> %s\n", pkg.Version, next)
	messages, err := it.readMessages()
	if err != nil {
		return BumpResult{}, false, err
	}

	if applyErr := it.apply(pkg, next, messages); applyErr != nil {
		return BumpResult{}, false, applyErr
	}

	return BumpResult{Name: pkg.Name, Previous: pkg.Version, Next: next, Messages: messages}, true, nil
}

// readMessages collects change messages until an empty line follows at least
// one message. Lines are trimmed, so a line of only spaces counts as empty.
func (it *Engine) readMessages() ([]string, error) {
	var messages []string
	it.printf("Enter change messages, one per line; an empty line finishes.\n")
	for {
		line, ok := it.readLine("> ")
		if !ok {
			if err := it.input.Err(); err != nil {
				return nil, err
			}
			return nil, ErrInputClosed
		}

		message := strings.TrimSpace(line)
		if message != "" {
			messages = append(messages, message)
			continue
		}
		if len(messages) > 0 {
			return messages, nil
		}
		it.notice("A change message is required.")
	}
}

// apply writes the changelog entry first and the manifest version second.
func (it *Engine) apply(pkg entities.TrackedPackage, next entities.Version, messages []string) error {
	changelogPath := filepath.Join(pkg.Path, it.settings.ChangelogFilename)
	manifestPath := filepath.Join(pkg.Path, it.settings.ManifestFilename)

	if it.opts.DryRun {
		logger.Infof("[dry-run] Would append %d message(s) for %s to %s", len(messages), next, changelogPath)
		logger.Infof("[dry-run] Would set version of %s to %s in %s", pkg.Name, next, manifestPath)
		return nil
	}

	if err := it.changelogs.Append(changelogPath, next, messages, it.settings.Templates()); err != nil {
		return fmt.Errorf("failed to update changelog of %s: %w", pkg.Name, err)
	}
	if err := it.manifests.WriteVersion(manifestPath, next); err != nil {
		return fmt.Errorf("failed to update manifest of %s: %w", pkg.Name, err)
	}

	logger.Infof("Bumped %s from %s to %s", pkg.Name, pkg.Version, next)
	return nil
}

func (it *Engine) display(pkg entities.TrackedPackage) {
	it.printf("\n%s\n", packageColor.Sprintf("%s %s", pkg.Name, pkg.Version))
	for _, change := range pkg.Changes {
		label := string(change.Status)
		if c, ok := statusColors[change.Status]; ok {
			label = c.Sprint(label)
		}
		it.printf("  %s %s\n", label, change.Path)
	}
}

func (it *Engine) readLine(prompt string) (string, bool) {
	it.printf("%s", prompt)
	if !it.input.Scan() {
		return "", false
	}
	return strings.TrimRight(it.input.Text(), "\r"), true
}

func (it *Engine) notice(format string, args ...any) {
	it.printf("%s\n", noticeColor.Sprintf(format, args...))
}

func (it *Engine) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(it.out, format, args...)
}
