package gitstatus

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgbump/internal/domain/entities"
	"github.com/rios0rios0/pkgbump/internal/domain/repositories"
)

// ErrBareRepository is returned when the repository has no working tree.
var ErrBareRepository = errors.New("bare repositories are not supported")

// StatusRepository reports changes of a local Git repository via go-git.
type StatusRepository struct {
	repo     *git.Repository
	worktree *git.Worktree
	workdir  string
	source   entities.StatusSource
}

var _ repositories.StatusRepository = (*StatusRepository)(nil)

// Open opens the Git repository containing repositoryPath. It satisfies
// repositories.StatusRepositoryOpener.
func Open(repositoryPath string, source entities.StatusSource) (repositories.StatusRepository, error) {
	return OpenRepository(repositoryPath, source)
}

// OpenRepository is like Open but returns the concrete type.
func OpenRepository(repositoryPath string, source entities.StatusSource) (*StatusRepository, error) {
	//nolint:exhaustruct // only DetectDotGit is relevant
	repo, err := git.PlainOpenWithOptions(repositoryPath, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		// A bare repository is only recognized when opened at its own directory
		if bare, bareErr := git.PlainOpen(repositoryPath); bareErr == nil {
			repo, err = bare, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %q: %w", repositoryPath, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, fmt.Errorf("%q: %w", repositoryPath, ErrBareRepository)
		}
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	workdir := worktree.Filesystem.Root()
	if resolved, evalErr := filepath.EvalSymlinks(workdir); evalErr == nil {
		workdir = resolved
	}

	if source == "" {
		source = entities.StatusSourceIndex
	}

	return &StatusRepository{
		repo:     repo,
		worktree: worktree,
		workdir:  workdir,
		source:   source,
	}, nil
}

// Workdir returns the absolute working directory of the repository.
func (r *StatusRepository) Workdir() string {
	return r.workdir
}

// Statuses returns the changes below scope ordered by path.
func (r *StatusRepository) Statuses(ctx context.Context, scope string) ([]entities.ChangeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status, err := r.worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read repository status: %w", err)
	}

	scope = normalizeScope(scope)
	records := make([]entities.ChangeRecord, 0, len(status))
	for path, fileStatus := range status {
		if !inScope(path, scope) {
			continue
		}
		changeStatus, ok := r.classify(fileStatus)
		if !ok {
			continue
		}
		records = append(records, entities.ChangeRecord{Path: path, Status: changeStatus})
	}

	slices.SortFunc(records, func(a, b entities.ChangeRecord) int {
		return strings.Compare(a.Path, b.Path)
	})
	logger.Debugf("Found %d changed path(s) below %q", len(records), scope)

	return records, nil
}

// classify maps the go-git status codes to a ChangeStatus. Deletion wins over
// every other code so that a manifest missing from either side is reported as deleted.
func (r *StatusRepository) classify(fileStatus *git.FileStatus) (entities.ChangeStatus, bool) {
	codes := []git.StatusCode{fileStatus.Staging}
	if r.source == entities.StatusSourceWorktree {
		codes = append(codes, fileStatus.Worktree)
	}

	switch {
	case slices.Contains(codes, git.Deleted):
		return entities.StatusDeleted, true
	case slices.Contains(codes, git.Added), slices.Contains(codes, git.Copied):
		return entities.StatusNew, true
	case r.source == entities.StatusSourceWorktree && slices.Contains(codes, git.Untracked):
		return entities.StatusNew, true
	case slices.Contains(codes, git.Modified):
		return entities.StatusModified, true
	case slices.Contains(codes, git.Renamed):
		return entities.StatusRenamed, true
	case slices.Contains(codes, git.UpdatedButUnmerged):
		return entities.StatusUnknown, true
	default:
		return "", false
	}
}

// headTree returns the tree of the HEAD commit, or nil for an unborn branch.
func (r *StatusRepository) headTree() (*object.Tree, error) {
	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to load HEAD commit: %w", err)
	}
	return commit.Tree()
}

func normalizeScope(scope string) string {
	scope = strings.Trim(filepath.ToSlash(scope), "/")
	if scope == "." {
		return ""
	}
	return scope
}

func inScope(path, scope string) bool {
	return scope == "" || path == scope || strings.HasPrefix(path, scope+"/")
}
