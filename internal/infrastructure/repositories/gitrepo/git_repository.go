// Package gitrepo implements the source-control capability with go-git.
// Every primitive maps to one porcelain operation; failures surface as
// hard errors for the caller to treat as fatal.
package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/mass-publish/masspub/internal/domain/repositories"
)

const remoteName = "origin"

// Source opens and clones working trees.
type Source struct{}

// NewSource creates a Source.
func NewSource() *Source {
	return &Source{}
}

var _ repositories.GitSource = (*Source)(nil)

// Open returns a handle over an existing working tree.
func (s *Source) Open(path string) (repositories.GitRepository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	return &Repository{path: path, repo: repo}, nil
}

// Clone clones url into path.
func (s *Source) Clone(ctx context.Context, url, path string) error {
	_, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL: url,
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}

// Repository implements repositories.GitRepository over one working tree.
type Repository struct {
	path string
	repo *git.Repository
}

var _ repositories.GitRepository = (*Repository)(nil)

// Path returns the working tree location.
func (r *Repository) Path() string { return r.path }

// CurrentBranch returns the checked-out branch name.
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("%s: resolve HEAD: %w", r.path, err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("%s: HEAD is detached", r.path)
	}
	return head.Name().Short(), nil
}

// LastTag returns the most recent tag reachable from HEAD, walking history
// from HEAD until a tagged commit is found.
func (r *Repository) LastTag() (string, error) {
	tagged, err := r.taggedCommits()
	if err != nil {
		return "", err
	}

	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("%s: resolve HEAD: %w", r.path, err)
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return "", fmt.Errorf("%s: walk history: %w", r.path, err)
	}
	defer iter.Close()

	for {
		commit, iterErr := iter.Next()
		if iterErr != nil {
			break
		}
		if tag, ok := tagged[commit.Hash]; ok {
			return tag, nil
		}
	}

	return "", fmt.Errorf("%s: no tag reachable from HEAD", r.path)
}

// taggedCommits maps commit hashes to tag names, peeling annotated tags to
// their target commits.
func (r *Repository) taggedCommits() (map[plumbing.Hash]string, error) {
	tags, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("%s: list tags: %w", r.path, err)
	}
	defer tags.Close()

	tagged := make(map[plumbing.Hash]string)
	for {
		ref, iterErr := tags.Next()
		if iterErr != nil {
			break
		}

		hash := ref.Hash()
		if tagObj, tagErr := r.repo.TagObject(hash); tagErr == nil {
			hash = tagObj.Target
		}
		tagged[hash] = ref.Name().Short()
	}

	return tagged, nil
}

// IsDirty reports whether relPath ("." for the whole tree) has uncommitted
// changes.
func (r *Repository) IsDirty(relPath string) (bool, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("%s: worktree: %w", r.path, err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("%s: status: %w", r.path, err)
	}

	if relPath == "." || relPath == "" {
		return !status.IsClean(), nil
	}

	prefix := strings.TrimSuffix(relPath, "/")
	for file, st := range status {
		if file != prefix && !strings.HasPrefix(file, prefix+"/") {
			continue
		}
		if st.Worktree != git.Unmodified || st.Staging != git.Unmodified {
			return true, nil
		}
	}
	return false, nil
}

// Checkout switches the working tree to the given branch.
func (r *Repository) Checkout(branch string) error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("%s: worktree: %w", r.path, err)
	}

	err = worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
	})
	if err != nil {
		return fmt.Errorf("%s: checkout %s: %w", r.path, branch, err)
	}
	return nil
}

// Pull fast-forwards the current branch from origin.
func (r *Repository) Pull(ctx context.Context) error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("%s: worktree: %w", r.path, err)
	}

	err = worktree.PullContext(ctx, &git.PullOptions{RemoteName: remoteName})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: pull: %w", r.path, err)
	}
	return nil
}

// Push pushes the current branch to origin.
func (r *Repository) Push(ctx context.Context) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{RemoteName: remoteName})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: push: %w", r.path, err)
	}
	return nil
}

// PushTag pushes a single tag to origin.
func (r *Repository) PushTag(ctx context.Context, tag string) error {
	refSpec := config.RefSpec(
		fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag, tag),
	)
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{refSpec},
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: push tag %s: %w", r.path, tag, err)
	}
	return nil
}

// CreateTag creates a lightweight tag on the current commit.
func (r *Repository) CreateTag(tag string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("%s: resolve HEAD: %w", r.path, err)
	}
	if _, err := r.repo.CreateTag(tag, head.Hash(), nil); err != nil {
		return fmt.Errorf("%s: create tag %s: %w", r.path, tag, err)
	}
	return nil
}

// Commit stages relPath and commits it with message.
func (r *Repository) Commit(relPath, message string) error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("%s: worktree: %w", r.path, err)
	}

	if _, err := worktree.Add(relPath); err != nil {
		return fmt.Errorf("%s: stage %s: %w", r.path, relPath, err)
	}
	if _, err := worktree.Commit(message, &git.CommitOptions{}); err != nil {
		return fmt.Errorf("%s: commit: %w", r.path, err)
	}
	return nil
}

// ResetHard discards local state, resetting to origin/<branch>.
func (r *Repository) ResetHard(branch string) error {
	ref, err := r.repo.Reference(
		plumbing.NewRemoteReferenceName(remoteName, branch), true,
	)
	if err != nil {
		return fmt.Errorf("%s: resolve %s/%s: %w", r.path, remoteName, branch, err)
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("%s: worktree: %w", r.path, err)
	}

	err = worktree.Reset(&git.ResetOptions{
		Mode:   git.HardReset,
		Commit: ref.Hash(),
	})
	if err != nil {
		return fmt.Errorf("%s: reset --hard %s/%s: %w", r.path, remoteName, branch, err)
	}
	return nil
}
