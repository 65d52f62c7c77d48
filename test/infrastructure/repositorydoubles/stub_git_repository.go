//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies)
// for the capability interfaces. These are hand-crafted implementations —
// no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// SpyGitRepository implements repositories.GitRepository as a configurable
// spy over one fake working tree.
type SpyGitRepository struct {
	// --- observed state ---
	RepoPath string
	Branch   string
	Tag      string
	Dirty    bool

	// --- failure injection ---
	LastTagErr error
	PushErr    error
	PushTagErr error
	TagErr     error
	CommitErr  error

	// --- recorded calls ---
	CreatedTags []string
	Pushes      int
	PushedTags  []string
	Commits     []CommitCall
	Checkouts   []string
	Pulls       int
	Resets      []string
	DirtyChecks []string
}

// CommitCall records one Commit invocation.
type CommitCall struct {
	RelPath string
	Message string
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (s *SpyGitRepository) Path() string { return s.RepoPath }

func (s *SpyGitRepository) CurrentBranch() (string, error) { return s.Branch, nil }

func (s *SpyGitRepository) LastTag() (string, error) {
	if s.LastTagErr != nil {
		return "", s.LastTagErr
	}
	return s.Tag, nil
}

func (s *SpyGitRepository) IsDirty(relPath string) (bool, error) {
	s.DirtyChecks = append(s.DirtyChecks, relPath)
	return s.Dirty, nil
}

func (s *SpyGitRepository) Checkout(branch string) error {
	s.Checkouts = append(s.Checkouts, branch)
	return nil
}

func (s *SpyGitRepository) Pull(_ context.Context) error {
	s.Pulls++
	return nil
}

func (s *SpyGitRepository) Push(_ context.Context) error {
	if s.PushErr != nil {
		return s.PushErr
	}
	s.Pushes++
	return nil
}

func (s *SpyGitRepository) PushTag(_ context.Context, tag string) error {
	if s.PushTagErr != nil {
		return s.PushTagErr
	}
	s.PushedTags = append(s.PushedTags, tag)
	return nil
}

func (s *SpyGitRepository) CreateTag(tag string) error {
	if s.TagErr != nil {
		return s.TagErr
	}
	s.CreatedTags = append(s.CreatedTags, tag)
	return nil
}

func (s *SpyGitRepository) Commit(relPath, message string) error {
	if s.CommitErr != nil {
		return s.CommitErr
	}
	s.Commits = append(s.Commits, CommitCall{RelPath: relPath, Message: message})
	return nil
}

func (s *SpyGitRepository) ResetHard(branch string) error {
	s.Resets = append(s.Resets, branch)
	return nil
}

// SpyGitSource implements repositories.GitSource over a fixed set of spy
// repositories keyed by path.
type SpyGitSource struct {
	Repos  map[string]*SpyGitRepository
	Clones []string
}

var _ repositories.GitSource = (*SpyGitSource)(nil)

func (s *SpyGitSource) Open(path string) (repositories.GitRepository, error) {
	if repo, ok := s.Repos[path]; ok {
		return repo, nil
	}
	return nil, fmt.Errorf("no repository at %s", path)
}

func (s *SpyGitSource) Clone(_ context.Context, url, _ string) error {
	s.Clones = append(s.Clones, url)
	return nil
}
