package commands

import (
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// Rewrite is the interface for the manifest constraint rewriter.
type Rewrite interface {
	Execute(policy *entities.VersionPolicy, opts RewriteOptions) error
	UpdateManifest(policy *entities.VersionPolicy, path string, opts RewriteOptions) (bool, error)
}

// RewriteOptions holds runtime options for a constraint-rewrite run.
type RewriteOptions struct {
	RepoDir string
	Commit  bool   // write + commit; false means dry run
	Until   string // stop before this repository directory name
}

// RewriteCommand reconciles each manifest's declared dependency ranges
// against the version policy: minimum bounds only ever move up, maximum
// bounds must equal the shared ceiling, and linked packages pin each other
// by release train instead of open ranges.
type RewriteCommand struct {
	gits      repositories.GitSource
	manifests repositories.ManifestRepository
}

// NewRewriteCommand creates a RewriteCommand.
func NewRewriteCommand(
	gits repositories.GitSource,
	manifests repositories.ManifestRepository,
) *RewriteCommand {
	return &RewriteCommand{gits: gits, manifests: manifests}
}

// Execute rewrites every managed repository's manifest in list order,
// stopping before opts.Until when set. The first failing manifest aborts
// the run.
func (it *RewriteCommand) Execute(policy *entities.VersionPolicy, opts RewriteOptions) error {
	for _, repoURL := range policy.Repos {
		dirName := repoDirName(repoURL)
		if dirName == opts.Until {
			break
		}

		path := filepath.Join(opts.RepoDir, dirName, entities.ManifestFileName)
		if _, err := it.UpdateManifest(policy, path, opts); err != nil {
			return err
		}
	}
	return nil
}

// UpdateManifest rewrites one manifest. It returns true when any change
// was needed. In commit mode it refuses to touch a manifest that already
// has uncommitted edits, writes the minimal textual changes, and commits
// with one sorted bullet per change.
func (it *RewriteCommand) UpdateManifest(
	policy *entities.VersionPolicy,
	path string,
	opts RewriteOptions,
) (bool, error) {
	manifest, err := it.manifests.Load(path)
	if err != nil {
		return false, err
	}

	if opts.Commit {
		logger.Infof("Updating %s (%s)", manifest.Name, path)
	} else {
		logger.Infof("Checking %s (%s)", manifest.Name, path)
	}

	changes := entities.NewCommitChangeSet()
	var edits []entities.ManifestEdit

	groups := []struct {
		label string
		reqs  []string
	}{
		{entities.GroupBuildRequires, manifest.BuildRequires},
		{entities.GroupDependencies, manifest.Dependencies},
	}
	for _, group := range groups {
		groupEdits, rewriteErr := rewriteRequirementGroup(
			policy, manifest.Name, group.label, group.reqs, changes,
		)
		if rewriteErr != nil {
			return false, fmt.Errorf("%s: %w", manifest.Name, rewriteErr)
		}
		edits = append(edits, groupEdits...)
	}

	if policy.InBinaryGroup(manifest.Name) {
		edits = append(edits, correctNativeLibs(policy, manifest, changes)...)
	}

	if changes.Empty() {
		logger.Info("* no changes needed")
		return false, nil
	}

	if !opts.Commit {
		return true, nil
	}

	repo, openErr := it.gits.Open(filepath.Dir(path))
	if openErr != nil {
		return false, openErr
	}

	relPath := filepath.Base(path)
	dirty, dirtyErr := repo.IsDirty(relPath)
	if dirtyErr != nil {
		return false, dirtyErr
	}
	if dirty {
		return false, fmt.Errorf("%s has outstanding edits, refusing to write", path)
	}

	if saveErr := it.manifests.Save(manifest, edits); saveErr != nil {
		return false, saveErr
	}
	if commitErr := repo.Commit(relPath, changes.Message()); commitErr != nil {
		return false, commitErr
	}

	return true, nil
}

// rewriteRequirementGroup applies the per-requirement policy rules to one
// requirement list, logging a "* group:" block when anything changed.
func rewriteRequirementGroup(
	policy *entities.VersionPolicy,
	owner, label string,
	reqs []string,
	changes *entities.CommitChangeSet,
) ([]entities.ManifestEdit, error) {
	var edits []entities.ManifestEdit
	var display []string

	for _, raw := range reqs {
		req, err := entities.ParseRequirement(raw)
		if err != nil {
			return nil, err
		}

		changed, err := rewriteRequirement(policy, owner, req, changes)
		if err != nil {
			return nil, err
		}
		if !changed {
			continue
		}

		rewritten := req.String()
		display = append(display, fmt.Sprintf("%s -> %s", raw, rewritten))
		edits = append(edits, entities.ManifestEdit{
			Kind: entities.EditRequirement,
			Old:  raw,
			New:  rewritten,
		})
	}

	if len(display) > 0 {
		logger.Infof("* %s:", label)
		for _, line := range display {
			logger.Infof("  - %s", line)
		}
	}

	return edits, nil
}

// rewriteRequirement mutates req in place to satisfy policy, recording
// change entries. It reports whether anything changed. Requirements whose
// name is not policy-managed pass through untouched.
func rewriteRequirement(
	policy *entities.VersionPolicy,
	owner string,
	req *entities.DependencyRequirement,
	changes *entities.CommitChangeSet,
) (bool, error) {
	if policy.IsLinked(owner) && policy.IsLinked(req.Name) {
		return rewriteLinkedRequirement(policy, owner, req, changes), nil
	}

	minimum := policy.MinimumFor(req.Name)
	if minimum == nil {
		return false, nil // not a managed dependency
	}
	return rewriteRangedRequirement(policy, req, minimum, changes)
}

// rewriteLinkedRequirement handles the linked-on-linked case: open min/max
// bounds are removed and a single approximate pin tracking the depending
// package's release train is required.
func rewriteLinkedRequirement(
	policy *entities.VersionPolicy,
	owner string,
	req *entities.DependencyRequirement,
	changes *entities.CommitChangeSet,
) bool {
	train := policy.TargetFor(owner).ReleaseTrain()

	changed := false
	hasPin := false
	kept := req.Specs[:0]

	for _, spec := range req.Specs {
		switch spec.Op {
		case entities.OpMinimum, entities.OpMaximum:
			// Linked packages do not use open ranges on each other.
			changed = true
		case entities.OpCompatible:
			if spec.Version != train {
				spec.Version = train
				changed = true
			}
			hasPin = true
			kept = append(kept, spec)
		default:
			kept = append(kept, spec)
		}
	}

	if !hasPin {
		kept = append(kept, entities.Specifier{Op: entities.OpCompatible, Version: train})
		changed = true
	}
	req.Specs = kept

	if changed {
		changes.Add(fmt.Sprintf("%s ~= %s", req.Name, train))
	}
	return changed
}

// rewriteRangedRequirement handles the ordinary case: exactly one minimum
// and one maximum clause are required, the minimum is a monotonic floor,
// and the maximum must literally equal the shared ceiling.
func rewriteRangedRequirement(
	policy *entities.VersionPolicy,
	req *entities.DependencyRequirement,
	minimum *entities.Version,
	changes *entities.CommitChangeSet,
) (bool, error) {
	hasMin := false
	hasMax := false
	changed := false

	for i, spec := range req.Specs {
		switch spec.Op {
		case entities.OpMinimum:
			declared, err := entities.ParseVersion(spec.Version)
			if err != nil {
				return false, fmt.Errorf("%s: %w", req.Raw, err)
			}
			if declared.LessThan(minimum) {
				req.Specs[i].Version = minimum.String()
				changes.Add(fmt.Sprintf("%s >= %s", req.Name, minimum))
				changed = true
			}
			hasMin = true

		case entities.OpMaximum:
			declared, err := entities.ParseVersion(spec.Version)
			if err != nil {
				return false, fmt.Errorf("%s: %w", req.Raw, err)
			}
			// Never silently fixed: a stray ceiling means the policy and
			// the manifest disagree about the supported range.
			if !declared.Equal(policy.MaxCeiling()) {
				return false, fmt.Errorf(
					"%s: max version (%s) != %s", req.Raw, declared, policy.MaxCeiling(),
				)
			}
			hasMax = true
		}
	}

	if !hasMin || !hasMax {
		return false, fmt.Errorf(
			"malformed requirement %q (has min=%t, has max=%t)", req.Raw, hasMin, hasMax,
		)
	}

	return changed, nil
}

// correctNativeLibs walks the manifest's native-library-download
// descriptors and corrects version and URL to the policy's binary
// distribution, skipping exempted descriptors.
func correctNativeLibs(
	policy *entities.VersionPolicy,
	manifest *entities.Manifest,
	changes *entities.CommitChangeSet,
) []entities.ManifestEdit {
	var edits []entities.ManifestEdit

	for _, lib := range manifest.NativeLibs {
		if lib.Exempt || policy.BinaryExempt(lib.Key) {
			continue
		}

		if lib.Version != policy.BinaryVersion() {
			logger.Infof("* %s native lib version: %s -> %s", lib.Key, lib.Version, policy.BinaryVersion())
			changes.Add(fmt.Sprintf("native libs updated to %s", policy.BinaryVersion()))
			edits = append(edits, entities.ManifestEdit{
				Kind:   entities.EditLibField,
				LibKey: lib.Key,
				Field:  "version",
				Old:    lib.Version,
				New:    policy.BinaryVersion(),
			})
		}

		if policy.BinaryURL() != "" && lib.RepoURL != policy.BinaryURL() {
			logger.Infof("* %s native lib URL: %s -> %s", lib.Key, lib.RepoURL, policy.BinaryURL())
			changes.Add(fmt.Sprintf("native lib URL updated to %s", policy.BinaryURL()))
			edits = append(edits, entities.ManifestEdit{
				Kind:   entities.EditLibField,
				LibKey: lib.Key,
				Field:  "repo_url",
				Old:    lib.RepoURL,
				New:    policy.BinaryURL(),
			})
		}
	}

	return edits
}
