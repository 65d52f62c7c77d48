package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/mass-publish/masspub/internal/domain/entities"
	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// Release is the interface for the release orchestrator.
type Release interface {
	Execute(ctx context.Context, policy *entities.VersionPolicy, opts ReleaseOptions) error
}

// ReleaseOptions holds runtime options for one orchestrated run.
type ReleaseOptions struct {
	RepoDir string
	DoIt    bool   // authorize execution; false means dry run
	Until   string // stop planning before this repository directory name
}

// plannedRelease pairs a release task with the live repository handle the
// planning pass opened for it.
type plannedRelease struct {
	entities.ReleaseTask
	repo repositories.GitRepository
}

// ReleaseCommand drives multi-repository publishing: a read-only planning
// pass over the configured repositories in list order, a decision gate,
// and an execution pass that tags, pushes, and waits for index visibility
// before advancing to the next repository.
//
// Repository list order is a correctness precondition: packages must be
// configured in dependency order because each one may only build on the
// index once its dependencies are visible there.
type ReleaseCommand struct {
	gits      repositories.GitSource
	manifests repositories.ManifestRepository
	poller    *IndexPoller
}

// NewReleaseCommand creates a ReleaseCommand.
func NewReleaseCommand(
	gits repositories.GitSource,
	manifests repositories.ManifestRepository,
	poller *IndexPoller,
) *ReleaseCommand {
	return &ReleaseCommand{gits: gits, manifests: manifests, poller: poller}
}

// Execute runs the full orchestration. Any planning-time violation aborts
// before a single mutation; any execution-time failure stops the run where
// it stands.
func (it *ReleaseCommand) Execute(
	ctx context.Context,
	policy *entities.VersionPolicy,
	opts ReleaseOptions,
) error {
	start := time.Now()

	tasks, err := it.plan(ctx, policy, opts)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		logger.Info("Nothing to do")
		return nil
	}

	if !opts.DoIt {
		names := make([]string, len(tasks))
		for i, task := range tasks {
			names[i] = task.Name
		}
		logger.Infof("Would: %s", strings.Join(names, ","))
		return nil
	}

	for _, task := range tasks {
		if execErr := it.executeTask(ctx, task); execErr != nil {
			return execErr
		}
	}

	logger.Infof("Finished in %.1f seconds", time.Since(start).Seconds())
	return nil
}

// plan is the read-only sanity-check pass. It derives (name, actual,
// desired) per repository and classifies each one, enqueueing a task for
// every repository with publishing work outstanding.
func (it *ReleaseCommand) plan(
	ctx context.Context,
	policy *entities.VersionPolicy,
	opts ReleaseOptions,
) ([]plannedRelease, error) {
	var tasks []plannedRelease

	for _, repoURL := range policy.Repos {
		dirName := repoDirName(repoURL)
		if dirName == opts.Until {
			break
		}

		task, err := it.planRepo(ctx, policy, filepath.Join(opts.RepoDir, dirName), opts.DoIt)
		if err != nil {
			return nil, err
		}
		if task != nil {
			tasks = append(tasks, *task)
		}
	}

	return tasks, nil
}

// planRepo classifies one repository. A nil task means nothing to do for
// this repository.
func (it *ReleaseCommand) planRepo(
	ctx context.Context,
	policy *entities.VersionPolicy,
	path string,
	doit bool,
) (*plannedRelease, error) {
	repo, err := it.gits.Open(path)
	if err != nil {
		return nil, err
	}

	manifest, err := it.manifests.Load(filepath.Join(path, entities.ManifestFileName))
	if err != nil {
		return nil, err
	}
	state := entities.RepoState{Name: manifest.Name}
	name := state.Name

	desired := policy.TargetFor(name)
	if desired == nil {
		return nil, fmt.Errorf("%s: no target version in policy", name)
	}

	state.LastTag, err = repo.LastTag()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	actual, err := entities.ParseVersion(state.LastTag)
	if err != nil {
		return nil, fmt.Errorf("%s: last tag: %w", name, err)
	}

	task := &plannedRelease{
		ReleaseTask: entities.ReleaseTask{
			Name:    name,
			Path:    path,
			Actual:  actual,
			Desired: desired,
		},
		repo: repo,
	}

	if actual.Equal(desired) {
		// Believed released already. Confirm on the index; an unconfirmed
		// release means a previous run tagged but never finished
		// publishing, so enqueue it for recovery.
		if _, complete := it.poller.Check(ctx, name, desired.String()); complete {
			return nil, nil
		}
		logger.Infof("%s not on the index, will try again", name)
		return task, nil
	}

	if actual.GreaterThan(desired) {
		// The policy regressed relative to what is already released.
		// Never auto-corrected; abort the whole run.
		return nil, fmt.Errorf(
			"%s: desired version (%s) < actual (%s)", name, desired, actual,
		)
	}

	verb := "Would"
	if doit {
		verb = "Will"
	}
	logger.Infof("%s upgrade %s: %s -> %s", verb, name, actual, desired)

	state.Dirty, err = repo.IsDirty(".")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if state.Dirty {
		return nil, fmt.Errorf("%s: repo has outstanding changes", name)
	}

	state.Branch, err = repo.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if state.Branch != policy.ReleaseBranch {
		return nil, fmt.Errorf(
			"%s: branch is not %q, is %q", name, policy.ReleaseBranch, state.Branch,
		)
	}

	return task, nil
}

// executeTask tags (unless recovering an incomplete previous publish),
// pushes branch and tag, and blocks until the index confirms the release.
func (it *ReleaseCommand) executeTask(ctx context.Context, task plannedRelease) error {
	tag := task.Desired.String()

	tagged := false
	if !task.Actual.Equal(task.Desired) {
		logger.Infof("Updating %s to %s", task.Name, tag)
		if err := task.repo.CreateTag(tag); err != nil {
			return fmt.Errorf("%s: create tag %s: %w", task.Name, tag, err)
		}
		tagged = true
	} else {
		logger.Infof("Processing %s %s", task.Name, tag)
	}

	if err := task.repo.Push(ctx); err != nil {
		return pushFailure(task.Name, tag, tagged, "push branch", err)
	}
	if err := task.repo.PushTag(ctx, tag); err != nil {
		return pushFailure(task.Name, tag, tagged, "push tag", err)
	}

	if _, complete := it.poller.Check(ctx, task.Name, tag); !complete {
		if err := it.poller.Wait(ctx, task.Name, tag); err != nil {
			return err
		}
	}

	return nil
}

// pushFailure builds the fatal push error. A tag created by this run is
// not rolled back; the operator must remove it before rerunning.
func pushFailure(name, tag string, tagged bool, op string, err error) error {
	if tagged {
		return fmt.Errorf(
			"%s: %s failed: %w (tag %s was created and NOT rolled back; delete it manually before rerunning)",
			name, op, err, tag,
		)
	}
	return fmt.Errorf("%s: %s failed: %w", name, op, err)
}

// repoDirName derives the local checkout directory name from a repo URL.
func repoDirName(repoURL string) string {
	trimmed := strings.TrimSuffix(repoURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
