package repositories

import "context"

// GitRepository is the source-control capability over one working tree.
// Implementations may shell out, bind a library, or speak the wire
// protocol; the core assumes only that each call is blocking and that a
// failed primitive returns a hard error.
type GitRepository interface {
	// Path returns the working tree location.
	Path() string

	// CurrentBranch returns the checked-out branch name.
	CurrentBranch() (string, error)

	// LastTag returns the most recent tag reachable from HEAD.
	LastTag() (string, error)

	// IsDirty reports whether the given path (relative to the tree root,
	// "." for the whole tree) has uncommitted changes.
	IsDirty(relPath string) (bool, error)

	// Checkout switches the working tree to the given branch.
	Checkout(branch string) error

	// Pull fast-forwards the current branch from its remote.
	Pull(ctx context.Context) error

	// Push pushes the current branch to origin.
	Push(ctx context.Context) error

	// PushTag pushes a single tag to origin.
	PushTag(ctx context.Context, tag string) error

	// CreateTag creates a lightweight tag on the current commit.
	CreateTag(tag string) error

	// Commit stages the given relative path and commits it with message.
	Commit(relPath, message string) error

	// ResetHard discards local state, resetting to origin/<branch>.
	ResetHard(branch string) error
}

// GitSource opens and clones working trees.
type GitSource interface {
	// Open returns a handle over an existing working tree.
	Open(path string) (GitRepository, error)

	// Clone clones url into path.
	Clone(ctx context.Context, url, path string) error
}
