package entities

// RepoState holds the facts the planning pass observes about one managed
// repository.
type RepoState struct {
	Name    string // declared package name from the manifest
	Branch  string
	Dirty   bool
	LastTag string
}

// ReleaseTask is one unit of work produced by the orchestrator's planning
// pass: release package Name from the repository at Path, moving it from
// Actual to Desired. Tasks execute strictly in planning order because
// later packages may depend on earlier ones being published first.
//
// Actual == Desired marks a recovery task: the tag already exists but the
// release never finished propagating, so execution skips tag creation and
// goes straight to push + wait.
type ReleaseTask struct {
	Name    string
	Path    string
	Actual  *Version
	Desired *Version
}
