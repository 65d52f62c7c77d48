package entities

import (
	"sort"
	"strings"
)

// CommitChangeSet accumulates deduplicated, order-independent descriptions
// of the edits made to one manifest. An empty set means no write and no
// commit are needed.
type CommitChangeSet struct {
	entries map[string]bool
}

// NewCommitChangeSet returns an empty change set.
func NewCommitChangeSet() *CommitChangeSet {
	return &CommitChangeSet{entries: make(map[string]bool)}
}

// Add records one change description. Duplicates collapse.
func (c *CommitChangeSet) Add(entry string) {
	c.entries[entry] = true
}

// Empty reports whether no changes were recorded.
func (c *CommitChangeSet) Empty() bool { return len(c.entries) == 0 }

// Sorted returns all entries in lexical order.
func (c *CommitChangeSet) Sorted() []string {
	entries := make([]string, 0, len(c.entries))
	for entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Strings(entries)
	return entries
}

// Message composes the commit message: a fixed subject, then one bullet
// per change, sorted.
func (c *CommitChangeSet) Message() string {
	return "Updated dependencies\n\n- " + strings.Join(c.Sorted(), "\n- ")
}
