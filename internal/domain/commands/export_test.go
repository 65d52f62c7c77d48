package commands

import (
	"context"
	"time"
)

// SetSleep replaces the poller's sleep function for testing.
func (it *IndexPoller) SetSleep(fn func(ctx context.Context, d time.Duration) error) {
	it.sleep = fn
}

// RepoDirName exports repoDirName for testing.
var RepoDirName = repoDirName //nolint:gochecknoglobals // test export
