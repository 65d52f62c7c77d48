package commands

import (
	"context"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/mass-publish/masspub/internal/domain/repositories"
)

const (
	// completenessThreshold is the minimum published-artifact count before
	// a release counts as fully available. The index briefly lists a new
	// version with a partial artifact set while uploads are in flight.
	completenessThreshold = 15

	// Poll cadence: start slow, speed up to a floor. The interval shrinks
	// on repeated failure rather than growing; this inverted backoff is
	// the tool's long-standing observable behavior and is kept as is.
	initialPollInterval = 90 * time.Second
	pollIntervalStep    = 10 * time.Second
	pollIntervalFloor   = 20 * time.Second

	// indexSyncGrace is held after a successful check so downstream
	// mirrors catch up before the next repository publishes against this
	// release.
	indexSyncGrace = 5 * time.Minute
)

// IndexPoller answers "has (package, version) finished publishing?" and
// blocks until it has. The wait has no attempt cap and no timeout; it ends
// only on success or context cancellation.
type IndexPoller struct {
	index repositories.IndexRepository
	sleep func(ctx context.Context, d time.Duration) error
}

// NewIndexPoller creates an IndexPoller over the given index capability.
func NewIndexPoller(index repositories.IndexRepository) *IndexPoller {
	return &IndexPoller{
		index: index,
		sleep: sleepContext,
	}
}

// Check performs a single existence check. It reports complete only when
// the release is listed with at least completenessThreshold artifacts.
// Transport failures and unexpected statuses both mean "not yet".
func (it *IndexPoller) Check(ctx context.Context, name, version string) (repositories.IndexLookup, bool) {
	lookup, err := it.index.Lookup(ctx, name, version)
	if err != nil {
		logger.Debugf("index lookup for %s %s failed: %v", name, version, err)
		return repositories.IndexLookup{}, false
	}
	complete := lookup.StatusCode == http.StatusOK &&
		lookup.ArtifactCount >= completenessThreshold
	return lookup, complete
}

// Wait blocks until (name, version) is fully available on the index, then
// holds for the sync grace period. Each attempt's status and artifact
// count are reported.
func (it *IndexPoller) Wait(ctx context.Context, name, version string) error {
	interval := initialPollInterval

	for {
		logger.Infof("checking the index for %s %s...", name, version)

		lookup, complete := it.Check(ctx, name, version)
		if lookup.ArtifactCount > 0 {
			logger.Infof("... %d (%d artifacts)", lookup.StatusCode, lookup.ArtifactCount)
		} else {
			logger.Infof("... %d", lookup.StatusCode)
		}

		if complete {
			logger.Infof("%s %s published, holding %s for mirrors to sync", name, version, indexSyncGrace)
			return it.sleep(ctx, indexSyncGrace)
		}

		if err := it.sleep(ctx, interval); err != nil {
			return err
		}
		if interval > pollIntervalFloor {
			interval -= pollIntervalStep
		}
	}
}

// sleepContext sleeps for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
