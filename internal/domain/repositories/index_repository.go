package repositories

import "context"

// IndexLookup is the result of one package-index metadata lookup.
type IndexLookup struct {
	StatusCode    int
	ArtifactCount int
}

// IndexRepository is the package-index capability: a single metadata
// lookup for an exact (package, version) pair. A not-found response is
// reported through StatusCode with zero artifacts, not as an error; only
// transport failures return a non-nil error, and callers treat those as
// "not yet published".
type IndexRepository interface {
	Lookup(ctx context.Context, name, version string) (IndexLookup, error)
}
