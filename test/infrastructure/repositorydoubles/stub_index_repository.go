//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/mass-publish/masspub/internal/domain/repositories"
)

// StubIndexRepository implements repositories.IndexRepository. Each release
// can be given a sequence of results; successive lookups consume the
// sequence, and the final element repeats forever.
type StubIndexRepository struct {
	Results map[string][]repositories.IndexLookup
	Err     error

	Lookups []string
	served  map[string]int
}

var _ repositories.IndexRepository = (*StubIndexRepository)(nil)

func (s *StubIndexRepository) Lookup(_ context.Context, name, version string) (repositories.IndexLookup, error) {
	key := fmt.Sprintf("%s@%s", name, version)
	s.Lookups = append(s.Lookups, key)
	if s.Err != nil {
		return repositories.IndexLookup{}, s.Err
	}
	seq, ok := s.Results[key]
	if !ok || len(seq) == 0 {
		return repositories.IndexLookup{StatusCode: 404}, nil
	}
	if s.served == nil {
		s.served = make(map[string]int)
	}
	idx := s.served[key]
	if idx >= len(seq) {
		idx = len(seq) - 1
	}
	s.served[key]++
	return seq[idx], nil
}
