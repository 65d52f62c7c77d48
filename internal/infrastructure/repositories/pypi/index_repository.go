// Package pypi implements the package-index capability against the PyPI
// JSON API.
package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/mass-publish/masspub/internal/domain/repositories"
)

const defaultBaseURL = "https://pypi.org"

// IndexRepository looks up (package, version) release metadata.
type IndexRepository struct {
	baseURL string
	client  *http.Client
}

var _ repositories.IndexRepository = (*IndexRepository)(nil)

// NewIndexRepository creates an index client against pypi.org.
func NewIndexRepository() *IndexRepository {
	return NewIndexRepositoryWithBaseURL(defaultBaseURL)
}

// NewIndexRepositoryWithBaseURL creates an index client against an
// alternate index host (tests, private mirrors).
func NewIndexRepositoryWithBaseURL(baseURL string) *IndexRepository {
	return &IndexRepository{
		baseURL: baseURL,
		client:  cleanhttp.DefaultPooledClient(),
	}
}

// releaseDocument is the slice of the index response we care about: one
// entry per published artifact.
type releaseDocument struct {
	URLs []struct {
		Filename string `json:"filename"`
	} `json:"urls"`
}

// Lookup fetches the metadata document for the exact (name, version) pair.
// Any response is reported through StatusCode; only transport failures
// return an error.
func (it *IndexRepository) Lookup(
	ctx context.Context,
	name, version string,
) (repositories.IndexLookup, error) {
	url := fmt.Sprintf("%s/pypi/%s/%s/json", it.baseURL, name, version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return repositories.IndexLookup{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := it.client.Do(req)
	if err != nil {
		return repositories.IndexLookup{}, fmt.Errorf("lookup %s %s: %w", name, version, err)
	}
	defer resp.Body.Close()

	lookup := repositories.IndexLookup{StatusCode: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		// Not found or transient index trouble; either way the release is
		// not confirmed and the body is irrelevant.
		_, _ = io.Copy(io.Discard, resp.Body)
		return lookup, nil
	}

	var doc releaseDocument
	if decodeErr := json.NewDecoder(resp.Body).Decode(&doc); decodeErr != nil {
		return repositories.IndexLookup{}, fmt.Errorf(
			"decode index response for %s %s: %w", name, version, decodeErr,
		)
	}

	lookup.ArtifactCount = len(doc.URLs)
	return lookup, nil
}
