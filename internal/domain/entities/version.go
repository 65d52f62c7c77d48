package entities

import (
	"fmt"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Version is an immutable package version. Package-index versions carry up
// to four numeric segments (e.g. "2024.1.1.0") plus optional prerelease
// suffixes, so this wraps hashicorp/go-version rather than a strict semver
// parser.
type Version struct {
	raw    string
	parsed *goversion.Version
}

// ParseVersion parses a version string. Invalid strings fail to parse.
func ParseVersion(raw string) (*Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty version string")
	}
	parsed, err := goversion.NewVersion(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	return &Version{raw: trimmed, parsed: parsed}, nil
}

// MustParseVersion is ParseVersion for static inputs; it panics on error.
func MustParseVersion(raw string) *Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the original textual form.
func (v *Version) String() string { return v.raw }

// Compare returns -1, 0, or 1 depending on whether v is less than, equal
// to, or greater than other.
func (v *Version) Compare(other *Version) int {
	return v.parsed.Compare(other.parsed)
}

// LessThan reports whether v orders strictly before other.
func (v *Version) LessThan(other *Version) bool {
	return v.Compare(other) < 0
}

// GreaterThan reports whether v orders strictly after other.
func (v *Version) GreaterThan(other *Version) bool {
	return v.Compare(other) > 0
}

// Equal reports whether v and other order the same.
func (v *Version) Equal(other *Version) bool {
	return v.Compare(other) == 0
}

// releaseTrainSegments is the number of leading numeric components shared
// by packages on one release train.
const releaseTrainSegments = 3

// ReleaseTrain returns the first three numeric components of the version
// ("2024.1.1.2" -> "2024.1.1"). Missing components are zero-filled, which
// matches how the index orders short versions.
func (v *Version) ReleaseTrain() string {
	segments := v.parsed.Segments()
	parts := make([]string, releaseTrainSegments)
	for i := range parts {
		if i < len(segments) {
			parts[i] = strconv.Itoa(segments[i])
		} else {
			parts[i] = "0"
		}
	}
	return strings.Join(parts, ".")
}
