package entities

import (
	"fmt"
)

// MinFromTarget is the symbolic minimum-version form meaning "use whatever
// target version that dependency currently has".
const MinFromTarget = "target"

// PolicyInput carries the raw fields of a policy document, before
// validation. All versions are plain strings.
type PolicyInput struct {
	Targets       map[string]string // package -> target version
	MinVersions   map[string]string // dependency -> minimum version or MinFromTarget
	MaxCeiling    string            // single shared maximum-version ceiling
	Linked        []string          // packages sharing one release train
	ReleaseBranch string            // designated release branch
	Repos         []string          // managed repo URLs, in publish order
	MetaPackage   string
	BinaryVersion string   // native-library distribution version
	BinaryURL     string   // native-library distribution URL
	BinaryPkgs    []string // packages whose manifests carry native-lib descriptors
	BinaryExempt  []string // descriptor keys never corrected
}

// VersionPolicy is the immutable desired-state snapshot driving both the
// constraint rewriter and the release orchestrator. Construct it once per
// run with NewVersionPolicy; every invariant is checked there so the rest
// of the system only ever sees a consistent policy.
//
// Repos is ordered: packages must be listed in dependency order, because
// the orchestrator publishes strictly in list order and later packages may
// depend on earlier ones being visible on the index first. That ordering
// is an input precondition, not something the policy derives.
type VersionPolicy struct {
	targets       map[string]*Version
	minimums      map[string]*Version
	maxCeiling    *Version
	linked        map[string]bool
	binaryPkgs    map[string]bool
	binaryExempt  map[string]bool
	binaryVersion string
	binaryURL     string

	ReleaseBranch string
	Repos         []string
	MetaPackage   string
}

// NewVersionPolicy validates the raw policy fields and builds the
// immutable snapshot. Violations are configuration errors and fatal: the
// caller must not proceed to any mutation.
func NewVersionPolicy(input PolicyInput) (*VersionPolicy, error) {
	ceiling, err := ParseVersion(input.MaxCeiling)
	if err != nil {
		return nil, fmt.Errorf("max version ceiling: %w", err)
	}

	policy := &VersionPolicy{
		targets:       make(map[string]*Version, len(input.Targets)),
		minimums:      make(map[string]*Version, len(input.MinVersions)),
		maxCeiling:    ceiling,
		linked:        make(map[string]bool, len(input.Linked)),
		binaryPkgs:    make(map[string]bool, len(input.BinaryPkgs)),
		binaryExempt:  make(map[string]bool, len(input.BinaryExempt)),
		binaryVersion: input.BinaryVersion,
		binaryURL:     input.BinaryURL,
		ReleaseBranch: input.ReleaseBranch,
		Repos:         append([]string(nil), input.Repos...),
		MetaPackage:   input.MetaPackage,
	}
	if policy.ReleaseBranch == "" {
		policy.ReleaseBranch = "main"
	}

	for name, raw := range input.Targets {
		target, parseErr := ParseVersion(raw)
		if parseErr != nil {
			return nil, fmt.Errorf("target version of %s: %w", name, parseErr)
		}
		policy.targets[name] = target
	}

	for name, raw := range input.MinVersions {
		if raw == MinFromTarget {
			target, ok := policy.targets[name]
			if !ok {
				return nil, fmt.Errorf(
					"min version of %s derives from its target, but %s has no target version",
					name, name,
				)
			}
			policy.minimums[name] = target
			continue
		}
		minimum, parseErr := ParseVersion(raw)
		if parseErr != nil {
			return nil, fmt.Errorf("min version of %s: %w", name, parseErr)
		}
		policy.minimums[name] = minimum
	}

	// A minimum above the target would tell dependents to require a
	// version that will never be published.
	for name, minimum := range policy.minimums {
		target, ok := policy.targets[name]
		if !ok {
			continue
		}
		if minimum.GreaterThan(target) {
			return nil, fmt.Errorf(
				"min version of %s (%s) is greater than its target version %s",
				name, minimum, target,
			)
		}
	}

	// Linked packages release together: their targets must share one
	// release train identifier.
	train := ""
	for _, name := range input.Linked {
		policy.linked[name] = true
		target, ok := policy.targets[name]
		if !ok {
			return nil, fmt.Errorf("linked package %s has no target version", name)
		}
		if train == "" {
			train = target.ReleaseTrain()
			continue
		}
		if got := target.ReleaseTrain(); got != train {
			return nil, fmt.Errorf(
				"linked package %s is on release train %s, expected %s",
				name, got, train,
			)
		}
	}

	for _, name := range input.BinaryPkgs {
		policy.binaryPkgs[name] = true
	}
	for _, key := range input.BinaryExempt {
		policy.binaryExempt[key] = true
	}

	return policy, nil
}

// TargetFor returns the target version for a package, or nil if the
// package is not under version management.
func (p *VersionPolicy) TargetFor(name string) *Version { return p.targets[name] }

// MinimumFor returns the resolved minimum version for a dependency, or nil
// if no minimum policy exists for it.
func (p *VersionPolicy) MinimumFor(name string) *Version { return p.minimums[name] }

// MaxCeiling returns the single shared maximum-version ceiling.
func (p *VersionPolicy) MaxCeiling() *Version { return p.maxCeiling }

// IsLinked reports whether a package participates in the shared release
// train.
func (p *VersionPolicy) IsLinked(name string) bool { return p.linked[name] }

// IsManaged reports whether a dependency's declared ranges are rewritten
// by this policy.
func (p *VersionPolicy) IsManaged(name string) bool {
	return p.minimums[name] != nil || p.linked[name]
}

// InBinaryGroup reports whether a package's manifest carries native
// library download descriptors managed by this policy.
func (p *VersionPolicy) InBinaryGroup(name string) bool { return p.binaryPkgs[name] }

// BinaryExempt reports whether a native-lib descriptor key is excluded
// from correction.
func (p *VersionPolicy) BinaryExempt(key string) bool { return p.binaryExempt[key] }

// BinaryVersion is the version every non-exempt native-lib descriptor must
// record.
func (p *VersionPolicy) BinaryVersion() string { return p.binaryVersion }

// BinaryURL is the download URL every non-exempt native-lib descriptor
// must record.
func (p *VersionPolicy) BinaryURL() string { return p.binaryURL }
