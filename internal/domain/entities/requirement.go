package entities

import (
	"fmt"
	"strings"
)

// Specifier operators, longest first so parsing never splits "~=" into "~"
// and "=".
const (
	OpArbitraryEqual = "==="
	OpCompatible     = "~="
	OpEqual          = "=="
	OpNotEqual       = "!="
	OpMinimum        = ">="
	OpMaximumOrEqual = "<="
	OpGreater        = ">"
	OpMaximum        = "<"
)

// specifierOps is ordered by operator length for greedy matching.
var specifierOps = []string{
	OpArbitraryEqual, OpCompatible, OpEqual, OpNotEqual,
	OpMinimum, OpMaximumOrEqual, OpGreater, OpMaximum,
}

// Specifier is a single version-range clause, e.g. ">=2024.1.1.0".
type Specifier struct {
	Op      string
	Version string
}

// String renders the clause without whitespace.
func (s Specifier) String() string { return s.Op + s.Version }

// DependencyRequirement is one parsed entry from a manifest requirement
// list: a name, an optional extras bracket, an ordered clause list, and an
// optional environment marker. Raw retains the exact text as it appeared
// in the manifest so rewrites can target it byte-exactly.
type DependencyRequirement struct {
	Raw    string
	Name   string
	Extras string // including brackets, e.g. "[test]"; empty if none
	Specs  []Specifier
	Marker string // text after ";", trimmed; empty if none
}

// ParseRequirement parses a requirement line such as
// "wpiutil[dev]>=2024.1.1.0,<2025.0.0 ; python_version >= '3.8'".
func ParseRequirement(raw string) (*DependencyRequirement, error) {
	req := &DependencyRequirement{Raw: raw}

	rest := raw
	if body, marker, found := strings.Cut(rest, ";"); found {
		req.Marker = strings.TrimSpace(marker)
		rest = body
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, fmt.Errorf("empty requirement %q", raw)
	}

	// Name runs up to the first bracket, operator character, or space.
	nameEnd := strings.IndexAny(rest, "[<>=!~ ")
	if nameEnd == 0 {
		return nil, fmt.Errorf("requirement %q has no name", raw)
	}
	if nameEnd < 0 {
		req.Name = rest
		return req, nil
	}
	req.Name = rest[:nameEnd]
	rest = rest[nameEnd:]

	if strings.HasPrefix(rest, "[") {
		closing := strings.Index(rest, "]")
		if closing < 0 {
			return nil, fmt.Errorf("requirement %q has unterminated extras", raw)
		}
		req.Extras = rest[:closing+1]
		rest = rest[closing+1:]
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return req, nil
	}

	for _, clause := range strings.Split(rest, ",") {
		spec, err := parseSpecifier(clause)
		if err != nil {
			return nil, fmt.Errorf("requirement %q: %w", raw, err)
		}
		req.Specs = append(req.Specs, spec)
	}

	return req, nil
}

func parseSpecifier(clause string) (Specifier, error) {
	trimmed := strings.TrimSpace(clause)
	for _, op := range specifierOps {
		if strings.HasPrefix(trimmed, op) {
			ver := strings.TrimSpace(strings.TrimPrefix(trimmed, op))
			if ver == "" {
				return Specifier{}, fmt.Errorf("clause %q has no version", clause)
			}
			return Specifier{Op: op, Version: ver}, nil
		}
	}
	return Specifier{}, fmt.Errorf("clause %q has no recognized operator", clause)
}

// String serializes the requirement in normalized form: no spaces around
// clauses, marker separated by " ; " when present.
func (r *DependencyRequirement) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteString(r.Extras)
	for i, spec := range r.Specs {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(spec.String())
	}
	if r.Marker != "" {
		b.WriteString(" ; ")
		b.WriteString(r.Marker)
	}
	return b.String()
}
