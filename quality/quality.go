// Package quality classifies package versions into a five-level maturity
// scale: CI < Exploratory < Preview < ReleaseCandidate < Stable. The extra
// None level only describes invalid versions and never appears in a filter
// or a version bound.
package quality

import "strings"

// Quality is the maturity tier of a version.
type Quality uint8

const (
	// None applies only to invalid versions.
	None Quality = iota
	// CI is any prerelease that carries no recognizable maturity tag.
	CI
	// Exploratory covers the alpha and beta tags.
	Exploratory
	// Preview covers delta through preview tags.
	Preview
	// ReleaseCandidate covers rc tags.
	ReleaseCandidate
	// Stable is a version without prerelease.
	Stable
)

var qualityNames = [...]string{"None", "CI", "Exploratory", "Preview", "ReleaseCandidate", "Stable"}

func (q Quality) String() string {
	if int(q) >= len(qualityNames) {
		return "None"
	}
	return qualityNames[q]
}

// IsValid reports whether q is one of the defined levels.
func (q Quality) IsValid() bool { return q <= Stable }

// Union returns the weaker (more permissive, lower) of the two qualities.
// Used when two constraints are merged and either is allowed to match.
func (q Quality) Union(o Quality) Quality {
	if o < q {
		return o
	}
	return q
}

// Intersect returns the stronger (more restrictive, higher) of the two
// qualities. Used when both constraints must hold.
func (q Quality) Intersect(o Quality) Quality {
	if o > q {
		return o
	}
	return q
}

// TryParse parses a quality name, case-insensitively. "Release" and "rel"
// are aliases of Stable, "rc" of ReleaseCandidate, "pre" and "preview" of
// Preview, "exp" and "exploratory" of Exploratory.
func TryParse(s string) (Quality, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return None, true
	case "ci":
		return CI, true
	case "exp", "exploratory":
		return Exploratory, true
	case "pre", "preview":
		return Preview, true
	case "rc", "releasecandidate":
		return ReleaseCandidate, true
	case "rel", "release", "stable":
		return Stable, true
	}
	return None, false
}

// FromPrerelease maps the prerelease text of a version that is not
// CSemVer-compliant onto a quality tier. An empty prerelease is Stable.
// The mapping is a name-prefix heuristic: exploratory tags map low, "pre"
// tags to Preview, "rc" tags to ReleaseCandidate, everything else to CI.
func FromPrerelease(prerelease string) Quality {
	if prerelease == "" {
		return Stable
	}
	p := strings.ToLower(prerelease)
	for _, n := range [...]string{"alpha", "beta", "delta", "epsilon", "gamma", "kappa"} {
		if strings.HasPrefix(p, n) {
			return Exploratory
		}
	}
	if strings.HasPrefix(p, "pre") {
		return Preview
	}
	if strings.HasPrefix(p, "rc") {
		return ReleaseCandidate
	}
	return CI
}
