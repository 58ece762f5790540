// Package semver provides an immutable SemVer 2.0 version value type.
//
// A Version is either fully valid or fully invalid: parsing never fails with
// an error, it produces a Version whose IsValid reports false and whose
// ErrorMessage explains why. Invalid versions are ordered below every valid
// version so they can flow through sorting and ranking code safely.
package semver

import (
	"fmt"
	"strings"
)

// Version represents a syntactically checked SemVer 2.0 version.
// The zero value is an invalid version.
type Version struct {
	major, minor, patch int
	prerelease          string
	buildMetaData       string
	parsedText          string
	normalized          string
	errorMessage        string
	valid               bool
}

// ZeroVersion is the lowest valid version: 0.0.0-0.
var ZeroVersion = MustParse("0.0.0-0")

// Major returns the major component, or -1 for an invalid version.
func (v Version) Major() int { return v.comp(v.major) }

// Minor returns the minor component, or -1 for an invalid version.
func (v Version) Minor() int { return v.comp(v.minor) }

// Patch returns the patch component, or -1 for an invalid version.
func (v Version) Patch() int { return v.comp(v.patch) }

func (v Version) comp(c int) int {
	if !v.valid {
		return -1
	}
	return c
}

// Prerelease returns the dot-separated prerelease identifiers, "" for a
// stable (or invalid) version.
func (v Version) Prerelease() string { return v.prerelease }

// BuildMetaData returns the build metadata without its leading '+'.
// It never participates in comparison or equality.
func (v Version) BuildMetaData() string { return v.buildMetaData }

// ParsedText returns the original input text, kept even when parsing failed.
func (v Version) ParsedText() string { return v.parsedText }

// NormalizedText returns the canonical rendering of a valid version, without
// build metadata. It is "" for invalid versions.
func (v Version) NormalizedText() string { return v.normalized }

// ErrorMessage returns "" for a valid version and the parse or construction
// failure otherwise.
func (v Version) ErrorMessage() string {
	if v.valid {
		return ""
	}
	if v.errorMessage == "" {
		return "zero version value"
	}
	return v.errorMessage
}

// IsValid reports whether this is a valid version.
func (v Version) IsValid() bool { return v.valid }

// IsPrerelease reports whether a valid version carries prerelease identifiers.
func (v Version) IsPrerelease() bool { return v.valid && v.prerelease != "" }

// IsStable reports whether this is a valid version without prerelease.
func (v Version) IsStable() bool { return v.valid && v.prerelease == "" }

// IsZero reports whether this is the 0.0.0-0 version.
func (v Version) IsZero() bool {
	return v.valid && v.major == 0 && v.minor == 0 && v.patch == 0 && v.prerelease == "0"
}

// String returns the normalized text of a valid version (with build metadata
// appended when present) and the original text for an invalid one.
func (v Version) String() string {
	if !v.valid {
		return v.parsedText
	}
	if v.buildMetaData != "" {
		return v.normalized + "+" + v.buildMetaData
	}
	return v.normalized
}

// New returns the stable version major.minor.patch.
// It panics when any component is negative: this is a programming error,
// not malformed external input.
func New(major, minor, patch int) Version {
	v, err := NewPrerelease(major, minor, patch, "")
	if err != nil {
		panic(err)
	}
	return v
}

// NewPrerelease returns the version major.minor.patch-prerelease. An empty
// prerelease yields a stable version. The prerelease text is validated
// against the SemVer 2.0 grammar.
func NewPrerelease(major, minor, patch int, prerelease string) (Version, error) {
	if major < 0 || minor < 0 || patch < 0 {
		return Version{}, fmt.Errorf("negative version component in %d.%d.%d", major, minor, patch)
	}
	if prerelease != "" {
		if err := checkIdentifiers(prerelease, true); err != nil {
			return Version{}, fmt.Errorf("invalid prerelease %q: %w", prerelease, err)
		}
	}
	v := Version{
		major:      major,
		minor:      minor,
		patch:      patch,
		prerelease: prerelease,
		valid:      true,
	}
	v.normalized = renderNormalized(major, minor, patch, prerelease)
	v.parsedText = v.normalized
	return v, nil
}

// WithBuildMetaData returns a copy of this version carrying the given build
// metadata ("" removes it). It panics on an invalid receiver or on
// syntactically invalid metadata: both are caller contract violations.
func (v Version) WithBuildMetaData(meta string) Version {
	if !v.valid {
		panic("WithBuildMetaData called on invalid version " + v.parsedText)
	}
	if meta != "" {
		if err := checkIdentifiers(meta, true); err != nil {
			panic(fmt.Sprintf("invalid build metadata %q: %v", meta, err))
		}
	}
	c := v
	c.buildMetaData = meta
	return c
}

func renderNormalized(major, minor, patch int, prerelease string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", major, minor, patch)
	if prerelease != "" {
		b.WriteByte('-')
		b.WriteString(prerelease)
	}
	return b.String()
}
