package csemver

import (
	"fmt"
	"time"
)

// CI build constraints. The short form targets NuGet-legacy-safe version
// strings, which caps the total suffix length.
const (
	MaxCIBuildIndex     = 9999
	MaxCIBranchNameSize = 8
)

// BuildDescriptor describes a continuous-integration build: a repository
// branch and a monotonic build index. It is a short-lived, caller-owned
// value used only when rendering a version; it is never persisted.
type BuildDescriptor struct {
	BuildIndex int
	BranchName string
}

// IsValid reports whether the descriptor can produce a long-form suffix.
func (d BuildDescriptor) IsValid() bool {
	return d.BuildIndex >= 0 && d.BuildIndex <= MaxCIBuildIndex && d.BranchName != ""
}

// IsValidForShortForm additionally requires the branch name to fit the
// short-form length budget.
func (d BuildDescriptor) IsValidForShortForm() bool {
	return d.IsValid() && len(d.BranchName) <= MaxCIBranchNameSize
}

// String renders the long, dotted CI suffix: "ci.16.develop".
// Panics on an invalid descriptor.
func (d BuildDescriptor) String() string {
	if !d.IsValid() {
		panic(fmt.Sprintf("invalid CI build descriptor (index %d, branch %q)", d.BuildIndex, d.BranchName))
	}
	return fmt.Sprintf("ci.%d.%s", d.BuildIndex, d.BranchName)
}

// ShortForm renders the compact, 0-padded CI suffix: "0016-develop". The
// padding keeps suffixes ordered under plain ASCII comparison. Panics when
// the descriptor does not fit the short form.
func (d BuildDescriptor) ShortForm() string {
	if !d.IsValidForShortForm() {
		panic(fmt.Sprintf("CI build descriptor (index %d, branch %q) unusable in short form", d.BuildIndex, d.BranchName))
	}
	return fmt.Sprintf("%04d-%s", d.BuildIndex, d.BranchName)
}

// StringWithCI renders this version with the CI build suffix appended, in
// the version's declared form. A prerelease extends its own identifier list
// with a dot; a stable version introduces the suffix with a double hyphen
// so the text stays a syntactically valid (if post-release) SemVer string.
// Panics when the version or the descriptor is invalid.
func (v Version) StringWithCI(d BuildDescriptor) string {
	if !v.IsValid() {
		panic("StringWithCI called on invalid version " + v.ParsedText())
	}
	var text, suffix string
	if v.longForm {
		text, suffix = v.render(true), d.String()
	} else {
		text, suffix = v.render(false), d.ShortForm()
	}
	if v.nameIdx >= 0 {
		text += "." + suffix
	} else {
		text += "--" + suffix
	}
	if meta := v.BuildMetaData(); meta != "" {
		text += "+" + meta
	}
	return text
}

// ciBaseTime anchors the zero-timed CI tags. Seconds since this instant fit
// 7 base-36 characters for well over a century.
var ciBaseTime = time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// ShortFormZeroTimed produces a CI version tag for builds that have no
// repository-relative build index: the elapsed seconds since
// 2015-01-01T00:00:00Z encoded in 7 base-36 characters, combined with the
// build name. Panics when the name is empty, longer than the short-form
// budget, or t precedes the base time.
func ShortFormZeroTimed(buildName string, t time.Time) string {
	if buildName == "" || len(buildName) > MaxCIBranchNameSize {
		panic(fmt.Sprintf("build name %q unusable in short form", buildName))
	}
	return "0.0.0--" + base36Seconds(t) + "-" + buildName
}

// LongFormZeroTimed is the dotted counterpart, timestamped with a compact
// UTC stamp that remains a valid SemVer identifier. Panics on an empty
// build name or a time before the base time.
func LongFormZeroTimed(buildName string, t time.Time) string {
	if buildName == "" {
		panic("empty build name")
	}
	if t.Before(ciBaseTime) {
		panic(fmt.Sprintf("time %s precedes the CI base time", t.UTC().Format(time.RFC3339)))
	}
	return "0.0.0--ci." + buildName + "." + t.UTC().Format("20060102-150405")
}

func base36Seconds(t time.Time) string {
	if t.Before(ciBaseTime) {
		panic(fmt.Sprintf("time %s precedes the CI base time", t.UTC().Format(time.RFC3339)))
	}
	s := uint64(t.Sub(ciBaseTime) / time.Second)
	var buf [7]byte
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = base36Alphabet[s%36]
		s /= 36
	}
	if s != 0 {
		panic("time too far from the CI base time for 7 base-36 characters")
	}
	return string(buf[:])
}
