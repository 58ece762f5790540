// Package csemver implements the CSemVer constrained subset of SemVer 2.0:
// versions whose prerelease is one of eight standard names with bounded
// numeric suffixes. The constraint makes the whole version space finite and
// totally ordered by a single 63-bit integer, which in turn makes "the next
// possible versions" of any version a small enumerable set.
package csemver

import (
	"fmt"
	"strings"

	"github.com/petrarca/csemver/quality"
	"github.com/petrarca/csemver/semver"
)

// Design-time bounds of the version space.
const (
	MaxMajor            = 99999
	MaxMinor            = 49999
	MaxPatch            = 9999
	MaxPrereleaseNumber = 99
	MaxPrereleasePatch  = 99

	maxPrereleaseNameIdx = 7
	// fallbackNameIdx is where unrecognized-but-plausible prerelease names
	// land: the slot just below rc, so future tags never error out and
	// still order before a release candidate.
	fallbackNameIdx = 6
)

// Mixed-radix digit weights of the ordered-version encoding. A stable
// release sits on the exact multiple of mulPatch for its Major.Minor.Patch
// and its prereleases occupy the mulPatch-1 integers right below it.
const (
	mulNum   = int64(MaxPrereleasePatch + 1)             // 100
	mulName  = mulNum * (MaxPrereleaseNumber + 1)        // 10 000
	mulPatch = mulName*(maxPrereleaseNameIdx+1) + 1      // 80 001
	mulMinor = mulPatch * (MaxPatch + 1)
	mulMajor = mulMinor * (MaxMinor + 1)

	// FirstOrderedVersion is 0.0.0-alpha, the very first possible version.
	// 0 is reserved as the invalid ordered version.
	FirstOrderedVersion int64 = 1
	// LastOrderedVersion is the stable MaxMajor.MaxMinor.MaxPatch.
	LastOrderedVersion = mulMajor*MaxMajor + mulMinor*MaxMinor + mulPatch*(MaxPatch+1)
)

var standardNames = [8]string{"alpha", "beta", "delta", "epsilon", "gamma", "kappa", "preview", "rc"}

const shortCodes = "abdegkpr"

// StandardPrereleaseNames returns the eight canonical prerelease names in
// ascending precedence order.
func StandardPrereleaseNames() []string {
	return append([]string(nil), standardNames[:]...)
}

// Version is a CSemVer version. It embeds the generic semver.Version it was
// built from and adds the constrained prerelease structure and the ordered
// integer. The zero value is invalid.
type Version struct {
	semver.Version
	nameIdx  int // -1 for a stable version
	number   int
	fix      int
	longForm bool
	ordered  int64
}

// PrereleaseNameIdx returns -1 for a stable version and 0..7 for the index
// of the prerelease name in the standard table.
func (v Version) PrereleaseNameIdx() int {
	if !v.IsValid() {
		return -1
	}
	return v.nameIdx
}

// PrereleaseName returns the canonical long name of the prerelease, "" for
// a stable version.
func (v Version) PrereleaseName() string {
	if !v.IsValid() || v.nameIdx < 0 {
		return ""
	}
	return standardNames[v.nameIdx]
}

// PrereleaseNumber returns the prerelease number (0..99).
func (v Version) PrereleaseNumber() int { return v.number }

// PrereleasePatch returns the prerelease fix number (0..99).
func (v Version) PrereleasePatch() int { return v.fix }

// IsLongForm reports whether this version renders with full prerelease
// names ("1.2.3-alpha.4.2") rather than short codes ("1.2.3-a04-02").
func (v Version) IsLongForm() bool { return v.longForm }

// OrderedVersion returns the 63-bit order-preserving integer encoding of
// this version, 0 when invalid.
func (v Version) OrderedVersion() int64 { return v.ordered }

// SVersion returns the generic semver view of this version.
func (v Version) SVersion() semver.Version { return v.Version }

// Compare orders two CSemVer versions by their ordered integers. Invalid
// versions order first.
func (v Version) Compare(o Version) int {
	switch {
	case v.ordered < o.ordered:
		return -1
	case v.ordered > o.ordered:
		return 1
	}
	return 0
}

// Equal reports whether both versions denote the same point of the version
// space. Build metadata and rendering form are ignored.
func (v Version) Equal(o Version) bool { return v.IsValid() && v.ordered == o.ordered }

// Quality returns the maturity tier of this version: rc maps to
// ReleaseCandidate, alpha and beta to Exploratory, everything in between to
// Preview, and a stable version to Stable.
func (v Version) Quality() quality.Quality {
	if !v.IsValid() {
		return quality.None
	}
	switch {
	case v.nameIdx < 0:
		return quality.Stable
	case v.nameIdx == maxPrereleaseNameIdx:
		return quality.ReleaseCandidate
	case v.nameIdx <= 1:
		return quality.Exploratory
	}
	return quality.Preview
}

// WithBuildMetaData returns a copy carrying the given build metadata.
// Panics on invalid receiver or malformed metadata, like the semver method
// it refines.
func (v Version) WithBuildMetaData(meta string) Version {
	c := v
	c.Version = v.Version.WithBuildMetaData(meta)
	return c
}

// New returns the stable version major.minor.patch. It panics when a
// component is out of its design-time bound: this is a programming error.
func New(major, minor, patch int) Version {
	return NewPrerelease(major, minor, patch, -1, 0, 0)
}

// NewPrerelease builds a version from its six structural components.
// nameIdx -1 means stable (number and fix must then be 0). Out-of-range
// arguments panic.
func NewPrerelease(major, minor, patch, nameIdx, number, fix int) Version {
	switch {
	case major < 0 || major > MaxMajor:
		panic(fmt.Sprintf("major %d out of [0,%d]", major, MaxMajor))
	case minor < 0 || minor > MaxMinor:
		panic(fmt.Sprintf("minor %d out of [0,%d]", minor, MaxMinor))
	case patch < 0 || patch > MaxPatch:
		panic(fmt.Sprintf("patch %d out of [0,%d]", patch, MaxPatch))
	case nameIdx < -1 || nameIdx > maxPrereleaseNameIdx:
		panic(fmt.Sprintf("prerelease name index %d out of [-1,%d]", nameIdx, maxPrereleaseNameIdx))
	case number < 0 || number > MaxPrereleaseNumber:
		panic(fmt.Sprintf("prerelease number %d out of [0,%d]", number, MaxPrereleaseNumber))
	case fix < 0 || fix > MaxPrereleasePatch:
		panic(fmt.Sprintf("prerelease fix %d out of [0,%d]", fix, MaxPrereleasePatch))
	case nameIdx < 0 && (number != 0 || fix != 0):
		panic("prerelease number or fix on a stable version")
	}
	return newStd(major, minor, patch, nameIdx, number, fix, false)
}

// newStd builds a Version from trusted, in-range components.
func newStd(major, minor, patch, nameIdx, number, fix int, longForm bool) Version {
	pre := renderPrerelease(nameIdx, number, fix, longForm)
	sv, err := semver.NewPrerelease(major, minor, patch, pre)
	if err != nil {
		panic(err)
	}
	return Version{
		Version:  sv,
		nameIdx:  nameIdx,
		number:   number,
		fix:      fix,
		longForm: longForm,
		ordered:  computeOrdered(major, minor, patch, nameIdx, number, fix),
	}
}

// Create is the exact inverse of OrderedVersion: it rebuilds the version
// denoted by an ordered integer. Values outside
// [FirstOrderedVersion, LastOrderedVersion] are rejected.
func Create(ordered int64) (Version, error) {
	if ordered < FirstOrderedVersion || ordered > LastOrderedVersion {
		return Version{}, fmt.Errorf("ordered version %d out of [%d,%d]", ordered, FirstOrderedVersion, LastOrderedVersion)
	}
	prePart := ordered % mulPatch
	nameIdx, number, fix := -1, 0, 0
	t := (ordered - prePart) / mulPatch
	if prePart == 0 {
		// A stable release: the encoding stores Patch+1.
		t = ordered/mulPatch - 1
	} else {
		r := prePart - 1
		nameIdx = int(r / mulName)
		r %= mulName
		number = int(r / mulNum)
		fix = int(r % mulNum)
	}
	patch := int(t % (MaxPatch + 1))
	t /= MaxPatch + 1
	minor := int(t % (MaxMinor + 1))
	major := int(t / (MaxMinor + 1))
	return newStd(major, minor, patch, nameIdx, number, fix, false), nil
}

func computeOrdered(major, minor, patch, nameIdx, number, fix int) int64 {
	v := mulMajor*int64(major) + mulMinor*int64(minor) + mulPatch*int64(patch+1)
	if nameIdx >= 0 {
		v -= mulPatch - 1
		v += mulName * int64(nameIdx)
		v += mulNum * int64(number)
		v += int64(fix)
	}
	return v
}

// Parse parses text as a CSemVer version, accepting both the short and the
// long prerelease form.
func Parse(text string) (Version, error) {
	sv := semver.TryParse(text)
	if !sv.IsValid() {
		return Version{Version: sv, nameIdx: -1}, fmt.Errorf("invalid version %q: %s", text, sv.ErrorMessage())
	}
	return FromSVersion(sv)
}

// TryParse is Parse returning an invalid Version instead of an error.
func TryParse(text string) Version {
	v, _ := Parse(text)
	return v
}

// MustParse is Parse for known-good literals; it panics on failure.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// FromSVersion refines a valid generic version into a CSemVer one. It fails
// when a component exceeds its bound or the prerelease does not fit the
// constrained grammar.
func FromSVersion(sv semver.Version) (Version, error) {
	if !sv.IsValid() {
		return Version{nameIdx: -1}, fmt.Errorf("invalid version: %s", sv.ErrorMessage())
	}
	switch {
	case sv.Major() > MaxMajor:
		return Version{nameIdx: -1}, fmt.Errorf("major %d exceeds %d", sv.Major(), MaxMajor)
	case sv.Minor() > MaxMinor:
		return Version{nameIdx: -1}, fmt.Errorf("minor %d exceeds %d", sv.Minor(), MaxMinor)
	case sv.Patch() > MaxPatch:
		return Version{nameIdx: -1}, fmt.Errorf("patch %d exceeds %d", sv.Patch(), MaxPatch)
	}
	nameIdx, number, fix := -1, 0, 0
	longForm := false
	if pre := sv.Prerelease(); pre != "" {
		var err error
		nameIdx, number, fix, longForm, err = parseConstrainedPrerelease(pre)
		if err != nil {
			return Version{nameIdx: -1}, err
		}
	}
	return Version{
		Version:  sv,
		nameIdx:  nameIdx,
		number:   number,
		fix:      fix,
		longForm: longForm,
		ordered:  computeOrdered(sv.Major(), sv.Minor(), sv.Patch(), nameIdx, number, fix),
	}, nil
}

// parseConstrainedPrerelease matches the CSemVer prerelease grammar.
//
// Long form: name[.number[.fix]] with full or aliased names; unrecognized
// names that still look like a tag fall back to the preview slot. Short
// form: a single identifier made of a one-letter code, an optional 1-2
// digit number and an optional dash-separated 1-2 digit fix.
//
// A trailing explicit zero is rejected both ways: "alpha.0" is "alpha" and
// "alpha.1.0" is "alpha.1"; only "alpha.0.f" with a real fix bump may carry
// a zero number.
func parseConstrainedPrerelease(pre string) (nameIdx, number, fix int, longForm bool, err error) {
	if dotted := strings.Contains(pre, "."); !dotted {
		if idx, num, fx, ok := parseShortPrerelease(pre); ok {
			return idx, num, fx, false, nil
		}
	}
	parts := strings.Split(pre, ".")
	if len(parts) > 3 {
		return 0, 0, 0, false, fmt.Errorf("prerelease %q has more than name.number.fix", pre)
	}
	nameIdx, err = prereleaseNameIndex(parts[0])
	if err != nil {
		return 0, 0, 0, false, err
	}
	if len(parts) > 1 {
		number, err = parseBoundedNumber(parts[1], 0, MaxPrereleaseNumber)
		if err != nil {
			return 0, 0, 0, false, fmt.Errorf("prerelease %q: bad number: %w", pre, err)
		}
	}
	if len(parts) > 2 {
		fix, err = parseBoundedNumber(parts[2], 1, MaxPrereleasePatch)
		if err != nil {
			return 0, 0, 0, false, fmt.Errorf("prerelease %q: bad fix: %w", pre, err)
		}
	}
	if len(parts) == 2 && number == 0 {
		return 0, 0, 0, false, fmt.Errorf("prerelease %q: trailing zero number", pre)
	}
	return nameIdx, number, fix, true, nil
}

// parseShortPrerelease matches "a", "a4", "a04" and "a04-02" style tags.
func parseShortPrerelease(pre string) (nameIdx, number, fix int, ok bool) {
	nameIdx = strings.IndexByte(shortCodes, pre[0])
	if nameIdx < 0 {
		return 0, 0, 0, false
	}
	rest := pre[1:]
	if rest == "" {
		return nameIdx, 0, 0, true
	}
	numText, fixText, hasFix := strings.Cut(rest, "-")
	number, ok = parseShortDigits(numText)
	if !ok {
		return 0, 0, 0, false
	}
	if hasFix {
		if fix, ok = parseShortDigits(fixText); !ok || fix == 0 {
			return 0, 0, 0, false
		}
	} else if number == 0 {
		// "a00" is just "a".
		return 0, 0, 0, false
	}
	return nameIdx, number, fix, true
}

func parseShortDigits(s string) (int, bool) {
	if len(s) < 1 || len(s) > 2 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

// prereleaseNameIndex resolves a long-form prerelease name, including the
// historical aliases and the forward-compatible fallback bucket.
func prereleaseNameIndex(name string) (int, error) {
	for i, n := range standardNames {
		if name == n {
			return i, nil
		}
	}
	switch name {
	case "a", "b", "d", "e", "g", "k", "p", "r":
		return strings.IndexByte(shortCodes, name[0]), nil
	case "pre", "prerelease":
		return fallbackNameIdx, nil
	}
	// Any purely alphabetic name is accepted in the fallback slot so that
	// new tag vocabularies never break parsing. Names with digits stay out:
	// they collide with malformed short-form tags like "a00".
	if isTagWord(name) {
		return fallbackNameIdx, nil
	}
	return 0, fmt.Errorf("prerelease name %q is not a CSemVer tag", name)
}

func isTagWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if ('a' > b || b > 'z') && ('A' > b || b > 'Z') {
			return false
		}
	}
	return true
}

func parseBoundedNumber(s string, min, max int) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, fmt.Errorf("leading zero in %q", s)
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%q is not a number", s)
		}
		n = n*10 + int(s[i]-'0')
		if n > max {
			return 0, fmt.Errorf("%q exceeds %d", s, max)
		}
	}
	if n < min {
		return 0, fmt.Errorf("%q is below %d", s, min)
	}
	return n, nil
}
