package bound

import (
	"fmt"
	"strings"

	"github.com/petrarca/csemver/quality"
	"github.com/petrarca/csemver/semver"
)

// ParseNuGet projects a NuGet range expression onto a Bound. The
// recognized syntax covers interval notation with inclusive brackets and
// exclusive parens ("[1.2.3,4.5.6)"), a bare version meaning "minimum
// inclusive, no upper bound", and trailing wildcards ("1.0.*", "1.*",
// "1.0.*-*").
//
// Intervals shaped exactly like [v, nextMajor), [v, nextMinor) or
// [v, nextPatch) project onto the matching lock without loss; any other
// two-sided interval degrades to its lower bound and is flagged
// approximated. A bound version whose prerelease is the canonical first
// tag ("0", "a" or "A") counts as the release itself for this shape
// detection, which is how NuGet spells "include prereleases" on a
// boundary.
func ParseNuGet(text string) ParseResult {
	c := newCursor(strings.TrimSpace(text))
	if c.atEnd() {
		// An absent range accepts any stable version.
		return okResult(New(semver.ZeroVersion, LockNone, quality.Stable), false)
	}
	if c.peek() == '[' || c.peek() == '(' {
		return parseNuGetInterval(c)
	}
	return parseNuGetFloating(c)
}

func parseNuGetInterval(c *cursor) ParseResult {
	lowIncl := c.tryByte('[')
	if !lowIncl {
		c.advance() // '('
	}
	c.skipSpaces()
	lowText := strings.TrimSpace(c.readUntil(",])"))
	if c.atEnd() {
		return errResult(fmt.Errorf("unclosed nuget version range"))
	}
	hasUpper := c.tryByte(',')
	upText := ""
	if hasUpper {
		c.skipSpaces()
		upText = strings.TrimSpace(c.readUntil("])"))
		if c.atEnd() {
			return errResult(fmt.Errorf("unclosed nuget version range"))
		}
	}
	upIncl := c.tryByte(']')
	if !upIncl {
		c.advance() // ')'
	}
	c.skipSpaces()
	if !c.atEnd() {
		return errResult(fmt.Errorf("unexpected %q after nuget version range", c.peek()))
	}
	if !hasUpper {
		// "[1.2.3]" is the exact version; "(1.2.3)" denotes nothing.
		if !lowIncl || !upIncl {
			return errResult(fmt.Errorf("exclusive single-version nuget range %q", c.s))
		}
		low, err := nugetVersion(lowText)
		if err != nil {
			return errResult(err)
		}
		return okResult(New(low, LockExact, baseQuality(low)), false)
	}
	if lowText == "" {
		// Upper bound only: nothing representable survives.
		q := quality.Stable
		approx := true
		return okResult(New(semver.ZeroVersion, LockNone, q), approx)
	}
	low, err := nugetVersion(lowText)
	if err != nil {
		return errResult(err)
	}
	q := baseQuality(low)
	if upText == "" {
		// "[1.2.3,)": a plain minimum.
		return okResult(New(low, LockNone, q), !lowIncl)
	}
	up, err := nugetVersion(upText)
	if err != nil {
		return errResult(err)
	}
	if !upIncl && lowIncl {
		if lock, ok := intervalLock(low, up); ok {
			return okResult(New(low, lock, q), false)
		}
	}
	// Any other two-sided interval: keep the lower bound, flag the loss.
	return okResult(New(low, LockNone, q), true)
}

// intervalLock detects [low, up) intervals that are exactly a lock region:
// up must be the next major, minor or patch of low, and low (modulo the
// first-prerelease trick) the corresponding zero-suffixed version.
func intervalLock(low, up semver.Version) (Lock, bool) {
	l, u := releaseOf(low), releaseOf(up)
	if !u.IsStable() {
		return LockNone, false
	}
	switch {
	case u.Major() == l.Major()+1 && u.Minor() == 0 && u.Patch() == 0:
		return LockMajor, true
	case u.Major() == l.Major() && u.Minor() == l.Minor()+1 && u.Patch() == 0:
		return LockMinor, true
	case u.Major() == l.Major() && u.Minor() == l.Minor() && u.Patch() == l.Patch()+1:
		return LockPatch, true
	}
	return LockNone, false
}

// releaseOf strips a "-0", "-a" or "-A" prerelease: NuGet uses the first
// possible prerelease tag to make an exclusive boundary cover prereleases.
func releaseOf(v semver.Version) semver.Version {
	switch v.Prerelease() {
	case "0", "a", "A":
		return semver.New(v.Major(), v.Minor(), v.Patch())
	}
	return v
}

func baseQuality(v semver.Version) quality.Quality {
	if v.IsPrerelease() {
		return quality.CI
	}
	return quality.Stable
}

func nugetVersion(text string) (semver.Version, error) {
	v := semver.TryParse(text)
	if !v.IsValid() {
		return v, fmt.Errorf("invalid version %q in nuget range: %s", text, v.ErrorMessage())
	}
	return v, nil
}

// parseNuGetFloating handles bare versions and trailing-wildcard patterns.
// A wildcard without the "-*" suffix accepts stable versions only; with it,
// anything down to CI quality.
func parseNuGetFloating(c *cursor) ParseResult {
	text := strings.TrimSpace(c.readUntil(""))
	q := quality.Stable
	if s, ok := strings.CutSuffix(text, "-*"); ok {
		q = quality.CI
		text = s
	}
	if text == "*" {
		return okResult(New(semver.ZeroVersion, LockNone, q), false)
	}
	if s, ok := strings.CutSuffix(text, ".*"); ok {
		parts := strings.Split(s, ".")
		for _, p := range parts {
			if _, err := parseNuGetNumber(p); err != nil {
				return errResult(fmt.Errorf("expecting number or * in nuget pattern %q: %w", text, err))
			}
		}
		switch len(parts) {
		case 1:
			major, _ := parseNuGetNumber(parts[0])
			return okResult(New(floatingBase(major, 0, 0, q), LockMajor, q), false)
		case 2:
			major, _ := parseNuGetNumber(parts[0])
			minor, _ := parseNuGetNumber(parts[1])
			return okResult(New(floatingBase(major, minor, 0, q), LockMinor, q), false)
		}
		return errResult(fmt.Errorf("unsupported nuget wildcard pattern %q", text))
	}
	v, err := nugetVersion(text)
	if err != nil {
		return errResult(err)
	}
	if q == quality.CI && v.IsStable() {
		v = floatingBase(v.Major(), v.Minor(), v.Patch(), q)
	}
	return okResult(New(v, LockNone, baseQuality(v).Union(q)), false)
}

// floatingBase lowers a prerelease-inclusive pattern base to the first
// possible prerelease of its version, so prereleases of the base itself
// satisfy the bound.
func floatingBase(major, minor, patch int, q quality.Quality) semver.Version {
	if q != quality.CI {
		return semver.New(major, minor, patch)
	}
	v, err := semver.NewPrerelease(major, minor, patch, "0")
	if err != nil {
		panic(err)
	}
	return v
}

func parseNuGetNumber(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%q is not a number", s)
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, nil
}
