// Package bound implements version ranges as (Base, Lock, MinQuality)
// triples: a minimum acceptable version, how much of its numeric prefix is
// pinned, and the weakest package quality a candidate may have. Two grammar
// parsers project the npm and NuGet range syntaxes onto this model,
// flagging the translations that cannot be exact.
package bound

import (
	"fmt"

	"github.com/petrarca/csemver/csemver"
	"github.com/petrarca/csemver/quality"
	"github.com/petrarca/csemver/semver"
)

// Lock states how much of the base version's prefix a range pins, from
// weakest to strongest. LockMajor pins the major number only (minor and
// patch are free), LockMinor pins major and minor, LockPatch pins all three
// numbers (only prerelease evolution remains) and LockExact pins the base
// itself.
type Lock uint8

const (
	LockNone Lock = iota
	LockMajor
	LockMinor
	LockPatch
	LockExact
)

var lockNames = [...]string{"None", "LockMajor", "LockMinor", "LockPatch", "Lock"}

func (l Lock) String() string {
	if int(l) >= len(lockNames) {
		return "None"
	}
	return lockNames[l]
}

// Union returns the weaker of the two locks.
func (l Lock) Union(o Lock) Lock {
	if o < l {
		return o
	}
	return l
}

// Bound is an immutable version range. The zero value is invalid; All is
// the bound every valid version satisfies.
type Bound struct {
	base       semver.Version
	lock       Lock
	minQuality quality.Quality
}

// All accepts every valid version of any quality.
var All = New(semver.ZeroVersion, LockNone, quality.CI)

// New builds a bound. The base must be a valid version (a programming
// contract: it panics otherwise); a None quality is normalized to CI so
// that MinQuality never stores None.
func New(base semver.Version, lock Lock, minQuality quality.Quality) Bound {
	if !base.IsValid() {
		panic("version bound base must be valid: " + base.ParsedText())
	}
	if minQuality == quality.None {
		minQuality = quality.CI
	}
	return Bound{base: base, lock: lock, minQuality: minQuality}
}

// Base returns the minimum acceptable version.
func (b Bound) Base() semver.Version { return b.base }

// Lock returns the prefix lock level.
func (b Bound) Lock() Lock { return b.lock }

// MinQuality returns the weakest acceptable quality (never None).
func (b Bound) MinQuality() quality.Quality { return b.minQuality }

// SetLock returns a bound with the given lock, or the receiver unchanged.
func (b Bound) SetLock(l Lock) Bound {
	if b.lock == l {
		return b
	}
	c := b
	c.lock = l
	return c
}

// SetMinQuality returns a bound with the given minimal quality, or the
// receiver unchanged.
func (b Bound) SetMinQuality(q quality.Quality) Bound {
	if q == quality.None {
		q = quality.CI
	}
	if b.minQuality == q {
		return b
	}
	c := b
	c.minQuality = q
	return c
}

// Satisfy reports whether v belongs to this range: v must be at least the
// base, share the locked prefix, and reach the minimal quality. The base
// itself always satisfies its own bound.
func (b Bound) Satisfy(v semver.Version) bool {
	cmp := v.Compare(b.base)
	if cmp < 0 || !v.IsValid() {
		return false
	}
	if cmp == 0 {
		return true
	}
	switch b.lock {
	case LockExact:
		return false
	case LockPatch:
		if v.Major() != b.base.Major() || v.Minor() != b.base.Minor() || v.Patch() != b.base.Patch() {
			return false
		}
	case LockMinor:
		if v.Major() != b.base.Major() || v.Minor() != b.base.Minor() {
			return false
		}
	case LockMajor:
		if v.Major() != b.base.Major() {
			return false
		}
	}
	return VersionQuality(v) >= b.minQuality
}

// Union returns a supremum of the two bounds: the lower base, the weaker
// lock further degraded until both bases share the locked prefix, and the
// weaker quality lowered enough to keep the higher base inside. Every
// version satisfying either operand satisfies the union; when the operands
// do not align on a common prefix the union accepts strictly more, which
// is the documented over-approximation of this model.
func (b Bound) Union(o Bound) Bound {
	lo, hi := b, o
	if o.base.Compare(b.base) < 0 {
		lo, hi = o, b
	}
	lock := b.lock.Union(o.lock)
	for lock != LockNone && !prefixEqual(lo.base, hi.base, lock) {
		lock--
	}
	q := b.minQuality.Union(o.minQuality)
	if !hi.base.Equal(lo.base) {
		// hi's own base satisfies hi unconditionally; the union must keep
		// accepting it even when its quality is below both minima.
		q = q.Union(VersionQuality(hi.base))
	}
	return Bound{base: lo.base, lock: lock, minQuality: q}
}

func prefixEqual(a, b semver.Version, lock Lock) bool {
	switch lock {
	case LockExact:
		return a.Equal(b)
	case LockPatch:
		if a.Patch() != b.Patch() {
			return false
		}
		fallthrough
	case LockMinor:
		if a.Minor() != b.Minor() {
			return false
		}
		fallthrough
	case LockMajor:
		return a.Major() == b.Major()
	}
	return true
}

// Contains reports whether every version satisfying other also satisfies
// this bound. Once other's base satisfies this bound, a stronger lock on
// other only pins fields inside the region this bound already allows, so
// weaker-or-equal lock and quality complete the test.
func (b Bound) Contains(other Bound) bool {
	return b.Satisfy(other.base) &&
		b.minQuality <= other.minQuality &&
		b.lock <= other.lock
}

// Compare orders bounds lexicographically by (Base, MinQuality, Lock).
func (b Bound) Compare(o Bound) int {
	if c := b.base.Compare(o.base); c != 0 {
		return c
	}
	if b.minQuality != o.minQuality {
		if b.minQuality < o.minQuality {
			return -1
		}
		return 1
	}
	if b.lock != o.lock {
		if b.lock < o.lock {
			return -1
		}
		return 1
	}
	return 0
}

// Equal reports whether the two bounds are the same triple.
func (b Bound) Equal(o Bound) bool { return b.Compare(o) == 0 }

func (b Bound) String() string {
	return fmt.Sprintf("%s[%s,%s]", b.base, b.lock, b.minQuality)
}

// VersionQuality computes the quality of any version: the exact CSemVer
// tier when the version fits the constrained grammar, the prerelease-name
// heuristic otherwise. Invalid versions have quality None.
func VersionQuality(v semver.Version) quality.Quality {
	if !v.IsValid() {
		return quality.None
	}
	if !v.IsPrerelease() {
		return quality.Stable
	}
	if cv, err := csemver.FromSVersion(v); err == nil {
		return cv.Quality()
	}
	return quality.FromPrerelease(v.Prerelease())
}
