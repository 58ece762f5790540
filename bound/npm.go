package bound

import (
	"fmt"
	"strings"

	"github.com/petrarca/csemver/quality"
	"github.com/petrarca/csemver/semver"
)

// ParseNPM projects an npm range expression onto a Bound. The recognized
// syntax covers the comparator prefixes >, >=, <, <=, the ~ (patch
// freedom) and ^ (minor-or-patch freedom, with the zero-major special
// cases) operators, x/X/* wildcards in any trailing position, "A - B"
// hyphen ranges and "||" alternation.
//
// The model has no upper bounds, so <, <= and the upper half of a hyphen
// range are dropped and the result flagged approximated. includePrerelease
// switches the default minimal quality from Stable to CI, as npm's own
// flag does.
func ParseNPM(text string, includePrerelease bool) ParseResult {
	defQ := quality.Stable
	if includePrerelease {
		defQ = quality.CI
	}
	alternatives := strings.Split(text, "||")
	result := parseNPMRange(alternatives[0], defQ)
	for _, alt := range alternatives[1:] {
		result = result.Union(parseNPMRange(alt, defQ))
	}
	return result
}

func parseNPMRange(s string, defQ quality.Quality) ParseResult {
	toks := strings.Fields(s)
	if len(toks) == 0 {
		// An empty range means "*".
		return okResult(New(semver.ZeroVersion, LockNone, defQ), false)
	}
	// Hyphen range: the upper bound is parsed then intentionally dropped,
	// the model cannot hold it.
	if len(toks) == 3 && toks[1] == "-" {
		low, err := parseNPMPartial(toks[0])
		if err != nil {
			return errResult(err)
		}
		if _, err := parseNPMPartial(toks[2]); err != nil {
			return errResult(err)
		}
		r := comparatorBound(">=", low, defQ)
		r.IsApproximated = true
		return r
	}
	var acc ParseResult
	first := true
	for i := 0; i < len(toks); i++ {
		op, rest := splitNPMOperator(toks[i])
		if rest == "" && op != "" {
			// Operator detached from its version (">= 1.2.3").
			i++
			if i == len(toks) {
				return errResult(fmt.Errorf("expecting version after %q", op))
			}
			rest = toks[i]
		}
		p, err := parseNPMPartial(rest)
		if err != nil {
			return errResult(err)
		}
		r := comparatorBound(op, p, defQ)
		if r.Error != nil {
			return r
		}
		if first {
			acc, first = r, false
		} else {
			acc = intersectApprox(acc, r)
		}
	}
	return acc
}

var npmOperators = [...]string{">=", "<=", ">", "<", "~", "^", "="}

func splitNPMOperator(tok string) (op, rest string) {
	for _, o := range npmOperators {
		if strings.HasPrefix(tok, o) {
			return o, tok[len(o):]
		}
	}
	return "", tok
}

// npmPartial is a version pattern: wild counts the free trailing
// components (0 full version, 1 patch free, 2 minor and patch free, 3
// everything).
type npmPartial struct {
	major, minor, patch int
	wild                int
	prerelease          string
}

func parseNPMPartial(text string) (npmPartial, error) {
	c := newCursor(text)
	c.tryByte('v')
	p := npmPartial{}
	if isNPMWildcard(c.peek()) {
		c.advance()
		p.wild = 3
		return p, nil
	}
	var ok bool
	if p.major, ok = c.readNumber(); !ok {
		return p, fmt.Errorf("expecting major number or * in %q", text)
	}
	if !c.tryByte('.') {
		p.wild = 2
		return p, npmPartialEnd(c, text)
	}
	if isNPMWildcard(c.peek()) {
		c.advance()
		p.wild = 2
		return p, npmPartialEnd(c, text)
	}
	if p.minor, ok = c.readNumber(); !ok {
		return p, fmt.Errorf("expecting minor number or * in %q", text)
	}
	if !c.tryByte('.') {
		p.wild = 1
		return p, npmPartialEnd(c, text)
	}
	if isNPMWildcard(c.peek()) {
		c.advance()
		p.wild = 1
		return p, npmPartialEnd(c, text)
	}
	if p.patch, ok = c.readNumber(); !ok {
		return p, fmt.Errorf("expecting patch number or * in %q", text)
	}
	if c.tryByte('-') {
		p.prerelease = c.readUntil("+")
		if p.prerelease == "" {
			return p, fmt.Errorf("empty prerelease in %q", text)
		}
	}
	// Build metadata never affects a range.
	c.tryByte('+')
	c.readUntil("")
	return p, nil
}

// npmPartialEnd tolerates a dangling ".x"/".*" tail after a wildcard
// position and rejects anything else.
func npmPartialEnd(c *cursor, text string) error {
	for c.tryByte('.') {
		if !isNPMWildcard(c.peek()) {
			return fmt.Errorf("unexpected %q after wildcard in %q", c.peek(), text)
		}
		c.advance()
	}
	if !c.atEnd() {
		return fmt.Errorf("unexpected %q in %q", c.peek(), text)
	}
	return nil
}

func isNPMWildcard(b byte) bool { return b == 'x' || b == 'X' || b == '*' }

func (p npmPartial) version() semver.Version {
	v, err := semver.NewPrerelease(p.major, p.minor, p.patch, p.prerelease)
	if err != nil {
		// The partial parser already validated the pieces.
		panic(err)
	}
	return v
}

// comparatorBound maps a single npm comparator onto a bound.
func comparatorBound(op string, p npmPartial, defQ quality.Quality) ParseResult {
	q := defQ
	if p.prerelease != "" {
		// An explicit prerelease base asks for prereleases.
		q = quality.CI
	}
	if p.wild == 3 && (op == "" || op == "=" || op == "^" || op == "~" || op == ">=") {
		return okResult(New(semver.ZeroVersion, LockNone, defQ), false)
	}
	switch op {
	case "", "=":
		switch p.wild {
		case 0:
			return okResult(New(p.version(), LockExact, q), false)
		case 1:
			return okResult(New(p.version(), LockMinor, q), false)
		default:
			return okResult(New(p.version(), LockMajor, q), false)
		}
	case ">=":
		return okResult(New(p.version(), LockNone, q), false)
	case ">":
		switch p.wild {
		case 1:
			// >1.2 is >=1.3.0.
			return okResult(New(semver.New(p.major, p.minor+1, 0), LockNone, q), false)
		case 2:
			return okResult(New(semver.New(p.major+1, 0, 0), LockNone, q), false)
		}
		// The exclusive lower bound itself is not representable.
		return okResult(New(p.version(), LockNone, q), true)
	case "<", "<=":
		// Pure upper bounds are not representable: fall back to "anything"
		// and flag the loss.
		return okResult(New(semver.ZeroVersion, LockNone, defQ), true)
	case "~":
		if p.wild >= 2 {
			return okResult(New(p.version(), LockMajor, q), false)
		}
		return okResult(New(p.version(), LockMinor, q), false)
	case "^":
		return okResult(New(p.version(), caretLock(p), q), false)
	}
	return errResult(fmt.Errorf("unknown npm operator %q", op))
}

// caretLock freezes the left-most specified nonzero component: ^1.2.3
// allows minor and patch bumps, ^0.2.3 only patch bumps, ^0.0.3 only
// prerelease evolution.
func caretLock(p npmPartial) Lock {
	if p.major > 0 || p.wild >= 2 {
		return LockMajor
	}
	if p.minor > 0 || p.wild == 1 {
		return LockMinor
	}
	return LockPatch
}

// intersectApprox combines two space-ANDed comparators. True intersection
// leaves the model when neither side contains the other; the combination
// then keeps the stronger pieces and is flagged approximated.
func intersectApprox(a, b ParseResult) ParseResult {
	approx := a.IsApproximated || b.IsApproximated
	if a.Bound.Contains(b.Bound) {
		return okResult(b.Bound, approx)
	}
	if b.Bound.Contains(a.Bound) {
		return okResult(a.Bound, approx)
	}
	base := a.Bound.Base()
	if b.Bound.Base().Compare(base) > 0 {
		base = b.Bound.Base()
	}
	lock := a.Bound.Lock()
	if b.Bound.Lock() > lock {
		lock = b.Bound.Lock()
	}
	return okResult(New(base, lock, a.Bound.MinQuality().Intersect(b.Bound.MinQuality())), true)
}
