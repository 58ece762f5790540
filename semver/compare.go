package semver

import "strings"

// Compare orders versions by SemVer 2.0 precedence. Build metadata is
// ignored. Invalid versions order below every valid version and compare
// equal to each other, so mixed slices sort without special casing.
//
// Alphanumeric prerelease identifiers compare by case-sensitive ASCII
// ordinal, as the SemVer 2.0 specification mandates.
func (v Version) Compare(o Version) int {
	if !v.valid || !o.valid {
		return compareInt(boolToInt(v.valid), boolToInt(o.valid))
	}
	if c := compareInt(v.major, o.major); c != 0 {
		return c
	}
	if c := compareInt(v.minor, o.minor); c != 0 {
		return c
	}
	if c := compareInt(v.patch, o.patch); c != 0 {
		return c
	}
	return comparePrerelease(v.prerelease, o.prerelease)
}

// Equal reports whether the two versions have the same precedence and the
// same prerelease text. Build metadata is ignored.
func (v Version) Equal(o Version) bool {
	if !v.valid || !o.valid {
		return v.valid == o.valid
	}
	return v.major == o.major && v.minor == o.minor && v.patch == o.patch &&
		v.prerelease == o.prerelease
}

func comparePrerelease(a, b string) int {
	if a == b {
		return 0
	}
	// No prerelease has higher precedence than any prerelease.
	if a == "" {
		return 1
	}
	if b == "" {
		return -1
	}
	aids := strings.Split(a, ".")
	bids := strings.Split(b, ".")
	for i := 0; i < len(aids) && i < len(bids); i++ {
		if c := compareIdentifier(aids[i], bids[i]); c != 0 {
			return c
		}
	}
	// Shared identifiers are equal: the longer list has higher precedence.
	return compareInt(len(aids), len(bids))
}

func compareIdentifier(a, b string) int {
	an, aNum := identifierNumber(a)
	bn, bNum := identifierNumber(b)
	switch {
	case aNum && bNum:
		return compareInt(an, bn)
	case aNum:
		// Numeric identifiers have lower precedence than alphanumeric ones.
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(a, b)
}

func identifierNumber(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
		if n > maxComponent {
			// Identifiers this large never appear in practice; saturate so
			// the ordering stays total.
			n = maxComponent
		}
	}
	return n, true
}

func compareInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
