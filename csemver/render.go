package csemver

import (
	"fmt"
	"strings"
)

// renderPrerelease produces the canonical prerelease text for a component
// tuple, "" for a stable version.
//
// Long form spells the full name with dotted numbers ("alpha.4.2"); the
// number is omitted when zero unless a fix follows. Short form packs a
// one-letter code with zero-padded two-digit numbers ("a04-02") so that the
// text stays ordered under plain ASCII comparison.
func renderPrerelease(nameIdx, number, fix int, longForm bool) string {
	if nameIdx < 0 {
		return ""
	}
	if longForm {
		name := standardNames[nameIdx]
		switch {
		case fix > 0:
			return fmt.Sprintf("%s.%d.%d", name, number, fix)
		case number > 0:
			return fmt.Sprintf("%s.%d", name, number)
		}
		return name
	}
	code := shortCodes[nameIdx]
	switch {
	case fix > 0:
		return fmt.Sprintf("%c%02d-%02d", code, number, fix)
	case number > 0:
		return fmt.Sprintf("%c%02d", code, number)
	}
	return string(code)
}

func (v Version) render(longForm bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major(), v.Minor(), v.Patch())
	if v.nameIdx >= 0 {
		b.WriteByte('-')
		b.WriteString(renderPrerelease(v.nameIdx, v.number, v.fix, longForm))
	}
	return b.String()
}

// ShortForm returns the short-form text ("1.2.3-a04-02"), without build
// metadata.
func (v Version) ShortForm() string {
	if !v.IsValid() {
		return v.ParsedText()
	}
	return v.render(false)
}

// LongForm returns the long-form text ("1.2.3-alpha.4.2"), without build
// metadata.
func (v Version) LongForm() string {
	if !v.IsValid() {
		return v.ParsedText()
	}
	return v.render(true)
}

// String renders the version in its declared form, with build metadata
// appended when present. Invalid versions render their original text.
func (v Version) String() string {
	if !v.IsValid() {
		return v.ParsedText()
	}
	s := v.render(v.longForm)
	if meta := v.BuildMetaData(); meta != "" {
		s += "+" + meta
	}
	return s
}

// ToLongForm returns the same version rendered with full prerelease names.
func (v Version) ToLongForm() Version {
	c := v
	c.longForm = true
	return c
}

// ToShortForm returns the same version rendered with one-letter codes.
func (v Version) ToShortForm() Version {
	c := v
	c.longForm = false
	return c
}

// FileVersionParts splits the 64-bit file version into its four 16-bit
// fields. The value is the ordered version shifted left by one bit, the low
// bit flagging a CI build; consumers of file version resources expect these
// bits exactly.
func (v Version) FileVersionParts(isCIBuild bool) (major, minor, build, revision uint16) {
	n := uint64(v.ordered) << 1
	if isCIBuild {
		n |= 1
	}
	return uint16(n >> 48), uint16(n >> 32), uint16(n >> 16), uint16(n)
}

// FileVersion renders the 4-part file version ("Major.Minor.Build.Revision").
func (v Version) FileVersion(isCIBuild bool) string {
	a, b, c, d := v.FileVersionParts(isCIBuild)
	return fmt.Sprintf("%d.%d.%d.%d", a, b, c, d)
}
