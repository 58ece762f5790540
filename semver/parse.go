package semver

import (
	"fmt"
	"strings"
)

// maxComponent bounds the numeric components; larger values are rejected
// rather than silently overflowing.
const maxComponent = 1<<31 - 1

// ParseOptions controls optional parts of the version grammar.
type ParseOptions struct {
	// CheckBuildMetaData validates the build metadata identifiers (numeric
	// identifiers must not carry a leading zero). When false the metadata
	// text is kept as-is.
	CheckBuildMetaData bool
}

// Parse parses text as a SemVer 2.0 version and returns an error when the
// text is malformed.
func Parse(text string) (Version, error) {
	v := TryParse(text)
	if !v.valid {
		return v, fmt.Errorf("invalid version %q: %s", text, v.ErrorMessage())
	}
	return v, nil
}

// MustParse is Parse for known-good literals; it panics on malformed input.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// TryParse parses text as a SemVer 2.0 version. It never fails: malformed
// input yields an invalid Version carrying the original text and an error
// message. Build metadata syntax is checked.
func TryParse(text string) Version {
	return TryParseWith(text, ParseOptions{CheckBuildMetaData: true})
}

// TryParseWith is TryParse with explicit options.
func TryParseWith(text string, opts ParseOptions) Version {
	s := text
	if len(s) > 0 && (s[0] == 'v' || s[0] == 'V') {
		s = s[1:]
	}
	var meta, pre string
	if i := strings.IndexByte(s, '+'); i >= 0 {
		meta = s[i+1:]
		s = s[:i]
		if meta == "" {
			return invalid(text, "empty build metadata after '+'")
		}
		if opts.CheckBuildMetaData {
			if err := checkIdentifiers(meta, true); err != nil {
				return invalid(text, fmt.Sprintf("invalid build metadata %q: %v", meta, err))
			}
		}
	}
	if i := strings.IndexByte(s, '-'); i >= 0 {
		pre = s[i+1:]
		s = s[:i]
		if pre == "" {
			return invalid(text, "empty prerelease after '-'")
		}
		if err := checkIdentifiers(pre, true); err != nil {
			return invalid(text, fmt.Sprintf("invalid prerelease %q: %v", pre, err))
		}
	}
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return invalid(text, "expected Major.Minor.Patch")
	}
	major, err := parseComponent(parts[0], "major")
	if err != nil {
		return invalid(text, err.Error())
	}
	minor, err := parseComponent(parts[1], "minor")
	if err != nil {
		return invalid(text, err.Error())
	}
	patch, err := parseComponent(parts[2], "patch")
	if err != nil {
		return invalid(text, err.Error())
	}
	v := Version{
		major:         major,
		minor:         minor,
		patch:         patch,
		prerelease:    pre,
		buildMetaData: meta,
		parsedText:    text,
		valid:         true,
	}
	v.normalized = renderNormalized(major, minor, patch, pre)
	return v
}

func invalid(text, msg string) Version {
	return Version{
		major:        -1,
		minor:        -1,
		patch:        -1,
		parsedText:   text,
		errorMessage: msg,
	}
}

func parseComponent(s, name string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("missing %s number", name)
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, fmt.Errorf("%s number has a leading zero", name)
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, fmt.Errorf("%s number contains %q", name, s[i])
		}
		n = n*10 + int(s[i]-'0')
		if n > maxComponent {
			return 0, fmt.Errorf("%s number is too big", name)
		}
	}
	return n, nil
}

// checkIdentifiers validates a dot-separated identifier list (prerelease or
// build metadata). Identifiers are non-empty [0-9A-Za-z-]+; when
// noLeadingZero is set, numeric identifiers other than "0" must not start
// with '0'.
func checkIdentifiers(s string, noLeadingZero bool) error {
	for _, id := range strings.Split(s, ".") {
		if id == "" {
			return fmt.Errorf("empty identifier")
		}
		numeric := true
		for i := 0; i < len(id); i++ {
			c := id[i]
			if !isDigit(c) {
				numeric = false
				if !isLetter(c) && c != '-' {
					return fmt.Errorf("identifier %q contains %q", id, c)
				}
			}
		}
		if noLeadingZero && numeric && len(id) > 1 && id[0] == '0' {
			return fmt.Errorf("numeric identifier %q has a leading zero", id)
		}
	}
	return nil
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
