package quality

import (
	"fmt"
	"strings"
)

// Filter is an inclusive [Min, Max] quality interval. The zero Filter has
// no restriction: it behaves as [CI, Stable].
type Filter struct {
	min, max Quality
}

// NewFilter builds a filter from an inclusive quality interval. None on
// either side means "unrestricted" on that side. It panics when min > max:
// that is a programming error, external input goes through TryParseFilter
// which repairs a reversed interval instead.
func NewFilter(min, max Quality) Filter {
	if max != None && min > max {
		panic(fmt.Sprintf("invalid quality filter: %s > %s", min, max))
	}
	return Filter{min: min, max: max}
}

// Min returns the effective lower bound (CI when unrestricted).
func (f Filter) Min() Quality {
	if f.min == None {
		return CI
	}
	return f.min
}

// Max returns the effective upper bound (Stable when unrestricted).
func (f Filter) Max() Quality {
	if f.max == None {
		return Stable
	}
	return f.max
}

// HasMin reports whether an explicit lower bound above CI is set.
func (f Filter) HasMin() bool { return f.Min() != CI }

// HasMax reports whether an explicit upper bound below Stable is set.
func (f Filter) HasMax() bool { return f.Max() != Stable }

// Accepts reports whether q falls inside the filter. None is never accepted.
func (f Filter) Accepts(q Quality) bool {
	return q != None && f.Min() <= q && q <= f.Max()
}

// String renders "", "Min-Max", "Min-" or "-Max" so that the text
// round-trips through TryParseFilter.
func (f Filter) String() string {
	switch {
	case !f.HasMin() && !f.HasMax():
		return ""
	case !f.HasMax():
		return f.Min().String() + "-"
	case !f.HasMin():
		return "-" + f.Max().String()
	case f.Min() == f.Max():
		return f.Min().String()
	}
	return f.Min().String() + "-" + f.Max().String()
}

// TryParseFilter parses a filter. Accepted shapes: "" (no restriction), a
// single quality name (both bounds), "Min-Max", "Min-" (implicit Stable
// max) and "-Max" (implicit CI min). A reversed interval is silently
// swapped.
func TryParseFilter(s string) (Filter, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Filter{}, true
	}
	before, after, dashed := strings.Cut(s, "-")
	min, max := CI, Stable
	if before != "" {
		q, ok := TryParse(before)
		if !ok {
			return Filter{}, false
		}
		min = q
		if !dashed {
			max = q
		}
	}
	if dashed && after != "" {
		q, ok := TryParse(after)
		if !ok {
			return Filter{}, false
		}
		max = q
	}
	if min > max {
		min, max = max, min
	}
	return Filter{min: min, max: max}, true
}
