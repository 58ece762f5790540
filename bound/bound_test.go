package bound

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/csemver/quality"
	"github.com/petrarca/csemver/semver"
)

func TestNew(t *testing.T) {
	b := New(semver.MustParse("1.2.3"), LockMinor, quality.Stable)
	assert.Equal(t, "1.2.3", b.Base().String())
	assert.Equal(t, LockMinor, b.Lock())
	assert.Equal(t, quality.Stable, b.MinQuality())

	// None is normalized away: MinQuality never stores it.
	assert.Equal(t, quality.CI, New(semver.MustParse("1.2.3"), LockNone, quality.None).MinQuality())

	assert.Panics(t, func() { New(semver.TryParse("junk"), LockNone, quality.CI) })
}

func TestSetters(t *testing.T) {
	b := New(semver.MustParse("1.2.3"), LockMinor, quality.Stable)
	assert.Equal(t, LockExact, b.SetLock(LockExact).Lock())
	assert.Equal(t, quality.CI, b.SetMinQuality(quality.None).MinQuality())
	assert.Equal(t, b, b.SetLock(LockMinor))
	assert.Equal(t, b, b.SetMinQuality(quality.Stable))
}

func TestSatisfy(t *testing.T) {
	tests := []struct {
		bound   Bound
		version string
		want    bool
	}{
		// The base always satisfies its own bound, whatever its quality.
		{New(semver.MustParse("1.2.3"), LockExact, quality.Stable), "1.2.3", true},
		{New(semver.MustParse("1.2.3-a02"), LockExact, quality.Stable), "1.2.3-a02", true},
		{New(semver.MustParse("1.2.3"), LockExact, quality.Stable), "1.2.4", false},

		// Below the base.
		{New(semver.MustParse("1.2.3"), LockNone, quality.CI), "1.2.2", false},
		{New(semver.MustParse("1.2.3"), LockNone, quality.CI), "1.2.3-rc.1", false},

		// Lock prefixes.
		{New(semver.MustParse("1.2.3"), LockMinor, quality.Stable), "1.2.9", true},
		{New(semver.MustParse("1.2.3"), LockMinor, quality.Stable), "1.3.0", false},
		{New(semver.MustParse("1.2.3"), LockMajor, quality.Stable), "1.9.9", true},
		{New(semver.MustParse("1.2.3"), LockMajor, quality.Stable), "2.0.0", false},
		{New(semver.MustParse("1.2.3-a02"), LockPatch, quality.CI), "1.2.3-b01", true},
		{New(semver.MustParse("1.2.3-a02"), LockPatch, quality.CI), "1.2.4-a01", false},
		{New(semver.MustParse("1.2.3-a02"), LockPatch, quality.CI), "1.2.3", true},

		// Quality gate.
		{New(semver.MustParse("1.2.3"), LockMajor, quality.Stable), "1.3.0-rc.1", false},
		{New(semver.MustParse("1.2.3"), LockMajor, quality.ReleaseCandidate), "1.3.0-rc.1", true},
		{New(semver.MustParse("1.2.3"), LockMajor, quality.CI), "1.3.0-a01", true},
		{New(semver.MustParse("1.2.3"), LockMajor, quality.Preview), "1.3.0-a01", false},

		// Invalid candidates never satisfy anything.
		{All, "not-a-version", false},
	}
	for _, tt := range tests {
		got := tt.bound.Satisfy(semver.TryParse(tt.version))
		assert.Equal(t, tt.want, got, "%s.Satisfy(%s)", tt.bound, tt.version)
	}
}

func TestAll(t *testing.T) {
	for _, text := range []string{"0.0.0-0", "0.0.1-whatever", "1.2.3", "99999.0.0-rc.1"} {
		assert.True(t, All.Satisfy(semver.MustParse(text)), text)
	}
}

func TestVersionQuality(t *testing.T) {
	tests := []struct {
		version string
		want    quality.Quality
	}{
		{"1.2.3", quality.Stable},
		{"1.2.3-a02", quality.Exploratory},
		{"1.2.3-gamma.1", quality.Preview},
		{"1.2.3-rc.2", quality.ReleaseCandidate},
		// Not CSemVer: the prerelease-name heuristic applies.
		{"1.2.3-alpha.beta", quality.Exploratory},
		{"1.2.3-rc.1.2.3", quality.ReleaseCandidate},
		{"1.2.3-20130313", quality.CI},
		{"not-a-version", quality.None},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VersionQuality(semver.TryParse(tt.version)), tt.version)
	}
}

func TestUnion(t *testing.T) {
	v := semver.MustParse
	tests := []struct {
		name string
		a, b Bound
		want Bound
	}{
		{
			"identical",
			New(v("1.2.3"), LockMinor, quality.Stable),
			New(v("1.2.3"), LockMinor, quality.Stable),
			New(v("1.2.3"), LockMinor, quality.Stable),
		},
		{
			"lower base wins",
			New(v("1.2.3"), LockNone, quality.Stable),
			New(v("1.2.0"), LockNone, quality.Stable),
			New(v("1.2.0"), LockNone, quality.Stable),
		},
		{
			"weaker quality wins",
			New(v("1.0.0"), LockNone, quality.Stable),
			New(v("1.0.0"), LockNone, quality.CI),
			New(v("1.0.0"), LockNone, quality.CI),
		},
		{
			"same major keeps the weaker lock",
			New(v("1.2.0"), LockMinor, quality.Stable),
			New(v("1.5.0"), LockMajor, quality.Stable),
			New(v("1.2.0"), LockMajor, quality.Stable),
		},
		{
			"minor locks on diverging minors degrade to the major lock",
			New(v("1.2.0"), LockMinor, quality.Stable),
			New(v("1.5.0"), LockMinor, quality.Stable),
			New(v("1.2.0"), LockMajor, quality.Stable),
		},
		{
			"major locks on diverging majors degrade to no lock",
			New(v("1.0.0"), LockMajor, quality.Stable),
			New(v("2.0.0"), LockMajor, quality.Stable),
			New(v("1.0.0"), LockNone, quality.Stable),
		},
		{
			"exact locks on diverging patches degrade to the minor lock",
			New(v("1.2.3"), LockExact, quality.Stable),
			New(v("1.2.4"), LockExact, quality.Stable),
			New(v("1.2.3"), LockMinor, quality.Stable),
		},
		{
			"a prerelease base lowers the quality floor",
			New(v("1.0.0"), LockNone, quality.Stable),
			New(v("2.0.0-beta"), LockNone, quality.Stable),
			New(v("1.0.0"), LockNone, quality.Exploratory),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Union(tt.b)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
			assert.True(t, got.Equal(tt.b.Union(tt.a)), "union must be commutative")
		})
	}
}

// sampleBounds and sampleVersions drive the algebraic property checks.
func sampleBounds() []Bound {
	bases := []string{"0.0.0-0", "1.0.0", "1.2.3", "1.2.3-a02", "1.2.4", "2.0.0-beta"}
	locks := []Lock{LockNone, LockMajor, LockMinor, LockPatch, LockExact}
	qualities := []quality.Quality{quality.CI, quality.Exploratory, quality.Stable}
	var out []Bound
	for _, b := range bases {
		for _, l := range locks {
			for _, q := range qualities {
				out = append(out, New(semver.MustParse(b), l, q))
			}
		}
	}
	return out
}

func sampleVersions() []semver.Version {
	texts := []string{
		"0.0.0-0", "0.5.0", "1.0.0", "1.2.3-a01", "1.2.3-a02", "1.2.3-b01",
		"1.2.3", "1.2.4-rc.1", "1.2.4", "1.3.0", "1.9.9", "2.0.0-beta",
		"2.0.0", "3.4.5-nightly", "3.4.5",
	}
	out := make([]semver.Version, len(texts))
	for i, s := range texts {
		out[i] = semver.MustParse(s)
	}
	return out
}

func TestUnionProperties(t *testing.T) {
	bounds := sampleBounds()
	versions := sampleVersions()
	for _, a := range bounds {
		require.True(t, a.Union(a).Equal(a), "union must be idempotent: %s", a)
		for _, b := range bounds {
			u := a.Union(b)
			require.True(t, u.Equal(b.Union(a)), "union must be commutative: %s, %s", a, b)
			for _, v := range versions {
				if a.Satisfy(v) || b.Satisfy(v) {
					require.True(t, u.Satisfy(v),
						"union %s of %s and %s must keep accepting %s", u, a, b, v)
				}
			}
		}
	}
}

func TestContains(t *testing.T) {
	v := semver.MustParse
	wide := New(v("1.0.0"), LockMajor, quality.CI)
	narrow := New(v("1.2.0"), LockMinor, quality.Stable)
	assert.True(t, wide.Contains(narrow))
	assert.False(t, narrow.Contains(wide))
	assert.True(t, wide.Contains(wide))
	assert.True(t, All.Contains(narrow))
	assert.True(t, All.Contains(wide))
	assert.False(t, narrow.Contains(All))

	// A base outside the region breaks containment whatever the locks.
	assert.False(t, wide.Contains(New(v("2.1.0"), LockExact, quality.Stable)))
}

func TestContainsImpliesSatisfaction(t *testing.T) {
	bounds := sampleBounds()
	versions := sampleVersions()
	for _, a := range bounds {
		for _, b := range bounds {
			if !a.Contains(b) {
				continue
			}
			for _, v := range versions {
				if b.Satisfy(v) {
					require.True(t, a.Satisfy(v),
						"%s contains %s but rejects %s", a, b, v)
				}
			}
		}
	}
}

func TestCompare(t *testing.T) {
	v := semver.MustParse
	a := New(v("1.0.0"), LockNone, quality.CI)
	b := New(v("1.0.0"), LockNone, quality.Stable)
	c := New(v("1.0.0"), LockMajor, quality.Stable)
	d := New(v("1.0.1"), LockNone, quality.CI)

	assert.Equal(t, -1, a.Compare(b), "lower quality orders first")
	assert.Equal(t, -1, b.Compare(c), "weaker lock orders first")
	assert.Equal(t, -1, c.Compare(d), "base dominates")
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 1, d.Compare(a))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
}

func TestString(t *testing.T) {
	assert.Equal(t, "0.0.0-0[None,CI]", All.String())
	assert.Equal(t, "1.2.3[LockMinor,Stable]",
		New(semver.MustParse("1.2.3"), LockMinor, quality.Stable).String())
	assert.Equal(t, "1.2.3[Lock,ReleaseCandidate]",
		New(semver.MustParse("1.2.3"), LockExact, quality.ReleaseCandidate).String())
}

func TestLockString(t *testing.T) {
	assert.Equal(t, "None", LockNone.String())
	assert.Equal(t, "LockMajor", LockMajor.String())
	assert.Equal(t, "Lock", LockExact.String())
	assert.Equal(t, "None", Lock(99).String())
	assert.Equal(t, LockMajor, LockMinor.Union(LockMajor))
}
