package csemver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/csemver/quality"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantErr  bool
		nameIdx  int
		number   int
		fix      int
		longForm bool
		short    string
		long     string
	}{
		{name: "stable", text: "1.2.3", nameIdx: -1, short: "1.2.3", long: "1.2.3"},
		{name: "stable with v prefix", text: "v1.2.3", nameIdx: -1, short: "1.2.3", long: "1.2.3"},

		{name: "long alpha", text: "1.2.3-alpha", longForm: true, short: "1.2.3-a", long: "1.2.3-alpha"},
		{name: "long alpha number", text: "1.2.3-alpha.4", number: 4, longForm: true, short: "1.2.3-a04", long: "1.2.3-alpha.4"},
		{name: "long alpha number fix", text: "1.2.3-alpha.4.2", number: 4, fix: 2, longForm: true, short: "1.2.3-a04-02", long: "1.2.3-alpha.4.2"},
		{name: "long zero number with fix", text: "1.2.3-alpha.0.1", fix: 1, longForm: true, short: "1.2.3-a00-01", long: "1.2.3-alpha.0.1"},
		{name: "long rc max", text: "1.2.3-rc.99.99", nameIdx: 7, number: 99, fix: 99, longForm: true, short: "1.2.3-r99-99", long: "1.2.3-rc.99.99"},
		{name: "long preview", text: "1.2.3-preview.3", nameIdx: 6, number: 3, longForm: true, short: "1.2.3-p03", long: "1.2.3-preview.3"},
		{name: "pre alias", text: "1.2.3-pre.3", nameIdx: 6, number: 3, longForm: true, short: "1.2.3-p03", long: "1.2.3-preview.3"},
		{name: "fallback name", text: "1.2.3-nightly", nameIdx: 6, longForm: true, short: "1.2.3-p", long: "1.2.3-preview"},

		{name: "short alpha", text: "1.2.3-a", short: "1.2.3-a", long: "1.2.3-alpha"},
		{name: "short beta one digit", text: "1.2.3-b5", nameIdx: 1, number: 5, short: "1.2.3-b05", long: "1.2.3-beta.5"},
		{name: "short padded", text: "1.2.3-a04", number: 4, short: "1.2.3-a04", long: "1.2.3-alpha.4"},
		{name: "short with fix", text: "1.2.3-a04-02", number: 4, fix: 2, short: "1.2.3-a04-02", long: "1.2.3-alpha.4.2"},
		{name: "short zero number with fix", text: "1.2.3-g00-01", nameIdx: 4, fix: 1, short: "1.2.3-g00-01", long: "1.2.3-gamma.0.1"},

		{name: "trailing zero number", text: "1.2.3-alpha.0", wantErr: true},
		{name: "zero fix", text: "1.2.3-alpha.1.0", wantErr: true},
		{name: "number out of range", text: "1.2.3-alpha.100", wantErr: true},
		{name: "fix out of range", text: "1.2.3-alpha.1.100", wantErr: true},
		{name: "too many prerelease parts", text: "1.2.3-alpha.1.2.3", wantErr: true},
		{name: "numeric tag", text: "1.2.3-0", wantErr: true},
		{name: "non numeric number", text: "1.2.3-alpha.beta", wantErr: true},
		{name: "short zero number", text: "1.2.3-a00", wantErr: true},
		{name: "short zero fix", text: "1.2.3-a04-00", wantErr: true},
		{name: "major out of range", text: "100000.0.0", wantErr: true},
		{name: "minor out of range", text: "1.50000.0", wantErr: true},
		{name: "patch out of range", text: "1.2.10000", wantErr: true},
		{name: "not semver at all", text: "1.2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, TryParse(tt.text).IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.nameIdx, v.PrereleaseNameIdx())
			assert.Equal(t, tt.number, v.PrereleaseNumber())
			assert.Equal(t, tt.fix, v.PrereleasePatch())
			assert.Equal(t, tt.longForm, v.IsLongForm())
			assert.Equal(t, tt.short, v.ShortForm())
			assert.Equal(t, tt.long, v.LongForm())

			// Both renderings parse back to the same point.
			assert.Equal(t, v.OrderedVersion(), MustParse(v.ShortForm()).OrderedVersion())
			assert.Equal(t, v.OrderedVersion(), MustParse(v.LongForm()).OrderedVersion())
		})
	}
}

func TestStringFollowsDeclaredForm(t *testing.T) {
	short := MustParse("1.2.3-a04")
	long := MustParse("1.2.3-alpha.4")
	assert.Equal(t, "1.2.3-a04", short.String())
	assert.Equal(t, "1.2.3-alpha.4", long.String())
	assert.True(t, short.Equal(long))
	assert.Equal(t, "1.2.3-alpha.4", short.ToLongForm().String())
	assert.Equal(t, "1.2.3-a04", long.ToShortForm().String())
}

func TestOrderedVersionAnchors(t *testing.T) {
	// 0.0.0-alpha is the very first version; 0 is reserved for invalid.
	assert.Equal(t, FirstOrderedVersion, MustParse("0.0.0-alpha").OrderedVersion())
	// A stable release sits right above its 80000 prereleases.
	assert.Equal(t, int64(80001), MustParse("0.0.0").OrderedVersion())
	assert.Equal(t, int64(80000), MustParse("0.0.0-rc.99.99").OrderedVersion())
	assert.Equal(t, int64(80002), MustParse("0.0.1-alpha").OrderedVersion())
	assert.Equal(t, LastOrderedVersion, MustParse("99999.49999.9999").OrderedVersion())

	var zero Version
	assert.Equal(t, int64(0), zero.OrderedVersion())
	assert.Equal(t, int64(0), TryParse("junk").OrderedVersion())
}

func TestCreate(t *testing.T) {
	v, err := Create(FirstOrderedVersion)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0-a", v.String())
	assert.Equal(t, "0.0.0-alpha", v.LongForm())

	v, err = Create(LastOrderedVersion)
	require.NoError(t, err)
	assert.Equal(t, "99999.49999.9999", v.String())

	for _, bad := range []int64{0, -1, LastOrderedVersion + 1} {
		_, err := Create(bad)
		assert.Error(t, err, "Create(%d)", bad)
	}
}

func TestCreateRoundTrip(t *testing.T) {
	texts := []string{
		"0.0.0-alpha",
		"0.0.0-alpha.0.1",
		"0.0.0-beta.2.3",
		"0.0.0-rc.99.99",
		"0.0.0",
		"0.0.1-alpha",
		"1.0.0",
		"1.2.3-a04-02",
		"1.2.3-preview.7",
		"99999.0.0-alpha",
		"99999.49999.9999-rc.99.99",
		"99999.49999.9999",
	}
	for _, text := range texts {
		v := MustParse(text)
		back, err := Create(v.OrderedVersion())
		require.NoError(t, err, text)
		assert.Equal(t, v.Major(), back.Major(), text)
		assert.Equal(t, v.Minor(), back.Minor(), text)
		assert.Equal(t, v.Patch(), back.Patch(), text)
		assert.Equal(t, v.PrereleaseNameIdx(), back.PrereleaseNameIdx(), text)
		assert.Equal(t, v.PrereleaseNumber(), back.PrereleaseNumber(), text)
		assert.Equal(t, v.PrereleasePatch(), back.PrereleasePatch(), text)
		assert.Equal(t, v.OrderedVersion(), back.OrderedVersion(), text)
	}
}

func TestCreateRoundTripRandom(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	var prev Version
	for i := 0; i < 1000; i++ {
		ordered := 1 + r.Int63n(LastOrderedVersion)
		v, err := Create(ordered)
		require.NoError(t, err)
		require.Equal(t, ordered, v.OrderedVersion(), "Create(%d) re-encoded to %d", ordered, v.OrderedVersion())

		// Both textual forms parse back to the same ordered integer.
		require.Equal(t, ordered, MustParse(v.ShortForm()).OrderedVersion(), v.ShortForm())
		require.Equal(t, ordered, MustParse(v.LongForm()).OrderedVersion(), v.LongForm())

		// Ordered comparison agrees with SemVer precedence of the
		// canonical short form.
		if i > 0 {
			want := v.SVersion().Compare(prev.SVersion())
			require.Equal(t, want, v.Compare(prev), "%s vs %s", v, prev)
		}
		prev = v
	}
}

func TestCompareAndEqual(t *testing.T) {
	a := MustParse("1.2.3-a04")
	b := MustParse("1.2.3-alpha.4")
	c := MustParse("1.2.3-alpha.5")
	assert.Equal(t, 0, a.Compare(b))
	assert.True(t, a.Equal(b))
	assert.Equal(t, -1, a.Compare(c))
	assert.Equal(t, 1, c.Compare(a))

	var zero Version
	assert.False(t, zero.Equal(zero), "invalid versions never compare equal")
	assert.Equal(t, -1, zero.Compare(a))
}

func TestQuality(t *testing.T) {
	tests := []struct {
		text string
		want quality.Quality
	}{
		{"1.2.3-alpha", quality.Exploratory},
		{"1.2.3-b02", quality.Exploratory},
		{"1.2.3-delta", quality.Preview},
		{"1.2.3-epsilon.2", quality.Preview},
		{"1.2.3-gamma", quality.Preview},
		{"1.2.3-kappa", quality.Preview},
		{"1.2.3-preview.1", quality.Preview},
		{"1.2.3-rc.1", quality.ReleaseCandidate},
		{"1.2.3", quality.Stable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MustParse(tt.text).Quality(), tt.text)
	}
	var zero Version
	assert.Equal(t, quality.None, zero.Quality())
}

func TestNewPrerelease(t *testing.T) {
	v := NewPrerelease(1, 2, 3, 7, 4, 0)
	assert.Equal(t, "1.2.3-r04", v.String())
	assert.Equal(t, "rc", v.PrereleaseName())

	assert.Equal(t, "5.0.0", New(5, 0, 0).String())
	assert.Equal(t, "", New(5, 0, 0).PrereleaseName())

	assert.Panics(t, func() { New(MaxMajor+1, 0, 0) })
	assert.Panics(t, func() { New(0, MaxMinor+1, 0) })
	assert.Panics(t, func() { New(0, 0, MaxPatch+1) })
	assert.Panics(t, func() { NewPrerelease(1, 2, 3, 8, 0, 0) })
	assert.Panics(t, func() { NewPrerelease(1, 2, 3, 0, 100, 0) })
	assert.Panics(t, func() { NewPrerelease(1, 2, 3, 0, 0, 100) })
	assert.Panics(t, func() { NewPrerelease(1, 2, 3, -1, 1, 0) })
}

func TestWithBuildMetaData(t *testing.T) {
	v := MustParse("1.2.3-a04").WithBuildMetaData("sha.5114f85")
	assert.Equal(t, "1.2.3-a04+sha.5114f85", v.String())
	assert.True(t, v.Equal(MustParse("1.2.3-a04")), "metadata never affects identity")
	assert.Panics(t, func() { TryParse("junk").WithBuildMetaData("meta") })
}

func TestFileVersion(t *testing.T) {
	first, err := Create(FirstOrderedVersion)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.2", first.FileVersion(false))
	assert.Equal(t, "0.0.0.3", first.FileVersion(true))

	// 0.0.0 is ordered 80001: doubled to 160002 = 2<<16 | 28930.
	assert.Equal(t, "0.0.2.28930", MustParse("0.0.0").FileVersion(false))

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		ordered := 1 + r.Int63n(LastOrderedVersion)
		v, err := Create(ordered)
		require.NoError(t, err)
		for _, ci := range []bool{false, true} {
			a, b, c, d := v.FileVersionParts(ci)
			n := uint64(a)<<48 | uint64(b)<<32 | uint64(c)<<16 | uint64(d)
			require.Equal(t, ordered, int64(n>>1))
			require.Equal(t, ci, n&1 == 1)
		}
	}
}

func TestStandardPrereleaseNames(t *testing.T) {
	names := StandardPrereleaseNames()
	require.Equal(t, []string{"alpha", "beta", "delta", "epsilon", "gamma", "kappa", "preview", "rc"}, names)
	names[0] = "mutated"
	assert.Equal(t, "alpha", StandardPrereleaseNames()[0], "callers get a copy")
}
