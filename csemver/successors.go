package csemver

// DirectSuccessors returns, in ascending order, every version that may
// directly follow this one. The set is finite (a few tens of entries at
// most) and recomputed on each call.
//
// From a prerelease: the next prerelease fix, then (unless patchesOnly) the
// next prerelease number and each further prerelease name up to rc, then
// the release of the same Major.Minor.Patch. Then come the next patch, the
// next minor and the next major, each offered as all eight prerelease names
// followed by the release itself. A prerelease blocks the patch bump unless
// Major is 0: before 1.0.0 there is no compatibility promise to protect.
// Likewise the minor bump requires Patch 0 and the major bump requires
// Minor and Patch 0 while a prerelease is in flight.
func (v Version) DirectSuccessors(patchesOnly bool) []Version {
	if !v.IsValid() {
		return nil
	}
	major, minor, patch := v.Major(), v.Minor(), v.Patch()
	var out []Version
	if v.nameIdx >= 0 {
		if v.fix < MaxPrereleasePatch {
			out = append(out, newStd(major, minor, patch, v.nameIdx, v.number, v.fix+1, false))
		}
		if !patchesOnly {
			if v.number < MaxPrereleaseNumber {
				out = append(out, newStd(major, minor, patch, v.nameIdx, v.number+1, 0, false))
			}
			for idx := v.nameIdx + 1; idx <= maxPrereleaseNameIdx; idx++ {
				out = append(out, newStd(major, minor, patch, idx, 0, 0, false))
			}
		}
		out = append(out, newStd(major, minor, patch, -1, 0, 0, false))
	}
	if v.nameIdx < 0 || major == 0 {
		if patch < MaxPatch {
			out = appendAllForms(out, major, minor, patch+1)
		}
	}
	if !patchesOnly {
		if minor < MaxMinor && (v.nameIdx < 0 || patch == 0 || major == 0) {
			out = appendAllForms(out, major, minor+1, 0)
		}
		if major < MaxMajor && (v.nameIdx < 0 || (minor == 0 && patch == 0) || major == 0) {
			out = appendAllForms(out, major+1, 0, 0)
		}
	}
	return out
}

// appendAllForms appends major.minor.patch as each of the eight prerelease
// names and finally as the release itself.
func appendAllForms(out []Version, major, minor, patch int) []Version {
	for idx := 0; idx <= maxPrereleaseNameIdx; idx++ {
		out = append(out, newStd(major, minor, patch, idx, 0, 0, false))
	}
	return append(out, newStd(major, minor, patch, -1, 0, 0, false))
}

// FirstPossibleVersions returns the versions a project may start from when
// no release exists yet: 0.0.0, 0.1.0 and 1.0.0, each as any prerelease or
// as the release itself.
func FirstPossibleVersions() []Version {
	var out []Version
	out = appendAllForms(out, 0, 0, 0)
	out = appendAllForms(out, 0, 1, 0)
	return appendAllForms(out, 1, 0, 0)
}

// IsDirectPredecessor reports whether previous may directly precede this
// version. An invalid (or zero) previous stands for "no release yet" and
// accepts exactly the FirstPossibleVersions. The definition is membership
// in previous.DirectSuccessors(false); any closed-form shortcut must agree
// with it.
func (v Version) IsDirectPredecessor(previous Version) bool {
	if !v.IsValid() {
		return false
	}
	if !previous.IsValid() {
		return containsOrdered(FirstPossibleVersions(), v.ordered)
	}
	if previous.ordered >= v.ordered {
		return false
	}
	return containsOrdered(previous.DirectSuccessors(false), v.ordered)
}

func containsOrdered(vs []Version, ordered int64) bool {
	for _, c := range vs {
		if c.ordered == ordered {
			return true
		}
	}
	return false
}
