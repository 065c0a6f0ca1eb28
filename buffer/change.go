package buffer

// Change is a versioned record of the most recent effective edit.
type Change struct {
	VersionBefore uint64
	VersionAfter  uint64
	Edit          Edit
	Evicted       []BundleID
}

// LastChange returns the most recent effective change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.Evicted = append([]BundleID(nil), in.Evicted...)
	return out
}

func (b *Buffer) commitChange(versionBefore uint64, ed Edit, evicted []BundleID) {
	if b.version == versionBefore {
		return
	}
	b.lastChange = Change{
		VersionBefore: versionBefore,
		VersionAfter:  b.version,
		Edit:          ed,
		Evicted:       append([]BundleID(nil), evicted...),
	}
	b.hasLastChange = true
}
