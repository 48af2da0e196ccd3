package sync

import "sort"

// Mismatch is a key present on both sides with unequal values.
type Mismatch struct {
	Key    string
	Local  string
	Remote string
}

// DriftReport classifies the differences between a local and a remote
// secret map. Keys agreeing on both sides are omitted. All slices are
// sorted by key.
type DriftReport struct {
	LocalOnly  []string
	RemoteOnly []string
	Mismatched []Mismatch
}

// InSync reports whether the two sides are identical.
func (r *DriftReport) InSync() bool {
	return len(r.LocalOnly) == 0 && len(r.RemoteOnly) == 0 && len(r.Mismatched) == 0
}

// Diff computes the drift between local and remote. Value comparison is
// exact string equality, case-sensitive, with no normalization.
func Diff(local, remote map[string]string) *DriftReport {
	report := &DriftReport{}

	for k, lv := range local {
		rv, ok := remote[k]
		if !ok {
			report.LocalOnly = append(report.LocalOnly, k)
			continue
		}
		if lv != rv {
			report.Mismatched = append(report.Mismatched, Mismatch{Key: k, Local: lv, Remote: rv})
		}
	}
	for k := range remote {
		if _, ok := local[k]; !ok {
			report.RemoteOnly = append(report.RemoteOnly, k)
		}
	}

	sort.Strings(report.LocalOnly)
	sort.Strings(report.RemoteOnly)
	sort.Slice(report.Mismatched, func(i, j int) bool {
		return report.Mismatched[i].Key < report.Mismatched[j].Key
	})

	return report
}
