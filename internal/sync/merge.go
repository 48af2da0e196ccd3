package sync

// Policy selects the conflict rule applied when a key exists on both
// sides of a merge.
type Policy int

const (
	// Overwrite makes the incoming value win on conflict.
	Overwrite Policy = iota
	// Preserve keeps the existing value on conflict; incoming keys not
	// already present are still added.
	Preserve
)

func (p Policy) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	case Preserve:
		return "preserve"
	default:
		return "unknown"
	}
}

// Merge combines existing and incoming into a new map under the given
// policy. Neither input is modified. Every key present in either input
// appears in the result.
func Merge(existing, incoming map[string]string, policy Policy) map[string]string {
	merged := make(map[string]string, len(existing)+len(incoming))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range incoming {
		if policy == Preserve {
			if _, ok := merged[k]; ok {
				continue
			}
		}
		merged[k] = v
	}
	return merged
}
