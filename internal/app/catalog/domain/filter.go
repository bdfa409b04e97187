package domain

import "strings"

// EntryFilter selects customer entries. Both conditions must hold; a zero
// value matches everything.
type EntryFilter struct {
	// Search is matched case-insensitively as a substring of the entry data.
	Search string
	// State, when set, must equal the entry's state exactly.
	State string
}

// Matches reports whether e passes the filter.
func (f EntryFilter) Matches(e *CustomerEntry) bool {
	if f.State != "" && e.state != f.State {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	return term == "" || strings.Contains(strings.ToLower(e.data), term)
}

// Apply returns the matching entries, preserving order.
func (f EntryFilter) Apply(entries []*CustomerEntry) []*CustomerEntry {
	out := make([]*CustomerEntry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
