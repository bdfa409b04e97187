package domain

// AllStates is the pseudo state name used for the unfiltered bulk view.
const AllStates = "All"

// EntryRecord is a customer entry tagged with the product it belongs to.
type EntryRecord struct {
	Entry        *CustomerEntry
	ProductID    int64
	ProductName  string
	ProductPrice *Money
}

// StateCount is the number of flattened entries in one state.
type StateCount struct {
	State string
	Color string
	Count int
}

// WorkflowSummary is the bulk view header: the total plus one bucket per
// configured state, in configuration order.
type WorkflowSummary struct {
	All    int
	States []StateCount
}

// Count returns the bucket size for state, or All for AllStates.
func (s WorkflowSummary) Count(state string) int {
	if state == AllStates {
		return s.All
	}
	for _, c := range s.States {
		if c.State == state {
			return c.Count
		}
	}
	return 0
}

// Flatten lists every entry of every active product in product order, then
// entry order.
func Flatten(products []*Product) []EntryRecord {
	var n int
	for _, p := range products {
		n += len(p.entries)
	}
	out := make([]EntryRecord, 0, n)
	for _, p := range products {
		for _, e := range p.entries {
			out = append(out, EntryRecord{
				Entry:        e,
				ProductID:    p.id,
				ProductName:  p.name,
				ProductPrice: p.price,
			})
		}
	}
	return out
}

// Aggregate counts records per configured state. Records in states that are
// no longer configured count toward All only.
func Aggregate(records []EntryRecord, config *BusinessConfig) WorkflowSummary {
	states := config.States()
	summary := WorkflowSummary{All: len(records), States: make([]StateCount, len(states))}

	index := make(map[string]int, len(states))
	for i, s := range states {
		summary.States[i] = StateCount{State: s.Name, Color: s.Color}
		index[s.Name] = i
	}
	for _, r := range records {
		if i, ok := index[r.Entry.state]; ok {
			summary.States[i].Count++
		}
	}
	return summary
}

// FilterByState keeps records in state. A nil state, or AllStates, keeps
// everything.
func FilterByState(records []EntryRecord, state *string) []EntryRecord {
	if state == nil || *state == AllStates {
		return records
	}
	out := make([]EntryRecord, 0, len(records))
	for _, r := range records {
		if r.Entry.state == *state {
			out = append(out, r)
		}
	}
	return out
}

// SelectForExport resolves the export set. An explicit selection of entry
// ids wins over the state filter; otherwise the state-filtered records are
// used. An empty result is ErrNothingToExport.
func SelectForExport(records []EntryRecord, selectedIDs []int64, state *string) ([]EntryRecord, error) {
	var out []EntryRecord
	if len(selectedIDs) > 0 {
		selected := make(map[int64]struct{}, len(selectedIDs))
		for _, id := range selectedIDs {
			selected[id] = struct{}{}
		}
		for _, r := range records {
			if _, ok := selected[r.Entry.id]; ok {
				out = append(out, r)
			}
		}
	} else {
		out = FilterByState(records, state)
	}

	if len(out) == 0 {
		return nil, ErrNothingToExport
	}
	return out, nil
}
