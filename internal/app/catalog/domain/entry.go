package domain

import (
	"strings"
	"time"
)

// ReadyState is the workflow state that counts toward the ready total.
const ReadyState = "Ready"

// CustomerEntry is one customer order attached to a product.
// The workflow state is the single source of truth; readiness is derived.
type CustomerEntry struct {
	id        int64
	data      string
	state     string
	createdAt time.Time
}

// NewCustomerEntry creates an entry with trimmed, non-empty data.
func NewCustomerEntry(id int64, data, state string, now time.Time) (*CustomerEntry, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, ErrEmptyEntryData
	}
	return &CustomerEntry{id: id, data: data, state: state, createdAt: now}, nil
}

// ReconstructCustomerEntry rebuilds an entry from storage.
func ReconstructCustomerEntry(id int64, data, state string, createdAt time.Time) *CustomerEntry {
	return &CustomerEntry{id: id, data: data, state: state, createdAt: createdAt}
}

// Getters
func (e *CustomerEntry) ID() int64            { return e.id }
func (e *CustomerEntry) Data() string         { return e.data }
func (e *CustomerEntry) State() string        { return e.state }
func (e *CustomerEntry) CreatedAt() time.Time { return e.createdAt }

// IsReady is the legacy readiness flag, derived from the state.
func (e *CustomerEntry) IsReady() bool {
	return e.state == ReadyState
}

func (e *CustomerEntry) clone() *CustomerEntry {
	c := *e
	return &c
}

// NormalizeStoredState reconciles a stored (state, isReady) pair.
// The state wins when both are present; an entry without a state falls back
// to ReadyState when the flag was set, else to defaultState. changed reports
// whether the stored pair disagreed with the result.
func NormalizeStoredState(state string, isReady bool, defaultState string) (normalized string, changed bool) {
	if state == "" {
		if isReady {
			return ReadyState, true
		}
		return defaultState, true
	}
	return state, isReady != (state == ReadyState)
}
