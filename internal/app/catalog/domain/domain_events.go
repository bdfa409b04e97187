package domain

import (
	"strconv"
	"time"
)

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredTime() time.Time
}

// Event type names as written to the activity log.
const (
	EventProductCreated      = "product.created"
	EventProductCountChanged = "product.count_changed"
	EventProductNoteChanged  = "product.note_changed"
	EventProductPhotoChanged = "product.photo_changed"
	EventProductDeleted      = "product.deleted"
	EventProductArchived     = "product.archived"
	EventProductRestored     = "product.restored"
	EventProductPurged       = "product.purged"

	EventEntryAdded        = "entry.added"
	EventEntryUpdated      = "entry.updated"
	EventEntryDeleted      = "entry.deleted"
	EventEntryStateChanged = "entry.state_changed"

	EventBusinessInfoUpdated = "business.info_updated"
	EventBusinessLogoChanged = "business.logo_changed"
	EventStateAdded          = "business.state_added"
	EventStateColorChanged   = "business.state_color_changed"
	EventStateRemoved        = "business.state_removed"
)

// BusinessAggregateID is the aggregate id used for configuration events.
const BusinessAggregateID = "business"

// ProductEvent is emitted for lifecycle changes of a product.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  int64     `json:"productId"`
	Name       string    `json:"name"`
	Count      *int      `json:"count,omitempty"`
	Note       *string   `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e *ProductEvent) EventType() string       { return e.Type }
func (e *ProductEvent) AggregateID() string     { return strconv.FormatInt(e.ProductID, 10) }
func (e *ProductEvent) OccurredTime() time.Time { return e.OccurredAt }

// EntryEvent is emitted for changes to a product's customer entries.
type EntryEvent struct {
	Type       string    `json:"type"`
	ProductID  int64     `json:"productId"`
	EntryID    int64     `json:"entryId"`
	State      string    `json:"state,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e *EntryEvent) EventType() string       { return e.Type }
func (e *EntryEvent) AggregateID() string     { return strconv.FormatInt(e.ProductID, 10) }
func (e *EntryEvent) OccurredTime() time.Time { return e.OccurredAt }

// BusinessEvent is emitted for changes to the business configuration.
type BusinessEvent struct {
	Type       string    `json:"type"`
	State      string    `json:"state,omitempty"`
	Color      string    `json:"color,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e *BusinessEvent) EventType() string       { return e.Type }
func (e *BusinessEvent) AggregateID() string     { return BusinessAggregateID }
func (e *BusinessEvent) OccurredTime() time.Time { return e.OccurredAt }

// eventRecorder buffers events until the owning command commits.
type eventRecorder struct {
	events []DomainEvent
}

func (r *eventRecorder) recordEvent(event DomainEvent) {
	r.events = append(r.events, event)
}

// DomainEvents returns the events recorded since the last ClearEvents.
func (r *eventRecorder) DomainEvents() []DomainEvent { return r.events }

// ClearEvents clears all recorded domain events (called after commit).
func (r *eventRecorder) ClearEvents() { r.events = nil }
