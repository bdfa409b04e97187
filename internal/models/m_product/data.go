package m_product

import (
	"encoding/json"
	"time"
)

// Data is the stored JSON form of a product.
type Data struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Count           int         `json:"count"`
	Note            string      `json:"note"`
	Price           json.Number `json:"price"`
	Photo           *string     `json:"photo"`
	CustomerEntries []EntryData `json:"customerEntries"`
}

// EntryData is the stored JSON form of a customer entry.
// IsReady is written for older readers; on load State is authoritative.
type EntryData struct {
	ID        int64     `json:"id"`
	Data      string    `json:"data"`
	State     string    `json:"state"`
	IsReady   bool      `json:"isReady"`
	CreatedAt time.Time `json:"createdAt"`
}
