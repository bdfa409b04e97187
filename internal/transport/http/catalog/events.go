package catalog

import (
	"net/http"
	"strconv"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/list_events"
)

// listEvents handles GET /api/v1/events.
func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	req := &list_events.Request{}

	if eventType := query.Get("event_type"); eventType != "" {
		req.EventType = &eventType
	}

	if aggregateID := query.Get("aggregate_id"); aggregateID != "" {
		req.AggregateID = &aggregateID
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			req.Limit = limit
		}
	}

	events, err := h.svc.ListEvents.Execute(r.Context(), req)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, ListEventsResponse{
		Events:     toEvents(events),
		TotalCount: len(events),
	})
	return nil
}
