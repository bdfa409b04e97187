package catalog

import (
	"io"
	"log"
	"net/http"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/entry_text"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/add_entry"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/delete_entry"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/set_entry_state"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/toggle_ready"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/update_entry"
)

type entryBody struct {
	Data string `json:"data"`
}

type stateBody struct {
	State string `json:"state"`
}

type toggleReadyResponse struct {
	Applied bool   `json:"applied"`
	State   string `json:"state"`
}

func entryIDs(r *http.Request) (int64, int64, error) {
	productID, err := pathID(r, "id")
	if err != nil {
		return 0, 0, err
	}
	entryID, err := pathID(r, "entryId")
	if err != nil {
		return 0, 0, err
	}
	return productID, entryID, nil
}

func (h *Handler) addEntry(w http.ResponseWriter, r *http.Request) error {
	productID, err := pathID(r, "id")
	if err != nil {
		return err
	}
	var body entryBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}

	entry, err := h.svc.AddEntry.Execute(r.Context(), &add_entry.Request{ProductID: productID, Data: body.Data})
	if err != nil {
		return err
	}
	cfg, err := h.svc.GetBusinessConfig.Execute(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, toEntry(entry, cfg))
	return nil
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) error {
	productID, entryID, err := entryIDs(r)
	if err != nil {
		return err
	}
	var body entryBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}

	applied, err := h.svc.UpdateEntry.Execute(r.Context(), &update_entry.Request{ProductID: productID, EntryID: entryID, Data: body.Data})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, appliedResponse{Applied: applied})
	return nil
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) error {
	productID, entryID, err := entryIDs(r)
	if err != nil {
		return err
	}
	applied, err := h.svc.DeleteEntry.Execute(r.Context(), &delete_entry.Request{
		ProductID: productID,
		EntryID:   entryID,
		Confirmed: confirmed(r),
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, appliedResponse{Applied: applied})
	return nil
}

func (h *Handler) setEntryState(w http.ResponseWriter, r *http.Request) error {
	productID, entryID, err := entryIDs(r)
	if err != nil {
		return err
	}
	var body stateBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}

	applied, err := h.svc.SetEntryState.Execute(r.Context(), &set_entry_state.Request{ProductID: productID, EntryID: entryID, State: body.State})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, appliedResponse{Applied: applied})
	return nil
}

func (h *Handler) toggleReady(w http.ResponseWriter, r *http.Request) error {
	productID, entryID, err := entryIDs(r)
	if err != nil {
		return err
	}
	resp, err := h.svc.ToggleReady.Execute(r.Context(), &toggle_ready.Request{ProductID: productID, EntryID: entryID})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toggleReadyResponse{Applied: resp.Applied, State: resp.State})
	return nil
}

// entryText serves the entry data as plain text for the copy action.
func (h *Handler) entryText(w http.ResponseWriter, r *http.Request) error {
	productID, entryID, err := entryIDs(r)
	if err != nil {
		return err
	}
	text, err := h.svc.EntryText.Execute(r.Context(), &entry_text.Request{ProductID: productID, EntryID: entryID})
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, text); err != nil {
		log.Printf("failed to write entry text: %v", err)
	}
	return nil
}
