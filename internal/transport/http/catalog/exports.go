package catalog

import (
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/export"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/bulk_entries"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/bulk_export"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/export_invoice"
	"github.com/light-bringer/ordertally-service/internal/pkg/artifact"
)

type bulkExportBody struct {
	SelectedEntryIDs []string `json:"selectedEntryIds"`
	State            *string  `json:"state"`
	Store            bool     `json:"store"`
}

func (h *Handler) exportInvoice(w http.ResponseWriter, r *http.Request) error {
	productID, entryID, err := entryIDs(r)
	if err != nil {
		return err
	}
	store, _ := strconv.ParseBool(r.URL.Query().Get("store"))

	resp, err := h.svc.ExportInvoice.Execute(r.Context(), &export_invoice.Request{
		ProductID: productID,
		EntryID:   entryID,
		Store:     store,
	})
	if err != nil {
		return err
	}
	return writeDocument(w, resp.Document, resp.Artifact)
}

func (h *Handler) workflow(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.svc.BulkEntries.Execute(r.Context(), &bulk_entries.Request{State: optionalState(r)})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toWorkflow(resp.Summary, resp.Records, resp.Config))
	return nil
}

func (h *Handler) bulkExport(w http.ResponseWriter, r *http.Request) error {
	var body bulkExportBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	ids, err := parseIDs(body.SelectedEntryIDs)
	if err != nil {
		return err
	}

	resp, err := h.svc.BulkExport.Execute(r.Context(), &bulk_export.Request{
		SelectedEntryIDs: ids,
		State:            body.State,
		Store:            body.Store,
	})
	if err != nil {
		return err
	}
	return writeDocument(w, resp.Document, resp.Artifact)
}

func writeDocument(w http.ResponseWriter, doc *export.Document, stored *artifact.Info) error {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.Header().Set("X-Page-Count", strconv.Itoa(doc.Pages))
	if stored != nil {
		w.Header().Set("X-Artifact-Key", stored.Key)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		log.Printf("failed to write %s: %v", doc.Name, err)
	}
	return nil
}
