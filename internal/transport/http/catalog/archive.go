package catalog

import (
	"net/http"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/list_archive"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/purge_archived"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/restore_product"
)

func (h *Handler) listArchive(w http.ResponseWriter, r *http.Request) error {
	products, err := h.svc.ListArchive.Execute(r.Context(), &list_archive.Request{
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		return err
	}
	cfg, err := h.svc.GetBusinessConfig.Execute(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toProducts(products, cfg))
	return nil
}

func (h *Handler) restoreProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	applied, err := h.svc.RestoreProduct.Execute(r.Context(), &restore_product.Request{ProductID: id})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, appliedResponse{Applied: applied})
	return nil
}

func (h *Handler) purgeArchived(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	applied, err := h.svc.PurgeArchived.Execute(r.Context(), &purge_archived.Request{ProductID: id, Confirmed: confirmed(r)})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, appliedResponse{Applied: applied})
	return nil
}
