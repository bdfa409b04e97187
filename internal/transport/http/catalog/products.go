package catalog

import (
	"net/http"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/domain"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/add_product"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/archive_product"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/set_photo"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/update_count"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/update_note"
)

type addProductBody struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type updateCountBody struct {
	// Count sets the value; otherwise Delta is added.
	Count *int `json:"count"`
	Delta int  `json:"delta"`
}

type updateCountResponse struct {
	Applied bool `json:"applied"`
	Count   int  `json:"count"`
}

type noteBody struct {
	Note string `json:"note"`
}

type imageBody struct {
	DataURL string `json:"dataUrl"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := h.svc.ListProducts.Execute(r.Context(), &list_products.Request{
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

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) error {
	var body addProductBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	p, err := h.svc.AddProduct.Execute(r.Context(), &add_product.Request{Name: body.Name, Price: body.Price})
	if err != nil {
		return err
	}
	// a new product has no entries, so no state colors are needed
	writeJSON(w, http.StatusCreated, toProduct(p, domain.DefaultBusinessConfig()))
	return nil
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	req := &get_product.Request{
		ProductID: id,
		Filter:    domain.EntryFilter{Search: r.URL.Query().Get("search")},
	}
	if state := optionalState(r); state != nil && *state != domain.AllStates {
		req.Filter.State = *state
	}

	resp, err := h.svc.GetProduct.Execute(r.Context(), req)
	if err != nil {
		return err
	}
	out := toProduct(resp.Product, resp.Config)
	out.CustomerEntries = toEntries(resp.Entries, resp.Config)
	out.Totals = toTotals(resp.Totals)
	writeJSON(w, http.StatusOK, out)
	return nil
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	applied, err := h.svc.DeleteProduct.Execute(r.Context(), &delete_product.Request{ProductID: id, Confirmed: confirmed(r)})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, appliedResponse{Applied: applied})
	return nil
}

func (h *Handler) updateCount(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	var body updateCountBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}

	resp, err := h.svc.UpdateCount.Execute(r.Context(), &update_count.Request{ProductID: id, Count: body.Count, Delta: body.Delta})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, updateCountResponse{Applied: resp.Applied, Count: resp.Count})
	return nil
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	var body noteBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}

	applied, err := h.svc.UpdateNote.Execute(r.Context(), &update_note.Request{ProductID: id, Note: body.Note})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, appliedResponse{Applied: applied})
	return nil
}

func (h *Handler) setPhoto(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	var body imageBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	if body.DataURL == "" {
		return badRequest("dataUrl is required")
	}

	applied, err := h.svc.SetPhoto.Execute(r.Context(), &set_photo.Request{ProductID: id, DataURL: body.DataURL})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, appliedResponse{Applied: applied})
	return nil
}

func (h *Handler) clearPhoto(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	applied, err := h.svc.SetPhoto.Execute(r.Context(), &set_photo.Request{ProductID: id})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, appliedResponse{Applied: applied})
	return nil
}

func (h *Handler) archiveProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	applied, err := h.svc.ArchiveProduct.Execute(r.Context(), &archive_product.Request{ProductID: id})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, appliedResponse{Applied: applied})
	return nil
}
