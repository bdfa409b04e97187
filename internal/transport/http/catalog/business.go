package catalog

import (
	"net/http"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/add_state"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/remove_state"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/set_logo"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/update_business_info"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/usecases/update_state_color"
)

type businessInfoBody struct {
	Name       string `json:"name"`
	FooterNote string `json:"footerNote"`
}

type stateColorBody struct {
	Color string `json:"color"`
}

func (h *Handler) getBusiness(w http.ResponseWriter, r *http.Request) error {
	cfg, err := h.svc.GetBusinessConfig.Execute(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toBusinessConfig(cfg))
	return nil
}

func (h *Handler) updateBusinessInfo(w http.ResponseWriter, r *http.Request) error {
	var body businessInfoBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	if err := h.svc.UpdateBusinessInfo.Execute(r.Context(), &update_business_info.Request{Name: body.Name, FooterNote: body.FooterNote}); err != nil {
		return err
	}
	return h.getBusiness(w, r)
}

func (h *Handler) setLogo(w http.ResponseWriter, r *http.Request) error {
	var body imageBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	if body.DataURL == "" {
		return badRequest("dataUrl is required")
	}
	if err := h.svc.SetLogo.Execute(r.Context(), &set_logo.Request{DataURL: body.DataURL}); err != nil {
		return err
	}
	return h.getBusiness(w, r)
}

func (h *Handler) removeLogo(w http.ResponseWriter, r *http.Request) error {
	if err := h.svc.SetLogo.Execute(r.Context(), &set_logo.Request{}); err != nil {
		return err
	}
	return h.getBusiness(w, r)
}

func (h *Handler) addState(w http.ResponseWriter, r *http.Request) error {
	var body State
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	if err := h.svc.AddState.Execute(r.Context(), &add_state.Request{Name: body.Name, Color: body.Color}); err != nil {
		return err
	}
	cfg, err := h.svc.GetBusinessConfig.Execute(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, toBusinessConfig(cfg))
	return nil
}

func (h *Handler) updateStateColor(w http.ResponseWriter, r *http.Request) error {
	var body stateColorBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	applied, err := h.svc.UpdateStateColor.Execute(r.Context(), &update_state_color.Request{
		Name:  r.PathValue("name"),
		Color: body.Color,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, appliedResponse{Applied: applied})
	return nil
}

func (h *Handler) removeState(w http.ResponseWriter, r *http.Request) error {
	applied, err := h.svc.RemoveState.Execute(r.Context(), &remove_state.Request{Name: r.PathValue("name")})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, appliedResponse{Applied: applied})
	return nil
}
