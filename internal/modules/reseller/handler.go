package reseller

import (
	"net/http"

	"github.com/georgemunganga/vendora-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/sns-resellers", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Patch("/{id}", h.update)
		r.Post("/{id}/purchases", h.purchase)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateResellerRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	res, err := h.service.CreateReseller(r.Context(), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusCreated, res)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := web.ParsePage(r)
	out, err := h.service.ListResellers(r.Context(), page.Skip(), page.Limit)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetReseller(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, res)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateResellerRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	res, err := h.service.UpdateReseller(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, res)
}

func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	res, err := h.service.RecordPurchase(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, res)
}
