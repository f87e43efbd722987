package availability

import (
	"net/http"

	"github.com/georgemunganga/vendora-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/vendor-availability", func(r chi.Router) {
		r.Put("/{vendorId}", h.set)
		r.Get("/{vendorId}", h.get)
		r.Get("/{vendorId}/slots", h.slots) // ?date=YYYY-MM-DD
	})
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	a, err := h.service.SetAvailability(r.Context(), chi.URLParam(r, "vendorId"), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, a)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.GetAvailability(r.Context(), chi.URLParam(r, "vendorId"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, a)
}

func (h *Handler) slots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		web.Fail(w, http.StatusBadRequest, "date is required")
		return
	}
	res, err := h.service.Slots(r.Context(), chi.URLParam(r, "vendorId"), date)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, res)
}
