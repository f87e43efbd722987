package booking

import (
	"net/http"

	"github.com/georgemunganga/vendora-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/user/{userId}", h.listByUser)
		r.Get("/vendor/{vendorId}", h.listByVendor) // ?status=
		r.Get("/{id}", h.get)
		r.Patch("/{id}/status", h.updateStatus)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	b, err := h.service.CreateBooking(r.Context(), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusCreated, b)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, b)
}

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.ListUserBookings(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, bookings)
}

func (h *Handler) listByVendor(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.ListVendorBookings(r.Context(), chi.URLParam(r, "vendorId"), r.URL.Query().Get("status"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, bookings)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	b, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, b)
}
