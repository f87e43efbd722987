package coupon

import (
	"net/http"

	"github.com/georgemunganga/vendora-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

// Handler exposes coupon HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/coupons", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list) // ?active=true|false&page=&limit=
		r.Post("/apply", h.apply)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateCouponRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	c, err := h.service.CreateCoupon(r.Context(), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusCreated, c)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := web.ParsePage(r)
	coupons, err := h.service.ListCoupons(r.Context(), ListFilter{
		Active: web.OptionalBool(r, "active"),
		Skip:   page.Skip(),
		Limit:  page.Limit,
	})
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, coupons)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCoupon(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCouponRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	c, err := h.service.UpdateCoupon(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, c)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCoupon(r.Context(), chi.URLParam(r, "id")); err != nil {
		web.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyCouponRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	res, err := h.service.ApplyCoupon(r.Context(), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, res)
}
