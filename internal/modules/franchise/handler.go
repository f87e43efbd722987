package franchise

import (
	"net/http"

	"github.com/georgemunganga/vendora-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/franchises", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list) // ?region=
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Patch("/{id}", h.update)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateFranchiseRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	f, err := h.service.CreateFranchise(r.Context(), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusCreated, f)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := web.ParsePage(r)
	out, err := h.service.ListFranchises(r.Context(), r.URL.Query().Get("region"), page.Skip(), page.Limit)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.GetFranchise(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, f)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateFranchiseRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	f, err := h.service.UpdateFranchise(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, f)
}
