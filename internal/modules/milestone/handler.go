package milestone

import (
	"net/http"

	"github.com/georgemunganga/vendora-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

// Handler serves the routes of a single milestone kind.
type Handler struct {
	service Service
	kind    Kind
}

func NewHandler(service Service, kind Kind) *Handler {
	return &Handler{service: service, kind: kind}
}

// Path is the route prefix, e.g. /api/cashback-milestone.
func (h *Handler) Path() string { return "/api/" + string(h.kind) + "-milestone" }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route(h.Path(), func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Post("/evaluate", h.evaluate)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateMilestoneRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	m, err := h.service.CreateMilestone(r.Context(), h.kind, req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusCreated, m)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListMilestones(r.Context(), h.kind)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.GetMilestone(r.Context(), h.kind, chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, m)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateMilestoneRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	m, err := h.service.UpdateMilestone(r.Context(), h.kind, chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, m)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMilestone(r.Context(), h.kind, chi.URLParam(r, "id")); err != nil {
		web.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	res, err := h.service.Evaluate(r.Context(), h.kind, req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, res)
}
