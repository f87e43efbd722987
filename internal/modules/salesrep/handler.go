package salesrep

import (
	"net/http"

	"github.com/georgemunganga/vendora-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/sales-reps", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list) // ?region=
		r.Get("/{id}", h.get)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateSalesRepRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	rep, err := h.service.CreateSalesRep(r.Context(), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusCreated, rep)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := web.ParsePage(r)
	reps, err := h.service.ListSalesReps(r.Context(), ListFilter{
		Region: r.URL.Query().Get("region"),
		Skip:   page.Skip(),
		Limit:  page.Limit,
	})
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, reps)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.GetSalesRep(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, rep)
}
