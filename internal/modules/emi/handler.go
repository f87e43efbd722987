package emi

import (
	"net/http"
	"strconv"

	"github.com/georgemunganga/vendora-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/emi", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/history/user/{userId}", h.history)
		r.Get("/details/user/{userId}", h.details)
		r.Get("/{id}", h.get)
		r.Post("/{id}/installments/{number}/pay", h.pay)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	p, err := h.service.CreatePlan(r.Context(), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusCreated, p)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, p)
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		web.Fail(w, http.StatusBadRequest, "installment number must be an integer")
		return
	}
	p, err := h.service.PayInstallment(r.Context(), chi.URLParam(r, "id"), number)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, p)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.History(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, out)
}

func (h *Handler) details(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Details(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, out)
}
