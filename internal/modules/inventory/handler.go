package inventory

import (
	"net/http"

	"github.com/georgemunganga/vendora-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the stock ledger over HTTP.
type Handler struct {
	service Service
}

// NewHandler creates a new inventory HTTP handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts inventory routes.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/inventory", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list) // ?ownerId=&lowStock=true&page=&limit=
		r.Get("/{id}", h.get)
		r.Post("/{id}/movements", h.recordMovement)
		r.Post("/{id}/transfer", h.transfer)
		r.Get("/{id}/reconcile", h.reconcile)
		r.Post("/{id}/reconcile", h.reconcile)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateInventoryRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	inv, err := h.service.CreateInventory(r.Context(), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusCreated, inv)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := web.ParsePage(r)
	items, err := h.service.ListInventory(r.Context(), ListFilter{
		OwnerID:  r.URL.Query().Get("ownerId"),
		LowStock: r.URL.Query().Get("lowStock") == "true",
		Skip:     page.Skip(),
		Limit:    page.Limit,
	})
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, items)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.GetInventory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, inv)
}

func (h *Handler) recordMovement(w http.ResponseWriter, r *http.Request) {
	var req MovementRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	inv, err := h.service.RecordMovement(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusCreated, inv)
}

func (h *Handler) transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, err)
		return
	}
	res, err := h.service.Transfer(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, res)
}

// reconcile reports drift on GET and corrects it on POST.
func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Reconcile(r.Context(), chi.URLParam(r, "id"), r.Method == http.MethodPost)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, rec)
}
