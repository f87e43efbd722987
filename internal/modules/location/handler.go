package location

import (
	"net/http"
	"strconv"

	"github.com/georgemunganga/vendora-backend/internal/platform/ratelimit"
	"github.com/georgemunganga/vendora-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	limiter *ratelimit.Limiter
}

// NewHandler wires the lookup route; limiter may be nil.
func NewHandler(service Service, limiter *ratelimit.Limiter) *Handler {
	return &Handler{service: service, limiter: limiter}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/location", func(r chi.Router) {
		if h.limiter != nil {
			r.Use(h.limiter.Handler)
		}
		r.Get("/", h.lookup) // ?lat=&lon=
	})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		web.Fail(w, http.StatusBadRequest, "lat and lon query parameters are required and must be numeric")
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		web.Fail(w, http.StatusBadRequest, "lat and lon query parameters are required and must be numeric")
		return
	}

	loc, err := h.service.Lookup(r.Context(), lat, lon)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, loc)
}
