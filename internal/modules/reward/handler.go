package reward

import (
	"net/http"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/reward", func(r chi.Router) {
		r.Get("/", h.list) // ?beneficiaryId=&status=
		r.Get("/adminRewardDistributionReport", h.report)
		r.Get("/{id}", h.get)
		r.Post("/{id}/pay", h.pay)
		r.Post("/{id}/fail", h.fail)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := web.ParsePage(r)
	q := r.URL.Query()
	out, err := h.service.ListDistributions(r.Context(), ListFilter{
		BeneficiaryID: q.Get("beneficiaryId"),
		Status:        Status(q.Get("status")),
		Skip:          page.Skip(),
		Limit:         page.Limit,
	})
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.GetDistribution(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, d)
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, d)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.MarkFailed(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, d)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	from, err := parseBound(r.URL.Query().Get("from"), false)
	if err != nil {
		web.Fail(w, http.StatusBadRequest, "from must be RFC 3339 or YYYY-MM-DD")
		return
	}
	to, err := parseBound(r.URL.Query().Get("to"), true)
	if err != nil {
		web.Fail(w, http.StatusBadRequest, "to must be RFC 3339 or YYYY-MM-DD")
		return
	}
	rep, err := h.service.Report(r.Context(), from, to)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.Respond(w, http.StatusOK, rep)
}

// parseBound accepts RFC 3339 or a bare date. A bare upper bound covers the whole day.
func parseBound(v string, upper bool) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	if upper {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}
