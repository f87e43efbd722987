package salesrep

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct{ reps map[string]*SalesRep }

func newMemRepo() *memRepo { return &memRepo{reps: map[string]*SalesRep{}} }

func (m *memRepo) Create(_ context.Context, s *SalesRep) error {
	for _, o := range m.reps {
		if o.Email == s.Email || o.ReferralCode == s.ReferralCode {
			return apperr.Conflict("sales rep already exists")
		}
	}
	cp := *s
	m.reps[s.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*SalesRep, error) {
	s, ok := m.reps[id]
	if !ok {
		return nil, apperr.NotFound("sales rep not found")
	}
	cp := *s
	return &cp, nil
}

func (m *memRepo) List(_ context.Context, f ListFilter) ([]*SalesRep, error) {
	out := []*SalesRep{}
	for _, s := range m.reps {
		if f.Region == "" || s.Region == f.Region {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memRepo) IncrementVendors(_ context.Context, id string, at time.Time) error {
	s, ok := m.reps[id]
	if !ok {
		return apperr.NotFound("sales rep not found")
	}
	if !s.IsActive {
		return apperr.Validation("sales rep %s is not active", id)
	}
	s.VendorsOnboarded++
	s.UpdatedAt = at
	return nil
}

func TestCreateSalesRep(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	rep, err := svc.CreateSalesRep(ctx, CreateSalesRepRequest{Name: "Mwila", Email: " Mwila@Example.com ", Region: "Copperbelt"})
	require.NoError(t, err)
	assert.Equal(t, "mwila@example.com", rep.Email)
	assert.True(t, strings.HasPrefix(rep.ReferralCode, "REP-"))
	assert.True(t, rep.IsActive)

	_, err = svc.CreateSalesRep(ctx, CreateSalesRepRequest{Name: "Other", Email: "MWILA@example.com"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.CreateSalesRep(ctx, CreateSalesRepRequest{Name: "No Mail", Email: "not-an-email"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreateSalesRep(ctx, CreateSalesRepRequest{Email: "x@example.com"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRecordOnboarding(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	rep, err := svc.CreateSalesRep(ctx, CreateSalesRepRequest{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.RecordOnboarding(ctx, rep.ID))
	require.NoError(t, svc.RecordOnboarding(ctx, rep.ID))
	assert.Equal(t, 2, repo.reps[rep.ID].VendorsOnboarded)

	assert.ErrorIs(t, svc.RecordOnboarding(ctx, "missing"), apperr.ErrNotFound)

	repo.reps[rep.ID].IsActive = false
	assert.ErrorIs(t, svc.RecordOnboarding(ctx, rep.ID), apperr.ErrValidation)
}

func TestHandlerRoutes(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(NewService(newMemRepo())).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/api/sales-reps/", strings.NewReader(`{"name":"Ana","email":"ana@example.com","region":"Lusaka"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var rep SalesRep
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sales-reps/"+rep.ID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sales-reps/?region=Eastern", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []SalesRep
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)
}
