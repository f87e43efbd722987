package franchise

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct{ items map[string]*Franchise }

func (m *memRepo) Create(_ context.Context, f *Franchise) error {
	cp := *f
	m.items[f.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Franchise, error) {
	f, ok := m.items[id]
	if !ok {
		return nil, apperr.NotFound("franchise not found")
	}
	cp := *f
	return &cp, nil
}

func (m *memRepo) List(_ context.Context, region string, _, _ int) ([]*Franchise, error) {
	out := []*Franchise{}
	for _, f := range m.items {
		if region == "" || f.Region == region {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, f *Franchise) error {
	if _, ok := m.items[f.ID]; !ok {
		return apperr.NotFound("franchise not found")
	}
	cp := *f
	m.items[f.ID] = &cp
	return nil
}

func call(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestFranchiseCRUD(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(NewService(&memRepo{items: map[string]*Franchise{}})).RegisterRoutes(r)

	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodPost, "/api/franchises/", `{"region":"Lusaka"}`).Code)

	rec := call(r, http.MethodPost, "/api/franchises/", `{"name":"Lusaka Central","region":"Lusaka","email":"HQ@Example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var f Franchise
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "hq@example.com", f.Email)
	assert.True(t, f.IsActive)

	rec = call(r, http.MethodPatch, "/api/franchises/"+f.ID, `{"isActive":false,"ownerName":"Chanda"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.False(t, f.IsActive)
	assert.Equal(t, "Chanda", f.OwnerName)
	assert.Equal(t, "Lusaka Central", f.Name)

	rec = call(r, http.MethodGet, "/api/franchises/?region=Lusaka", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Franchise
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/api/franchises/nope", "").Code)
	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodPut, "/api/franchises/"+f.ID, `{"name":" "}`).Code)
}
