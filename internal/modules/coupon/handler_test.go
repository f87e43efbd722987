package coupon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *chi.Mux {
	r := chi.NewRouter()
	NewHandler(NewService(newMemRepo())).RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const createBody = `{"couponCode":"welcome","discountPercent":15,"expiryDate":"2099-01-01T00:00:00Z"}`

func TestHandlerCreateDuplicateReturnsConflict(t *testing.T) {
	r := newTestRouter()

	rec := do(t, r, http.MethodPost, "/api/coupons/", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var c Coupon
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, "WELCOME", c.CouponCode)

	rec = do(t, r, http.MethodPost, "/api/coupons/", createBody)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "already exists")
}

func TestHandlerCreateRejectsMalformedBody(t *testing.T) {
	rec := do(t, newTestRouter(), http.MethodPost, "/api/coupons/", `{"couponCode":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerGetUpdateDelete(t *testing.T) {
	r := newTestRouter()

	rec := do(t, r, http.MethodPost, "/api/coupons/", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var c Coupon
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))

	rec = do(t, r, http.MethodGet, "/api/coupons/"+c.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodPatch, "/api/coupons/"+c.ID, `{"isActive":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.False(t, c.IsActive)

	rec = do(t, r, http.MethodGet, "/api/coupons/?active=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Coupon
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)

	rec = do(t, r, http.MethodDelete, "/api/coupons/"+c.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, r, http.MethodGet, "/api/coupons/"+c.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerApply(t *testing.T) {
	r := newTestRouter()
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/coupons/", createBody).Code)

	rec := do(t, r, http.MethodPost, "/api/coupons/apply", `{"couponCode":"WELCOME","orderAmount":200}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res ApplyCouponResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 30.0, res.Discount)
	assert.Equal(t, 170.0, res.FinalAmount)
}

func TestHandlerMalformedIDOnPostgresReturnsNotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("FROM coupons WHERE id=\\$1").
		WithArgs("not-a-uuid").
		WillReturnError(&pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "not-a-uuid"`})

	r := chi.NewRouter()
	NewHandler(NewService(repo)).RegisterRoutes(r)

	rec := do(t, r, http.MethodGet, "/api/coupons/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
	assert.NoError(t, mock.ExpectationsWereMet())
}
