package web

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := map[int]error{
		http.StatusBadRequest:          apperr.Validation("bad %s", "input"),
		http.StatusNotFound:            apperr.NotFound("missing"),
		http.StatusConflict:            apperr.Conflict("dup"),
		http.StatusInternalServerError: errors.New("boom"),
	}
	for want, err := range cases {
		assert.Equal(t, want, StatusFor(err), err.Error())
	}
	assert.Equal(t, http.StatusInternalServerError, StatusFor(apperr.Upstream("geocoder down")))
}

func TestError_WritesJSONBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, apperr.Conflict("coupon code %q already exists", "SAVE10"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"coupon code \"SAVE10\" already exists"}`, rec.Body.String())
}

func TestDecode_Malformed(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	var v map[string]interface{}
	err := Decode(r, &v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestParsePage(t *testing.T) {
	p := ParsePage(httptest.NewRequest(http.MethodGet, "/?page=3&limit=500", nil))
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 200, p.Skip())

	p = ParsePage(httptest.NewRequest(http.MethodGet, "/?page=-1", nil))
	assert.Equal(t, Page{Page: 1, Limit: 20}, p)

	p = ParsePage(httptest.NewRequest(http.MethodGet, "/?page=9223372036854775807&limit=100", nil))
	assert.Equal(t, math.MaxInt32/100, p.Page)
	assert.Positive(t, p.Skip())
	assert.LessOrEqual(t, p.Skip(), math.MaxInt32)
}

func TestOptionalBool(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?active=false&x=maybe", nil)
	require.NotNil(t, OptionalBool(r, "active"))
	assert.False(t, *OptionalBool(r, "active"))
	assert.Nil(t, OptionalBool(r, "x"))
	assert.Nil(t, OptionalBool(r, "absent"))
}
