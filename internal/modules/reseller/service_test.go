package reseller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct{ items map[string]*SnSReseller }

func newMemRepo() *memRepo { return &memRepo{items: map[string]*SnSReseller{}} }

func (m *memRepo) Create(_ context.Context, r *SnSReseller) error {
	for _, o := range m.items {
		if o.ReferralCode == r.ReferralCode {
			return apperr.Conflict("reseller already exists")
		}
	}
	cp := *r
	m.items[r.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*SnSReseller, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, apperr.NotFound("reseller not found")
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) List(context.Context, int, int) ([]*SnSReseller, error) {
	out := []*SnSReseller{}
	for _, r := range m.items {
		out = append(out, r)
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, r *SnSReseller) error {
	if _, ok := m.items[r.ID]; !ok {
		return apperr.NotFound("reseller not found")
	}
	cp := *r
	m.items[r.ID] = &cp
	return nil
}

func (m *memRepo) RecordPurchase(_ context.Context, id string, amount, commission float64, at time.Time) (*SnSReseller, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, apperr.NotFound("reseller not found")
	}
	r.TotalPurchases++
	r.TotalPurchaseAmount = decimal.NewFromFloat(r.TotalPurchaseAmount).Add(decimal.NewFromFloat(amount)).InexactFloat64()
	r.TotalCommission = decimal.NewFromFloat(r.TotalCommission).Add(decimal.NewFromFloat(commission)).InexactFloat64()
	r.UpdatedAt = at
	cp := *r
	return &cp, nil
}

func TestCommission(t *testing.T) {
	assert.Equal(t, 12.35, Commission(247, 5))
	assert.Equal(t, 0.0, Commission(100, 0))
	assert.Equal(t, 3.33, Commission(33.33, 10))
}

func TestCreateResellerGeneratesReferralCode(t *testing.T) {
	svc := NewService(newMemRepo())

	r, err := svc.CreateReseller(context.Background(), CreateResellerRequest{UserID: "u1", CommissionRate: 7.5})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(r.ReferralCode, "SNS-"))
	assert.Len(t, r.ReferralCode, 12)
	assert.True(t, r.IsActive)

	_, err = svc.CreateReseller(context.Background(), CreateResellerRequest{UserID: "u2", ReferralCode: "friend", CommissionRate: 5})
	require.NoError(t, err)
	_, err = svc.CreateReseller(context.Background(), CreateResellerRequest{UserID: "u3", ReferralCode: "FRIEND", CommissionRate: 5})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.CreateReseller(context.Background(), CreateResellerRequest{UserID: "u4", CommissionRate: 101})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRecordPurchaseAccumulates(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	r, err := svc.CreateReseller(ctx, CreateResellerRequest{UserID: "u1", CommissionRate: 10})
	require.NoError(t, err)

	_, err = svc.RecordPurchase(ctx, r.ID, PurchaseRequest{Amount: 150})
	require.NoError(t, err)
	res, err := svc.RecordPurchase(ctx, r.ID, PurchaseRequest{Amount: 49.99})
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.Commission)
	assert.Equal(t, 2, res.Reseller.TotalPurchases)
	assert.Equal(t, 199.99, res.Reseller.TotalPurchaseAmount)
	assert.Equal(t, 20.0, res.Reseller.TotalCommission)

	_, err = svc.RecordPurchase(ctx, r.ID, PurchaseRequest{Amount: 0})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	inactive := false
	_, err = svc.UpdateReseller(ctx, r.ID, UpdateResellerRequest{IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.RecordPurchase(ctx, r.ID, PurchaseRequest{Amount: 10})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestHandlerPurchaseUnknownReseller(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(NewService(newMemRepo())).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sns-resellers/nope/purchases", strings.NewReader(`{"amount":10}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
