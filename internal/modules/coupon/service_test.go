package coupon

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu      sync.Mutex
	coupons map[string]*Coupon
}

func newMemRepo() *memRepo { return &memRepo{coupons: map[string]*Coupon{}} }

func (m *memRepo) codeTaken(code, exceptID string) bool {
	for _, c := range m.coupons {
		if c.CouponCode == code && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (m *memRepo) Create(_ context.Context, c *Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codeTaken(c.CouponCode, "") {
		return apperr.Conflict("coupon already exists")
	}
	cp := *c
	m.coupons[c.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.coupons[id]
	if !ok {
		return nil, apperr.NotFound("coupon not found")
	}
	cp := *c
	return &cp, nil
}

func (m *memRepo) GetByCode(_ context.Context, code string) (*Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.coupons {
		if c.CouponCode == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("coupon not found")
}

func (m *memRepo) List(_ context.Context, f ListFilter) ([]*Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*Coupon{}
	for _, c := range m.coupons {
		if f.Active != nil && c.IsActive != *f.Active {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CouponCode < out[j].CouponCode })
	return out, nil
}

func (m *memRepo) Update(_ context.Context, c *Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.coupons[c.ID]; !ok {
		return apperr.NotFound("coupon not found")
	}
	if m.codeTaken(c.CouponCode, c.ID) {
		return apperr.Conflict("coupon already exists")
	}
	cp := *c
	m.coupons[c.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.coupons[id]; !ok {
		return apperr.NotFound("coupon not found")
	}
	delete(m.coupons, id)
	return nil
}

func (m *memRepo) Redeem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.coupons[id]
	if !ok || !c.IsActive || c.Exhausted() {
		return apperr.Conflict("coupon is no longer redeemable")
	}
	c.UsedCount++
	return nil
}

func (m *memRepo) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.coupons {
		if c.IsActive && c.ExpiryDate.Before(now) {
			c.IsActive = false
			n++
		}
	}
	return n, nil
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (*service, *memRepo) {
	repo := newMemRepo()
	return &service{repo: repo, now: func() time.Time { return fixedNow }}, repo
}

func validCreate(code string) CreateCouponRequest {
	return CreateCouponRequest{
		CouponCode:      code,
		DiscountPercent: 10,
		ExpiryDate:      fixedNow.Add(30 * 24 * time.Hour),
	}
}

func TestCreateCouponNormalizesCodeAndDefaultsActive(t *testing.T) {
	svc, _ := newTestService()

	c, err := svc.CreateCoupon(context.Background(), validCreate("  save10 "))
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", c.CouponCode)
	assert.True(t, c.IsActive)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, fixedNow, c.CreatedAt)
}

func TestCreateCouponRejectsDuplicateCode(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateCoupon(ctx, validCreate("SAVE10"))
	require.NoError(t, err)

	_, err = svc.CreateCoupon(ctx, validCreate("save10"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Contains(t, err.Error(), `"SAVE10"`)
}

func TestCreateCouponValidation(t *testing.T) {
	svc, _ := newTestService()
	inactive := false

	cases := map[string]func(r *CreateCouponRequest){
		"missing code":      func(r *CreateCouponRequest) { r.CouponCode = "  " },
		"zero percent":      func(r *CreateCouponRequest) { r.DiscountPercent = 0 },
		"percent over 100":  func(r *CreateCouponRequest) { r.DiscountPercent = 100.5 },
		"missing expiry":    func(r *CreateCouponRequest) { r.ExpiryDate = time.Time{} },
		"expiry in past":    func(r *CreateCouponRequest) { r.ExpiryDate = fixedNow.Add(-time.Hour) },
		"negative limit":    func(r *CreateCouponRequest) { r.UsageLimit = -1; r.IsActive = &inactive },
		"negative discount": func(r *CreateCouponRequest) { r.MaxDiscount = -5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validCreate("CODE")
			mutate(&req)
			_, err := svc.CreateCoupon(context.Background(), req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestUpdateCouponKeepsCodeUnique(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateCoupon(ctx, validCreate("FIRST"))
	require.NoError(t, err)
	second, err := svc.CreateCoupon(ctx, validCreate("SECOND"))
	require.NoError(t, err)

	code := "first"
	_, err = svc.UpdateCoupon(ctx, second.ID, UpdateCouponRequest{CouponCode: &code})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	desc := "spring sale"
	pct := 25.0
	updated, err := svc.UpdateCoupon(ctx, second.ID, UpdateCouponRequest{Description: &desc, DiscountPercent: &pct})
	require.NoError(t, err)
	assert.Equal(t, "spring sale", updated.Description)
	assert.Equal(t, 25.0, updated.DiscountPercent)
	assert.Equal(t, "SECOND", updated.CouponCode)
}

func TestUpdateCouponNotFound(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.UpdateCoupon(context.Background(), "missing", UpdateCouponRequest{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestApplyCouponCapsDiscountAndCountsUse(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	req := validCreate("BIG20")
	req.DiscountPercent = 20
	req.MaxDiscount = 50
	req.UsageLimit = 1
	c, err := svc.CreateCoupon(ctx, req)
	require.NoError(t, err)

	res, err := svc.ApplyCoupon(ctx, ApplyCouponRequest{CouponCode: "big20", OrderAmount: 1000})
	require.NoError(t, err)
	assert.Equal(t, 50.0, res.Discount)
	assert.Equal(t, 950.0, res.FinalAmount)
	assert.Equal(t, 1, repo.coupons[c.ID].UsedCount)

	_, err = svc.ApplyCoupon(ctx, ApplyCouponRequest{CouponCode: "BIG20", OrderAmount: 1000})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestApplyCouponRejections(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	req := validCreate("MIN100")
	req.MinOrderValue = 100
	c, err := svc.CreateCoupon(ctx, req)
	require.NoError(t, err)

	_, err = svc.ApplyCoupon(ctx, ApplyCouponRequest{CouponCode: "MIN100", OrderAmount: 99.99})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	repo.coupons[c.ID].ExpiryDate = fixedNow.Add(-time.Minute)
	_, err = svc.ApplyCoupon(ctx, ApplyCouponRequest{CouponCode: "MIN100", OrderAmount: 150})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	repo.coupons[c.ID].ExpiryDate = fixedNow.Add(time.Hour)
	repo.coupons[c.ID].IsActive = false
	_, err = svc.ApplyCoupon(ctx, ApplyCouponRequest{CouponCode: "MIN100", OrderAmount: 150})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.ApplyCoupon(ctx, ApplyCouponRequest{CouponCode: "NOPE", OrderAmount: 150})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.ApplyCoupon(ctx, ApplyCouponRequest{CouponCode: "MIN100", OrderAmount: 0})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDiscountRoundsToCents(t *testing.T) {
	c := &Coupon{DiscountPercent: 12.5}
	assert.Equal(t, 4.17, Discount(c, 33.33))

	c.MaxDiscount = 3
	assert.Equal(t, 3.0, Discount(c, 33.33))
}

func TestDeactivateExpired(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	a, err := svc.CreateCoupon(ctx, validCreate("OLD"))
	require.NoError(t, err)
	_, err = svc.CreateCoupon(ctx, validCreate("NEW"))
	require.NoError(t, err)
	repo.coupons[a.ID].ExpiryDate = fixedNow.Add(-time.Hour)

	n, err := svc.DeactivateExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.False(t, repo.coupons[a.ID].IsActive)
}
