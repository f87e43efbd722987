package reward

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/events"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepo struct{ items map[string]*RewardDistribution }

func newMemRepo() *memRepo { return &memRepo{items: map[string]*RewardDistribution{}} }

func (m *memRepo) Create(_ context.Context, d *RewardDistribution) error {
	for _, o := range m.items {
		if o.BeneficiaryID == d.BeneficiaryID && o.MilestoneID == d.MilestoneID {
			return apperr.Conflict("reward distribution already exists")
		}
	}
	cp := *d
	m.items[d.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*RewardDistribution, error) {
	d, ok := m.items[id]
	if !ok {
		return nil, apperr.NotFound("reward distribution not found")
	}
	cp := *d
	return &cp, nil
}

func (m *memRepo) List(_ context.Context, f ListFilter) ([]*RewardDistribution, error) {
	out := []*RewardDistribution{}
	for _, d := range m.items {
		if (f.BeneficiaryID == "" || d.BeneficiaryID == f.BeneficiaryID) && (f.Status == "" || d.Status == f.Status) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id string, from, to Status, paidAt *time.Time, at time.Time) error {
	d, ok := m.items[id]
	if !ok {
		return apperr.NotFound("reward distribution not found")
	}
	if d.Status != from {
		return apperr.Conflict("reward distribution is no longer %s", from)
	}
	d.Status, d.UpdatedAt = to, at
	if paidAt != nil {
		d.PaidAt = paidAt
	}
	return nil
}

func (m *memRepo) Summarize(_ context.Context, from, to *time.Time) ([]ReportRow, error) {
	buckets := map[[2]string]*ReportRow{}
	rows := []ReportRow{}
	for _, d := range m.items {
		if (from != nil && d.CreatedAt.Before(*from)) || (to != nil && !d.CreatedAt.Before(*to)) {
			continue
		}
		key := [2]string{d.MilestoneKind, string(d.Status)}
		if buckets[key] == nil {
			buckets[key] = &ReportRow{Kind: d.MilestoneKind, Status: string(d.Status)}
		}
		buckets[key].Count++
		buckets[key].Amount += d.Amount
	}
	for _, b := range buckets {
		rows = append(rows, *b)
	}
	return rows, nil
}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, events.Nop{}, zap.NewNop()), repo
}

func TestDistributeOncePerMilestone(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	g := Grant{BeneficiaryID: "u1", BeneficiaryType: "user", MilestoneID: "m1", MilestoneKind: "cashback", Amount: 10.005}
	d, err := svc.Distribute(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, d.Status)
	assert.Equal(t, 10.01, d.Amount)

	_, err = svc.Distribute(ctx, g)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestPayAndFailTransitions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	d, err := svc.Distribute(ctx, Grant{BeneficiaryID: "u1", MilestoneID: "m1", MilestoneKind: "cashback", Amount: 5})
	require.NoError(t, err)

	d, err = svc.MarkFailed(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, d.Status)
	assert.Nil(t, d.PaidAt)

	d, err = svc.MarkPaid(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, d.Status)
	require.NotNil(t, d.PaidAt)

	_, err = svc.MarkFailed(ctx, d.ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.MarkPaid(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBuildReportTotals(t *testing.T) {
	rep := BuildReport([]ReportRow{
		{Kind: "cashback", Status: "pending", Count: 2, Amount: 10.1},
		{Kind: "cashback", Status: "paid", Count: 1, Amount: 0.2},
		{Kind: "franchise", Status: "paid", Count: 3, Amount: 300},
	}, nil, nil)

	assert.Equal(t, Totals{Count: 3, Amount: 10.3}, rep.ByKind["cashback"])
	assert.Equal(t, Totals{Count: 4, Amount: 300.2}, rep.ByStatus["paid"])
	assert.Equal(t, Totals{Count: 6, Amount: 310.3}, rep.Total)

	empty := BuildReport(nil, nil, nil)
	assert.NotNil(t, empty.Rows)
	assert.Equal(t, int64(0), empty.Total.Count)
}

func TestHandlerReport(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Distribute(ctx, Grant{BeneficiaryID: "u1", MilestoneID: "m1", MilestoneKind: "membership", Amount: 25})
	require.NoError(t, err)

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reward/adminRewardDistributionReport", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var rep Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, Totals{Count: 1, Amount: 25}, rep.ByKind["membership"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reward/adminRewardDistributionReport?from=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reward/adminRewardDistributionReport?from=2026-05-02&to=2026-05-01", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reward/?status=lost", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseBoundDateIsWholeDay(t *testing.T) {
	to, err := parseBound("2026-05-01", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), *to)

	from, err := parseBound("2026-05-01", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), *from)

	none, err := parseBound("", true)
	require.NoError(t, err)
	assert.Nil(t, none)
}
