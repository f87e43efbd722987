package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/google/uuid"
)

type Service interface {
	SetAvailability(ctx context.Context, vendorID string, req UpsertRequest) (*VendorAvailability, error)
	GetAvailability(ctx context.Context, vendorID string) (*VendorAvailability, error)
	// Slots returns the bookable "HH:MM-HH:MM" slots of date (YYYY-MM-DD).
	Slots(ctx context.Context, vendorID, date string) (*SlotsResponse, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) SetAvailability(ctx context.Context, vendorID string, req UpsertRequest) (*VendorAvailability, error) {
	if strings.TrimSpace(vendorID) == "" {
		return nil, apperr.Validation("vendorId is required")
	}
	days, err := normalizeDays(req.Days)
	if err != nil {
		return nil, err
	}
	if req.SlotDuration == 0 {
		req.SlotDuration = DefaultSlotDuration
	}
	if req.SlotDuration < 0 {
		return nil, apperr.Validation("slotDuration must be greater than 0")
	}
	if req.BufferTime < 0 {
		return nil, apperr.Validation("bufferTime cannot be negative")
	}

	now := s.now()
	a := &VendorAvailability{
		ID:           uuid.NewString(),
		VendorID:     vendorID,
		Days:         days,
		SlotDuration: req.SlotDuration,
		BufferTime:   req.BufferTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Upsert(ctx, a); err != nil {
		return nil, err
	}
	return s.repo.GetByVendor(ctx, vendorID)
}

func normalizeDays(in []Day) ([]Day, error) {
	seen := map[string]bool{}
	out := make([]Day, 0, len(in))
	for _, d := range in {
		d.Day = strings.ToLower(strings.TrimSpace(d.Day))
		if weekdayIndex(d.Day) < 0 {
			return nil, apperr.Validation("unknown day %q", d.Day)
		}
		if seen[d.Day] {
			return nil, apperr.Validation("day %q listed twice", d.Day)
		}
		seen[d.Day] = true

		if d.IsAvailable {
			start, err := parseClock(d.StartTime)
			if err != nil {
				return nil, apperr.Validation("%s: invalid startTime %q", d.Day, d.StartTime)
			}
			end, err := parseClock(d.EndTime)
			if err != nil {
				return nil, apperr.Validation("%s: invalid endTime %q", d.Day, d.EndTime)
			}
			if start >= end {
				return nil, apperr.Validation("%s: startTime must be before endTime", d.Day)
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func weekdayIndex(name string) int {
	for i, d := range Weekdays {
		if d == name {
			return i
		}
	}
	return -1
}

// parseClock returns minutes since midnight for "HH:MM".
func parseClock(v string) (int, error) {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func (s *service) GetAvailability(ctx context.Context, vendorID string) (*VendorAvailability, error) {
	return s.repo.GetByVendor(ctx, vendorID)
}

func (s *service) Slots(ctx context.Context, vendorID, date string) (*SlotsResponse, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, apperr.Validation("date must be YYYY-MM-DD")
	}
	a, err := s.repo.GetByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return &SlotsResponse{
		VendorID: vendorID,
		Date:     date,
		Day:      Weekdays[d.Weekday()],
		Slots:    GenerateSlots(a, d.Weekday()),
	}, nil
}

// GenerateSlots walks the day's window in steps of SlotDuration+BufferTime and
// returns every slot that ends by EndTime. Unavailable or unlisted days yield none.
func GenerateSlots(a *VendorAvailability, wd time.Weekday) []string {
	slots := []string{}
	var day *Day
	for i := range a.Days {
		if a.Days[i].Day == Weekdays[wd] {
			day = &a.Days[i]
			break
		}
	}
	if day == nil || !day.IsAvailable || a.SlotDuration <= 0 {
		return slots
	}
	start, err := parseClock(day.StartTime)
	if err != nil {
		return slots
	}
	end, err := parseClock(day.EndTime)
	if err != nil {
		return slots
	}
	for cur := start; cur+a.SlotDuration <= end; cur += a.SlotDuration + a.BufferTime {
		slots = append(slots, formatClock(cur)+"-"+formatClock(cur+a.SlotDuration))
	}
	return slots
}
