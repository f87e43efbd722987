package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/modules/availability"
	"github.com/georgemunganga/vendora-backend/internal/platform/apperr"
	"github.com/georgemunganga/vendora-backend/internal/platform/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SlotSource supplies the slots a vendor offers on a date.
type SlotSource interface {
	Slots(ctx context.Context, vendorID, date string) (*availability.SlotsResponse, error)
}

type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	GetBooking(ctx context.Context, id string) (*Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]*Booking, error)
	ListVendorBookings(ctx context.Context, vendorID, status string) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id, status string) (*Booking, error)
}

// validTransitions defines the allowed status state machine.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether a booking in from may move to to.
func CanTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type service struct {
	repo   Repository
	slots  SlotSource
	events events.Publisher
	log    *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, slots SlotSource, pub events.Publisher, log *zap.Logger) Service {
	return &service{
		repo:   repo,
		slots:  slots,
		events: pub,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	switch {
	case strings.TrimSpace(req.UserID) == "":
		return nil, apperr.Validation("userId is required")
	case strings.TrimSpace(req.VendorID) == "":
		return nil, apperr.Validation("vendorId is required")
	case strings.TrimSpace(req.ServiceID) == "":
		return nil, apperr.Validation("serviceId is required")
	case req.TimeSlot == "":
		return nil, apperr.Validation("timeSlot is required")
	}

	offered, err := s.slots.Slots(ctx, req.VendorID, req.Date)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Validation("vendor %s has not published availability", req.VendorID)
		}
		return nil, err
	}
	if !contains(offered.Slots, req.TimeSlot) {
		return nil, apperr.Validation("time slot %s is not offered on %s", req.TimeSlot, req.Date)
	}

	now := s.now()
	b := &Booking{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		VendorID:  req.VendorID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Status:    StatusPending,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("slot %s on %s is already booked", req.TimeSlot, req.Date)
		}
		return nil, err
	}
	return b, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (s *service) GetBooking(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListUserBookings(ctx context.Context, userID string) ([]*Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListVendorBookings(ctx context.Context, vendorID, status string) ([]*Booking, error) {
	st := Status(status)
	if st != "" && !st.Valid() {
		return nil, apperr.Validation("unknown booking status %q", status)
	}
	return s.repo.ListByVendor(ctx, vendorID, st)
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (*Booking, error) {
	to := Status(strings.ToLower(strings.TrimSpace(status)))
	if !to.Valid() {
		return nil, apperr.Validation("unknown booking status %q", status)
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, to) {
		return nil, apperr.Validation("cannot transition booking from %s to %s", b.Status, to)
	}

	from, at := b.Status, s.now()
	if err := s.repo.UpdateStatus(ctx, id, from, to, at); err != nil {
		return nil, err
	}
	b.Status, b.UpdatedAt = to, at

	change := StatusChange{BookingID: b.ID, VendorID: b.VendorID, UserID: b.UserID, From: from, To: to}
	if err := s.events.Publish(ctx, events.BookingStatusShift, change); err != nil {
		s.log.Warn("publish booking status change", zap.String("booking_id", b.ID), zap.Error(err))
	}
	return b, nil
}
