package booking

import "time"

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the four booking states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking reserves one vendor time slot for a user.
type Booking struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	VendorID  string    `json:"vendorId" bson:"vendorId"`
	ServiceID string    `json:"serviceId" bson:"serviceId"`
	Date      string    `json:"date" bson:"date"`         // YYYY-MM-DD
	TimeSlot  string    `json:"timeSlot" bson:"timeSlot"` // HH:MM-HH:MM
	Status    Status    `json:"status" bson:"status"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CreateBookingRequest is the payload for booking a slot.
type CreateBookingRequest struct {
	UserID    string `json:"userId"`
	VendorID  string `json:"vendorId"`
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	Notes     string `json:"notes"`
}

// UpdateStatusRequest moves a booking to a new status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// StatusChange is the payload of the booking.status_changed event.
type StatusChange struct {
	BookingID string `json:"bookingId"`
	VendorID  string `json:"vendorId"`
	UserID    string `json:"userId"`
	From      Status `json:"from"`
	To        Status `json:"to"`
}
