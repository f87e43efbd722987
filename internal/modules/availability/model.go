package availability

import "time"

// Weekdays lists the accepted day names, indexed by time.Weekday.
var Weekdays = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

const (
	DefaultSlotDuration = 30 // minutes
	timeLayout          = "15:04"
)

// Day is one weekday entry of a vendor schedule. StartTime and EndTime are
// ignored when IsAvailable is false.
type Day struct {
	Day         string `json:"day" bson:"day"`
	IsAvailable bool   `json:"isAvailable" bson:"isAvailable"`
	StartTime   string `json:"startTime,omitempty" bson:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty" bson:"endTime,omitempty"`
}

// VendorAvailability is the weekly booking schedule of a vendor.
type VendorAvailability struct {
	ID           string    `json:"id" bson:"_id"`
	VendorID     string    `json:"vendorId" bson:"vendorId"`
	Days         []Day     `json:"days" bson:"days"`
	SlotDuration int       `json:"slotDuration" bson:"slotDuration"` // minutes
	BufferTime   int       `json:"bufferTime" bson:"bufferTime"`     // minutes between slots
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UpsertRequest replaces a vendor's schedule.
type UpsertRequest struct {
	Days         []Day `json:"days"`
	SlotDuration int   `json:"slotDuration"`
	BufferTime   int   `json:"bufferTime"`
}

// SlotsResponse lists the bookable slots of one date.
type SlotsResponse struct {
	VendorID string   `json:"vendorId"`
	Date     string   `json:"date"`
	Day      string   `json:"day"`
	Slots    []string `json:"slots"`
}
