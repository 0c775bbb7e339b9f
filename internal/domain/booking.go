package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// IsValid returns true if the status is one of the known lifecycle values
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Booking represents a room reservation
type Booking struct {
	ID            uuid.UUID
	RoomID        uuid.UUID
	UserID        string
	HotelID       uuid.UUID // denormalized from the room
	CheckInDate   time.Time
	CheckOutDate  time.Time
	Guests        int
	TotalPrice    float64
	Status        BookingStatus
	IsPaid        bool
	PaymentMethod string

	// Denormalized data for display
	RoomType  string
	HotelName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stay returns the booked interval
func (b *Booking) Stay() Stay {
	return Stay{CheckIn: b.CheckInDate, CheckOut: b.CheckOutDate}
}

// IsActive returns true if the booking still occupies its room
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// OverlapQuery describes an availability lookup for a single room
type OverlapQuery struct {
	RoomID uuid.UUID
	Stay   Stay
	Policy OverlapPolicy
}
