package domain

import (
	"time"

	"github.com/google/uuid"
)

// Room represents a bookable hotel room
type Room struct {
	ID            uuid.UUID
	HotelID       uuid.UUID
	RoomType      string
	PricePerNight float64
	IsAvailable   bool // owner-level on/off switch, independent of bookings
	Amenities     []string
	Images        []string

	// Denormalized data from the owning hotel
	HotelName    string
	HotelOwnerID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasValidPrice returns true if the nightly price satisfies the room invariant
func (r *Room) HasValidPrice() bool {
	return r.PricePerNight > 0
}
