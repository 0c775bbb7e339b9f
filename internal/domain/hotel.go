package domain

import (
	"time"

	"github.com/google/uuid"
)

// Hotel represents a hotel registered by an owner
type Hotel struct {
	ID        uuid.UUID
	OwnerID   string
	Name      string
	Address   string
	City      string
	Contact   string
	CreatedAt time.Time
}

// IsOwnedBy returns true if the user owns the hotel
func (h *Hotel) IsOwnedBy(userID string) bool {
	return userID != "" && h.OwnerID == userID
}
