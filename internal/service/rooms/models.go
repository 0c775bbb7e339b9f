package rooms

import "github.com/google/uuid"

// AvailabilityResponse новое значение флага доступности номера
type AvailabilityResponse struct {
	RoomID      uuid.UUID `json:"roomId"`
	IsAvailable bool      `json:"isAvailable"`
}
