package toggle_room_availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms"
)

type RoomService interface {
	ToggleAvailability(ctx context.Context, roomID uuid.UUID, userID string) (*rooms.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
