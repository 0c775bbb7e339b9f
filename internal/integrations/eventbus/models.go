package eventbus

import (
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// BookingCreatedEvent публикуется после коммита нового бронирования.
// Содержит достаточно данных, чтобы потребителю не ходить в основную БД.
type BookingCreatedEvent struct {
	BookingID    string  `json:"booking_id"`
	UserID       string  `json:"user_id"`
	RoomID       string  `json:"room_id"`
	HotelID      string  `json:"hotel_id"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	Guests       int     `json:"guests"`
	TotalPrice   float64 `json:"total_price"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

// NewBookingCreatedEvent строит событие из сохраненного бронирования
func NewBookingCreatedEvent(b *domain.Booking) BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID:    b.ID.String(),
		UserID:       b.UserID,
		RoomID:       b.RoomID.String(),
		HotelID:      b.HotelID.String(),
		CheckInDate:  b.CheckInDate.Format(domain.DateFormat),
		CheckOutDate: b.CheckOutDate.Format(domain.DateFormat),
		Guests:       b.Guests,
		TotalPrice:   b.TotalPrice,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
