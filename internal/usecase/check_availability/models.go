package check_availability

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса проверки доступности
type Request struct {
	RoomID   uuid.UUID
	CheckIn  time.Time
	CheckOut time.Time
}

// Response результат проверки доступности с предварительной стоимостью
type Response struct {
	RoomID       uuid.UUID
	CheckInDate  time.Time
	CheckOutDate time.Time
	IsAvailable  bool
	Nights       int
	TotalPrice   float64 // 0, если номер недоступен
}
