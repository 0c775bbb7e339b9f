package create_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID   string    // ID пользователя из провайдера аутентификации
	RoomID   uuid.UUID // ID номера
	CheckIn  time.Time // Дата заезда
	CheckOut time.Time // Дата выезда
	Guests   int       // Количество гостей
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            uuid.UUID
	UserID        string
	RoomID        uuid.UUID
	HotelID       uuid.UUID
	CheckInDate   time.Time
	CheckOutDate  time.Time
	Nights        int
	Guests        int
	TotalPrice    float64
	Status        string
	IsPaid        bool
	PaymentMethod string

	// Денормализованные данные
	RoomType  string
	HotelName string

	CreatedAt time.Time
	UpdatedAt time.Time
}
