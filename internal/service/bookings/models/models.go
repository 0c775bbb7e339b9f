package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID string  `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// UpdatePaymentRequest запрос на изменение флага оплаты
type UpdatePaymentRequest struct {
	UserID string `json:"-"`
	IsPaid bool   `json:"isPaid"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        string    `json:"userId"`
	RoomID        uuid.UUID `json:"roomId"`
	HotelID       uuid.UUID `json:"hotelId"`
	CheckInDate   string    `json:"checkInDate"`  // "2024-06-14"
	CheckOutDate  string    `json:"checkOutDate"` // "2024-06-16"
	Guests        int       `json:"guests"`
	TotalPrice    float64   `json:"totalPrice"`
	Status        string    `json:"status"`
	IsPaid        bool      `json:"isPaid"`
	PaymentMethod string    `json:"paymentMethod"`

	// Денормализованные данные
	RoomType  string `json:"roomType"`
	HotelName string `json:"hotelName"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// HotelDashboardResponse сводка по бронированиям отеля для владельца
type HotelDashboardResponse struct {
	HotelID       uuid.UUID         `json:"hotelId"`
	HotelName     string            `json:"hotelName"`
	TotalBookings int               `json:"totalBookings"`
	TotalRevenue  float64           `json:"totalRevenue"` // без отмененных
	Bookings      []BookingResponse `json:"bookings"`
}

// PaymentStatusResponse ответ на изменение флага оплаты
type PaymentStatusResponse struct {
	ID     uuid.UUID `json:"id"`
	IsPaid bool      `json:"isPaid"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		RoomID:        b.RoomID,
		HotelID:       b.HotelID,
		CheckInDate:   b.CheckInDate.Format(domain.DateFormat),
		CheckOutDate:  b.CheckOutDate.Format(domain.DateFormat),
		Guests:        b.Guests,
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		IsPaid:        b.IsPaid,
		PaymentMethod: b.PaymentMethod,
		RoomType:      b.RoomType,
		HotelName:     b.HotelName,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// NewHotelDashboard считает сводку по бронированиям отеля.
// TotalBookings учитывает все бронирования, выручка считается только по неотмененным.
func NewHotelDashboard(hotel *domain.Hotel, bookings []*domain.Booking) *HotelDashboardResponse {
	var revenue float64
	for _, b := range bookings {
		if b.IsActive() {
			revenue += b.TotalPrice
		}
	}

	return &HotelDashboardResponse{
		HotelID:       hotel.ID,
		HotelName:     hotel.Name,
		TotalBookings: len(bookings),
		TotalRevenue:  domain.RoundPrice(revenue),
		Bookings:      FromDomainBookingList(bookings).Bookings,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
