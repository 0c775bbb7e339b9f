package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID       string `json:"roomId"`
	CheckInDate  string `json:"checkInDate"`  // "2024-06-14"
	CheckOutDate string `json:"checkOutDate"` // "2024-06-16"
	Guests       int    `json:"guests"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	RoomID        string  `json:"roomId"`
	HotelID       string  `json:"hotelId"`
	CheckInDate   string  `json:"checkInDate"`
	CheckOutDate  string  `json:"checkOutDate"`
	Nights        int     `json:"nights"`
	Guests        int     `json:"guests"`
	TotalPrice    float64 `json:"totalPrice"`
	Status        string  `json:"status"`
	IsPaid        bool    `json:"isPaid"`
	PaymentMethod string  `json:"paymentMethod"`
	RoomType      string  `json:"roomType"`
	HotelName     string  `json:"hotelName"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	roomID, err := uuid.Parse(r.RoomID)
	if err != nil {
		return nil, errInvalidRoomID
	}

	checkIn, err := time.Parse(domain.DateFormat, r.CheckInDate)
	if err != nil {
		return nil, errInvalidDate
	}

	checkOut, err := time.Parse(domain.DateFormat, r.CheckOutDate)
	if err != nil {
		return nil, errInvalidDate
	}

	return &createBooking.Request{
		UserID:   userID,
		RoomID:   roomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   r.Guests,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID.String(),
		UserID:        resp.UserID,
		RoomID:        resp.RoomID.String(),
		HotelID:       resp.HotelID.String(),
		CheckInDate:   resp.CheckInDate.Format(domain.DateFormat),
		CheckOutDate:  resp.CheckOutDate.Format(domain.DateFormat),
		Nights:        resp.Nights,
		Guests:        resp.Guests,
		TotalPrice:    resp.TotalPrice,
		Status:        resp.Status,
		IsPaid:        resp.IsPaid,
		PaymentMethod: resp.PaymentMethod,
		RoomType:      resp.RoomType,
		HotelName:     resp.HotelName,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
