package check_availability

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-HotelBookingService/internal/usecase/check_availability"
)

var (
	errInvalidRoomID = errors.New("invalid room id")
	errInvalidDate   = errors.New("invalid date")
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	RoomID       string `json:"roomId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	RoomID       string  `json:"roomId"`
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	IsAvailable  bool    `json:"isAvailable"`
	Nights       int     `json:"nights"`
	TotalPrice   float64 `json:"totalPrice,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
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

	return &checkAvailability.Request{RoomID: roomID, CheckIn: checkIn, CheckOut: checkOut}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	return &CheckAvailabilityResponse{
		RoomID:       resp.RoomID.String(),
		CheckInDate:  resp.CheckInDate.Format(domain.DateFormat),
		CheckOutDate: resp.CheckOutDate.Format(domain.DateFormat),
		IsAvailable:  resp.IsAvailable,
		Nights:       resp.Nights,
		TotalPrice:   resp.TotalPrice,
	}
}
