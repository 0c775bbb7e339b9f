package get_hotel_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgHotelNotFound = "у пользователя нет зарегистрированного отеля"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/hotel
// Сводка по бронированиям отеля текущего пользователя: количество, выручка, список
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/hotel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dashboard, err := h.service.GetHotelBookings(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrHotelNotFound):
			h.logger.Warn("GET /bookings/hotel - Hotel not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgHotelNotFound)

		case errors.Is(err, bookings.ErrStore):
			h.logger.Error("GET /bookings/hotel - Store unavailable: user_id=%s, error=%v", userID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /bookings/hotel - Failed to get bookings: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/hotel - Dashboard retrieved: user_id=%s, total=%d", userID, dashboard.TotalBookings)
	handlers.RespondJSON(w, http.StatusOK, dashboard)
}
