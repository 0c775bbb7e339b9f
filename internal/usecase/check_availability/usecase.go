package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
)

// UseCase проверка доступности номера на период. Только чтение, без побочных эффектов.
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	policy       domain.OverlapPolicy
	storeTimeout time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	policy domain.OverlapPolicy,
	storeTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		policy:       policy,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// IsAvailable возвращает true, если у номера нет активных бронирований, пересекающихся с периодом
func (uc *UseCase) IsAvailable(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	resp, err := uc.Execute(ctx, &Request{RoomID: roomID, CheckIn: checkIn, CheckOut: checkOut})
	if err != nil {
		return false, err
	}
	return resp.IsAvailable, nil
}

// Execute проверяет доступность и считает стоимость проживания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	stay, err := domain.NewBillableStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	// 2. Получаем номер
	room, err := uc.roomRepo.GetByID(storeCtx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CheckAvailability: room id=%s not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get room id=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: get room: %w", ErrStore, err)
	}

	resp := &Response{
		RoomID:       room.ID,
		CheckInDate:  stay.CheckIn,
		CheckOutDate: stay.CheckOut,
		Nights:       stay.Nights(),
	}

	// Номер, выключенный владельцем, недоступен на любые даты
	if !room.IsAvailable {
		uc.logger.Info("CheckAvailability: room id=%s is switched off", room.ID)
		return resp, nil
	}

	// 3. Ищем пересечения с активными бронированиями
	overlapping, err := uc.bookingRepo.FindOverlapping(storeCtx, domain.OverlapQuery{
		RoomID: room.ID,
		Stay:   stay,
		Policy: uc.policy,
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to find overlapping bookings for room id=%s: %v", room.ID, err)
		return nil, fmt.Errorf("%w: find overlapping bookings: %w", ErrStore, err)
	}

	if len(overlapping) > 0 {
		uc.logger.Info("CheckAvailability: room id=%s has %d overlapping bookings", room.ID, len(overlapping))
		return resp, nil
	}

	// 4. Считаем стоимость. Некорректная цена в БД повтором запроса не исправится
	if !room.HasValidPrice() {
		uc.logger.Error("CheckAvailability: room id=%s has invalid rate %.2f", room.ID, room.PricePerNight)
		return nil, fmt.Errorf("%w: room %s: %w", ErrInternal, room.ID, domain.ErrInvalidRate)
	}

	totalPrice, err := domain.ComputeTotalPrice(room.PricePerNight, stay.CheckIn, stay.CheckOut)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to price room id=%s: %v", room.ID, err)
		return nil, fmt.Errorf("%w: compute total price: %w", ErrInternal, err)
	}

	resp.IsAvailable = true
	resp.TotalPrice = totalPrice

	uc.logger.Info("CheckAvailability: room id=%s available, nights=%d, total=%.2f", room.ID, resp.Nights, totalPrice)
	return resp, nil
}
