package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	hotelRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/hotel"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и простых переходов статуса.
// Создание бронирования живет отдельно, в usecase create_booking.
type Service struct {
	bookingRepo BookingRepository
	hotelRepo   HotelRepository
	txManager    TransactionManager
	storeTimeout time.Duration
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	hotelRepo HotelRepository,
	txManager TransactionManager,
	storeTimeout time.Duration,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		hotelRepo:    hotelRepo,
		txManager:    txManager,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть своё бронирование
// или бронирование в своем отеле
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя, новые сначала
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %w", ErrStore, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetHotelBookings возвращает сводку по бронированиям отеля, которым владеет пользователь
func (s *Service) GetHotelBookings(ctx context.Context, ownerID string) (*models.HotelDashboardResponse, error) {
	s.logger.Info("GetHotelBookings: fetching dashboard for owner=%s", ownerID)

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	hotel, err := s.hotelRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, hotelRepo.ErrHotelNotFound) {
			s.logger.Warn("GetHotelBookings: owner=%s has no hotel", ownerID)
			return nil, ErrHotelNotFound
		}
		s.logger.Error("GetHotelBookings: failed to get hotel for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetHotelBookings - get hotel: %w", ErrStore, err)
	}

	bookings, err := s.bookingRepo.GetByHotelID(ctx, hotel.ID)
	if err != nil {
		s.logger.Error("GetHotelBookings: repository error for hotel=%s: %v", hotel.ID, err)
		return nil, fmt.Errorf("%w: GetHotelBookings - repository error: %w", ErrStore, err)
	}

	dashboard := models.NewHotelDashboard(hotel, bookings)

	s.logger.Info("GetHotelBookings: hotel=%s, bookings=%d, revenue=%.2f",
		hotel.ID, dashboard.TotalBookings, dashboard.TotalRevenue)
	return dashboard, nil
}

// Cancel отменяет бронирование (PENDING|CONFIRMED -> CANCELLED).
// Отменить может владелец бронирования или владелец отеля.
// После отмены бронирование перестает блокировать номер.
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, userID string) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, userID)

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Строка блокируется до конца транзакции
		booking, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if err := s.checkUserAccess(txCtx, booking, userID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%s", userID, bookingID)
			return err
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.StatusCancelled); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrStore, err)
		}

		return nil
	})

	if err != nil {
		return s.mapTxError("Cancel", bookingID, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return nil
}

// SetPaid выставляет флаг оплаты. Безусловная запись без проверки текущего значения.
// Изменить флаг может владелец бронирования или владелец отеля.
func (s *Service) SetPaid(ctx context.Context, bookingID uuid.UUID, req *models.UpdatePaymentRequest) (*models.PaymentStatusResponse, error) {
	s.logger.Info("SetPaid: booking id=%s, isPaid=%t, user=%s", bookingID, req.IsPaid, req.UserID)

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	booking, err := s.getBooking(ctx, "SetPaid", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, req.UserID); err != nil {
		s.logger.Warn("SetPaid: access denied for user=%s to booking id=%s", req.UserID, bookingID)
		return nil, err
	}

	if err := s.bookingRepo.UpdatePaid(ctx, bookingID, req.IsPaid); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("SetPaid: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: SetPaid - repository error: %w", ErrStore, err)
	}

	s.logger.Info("SetPaid: booking id=%s isPaid=%t", bookingID, req.IsPaid)
	return &models.PaymentStatusResponse{ID: bookingID, IsPaid: req.IsPaid}, nil
}

// Вспомогательные методы

// storeContext ограничивает все обращения операции к хранилищу store timeout'ом
func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

// mapTxError пропускает ошибки сервиса, сбои begin/commit и таймауты превращает в ErrStore
func (s *Service) mapTxError(op string, id uuid.UUID, err error) error {
	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrCannotCancel),
		errors.Is(err, ErrStore):
		return err
	default:
		s.logger.Error("%s: transaction failed for booking id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - transaction: %w", ErrStore, op, err)
	}
}

func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrStore, op, err)
	}
	return booking, nil
}

// checkUserAccess проверяет, что пользователь владелец бронирования или владелец отеля
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID string) error {
	if userID != "" && booking.UserID == userID {
		return nil
	}

	hotel, err := s.hotelRepo.GetByID(ctx, booking.HotelID)
	if err != nil {
		if errors.Is(err, hotelRepo.ErrHotelNotFound) {
			s.logger.Warn("checkUserAccess: hotel id=%s not found", booking.HotelID)
			return ErrAccessDenied
		}
		s.logger.Error("checkUserAccess: failed to get hotel id=%s: %v", booking.HotelID, err)
		return fmt.Errorf("%w: checkUserAccess - get hotel: %w", ErrStore, err)
	}

	if !hotel.IsOwnedBy(userID) {
		return ErrAccessDenied
	}

	return nil
}
