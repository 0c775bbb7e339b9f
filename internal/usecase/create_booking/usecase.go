package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelBookingService/pkg/metrics"
)

const publishTimeout = 5 * time.Second

// Options настройки создания бронирования
type Options struct {
	Policy          domain.OverlapPolicy
	StoreTimeout    time.Duration
	LockWaitTimeout time.Duration
}

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	locker      RoomLocker
	txManager   TransactionManager
	publisher   EventPublisher
	metrics     Metrics
	opts        Options
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	locker RoomLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		locker:      locker,
		txManager:   txManager,
		publisher:   publisher,
		metrics:     metrics,
		opts:        opts,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Гонка двух бронирований одного номера закрыта тремя слоями: блокировка номера,
// сериализуемая транзакция с FOR UPDATE на строке номера и exclusion constraint в БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	result, err := uc.execute(ctx, req)
	uc.metrics.IncBooking(outcome(err))
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, result)

	return toResponse(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: user=%s, room=%s, checkIn=%s, checkOut=%s, guests=%d",
		req.UserID, req.RoomID, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat), req.Guests)

	stay, err := domain.NewBillableStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 2. Получаем номер
	room, err := uc.getRoom(ctx, req)
	if err != nil {
		return nil, err
	}

	if !room.IsAvailable {
		uc.logger.Warn("CreateBooking: room id=%s is switched off by the owner", room.ID)
		return nil, fmt.Errorf("%w: room is switched off by the owner", ErrRoomNotAvailable)
	}

	// 3. Блокируем номер
	lockCtx, cancelLock := context.WithTimeout(ctx, uc.opts.LockWaitTimeout)
	release, err := uc.locker.Acquire(lockCtx, room.ID)
	cancelLock()
	if err != nil {
		uc.logger.Error("CreateBooking: failed to lock room id=%s: %v", room.ID, err)
		return nil, fmt.Errorf("%w: lock room: %w", ErrStore, err)
	}
	defer release()

	var result *domain.Booking

	// 4. Проверка доступности и вставка в сериализуемой транзакции
	storeCtx, cancelStore := context.WithTimeout(ctx, uc.opts.StoreTimeout)
	defer cancelStore()

	err = uc.txManager.DoSerializable(storeCtx, func(txCtx context.Context) error {
		// 4.1. Блокируем строку номера (FOR UPDATE) и перечитываем цену
		lockedRoom, err := uc.roomRepo.GetByID(txCtx, room.ID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("%w: lock room row: %w", ErrStore, err)
		}

		// 4.2. Проверяем пересечения с активными бронированиями
		overlapping, err := uc.bookingRepo.FindOverlapping(txCtx, domain.OverlapQuery{
			RoomID: lockedRoom.ID,
			Stay:   stay,
			Policy: uc.opts.Policy,
		})
		if err != nil {
			return fmt.Errorf("%w: find overlapping bookings: %w", ErrStore, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: room id=%s not available, %d overlapping bookings (policy=%s)",
				lockedRoom.ID, len(overlapping), uc.opts.Policy)
			return ErrRoomNotAvailable
		}

		// 4.3. Считаем стоимость
		if !lockedRoom.HasValidPrice() {
			uc.logger.Error("CreateBooking: room id=%s has invalid rate %.2f", lockedRoom.ID, lockedRoom.PricePerNight)
			return fmt.Errorf("%w: room %s: %w", ErrInternal, lockedRoom.ID, domain.ErrInvalidRate)
		}

		totalPrice, err := domain.ComputeTotalPrice(lockedRoom.PricePerNight, stay.CheckIn, stay.CheckOut)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to price room id=%s, rate=%.2f: %v",
				lockedRoom.ID, lockedRoom.PricePerNight, err)
			return fmt.Errorf("%w: compute total price: %w", ErrInternal, err)
		}

		// 4.4. Создаем бронирование с денормализацией данных номера
		booking := &domain.Booking{
			RoomID:        lockedRoom.ID,
			UserID:        req.UserID,
			HotelID:       lockedRoom.HotelID,
			CheckInDate:   stay.CheckIn,
			CheckOutDate:  stay.CheckOut,
			Guests:        req.Guests,
			TotalPrice:    totalPrice,
			Status:        domain.StatusPending,
			IsPaid:        false,
			PaymentMethod: domain.DefaultPaymentMethod,
			RoomType:      lockedRoom.RoomType,
			HotelName:     lockedRoom.HotelName,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingOverlap) {
				uc.logger.Warn("CreateBooking: insert rejected by overlap constraint, room id=%s", lockedRoom.ID)
				return ErrRoomNotAvailable
			}
			return fmt.Errorf("%w: insert booking: %w", ErrStore, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, room=%s, nights=%d, total=%.2f",
		result.ID, result.RoomID, stay.Nights(), result.TotalPrice)

	return result, nil
}

func (uc *UseCase) getRoom(ctx context.Context, req *Request) (*domain.Room, error) {
	storeCtx, cancel := context.WithTimeout(ctx, uc.opts.StoreTimeout)
	defer cancel()

	room, err := uc.roomRepo.GetByID(storeCtx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%s not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: get room: %w", ErrStore, err)
	}

	return room, nil
}

// mapTxError оставляет ошибки usecase как есть, остальное (таймаут, begin/commit,
// исчерпанные повторы сериализации) превращает в ErrStore
func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrRoomNotAvailable),
		errors.Is(err, ErrRoomNotFound),
		errors.Is(err, ErrInternal),
		errors.Is(err, ErrStore):
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction: %w", ErrStore, err)
	}
}

// publish отправляет booking.created. Бронирование уже закоммичено, поэтому ошибка только логируется.
func (uc *UseCase) publish(ctx context.Context, booking *domain.Booking) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := uc.publisher.PublishBookingCreated(pubCtx, booking); err != nil {
		uc.logger.Error("CreateBooking: failed to publish booking.created for booking id=%s: %v", booking.ID, err)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCreated
	case errors.Is(err, ErrInvalidInput):
		return metrics.OutcomeInvalid
	case errors.Is(err, ErrRoomNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrRoomNotAvailable):
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeStoreError
	}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		UserID:        b.UserID,
		RoomID:        b.RoomID,
		HotelID:       b.HotelID,
		CheckInDate:   b.CheckInDate,
		CheckOutDate:  b.CheckOutDate,
		Nights:        b.Stay().Nights(),
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
