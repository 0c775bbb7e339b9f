package rooms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
)

// Service сервис управления номерами
type Service struct {
	roomRepo     RoomRepository
	storeTimeout time.Duration
	logger       Logger
}

// NewService создает новый экземпляр сервиса номеров
func NewService(roomRepo RoomRepository, storeTimeout time.Duration, logger Logger) *Service {
	return &Service{
		roomRepo:     roomRepo,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// ToggleAvailability переключает флаг доступности номера. Доступно только владельцу отеля.
// Переключение выполняется одним UPDATE, без чтения текущего значения.
func (s *Service) ToggleAvailability(ctx context.Context, roomID uuid.UUID, userID string) (*AvailabilityResponse, error) {
	s.logger.Info("ToggleAvailability: room id=%s by user=%s", roomID, userID)

	if s.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("ToggleAvailability: room id=%s not found", roomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("ToggleAvailability: failed to get room id=%s: %v", roomID, err)
		return nil, fmt.Errorf("%w: ToggleAvailability - get room: %w", ErrStore, err)
	}

	if userID == "" || room.HotelOwnerID != userID {
		s.logger.Warn("ToggleAvailability: user=%s is not the owner of room id=%s", userID, roomID)
		return nil, ErrAccessDenied
	}

	isAvailable, err := s.roomRepo.ToggleAvailability(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("ToggleAvailability: failed to toggle room id=%s: %v", roomID, err)
		return nil, fmt.Errorf("%w: ToggleAvailability - toggle: %w", ErrStore, err)
	}

	s.logger.Info("ToggleAvailability: room id=%s isAvailable=%t", roomID, isAvailable)
	return &AvailabilityResponse{RoomID: roomID, IsAvailable: isAvailable}, nil
}
