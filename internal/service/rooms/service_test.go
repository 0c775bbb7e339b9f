package rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
)

type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*domain.Room); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomRepo) ToggleAvailability(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var roomID = uuid.MustParse("11111111-1111-4111-8111-111111111111")

func TestToggleAvailability(t *testing.T) {
	repo := &mockRoomRepo{}
	svc := NewService(repo, time.Second, logger.NewNop())

	repo.On("GetByID", mock.Anything, roomID).Return(&domain.Room{ID: roomID, HotelOwnerID: "owner_1", IsAvailable: true}, nil)
	repo.On("ToggleAvailability", mock.Anything, roomID).Return(false, nil).Once()
	repo.On("ToggleAvailability", mock.Anything, roomID).Return(true, nil).Once()

	resp, err := svc.ToggleAvailability(context.Background(), roomID, "owner_1")
	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)

	resp, err = svc.ToggleAvailability(context.Background(), roomID, "owner_1")
	require.NoError(t, err)
	assert.True(t, resp.IsAvailable)

	repo.AssertExpectations(t)
}

func TestToggleAvailability_NotOwner(t *testing.T) {
	repo := &mockRoomRepo{}
	svc := NewService(repo, time.Second, logger.NewNop())
	repo.On("GetByID", mock.Anything, roomID).Return(&domain.Room{ID: roomID, HotelOwnerID: "owner_1"}, nil)

	_, err := svc.ToggleAvailability(context.Background(), roomID, "guest_1")
	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "ToggleAvailability", mock.Anything, mock.Anything)
}

func TestToggleAvailability_NotFound(t *testing.T) {
	repo := &mockRoomRepo{}
	svc := NewService(repo, time.Second, logger.NewNop())
	repo.On("GetByID", mock.Anything, roomID).Return(nil, roomRepo.ErrRoomNotFound)

	_, err := svc.ToggleAvailability(context.Background(), roomID, "owner_1")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestToggleAvailability_StoreFailure(t *testing.T) {
	repo := &mockRoomRepo{}
	svc := NewService(repo, time.Second, logger.NewNop())

	hasDeadline := mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})
	repo.On("GetByID", hasDeadline, roomID).Return(&domain.Room{ID: roomID, HotelOwnerID: "owner_1"}, nil)
	repo.On("ToggleAvailability", hasDeadline, roomID).Return(false, errors.New("connection reset by peer"))

	_, err := svc.ToggleAvailability(context.Background(), roomID, "owner_1")
	assert.ErrorIs(t, err, ErrStore)
	repo.AssertExpectations(t)
}
