package create_booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Booking) *domain.Booking); ok {
		return fn(ctx, booking), args.Error(1)
	}
	if b, ok := args.Get(0).(*domain.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) FindOverlapping(ctx context.Context, q domain.OverlapQuery) ([]*domain.Booking, error) {
	args := m.Called(ctx, q)
	if b, ok := args.Get(0).([]*domain.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

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

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

// passThroughTx выполняет fn без транзакции
type passThroughTx struct{}

func (passThroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type outcomeRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func newOutcomeRecorder() *outcomeRecorder {
	return &outcomeRecorder{counts: make(map[string]int)}
}

func (r *outcomeRecorder) IncBooking(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[outcome]++
}

func (r *outcomeRecorder) get(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[outcome]
}

// memStore хранилище номеров и бронирований в памяти.
// Проверка пересечений и вставка не атомарны между собой, как и в настоящей БД без блокировок.
type memStore struct {
	mu       sync.Mutex
	rooms    map[uuid.UUID]*domain.Room
	bookings []*domain.Booking
	policy   domain.OverlapPolicy
}

func newMemStore(policy domain.OverlapPolicy, rooms ...*domain.Room) *memStore {
	s := &memStore{rooms: make(map[uuid.UUID]*domain.Room), policy: policy}
	for _, r := range rooms {
		s.rooms[r.ID] = r
	}
	return s
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	copied := *room
	return &copied, nil
}

func (s *memStore) FindOverlapping(_ context.Context, q domain.OverlapQuery) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*domain.Booking
	for _, b := range s.bookings {
		if b.RoomID == q.RoomID && b.IsActive() && b.Stay().Overlaps(q.Stay, q.Policy) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (s *memStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	// даем другим горутинам шанс вклиниться между проверкой и вставкой
	time.Sleep(time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()

	// аналог exclusion constraint: '[)' независимо от политики приложения
	for _, b := range s.bookings {
		if b.RoomID == booking.RoomID && b.IsActive() && b.Stay().Overlaps(booking.Stay(), domain.OverlapHalfOpen) {
			return nil, bookingRepo.ErrBookingOverlap
		}
	}

	booking.ID = uuid.New()
	booking.CreatedAt = time.Now().UTC()
	booking.UpdatedAt = booking.CreatedAt
	s.bookings = append(s.bookings, booking)
	return booking, nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}
