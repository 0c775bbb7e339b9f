package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
)

type fakeChannel struct {
	published  []amqp.Publishing
	keys       []string
	publishErr error
	closed     bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func newTestPublisher(open func() (channel, error)) *Publisher {
	return &Publisher{
		queue:  "booking.created",
		logger: logger.NewNop(),
		open:   open,
	}
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:           uuid.MustParse("7d0c1a52-1111-4c2a-9a51-2f6f0c6c0001"),
		RoomID:       uuid.MustParse("7d0c1a52-2222-4c2a-9a51-2f6f0c6c0002"),
		HotelID:      uuid.MustParse("7d0c1a52-3333-4c2a-9a51-2f6f0c6c0003"),
		UserID:       "user_42",
		CheckInDate:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		Guests:       2,
		TotalPrice:   200,
		Status:       domain.StatusPending,
		CreatedAt:    time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestNewBookingCreatedEvent(t *testing.T) {
	event := NewBookingCreatedEvent(testBooking())

	assert.Equal(t, "7d0c1a52-1111-4c2a-9a51-2f6f0c6c0001", event.BookingID)
	assert.Equal(t, "user_42", event.UserID)
	assert.Equal(t, "2024-06-14", event.CheckInDate)
	assert.Equal(t, "2024-06-16", event.CheckOutDate)
	assert.Equal(t, 200.0, event.TotalPrice)
	assert.Equal(t, "PENDING", event.Status)
	assert.Equal(t, "2024-06-01T12:30:00Z", event.CreatedAt)
}

func TestPublisher_PublishBookingCreated(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(func() (channel, error) { return ch, nil })

	err := p.PublishBookingCreated(context.Background(), testBooking())
	require.NoError(t, err)

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "booking.created", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "7d0c1a52-1111-4c2a-9a51-2f6f0c6c0001", msg.MessageId)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Body, &payload))
	assert.Equal(t, "7d0c1a52-2222-4c2a-9a51-2f6f0c6c0002", payload["room_id"])
	assert.Equal(t, float64(2), payload["guests"])
}

func TestPublisher_ReopensChannelAfterFailure(t *testing.T) {
	broken := &fakeChannel{publishErr: errors.New("channel closed")}
	healthy := &fakeChannel{}

	opened := 0
	p := newTestPublisher(func() (channel, error) {
		opened++
		if opened == 1 {
			return broken, nil
		}
		return healthy, nil
	})

	err := p.PublishBookingCreated(context.Background(), testBooking())
	assert.ErrorIs(t, err, ErrPublish)
	assert.True(t, broken.closed)

	err = p.PublishBookingCreated(context.Background(), testBooking())
	require.NoError(t, err)
	assert.Len(t, healthy.published, 1)
	assert.Equal(t, 2, opened)
}

func TestPublisher_OpenFailure(t *testing.T) {
	p := newTestPublisher(func() (channel, error) { return nil, ErrConnect })

	err := p.PublishBookingCreated(context.Background(), testBooking())
	assert.ErrorIs(t, err, ErrConnect)
}
