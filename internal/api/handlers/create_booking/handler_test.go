package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if r, ok := args.Get(0).(*createBooking.Response); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

const roomID = "11111111-1111-4111-8111-111111111111"

func doRequest(h *Handler, body string, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func validBody() string {
	return fmt.Sprintf(`{"roomId":%q,"checkInDate":"2024-06-14","checkOutDate":"2024-06-16","guests":2}`, roomID)
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, logger.NewNop())

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.UserID == "user_1" &&
			r.RoomID.String() == roomID &&
			r.CheckIn.Equal(time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)) &&
			r.Guests == 2
	})).Return(&createBooking.Response{
		ID:           uuid.MustParse("33333333-3333-4333-8333-333333333333"),
		UserID:       "user_1",
		RoomID:       uuid.MustParse(roomID),
		CheckInDate:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		Nights:       2,
		Guests:       2,
		TotalPrice:   200,
		Status:       "PENDING",
	}, nil)

	rec := doRequest(h, validBody(), "user_1")
	require.Equal(t, http.StatusCreated, rec.Code)

	var env struct {
		Success bool            `json:"success"`
		Data    BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, 200.0, env.Data.TotalPrice)
	assert.Equal(t, "2024-06-16", env.Data.CheckOutDate)
	assert.Equal(t, "PENDING", env.Data.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", fmt.Errorf("%w: guests must be at least 1", createBooking.ErrInvalidInput), http.StatusBadRequest},
		{"room not found", createBooking.ErrRoomNotFound, http.StatusNotFound},
		{"room not available", createBooking.ErrRoomNotAvailable, http.StatusConflict},
		{"store", fmt.Errorf("%w: lock room: %w", createBooking.ErrStore, context.DeadlineExceeded), http.StatusServiceUnavailable},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			h := NewHandler(uc, logger.NewNop())

			rec := doRequest(h, validBody(), "user_1")
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"roomId":`},
		{"bad room id", `{"roomId":"room-1","checkInDate":"2024-06-14","checkOutDate":"2024-06-16","guests":2}`},
		{"bad date", fmt.Sprintf(`{"roomId":%q,"checkInDate":"14.06.2024","checkOutDate":"2024-06-16","guests":2}`, roomID)},
		{"unknown field", fmt.Sprintf(`{"roomId":%q,"userId":"someone-else"}`, roomID)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			h := NewHandler(uc, logger.NewNop())

			rec := doRequest(h, tt.body, "user_1")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_Unauthenticated(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := doRequest(h, validBody(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
