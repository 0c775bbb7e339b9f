package check_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	checkAvailability "github.com/m04kA/SMC-HotelBookingService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error) {
	args := m.Called(ctx, req)
	if r, ok := args.Get(0).(*checkAvailability.Response); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

const body = `{"roomId":"11111111-1111-4111-8111-111111111111","checkInDate":"2024-06-14","checkOutDate":"2024-06-16"}`

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/check-availability", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Available(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&checkAvailability.Response{
		RoomID:       uuid.MustParse("11111111-1111-4111-8111-111111111111"),
		CheckInDate:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		IsAvailable:  true,
		Nights:       2,
		TotalPrice:   200,
	}, nil)

	rec := serve(NewHandler(uc, logger.NewNop()), body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{
		"roomId":"11111111-1111-4111-8111-111111111111",
		"checkInDate":"2024-06-14","checkOutDate":"2024-06-16",
		"isAvailable":true,"nights":2,"totalPrice":200}}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{checkAvailability.ErrInvalidInput, http.StatusBadRequest},
		{checkAvailability.ErrRoomNotFound, http.StatusNotFound},
		{checkAvailability.ErrStore, http.StatusServiceUnavailable},
		{checkAvailability.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(uc, logger.NewNop()), body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
