package eventbus

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Noop используется, когда брокер выключен в конфигурации
type Noop struct{}

func (Noop) PublishBookingCreated(context.Context, *domain.Booking) error {
	return nil
}

func (Noop) Close() error {
	return nil
}
