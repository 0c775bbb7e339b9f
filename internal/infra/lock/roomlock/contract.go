// Package roomlock сериализует попытки бронирования одного номера.
//
// Local работает внутри одного процесса, Redis между несколькими инстансами сервиса.
// Обе реализации ждут захвата не дольше дедлайна переданного контекста.
package roomlock

import (
	"context"

	"github.com/google/uuid"
)

// Locker захватывает эксклюзивную блокировку номера.
// Возвращаемая функция освобождает блокировку, повторный вызов безопасен.
type Locker interface {
	Acquire(ctx context.Context, roomID uuid.UUID) (release func(), err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
