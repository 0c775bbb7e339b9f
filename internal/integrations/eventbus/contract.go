package eventbus

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// channel часть *amqp.Channel, которая нужна издателю
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
