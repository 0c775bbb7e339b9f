// Package eventbus публикует доменные события бронирований в RabbitMQ.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Publisher держит одно соединение с брокером и публикует события в durable очередь.
// После ошибки публикации канал закрывается и переоткрывается при следующей публикации.
type Publisher struct {
	url    string
	queue  string
	logger Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   channel
	open func() (channel, error)
}

// NewPublisher подключается к брокеру и объявляет очередь
func NewPublisher(url, queue string, logger Logger) (*Publisher, error) {
	p := &Publisher{
		url:    url,
		queue:  queue,
		logger: logger,
	}
	p.open = p.dial

	ch, err := p.open()
	if err != nil {
		return nil, err
	}
	p.ch = ch

	logger.Info("eventbus: connected, queue=%s", queue)
	return p, nil
}

// PublishBookingCreated публикует событие booking.created
func (p *Publisher) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	body, err := json.Marshal(NewBookingCreatedEvent(booking))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarshal, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    booking.ID.String(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		ch, err := p.open()
		if err != nil {
			return err
		}
		p.ch = ch
	}

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.resetChannel()
		return fmt.Errorf("%w: booking_id=%s: %w", ErrPublish, booking.ID, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.resetChannel()
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

func (p *Publisher) resetChannel() {
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			p.logger.Warn("eventbus: failed to close channel: %v", err)
		}
		p.ch = nil
	}
}

// dial открывает канал, при необходимости переподключаясь, и объявляет очередь
func (p *Publisher) dial() (channel, error) {
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("%w: dial: %w", ErrConnect, err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%w: open channel: %w", ErrConnect, err)
	}

	// durable, чтобы сообщения пережили рестарт брокера
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%w: declare queue %s: %w", ErrConnect, p.queue, err)
	}

	return ch, nil
}
