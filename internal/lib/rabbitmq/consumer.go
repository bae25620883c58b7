package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
)

// ErrDiscard handler возвращает её, когда сообщение нельзя обработать никогда
// (например, битый JSON): сообщение отклоняется без возврата в очередь.
var ErrDiscard = errors.New("discard message")

// ErrDeliveryClosed брокер закрыл канал доставки: очередь удалена, канал или
// соединение закрыты. Потребитель больше ничего не получит.
var ErrDeliveryClosed = errors.New("delivery channel closed")

// Handler обработчик тела сообщения.
type Handler func(ctx context.Context, body []byte) error

// Consumer запущенный потребитель очереди.
type Consumer struct {
	wg   sync.WaitGroup
	done chan struct{}
	err  error
}

// Done закрывается, когда потребитель перестал принимать сообщения: после
// отмены ctx или после закрытия канала доставки брокером.
func (c *Consumer) Done() <-chan struct{} {
	return c.done
}

// Err возвращает nil, если потребитель остановлен через ctx, и ошибку
// с ErrDeliveryClosed, если канал закрыл брокер. Значение определено после Done.
func (c *Consumer) Err() error {
	<-c.done
	return c.err
}

// Wait дожидается завершения всех запущенных обработчиков.
func (c *Consumer) Wait() {
	c.wg.Wait()
}

// ConsumerMessage создает потребителя сообщений из очереди RabbitMQ.
// Одновременно обрабатывается не больше workers сообщений.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, workers int, log *slog.Logger, handler Handler) (*Consumer, error) {
	const op = "rabbitmq.ConsumerMessage"
	closed := ch.NotifyClose(make(chan *amqp.Error, 1))
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log = log.With(slog.String("op", op), slog.String("queue", queueName))
	return consume(ctx, delivery, closed, workers, log, handler), nil
}

func consume(ctx context.Context, delivery <-chan amqp.Delivery, closed <-chan *amqp.Error, workers int, log *slog.Logger, handler Handler) *Consumer {
	if workers <= 0 {
		workers = 1
	}
	c := &Consumer{done: make(chan struct{})}
	sem := make(chan struct{}, workers)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(c.done)
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					c.err = closeReason(closed)
					log.Error("delivery channel closed", sl.Err(c.err))
					return
				}
				sem <- struct{}{}
				c.wg.Add(1)
				go func(d amqp.Delivery) {
					defer c.wg.Done()
					defer func() { <-sem }()
					handle(ctx, log, d, handler)
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return c
}

// closeReason дополняет ErrDeliveryClosed причиной закрытия канала, если
// брокер её успел сообщить.
func closeReason(closed <-chan *amqp.Error) error {
	select {
	case amqpErr, ok := <-closed:
		if ok && amqpErr != nil {
			return fmt.Errorf("%w: %v", ErrDeliveryClosed, amqpErr)
		}
	default:
	}
	return ErrDeliveryClosed
}

func handle(ctx context.Context, log *slog.Logger, d amqp.Delivery, handler Handler) {
	err := handler(ctx, d.Body)
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error("failed to ack message", sl.Err(ackErr))
		}
	case errors.Is(err, ErrDiscard):
		log.Warn("message discarded", sl.Err(err))
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
	default:
		log.Error("handler failed, message requeued", sl.Err(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
	}
}
