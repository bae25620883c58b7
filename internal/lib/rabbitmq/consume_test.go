package rabbitmq

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/adminstudio/internal/lib/sl"
)

// ackRecorder запоминает решения по доставкам вместо брокера.
type ackRecorder struct {
	mu      sync.Mutex
	acked   []uint64
	requeue []uint64
	dropped []uint64
}

func (a *ackRecorder) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *ackRecorder) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if requeue {
		a.requeue = append(a.requeue, tag)
	} else {
		a.dropped = append(a.dropped, tag)
	}
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func waitDone(t *testing.T, c *Consumer) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestConsume_AckDecisions(t *testing.T) {
	acks := &ackRecorder{}
	delivery := make(chan amqp.Delivery, 3)
	delivery <- amqp.Delivery{Acknowledger: acks, DeliveryTag: 1, Body: []byte("ok")}
	delivery <- amqp.Delivery{Acknowledger: acks, DeliveryTag: 2, Body: []byte("retry")}
	delivery <- amqp.Delivery{Acknowledger: acks, DeliveryTag: 3, Body: []byte("broken")}
	close(delivery)

	handler := func(_ context.Context, body []byte) error {
		switch string(body) {
		case "retry":
			return errors.New("db down")
		case "broken":
			return ErrDiscard
		}
		return nil
	}

	c := consume(context.Background(), delivery, nil, 2, sl.Discard(), handler)
	waitDone(t, c)
	c.Wait()

	acks.mu.Lock()
	defer acks.mu.Unlock()
	assert.Equal(t, []uint64{1}, acks.acked)
	assert.Equal(t, []uint64{2}, acks.requeue)
	assert.Equal(t, []uint64{3}, acks.dropped)
}

func TestConsume_StopReason(t *testing.T) {
	tests := []struct {
		name       string
		stop       func(cancel context.CancelFunc, delivery chan amqp.Delivery, closed chan *amqp.Error)
		wantErr    error
		wantReason string
	}{
		{
			name: "context cancelled",
			stop: func(cancel context.CancelFunc, _ chan amqp.Delivery, _ chan *amqp.Error) {
				cancel()
			},
		},
		{
			name: "delivery closed without reason",
			stop: func(_ context.CancelFunc, delivery chan amqp.Delivery, _ chan *amqp.Error) {
				close(delivery)
			},
			wantErr: ErrDeliveryClosed,
		},
		{
			name: "delivery closed by broker",
			stop: func(_ context.CancelFunc, delivery chan amqp.Delivery, closed chan *amqp.Error) {
				closed <- &amqp.Error{Code: amqp.ConnectionForced, Reason: "CONNECTION_FORCED - broker forced connection closure"}
				close(delivery)
			},
			wantErr:    ErrDeliveryClosed,
			wantReason: "CONNECTION_FORCED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			delivery := make(chan amqp.Delivery)
			closed := make(chan *amqp.Error, 1)

			c := consume(ctx, delivery, closed, 1, sl.Discard(), func(context.Context, []byte) error { return nil })
			tt.stop(cancel, delivery, closed)
			waitDone(t, c)
			c.Wait()

			err := c.Err()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantReason != "" {
				assert.Contains(t, err.Error(), tt.wantReason)
			}
		})
	}
}

func TestConsume_BoundedWorkers(t *testing.T) {
	acks := &ackRecorder{}
	delivery := make(chan amqp.Delivery, 4)
	for tag := uint64(1); tag <= 4; tag++ {
		delivery <- amqp.Delivery{Acknowledger: acks, DeliveryTag: tag}
	}
	close(delivery)

	var (
		mu      sync.Mutex
		running int
		peak    int
	)
	handler := func(context.Context, []byte) error {
		mu.Lock()
		running++
		if running > peak {
			peak = running
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		running--
		mu.Unlock()
		return nil
	}

	c := consume(context.Background(), delivery, nil, 2, sl.Discard(), handler)
	waitDone(t, c)
	c.Wait()

	assert.LessOrEqual(t, peak, 2)
	acks.mu.Lock()
	defer acks.mu.Unlock()
	assert.Len(t, acks.acked, 4)
}
