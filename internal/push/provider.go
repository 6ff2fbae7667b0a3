// Package push delivers device push messages over RabbitMQ.
//
// A device token names a durable per-device queue. The backend publishes
// notification JSON to that queue with an "origin" header telling whether the
// message opened the app from the background or from a terminated state.
package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"

	"vendorapp/internal/models"
	"vendorapp/pkg/rabbitmq"
)

// ErrPushDisabled is returned by the disabled provider.
var ErrPushDisabled = errors.New("push messaging is disabled")

// OriginHeader carries the models.PushOrigin of a message.
const OriginHeader = "origin"

// AMQPProvider is a push provider backed by a RabbitMQ client.
type AMQPProvider struct {
	client *rabbitmq.Client
	logger *zap.Logger

	mu    sync.Mutex
	token string
}

// NewAMQPProvider creates a new AMQPProvider.
func NewAMQPProvider(client *rabbitmq.Client, logger *zap.Logger) *AMQPProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AMQPProvider{client: client, logger: logger}
}

// RequestPermission is granted whenever the broker connection exists.
func (p *AMQPProvider) RequestPermission(context.Context) (bool, error) {
	return p.client != nil, nil
}

// Token returns this process's device token, declaring its queue on first use.
func (p *AMQPProvider) Token(context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token != "" {
		return p.token, nil
	}
	token := "device-" + uuid.New().String()
	if err := p.client.DeclareDeviceQueue(token); err != nil {
		return "", err
	}
	p.token = token
	return token, nil
}

// Subscribe streams the messages queued for deviceToken until ctx is done.
func (p *AMQPProvider) Subscribe(ctx context.Context, deviceToken string) (<-chan models.PushMessage, error) {
	if err := p.client.DeclareDeviceQueue(deviceToken); err != nil {
		return nil, err
	}

	out := make(chan models.PushMessage)
	done, err := p.client.ConsumeDeviceMessages(ctx, deviceToken, func(d amqp.Delivery) error {
		msg, err := MessageFromDelivery(d)
		if err != nil {
			return err
		}
		select {
		case out <- msg:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil {
		return nil, err
	}

	go func() {
		<-done
		close(out)
	}()
	p.logger.Info("listening for push messages", zap.String("queue", deviceToken))
	return out, nil
}

// MessageFromDelivery decodes a delivery into a PushMessage.
func MessageFromDelivery(d amqp.Delivery) (models.PushMessage, error) {
	var msg models.PushMessage
	if len(d.Body) > 0 {
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			return models.PushMessage{}, fmt.Errorf("invalid push payload: %w", err)
		}
	}
	if origin, ok := d.Headers[OriginHeader].(string); ok && origin != "" {
		msg.Origin = models.PushOrigin(origin)
	}
	switch msg.Origin {
	case models.PushOpenedFromBackground, models.PushOpenedFromTerminated, models.PushForeground:
	default:
		msg.Origin = models.PushForeground
	}
	return msg, nil
}

// DisabledProvider denies permission and never delivers messages.
type DisabledProvider struct{}

func (DisabledProvider) RequestPermission(context.Context) (bool, error) {
	return false, nil
}

func (DisabledProvider) Token(context.Context) (string, error) {
	return "", ErrPushDisabled
}

func (DisabledProvider) Subscribe(context.Context, string) (<-chan models.PushMessage, error) {
	ch := make(chan models.PushMessage)
	close(ch)
	return ch, nil
}
