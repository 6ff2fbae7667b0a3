package push_test

import (
	"context"
	"testing"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorapp/internal/models"
	"vendorapp/internal/push"
)

func TestMessageFromDelivery(t *testing.T) {
	tests := []struct {
		name     string
		delivery amqp.Delivery
		want     models.PushMessage
	}{
		{
			name: "origin from header",
			delivery: amqp.Delivery{
				Headers: amqp.Table{push.OriginHeader: "terminated"},
				Body:    []byte(`{"title":"New order","body":"ORD-1","data":{"orderId":"ORD-1"}}`),
			},
			want: models.PushMessage{
				Origin: models.PushOpenedFromTerminated,
				Title:  "New order",
				Body:   "ORD-1",
				Data:   map[string]string{"orderId": "ORD-1"},
			},
		},
		{
			name:     "origin from body",
			delivery: amqp.Delivery{Body: []byte(`{"origin":"background","title":"Paid"}`)},
			want:     models.PushMessage{Origin: models.PushOpenedFromBackground, Title: "Paid"},
		},
		{
			name:     "unknown origin is foreground",
			delivery: amqp.Delivery{Headers: amqp.Table{push.OriginHeader: "elsewhere"}, Body: []byte(`{"title":"Hi"}`)},
			want:     models.PushMessage{Origin: models.PushForeground, Title: "Hi"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := push.MessageFromDelivery(tt.delivery)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMessageFromDelivery_InvalidJSON(t *testing.T) {
	_, err := push.MessageFromDelivery(amqp.Delivery{Body: []byte(`{not json`)})
	assert.Error(t, err)
}

func TestDisabledProvider(t *testing.T) {
	ctx := context.Background()
	var p push.DisabledProvider

	granted, err := p.RequestPermission(ctx)
	assert.NoError(t, err)
	assert.False(t, granted)

	_, err = p.Token(ctx)
	assert.ErrorIs(t, err, push.ErrPushDisabled)

	ch, err := p.Subscribe(ctx, "any")
	require.NoError(t, err)
	_, open := <-ch
	assert.False(t, open)
}
