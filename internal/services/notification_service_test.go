package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vendorapp/internal/models"
	"vendorapp/internal/repositories"
	"vendorapp/internal/services"
	"vendorapp/internal/session"
)

type fakeProvider struct {
	granted    bool
	token      string
	tokenCalls int
	messages   chan models.PushMessage
	subErr     error
}

func (p *fakeProvider) RequestPermission(context.Context) (bool, error) {
	return p.granted, nil
}

func (p *fakeProvider) Token(context.Context) (string, error) {
	p.tokenCalls++
	if p.token == "" {
		return "", errors.New("push disabled")
	}
	return p.token, nil
}

func (p *fakeProvider) Subscribe(context.Context, string) (<-chan models.PushMessage, error) {
	if p.subErr != nil {
		return nil, p.subErr
	}
	return p.messages, nil
}

func TestNotificationService_DeviceTokenIsCached(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{granted: true, token: "device-1"}
	store := session.NewStore(repositories.NewMockSessionRepository(), nil)
	svc := services.NewNotificationService(provider, store, new(MockVendorRepository), nil)

	token, err := svc.DeviceToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "device-1", token)

	token, err = svc.DeviceToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "device-1", token)
	assert.Equal(t, 1, provider.tokenCalls)
}

func TestNotificationService_PermissionDenied(t *testing.T) {
	provider := &fakeProvider{granted: false, token: "device-1"}
	store := session.NewStore(repositories.NewMockSessionRepository(), nil)
	svc := services.NewNotificationService(provider, store, new(MockVendorRepository), nil)

	assert.False(t, svc.RequestPermission(context.Background()))
	assert.Equal(t, 0, provider.tokenCalls)
}

func TestNotificationService_RegisterWithoutTokenIsNoop(t *testing.T) {
	vendors := new(MockVendorRepository)
	store := session.NewStore(repositories.NewMockSessionRepository(), nil)
	svc := services.NewNotificationService(&fakeProvider{}, store, vendors, nil)

	assert.NoError(t, svc.RegisterVendorToken(context.Background(), "v-1"))
	assert.NoError(t, svc.RegisterVendorToken(context.Background(), ""))
	vendors.AssertNotCalled(t, "UpdateFCMToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationService_ListenRunsOpenedHook(t *testing.T) {
	provider := &fakeProvider{granted: true, token: "device-1", messages: make(chan models.PushMessage, 3)}
	store := session.NewStore(repositories.NewMockSessionRepository(), nil)
	svc := services.NewNotificationService(provider, store, new(MockVendorRepository), nil)

	var opened []models.PushOrigin
	svc.OnOpened(func(msg models.PushMessage) { opened = append(opened, msg.Origin) })

	provider.messages <- models.PushMessage{Origin: models.PushOpenedFromTerminated, Title: "New order"}
	provider.messages <- models.PushMessage{Origin: models.PushForeground, Title: "Ping"}
	provider.messages <- models.PushMessage{Origin: models.PushOpenedFromBackground, Title: "Order paid"}
	close(provider.messages)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, svc.Listen(ctx))
	assert.Equal(t, []models.PushOrigin{models.PushOpenedFromTerminated, models.PushOpenedFromBackground}, opened)
}

func TestNotificationService_ListenWithoutProvider(t *testing.T) {
	store := session.NewStore(repositories.NewMockSessionRepository(), nil)
	svc := services.NewNotificationService(&fakeProvider{}, store, new(MockVendorRepository), nil)
	assert.NoError(t, svc.Listen(context.Background()))
}

func TestNotificationService_ListenSubscribeFailureIsNotFatal(t *testing.T) {
	provider := &fakeProvider{granted: true, token: "device-1", subErr: errors.New("channel closed")}
	store := session.NewStore(repositories.NewMockSessionRepository(), nil)
	svc := services.NewNotificationService(provider, store, new(MockVendorRepository), nil)

	assert.NoError(t, svc.Listen(context.Background()))
}
