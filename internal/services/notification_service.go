package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vendorapp/internal/metrics"
	"vendorapp/internal/models"
	"vendorapp/internal/repositories"
	"vendorapp/internal/session"
)

// PushProvider is the device push-messaging transport.
type PushProvider interface {
	RequestPermission(ctx context.Context) (bool, error)
	Token(ctx context.Context) (string, error)
	Subscribe(ctx context.Context, deviceToken string) (<-chan models.PushMessage, error)
}

// NotificationService registers the device for push messages and listens for them.
type NotificationService struct {
	provider PushProvider
	store    *session.Store
	vendors  repositories.VendorRepository
	logger   *zap.Logger
	onOpened func(models.PushMessage)
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(provider PushProvider, store *session.Store, vendors repositories.VendorRepository, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		provider: provider,
		store:    store,
		vendors:  vendors,
		logger:   logger,
	}
}

// OnOpened sets the hook run for messages that opened the app.
func (s *NotificationService) OnOpened(fn func(models.PushMessage)) {
	s.onOpened = fn
}

// RequestPermission asks the provider for permission and, when granted,
// makes sure a device token is cached.
func (s *NotificationService) RequestPermission(ctx context.Context) bool {
	granted, err := s.provider.RequestPermission(ctx)
	if err != nil {
		s.logger.Warn("push permission request failed", zap.Error(err))
		return false
	}
	if !granted {
		s.logger.Info("push permission denied")
		return false
	}
	s.logger.Info("push permission granted")
	if _, err := s.DeviceToken(ctx); err != nil {
		s.logger.Warn("error fetching push token", zap.Error(err))
	}
	return true
}

// DeviceToken returns the cached push token, asking the provider on a miss.
func (s *NotificationService) DeviceToken(ctx context.Context) (string, error) {
	if token := s.store.FCMToken(ctx); token != "" {
		return token, nil
	}
	token, err := s.provider.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get push token: %w", err)
	}
	if token == "" {
		return "", fmt.Errorf("push provider returned an empty token")
	}
	if err := s.store.SetFCMToken(ctx, token); err != nil {
		s.logger.Warn("could not cache push token", zap.Error(err))
	}
	s.logger.Debug("new push token", zap.String("token", token))
	return token, nil
}

// RegisterVendorToken sends the device token to the backend for vendorID.
// It is a no-op when either is missing.
func (s *NotificationService) RegisterVendorToken(ctx context.Context, vendorID string) error {
	if vendorID == "" {
		return nil
	}
	token, err := s.DeviceToken(ctx)
	if err != nil || token == "" {
		return nil
	}
	if err := s.vendors.UpdateFCMToken(ctx, vendorID, token); err != nil {
		return err
	}
	s.logger.Info("push token registered with backend", zap.String("vendorId", vendorID))
	return nil
}

// Listen consumes push messages until ctx is done or the provider closes the stream.
// Push failures are logged and never returned, so the rest of the app keeps running.
func (s *NotificationService) Listen(ctx context.Context) error {
	token, err := s.DeviceToken(ctx)
	if err != nil {
		s.logger.Info("push messages unavailable", zap.Error(err))
		return nil
	}
	messages, err := s.provider.Subscribe(ctx, token)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("push_subscribe").Inc()
		s.logger.Error("failed to subscribe to push messages, continuing without them",
			zap.String("queue", token), zap.Error(err))
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			s.handle(msg)
		}
	}
}

func (s *NotificationService) handle(msg models.PushMessage) {
	switch msg.Origin {
	case models.PushOpenedFromBackground:
		s.logger.Info("notification caused app to open from background state", zap.String("title", msg.Title))
	case models.PushOpenedFromTerminated:
		s.logger.Info("notification caused app to open from quit state", zap.String("title", msg.Title))
	default:
		s.logger.Info("push message arrived", zap.String("title", msg.Title), zap.String("body", msg.Body))
		return
	}
	if s.onOpened != nil {
		s.onOpened(msg)
	}
}
