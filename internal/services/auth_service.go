package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"vendorapp/internal/models"
	"vendorapp/internal/repositories"
	"vendorapp/internal/session"
)

// AuthService handles vendor login and logout.
type AuthService struct {
	vendorRepo    repositories.VendorRepository
	store         *session.Store
	notifications *NotificationService
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewAuthService creates a new AuthService. notifications may be nil.
func NewAuthService(vendorRepo repositories.VendorRepository, store *session.Store, notifications *NotificationService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		vendorRepo:    vendorRepo,
		store:         store,
		notifications: notifications,
		validate:      validator.New(),
		logger:        logger,
	}
}

// Login authenticates the vendor, persists the session and registers the
// device for push messages. Push failures never fail the login.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Vendor, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	resp, err := s.vendorRepo.Login(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Warn("login failed", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	if err := s.store.Save(ctx, *resp); err != nil {
		return nil, err
	}
	s.logger.Info("vendor logged in", zap.String("vendorId", resp.Vendor.ID))

	if s.notifications != nil {
		s.notifications.RequestPermission(ctx)
		if err := s.notifications.RegisterVendorToken(ctx, resp.Vendor.ID); err != nil {
			s.logger.Error("failed to update push token on backend", zap.Error(err))
		}
	}

	vendor := resp.Vendor
	return &vendor, nil
}

// Logout clears every persisted session key.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("vendor logged out")
	return nil
}

// CurrentSession returns the stored session if it is still usable.
func (s *AuthService) CurrentSession(ctx context.Context) (*models.Session, bool) {
	return s.store.Current(ctx)
}

// StartRoute picks the first screen: Home with a usable session, else Login.
func (s *AuthService) StartRoute(ctx context.Context) models.Route {
	if _, ok := s.store.Current(ctx); ok {
		return models.RouteHome
	}
	return models.RouteLogin
}
