// Package session keeps the vendor login on the device.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"

	"vendorapp/internal/models"
	"vendorapp/internal/repositories"
)

// Keys persisted for a logged-in vendor.
const (
	KeyVendorToken = "vendorToken"
	KeyVendorID    = "vendorId"
	KeyVendorData  = "vendorData"
	KeyFCMToken    = "fcmToken"
)

// AllKeys lists every key the store writes.
var AllKeys = []string{KeyVendorToken, KeyVendorID, KeyVendorData, KeyFCMToken}

// loginKeys are written by Save. The push token belongs to the device and outlives them.
var loginKeys = []string{KeyVendorToken, KeyVendorID, KeyVendorData}

// Store reads and writes the session through a SessionRepository.
// Storage failures on read are logged and treated as absence.
type Store struct {
	repo   repositories.SessionRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewStore creates a new Store.
func NewStore(repo repositories.SessionRepository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{repo: repo, logger: logger, now: time.Now}
}

func (s *Store) get(ctx context.Context, key string) string {
	value, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repositories.ErrKeyNotFound) {
			s.logger.Warn("session read failed, treating as absent", zap.String("key", key), zap.Error(err))
		}
		return ""
	}
	return value
}

// Token returns the stored bearer token, or "".
func (s *Store) Token(ctx context.Context) string {
	return s.get(ctx, KeyVendorToken)
}

// VendorID returns the stored vendor id, or "".
func (s *Store) VendorID(ctx context.Context) string {
	return s.get(ctx, KeyVendorID)
}

// Vendor returns the stored vendor record.
func (s *Store) Vendor(ctx context.Context) (*models.Vendor, bool) {
	raw := s.get(ctx, KeyVendorData)
	if raw == "" {
		return nil, false
	}
	var vendor models.Vendor
	if err := json.Unmarshal([]byte(raw), &vendor); err != nil {
		s.logger.Warn("stored vendor data is not valid JSON", zap.Error(err))
		return nil, false
	}
	return &vendor, true
}

// FCMToken returns the cached push token, or "".
func (s *Store) FCMToken(ctx context.Context) string {
	return s.get(ctx, KeyFCMToken)
}

// SetFCMToken caches the push token.
func (s *Store) SetFCMToken(ctx context.Context, token string) error {
	if err := s.repo.Set(ctx, KeyFCMToken, token); err != nil {
		return fmt.Errorf("failed to store fcm token: %w", err)
	}
	return nil
}

// Save persists a successful login.
func (s *Store) Save(ctx context.Context, login models.LoginResponse) error {
	vendorData, err := json.Marshal(login.Vendor)
	if err != nil {
		return fmt.Errorf("failed to marshal vendor data: %w", err)
	}
	writes := []struct{ key, value string }{
		{KeyVendorToken, login.Token},
		{KeyVendorID, login.Vendor.ID},
		{KeyVendorData, string(vendorData)},
	}
	for _, w := range writes {
		if err := s.repo.Set(ctx, w.key, w.value); err != nil {
			return fmt.Errorf("failed to store %s: %w", w.key, err)
		}
	}
	return nil
}

// Clear removes every session key, the push token included.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Current returns the stored session when a token is present and, for JWT
// tokens carrying exp, not yet expired. An expired login is discarded.
func (s *Store) Current(ctx context.Context) (*models.Session, bool) {
	token := s.Token(ctx)
	if token == "" {
		return nil, false
	}
	if s.expired(token) {
		s.logger.Info("stored vendor token has expired")
		if err := s.repo.Delete(ctx, loginKeys...); err != nil {
			s.logger.Warn("failed to discard expired session", zap.Error(err))
		}
		return nil, false
	}
	sess := &models.Session{Token: token, VendorID: s.VendorID(ctx)}
	if vendor, ok := s.Vendor(ctx); ok {
		sess.Vendor = vendor
	}
	return sess, true
}

// expired only inspects the claims; the signature is the server's concern.
func (s *Store) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	if _, ok := claims["exp"]; !ok {
		return false
	}
	return !claims.VerifyExpiresAt(s.now().Unix(), true)
}
