package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"

	"vendorapp/internal/api"
	"vendorapp/internal/models"
)

// MockVendorRepository is an in-memory implementation of VendorRepository
// that signs HS256 tokens like the real backend.
type MockVendorRepository struct {
	vendors   map[string]mockVendor
	fcmTokens map[string]string
	secret    []byte
	tokenTTL  time.Duration
	mu        sync.RWMutex
}

type mockVendor struct {
	password string
	vendor   models.Vendor
}

// NewMockVendorRepository creates a new instance of MockVendorRepository.
func NewMockVendorRepository(secret string) *MockVendorRepository {
	return &MockVendorRepository{
		vendors:   make(map[string]mockVendor),
		fcmTokens: make(map[string]string),
		secret:    []byte(secret),
		tokenTTL:  24 * time.Hour,
	}
}

// AddVendor registers a vendor account.
func (r *MockVendorRepository) AddVendor(email, password string, vendor models.Vendor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vendor.Email = email
	r.vendors[email] = mockVendor{password: password, vendor: vendor}
}

// SetTokenTTL changes the lifetime of issued tokens; negative values issue expired tokens.
func (r *MockVendorRepository) SetTokenTTL(ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokenTTL = ttl
}

func (r *MockVendorRepository) Login(_ context.Context, email, password string) (*models.LoginResponse, error) {
	r.mu.RLock()
	account, ok := r.vendors[email]
	ttl := r.tokenTTL
	r.mu.RUnlock()
	if !ok || account.password != password {
		return nil, &api.HTTPError{Status: 401, Message: "Invalid email or password"}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  account.vendor.ID,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString(r.secret)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: signed, Vendor: account.vendor}, nil
}

func (r *MockVendorRepository) UpdateFCMToken(_ context.Context, vendorID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fcmTokens[vendorID] = token
	return nil
}

// FCMToken returns the token registered for vendorID.
func (r *MockVendorRepository) FCMToken(vendorID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fcmTokens[vendorID]
}
