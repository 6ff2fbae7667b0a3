package repositories

import (
	"context"

	"vendorapp/internal/models"
)

// OrderRepository defines the interface for vendor order access.
type OrderRepository interface {
	ListByVendor(ctx context.Context, vendorID string, query models.OrderQuery) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID, vendorID string, status models.OrderStatus) error
	VerifyPayment(ctx context.Context, orderID string, status models.PaymentStatus) error
}

// VendorRepository defines the interface for vendor account access.
type VendorRepository interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	UpdateFCMToken(ctx context.Context, vendorID, token string) error
}
