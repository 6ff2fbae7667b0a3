package repositories

import (
	"context"
	"fmt"
	"sync"

	"vendorapp/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// Orders are returned per vendor in insertion order.
type MockOrderRepository struct {
	orders map[string][]models.Order
	mu     sync.RWMutex

	// Err, when set, is returned by every call.
	Err error

	listCalls   int
	updateCalls int
	verifyCalls int
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string][]models.Order),
	}
}

// Add appends orders to the vendor's list.
func (r *MockOrderRepository) Add(vendorID string, orders ...models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[vendorID] = append(r.orders[vendorID], orders...)
}

// ListByVendor returns the requested page, filtered by creation time when a range is given.
func (r *MockOrderRepository) ListByVendor(_ context.Context, vendorID string, query models.OrderQuery) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.Err != nil {
		return nil, r.Err
	}

	var matched []models.Order
	for _, order := range r.orders[vendorID] {
		if query.Range == nil || query.Range.Contains(order.CreatedAt) {
			matched = append(matched, order)
		}
	}

	start := (query.Page - 1) * query.Limit
	if start < 0 || start >= len(matched) {
		return []models.Order{}, nil
	}
	end := start + query.Limit
	if end > len(matched) {
		end = len(matched)
	}
	page := make([]models.Order, end-start)
	copy(page, matched[start:end])
	return page, nil
}

// UpdateStatus updates the vendor status of an order.
func (r *MockOrderRepository) UpdateStatus(_ context.Context, orderID, vendorID string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if r.Err != nil {
		return r.Err
	}

	for owner, orders := range r.orders {
		for i := range orders {
			if orders[i].OrderID == orderID && (orders[i].Vendors.VendorID() == vendorID || owner == vendorID) {
				orders[i].Vendors.OrderStatus = status
				return nil
			}
		}
	}
	return fmt.Errorf("order with ID %s not found for vendor %s", orderID, vendorID)
}

// VerifyPayment updates the payment status of every copy of an order.
func (r *MockOrderRepository) VerifyPayment(_ context.Context, orderID string, status models.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verifyCalls++
	if r.Err != nil {
		return r.Err
	}

	found := false
	for _, orders := range r.orders {
		for i := range orders {
			if orders[i].OrderID == orderID {
				orders[i].PaymentStatus = status
				orders[i].IsPaymentVerified = status == models.PaymentStatusPaid
				found = true
			}
		}
	}
	if !found {
		return fmt.Errorf("order with ID %s not found", orderID)
	}
	return nil
}

// Calls returns how many list, status and payment calls were made.
func (r *MockOrderRepository) Calls() (list, update, verify int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listCalls, r.updateCalls, r.verifyCalls
}
