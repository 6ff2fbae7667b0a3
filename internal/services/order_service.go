package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"vendorapp/internal/metrics"
	"vendorapp/internal/models"
	"vendorapp/internal/repositories"
)

// OrderService handles status and payment edits of a single order.
// Edits are applied to the order only after the server confirmed them.
type OrderService struct {
	orderRepo repositories.OrderRepository
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo: orderRepo,
		validate:  validator.New(),
		logger:    logger,
	}
}

// UpdateOrderStatus sets the vendor status of order. The target vendor is the
// one on the order, falling back to fallbackVendorID. It reports false without
// calling the API when the status is unchanged.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, order *models.Order, fallbackVendorID string, newStatus models.OrderStatus) (bool, error) {
	if err := s.validate.Struct(models.OrderStatusUpdate{NewStatus: newStatus}); err != nil {
		return false, validationError(err)
	}
	if order.Vendors.OrderStatus == newStatus {
		return false, nil
	}

	vendorID := order.Vendors.VendorID()
	if vendorID == "" {
		vendorID = fallbackVendorID
	}
	if vendorID == "" {
		return false, ErrNoVendor
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.OrderID, vendorID, newStatus); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("update_order_status").Inc()
		s.logger.Error("error updating order status",
			zap.String("orderId", order.OrderID), zap.String("vendorId", vendorID), zap.Error(err))
		return false, err
	}

	order.Vendors.OrderStatus = newStatus
	metrics.OrderUpdatesTotal.WithLabelValues("status").Inc()
	s.logger.Info("order status updated",
		zap.String("orderId", order.OrderID), zap.String("status", string(newStatus)))
	return true, nil
}

// UpdatePaymentStatus manually verifies (or un-verifies) the payment of order.
// It reports false without calling the API when the status is unchanged.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, order *models.Order, newStatus models.PaymentStatus) (bool, error) {
	if err := s.validate.Struct(models.PaymentVerification{OrderID: order.OrderID, NewStatus: newStatus}); err != nil {
		return false, validationError(err)
	}
	if order.PaymentStatus == newStatus {
		return false, nil
	}

	if err := s.orderRepo.VerifyPayment(ctx, order.OrderID, newStatus); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("update_payment_status").Inc()
		s.logger.Error("error updating payment status", zap.String("orderId", order.OrderID), zap.Error(err))
		return false, fmt.Errorf("failed to update payment status: %w", err)
	}

	order.PaymentStatus = newStatus
	order.IsPaymentVerified = newStatus == models.PaymentStatusPaid
	metrics.OrderUpdatesTotal.WithLabelValues("payment").Inc()
	s.logger.Info("payment status updated",
		zap.String("orderId", order.OrderID), zap.String("status", string(newStatus)))
	return true, nil
}

// TogglePaymentStatus flips Paid and Unpaid and returns the new status.
func (s *OrderService) TogglePaymentStatus(ctx context.Context, order *models.Order) (models.PaymentStatus, error) {
	newStatus := order.PaymentStatus.Toggle()
	if _, err := s.UpdatePaymentStatus(ctx, order, newStatus); err != nil {
		return order.PaymentStatus, err
	}
	return newStatus, nil
}
