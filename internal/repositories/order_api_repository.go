package repositories

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"vendorapp/internal/api"
	"vendorapp/internal/models"
)

// APIOrderRepository is an OrderRepository backed by the remote order API.
type APIOrderRepository struct {
	client *api.Client
}

// NewAPIOrderRepository creates a new instance of APIOrderRepository.
func NewAPIOrderRepository(client *api.Client) *APIOrderRepository {
	return &APIOrderRepository{client: client}
}

type vendorOrdersResponse struct {
	Data *struct {
		Orders []models.Order `json:"orders"`
	} `json:"data"`
}

// ListByVendor fetches one page of the vendor's orders. A response without
// a data.orders payload is treated as an empty page.
func (r *APIOrderRepository) ListByVendor(ctx context.Context, vendorID string, query models.OrderQuery) ([]models.Order, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("limit", strconv.Itoa(query.Limit))
	if query.Range != nil {
		params.Set("startDate", query.Range.StartISO())
		params.Set("endDate", query.Range.EndISO())
	}

	var resp vendorOrdersResponse
	path := "/order/vendor/" + url.PathEscape(vendorID)
	if err := r.client.Get(ctx, path, params, &resp); err != nil {
		return nil, fmt.Errorf("failed to list orders for vendor %s: %w", vendorID, err)
	}
	if resp.Data == nil || resp.Data.Orders == nil {
		return []models.Order{}, nil
	}
	return resp.Data.Orders, nil
}

// UpdateStatus sets the vendor's status on an order.
func (r *APIOrderRepository) UpdateStatus(ctx context.Context, orderID, vendorID string, status models.OrderStatus) error {
	path := fmt.Sprintf("/order/status/%s/vendor/%s", url.PathEscape(orderID), url.PathEscape(vendorID))
	if err := r.client.Put(ctx, path, models.OrderStatusUpdate{NewStatus: status}, nil); err != nil {
		return fmt.Errorf("failed to update status of order %s: %w", orderID, err)
	}
	return nil
}

// VerifyPayment manually marks an order as paid or unpaid.
func (r *APIOrderRepository) VerifyPayment(ctx context.Context, orderID string, status models.PaymentStatus) error {
	body := models.PaymentVerification{OrderID: orderID, NewStatus: status}
	if err := r.client.Post(ctx, "/manually-verify-payment", body, nil); err != nil {
		return fmt.Errorf("failed to update payment of order %s: %w", orderID, err)
	}
	return nil
}

// APIVendorRepository is a VendorRepository backed by the remote API.
type APIVendorRepository struct {
	client *api.Client
}

// NewAPIVendorRepository creates a new instance of APIVendorRepository.
func NewAPIVendorRepository(client *api.Client) *APIVendorRepository {
	return &APIVendorRepository{client: client}
}

// Login exchanges credentials for a token and the vendor record.
func (r *APIVendorRepository) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := r.client.Post(ctx, "/vendors/login", models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp.Token == "" || resp.Vendor.ID == "" {
		return nil, fmt.Errorf("login response is missing token or vendor")
	}
	return &resp, nil
}

// UpdateFCMToken registers the device push token for the vendor.
func (r *APIVendorRepository) UpdateFCMToken(ctx context.Context, vendorID, token string) error {
	path := "/vendors/fcm-token/" + url.PathEscape(vendorID)
	body := map[string]string{"fcmToken": token}
	if err := r.client.Put(ctx, path, body, nil); err != nil {
		return fmt.Errorf("failed to update fcm token for vendor %s: %w", vendorID, err)
	}
	return nil
}
