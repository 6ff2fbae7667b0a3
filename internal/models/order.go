package models

import "time"

// OrderStatus is the vendor-side fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists the statuses in the order they are offered to the vendor.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// PaymentStatus is the customer payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "Paid"
	PaymentStatusUnpaid PaymentStatus = "Unpaid"
)

// Toggle returns the opposite payment status.
func (s PaymentStatus) Toggle() PaymentStatus {
	if s == PaymentStatusPaid {
		return PaymentStatusUnpaid
	}
	return PaymentStatusPaid
}

// Customer is the buyer of an order.
type Customer struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber"`
}

// ShippingAddress is where the order is delivered.
type ShippingAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
}

// VendorOrderInfo is the vendor's portion of an order.
type VendorOrderInfo struct {
	OrderStatus OrderStatus   `json:"orderStatus"`
	Vendor      *Vendor       `json:"vendor,omitempty"`
	Products    []ProductLine `json:"products"`
}

// TotalAmount sums the pre-computed line totals.
func (v VendorOrderInfo) TotalAmount() float64 {
	var total float64
	for _, line := range v.Products {
		total += line.TotalAmount
	}
	return total
}

// VendorID returns the _id of the vendor owning this portion, or "".
func (v VendorOrderInfo) VendorID() string {
	if v.Vendor == nil {
		return ""
	}
	return v.Vendor.ID
}

// Order represents a customer order as seen by one vendor.
type Order struct {
	OrderID           string          `json:"orderId"`
	CreatedAt         time.Time       `json:"createdAt"`
	PaymentStatus     PaymentStatus   `json:"paymentStatus"`
	IsPaymentVerified bool            `json:"isPaymentVerified"`
	Customer          Customer        `json:"customer"`
	ShippingAddress   ShippingAddress `json:"shippingAddress"`
	Vendors           VendorOrderInfo `json:"vendors"`
}

// Key identifies the order within a vendor order list.
func (o Order) Key() OrderKey {
	return OrderKey{OrderID: o.OrderID, VendorID: o.Vendors.VendorID()}
}

// OrderKey is unique per list entry: the same order can appear once per vendor.
type OrderKey struct {
	OrderID  string
	VendorID string
}

// OrderQuery describes one page request against the vendor order list.
type OrderQuery struct {
	Page  int
	Limit int
	Range *DateRange
}

// OrderStatusUpdate is the body of a status change request.
type OrderStatusUpdate struct {
	NewStatus OrderStatus `json:"newStatus" validate:"required,oneof=Pending Processing Shipped Delivered Cancelled"`
}

// PaymentVerification is the body of a manual payment verification request.
type PaymentVerification struct {
	OrderID   string        `json:"orderId" validate:"required"`
	NewStatus PaymentStatus `json:"newStatus" validate:"required,oneof=Paid Unpaid"`
}
