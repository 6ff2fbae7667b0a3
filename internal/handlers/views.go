package handlers

import (
	"strconv"

	"vendorapp/internal/models"
)

// FilterChipView is one date filter chip above the order list.
type FilterChipView struct {
	Type     models.FilterKind `json:"type"`
	Label    string            `json:"label"`
	Selected bool              `json:"selected"`
}

// OrderCardView is a single order card in the list.
type OrderCardView struct {
	Key          string             `json:"key"`
	OrderID      string             `json:"orderId"`
	VendorID     string             `json:"vendorId,omitempty"`
	Title        string             `json:"title"`
	Subtitle     string             `json:"subtitle"`
	Status       models.OrderStatus `json:"status"`
	BusinessName string             `json:"businessName,omitempty"`
	Owner        string             `json:"owner,omitempty"`
	ProductCount int                `json:"productCount"`
	Total        float64            `json:"total"`
	TotalLabel   string             `json:"totalLabel"`
	Payment      string             `json:"payment"`
}

// OrderListView is the home screen: filter chips, loaded cards and paging flags.
type OrderListView struct {
	Filters     []FilterChipView `json:"filters"`
	Orders      []OrderCardView  `json:"orders"`
	Page        int              `json:"page"`
	HasMore     bool             `json:"hasMore"`
	Loading     bool             `json:"loading"`
	LoadingMore bool             `json:"loadingMore"`
	Refreshing  bool             `json:"refreshing"`
	EmptyText   string           `json:"emptyText,omitempty"`
	Alert       string           `json:"alert,omitempty"`
}

// VendorView shows who owns the vendor portion of an order.
type VendorView struct {
	BusinessName string `json:"businessName"`
	Owner        string `json:"owner"`
}

// ProductLineView is one product row on the order detail screen.
type ProductLineView struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	AmountLabel string  `json:"amountLabel"`
}

// OrderDetailView is the order detail screen with status and payment actions.
type OrderDetailView struct {
	OrderID         string               `json:"orderId"`
	Title           string               `json:"title"`
	CreatedAt       string               `json:"createdAt"`
	OrderStatus     models.OrderStatus   `json:"orderStatus"`
	StatusOptions   []models.OrderStatus `json:"statusOptions"`
	PaymentStatus   models.PaymentStatus `json:"paymentStatus"`
	PaymentVerified bool                 `json:"paymentVerified"`
	PaymentLabel    string               `json:"paymentLabel"`
	PaymentAction   string               `json:"paymentAction"`
	CustomerName    string               `json:"customerName"`
	CustomerPhone   string               `json:"customerPhone"`
	CallURL         string               `json:"callUrl"`
	ShippingAddress string               `json:"shippingAddress"`
	Vendor          *VendorView          `json:"vendor,omitempty"`
	Products        []ProductLineView    `json:"products"`
	Total           float64              `json:"total"`
	TotalLabel      string               `json:"totalLabel"`
}

func rupees(amount float64) string {
	return "₹" + strconv.FormatFloat(amount, 'f', -1, 64)
}

var filterKinds = []models.FilterKind{
	models.FilterAll,
	models.FilterToday,
	models.FilterYesterday,
	models.FilterLast7,
	models.FilterCustom,
}

func newOrderListView(state models.PageState) OrderListView {
	view := OrderListView{
		Orders:      make([]OrderCardView, 0, len(state.Items)),
		Page:        state.PageNumber,
		HasMore:     state.HasMore,
		Loading:     state.State == models.ListLoadingFirstPage,
		LoadingMore: state.State == models.ListLoadingNextPage,
		Refreshing:  state.Refreshing,
	}
	for _, kind := range filterKinds {
		sel := models.FilterSelection{Kind: kind}
		view.Filters = append(view.Filters, FilterChipView{
			Type:     kind,
			Label:    sel.Label(),
			Selected: state.Selection.Kind == kind,
		})
	}
	for _, order := range state.Items {
		view.Orders = append(view.Orders, newOrderCardView(order))
	}
	if len(view.Orders) == 0 && !view.Loading {
		view.EmptyText = "No orders found."
	}
	if state.State == models.ListError && state.LastError != nil {
		view.Alert = "Could not load orders, pull to refresh to try again."
	}
	return view
}

func newOrderCardView(order models.Order) OrderCardView {
	info := order.Vendors
	card := OrderCardView{
		Key:          order.OrderID + "_" + info.VendorID(),
		OrderID:      order.OrderID,
		VendorID:     info.VendorID(),
		Title:        "Order #" + order.OrderID,
		Subtitle:     order.CreatedAt.Local().Format("Mon Jan 02 2006"),
		Status:       info.OrderStatus,
		ProductCount: len(info.Products),
		Total:        info.TotalAmount(),
		TotalLabel:   rupees(info.TotalAmount()),
		Payment:      string(order.PaymentStatus),
	}
	if info.Vendor != nil {
		card.BusinessName = info.Vendor.DisplayBusinessName()
		card.Owner = info.Vendor.Name
	}
	return card
}

func newOrderDetailView(order models.Order) OrderDetailView {
	info := order.Vendors
	verified := "Not Verified"
	if order.IsPaymentVerified {
		verified = "Verified"
	}
	view := OrderDetailView{
		OrderID:         order.OrderID,
		Title:           "Order #" + order.OrderID,
		CreatedAt:       order.CreatedAt.Local().Format("02/01/2006, 15:04:05"),
		OrderStatus:     info.OrderStatus,
		StatusOptions:   models.OrderStatuses,
		PaymentStatus:   order.PaymentStatus,
		PaymentVerified: order.IsPaymentVerified,
		PaymentLabel:    string(order.PaymentStatus) + " (" + verified + ")",
		PaymentAction:   "Mark as " + string(order.PaymentStatus.Toggle()),
		CustomerName:    order.Customer.Name,
		CustomerPhone:   order.Customer.ContactNumber,
		CallURL:         "tel:" + order.Customer.ContactNumber,
		ShippingAddress: order.ShippingAddress.Address + ", " + order.ShippingAddress.City,
		Products:        make([]ProductLineView, 0, len(info.Products)),
		Total:           info.TotalAmount(),
		TotalLabel:      rupees(info.TotalAmount()),
	}
	if info.Vendor != nil {
		view.Vendor = &VendorView{
			BusinessName: info.Vendor.DisplayBusinessName(),
			Owner:        info.Vendor.Name,
		}
	}
	for _, line := range info.Products {
		view.Products = append(view.Products, ProductLineView{
			Name:        line.Product.Name,
			Description: "Qty: " + strconv.Itoa(line.Quantity) + "  |  Price: " + rupees(line.Price),
			Amount:      line.TotalAmount,
			AmountLabel: rupees(line.TotalAmount),
		})
	}
	return view
}
