package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"vendorapp/internal/middleware"
	"vendorapp/internal/models"
	"vendorapp/internal/services"
)

// OrderHandler handles the order list and order detail screens.
type OrderHandler struct {
	list     *services.OrderListController
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(list *services.OrderListController, service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		list:     list,
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Post("/filter", h.HandleSetFilter)
	orderRoutes.Post("/next", h.HandleLoadMore)
	orderRoutes.Post("/refresh", h.HandleRefresh)
	orderRoutes.Get("/:orderId", h.HandleGetOrder)
	orderRoutes.Put("/:orderId/status", h.HandleUpdateOrderStatus)
	orderRoutes.Post("/:orderId/payment", h.HandleTogglePayment)
}

// syncVendor makes sure the list belongs to the vendor of the current session.
func (h *OrderHandler) syncVendor(c *fiber.Ctx) {
	vendorID := middleware.VendorID(c)
	if h.list.Snapshot().VendorID != vendorID {
		h.list.Reset(vendorID)
	}
}

func (h *OrderHandler) listResponse(c *fiber.Ctx, err error, message string) error {
	view := newOrderListView(h.list.Snapshot())
	if err != nil {
		log.Printf("Error fetching orders: %v", err)
		return respondError(c, message, err, fiber.Map{"orders": view})
	}
	return c.JSON(view)
}

// HandleGetOrders opens the list, loading the first page on first visit.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	h.syncVendor(c)
	err := h.list.EnsureLoaded(c.UserContext())
	return h.listResponse(c, err, "Could not load orders")
}

// HandleSetFilter applies a filter chip. An incomplete custom range is
// rejected and leaves the current filter in place.
func (h *OrderHandler) HandleSetFilter(c *fiber.Ctx) error {
	var selection models.FilterSelection
	if err := c.BodyParser(&selection); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(selection); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	if selection.Kind == models.FilterCustom {
		if _, err := services.ResolveFilter(selection, time.Now()); err != nil {
			return respondError(c, "Enter Dates (YYYY-MM-DD)", err, nil)
		}
	}

	h.syncVendor(c)
	err := h.list.SetFilter(c.UserContext(), selection)
	return h.listResponse(c, err, "Could not load orders")
}

// HandleLoadMore appends the next page when there is one.
func (h *OrderHandler) HandleLoadMore(c *fiber.Ctx) error {
	h.syncVendor(c)
	err := h.list.LoadNextPage(c.UserContext())
	return h.listResponse(c, err, "Could not load more orders")
}

// HandleRefresh reloads the first page with the current filter.
func (h *OrderHandler) HandleRefresh(c *fiber.Ctx) error {
	h.syncVendor(c)
	err := h.list.Refresh(c.UserContext())
	return h.listResponse(c, err, "Could not refresh orders")
}

func (h *OrderHandler) findOrder(c *fiber.Ctx) (models.Order, error) {
	key := models.OrderKey{OrderID: c.Params("orderId"), VendorID: c.Query("vendorId")}
	order, ok := h.list.Find(key)
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", key.OrderID, services.ErrOrderNotFound)
	}
	return order, nil
}

// HandleGetOrder returns the detail view of a loaded order.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.findOrder(c)
	if err != nil {
		return respondError(c, "Order not found", err, nil)
	}
	return c.JSON(newOrderDetailView(order))
}

// HandleUpdateOrderStatus changes the vendor status of an order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var update models.OrderStatusUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}

	order, err := h.findOrder(c)
	if err != nil {
		return respondError(c, "Order not found", err, nil)
	}

	changed, err := h.service.UpdateOrderStatus(c.UserContext(), &order, middleware.VendorID(c), update.NewStatus)
	if err != nil {
		log.Printf("Error updating order status for order %s: %v", order.OrderID, err)
		return respondError(c, "Failed to update order status", err, nil)
	}
	if !changed {
		return c.JSON(fiber.Map{
			"message": "Order status unchanged",
			"order":   newOrderDetailView(order),
		})
	}

	h.list.Replace(order)
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order status updated to %s", update.NewStatus),
		"order":   newOrderDetailView(order),
	})
}

// HandleTogglePayment flips the payment status of an order.
func (h *OrderHandler) HandleTogglePayment(c *fiber.Ctx) error {
	order, err := h.findOrder(c)
	if err != nil {
		return respondError(c, "Order not found", err, nil)
	}

	status, err := h.service.TogglePaymentStatus(c.UserContext(), &order)
	if err != nil {
		log.Printf("Error updating payment status for order %s: %v", order.OrderID, err)
		return respondError(c, "Failed to update payment status", err, nil)
	}

	h.list.Replace(order)
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Payment status updated to %s", status),
		"order":   newOrderDetailView(order),
	})
}
