package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"vendorapp/internal/models"
	"vendorapp/internal/services"
)

// AuthHandler handles the login screen and session lifecycle.
type AuthHandler struct {
	authService *services.AuthService
	orders      *services.OrderListController
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, orders *services.OrderListController) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		orders:      orders,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/start", h.HandleStart)
	router.Post("/login", h.HandleLogin)
	router.Post("/logout", h.HandleLogout)
}

// HandleStart tells the app which screen to open first.
func (h *AuthHandler) HandleStart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"route": h.authService.StartRoute(c.UserContext()),
	})
}

// HandleLogin authenticates the vendor and starts a fresh order list.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	vendor, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		if errorStatus(err) == fiber.StatusBadRequest {
			return respondError(c, "Please fill in all fields", err, nil)
		}
		return respondError(c, "Login Failed", err, nil)
	}

	h.orders.Reset(vendor.ID)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"route":   models.RouteHome,
		"vendor":  vendor,
	})
}

// HandleLogout clears the stored session and any loaded orders.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext()); err != nil {
		log.Printf("Error during logout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not log out",
			"error":   err.Error(),
		})
	}
	h.orders.Reset("")
	return c.JSON(fiber.Map{
		"message": "Logged out",
		"route":   models.RouteLogin,
	})
}
