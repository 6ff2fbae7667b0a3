package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"vendorapp/internal/api"
	"vendorapp/internal/models"
	"vendorapp/internal/services"
)

// errorStatus maps the error taxonomy onto the status returned to the screen.
func errorStatus(err error) int {
	var validationErr *services.ValidationError
	var httpErr *api.HTTPError
	var netErr *api.NetworkError
	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrOrderNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNoVendor):
		return fiber.StatusUnauthorized
	case errors.As(err, &httpErr):
		if httpErr.Status >= 400 && httpErr.Status < 500 {
			return httpErr.Status
		}
		return fiber.StatusBadGateway
	case errors.As(err, &netErr):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// errorText is the detail shown under the alert title.
func errorText(err error) string {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	if errors.Is(err, services.ErrOrderNotFound) || errors.Is(err, services.ErrNoVendor) {
		return err.Error()
	}
	return api.MessageOf(err)
}

// respondError writes an alert; extra fields (such as the current list view) are merged in.
func respondError(c *fiber.Ctx, message string, err error, extra fiber.Map) error {
	status := errorStatus(err)
	body := fiber.Map{
		"message": message,
		"error":   errorText(err),
	}
	if upstream := api.StatusOf(err); upstream != 0 && upstream != status {
		body["upstreamStatus"] = upstream
	}
	for k, v := range extra {
		body[k] = v
	}
	if status == http.StatusUnauthorized {
		body["route"] = models.RouteLogin
	}
	return c.Status(status).JSON(body)
}
