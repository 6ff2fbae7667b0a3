package middleware

import (
	"github.com/gofiber/fiber/v2"

	"vendorapp/internal/models"
	"vendorapp/internal/session"
)

// SessionRequired is a Fiber middleware that only lets requests through while
// a vendor session is stored on the device.
func SessionRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := store.Current(c.UserContext())
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Login required",
				"route":   models.RouteLogin,
			})
		}

		// Store the session in Fiber context for subsequent handlers
		c.Locals("vendor_id", sess.VendorID)
		c.Locals("session", sess)

		return c.Next()
	}
}

// VendorID returns the vendor id stored by SessionRequired.
func VendorID(c *fiber.Ctx) string {
	id, _ := c.Locals("vendor_id").(string)
	return id
}
