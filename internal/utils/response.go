package utils

import "github.com/gofiber/fiber/v2"

// JSONFail writes the site's failure envelope.
func JSONFail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}

// JSONOK writes a success envelope. Extra fields are merged next to
// "success", e.g. JSONOK(c, fiber.Map{"photo": p}).
func JSONOK(c *fiber.Ctx, extra fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(body)
}
