package controller

import (
	"github.com/gofiber/fiber/v2"

	"agiliza_backend/internal/gate"
)

var logoGate *gate.Gate

func InitGateController(g *gate.Gate) {
	logoGate = g
}

// TapLogo backs the hidden admin entry: the landing page reports each
// logo click here and follows the redirect when the gate opens.
func TapLogo(c *fiber.Ctx) error {
	if logoGate.Tap(c.IP()) {
		return c.JSON(fiber.Map{
			"redirect": "/admin/login",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
