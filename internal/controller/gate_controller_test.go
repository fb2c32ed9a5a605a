package controller

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agiliza_backend/internal/gate"
)

func TestTapLogoOpensOnThirdTap(t *testing.T) {
	InitGateController(gate.New())

	app := fiber.New()
	app.Post("/api/gate/logo", TapLogo)

	for i := 0; i < 2; i++ {
		status, _ := postJSON(app, "POST", "/api/gate/logo", nil)
		require.Equal(t, fiber.StatusNoContent, status, "tap %d must not open the gate", i+1)
	}

	status, body := postJSON(app, "POST", "/api/gate/logo", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "/admin/login", body["redirect"])

	// The trigger consumes the streak; the next tap starts over.
	status, _ = postJSON(app, "POST", "/api/gate/logo", nil)
	assert.Equal(t, fiber.StatusNoContent, status)
}
