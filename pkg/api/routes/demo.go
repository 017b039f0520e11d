package routes

import (
	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/demomode"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func DemoModeRouter(router fiber.Router, services *Services) {
	router.Post("/toggle-demo", func(c *fiber.Ctx) error {
		// The toggle is open while no administrators are configured.
		if len(services.Config.AdminEmails) > 0 {
			session := currentSession(c, services.now())
			if !session.IsAdmin(services.Config.AdminEmails) {
				return sendError(c, &AccessError{
					StatusCode: fiber.StatusForbidden,
					Message:    "Only administrators can change the demo mode",
				}, ctdf.DataProvenanceLive)
			}
		}

		enabled, err := services.DemoSwitch.Toggle(c.UserContext())
		if err != nil {
			return sendError(c, err, ctdf.DataProvenanceLive)
		}

		log.Info().Bool("demo_mode", enabled).Msg("Demo mode toggled")

		return sendData(c, demoModeResponse(enabled), ctdf.DataProvenanceLive)
	})

	router.Get("/demo-mode", func(c *fiber.Ctx) error {
		enabled, err := services.DemoSwitch.Enabled(c.UserContext())
		if err != nil {
			return sendError(c, err, ctdf.DataProvenanceLive)
		}

		response := demoModeResponse(enabled)
		response["request_demo_mode"] = demomode.FromContext(c.UserContext())

		return sendData(c, response, ctdf.DataProvenanceLive)
	})
}

func demoModeResponse(enabled bool) fiber.Map {
	message := "Demo mode disabled, live data is used"
	if enabled {
		message = "Demo mode enabled, demo data is used"
	}

	return fiber.Map{
		"demo_mode": enabled,
		"message":   message,
	}
}
