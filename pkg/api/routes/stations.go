package routes

import (
	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/gofiber/fiber/v2"
)

// StationsRouter serves the static station registry. The registry is bundled with the binary
// so these responses are always tagged live.
func StationsRouter(router fiber.Router, services *Services) {
	router.Get("/stations-list", func(c *fiber.Ctx) error {
		return sendData(c, services.Stations.AsMap(), ctdf.DataProvenanceLive)
	})

	router.Get("/map-data", func(c *fiber.Ctx) error {
		return sendData(c, fiber.Map{
			"major_stations": services.Stations.AsMap(),
			"api_status":     "active",
			"total_stations": services.Stations.Len(),
		}, ctdf.DataProvenanceLive)
	})
}
