package routes

import (
	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/query"
	"github.com/gofiber/fiber/v2"
)

const maxGarbageCollectionLimit = 1000

func CivicRouter(router fiber.Router, services *Services) {
	router.Get("/garbage-trucks", func(c *fiber.Ctx) error {
		trucks, provenance, err := dataaggregator.Lookup[[]ctdf.Truck](c.UserContext(), services.Aggregator, query.SyntheticTrucks{})
		if err != nil {
			return sendError(c, err, provenance)
		}

		return sendData(c, trucks, provenance)
	})

	router.Get("/garbage-collection", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		if limit < 1 || limit > maxGarbageCollectionLimit {
			return sendError(c, &ValidationError{Message: "limit must be between 1 and 1000"}, ctdf.DataProvenanceLive)
		}

		trucks, provenance, err := dataaggregator.Lookup[[]ctdf.Truck](c.UserContext(), services.Aggregator, query.GarbageCollection{Limit: limit})
		if err != nil {
			return sendError(c, err, provenance)
		}

		return sendData(c, fiber.Map{
			"trucks": trucks,
			"total":  len(trucks),
		}, provenance)
	})

	router.Get("/metro-status", func(c *fiber.Ctx) error {
		lines, provenance, err := dataaggregator.Lookup[[]ctdf.MetroLineStatus](c.UserContext(), services.Aggregator, query.MetroStatus{})
		if err != nil {
			return sendError(c, err, provenance)
		}

		return sendData(c, lines, provenance)
	})
}
