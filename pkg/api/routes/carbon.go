package routes

import (
	"errors"

	"github.com/ecocitty/ecocitty/pkg/carbon"
	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/gofiber/fiber/v2"
)

func CarbonRouter(router fiber.Router, services *Services) {
	router.Post("/calculate-carbon-footprint", func(c *fiber.Ctx) error {
		var input carbon.Input
		if err := c.BodyParser(&input); err != nil {
			return sendError(c, &ValidationError{Message: "Body must be a JSON object of electricity, gas and transport usage"}, ctdf.DataProvenanceLive)
		}

		result, err := services.Carbon.Calculate(input)
		if errors.Is(err, carbon.ErrNegativeInput) {
			return sendError(c, &ValidationError{Message: err.Error()}, ctdf.DataProvenanceLive)
		} else if err != nil {
			return sendError(c, err, ctdf.DataProvenanceLive)
		}

		return sendData(c, result, ctdf.DataProvenanceLive)
	})
}
