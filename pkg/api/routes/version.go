package routes

import (
	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/gofiber/fiber/v2"
)

// Version is overridden at build time with -ldflags "-X .../routes.Version=...".
var Version = "v0.1"

func APIVersion(c *fiber.Ctx) error {
	return sendData(c, fiber.Map{
		"name":    "ecocitty",
		"version": Version,
	}, ctdf.DataProvenanceLive)
}
