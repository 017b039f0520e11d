package api

import (
	"github.com/ecocitty/ecocitty/pkg/demomode"
	"github.com/ecocitty/ecocitty/pkg/util"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// NewDemoMode resolves the demo mode of each request once and stores it in the request context.
// The X-Demo-Mode header overrides the switch for that request only.
func NewDemoMode(modeSwitch demomode.Switch, fallback bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		enabled, err := modeSwitch.Enabled(c.UserContext())
		if err != nil {
			log.Warn().Err(err).Bool("fallback", fallback).Msg("Failed to read demo mode switch")
			enabled = fallback
		}

		if header := c.Get(demomode.Header); header != "" {
			if override, ok := util.ParseFlag(header); ok {
				enabled = override
			}
		}

		c.SetUserContext(demomode.WithMode(c.UserContext(), enabled))

		return c.Next()
	}
}
