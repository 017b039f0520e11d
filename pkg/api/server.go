package api

import (
	"errors"

	"github.com/ecocitty/ecocitty/pkg/api/routes"
	"github.com/ecocitty/ecocitty/pkg/auth"
	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/ecocitty/ecocitty/pkg/demomode"
	"github.com/ecocitty/ecocitty/pkg/web"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

func NewApp(services *routes.Services) *fiber.App {
	webApp := fiber.New(fiber.Config{
		AppName:               "ecocitty",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	webApp.Use(NewLogger())
	webApp.Use(recover.New(recover.Config{EnableStackTrace: true}))
	webApp.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, " + demomode.Header,
	}))
	webApp.Use(encryptcookie.New(encryptcookie.Config{
		Key: cookieKey(services.Config.SessionSecret),
	}))
	webApp.Use(NewDemoMode(services.DemoSwitch, services.Config.DemoMode))

	webApp.Get("/health", routes.Health(services))
	webApp.Get("/version", routes.APIVersion)

	group := webApp.Group("/api")

	routes.RailwayRouter(group, services)
	routes.StationsRouter(group, services)
	routes.CivicRouter(group, services)
	routes.ReportsRouter(group, services)
	routes.CarbonRouter(group, services)
	routes.DemoModeRouter(group, services)
	routes.AuthRouter(webApp, group, services)

	web.Router(webApp)

	return webApp
}

func SetupServer(listen string, services *routes.Services) error {
	log.Info().Str("listen", listen).Msg("Starting web API")

	return NewApp(services).Listen(listen)
}

// errorHandler answers errors no route handled itself, including recovered panics, with an
// envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberError *fiber.Error
	if errors.As(err, &fiberError) {
		code = fiberError.Code
		message = fiberError.Message
	}

	c.SendStatus(code)
	return c.JSON(ctdf.Envelope{
		Status: false,
		Data:   []any{},
		Source: ctdf.DataProvenanceLive,
		Error:  message,
	})
}

func cookieKey(secret string) string {
	if secret == "" {
		log.Warn().Msg("ECOCITTY_SESSION_SECRET is not set, sessions will not survive a restart")
		return encryptcookie.GenerateKey()
	}

	return auth.CookieKey(secret)
}
