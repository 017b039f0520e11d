package routes

import (
	"context"
	"time"

	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/gofiber/fiber/v2"
	"github.com/sourcegraph/conc/iter"
)

const healthCheckTimeout = 3 * time.Second

type healthCheckResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Health probes every dependency concurrently. A failed probe marks the service degraded but
// still answers 200 so the static endpoints stay routable.
func Health(services *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
		defer cancel()

		results := iter.Map(services.HealthChecks, func(check *HealthCheck) healthCheckResult {
			result := healthCheckResult{Name: check.Name, Status: "healthy"}
			if err := check.Check(ctx); err != nil {
				result.Status = "unhealthy"
				result.Error = err.Error()
			}

			return result
		})

		status := "healthy"
		for _, result := range results {
			if result.Status != "healthy" {
				status = "degraded"
			}
		}

		return c.JSON(fiber.Map{
			"status":         status,
			"api_configured": services.Config.RailwayAPIConfigured(),
			"total_stations": services.Stations.Len(),
			"checks":         results,
			"source":         ctdf.DataProvenanceLive,
		})
	}
}
