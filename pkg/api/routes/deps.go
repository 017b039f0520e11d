package routes

import (
	"context"
	"time"

	"github.com/ecocitty/ecocitty/pkg/auth"
	"github.com/ecocitty/ecocitty/pkg/carbon"
	"github.com/ecocitty/ecocitty/pkg/config"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator"
	"github.com/ecocitty/ecocitty/pkg/database"
	"github.com/ecocitty/ecocitty/pkg/demomode"
	"github.com/ecocitty/ecocitty/pkg/stations"
	"golang.org/x/oauth2"
)

// HealthCheck is one dependency probed by /health.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Services is everything the handlers need. It is built once at startup and shared read-only
// between requests.
type Services struct {
	Config     *config.Config
	Aggregator *dataaggregator.Aggregator
	Stations   *stations.Registry
	Store      *database.Store
	DemoSwitch demomode.Switch

	// Verifier is nil when no identity provider is configured.
	Verifier auth.Verifier
	// OAuth is nil unless the Google client id, secret and redirect URL are all set.
	OAuth *oauth2.Config

	Carbon *carbon.Calculator

	HealthChecks []HealthCheck

	Now func() time.Time
}

func (s *Services) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}

	return time.Now()
}
