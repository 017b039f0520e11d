package global

import (
	"github.com/ecocitty/ecocitty/pkg/config"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source/demo"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source/irctc"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source/metro"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/source/opendata"
	"github.com/ecocitty/ecocitty/pkg/stations"
	"github.com/ecocitty/ecocitty/pkg/upstream"
)

// Setup registers every live source the configuration allows plus the demo source. Sources
// without credentials are still registered so their endpoints report a configuration error.
func Setup(cfg *config.Config, registry *stations.Registry) (*dataaggregator.Aggregator, error) {
	fixtures, err := demo.LoadFixtures()
	if err != nil {
		return nil, err
	}

	aggregator := &dataaggregator.Aggregator{}

	railwaySource := irctc.Source{}
	if cfg.RailwayAPIConfigured() {
		railwaySource.Client = upstream.NewRapidAPIClient(cfg.RailwayAPIBaseURL, cfg.RailwayAPIKey, cfg.RailwayAPIHost, cfg.UpstreamTimeout)
	}
	aggregator.RegisterSource(railwaySource)

	garbageSource := opendata.Source{Format: cfg.GarbageAPIFormat}
	if cfg.GarbageAPIConfigured() {
		garbageSource.Client = upstream.NewClient(upstream.Config{
			BaseURL:   cfg.GarbageAPIURL,
			Timeout:   cfg.UpstreamTimeout,
			QueryAuth: map[string]string{"api-key": cfg.GarbageAPIKey},
		})
	}
	aggregator.RegisterSource(garbageSource)

	// Without an alerts feed the metro status is the static list served by the demo source.
	if cfg.MetroAlertsURL != "" {
		aggregator.RegisterSource(metro.Source{
			Client: upstream.NewClient(upstream.Config{BaseURL: cfg.MetroAlertsURL, Timeout: cfg.UpstreamTimeout}),
			Lines:  fixtures.MetroLines,
		})
	}

	aggregator.RegisterDemoSource(demo.NewSource(fixtures, registry))

	return aggregator, nil
}
