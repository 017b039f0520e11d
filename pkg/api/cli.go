package api

import (
	"context"

	"github.com/ecocitty/ecocitty/pkg/api/routes"
	"github.com/ecocitty/ecocitty/pkg/auth"
	"github.com/ecocitty/ecocitty/pkg/carbon"
	"github.com/ecocitty/ecocitty/pkg/config"
	"github.com/ecocitty/ecocitty/pkg/dataaggregator/global"
	"github.com/ecocitty/ecocitty/pkg/database"
	"github.com/ecocitty/ecocitty/pkg/demomode"
	"github.com/ecocitty/ecocitty/pkg/elastic_client"
	"github.com/ecocitty/ecocitty/pkg/redis_client"
	"github.com/ecocitty/ecocitty/pkg/stations"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the EcoCitty web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					services, cleanup, err := BuildServices(c.Context, cfg)
					if err != nil {
						return err
					}
					defer cleanup()

					return SetupServer(c.String("listen"), services)
				},
			},
		},
	}
}

// BuildServices connects every configured backend and assembles the handler dependencies.
// Optional backends that are not configured are skipped.
func BuildServices(ctx context.Context, cfg *config.Config) (*routes.Services, func(), error) {
	registry, err := stations.Load()
	if err != nil {
		return nil, nil, err
	}

	store, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	services := &routes.Services{
		Config:   cfg,
		Stations: registry,
		HealthChecks: []routes.HealthCheck{
			{Name: "database", Check: store.Ping},
		},
	}

	indexer, err := elastic_client.Connect(cfg)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	if indexer != nil {
		store = store.WithIndexer(indexer)
		services.HealthChecks = append(services.HealthChecks, routes.HealthCheck{Name: "elasticsearch", Check: indexer.Ping})
	}
	services.Store = store

	redisClient, err := redis_client.Connect(ctx, cfg)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	if redisClient != nil {
		services.DemoSwitch = demomode.NewRedisSwitch(redisClient, cfg.DemoMode)
		services.HealthChecks = append(services.HealthChecks, routes.HealthCheck{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		})
	} else {
		services.DemoSwitch = demomode.NewMemorySwitch(cfg.DemoMode)
	}

	services.Aggregator, err = global.Setup(cfg, registry)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	services.Carbon, err = carbon.NewCalculator(carbon.DefaultFactors)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	var verifiers auth.Chain
	if cfg.GoogleClientID != "" {
		verifiers = append(verifiers, auth.GoogleVerifier{ClientID: cfg.GoogleClientID})
	}
	if cfg.JWKSIssuer != "" {
		jwksVerifier, err := auth.NewJWKSVerifier(cfg.JWKSIssuer, cfg.JWKSAudience)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		verifiers = append(verifiers, jwksVerifier)
	}
	if len(verifiers) > 0 {
		services.Verifier = verifiers
	}

	if cfg.OAuthConfigured() {
		services.OAuth = auth.NewGoogleOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectURL)
	}

	log.Info().
		Str("store", store.Backend).
		Bool("redis", redisClient != nil).
		Bool("elasticsearch", indexer != nil).
		Bool("demo_mode", cfg.DemoMode).
		Bool("railway_api", cfg.RailwayAPIConfigured()).
		Bool("garbage_api", cfg.GarbageAPIConfigured()).
		Bool("oauth", services.OAuth != nil).
		Msg("Services ready")

	cleanup := func() {
		store.Close()
		if redisClient != nil {
			redisClient.Close()
		}
	}

	return services, cleanup, nil
}
