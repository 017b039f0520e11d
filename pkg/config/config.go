package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ecocitty/ecocitty/pkg/util"
)

const (
	defaultRailwayAPIHost    = "irctc1.p.rapidapi.com"
	defaultRailwayAPIBaseURL = "https://irctc1.p.rapidapi.com/api/v3"
	defaultUpstreamTimeout   = 15 * time.Second
	defaultGarbageAPIFormat  = "json"
	defaultMongoDatabase     = "ecocitty"
	defaultRedisDatabase     = 0
	defaultPostLoginURL      = "/"
)

type Config struct {
	RailwayAPIKey     string
	RailwayAPIHost    string
	RailwayAPIBaseURL string

	GarbageAPIURL    string
	GarbageAPIKey    string
	GarbageAPIFormat string

	MetroAlertsURL string

	UpstreamTimeout time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string
	JWKSIssuer         string
	JWKSAudience       string
	SessionSecret      string
	PostLoginURL       string
	AdminEmails        []string

	DatabaseURL   string
	MongoDatabase string

	RedisAddress  string
	RedisPassword string
	RedisDatabase int

	ElasticsearchAddress  string
	ElasticsearchUsername string
	ElasticsearchPassword string

	DemoMode bool
}

// Load reads the ECOCITTY_* environment. Missing optional credentials are left empty so the
// affected endpoints can report a configuration error instead of the process refusing to start.
func Load() (*Config, error) {
	return FromEnvironment(util.GetEnvironmentVariables())
}

func FromEnvironment(env map[string]string) (*Config, error) {
	cfg := &Config{
		RailwayAPIKey:     env["ECOCITTY_RAILWAY_API_KEY"],
		RailwayAPIHost:    defaultRailwayAPIHost,
		RailwayAPIBaseURL: defaultRailwayAPIBaseURL,

		GarbageAPIURL:    env["ECOCITTY_GARBAGE_API_URL"],
		GarbageAPIKey:    env["ECOCITTY_GARBAGE_API_KEY"],
		GarbageAPIFormat: defaultGarbageAPIFormat,

		MetroAlertsURL: env["ECOCITTY_METRO_ALERTS_URL"],

		UpstreamTimeout: defaultUpstreamTimeout,

		GoogleClientID:     env["ECOCITTY_GOOGLE_CLIENT_ID"],
		GoogleClientSecret: env["ECOCITTY_GOOGLE_CLIENT_SECRET"],
		OAuthRedirectURL:   env["ECOCITTY_OAUTH_REDIRECT_URL"],
		JWKSIssuer:         env["ECOCITTY_JWKS_ISSUER"],
		JWKSAudience:       env["ECOCITTY_JWKS_AUDIENCE"],
		SessionSecret:      env["ECOCITTY_SESSION_SECRET"],
		PostLoginURL:       defaultPostLoginURL,

		DatabaseURL:   env["ECOCITTY_DATABASE_URL"],
		MongoDatabase: defaultMongoDatabase,

		RedisAddress:  env["ECOCITTY_REDIS_ADDRESS"],
		RedisPassword: env["ECOCITTY_REDIS_PASSWORD"],
		RedisDatabase: defaultRedisDatabase,

		ElasticsearchAddress:  env["ECOCITTY_ELASTICSEARCH_ADDRESS"],
		ElasticsearchUsername: env["ECOCITTY_ELASTICSEARCH_USERNAME"],
		ElasticsearchPassword: env["ECOCITTY_ELASTICSEARCH_PASSWORD"],

		DemoMode: util.EnvironmentFlag(env, "ECOCITTY_DEMO_MODE"),
	}

	if env["ECOCITTY_RAILWAY_API_HOST"] != "" {
		cfg.RailwayAPIHost = env["ECOCITTY_RAILWAY_API_HOST"]
	}
	if env["ECOCITTY_RAILWAY_API_BASE_URL"] != "" {
		cfg.RailwayAPIBaseURL = env["ECOCITTY_RAILWAY_API_BASE_URL"]
	}
	if env["ECOCITTY_GARBAGE_API_FORMAT"] != "" {
		cfg.GarbageAPIFormat = env["ECOCITTY_GARBAGE_API_FORMAT"]
	}
	if env["ECOCITTY_MONGODB_DATABASE"] != "" {
		cfg.MongoDatabase = env["ECOCITTY_MONGODB_DATABASE"]
	}
	if env["ECOCITTY_POST_LOGIN_URL"] != "" {
		cfg.PostLoginURL = env["ECOCITTY_POST_LOGIN_URL"]
	}
	if env["ECOCITTY_ADMIN_EMAILS"] != "" {
		cfg.AdminEmails = splitList(env["ECOCITTY_ADMIN_EMAILS"])
	}

	if env["ECOCITTY_UPSTREAM_TIMEOUT"] != "" {
		timeout, err := time.ParseDuration(env["ECOCITTY_UPSTREAM_TIMEOUT"])
		if err != nil {
			return nil, fmt.Errorf("ECOCITTY_UPSTREAM_TIMEOUT: %w", err)
		}
		cfg.UpstreamTimeout = timeout
	}

	// An empty audience rejects every token.
	if cfg.JWKSIssuer != "" && cfg.JWKSAudience == "" {
		return nil, errors.New("ECOCITTY_JWKS_AUDIENCE must be set together with ECOCITTY_JWKS_ISSUER")
	}

	redisDatabase, err := util.EnvironmentInt(env, "ECOCITTY_REDIS_DATABASE", defaultRedisDatabase)
	if err != nil {
		return nil, fmt.Errorf("ECOCITTY_REDIS_DATABASE: %w", err)
	}
	cfg.RedisDatabase = redisDatabase

	return cfg, nil
}

func (c *Config) RailwayAPIConfigured() bool {
	return c.RailwayAPIKey != ""
}

func (c *Config) GarbageAPIConfigured() bool {
	return c.GarbageAPIURL != "" && c.GarbageAPIKey != ""
}

func (c *Config) OAuthConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.OAuthRedirectURL != ""
}
