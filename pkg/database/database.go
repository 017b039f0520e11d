package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ecocitty/ecocitty/pkg/config"
	"github.com/ecocitty/ecocitty/pkg/ctdf"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongodb"

	connectTimeout    = 30 * time.Second
	connectMaxElapsed = 2 * time.Minute
)

// Store groups the repositories of every persisted kind behind one backend.
type Store struct {
	Backend string

	Feedback       Repository[ctdf.Feedback]
	WasteReports   Repository[ctdf.WasteReport]
	SafetyHotspots Repository[ctdf.SafetyHotspot]
	Identities     Repository[ctdf.Identity]

	ping  func(ctx context.Context) error
	close func()
}

func NewMemoryStore() *Store {
	return &Store{
		Backend:        BackendMemory,
		Feedback:       NewMemoryRepository[ctdf.Feedback](),
		WasteReports:   NewMemoryRepository[ctdf.WasteReport](),
		SafetyHotspots: NewMemoryRepository[ctdf.SafetyHotspot](),
		Identities:     NewMemoryRepository[ctdf.Identity](),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}

	return s.ping(ctx)
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// WithIndexer sends every newly persisted report to indexer.
func (s *Store) WithIndexer(indexer DocumentIndexer) *Store {
	if indexer == nil {
		return s
	}

	s.Feedback = WithIndexer[ctdf.Feedback](s.Feedback, indexer)
	s.WasteReports = WithIndexer[ctdf.WasteReport](s.WasteReports, indexer)
	s.SafetyHotspots = WithIndexer[ctdf.SafetyHotspot](s.SafetyHotspots, indexer)

	return s
}

// Connect picks the backend from the scheme of the database URL. An empty URL gives the
// in-memory store.
func Connect(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("ECOCITTY_DATABASE_URL not set, reports are kept in memory only")
		return NewMemoryStore(), nil
	}

	parsed, err := url.Parse(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("ECOCITTY_DATABASE_URL: %w", err)
	}

	switch parsed.Scheme {
	case "postgres", "postgresql":
		return connectPostgres(ctx, cfg.DatabaseURL)
	case "mongodb", "mongodb+srv":
		return connectMongo(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("ECOCITTY_DATABASE_URL: unsupported scheme %q", parsed.Scheme)
	}
}

func connectBackoff(ctx context.Context) backoff.BackOff {
	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = connectMaxElapsed

	return backoff.WithContext(retryBackoff, ctx)
}

func connectPostgres(ctx context.Context, connectionString string) (*Store, error) {
	var pool *pgxpool.Pool

	err := backoff.RetryNotify(func() error {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		var err error
		pool, err = pgxpool.Connect(connectCtx, connectionString)
		if err != nil {
			return err
		}

		if err := pool.Ping(connectCtx); err != nil {
			pool.Close()
			return err
		}

		return nil
	}, connectBackoff(ctx), func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("retry", wait.String()).Msg("Postgres not reachable")
	})
	if err != nil {
		return nil, err
	}

	if err := createPostgresSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info().Msg("Connected to Postgres")

	return &Store{
		Backend:        BackendPostgres,
		Feedback:       NewPostgresRepository[ctdf.Feedback](pool),
		WasteReports:   NewPostgresRepository[ctdf.WasteReport](pool),
		SafetyHotspots: NewPostgresRepository[ctdf.SafetyHotspot](pool),
		Identities:     NewPostgresRepository[ctdf.Identity](pool),
		ping:           pool.Ping,
		close:          pool.Close,
	}, nil
}

func connectMongo(ctx context.Context, connectionString string, databaseName string) (*Store, error) {
	var client *mongo.Client

	err := backoff.RetryNotify(func() error {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		var err error
		client, err = mongo.Connect(connectCtx, options.Client().ApplyURI(connectionString))
		if err != nil {
			return err
		}

		return client.Ping(connectCtx, nil)
	}, connectBackoff(ctx), func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("retry", wait.String()).Msg("MongoDB not reachable")
	})
	if err != nil {
		return nil, err
	}

	database := client.Database(databaseName)
	createMongoIndexes(ctx, database, []string{
		ctdf.RecordKindFeedback,
		ctdf.RecordKindWasteReport,
		ctdf.RecordKindSafetyHotspot,
		ctdf.RecordKindIdentity,
	})

	log.Info().Str("database", databaseName).Msg("Connected to MongoDB")

	return &Store{
		Backend:        BackendMongo,
		Feedback:       NewMongoRepository[ctdf.Feedback](database),
		WasteReports:   NewMongoRepository[ctdf.WasteReport](database),
		SafetyHotspots: NewMongoRepository[ctdf.SafetyHotspot](database),
		Identities:     NewMongoRepository[ctdf.Identity](database),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		close: func() {
			client.Disconnect(context.Background())
		},
	}, nil
}
